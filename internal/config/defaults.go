package config

import (
	"github.com/petasbytes/haiku-agent/internal/flow"
	"github.com/petasbytes/haiku-agent/internal/provider"
)

var (
	DefaultModel        = string(provider.DefaultModel)
	DefaultSystemPrompt = flow.DefaultSystemPrompt
	DefaultImageNames   = flow.DefaultImageNames
)
