// Package config loads settings from an optional file and HAIKU_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/petasbytes/haiku-agent/internal/errorsx"
)

// EnvPrefix namespaces environment overrides, e.g. HAIKU_LLM_MODEL.
const EnvPrefix = "HAIKU"

type Config struct {
	LLM       LLMConfig       `mapstructure:"llm"`
	Agent     AgentConfig     `mapstructure:"agent"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
	Log       LogConfig       `mapstructure:"log"`
}

// LLMConfig stores model client settings.
type LLMConfig struct {
	Model         string `mapstructure:"model"`
	MaxTokens     int64  `mapstructure:"max_tokens"`
	APIKey        string `mapstructure:"api_key"`  // falls back to ANTHROPIC_API_KEY
	BaseURL       string `mapstructure:"base_url"` // empty keeps the SDK default
	MaxToolRounds int    `mapstructure:"max_tool_rounds"`
}

// AgentConfig stores prompt settings.
type AgentConfig struct {
	SystemPrompt string   `mapstructure:"system_prompt"`
	ImageNames   []string `mapstructure:"image_names"` // catalog the model picks 3 from
}

type TelemetryConfig struct {
	ObserveJSON  bool   `mapstructure:"observe_json"`
	ArtifactsDir string `mapstructure:"artifacts_dir"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

// Load reads configuration. An empty path searches ./haiku.yaml and
// $HOME/.config/haiku/haiku.yaml; a missing file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("haiku")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/haiku")
	}
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// The SDK's own variable works too, HAIKU_LLM_API_KEY wins.
	if err := v.BindEnv("llm.api_key", EnvPrefix+"_LLM_API_KEY", "ANTHROPIC_API_KEY"); err != nil {
		return nil, errorsx.Wrap(err, errorsx.ReasonConfig)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, errorsx.Wrap(fmt.Errorf("failed to read config file: %w", err), errorsx.ReasonConfig)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errorsx.Wrap(fmt.Errorf("unable to decode into struct: %w", err), errorsx.ReasonConfig)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("llm.model", DefaultModel)
	v.SetDefault("llm.max_tokens", 1024)
	v.SetDefault("llm.max_tool_rounds", 4)
	v.SetDefault("llm.base_url", "")

	v.SetDefault("agent.system_prompt", DefaultSystemPrompt)
	v.SetDefault("agent.image_names", DefaultImageNames)

	v.SetDefault("telemetry.observe_json", false)
	v.SetDefault("telemetry.artifacts_dir", ".agent")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", true)
}

// Validate rejects values the flow cannot run with. A missing API key is
// checked by commands that call the model, not here.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.LLM.Model) == "" {
		errs = append(errs, errors.New("llm.model is required"))
	}
	if c.LLM.MaxTokens <= 0 {
		errs = append(errs, fmt.Errorf("llm.max_tokens must be > 0, got %d", c.LLM.MaxTokens))
	}
	if c.LLM.MaxToolRounds <= 0 {
		errs = append(errs, fmt.Errorf("llm.max_tool_rounds must be > 0, got %d", c.LLM.MaxToolRounds))
	}
	if strings.TrimSpace(c.Agent.SystemPrompt) == "" {
		errs = append(errs, errors.New("agent.system_prompt is required"))
	}
	if n := len(c.Agent.ImageNames); n > 0 && n < 3 {
		errs = append(errs, fmt.Errorf("agent.image_names needs at least 3 entries, got %d", n))
	}
	return errorsx.Wrap(errors.Join(errs...), errorsx.ReasonConfig)
}

// RequireAPIKey reports a missing key before any request is attempted.
func (c *Config) RequireAPIKey() error {
	if strings.TrimSpace(c.LLM.APIKey) == "" {
		return errorsx.Wrap(errors.New("missing API key; export ANTHROPIC_API_KEY or set llm.api_key"), errorsx.ReasonConfig)
	}
	return nil
}
