package main

import (
	"os"

	"github.com/spf13/cobra"
)

// Set at build time via ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

type rootOptions struct {
	configPath string
	model      string
}

func main() {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:          "haiku",
		Short:        "Chat with a model that writes haiku",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default ./haiku.yaml or $HOME/.config/haiku/haiku.yaml)")
	root.PersistentFlags().StringVar(&opts.model, "model", "", "model name, overrides llm.model")

	root.AddCommand(chatCmd(opts), kickoffCmd(opts), versionCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
