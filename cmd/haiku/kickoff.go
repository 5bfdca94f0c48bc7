package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

const defaultKickoffMessage = "Generate a haiku about autumn leaves."

func kickoffCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "kickoff [message]",
		Short: "Run a single turn and print the reply and stored haiku",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			msg := defaultKickoffMessage
			if len(args) == 1 {
				msg = args[0]
			}

			a, err := newApp(opts)
			if err != nil {
				return err
			}
			defer a.Close()

			reply, err := a.flow.Kickoff(cmd.Context(), kickoffInputs(msg))
			if err != nil {
				return err
			}
			a.log.Info().Str("reply", strings.TrimSpace(reply)).Msg("response")

			fmt.Fprintln(cmd.OutOrStdout(), strings.TrimSpace(reply))
			if h := a.flow.State().Haiku; h != nil {
				out, err := h.JSON()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), out)
			}
			return nil
		},
	}
}

func kickoffInputs(msg string) map[string]any {
	return map[string]any{
		"messages": []any{
			map[string]any{"role": "user", "content": msg},
		},
		"haiku": nil,
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "haiku %s (commit: %s, built: %s)\n", version, commit, date)
		},
	}
}
