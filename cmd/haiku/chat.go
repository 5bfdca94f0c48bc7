package main

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/dimiro1/banner"
	"github.com/spf13/cobra"

	"github.com/petasbytes/haiku-agent/tools"
)

var (
	youLabel   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).Render("You")
	modelLabel = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11")).Render("Haiku")
	haikuStyle = lipgloss.NewStyle().Italic(true).PaddingLeft(2).Foreground(lipgloss.Color("10"))
	dimStyle   = lipgloss.NewStyle().Faint(true)
)

func printBanner() {
	tpl := "{{ .Title \"HAIKU\" \"\" 0 }}\nVersion: " + version + "\n"
	banner.Init(os.Stdout, true, true, bytes.NewBufferString(tpl))
}

func chatCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive chat",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(opts)
			if err != nil {
				return err
			}
			defer a.Close()
			return runChat(cmd.Context(), a)
		},
	}
}

func runChat(parent context.Context, a *app) error {
	if parent == nil {
		parent = context.Background()
	}
	// Ctrl-C / SIGTERM cancels the in-flight turn and ends the loop.
	ctx, cancel := context.WithCancel(parent)
	defer cancel()
	sigch := make(chan os.Signal, 1)
	signal.Notify(sigch, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigch)
	go func() {
		select {
		case <-sigch:
			fmt.Println("\nExiting...")
			cancel()
		case <-ctx.Done():
		}
	}()

	printBanner()
	fmt.Println(dimStyle.Render("Ask for a haiku (Ctrl-C to quit)"))

	scanner := bufio.NewScanner(os.Stdin)
	inputCh := make(chan string)
	go func() {
		defer close(inputCh)
		for scanner.Scan() {
			select {
			case inputCh <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	var last *tools.Haiku
outer:
	for {
		fmt.Print(youLabel + ": ")
		var (
			user string
			ok   bool
		)
		select {
		case <-ctx.Done():
			break outer
		case user, ok = <-inputCh:
			if !ok {
				break outer
			}
		}
		if strings.TrimSpace(user) == "" {
			continue
		}

		reply := a.flow.Chat(ctx, user)
		fmt.Printf("%s: %s\n", modelLabel, strings.TrimSpace(reply))

		if h := a.flow.State().Haiku; h != nil && h != last {
			printHaiku(h)
			last = h
		}
	}
	if err := scanner.Err(); err != nil {
		a.log.Warn().Err(err).Msg("stdin read error")
	}
	return nil
}

func printHaiku(h *tools.Haiku) {
	var b strings.Builder
	for i := range h.Japanese {
		b.WriteString(h.Japanese[i])
		b.WriteString("\n")
	}
	b.WriteString("\n")
	for i := range h.English {
		b.WriteString(h.English[i])
		b.WriteString("\n")
	}
	fmt.Println(haikuStyle.Render(strings.TrimRight(b.String(), "\n")))
	fmt.Println(dimStyle.Render("images: " + strings.Join(h.ImageNames, ", ")))
}
