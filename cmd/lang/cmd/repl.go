package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/graeme-hill/lang-go/format"
	"github.com/graeme-hill/lang-go/lib"
)

const replBanner = "Lang REPL - Enter expressions (Ctrl+D to exit)"

type replOptions struct {
	Prompt string
	Format format.Format
	Color  bool
	Parse  lib.ParseOptions
}

func (a *app) newREPLCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Read expressions interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := format.ParseFormat(a.cfg.REPL.Format)
			if err != nil {
				return err
			}
			return runREPL(cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr(), replOptions{
				Prompt: a.cfg.REPL.Prompt,
				Format: f,
				Color:  a.cfg.REPL.Color,
				Parse:  a.cfg.ParseOptions(),
			})
		},
	}
}

// runREPL reads one expression per line until EOF, "exit" or "quit".
// Syntax errors are reported on errOut and do not end the session.
func runREPL(in io.Reader, out io.Writer, errOut io.Writer, opts replOptions) error {
	errStyle := lipgloss.NewRenderer(errOut).NewStyle()
	promptStyle := lipgloss.NewRenderer(out).NewStyle()
	if opts.Color {
		errStyle = errStyle.Foreground(lipgloss.Color("#EF4444")).Bold(true)
		promptStyle = promptStyle.Foreground(lipgloss.Color("#8B5CF6"))
	}

	fmt.Fprintf(out, "%s\n\n", replBanner)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, promptStyle.Render(opts.Prompt))

		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("read input: %w", err)
			}
			fmt.Fprint(out, "\nGoodbye!\n")
			return nil
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			fmt.Fprint(out, "Goodbye!\n")
			return nil
		}

		tokens, err := lib.Scan(line)
		if err != nil {
			fmt.Fprintln(errOut, errStyle.Render("Lexer error: "+err.Error()))
			continue
		}
		expr, err := lib.ParseWithOptions(tokens, opts.Parse)
		if err != nil {
			fmt.Fprintln(errOut, errStyle.Render("Parse error: "+err.Error()))
			continue
		}
		if err := format.Write(out, expr, opts.Format); err != nil {
			return err
		}
	}
}
