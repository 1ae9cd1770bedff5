package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/chris-regnier/journalctl/internal/storage"
	"github.com/chris-regnier/journalctl/internal/ui"
	"github.com/spf13/cobra"
)

var showContentOnly bool

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a journal entry",
	Long:  "Display the full content and metadata of a journal entry.",
	Example: `  journalctl show 12
  journalctl show 12 --json
  journalctl show 12 --content-only`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return showRun(cmd.Context(), os.Stdout, store, id, showContentOnly, jsonOutput)
	},
}

func showRun(ctx context.Context, w io.Writer, p storage.Provider, id uint32, contentOnly, asJSON bool) error {
	e, err := findEntry(ctx, p, id)
	if err != nil {
		if isNotFound(err) {
			return fmt.Errorf("entry %d not found", id)
		}
		return err
	}

	switch {
	case contentOnly:
		fmt.Fprintln(w, e.Content)
		return nil
	case asJSON:
		return ui.FormatJSON(w, e)
	}

	theme := outputTheme()
	var buf bytes.Buffer
	ui.FormatEntryFull(&buf, e, theme.MarkdownStyle, maxWidth())
	return ui.OutputOrPage(w, buf.String(), false, maxWidth(), theme)
}

func init() {
	showCmd.Flags().BoolVar(&showContentOnly, "content-only", false, "print just the entry content")
	rootCmd.AddCommand(showCmd)
}
