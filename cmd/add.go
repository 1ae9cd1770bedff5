package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/chris-regnier/journalctl/internal/editor"
	"github.com/chris-regnier/journalctl/internal/entry"
	"github.com/chris-regnier/journalctl/internal/storage"
	"github.com/chris-regnier/journalctl/internal/ui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const dateLayout = "2006-01-02"

var (
	addTitle string
	addDate  string
	addTags  []string
)

var addCmd = &cobra.Command{
	Use:     "add [content...]",
	Aliases: []string{"create"},
	Short:   "Add a new journal entry",
	Long: `Add a new journal entry.

If content is provided as arguments, it is used directly.
If "-" is provided, content is read from stdin.
If no content is provided and stdin is a terminal, your editor is opened.`,
	Example: `  journalctl add --title "Standup" Talked about the release
  echo "piped content" | journalctl add --title Notes -
  journalctl add --title "Trip" --date 2024-06-01 --tag travel --tag family`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var content string

		switch {
		case len(args) == 1 && args[0] == "-":
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("reading stdin: %w", err)
			}
			content = string(data)

		case len(args) > 0:
			content = strings.Join(args, " ")

		case term.IsTerminal(int(os.Stdin.Fd())):
			edited, changed, err := editor.Edit(editor.ResolveEditor(appConfig.Editor), "", appConfig.ExternalEditor.TempFileExtension)
			if err != nil {
				return err
			}
			if changed {
				content = edited
			}
		}

		date := time.Now()
		if addDate != "" {
			d, err := time.ParseInLocation(dateLayout, addDate, time.Local)
			if err != nil {
				return fmt.Errorf("invalid date %q (use YYYY-MM-DD)", addDate)
			}
			date = d
		}

		d := entry.NewDraft(date, strings.TrimSpace(addTitle), addTags)
		d.Content = strings.TrimSpace(content)
		return addRun(cmd.Context(), os.Stdout, store, d, jsonOutput)
	},
}

func addRun(ctx context.Context, w io.Writer, p storage.Provider, d entry.Draft, asJSON bool) error {
	if err := d.Validate(); err != nil {
		return storage.Validation(err)
	}
	e, err := p.AddEntry(ctx, d)
	if err != nil {
		logger.Error(ctx, "adding entry failed", "error", err)
		return err
	}
	if asJSON {
		return ui.FormatJSON(w, e)
	}
	ui.FormatEntryCreated(w, e)
	return nil
}

func init() {
	addCmd.Flags().StringVarP(&addTitle, "title", "t", "", "entry title (required)")
	addCmd.Flags().StringVarP(&addDate, "date", "d", "", "entry date (YYYY-MM-DD, default today)")
	addCmd.Flags().StringSliceVar(&addTags, "tag", nil, "tag to attach (repeatable or comma separated)")
	addCmd.MarkFlagRequired("title")
	rootCmd.AddCommand(addCmd)
}
