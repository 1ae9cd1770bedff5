package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/chris-regnier/journalctl/internal/entry"
	"github.com/chris-regnier/journalctl/internal/storage"
	"github.com/chris-regnier/journalctl/internal/ui"
	"github.com/spf13/cobra"
)

// entryChanges holds the fields an update replaces; nil means keep.
type entryChanges struct {
	title   *string
	date    *time.Time
	tags    []string
	setTags bool
	content *string
}

func (c entryChanges) empty() bool {
	return c.title == nil && c.date == nil && !c.setTags && c.content == nil
}

func (c entryChanges) apply(e entry.Entry) entry.Entry {
	if c.title != nil {
		e.Title = strings.TrimSpace(*c.title)
	}
	if c.date != nil {
		e.Date = *c.date
	}
	if c.setTags {
		e.Tags = entry.NormalizeTags(c.tags)
	}
	if c.content != nil {
		e.Content = strings.TrimSpace(*c.content)
	}
	return e
}

var updateCmd = &cobra.Command{
	Use:   "update <id> [content...]",
	Short: "Update a journal entry inline",
	Long: `Change the title, date, tags or content of an existing entry.

Content given as arguments replaces the entry content; "-" reads it from stdin.`,
	Example: `  journalctl update 12 --title "Retro notes"
  journalctl update 12 --tag work --tag planning
  echo "new content" | journalctl update 12 -`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		var changes entryChanges
		flags := cmd.Flags()
		if flags.Changed("title") {
			title, _ := flags.GetString("title")
			changes.title = &title
		}
		if flags.Changed("date") {
			raw, _ := flags.GetString("date")
			d, err := time.ParseInLocation(dateLayout, raw, time.Local)
			if err != nil {
				return fmt.Errorf("invalid date %q (use YYYY-MM-DD)", raw)
			}
			changes.date = &d
		}
		if flags.Changed("tag") {
			changes.tags, _ = flags.GetStringSlice("tag")
			changes.setTags = true
		}

		switch rest := args[1:]; {
		case len(rest) == 1 && rest[0] == "-":
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("reading stdin: %w", err)
			}
			content := string(data)
			changes.content = &content
		case len(rest) > 0:
			content := strings.Join(rest, " ")
			changes.content = &content
		}

		return updateRun(cmd.Context(), os.Stdout, store, id, changes, jsonOutput)
	},
}

func updateRun(ctx context.Context, w io.Writer, p storage.Provider, id uint32, changes entryChanges, asJSON bool) error {
	e, err := findEntry(ctx, p, id)
	if err != nil {
		if isNotFound(err) {
			return fmt.Errorf("entry %d not found", id)
		}
		return err
	}

	if changes.empty() {
		ui.FormatNoChanges(w)
		return nil
	}

	e = changes.apply(e)
	if err := entry.FromEntry(e).Validate(); err != nil {
		return storage.Validation(err)
	}

	updated, err := p.UpdateEntry(ctx, e)
	if err != nil {
		logger.Error(ctx, "updating entry failed", "id", id, "error", err)
		return err
	}

	if asJSON {
		return ui.FormatJSON(w, updated)
	}
	ui.FormatEntryUpdated(w, updated)
	return nil
}

func init() {
	updateCmd.Flags().StringP("title", "t", "", "new title")
	updateCmd.Flags().StringP("date", "d", "", "new date (YYYY-MM-DD)")
	updateCmd.Flags().StringSlice("tag", nil, "replace tags (repeatable or comma separated)")
	rootCmd.AddCommand(updateCmd)
}
