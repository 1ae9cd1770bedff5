package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/chris-regnier/journalctl/internal/app"
	"github.com/chris-regnier/journalctl/internal/config"
	"github.com/chris-regnier/journalctl/internal/storage"
	"github.com/chris-regnier/journalctl/internal/ui"
	"github.com/spf13/cobra"
)

const listTitleWidth = 48

type listOptions struct {
	tags    []string
	text    string
	sortKey string
	order   string
	idOnly  bool
	json    bool
}

var listOpts listOptions

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List journal entries",
	Long:  "List journal entries, optionally narrowed by tag or text and ordered by date or title.",
	Example: `  journalctl list
  journalctl list --tag work --tag home
  journalctl list --text meeting --sort title --order ascending
  journalctl list --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := listOpts
		opts.json = jsonOutput
		return listRun(cmd.Context(), os.Stdout, store, opts)
	},
}

// listRun writes the entries selected by opts to w, using the same filter
// and ordering rules as the interactive view.
func listRun(ctx context.Context, w io.Writer, p storage.Provider, opts listOptions) error {
	sorter, err := app.ParseSorter(opts.sortKey, opts.order)
	if err != nil {
		return err
	}
	filter := app.Filter{Tags: opts.tags, Text: opts.text}

	all, err := p.LoadAllEntries(ctx)
	if err != nil {
		return err
	}
	entries := all[:0:0]
	for _, e := range all {
		if filter.Matches(e) {
			entries = append(entries, e)
		}
	}
	slices.SortFunc(entries, sorter.Compare)

	if opts.idOnly {
		for _, e := range entries {
			fmt.Fprintln(w, e.ID)
		}
		return nil
	}

	if opts.json {
		return ui.FormatJSON(w, ui.ToSummaries(entries))
	}

	var buf bytes.Buffer
	ui.FormatEntryTable(&buf, entries, listTitleWidth)
	return ui.OutputOrPage(w, buf.String(), false, maxWidth(), outputTheme())
}

func maxWidth() int {
	if appConfig == nil {
		return 0
	}
	return appConfig.MaxWidth
}

func outputTheme() ui.Theme {
	if appConfig == nil {
		return ui.ResolveTheme(config.ThemeConfig{})
	}
	return ui.ResolveTheme(appConfig.Theme)
}

func init() {
	listCmd.Flags().StringSliceVar(&listOpts.tags, "tag", nil, "show entries carrying any of these tags (repeatable)")
	listCmd.Flags().StringVar(&listOpts.text, "text", "", "show entries whose title or content contains this text")
	listCmd.Flags().StringVar(&listOpts.sortKey, "sort", "date", "sort key (date|title)")
	listCmd.Flags().StringVar(&listOpts.order, "order", "descending", "sort order (ascending|descending)")
	listCmd.Flags().BoolVar(&listOpts.idOnly, "id-only", false, "print just entry IDs, one per line")
	rootCmd.AddCommand(listCmd)
}
