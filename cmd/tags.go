package cmd

import (
	"context"
	"io"
	"os"

	"github.com/chris-regnier/journalctl/internal/storage"
	"github.com/chris-regnier/journalctl/internal/ui"
	"github.com/spf13/cobra"
)

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List tags and how many entries carry them",
	Example: `  journalctl tags
  journalctl tags --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return tagsRun(cmd.Context(), os.Stdout, store, jsonOutput)
	},
}

func tagsRun(ctx context.Context, w io.Writer, p storage.Provider, asJSON bool) error {
	entries, err := p.LoadAllEntries(ctx)
	if err != nil {
		return err
	}
	counts := ui.CountTags(entries)
	if asJSON {
		if counts == nil {
			counts = []ui.TagCount{}
		}
		return ui.FormatJSON(w, counts)
	}
	ui.FormatTagList(w, counts)
	return nil
}

func init() {
	rootCmd.AddCommand(tagsCmd)
}
