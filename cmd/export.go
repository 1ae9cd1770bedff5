package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/chris-regnier/journalctl/internal/storage"
	"github.com/chris-regnier/journalctl/internal/ui"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export [id...]",
	Short: "Export entries as JSON",
	Long: `Write the selected entries (all entries when no id is given) as a
versioned JSON transfer document that "journalctl import" can read back.`,
	Example: `  journalctl export -o backup.json
  journalctl export 3 7 > two-entries.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := parseIDs(args)
		if err != nil {
			return err
		}

		if exportOutput == "" || exportOutput == "-" {
			_, err := exportRun(cmd.Context(), os.Stdout, store, ids)
			return err
		}

		path, err := homedir.Expand(exportOutput)
		if err != nil {
			return err
		}
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating export file: %w", err)
		}
		n, err := exportRun(cmd.Context(), f, store, ids)
		if err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("writing export file: %w", err)
		}
		ui.FormatExported(os.Stderr, path, n)
		return nil
	},
}

// exportRun writes the transfer document to w and returns how many entries
// it holds.
func exportRun(ctx context.Context, w io.Writer, p storage.Provider, ids []uint32) (int, error) {
	dto, err := p.GetExportObject(ctx, ids)
	if err != nil {
		return 0, err
	}
	return len(dto.Entries), ui.FormatJSON(w, dto)
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default stdout)")
	rootCmd.AddCommand(exportCmd)
}
