package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/chris-regnier/journalctl/internal/entry"
	"github.com/chris-regnier/journalctl/internal/storage"
	"github.com/chris-regnier/journalctl/internal/ui"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
)

var allowVersionMismatch bool

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import entries from a JSON export",
	Long: `Add every entry of a transfer document written by "journalctl export"
as a new entry. Entries receive fresh ids. A document stamped with another
schema version is rejected unless --allow-version-mismatch is given.`,
	Example: `  journalctl import backup.json
  cat backup.json | journalctl import -`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var r io.Reader = os.Stdin
		if args[0] != "-" {
			path, err := homedir.Expand(args[0])
			if err != nil {
				return err
			}
			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("opening import file: %w", err)
			}
			defer f.Close()
			r = f
		}
		return importRun(cmd.Context(), os.Stdout, r, store, allowVersionMismatch)
	},
}

func importRun(ctx context.Context, w io.Writer, r io.Reader, p storage.Provider, allowMismatch bool) error {
	var dto entry.EntriesDTO
	if err := json.NewDecoder(r).Decode(&dto); err != nil {
		return fmt.Errorf("decoding transfer document: %w", err)
	}

	if err := storage.CheckVersion(dto); err != nil {
		logger.Warn(ctx, "transfer version mismatch", "got", dto.Version, "want", entry.TransferDataVersion)
		if !allowMismatch {
			return fmt.Errorf("%w (use --allow-version-mismatch to import anyway)", err)
		}
		ui.FormatWarning(w, "document version %d differs from %d; importing anyway", dto.Version, entry.TransferDataVersion)
		dto.Version = entry.TransferDataVersion
	}

	if err := p.ImportEntries(ctx, dto); err != nil {
		if !errors.Is(err, storage.ErrVersionMismatch) {
			logger.Error(ctx, "import failed", "error", err)
		}
		return err
	}

	if jsonOutput {
		return ui.FormatJSON(w, map[string]int{"imported": len(dto.Entries)})
	}
	ui.FormatImported(w, len(dto.Entries))
	return nil
}

func init() {
	importCmd.Flags().BoolVar(&allowVersionMismatch, "allow-version-mismatch", false, "import documents stamped with another schema version")
	rootCmd.AddCommand(importCmd)
}
