package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/chris-regnier/journalctl/internal/storage"
	"github.com/chris-regnier/journalctl/internal/ui"
	"github.com/spf13/cobra"
)

var forceDelete bool

// confirmDelete asks before removing an entry; tests replace it.
var confirmDelete = ui.ConfirmDelete

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a journal entry",
	Long:  "Permanently delete a journal entry. Requires confirmation unless --force is used.",
	Example: `  journalctl delete 12
  journalctl delete 12 --force`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return deleteRun(cmd.Context(), os.Stdout, store, id, forceDelete, jsonOutput)
	},
}

func deleteRun(ctx context.Context, w io.Writer, p storage.Provider, id uint32, force, asJSON bool) error {
	e, err := findEntry(ctx, p, id)
	if err != nil {
		if isNotFound(err) {
			return fmt.Errorf("entry %d not found", id)
		}
		return err
	}

	if !force {
		confirmed, err := confirmDelete(e, outputTheme())
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Fprintln(w, "Cancelled.")
			return nil
		}
	}

	if err := p.RemoveEntry(ctx, id); err != nil {
		logger.Error(ctx, "deleting entry failed", "id", id, "error", err)
		return err
	}

	if asJSON {
		return ui.FormatJSON(w, ui.DeleteResult{ID: id, Deleted: true})
	}
	ui.FormatEntryDeleted(w, id)
	return nil
}

func init() {
	deleteCmd.Flags().BoolVar(&forceDelete, "force", false, "skip confirmation prompt")
	rootCmd.AddCommand(deleteCmd)
}
