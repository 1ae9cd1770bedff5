package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/chris-regnier/journalctl/internal/editor"
	"github.com/chris-regnier/journalctl/internal/storage"
	"github.com/chris-regnier/journalctl/internal/ui"
	"github.com/spf13/cobra"
)

// editContent runs the external editor; tests replace it.
var editContent = editor.Edit

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a journal entry's content in your editor",
	Long:  "Open the content of an existing journal entry in your configured editor and save the result.",
	Example: `  journalctl edit 12
  EDITOR=nano journalctl edit 12`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return editRun(cmd.Context(), os.Stdout, store, id,
			editor.ResolveEditor(appConfig.Editor), appConfig.ExternalEditor.TempFileExtension, jsonOutput)
	},
}

func editRun(ctx context.Context, w io.Writer, p storage.Provider, id uint32, editorCmd, ext string, asJSON bool) error {
	e, err := findEntry(ctx, p, id)
	if err != nil {
		if isNotFound(err) {
			return fmt.Errorf("entry %d not found", id)
		}
		return err
	}

	content, changed, err := editContent(editorCmd, e.Content, ext)
	if err != nil {
		return err
	}
	if !changed {
		if asJSON {
			return ui.FormatJSON(w, e)
		}
		ui.FormatNoChanges(w)
		return nil
	}

	e.Content = content
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
	rootCmd.AddCommand(editCmd)
}
