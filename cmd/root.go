package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/chris-regnier/journalctl/internal/app"
	"github.com/chris-regnier/journalctl/internal/config"
	"github.com/chris-regnier/journalctl/internal/editor"
	"github.com/chris-regnier/journalctl/internal/logging"
	"github.com/chris-regnier/journalctl/internal/storage"
	"github.com/chris-regnier/journalctl/internal/ui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	cfgFile        string
	jsonOutput     bool
	storageBackend string
	appConfig      *config.Config
	store          storage.Provider
	logger         logging.Logger = logging.Discard()
	logCloser      io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "journalctl",
	Short: "A terminal journal",
	Long: `journalctl keeps a personal journal of titled, dated and tagged entries.

Run without a subcommand to open the interactive journal. Entries are stored
as Markdown files or in a SQLite database, depending on the storage setting.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		appConfig = cfg

		if storageBackend != "" {
			appConfig.Storage = storageBackend
		}

		if err := os.MkdirAll(appConfig.DataDir, 0755); err != nil {
			return fmt.Errorf("creating data directory: %w", err)
		}

		l, closer, err := logging.OpenFile(appConfig.ResolvedStateDir(), appConfig.LogLevel)
		if err != nil {
			return err
		}
		logger, logCloser = l, closer

		store, err = openProvider(cmd.Context(), appConfig)
		if err != nil {
			return err
		}
		logger.Debug(cmd.Context(), "storage opened", "backend", appConfig.Storage, "data_dir", appConfig.DataDir)
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeResources()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			// Non-TTY: print the active list instead of starting the TUI.
			return listRun(cmd.Context(), os.Stdout, store, listOptions{sortKey: "date", order: "descending", json: jsonOutput})
		}
		return runInteractive(cmd)
	},
}

func runInteractive(cmd *cobra.Command) error {
	ctx := cmd.Context()

	states := app.NewStateStore(appConfig.ResolvedStateDir(), logger)
	if appConfig.ResolvedStateDir() != appConfig.DataDir {
		states.MigrateLegacy(ctx, appConfig.DataDir)
	}

	a := app.New(store, logger, states.Load(ctx))
	if err := a.Load(ctx); err != nil {
		return err
	}

	session := ui.NewSession(ctx, a, ui.Settings{
		Editor:            editor.ResolveEditor(appConfig.Editor),
		AutoSave:          appConfig.ExternalEditor.AutoSave,
		TempFileExtension: appConfig.ExternalEditor.TempFileExtension,
		ScrollPerPage:     appConfig.ScrollPerPage,
		ExportDir:         appConfig.ResolvedExportDir(),
	}, logger, states)

	return ui.RunTUI(session, ui.TUIConfig{
		MaxWidth: appConfig.MaxWidth,
		Theme:    ui.ResolveTheme(appConfig.Theme),
	})
}

func closeResources() error {
	var firstErr error
	if store != nil {
		if err := store.Close(); err != nil {
			firstErr = fmt.Errorf("closing storage: %w", err)
		}
		store = nil
	}
	if logCloser != nil {
		if err := logCloser.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("closing log file: %w", err)
		}
		logCloser = nil
	}
	return firstErr
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		// PostRun is skipped when RunE fails.
		closeResources()
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output in JSON format")
	rootCmd.PersistentFlags().StringVar(&storageBackend, "storage", "", "storage backend (markdown|sqlite|memory)")

	// Silence Cobra's built-in error and usage printing so we control stderr output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}
