package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"text/template"

	"github.com/chris-regnier/journalctl/internal/app"
	"github.com/chris-regnier/journalctl/internal/config"
	"github.com/chris-regnier/journalctl/internal/logging"
	"github.com/chris-regnier/journalctl/internal/storage"
	"github.com/chris-regnier/journalctl/internal/ui"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"
)

// statusData holds the template data for status formatting.
type statusData struct {
	Backend   string
	DataDir   string
	StateDir  string
	LogFile   string
	Entries   int
	Tags      int
	Latest    string
	HasLatest bool
	Theme     string
	Themes    []string
	// UnknownTheme is the configured preset when it names no built-in one.
	UnknownTheme string
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show journal storage status",
	Long: `Show where the journal lives and how many entries it holds.

Use --env to output shell environment variable assignments.
Use --format with a Go template for custom output.`,
	Example: `  journalctl status
  journalctl status --env
  journalctl status --format "{{.Entries}} entries in {{.Backend}}"`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		envFlag, _ := cmd.Flags().GetBool("env")
		formatFlag, _ := cmd.Flags().GetString("format")

		data, err := buildStatusData(cmd.Context(), store, appConfig)
		if err != nil {
			return err
		}

		switch {
		case envFlag:
			outputEnv(os.Stdout, data)
			return nil
		case formatFlag != "":
			return outputTemplate(os.Stdout, data, formatFlag)
		case jsonOutput:
			return outputStatusJSON(os.Stdout, data)
		}
		outputDefault(os.Stdout, data)
		return nil
	},
}

func buildStatusData(ctx context.Context, p storage.Provider, cfg *config.Config) (statusData, error) {
	entries, err := p.LoadAllEntries(ctx)
	if err != nil {
		return statusData{}, err
	}

	data := statusData{
		Backend:  cfg.Storage,
		DataDir:  cfg.DataDir,
		StateDir: cfg.ResolvedStateDir(),
		LogFile:  filepath.Join(cfg.ResolvedStateDir(), logging.LogFileName),
		Entries:  len(entries),
		Theme:    ui.ResolveTheme(cfg.Theme).Name,
		Themes:   ui.PresetNames(),
	}
	if _, ok := ui.LookupPreset(cfg.Theme.Preset); cfg.Theme.Preset != "" && !ok {
		data.UnknownTheme = cfg.Theme.Preset
	}

	tags := make(map[string]struct{})
	for _, e := range entries {
		for _, t := range e.Tags {
			tags[t] = struct{}{}
		}
	}
	data.Tags = len(tags)

	if len(entries) > 0 {
		newest := slices.MinFunc(entries, app.DefaultSorter().Compare)
		data.Latest = fmt.Sprintf("%d %s (%s)", newest.ID, newest.Title, newest.Date.Local().Format(dateLayout))
		data.HasLatest = true
	}
	return data, nil
}

func outputEnv(w io.Writer, data statusData) {
	fmt.Fprintf(w, "export JOURNALCTL_BACKEND=%q\n", data.Backend)
	fmt.Fprintf(w, "export JOURNALCTL_ENTRIES=%q\n", fmt.Sprint(data.Entries))
	fmt.Fprintf(w, "export JOURNALCTL_TAGS=%q\n", fmt.Sprint(data.Tags))
}

func outputTemplate(w io.Writer, data statusData, format string) error {
	tmpl, err := template.New("status").Parse(format)
	if err != nil {
		return fmt.Errorf("invalid format template: %w", err)
	}
	if err := tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("executing format template: %w", err)
	}
	fmt.Fprintln(w)
	return nil
}

func outputStatusJSON(w io.Writer, data statusData) error {
	return ui.FormatJSON(w, map[string]any{
		"backend":   data.Backend,
		"data_dir":  data.DataDir,
		"state_dir": data.StateDir,
		"log_file":  data.LogFile,
		"entries":   data.Entries,
		"tags":      data.Tags,
		"theme":     data.Theme,
		"themes":    data.Themes,
	})
}

func outputDefault(w io.Writer, data statusData) {
	tbl := uitable.New()
	tbl.AddRow("Backend:", data.Backend)
	tbl.AddRow("Data dir:", data.DataDir)
	tbl.AddRow("State dir:", data.StateDir)
	tbl.AddRow("Log file:", data.LogFile)
	tbl.AddRow("Entries:", data.Entries)
	tbl.AddRow("Tags:", data.Tags)
	if data.HasLatest {
		tbl.AddRow("Latest:", data.Latest)
	}
	tbl.AddRow("Theme:", data.Theme)
	tbl.AddRow("Themes:", strings.Join(data.Themes, ", "))
	fmt.Fprintln(w, tbl)
	if data.UnknownTheme != "" {
		ui.FormatWarning(w, "unknown theme preset %q, using %s", data.UnknownTheme, data.Theme)
	}
}

func init() {
	statusCmd.Flags().Bool("env", false, "output shell environment variable assignments")
	statusCmd.Flags().String("format", "", "Go template format string")
	rootCmd.AddCommand(statusCmd)
}
