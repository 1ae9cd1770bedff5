package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"
	"github.com/chris-regnier/journalctl/internal/config"
	"github.com/lucasb-eyer/go-colorful"
)

// DefaultPreset is used when the configured preset is empty or unknown.
const DefaultPreset = "default-dark"

// Theme is a named palette plus the glamour style used for entry content.
type Theme struct {
	Name          string
	Primary       lipgloss.Color
	Secondary     lipgloss.Color
	Accent        lipgloss.Color
	Muted         lipgloss.Color
	Danger        lipgloss.Color
	Background    lipgloss.Color
	MarkdownStyle string
}

// presets are listed in the order `status` prints them.
var presets = []Theme{
	{"default-dark", "15", "243", "33", "241", "9", "235", "dark"},
	{"default-light", "0", "240", "27", "245", "1", "254", "light"},
	{"catppuccin-mocha", "#CDD6F4", "#585B70", "#CBA6F7", "#6C7086", "#F38BA8", "#1E1E2E", "dark"},
	{"dracula", "#F8F8F2", "#6272A4", "#BD93F9", "#6272A4", "#FF5555", "#282A36", "dark"},
	{"gruvbox-dark", "#EBDBB2", "#665C54", "#FABD2F", "#928374", "#FB4934", "#282828", "dark"},
	{"nord", "#D8DEE9", "#4C566A", "#88C0D0", "#616E88", "#BF616A", "#2E3440", "dark"},
	{"solarized-dark", "#839496", "#586E75", "#B58900", "#586E75", "#DC322F", "#002B36", "dark"},
}

// PresetNames returns the built-in preset names.
func PresetNames() []string {
	names := make([]string, len(presets))
	for i, p := range presets {
		names[i] = p.Name
	}
	return names
}

// LookupPreset returns the named built-in theme.
func LookupPreset(name string) (Theme, bool) {
	for _, p := range presets {
		if p.Name == name {
			return p, true
		}
	}
	return Theme{}, false
}

// ResolveTheme starts from the configured preset (DefaultPreset when it is
// empty or unknown) and applies the per-color overrides.
func ResolveTheme(cfg config.ThemeConfig) Theme {
	theme, ok := LookupPreset(cfg.Preset)
	if !ok {
		theme, _ = LookupPreset(DefaultPreset)
	}

	overrides := []struct {
		dst *lipgloss.Color
		val string
	}{
		{&theme.Primary, cfg.Primary},
		{&theme.Secondary, cfg.Secondary},
		{&theme.Accent, cfg.Accent},
		{&theme.Muted, cfg.Muted},
		{&theme.Danger, cfg.Danger},
		{&theme.Background, cfg.Background},
	}
	for _, o := range overrides {
		if o.val != "" {
			*o.dst = lipgloss.Color(o.val)
		}
	}
	if cfg.MarkdownStyle != "" {
		theme.MarkdownStyle = cfg.MarkdownStyle
	}
	return theme
}

// base is a style painted on the theme background. Every style below builds
// on it so no cell falls back to the terminal default.
func (t Theme) base(fg lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(fg).Background(t.Background)
}

func (t Theme) HelpStyle() lipgloss.Style     { return t.base(t.Muted) }
func (t Theme) HeaderStyle() lipgloss.Style   { return t.base(t.Primary).Bold(true) }
func (t Theme) AccentStyle() lipgloss.Style   { return t.base(t.Accent) }
func (t Theme) DangerStyle() lipgloss.Style   { return t.base(t.Danger) }
func (t Theme) ViewPaneStyle() lipgloss.Style { return t.base(t.Primary) }

// BorderStyle is a rounded frame in the secondary color.
func (t Theme) BorderStyle() lipgloss.Style {
	return t.base(t.Primary).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Secondary).
		BorderBackground(t.Background)
}

// PopupStyle frames a modal dialog of the given outer width.
func (t Theme) PopupStyle(width int) lipgloss.Style {
	return t.BorderStyle().Padding(0, 1).Width(width)
}

// ButtonStyle renders a dialog button or selectable row.
func (t Theme) ButtonStyle(focused bool) lipgloss.Style {
	if focused {
		return t.AccentStyle().Bold(true)
	}
	return t.HelpStyle()
}

// TitleStyle picks the heading style for a message box type.
func (t Theme) TitleStyle(typ MsgBoxType) lipgloss.Style {
	switch typ {
	case MsgError, MsgWarning:
		return t.DangerStyle().Bold(true)
	case MsgQuestion:
		return t.AccentStyle().Bold(true)
	}
	return t.HeaderStyle()
}

// eraseEOL sets the background and erases to the end of the terminal line,
// so the fill reaches the right edge even when width measurement is short.
func (t Theme) eraseEOL() string {
	bg := string(t.Background)
	if c, err := colorful.Hex(bg); err == nil {
		r, g, b := c.RGB255()
		return fmt.Sprintf("\x1b[48;2;%d;%d;%dm\x1b[K", r, g, b)
	}
	return "\x1b[48;5;" + bg + "m\x1b[K"
}

func (t Theme) blank(n int) string {
	if n <= 0 {
		return ""
	}
	return lipgloss.NewStyle().Background(t.Background).Render(strings.Repeat(" ", n))
}

// fillLine indents line and pads it with background cells to width.
func (t Theme) fillLine(line string, indent, width int) string {
	right := width - indent - lipgloss.Width(line)
	return t.blank(indent) + line + t.blank(right) + t.eraseEOL()
}

// PaintScreen lays content out on a width x height screen of theme
// background. When contentWidth is narrower than the screen the content
// column is centered.
func (t Theme) PaintScreen(content string, width, height, contentWidth int) string {
	lines := strings.Split(content, "\n")
	if height <= 0 {
		height = len(lines)
	}

	indent := 0
	if contentWidth > 0 && contentWidth < width {
		indent = (width - contentWidth) / 2
	}

	out := make([]string, height)
	for i := range out {
		var line string
		if i < len(lines) {
			line = lines[i]
		}
		out[i] = t.fillLine(line, indent, width)
	}
	return strings.Join(out, "\n")
}

// ClearLineEnds extends every line of already-placed content to the right
// terminal edge.
func (t Theme) ClearLineEnds(content string) string {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = line + t.eraseEOL()
	}
	return strings.Join(lines, "\n")
}

// NewList creates the entry list with theme-derived delegate and chrome.
func (t Theme) NewList(items []list.Item, width, height int) list.Model {
	l := list.New(items, t.ListDelegate(), width, height)
	l.Styles = t.ListStyles()
	return l
}

// ListDelegate styles list rows. The selected row carries a left bar in the
// accent color; other rows are indented to line up with it.
func (t Theme) ListDelegate() list.DefaultDelegate {
	d := list.NewDefaultDelegate()
	row := t.base(t.Primary).Padding(0, 0, 0, 2)
	selected := t.base(t.Accent).
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(t.Accent).
		Padding(0, 0, 0, 1)

	d.Styles.NormalTitle = row
	d.Styles.NormalDesc = row.Foreground(t.Muted)
	d.Styles.SelectedTitle = selected
	d.Styles.SelectedDesc = selected.Foreground(t.Secondary)
	d.Styles.DimmedTitle = row.Foreground(t.Muted)
	d.Styles.DimmedDesc = row.Foreground(t.Muted)
	return d
}

// ListStyles paints the list chrome on the theme background.
func (t Theme) ListStyles() list.Styles {
	s := list.DefaultStyles()
	s.Title = t.HeaderStyle()
	s.TitleBar = t.base(t.Primary)
	s.FilterPrompt = t.AccentStyle()
	s.FilterCursor = t.AccentStyle()
	s.ActivePaginationDot = t.AccentStyle()
	s.PaginationStyle = t.HelpStyle()
	s.HelpStyle = t.HelpStyle()
	s.InactivePaginationDot = t.HelpStyle()
	s.NoItems = t.HelpStyle()
	return s
}
