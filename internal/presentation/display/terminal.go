package display

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/maypok86/otter/v2"
	"github.com/penwyp/go-stampwatch/internal/core/constants"
	"github.com/penwyp/go-stampwatch/internal/core/model"
	"github.com/penwyp/go-stampwatch/internal/util"
	"golang.org/x/term"
)

const (
	defaultWidth  = 80
	defaultHeight = 24

	headerLines = 2
	footerLines = 3
	linesPerRow = 2
)

// Frame is the data needed to draw one screen of the list
type Frame struct {
	Rows     []model.Row
	Capacity int
	Since    time.Duration
	HasLast  bool
	Full     bool
}

type rowKey struct {
	Title    string
	Subtitle string
	Width    int
	Selected bool
}

type TerminalDisplay struct {
	config            *DisplayConfig
	out               io.Writer
	size              func() (int, int)
	inAlternateScreen bool
	currentMode       model.DisplayMode
	isFirstRender     bool

	highlight *color.Color
	accent    *color.Color
	warn      *color.Color
	rowCache  *otter.Cache[rowKey, string]

	mu sync.Mutex
}

func NewTerminalDisplay(config *DisplayConfig, out io.Writer) *TerminalDisplay {
	if out == nil {
		out = os.Stdout
	}
	td := &TerminalDisplay{
		config:        config,
		out:           out,
		size:          terminalSize,
		isFirstRender: true,
		currentMode:   model.ModeNormal,
		highlight:     color.New(color.BgRed, color.FgWhite),
		accent:        color.New(color.Bold),
		warn:          color.New(color.FgYellow),
		rowCache: otter.Must(&otter.Options[rowKey, string]{
			MaximumSize: constants.RowCacheSize,
		}),
	}
	for _, c := range []*color.Color{td.highlight, td.accent, td.warn} {
		if config.Color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return td
}

func terminalSize() (int, int) {
	w, h, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 || h <= 0 {
		return defaultWidth, defaultHeight
	}
	return w, h
}

// SetSizeFunc overrides how the terminal size is determined
func (td *TerminalDisplay) SetSizeFunc(fn func() (int, int)) {
	td.size = fn
}

// EnterAlternateScreen switches to alternate screen buffer
func (td *TerminalDisplay) EnterAlternateScreen() {
	td.mu.Lock()
	defer td.mu.Unlock()
	if td.inAlternateScreen {
		return
	}
	fmt.Fprint(td.out, util.EnterAlternateScreen, util.ClearScreen, util.ClearScrollback,
		util.HideCursor, util.MoveCursorHome)
	td.inAlternateScreen = true
	td.isFirstRender = true
}

// ExitAlternateScreen returns to normal screen buffer
func (td *TerminalDisplay) ExitAlternateScreen() {
	td.mu.Lock()
	defer td.mu.Unlock()
	if !td.inAlternateScreen {
		return
	}
	fmt.Fprint(td.out, util.ClearScreen, util.MoveCursorHome, util.ShowCursor, util.ExitAlternateScreen)
	td.inAlternateScreen = false
}

// Bell rings the terminal bell
func (td *TerminalDisplay) Bell() {
	td.mu.Lock()
	defer td.mu.Unlock()
	fmt.Fprint(td.out, util.Bell)
}

// VisibleRows is how many list rows fit on the current screen
func (td *TerminalDisplay) VisibleRows() int {
	_, h := td.size()
	return visibleRows(h)
}

func visibleRows(height int) int {
	n := (height - headerLines - footerLines) / linesPerRow
	if n < 1 {
		return 1
	}
	return n
}

// determineDisplayMode determines the current display mode based on interaction state
func (td *TerminalDisplay) determineDisplayMode(state model.InteractionState) model.DisplayMode {
	if state.ConfirmDialog != nil {
		return model.ModeDialog
	}
	if state.ShowHelp {
		return model.ModeHelp
	}
	return model.ModeNormal
}

// Render draws the frame for the given interaction state
func (td *TerminalDisplay) Render(frame Frame, state model.InteractionState) {
	td.mu.Lock()
	defer td.mu.Unlock()

	width, height := td.size()

	var b strings.Builder
	mode := td.determineDisplayMode(state)
	if td.isFirstRender || mode != td.currentMode {
		b.WriteString(util.ClearScreen)
		td.isFirstRender = false
		td.currentMode = mode
	}
	b.WriteString(util.MoveCursorHome)

	var lines []string
	switch mode {
	case model.ModeDialog:
		lines = td.dialogLines(state.ConfirmDialog, width)
	case model.ModeHelp:
		lines = td.helpLines(width)
	default:
		lines = td.listLines(frame, state, width, height)
	}

	for i, line := range lines {
		if i > 0 {
			b.WriteString("\r\n")
		}
		b.WriteString(line)
	}
	b.WriteString(util.ClearToEndOfScreen)

	fmt.Fprint(td.out, b.String())
}

func (td *TerminalDisplay) listLines(frame Frame, state model.InteractionState, width, height int) []string {
	lines := make([]string, 0, height)
	lines = append(lines, td.headerLine(frame, width), util.Separator(width))

	visible := visibleRows(height)
	if len(frame.Rows) == 0 {
		lines = append(lines, util.PadRight("  No timestamps. Press Enter to record one.", width))
	}
	end := min(state.Offset+visible, len(frame.Rows))
	for i := state.Offset; i < end; i++ {
		lines = append(lines, td.renderRow(frame.Rows[i], i == state.Selected, width))
	}

	// Keep the footer anchored to the bottom of the screen
	body := headerLines + (end-state.Offset)*linesPerRow
	if len(frame.Rows) == 0 {
		body = headerLines + 1
	}
	for body < height-footerLines {
		lines = append(lines, "")
		body++
	}

	lines = append(lines,
		util.Separator(width),
		util.PadRight("  enter stamp  r reset  ↑/↓ move  h help  q quit", width),
		util.PadRight(statusText(state.StatusMessage), width),
	)
	return lines
}

func (td *TerminalDisplay) headerLine(frame Frame, width int) string {
	left := " " + constants.AppName
	right := util.FormatCounter(len(frame.Rows), frame.Capacity)
	if frame.HasLast {
		right += "   since last " + util.FormatDuration(frame.Since)
	}
	if frame.Full {
		if td.config.Policy == model.OverflowRotate {
			right += "   " + td.warn.Sprint("ROTATING")
		} else {
			right += "   " + td.warn.Sprint("FULL")
		}
	}
	right += " "

	gap := width - util.GetDisplayWidth(left) - util.GetDisplayWidth(stripColor(right))
	if gap < 1 {
		gap = 1
	}
	return td.accent.Sprint(left) + strings.Repeat(" ", gap) + right
}

// renderRow returns the two screen lines of a row, joined by CRLF
func (td *TerminalDisplay) renderRow(row model.Row, selected bool, width int) string {
	key := rowKey{Title: row.Title, Subtitle: row.Subtitle, Width: width, Selected: selected}
	if cached, ok := td.rowCache.GetIfPresent(key); ok {
		return cached
	}

	marker := "  "
	if selected {
		marker = "▶ "
	}
	title := util.PadRight(marker+row.Title, width)
	subtitle := util.PadRight("    "+row.Subtitle, width)
	if selected {
		title = td.highlight.Sprint(title)
		subtitle = td.highlight.Sprint(subtitle)
	}

	rendered := title + "\r\n" + subtitle
	td.rowCache.Set(key, rendered)
	return rendered
}

func (td *TerminalDisplay) helpLines(width int) []string {
	lines := []string{
		util.PadRight(" "+constants.AppName+" - Help", width),
		strings.Repeat("═", width),
		"",
		"  Keyboard Shortcuts:",
		"",
		"  Enter/Space   - Record the current time",
		"  r             - Reset the list and record the current time",
		"  ↑/k ↓/j       - Move selection",
		"  g/Home G/End  - Jump to newest / oldest",
		"  PgUp/PgDn     - Move one page",
		"  h/?           - Toggle this help",
		"  q/Esc/Ctrl+C  - Quit",
		"",
		strings.Repeat("═", width),
		"  Press 'h' to return...",
	}
	for i, line := range lines {
		lines[i] = util.PadRight(line, width)
	}
	return lines
}

func (td *TerminalDisplay) dialogLines(dialog *model.ConfirmDialog, width int) []string {
	boxWidth := min(60, width)
	padding := strings.Repeat(" ", max((width-boxWidth)/2, 0))
	inner := boxWidth - 2

	lines := []string{"", "", "", ""}
	lines = append(lines,
		padding+"╔"+strings.Repeat("═", inner)+"╗",
		padding+"║"+util.CenterText(dialog.Title, inner)+"║",
		padding+"╠"+strings.Repeat("═", inner)+"╣",
		padding+"║"+strings.Repeat(" ", inner)+"║",
	)
	for _, line := range wrapText(dialog.Message, inner-2) {
		lines = append(lines, padding+"║ "+util.PadRight(line, inner-2)+" ║")
	}
	lines = append(lines,
		padding+"║"+strings.Repeat(" ", inner)+"║",
		padding+"║"+util.CenterText("(Y)es / (N)o", inner)+"║",
		padding+"╚"+strings.Repeat("═", inner)+"╝",
	)
	return lines
}

func statusText(message string) string {
	if message == "" {
		return ""
	}
	return "  Status: " + message
}

// wrapText wraps text to fit within the specified width
func wrapText(text string, width int) []string {
	if text == "" {
		return []string{}
	}
	if util.GetDisplayWidth(text) <= width {
		return []string{text}
	}

	var lines []string
	currentLine := ""
	for _, word := range strings.Fields(text) {
		if currentLine == "" {
			currentLine = word
		} else if util.GetDisplayWidth(currentLine)+1+util.GetDisplayWidth(word) <= width {
			currentLine += " " + word
		} else {
			lines = append(lines, currentLine)
			currentLine = word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}
	return lines
}

// stripColor removes SGR sequences so the visible width can be measured
func stripColor(s string) string {
	var b strings.Builder
	inEscape := false
	for _, r := range s {
		switch {
		case r == '\033':
			inEscape = true
		case inEscape:
			if r == 'm' {
				inEscape = false
			}
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
