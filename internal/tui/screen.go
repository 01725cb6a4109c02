package tui

import (
	"fmt"
	"strings"
)

// ANSI escape codes
const (
	escClear      = "\x1b[2J"
	escHome       = "\x1b[H"
	escHideCursor = "\x1b[?25l"
	escShowCursor = "\x1b[?25h"
	escBold       = "\x1b[1m"
	escDim        = "\x1b[2m"
	escReset      = "\x1b[0m"
	escReverse    = "\x1b[7m"
	escCyan       = "\x1b[36m"
	escYellow     = "\x1b[33m"
	escRed        = "\x1b[31m"
	escGreen      = "\x1b[32m"
)

func (t *TUI) render() {
	t.updateSize()

	var sb strings.Builder

	// Hide cursor during render
	sb.WriteString(escHideCursor)
	sb.WriteString(escReset)
	sb.WriteString(escClear)
	sb.WriteString(escHome)

	// Calculate layout
	const (
		sepWidth       = 3 // " │ "
		maxListWidth   = 34
		minListWidth   = 14
		minStatusWidth = 16
		headerLines    = 2 // title + divider
		footerLines    = 3 // divider + status + footer
	)

	width := t.width
	height := t.height
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}

	listWidth := width / 2
	if listWidth > maxListWidth {
		listWidth = maxListWidth
	}
	if listWidth < minListWidth {
		listWidth = minListWidth
	}

	statusWidth := width - listWidth - sepWidth
	if statusWidth < minStatusWidth {
		statusWidth = minStatusWidth
	}

	contentHeight := height - headerLines - footerLines
	if contentHeight < 1 {
		contentHeight = 1
	}

	// Header
	sb.WriteString(escBold)
	sb.WriteString(escCyan)
	sb.WriteString(centerText("floatbar control", width))
	sb.WriteString(escReset)
	sb.WriteString("\r\n")

	// Divider
	sb.WriteString(strings.Repeat("─", width))
	sb.WriteString("\r\n")

	// Main content area
	buttonLines := t.renderButtonList(listWidth, contentHeight)
	statusLines := t.renderStatusPanel(statusWidth, contentHeight)

	for i := 0; i < contentHeight; i++ {
		if i < len(buttonLines) {
			sb.WriteString(buttonLines[i])
		} else {
			sb.WriteString(strings.Repeat(" ", listWidth))
		}

		sb.WriteString(" │ ")

		if i < len(statusLines) {
			sb.WriteString(statusLines[i])
		}

		sb.WriteString("\r\n")
	}

	// Divider
	sb.WriteString(strings.Repeat("─", width))
	sb.WriteString("\r\n")

	// Status line
	sb.WriteString(truncateANSI(t.renderStatusLine(), width))
	sb.WriteString("\r\n")

	// Footer with keybindings
	sb.WriteString(truncateANSI(t.renderFooter(), width))

	fmt.Print(sb.String())
}

func (t *TUI) renderButtonList(width, height int) []string {
	lines := make([]string, 0, height)

	title := escBold + "Buttons" + escReset
	lines = append(lines, padRight(title, width))

	for i, btn := range t.buttons {
		if len(lines) >= height {
			break
		}

		isSelected := i == t.selectedIndex

		// A dot marks buttons with a configured command.
		prefix := "  "
		if _, ok := t.commandFor(btn.Key); ok {
			prefix = escGreen + "* " + escReset
		}

		displayName := fmt.Sprintf("%-12s %s", btn.Key, btn.Label)
		if len(displayName) > width-4 {
			displayName = displayName[:width-7] + "..."
		}

		var line string
		if isSelected {
			line = escReverse + prefix + displayName + escReset
		} else {
			line = prefix + displayName
		}

		lines = append(lines, padRight(truncateANSI(line, width), width))
	}

	// Show the configured command for the selected button.
	if len(lines)+2 <= height && len(t.buttons) > 0 {
		lines = append(lines, strings.Repeat(" ", width))
		key := t.buttons[t.selectedIndex].Key
		cmdline, ok := t.commandFor(key)
		if !ok {
			cmdline = "(not configured)"
		}
		lines = append(lines, padRight(truncateANSI(escDim+cmdline+escReset, width), width))
	}

	return lines
}

func (t *TUI) renderStatusPanel(width, height int) []string {
	lines := make([]string, 0, height)

	title := escBold + "Daemon" + escReset
	lines = append(lines, padRight(title, width))

	if t.status == nil {
		lines = append(lines, padRight(escRed+"not running"+escReset, width))
		lines = append(lines, padRight(escDim+"start with: floatbar daemon"+escReset, width))
		return padLines(lines, width, height)
	}

	st := t.status

	visible := "hidden"
	if st.Visible {
		visible = "visible"
	}
	panel := "collapsed"
	if st.PanelExpanded {
		panel = "expanded"
	}

	rows := []struct {
		label string
		value string
	}{
		{"state", escCyan + st.PlaybackState + escReset},
		{"window", fmt.Sprintf("%s at %d,%d", visible, st.X, st.Y)},
		{"panel", panel},
		{"voice", orDash(st.Voice)},
		{"speed", orDash(st.Speed)},
		{"uptime", fmt.Sprintf("%ds", st.UptimeSeconds)},
	}

	for _, row := range rows {
		if len(lines) >= height {
			break
		}
		line := fmt.Sprintf("%s%-8s%s %s", escDim, row.label, escReset, row.value)
		lines = append(lines, padRight(truncateANSI(line, width), width))
	}

	return padLines(lines, width, height)
}

func orDash(s string) string {
	if s == "" {
		return escDim + "-" + escReset
	}
	return s
}

func padLines(lines []string, width, height int) []string {
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return lines
}

func (t *TUI) renderStatusLine() string {
	if t.lastError != "" {
		return fmt.Sprintf("%sError: %s%s", escRed, t.lastError, escReset)
	}

	if t.result == nil {
		return escDim + "No config loaded" + escReset
	}

	configured := 0
	for _, btn := range t.buttons {
		if _, ok := t.commandFor(btn.Key); ok {
			configured++
		}
	}

	return fmt.Sprintf("Commands: %s%d/%d configured%s  |  Voices: %s%d%s  |  Speeds: %s%d%s",
		escGreen, configured, len(t.buttons), escReset,
		escCyan, len(t.voices()), escReset,
		escYellow, len(t.speeds()), escReset)
}

func (t *TUI) renderFooter() string {
	keys := []string{
		"j/k/↑/↓:nav", "enter:press", "v/s:voice/speed", "t:toggle", "p:panel", "e:edit", "r:reload", "q/esc/^C:quit",
	}
	return escDim + strings.Join(keys, "  ") + escReset
}

func centerText(text string, width int) string {
	visibleLen := visibleLength(text)
	if visibleLen >= width {
		return text
	}
	padding := (width - visibleLen) / 2
	return strings.Repeat(" ", padding) + text
}

func padRight(text string, width int) string {
	visibleLen := visibleLength(text)
	if visibleLen >= width {
		return text
	}
	return text + strings.Repeat(" ", width-visibleLen)
}

// visibleLength returns the visible length of a string, ignoring ANSI codes.
func visibleLength(s string) int {
	inEscape := false
	length := 0
	for _, r := range s {
		if r == '\x1b' {
			inEscape = true
			continue
		}
		if inEscape {
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
				inEscape = false
			}
			continue
		}
		length++
	}
	return length
}

func truncateANSI(text string, width int) string {
	if width < 1 {
		return ""
	}
	if visibleLength(text) <= width {
		return text
	}

	var sb strings.Builder
	inEscape := false
	visible := 0
	for _, r := range text {
		if r == '\x1b' {
			inEscape = true
			sb.WriteRune(r)
			continue
		}
		if inEscape {
			sb.WriteRune(r)
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
				inEscape = false
			}
			continue
		}

		if visible >= width-1 {
			break
		}
		sb.WriteRune(r)
		visible++
	}

	sb.WriteString("…")
	sb.WriteString(escReset)
	return sb.String()
}
