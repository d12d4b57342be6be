package ui

import (
	"fmt"
	"strings"

	"github.com/atomicstack/nvim-switcher/internal/picker"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/truncate"
)

const (
	itemIndicator  = "▌"
	modifiedMarker = "+"
	footerHints    = "↑/↓ move  enter switch  esc cancel"
)

type styledLine struct {
	text  string
	style *lipgloss.Style
	raw   bool // text is already styled; use ANSI-aware truncation
}

// View implements tea.Model.
func (m *Model) View() string {
	state := m.store.State()
	lines := make([]styledLine, 0, picker.MaxCandidates+4)
	lines = append(lines, m.headerLine(state))
	if !m.loading {
		if len(state.Candidates) == 0 {
			msg := "(no buffers)"
			if state.Query != "" {
				msg = fmt.Sprintf("No matches for %q", state.Query)
			}
			lines = append(lines, styledLine{text: msg, style: styles.Info})
		}
		for i, entry := range state.Candidates {
			if i >= picker.MaxCandidates {
				break
			}
			lines = append(lines, m.buildItemLine(entry, i == state.Selected))
		}
	}
	if m.showFooter {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: footerHints, style: styles.Footer})
	}
	// Reserve 2 rows for the bottom bar (status + prompt).
	lines = limitHeight(lines, m.height-2, m.width)
	lines = applyWidth(lines, m.width)

	var status styledLine
	if m.errMsg != "" {
		status = styledLine{text: fmt.Sprintf("Error: %s", m.errMsg), style: styles.Error}
	}
	bottom := applyWidth([]styledLine{status, {text: m.query.View(), raw: true}}, m.width)
	lines = append(lines, bottom...)
	return renderLines(lines)
}

func (m *Model) headerLine(state picker.State) styledLine {
	if m.loading {
		return styledLine{text: "Loading buffers…", style: styles.Loading}
	}
	return styledLine{text: fmt.Sprintf("buffers (%d)", len(state.Baseline)), style: styles.Header}
}

// buildItemLine renders one candidate. Duplicate base names carry their
// directory as a dim prefix.
func (m *Model) buildItemLine(entry picker.Entry, selected bool) styledLine {
	lineStyle := styles.Item
	indicatorStyle := styles.ItemIndicator
	if selected {
		lineStyle = styles.SelectedItem
		indicatorStyle = styles.SelectedItemIndicator
	}
	marker := " "
	if entry.Modified {
		marker = modifiedMarker
	}

	var b strings.Builder
	b.WriteString(render(indicatorStyle, itemIndicator))
	b.WriteString(render(lineStyle, " "))
	b.WriteString(render(inherit(styles.Modified, lineStyle), marker))
	b.WriteString(render(lineStyle, " "))
	if entry.Duplicate {
		b.WriteString(render(inherit(styles.Directory, lineStyle), entry.Directory+"/"))
	}
	b.WriteString(render(lineStyle, entry.BaseName))

	text := b.String()
	if m.width > 0 {
		if pad := m.width - ansi.StringWidth(text); pad > 0 {
			text += render(lineStyle, strings.Repeat(" ", pad))
		}
	}
	return styledLine{text: text, raw: true}
}

func render(style *lipgloss.Style, value string) string {
	if style == nil || value == "" {
		return value
	}
	return style.Render(value)
}

// inherit layers base under style so row backgrounds carry through.
func inherit(style, base *lipgloss.Style) *lipgloss.Style {
	if style == nil {
		return base
	}
	if base == nil {
		return style
	}
	merged := style.Copy().Inherit(*base)
	return &merged
}

func limitHeight(lines []styledLine, height, width int) []styledLine {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []styledLine{{text: truncateText("…", width)}}
	}
	trimmed := make([]styledLine, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	trimmed = append(trimmed, styledLine{text: truncateText("…", width)})
	return trimmed
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			if ansi.StringWidth(text) > width {
				text = ansi.Truncate(text, width, "…")
			}
		} else {
			text = truncateText(text, width)
		}
		result[i] = styledLine{text: text, style: line.style, raw: line.raw}
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		if line.raw {
			out[i] = line.text
			continue
		}
		out[i] = render(line.style, line.text)
	}
	return strings.Join(out, "\n")
}

func truncateText(text string, width int) string {
	if width <= 0 || ansi.StringWidth(text) <= width {
		return text
	}
	if width == 1 {
		return string([]rune(text)[:1])
	}
	return truncate.StringWithTail(text, uint(width), "…")
}
