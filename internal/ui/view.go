package ui

import (
	"fmt"
	"strings"

	"github.com/atomicstack/treemenu/internal/menu"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

const (
	menuHeaderSeparator = "→"
	emptyMenuMessage    = "No options available"
	emptyMenuShrug      = `¯\_(°_O)_/¯`
	selectedPrefix      = "  > "
	itemPrefix          = "    "
)

type styledLine struct {
	text          string
	style         *lipgloss.Style
	prefixStyle   *lipgloss.Style
	highlightFrom int
	raw           bool // text contains ANSI escapes; skip style wrapping, use ANSI-aware truncation
}

// layout carries everything renderFrame needs besides the node itself.
type layout struct {
	width  int
	height int
	status []styledLine
}

// render refreshes the cached frame unless rendering is suspended.
func (m *Model) render() {
	if m.suspendRender {
		return
	}
	m.frame = renderFrame(m.focus, layout{
		width:  m.width,
		height: m.height,
		status: m.statusLines(),
	})
	m.renders++
}

func (m *Model) statusLines() []styledLine {
	var lines []styledLine
	if m.infoMsg != "" {
		lines = append(lines, styledLine{}, styledLine{text: m.infoMsg, style: styles.Running})
	}
	if m.errMsg != "" {
		lines = append(lines, styledLine{}, styledLine{text: fmt.Sprintf("Error: %s", m.errMsg), style: styles.Error})
	}
	if m.verbose && m.focus != nil && m.focus.Len() > 0 {
		position := fmt.Sprintf("%d/%d", m.focus.Selected()+1, m.focus.Len())
		lines = append(lines, styledLine{}, styledLine{text: position, style: styles.Footer})
	}
	if m.showFooter {
		lines = append(lines, styledLine{}, styledLine{text: m.help.View(m.keys), raw: true})
	}
	return lines
}

// renderFrame projects node into a frame string. Only menus have a visual
// representation; any other node renders as an empty frame.
func renderFrame(node menu.Node, l layout) string {
	current, ok := node.(*menu.Menu)
	if !ok || current == nil {
		return ""
	}
	lines := menuHeaderLines(current)
	maxItems := 0
	if l.height > 0 {
		maxItems = l.height - len(lines) - len(l.status)
		if maxItems < 1 {
			maxItems = 1
		}
	}
	lines = append(lines, menuBodyLines(current, maxItems)...)
	lines = append(lines, l.status...)
	lines = limitHeight(lines, l.height, l.width)
	lines = applyWidth(lines, l.width)
	return renderLines(lines)
}

func menuHeaderLines(current *menu.Menu) []styledLine {
	lines := []styledLine{
		{},
		{text: "  " + strings.ToUpper(current.Title()), style: styles.Header},
	}
	if current.Parent() != nil {
		lines = append(lines, styledLine{text: "  " + breadcrumb(current), style: styles.Breadcrumb})
	}
	return append(lines, styledLine{})
}

func breadcrumb(current *menu.Menu) string {
	path := current.Path()
	for i, title := range path {
		path[i] = strings.ToLower(title)
	}
	return strings.Join(path, menuHeaderSeparator)
}

func menuBodyLines(current *menu.Menu, maxItems int) []styledLine {
	children := current.Children()
	if len(children) == 0 {
		return []styledLine{
			{text: "  " + emptyMenuMessage, style: styles.Empty},
			{},
			{text: "      " + emptyMenuShrug, style: styles.Empty},
		}
	}
	selected := current.Selected()
	start, end := pageWindow(selected, len(children), maxItems)
	lines := make([]styledLine, 0, end-start)
	for idx := start; idx < end; idx++ {
		lines = append(lines, itemLine(children[idx].DisplayText(), idx == selected))
	}
	return lines
}

func itemLine(text string, selected bool) styledLine {
	if selected {
		return styledLine{
			text:          selectedPrefix + text,
			style:         styles.SelectedItem,
			prefixStyle:   styles.SelectedMark,
			highlightFrom: len([]rune(selectedPrefix)),
		}
	}
	return styledLine{
		text:          itemPrefix + text,
		style:         styles.Item,
		prefixStyle:   styles.ItemMarker,
		highlightFrom: len([]rune(itemPrefix)),
	}
}

// pageWindow returns the half-open range of rows to show so the page
// holding selected is visible. size <= 0 shows everything.
func pageWindow(selected, total, size int) (int, int) {
	if size <= 0 || total <= size {
		return 0, total
	}
	if selected < 0 {
		selected = 0
	}
	start := (selected / size) * size
	end := start + size
	if end > total {
		end = total
	}
	return start, end
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
			if lipgloss.Width(text) > width {
				text = truncate.StringWithTail(text, uint(width-1), "…")
			}
		} else {
			text = truncateText(text, width)
		}
		result[i] = styledLine{
			text:          text,
			style:         line.style,
			prefixStyle:   line.prefixStyle,
			highlightFrom: line.highlightFrom,
			raw:           line.raw,
		}
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			out[i] = text
			continue
		}
		runes := []rune(text)
		if line.highlightFrom > 0 && line.highlightFrom < len(runes) {
			head := string(runes[:line.highlightFrom])
			tail := string(runes[line.highlightFrom:])
			if line.prefixStyle != nil {
				head = line.prefixStyle.Render(head)
			}
			if line.style != nil {
				tail = line.style.Render(tail)
			}
			text = head + tail
		} else if line.style != nil {
			text = line.style.Render(text)
		}
		out[i] = text
	}
	return strings.Join(out, "\n")
}

func truncateText(text string, width int) string {
	if width <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}
	if width == 1 {
		return string(runes[:1])
	}
	return string(runes[:width-1]) + "…"
}
