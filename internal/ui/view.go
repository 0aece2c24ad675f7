package ui

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/rustybrooks/dcui/internal/format/table"
)

const (
	maxPanelWidth = 32
	minPanelTotal = 40
)

// screenArea is a region of the terminal in character cells.
type screenArea struct {
	x, y          int
	width, height int
}

// View renders the header, pane grid, status line and help footer.
func (m *Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	if m.showDebug {
		return m.viewDebug()
	}

	lines := make([]string, 0, m.height)
	lines = append(lines, fitLine(styles.Header.Render(m.headerText()), m.width))
	lines = append(lines, m.viewBody()...)
	lines = append(lines, m.viewStatus()...)
	if m.showFooter {
		m.help.Width = m.width
		lines = append(lines, fitLine(styles.Footer.Render(m.help.View(m.keys)), m.width))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) headerText() string {
	cols, rows := m.engine.Grid()
	count := m.engine.Len()
	noun := "panes"
	if count == 1 {
		noun = "pane"
	}
	return fmt.Sprintf("dcui  %d %s  next split: %s  grid %dx%d", count, noun, m.engine.LastSplitAxis(), cols, rows)
}

func (m *Model) chromeHeight() int {
	h := 2
	if m.jump != nil {
		h++
	}
	if m.showFooter {
		h++
	}
	return h
}

func (m *Model) panelWidth() int {
	if !m.showPanel || m.width < minPanelTotal {
		return 0
	}
	return min(maxPanelWidth, m.width/3)
}

// gridArea is the part of the screen the pane grid is drawn into.
func (m *Model) gridArea() screenArea {
	pw := m.panelWidth()
	return screenArea{
		x:      pw,
		y:      1,
		width:  max(m.width-pw, 0),
		height: max(m.height-m.chromeHeight(), 0),
	}
}

func (m *Model) viewBody() []string {
	area := m.gridArea()
	if area.height == 0 {
		return nil
	}
	grid := m.renderGrid(area.width, area.height)
	pw := m.panelWidth()
	if pw == 0 {
		return grid
	}
	panel := m.renderPanel(pw, area.height)
	out := make([]string, area.height)
	for i := range out {
		out[i] = panel[i] + grid[i]
	}
	return out
}

// renderGrid draws every pane box at its scaled position and returns
// exactly height lines of width cells.
func (m *Model) renderGrid(width, height int) []string {
	if width <= 0 {
		return fitLines("", 0, height)
	}
	if len(m.order) == 0 {
		hint := lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			styles.Info.Render("no panes: press "+m.keys.AddPane.Help().Key+" to add one"))
		return fitLines(hint, width, height)
	}

	type placed struct {
		area  screenArea
		lines []string
	}
	cols, rows := m.engine.Grid()
	boxes := make([]placed, 0, len(m.order))
	for _, id := range m.order {
		v := m.views[id]
		a := paneArea(v, cols, rows, width, height)
		if a.width <= 0 || a.height <= 0 {
			continue
		}
		boxes = append(boxes, placed{area: a, lines: renderPane(v, a.width, a.height)})
	}
	// Boxes sharing a line never overlap horizontally, so writing them in
	// column order lays each line out left to right.
	slices.SortStableFunc(boxes, func(a, b placed) int { return cmp.Compare(a.area.x, b.area.x) })

	out := make([]string, height)
	for y := range out {
		var b strings.Builder
		cursor := 0
		for _, p := range boxes {
			if y < p.area.y || y >= p.area.y+p.area.height {
				continue
			}
			if p.area.x > cursor {
				b.WriteString(strings.Repeat(" ", p.area.x-cursor))
			}
			b.WriteString(p.lines[y-p.area.y])
			cursor = p.area.x + p.area.width
		}
		out[y] = fitLine(b.String(), width)
	}
	return out
}

// paneArea scales a pane's cell rectangle onto a width x height screen.
func paneArea(v *paneView, cols, rows, width, height int) screenArea {
	x0 := scale(v.rect.Col, cols, width)
	x1 := scale(v.rect.Col+v.rect.Width, cols, width)
	y0 := scale(v.rect.Row, rows, height)
	y1 := scale(v.rect.Row+v.rect.Height, rows, height)
	return screenArea{x: x0, y: y0, width: x1 - x0, height: y1 - y0}
}

func renderPane(v *paneView, width, height int) []string {
	if width < 2 || height < 2 {
		return fitLines("", width, height)
	}
	box, title := styles.Pane, styles.PaneTitle
	if v.selected {
		box, title = styles.SelectedPane, styles.SelectedTitle
	}
	innerW, innerH := width-2, height-2

	var inner string
	if innerW > 0 && innerH > 0 {
		label := truncate.StringWithTail(fmt.Sprintf("#%d %s", v.id, v.title), uint(innerW), "…")
		inner = title.Width(innerW).Render(label)
		if innerH > 1 && v.content != nil {
			inner += "\n" + styles.PaneBody.Render(v.content.View(innerW, innerH-1))
		}
	}
	return fitLines(box.Width(innerW).Height(innerH).Render(inner), width, height)
}

func (m *Model) renderPanel(width, height int) []string {
	inner := width - 1
	lines := []string{styles.PanelHeading.Render("compose files")}
	files := m.compose.Entries()
	if len(files) == 0 {
		lines = append(lines, styles.PanelItem.Render("(none)"))
	}
	for _, f := range files {
		marker, style := "  ", styles.PanelItem
		switch {
		case f.Err != nil:
			marker, style = "! ", styles.Error
		case f.Revision > 0:
			marker = "+ "
		}
		lines = append(lines, style.Render(truncate.StringWithTail(marker+composeTitle(f.Path), uint(inner), "…")))
	}
	lines = append(lines, "", styles.PanelHeading.Render("panes"))

	rows := make([][]string, 0, len(m.order))
	for _, id := range m.order {
		v := m.views[id]
		rows = append(rows, []string{fmt.Sprintf("#%d", id), v.title, fmt.Sprintf("%dx%d", v.rect.Width, v.rect.Height)})
	}
	for i, row := range table.Format(rows, []table.Alignment{table.AlignRight, table.AlignLeft, table.AlignRight}) {
		row = truncate.StringWithTail(row, uint(inner), "…")
		if m.order[i] == m.selected {
			lines = append(lines, styles.PanelSelected.Render(row))
		} else {
			lines = append(lines, styles.PanelItem.Render(row))
		}
	}

	body := strings.Join(fitLines(strings.Join(lines, "\n"), inner, height), "\n")
	return fitLines(styles.Panel.Render(body), width, height)
}

func (m *Model) viewStatus() []string {
	if m.jump != nil {
		return []string{
			fitLine(m.jump.input.View(), m.width),
			fitLine(m.jumpMatches(), m.width),
		}
	}
	switch {
	case m.errMsg != "":
		return []string{fitLine(styles.Error.Render(m.errMsg), m.width)}
	case m.infoMsg != "":
		return []string{fitLine(styles.Info.Render(m.infoMsg), m.width)}
	}
	return []string{fitLine("", m.width)}
}

func (m *Model) jumpMatches() string {
	list := m.jump.list
	if len(list.Items) == 0 {
		return styles.Error.Render("no matches")
	}
	parts := make([]string, len(list.Items))
	for i, item := range list.Items {
		label := fmt.Sprintf("#%s %s", item.ID, item.Label)
		if i == list.Cursor {
			parts[i] = styles.Match.Render("> " + label)
		} else {
			parts[i] = styles.Info.Render("  " + label)
		}
	}
	return strings.Join(parts, " ")
}

func (m *Model) viewDebug() string {
	m.refreshDebug()
	head := fitLine(styles.Header.Render("layout log ("+m.keys.ToggleDebug.Help().Key+" closes)"), m.width)
	return head + "\n" + m.debug.View()
}

func (m *Model) refreshDebug() {
	m.debug.Width = max(m.width, 0)
	m.debug.Height = max(m.height-1, 0)
	lines := make([]string, len(m.layoutLog))
	for i, line := range m.layoutLog {
		lines[i] = styles.DebugLine.Render(line)
	}
	atBottom := m.debug.AtBottom()
	m.debug.SetContent(strings.Join(lines, "\n"))
	if atBottom {
		m.debug.GotoBottom()
	}
}

// fitLines returns exactly height lines of exactly width cells.
func fitLines(s string, width, height int) []string {
	out := make([]string, height)
	src := strings.Split(s, "\n")
	for i := range out {
		line := ""
		if i < len(src) {
			line = src[i]
		}
		out[i] = fitLine(line, width)
	}
	return out
}

// fitLine truncates or pads a possibly styled line to width cells.
func fitLine(line string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(line) > width {
		line = truncate.String(line, uint(width))
	}
	if pad := width - lipgloss.Width(line); pad > 0 {
		line += strings.Repeat(" ", pad)
	}
	return line
}
