package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/michaelscutari/dirlist/internal/entry"
)

// View implements tea.Model.
func (m *Model) View() string {
	if m.err != nil {
		return fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err)
	}

	if m.scanMeta == nil {
		return "Loading..."
	}

	var b strings.Builder
	headerLines := 0

	writeLine := func(line string) {
		b.WriteString(line)
		b.WriteString("\n")
		headerLines++
	}

	writeLine(titleStyle.Render("dirlist - Inventory Browser"))

	scanInfo := fmt.Sprintf("Scan: %s | Size: %s | Files: %s | Diagnostics: %s",
		m.scanMeta.StartTime.Format("2006-01-02 15:04"),
		FormatSize(m.scanMeta.TotalSize),
		FormatCount(m.scanMeta.FileCount),
		FormatCount(m.scanMeta.ErrorCount),
	)
	writeLine(statsStyle.Render(scanInfo))

	rootLabel := fmt.Sprintf("Root: %s", truncateMiddle(m.scanMeta.RootPath, max(10, m.width-6)))
	writeLine(breadcrumbStyle.Render(rootLabel))

	if m.showDiagnostics {
		return m.viewDiagnostics(&b, headerLines)
	}

	status := fmt.Sprintf("Files: %s", FormatCount(int64(len(m.records))))
	if m.filter != "" {
		status += fmt.Sprintf(" | Filter: %q", m.filter)
	}
	if len(m.records) > 0 && m.cursor < len(m.records) {
		sel := m.records[m.cursor]
		status += fmt.Sprintf(" | Sel: %s", truncateMiddle(sel.Path, max(10, m.width-len(status)-8)))
	}
	writeLine(statusStyle.Render(status))

	if m.filterActive {
		writeLine(filterStyle.Render(fmt.Sprintf("Filter: %s_", m.filter)))
	} else if m.filter != "" {
		writeLine(filterStyle.Render(fmt.Sprintf("Filter: %s", m.filter)))
	}

	sizeLabel := headerLabel("SIZE", m.sort == SortBySize, "v")
	mtimeLabel := headerLabel("MODIFIED", m.sort == SortByMtime, "v")
	nameLabel := headerLabel("NAME", m.sort == SortByName, "^")
	if m.sort == SortByPath {
		nameLabel = "NAME (by path)"
	}

	// header row + footer (blank + help)
	visibleRows := max(m.height-headerLines-1-2, 5)
	startIdx, endIdx := window(m.cursor, len(m.records), visibleRows)

	widths := calcColumnWidths(m.records, startIdx, endIdx, sizeLabel, mtimeLabel, m.timeFormat)
	nameWidth := calcNameWidth(m.width, widths)
	gap := strings.Repeat(" ", colGap)

	nameLabel = truncateRight(nameLabel, nameWidth)
	header := fmt.Sprintf("%*s%s%-*s%s%-*s%s%*s",
		widths.size, sizeLabel,
		gap,
		widths.mtime, mtimeLabel,
		gap,
		nameWidth, nameLabel,
		gap,
		barColWidth, "SIZE%",
	)
	writeLine(headerStyle.Render(header))

	for i := startIdx; i < endIdx; i++ {
		b.WriteString(m.formatRecord(m.records[i], i == m.cursor, widths, nameWidth))
		b.WriteString("\n")
	}
	for i := endIdx - startIdx; i < visibleRows; i++ {
		b.WriteString("\n")
	}

	b.WriteString("\n")
	help := m.helpLine()
	if len(m.records) > 0 {
		help = fmt.Sprintf("%s [%d/%d]", help, m.cursor+1, len(m.records))
	}
	b.WriteString(helpStyle.Render(help))

	return b.String()
}

func (m *Model) viewDiagnostics(b *strings.Builder, headerLines int) string {
	b.WriteString(headerStyle.Render(fmt.Sprintf("DIAGNOSTICS (%s)", FormatCount(int64(len(m.diagnostics))))))
	b.WriteString("\n")

	visibleRows := max(m.height-headerLines-1-2, 5)
	startIdx, endIdx := window(m.diagCursor, len(m.diagnostics), visibleRows)

	if len(m.diagnostics) == 0 {
		b.WriteString(statusStyle.Render("No diagnostics recorded."))
		b.WriteString("\n")
	}
	for i := startIdx; i < endIdx; i++ {
		line := truncateRight(m.diagnostics[i], max(m.width, minNameWidth))
		if i == m.diagCursor {
			line = selectedStyle.Render(line)
		} else {
			line = diagStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	help := m.helpLine()
	if len(m.diagnostics) > 0 {
		help = fmt.Sprintf("%s [%d/%d]", help, m.diagCursor+1, len(m.diagnostics))
	}
	b.WriteString(helpStyle.Render(help))
	return b.String()
}

// window returns the visible [start, end) range keeping cursor on screen.
func window(cursor, n, visible int) (int, int) {
	start := 0
	if cursor >= visible {
		start = cursor - visible + 1
	}
	return start, min(n, start+visible)
}

type columnWidths struct {
	size  int
	mtime int
}

const (
	colGap        = 2
	minNameWidth  = 10
	barBlockWidth = 10                                        // number of block characters
	barPctWidth   = 4                                         // " 78%" or "100%"
	barGapWidth   = 1                                         // space between blocks and pct
	barColWidth   = barBlockWidth + barGapWidth + barPctWidth // 15
)

func calcColumnWidths(records []entry.Record, startIdx, endIdx int, sizeLabel, mtimeLabel string, format func(time.Time) string) columnWidths {
	w := columnWidths{size: len(sizeLabel), mtime: len(mtimeLabel)}
	for i := startIdx; i < endIdx; i++ {
		w.size = max(w.size, len(FormatSize(int64(records[i].Size))))
		w.mtime = max(w.mtime, len(format(records[i].Modified)))
	}
	return w
}

func calcNameWidth(totalWidth int, w columnWidths) int {
	used := w.size + w.mtime + colGap*3 + barColWidth
	return max(totalWidth-used, minNameWidth)
}

// truncateRight shortens s to maxLen display columns, marking the cut with "...".
func truncateRight(s string, maxLen int) string {
	if maxLen <= 0 || runewidth.StringWidth(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return runewidth.Truncate(s, maxLen, "")
	}
	return runewidth.Truncate(s, maxLen, "...")
}

func (m *Model) formatRecord(r entry.Record, selected bool, widths columnWidths, nameWidth int) string {
	name := truncateRight(r.Name, nameWidth)
	pad := max(nameWidth-runewidth.StringWidth(name), 0)

	gap := strings.Repeat(" ", colGap)
	size := fmt.Sprintf("%*s", widths.size, FormatSize(int64(r.Size)))
	mtime := fmt.Sprintf("%-*s", widths.mtime, m.timeFormat(r.Modified))

	if selected {
		line := size + gap + mtime + gap + name + strings.Repeat(" ", pad) + gap +
			formatBar(int64(r.Size), m.scanMeta.TotalSize, false)
		return selectedStyle.Render(line)
	}
	return sizeStyle.Render(size) + gap + mtimeStyle.Render(mtime) + gap +
		fileStyle.Render(name) + strings.Repeat(" ", pad) + gap +
		formatBar(int64(r.Size), m.scanMeta.TotalSize, true)
}

// formatBar renders value as a share of total.
func formatBar(value, total int64, styled bool) string {
	render := func(s string, filled bool) string {
		if !styled {
			return s
		}
		if filled {
			return barFilledStyle.Render(s)
		}
		return barEmptyStyle.Render(s)
	}

	if total <= 0 || value <= 0 {
		return render(strings.Repeat("░", barBlockWidth), false) + fmt.Sprintf(" %3d%%", 0)
	}

	pct := min(float64(value)/float64(total)*100, 100)
	filled := int(math.Round(pct / 100 * float64(barBlockWidth)))
	filled = min(max(filled, 1), barBlockWidth)

	return render(strings.Repeat("█", filled), true) +
		render(strings.Repeat("░", barBlockWidth-filled), false) +
		fmt.Sprintf(" %3d%%", int(math.Round(pct)))
}

func headerLabel(label string, active bool, dir string) string {
	if active {
		return label + dir
	}
	return label
}

// truncateMiddle shortens s to maxLen display columns, keeping both ends.
func truncateMiddle(s string, maxLen int) string {
	if maxLen <= 0 || runewidth.StringWidth(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return runewidth.Truncate(s, maxLen, "")
	}
	headWidth := (maxLen - 3) / 2
	tailWidth := maxLen - 3 - headWidth

	runes := []rune(s)
	start, width := len(runes), 0
	for start > 0 {
		w := runewidth.RuneWidth(runes[start-1])
		if width+w > tailWidth {
			break
		}
		width += w
		start--
	}
	return runewidth.Truncate(s, headWidth, "") + "..." + string(runes[start:])
}
