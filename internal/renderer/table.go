package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/threadmatch/internal/colour"
	"github.com/jmylchreest/threadmatch/internal/match"
)

// Table represents a simple table formatter with dynamic column widths.
// Widths are measured in terminal cells so styled cells align.
type Table struct {
	headers   []string
	rows      [][]string
	padding   int
	maxWidths map[int]int // Maximum width per column index (0 = no limit)
}

// NewTable creates a new table with the given headers.
func NewTable(headers []string) *Table {
	return &Table{
		headers:   headers,
		rows:      make([][]string, 0),
		padding:   2,
		maxWidths: make(map[int]int),
	}
}

// SetColumnMaxWidth sets a maximum width for a specific column.
// Text longer than this will be wrapped to multiple lines.
func (t *Table) SetColumnMaxWidth(colIndex int, maxWidth int) {
	t.maxWidths[colIndex] = maxWidth
}

// AddRow adds a row to the table, padding or truncating it to the header count.
func (t *Table) AddRow(row []string) {
	newRow := make([]string, len(t.headers))
	copy(newRow, row)
	t.rows = append(t.rows, newRow)
}

// Render formats and returns the table as a string.
func (t *Table) Render() string {
	if len(t.headers) == 0 {
		return ""
	}

	wrappedRows := make([][][]string, len(t.rows))
	for rowIdx, row := range t.rows {
		wrappedRows[rowIdx] = make([][]string, len(row))
		for colIdx, cell := range row {
			if maxWidth, hasLimit := t.maxWidths[colIdx]; hasLimit && maxWidth > 0 {
				wrappedRows[rowIdx][colIdx] = wrapText(cell, maxWidth)
			} else {
				wrappedRows[rowIdx][colIdx] = []string{cell}
			}
		}
	}

	colWidths := make([]int, len(t.headers))
	for i, h := range t.headers {
		colWidths[i] = lipgloss.Width(h)
	}
	for _, wrappedRow := range wrappedRows {
		for i, wrappedCell := range wrappedRow {
			for _, line := range wrappedCell {
				colWidths[i] = max(colWidths[i], lipgloss.Width(line))
			}
		}
	}

	sep := strings.Repeat(" ", t.padding)
	var result strings.Builder

	headerParts := make([]string, len(t.headers))
	for i, h := range t.headers {
		headerParts[i] = padRight(h, colWidths[i])
	}
	result.WriteString(strings.TrimRight(strings.Join(headerParts, sep), " "))
	result.WriteString("\n")

	sepParts := make([]string, len(t.headers))
	for i, w := range colWidths {
		sepParts[i] = strings.Repeat("-", w)
	}
	result.WriteString(strings.Join(sepParts, sep))
	result.WriteString("\n")

	for _, wrappedRow := range wrappedRows {
		maxLines := 1
		for _, wrappedCell := range wrappedRow {
			maxLines = max(maxLines, len(wrappedCell))
		}

		for lineIdx := 0; lineIdx < maxLines; lineIdx++ {
			rowParts := make([]string, len(t.headers))
			for colIdx := range t.headers {
				cell := ""
				if lineIdx < len(wrappedRow[colIdx]) {
					cell = wrappedRow[colIdx][lineIdx]
				}
				rowParts[colIdx] = padRight(cell, colWidths[colIdx])
			}
			result.WriteString(strings.TrimRight(strings.Join(rowParts, sep), " "))
			result.WriteString("\n")
		}
	}

	return result.String()
}

// padRight pads a string with spaces on the right to reach the desired display width.
func padRight(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

// wrapText wraps text to fit within the specified width, breaking at word boundaries.
func wrapText(text string, width int) []string {
	if width <= 0 || len(text) <= width {
		return []string{text}
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{text}
	}

	var lines []string
	currentLine := ""
	for _, word := range words {
		// Words longer than the column are split.
		if len(word) > width {
			if currentLine != "" {
				lines = append(lines, currentLine)
				currentLine = ""
			}
			for len(word) > width {
				lines = append(lines, word[:width])
				word = word[width:]
			}
			currentLine = word
			continue
		}

		testLine := currentLine
		if testLine != "" {
			testLine += " "
		}
		testLine += word

		if len(testLine) <= width {
			currentLine = testLine
		} else {
			if currentLine != "" {
				lines = append(lines, currentLine)
			}
			currentLine = word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return lines
}

// TableRenderer writes results as an aligned table with optional colour swatches.
type TableRenderer struct {
	Options Options
}

const nameColumnWidth = 36

// Render implements Renderer.
func (r *TableRenderer) Render(w io.Writer, result *match.Result) error {
	var swatch func(colour.RGB, string) string
	if r.Options.Colour {
		lg := lipgloss.NewRenderer(w)
		swatch = func(c colour.RGB, label string) string {
			return lg.NewStyle().
				Background(lipgloss.Color(c.Hex())).
				Foreground(lipgloss.Color(c.TextColour().RGB().Hex())).
				Render(label)
		}
	}

	headers := []string{}
	if swatch != nil {
		headers = append(headers, "")
	}
	headers = append(headers, "Code", "Name", "Hex", "RGB")
	if r.Options.Debug {
		headers = append(headers, "Distance")
	}

	table := NewTable(headers)
	nameCol := 1
	if swatch != nil {
		nameCol = 2
	}
	table.SetColumnMaxWidth(nameCol, nameColumnWidth)

	for _, row := range result.Rows {
		cells := []string{}
		if swatch != nil {
			var parts []string
			for _, c := range row.Components {
				parts = append(parts, swatch(c, "  "))
			}
			parts = append(parts, swatch(row.Colour, " "+row.Colour.Hex()+" "))
			cells = append(cells, strings.Join(parts, ""))
		}
		cells = append(cells, row.Code, row.Name, row.Colour.Hex(), rgbText(row.Colour))
		if r.Options.Debug {
			cells = append(cells, fmt.Sprintf("%.2f", row.Distance))
		}
		table.AddRow(cells)
	}

	header := fmt.Sprintf("%s matches for %s in %s (%s)", titleOf(result.Mode), result.Target.Hex(), result.Dataset, result.Metric)
	if _, err := fmt.Fprintf(w, "%s\n\n%s", header, table.Render()); err != nil {
		return err
	}
	return nil
}

func titleOf(mode match.Mode) string {
	if mode == match.ModeBlend {
		return "Blend"
	}
	return "Nearest"
}

func rgbText(c colour.RGB) string {
	return fmt.Sprintf("%d,%d,%d", c.R, c.G, c.B)
}
