package db

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// boxTable renders query results as a bordered grid
type boxTable struct {
	writer  io.Writer
	headers []string
	rows    [][]string
	right   []bool // right-align the column
}

func newBoxTable(w io.Writer, headers []string) *boxTable {
	return &boxTable{
		writer:  w,
		headers: headers,
		right:   make([]bool, len(headers)),
	}
}

// AlignRight right-aligns the cells of one column
func (t *boxTable) AlignRight(column int) {
	if column >= 0 && column < len(t.right) {
		t.right[column] = true
	}
}

func (t *boxTable) Bulk(rows [][]string) {
	t.rows = append(t.rows, rows...)
}

func (t *boxTable) Render() {
	if len(t.headers) == 0 {
		return
	}

	widths := t.calculateWidths()
	separator := t.buildSeparator(widths)

	fmt.Fprintln(t.writer, separator)
	fmt.Fprintln(t.writer, t.formatRow(t.headers, widths, false))
	fmt.Fprintln(t.writer, separator)

	for _, row := range t.rows {
		fmt.Fprintln(t.writer, t.formatRow(row, widths, true))
	}

	if len(t.rows) > 0 {
		fmt.Fprintln(t.writer, separator)
	}
}

func (t *boxTable) calculateWidths() []int {
	widths := make([]int, len(t.headers))

	for i, h := range t.headers {
		widths[i] = max(1, utf8.RuneCountInString(h))
	}

	for _, row := range t.rows {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], utf8.RuneCountInString(cell))
			}
		}
	}

	return widths
}

func (t *boxTable) buildSeparator(widths []int) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		parts[i] = strings.Repeat("-", w+2)
	}
	return "+" + strings.Join(parts, "+") + "+"
}

func (t *boxTable) formatRow(row []string, widths []int, align bool) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		cell := ""
		if i < len(row) {
			cell = row[i]
		}
		padding := strings.Repeat(" ", w-utf8.RuneCountInString(cell))
		if align && t.right[i] {
			parts[i] = " " + padding + cell + " "
		} else {
			parts[i] = " " + cell + padding + " "
		}
	}
	return "|" + strings.Join(parts, "|") + "|"
}
