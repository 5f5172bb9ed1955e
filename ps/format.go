package ps

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/nickyhof/DirDB/core"
)

// FieldSeparator joins columns and values on every line of a table file
const FieldSeparator = " | "

var ErrMalformedTable = errors.New("malformed table file")

// TableFile is the decoded content of one table file
type TableFile struct {
	Table core.Table
	Rows  [][]string
}

// EncodeTable renders the header line followed by one line per row
func EncodeTable(file TableFile) []byte {
	var buf bytes.Buffer

	header := make([]string, len(file.Table.Columns))
	for i, col := range file.Table.Columns {
		header[i] = col.String()
	}
	buf.WriteString(strings.Join(header, FieldSeparator))
	buf.WriteByte('\n')

	for _, row := range file.Rows {
		buf.WriteString(strings.Join(row, FieldSeparator))
		buf.WriteByte('\n')
	}

	return buf.Bytes()
}

// DecodeTable parses a table file. Rows with a different number of fields
// than the header are rejected; only the final newline is optional.
func DecodeTable(database string, name string, data []byte) (TableFile, error) {
	lines := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) == "" {
		return TableFile{}, fmt.Errorf("%w: %s.%s has no header", ErrMalformedTable, database, name)
	}

	definitions := strings.Split(lines[0], "|")
	columns := make([]core.Column, 0, len(definitions))
	for _, definition := range definitions {
		col, err := core.ParseColumn(definition)
		if err != nil {
			return TableFile{}, fmt.Errorf("%w: %s.%s: %v", ErrMalformedTable, database, name, err)
		}
		columns = append(columns, col)
	}

	file := TableFile{
		Table: core.Table{
			Database: database,
			Name:     name,
			Columns:  columns,
		},
	}

	body := lines[1:]
	if n := len(body); n > 0 && body[n-1] == "" {
		body = body[:n-1]
	}

	for n, line := range body {
		fields := strings.Split(line, "|")
		if len(fields) != len(columns) {
			return TableFile{}, fmt.Errorf("%w: %s.%s line %d has %d fields, expected %d",
				ErrMalformedTable, database, name, n+2, len(fields), len(columns))
		}
		file.Rows = append(file.Rows, splitFields(fields))
	}

	return file, nil
}

// splitFields removes the padding FieldSeparator puts around each '|'.
// Values never contain '|', so any other whitespace belongs to the value.
func splitFields(fields []string) []string {
	last := len(fields) - 1
	for i, field := range fields {
		if i > 0 {
			field = strings.TrimPrefix(field, " ")
		}
		if i < last {
			field = strings.TrimSuffix(field, " ")
		}
		fields[i] = field
	}
	return fields
}
