package op

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/nickyhof/DirDB/core"
	"github.com/nickyhof/DirDB/ps"
)

var (
	ErrInvalidRecord     = errors.New("invalid record")
	ErrInvalidAlteration = errors.New("invalid alteration")
)

type TableOp struct {
	Table       core.Table
	Persistence *ps.Persistence
}

// Selection is the projected result of a query
type Selection struct {
	Columns []core.Column
	Rows    [][]string
}

// CreateTable parses the column definition and writes the table file. An
// invalid definition leaves the filesystem untouched.
func CreateTable(database string, name string, definition string, persistence *ps.Persistence, identity core.Identity) (*ps.Transaction, *TableOp, error) {
	columns, err := core.ParseColumns(definition)
	if err != nil {
		return nil, nil, err
	}

	table := core.Table{
		Database: database,
		Name:     name,
		Columns:  columns,
	}

	txn, err := persistence.CreateTable(table, identity)
	if err != nil {
		return nil, nil, err
	}

	return &txn, &TableOp{
		Table:       table,
		Persistence: persistence,
	}, nil
}

func GetTable(database string, tableName string, persistence *ps.Persistence) (*TableOp, error) {
	file, err := persistence.ReadTable(database, tableName)
	if err != nil {
		return nil, err
	}

	return &TableOp{
		Table:       file.Table,
		Persistence: persistence,
	}, nil
}

func (op *TableOp) DropTable(identity core.Identity) (txn ps.Transaction, err error) {
	return op.Persistence.DropTable(op.Table.Database, op.Table.Name, identity)
}

// load reads the table file and refreshes the cached schema
func (op *TableOp) load() (*ps.TableFile, error) {
	file, err := op.Persistence.ReadTable(op.Table.Database, op.Table.Name)
	if err != nil {
		return nil, err
	}
	op.Table = file.Table
	return file, nil
}

func (op *TableOp) save(file *ps.TableFile, identity core.Identity, message string) (ps.Transaction, error) {
	return op.Persistence.WriteTable(*file, identity,
		fmt.Sprintf("%s %s.%s", message, op.Table.Database, op.Table.Name))
}

func (op *TableOp) Count() (int, error) {
	file, err := op.load()
	if err != nil {
		return 0, err
	}
	return len(file.Rows), nil
}

// ParseRecord splits a value list into one validated field per column
func (op *TableOp) ParseRecord(values string) ([]string, error) {
	items := core.SplitList(values)
	if len(items) != len(op.Table.Columns) {
		return nil, fmt.Errorf("%w: expected %d values, got %d", ErrInvalidRecord, len(op.Table.Columns), len(items))
	}

	record := make([]string, len(items))
	for i, item := range items {
		value := core.Unquote(item)
		if err := op.Table.Columns[i].ValidateValue(value); err != nil {
			return nil, err
		}
		record[i] = value
	}

	return record, nil
}

func (op *TableOp) Insert(values string, identity core.Identity) (txn ps.Transaction, err error) {
	file, err := op.load()
	if err != nil {
		return ps.Transaction{}, err
	}

	record, err := op.ParseRecord(values)
	if err != nil {
		return ps.Transaction{}, err
	}

	file.Rows = append(file.Rows, record)
	return op.save(file, identity, "Inserting into")
}

func (op *TableOp) projection(text string) ([]int, error) {
	text = strings.TrimSpace(text)
	if text == "*" {
		indexes := make([]int, len(op.Table.Columns))
		for i := range indexes {
			indexes[i] = i
		}
		return indexes, nil
	}

	var indexes []int
	for _, name := range core.SplitList(text) {
		index, ok := op.Table.ColumnIndex(name)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownColumn, name)
		}
		indexes = append(indexes, index)
	}
	if len(indexes) == 0 {
		return nil, fmt.Errorf("%w: empty projection", ErrUnknownColumn)
	}
	return indexes, nil
}

func (op *TableOp) Select(projection string, where string) (*Selection, error) {
	file, err := op.load()
	if err != nil {
		return nil, err
	}

	indexes, err := op.projection(projection)
	if err != nil {
		return nil, err
	}

	condition, err := ParseCondition(where, op.Table)
	if err != nil {
		return nil, err
	}

	selection := &Selection{Columns: make([]core.Column, len(indexes))}
	for i, index := range indexes {
		selection.Columns[i] = op.Table.Columns[index]
	}

	for _, row := range file.Rows {
		if !condition.Matches(row) {
			continue
		}
		projected := make([]string, len(indexes))
		for i, index := range indexes {
			projected[i] = row[index]
		}
		selection.Rows = append(selection.Rows, projected)
	}

	return selection, nil
}

// Update applies the assignments to every matching row and returns how
// many rows changed. Nothing is written when no row matches.
func (op *TableOp) Update(where string, set string, identity core.Identity) (int, ps.Transaction, error) {
	file, err := op.load()
	if err != nil {
		return 0, ps.Transaction{}, err
	}

	condition, err := ParseCondition(where, op.Table)
	if err != nil {
		return 0, ps.Transaction{}, err
	}

	assignments, err := ParseAssignments(set, op.Table)
	if err != nil {
		return 0, ps.Transaction{}, err
	}

	count := 0
	for _, row := range file.Rows {
		if !condition.Matches(row) {
			continue
		}
		for _, assignment := range assignments {
			row[assignment.Index] = assignment.Value
		}
		count++
	}

	if count == 0 {
		return 0, ps.Transaction{}, nil
	}

	txn, err := op.save(file, identity, "Updating")
	return count, txn, err
}

func (op *TableOp) Delete(where string, identity core.Identity) (int, ps.Transaction, error) {
	file, err := op.load()
	if err != nil {
		return 0, ps.Transaction{}, err
	}

	condition, err := ParseCondition(where, op.Table)
	if err != nil {
		return 0, ps.Transaction{}, err
	}

	before := len(file.Rows)
	file.Rows = slices.DeleteFunc(file.Rows, condition.Matches)
	count := before - len(file.Rows)

	if count == 0 {
		return 0, ps.Transaction{}, nil
	}

	txn, err := op.save(file, identity, "Deleting from")
	return count, txn, err
}

// Alter changes the schema with ADD, DROP or MODIFY, each optionally
// followed by COLUMN. Added columns start empty in existing rows.
func (op *TableOp) Alter(alteration string, identity core.Identity) (txn ps.Transaction, err error) {
	file, err := op.load()
	if err != nil {
		return ps.Transaction{}, err
	}

	fields := strings.Fields(alteration)
	if len(fields) == 0 {
		return ps.Transaction{}, fmt.Errorf("%w: nothing to alter", ErrInvalidAlteration)
	}

	action := strings.ToUpper(fields[0])
	rest := fields[1:]
	if len(rest) > 0 && strings.EqualFold(rest[0], "COLUMN") {
		rest = rest[1:]
	}

	switch action {
	case "ADD":
		col, err := core.ParseColumn(strings.Join(rest, " "))
		if err != nil {
			return ps.Transaction{}, err
		}
		if _, exists := file.Table.ColumnIndex(col.Name); exists {
			return ps.Transaction{}, fmt.Errorf("%w: duplicate column %s", core.ErrInvalidColumn, col.Name)
		}
		file.Table.Columns = append(file.Table.Columns, col)
		for i := range file.Rows {
			file.Rows[i] = append(file.Rows[i], "")
		}

	case "DROP":
		if len(rest) != 1 {
			return ps.Transaction{}, fmt.Errorf("%w: DROP takes one column name", ErrInvalidAlteration)
		}
		index, ok := file.Table.ColumnIndex(rest[0])
		if !ok {
			return ps.Transaction{}, fmt.Errorf("%w: %s", ErrUnknownColumn, rest[0])
		}
		if len(file.Table.Columns) == 1 {
			return ps.Transaction{}, fmt.Errorf("%w: cannot drop the last column", ErrInvalidAlteration)
		}
		file.Table.Columns = slices.Delete(file.Table.Columns, index, index+1)
		for i := range file.Rows {
			file.Rows[i] = slices.Delete(file.Rows[i], index, index+1)
		}

	case "MODIFY":
		col, err := core.ParseColumn(strings.Join(rest, " "))
		if err != nil {
			return ps.Transaction{}, err
		}
		index, ok := file.Table.ColumnIndex(col.Name)
		if !ok {
			return ps.Transaction{}, fmt.Errorf("%w: %s", ErrUnknownColumn, col.Name)
		}
		for _, row := range file.Rows {
			if row[index] == "" {
				continue
			}
			if err := col.ValidateValue(row[index]); err != nil {
				return ps.Transaction{}, err
			}
		}
		file.Table.Columns[index] = col

	default:
		return ps.Transaction{}, fmt.Errorf("%w: unknown action %s", ErrInvalidAlteration, fields[0])
	}

	op.Table = file.Table
	return op.save(file, identity, "Altering")
}
