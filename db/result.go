package db

import (
	"fmt"
	"io"
	"strings"

	"github.com/nickyhof/DirDB/core"
	"github.com/nickyhof/DirDB/ps"
)

type ResultType int

const (
	MessageResultType ResultType = iota
	QueryResultType
	CommitResultType
	ExitResultType
)

type Result interface {
	Type() ResultType
	Display(w io.Writer)
}

// MessageResult reports a schema change or a database selection
type MessageResult struct {
	Transaction ps.Transaction
	Message     string
}

type QueryResult struct {
	Columns []core.Column
	Data    [][]string
	Pretty  bool
}

// CommitResult reports a change to the rows of a table
type CommitResult struct {
	Transaction ps.Transaction
	Action      string // "inserted", "modified" or "deleted"
	Records     int
}

type ExitResult struct{}

func (result MessageResult) Type() ResultType {
	return MessageResultType
}

func (result QueryResult) Type() ResultType {
	return QueryResultType
}

func (result CommitResult) Type() ResultType {
	return CommitResultType
}

func (result ExitResult) Type() ResultType {
	return ExitResultType
}

func (result MessageResult) Display(w io.Writer) {
	fmt.Fprintln(w, result.Message)
}

func (result QueryResult) Display(w io.Writer) {
	headers := make([]string, len(result.Columns))
	for i, col := range result.Columns {
		headers[i] = col.String()
	}

	if result.Pretty {
		table := newBoxTable(w, headers)
		for i, col := range result.Columns {
			if col.Type.Numeric() {
				table.AlignRight(i)
			}
		}
		table.Bulk(result.Data)
		table.Render()
		return
	}

	fmt.Fprintln(w, strings.Join(headers, "|"))
	for _, row := range result.Data {
		fmt.Fprintln(w, strings.Join(row, "|"))
	}
}

func (result CommitResult) Display(w io.Writer) {
	noun := "records"
	if result.Records == 1 {
		noun = "record"
	}
	if result.Action == "inserted" {
		noun = "new " + noun
	}
	fmt.Fprintf(w, "-- %d %s %s.\n", result.Records, noun, result.Action)
}

func (result ExitResult) Display(w io.Writer) {}
