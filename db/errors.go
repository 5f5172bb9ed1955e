package db

import (
	"errors"
	"fmt"
	"io"
)

type ErrorKind int

const (
	DatabaseExists ErrorKind = iota
	DatabaseNotExists
	TableExists
	TableNotExists
	IncorrectCommand
	NoDatabaseSelected
	OperationFailed
)

var errorKindNames = map[ErrorKind]string{
	DatabaseExists:     "DB_EXISTS",
	DatabaseNotExists:  "DB_NOT_EXISTS",
	TableExists:        "TBL_EXISTS",
	TableNotExists:     "TBL_NOT_EXISTS",
	IncorrectCommand:   "INCORRECT_COMMAND",
	NoDatabaseSelected: "NO_DATABASE_SELECTED",
	OperationFailed:    "OPERATION_FAILED",
}

func (kind ErrorKind) String() string {
	if name, ok := errorKindNames[kind]; ok {
		return name
	}
	return fmt.Sprintf("ErrorKind(%d)", int(kind))
}

const (
	containerDatabase = "database"
	containerTable    = "table"
)

// CommandError is a classified statement failure. Its message is the
// diagnostic printed to the transcript.
type CommandError struct {
	Kind      ErrorKind
	Verb      string // "create", "drop", "query", ...
	Container string // "database" or "table"
	Name      string // target name as typed, or the whole statement for IncorrectCommand
	Cause     error
}

func (e *CommandError) Error() string {
	switch e.Kind {
	case DatabaseExists, TableExists:
		return e.failure("it already exists")
	case DatabaseNotExists, TableNotExists:
		return e.failure("it does not exist")
	case NoDatabaseSelected:
		return e.failure("no database is selected")
	case OperationFailed:
		return e.failure(fmt.Sprint(e.Cause))
	default:
		return "-- !Failed to complete command.\n-- !Incorrect instruction: " + e.Name
	}
}

func (e *CommandError) failure(reason string) string {
	return fmt.Sprintf("-- !Failed to %s %s %s because %s.", e.Verb, e.Container, e.Name, reason)
}

func (e *CommandError) Unwrap() error {
	return e.Cause
}

func databaseError(kind ErrorKind, verb string, name string, cause error) *CommandError {
	return &CommandError{Kind: kind, Verb: verb, Container: containerDatabase, Name: name, Cause: cause}
}

func tableError(kind ErrorKind, verb string, name string, cause error) *CommandError {
	return &CommandError{Kind: kind, Verb: verb, Container: containerTable, Name: name, Cause: cause}
}

func incorrectCommand(statement string, cause error) *CommandError {
	return &CommandError{Kind: IncorrectCommand, Verb: "complete", Name: statement, Cause: cause}
}

// Kind returns the classification of err, if it is a CommandError
func Kind(err error) (ErrorKind, bool) {
	var commandErr *CommandError
	if errors.As(err, &commandErr) {
		return commandErr.Kind, true
	}
	return 0, false
}

// Report writes the diagnostic for err. Unclassified errors are reported
// as a failure to complete the command.
func Report(w io.Writer, err error) {
	if err == nil {
		return
	}

	var commandErr *CommandError
	if errors.As(err, &commandErr) {
		fmt.Fprintln(w, commandErr.Error())
		return
	}

	fmt.Fprintf(w, "-- !Failed to complete command because %v.\n", err)
}
