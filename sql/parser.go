package sql

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

var ErrIncorrectCommand = errors.New("incorrect command")

const (
	databaseContainer = "DATABASE"
	tableContainer    = "TABLE"
)

// Parse splits a terminator-free statement into its verb, container and
// clause texts. Clause extraction follows each verb's fixed order.
func Parse(input string) (Statement, error) {
	scanner := NewScanner(input)
	verb := strings.ToUpper(scanner.NextWord())

	switch verb {
	case "CREATE":
		return parseCreate(scanner)
	case "DROP":
		return parseDrop(scanner)
	case "USE":
		name, err := singleName(scanner.Text())
		if err != nil {
			return nil, err
		}
		return UseStatement{Database: name}, nil
	case "SELECT":
		return parseSelect(scanner)
	case "INSERT":
		return parseInsert(scanner)
	case "UPDATE":
		return parseUpdate(scanner)
	case "DELETE":
		return parseDelete(scanner)
	case "ALTER":
		return parseAlter(scanner)
	case ".EXIT":
		return ExitStatement{}, nil
	case "":
		return nil, fmt.Errorf("%w: empty statement", ErrIncorrectCommand)
	default:
		return nil, fmt.Errorf("%w: unknown verb %s", ErrIncorrectCommand, verb)
	}
}

func parseCreate(scanner *Scanner) (Statement, error) {
	container := strings.ToUpper(scanner.NextWord())

	switch container {
	case databaseContainer:
		name, err := singleName(scanner.Text())
		if err != nil {
			return nil, err
		}
		return CreateDatabaseStatement{Database: name}, nil

	case tableContainer:
		rest := scanner.Text()
		open := strings.Index(rest, "(")
		if open < 0 {
			return nil, fmt.Errorf("%w: missing column definitions", ErrIncorrectCommand)
		}
		// anything but a single word before the column list names several targets
		name, err := singleName(rest[:open])
		if err != nil {
			return nil, err
		}
		return CreateTableStatement{Table: name, Definition: strings.TrimSpace(rest[open:])}, nil

	default:
		return nil, fmt.Errorf("%w: cannot create %q", ErrIncorrectCommand, container)
	}
}

func parseDrop(scanner *Scanner) (Statement, error) {
	container := strings.ToUpper(scanner.NextWord())

	switch container {
	case databaseContainer:
		name, err := singleName(scanner.Text())
		if err != nil {
			return nil, err
		}
		return DropDatabaseStatement{Database: name}, nil

	case tableContainer:
		name, err := singleName(scanner.Text())
		if err != nil {
			return nil, err
		}
		return DropTableStatement{Table: name}, nil

	default:
		return nil, fmt.Errorf("%w: cannot drop %q", ErrIncorrectCommand, container)
	}
}

func parseSelect(scanner *Scanner) (Statement, error) {
	projection, found := scanner.ExtractFromClause()
	if !found || projection == "" {
		return nil, fmt.Errorf("%w: expected <columns> FROM <table>", ErrIncorrectCommand)
	}

	table := scanner.NextWord()
	where, _ := scanner.ExtractWhereClause()

	if err := requireConsumed(scanner, table); err != nil {
		return nil, err
	}

	return SelectStatement{Projection: projection, Table: table, Where: where}, nil
}

func parseInsert(scanner *Scanner) (Statement, error) {
	if into := scanner.NextWord(); !strings.EqualFold(into, "into") {
		return nil, fmt.Errorf("%w: expected INTO, got %q", ErrIncorrectCommand, into)
	}

	table := scanner.NextWord()
	rest := scanner.Text()
	// "INSERT INTO t(...)" leaves the value list glued to the table name
	if index := strings.Index(table, "("); index >= 0 {
		rest = table[index:] + " " + rest
		table = table[:index]
	}
	if table == "" {
		return nil, fmt.Errorf("%w: missing table name", ErrIncorrectCommand)
	}

	open := strings.Index(rest, "(")
	end := strings.LastIndex(rest, ")")
	if open < 0 || end < open {
		return nil, fmt.Errorf("%w: expected a parenthesised value list", ErrIncorrectCommand)
	}

	return InsertStatement{Table: table, Values: strings.TrimSpace(rest[open+1 : end])}, nil
}

func parseUpdate(scanner *Scanner) (Statement, error) {
	table := scanner.NextWord()
	where, _ := scanner.ExtractWhereClause()

	set, found := scanner.ExtractSetClause()
	if !found || set == "" {
		return nil, fmt.Errorf("%w: expected SET", ErrIncorrectCommand)
	}

	if err := requireConsumed(scanner, table); err != nil {
		return nil, err
	}

	return UpdateStatement{Table: table, Where: where, Set: set}, nil
}

func parseDelete(scanner *Scanner) (Statement, error) {
	// the FROM keyword is optional and carries nothing
	scanner.ExtractFromClause()

	table := scanner.NextWord()
	where, _ := scanner.ExtractWhereClause()

	if err := requireConsumed(scanner, table); err != nil {
		return nil, err
	}

	return DeleteStatement{Table: table, Where: where}, nil
}

func parseAlter(scanner *Scanner) (Statement, error) {
	if container := scanner.NextWord(); !strings.EqualFold(container, tableContainer) {
		return nil, fmt.Errorf("%w: cannot alter %q", ErrIncorrectCommand, container)
	}

	table := scanner.NextWord()
	alteration := strings.TrimSpace(scanner.Text())
	if table == "" || alteration == "" {
		return nil, fmt.Errorf("%w: expected ALTER TABLE <table> <change>", ErrIncorrectCommand)
	}

	return AlterTableStatement{Table: table, Alteration: alteration}, nil
}

// singleName accepts exactly one word
func singleName(text string) (string, error) {
	name := strings.TrimSpace(text)
	if name == "" {
		return "", fmt.Errorf("%w: missing name", ErrIncorrectCommand)
	}
	if strings.IndexFunc(name, unicode.IsSpace) >= 0 {
		return "", fmt.Errorf("%w: %q names more than one target", ErrIncorrectCommand, name)
	}
	return name, nil
}

// requireConsumed rejects statements with a missing table or with words the
// verb's clauses did not account for.
func requireConsumed(scanner *Scanner, table string) error {
	if table == "" {
		return fmt.Errorf("%w: missing table name", ErrIncorrectCommand)
	}
	if leftover := strings.TrimSpace(scanner.Text()); leftover != "" {
		return fmt.Errorf("%w: unexpected %q after table %s", ErrIncorrectCommand, leftover, table)
	}
	return nil
}
