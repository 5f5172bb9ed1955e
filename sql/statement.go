package sql

type StatementType int

const (
	CreateDatabaseStatementType StatementType = iota
	CreateTableStatementType
	DropDatabaseStatementType
	DropTableStatementType
	UseStatementType
	SelectStatementType
	InsertStatementType
	UpdateStatementType
	DeleteStatementType
	AlterTableStatementType
	ExitStatementType
)

// Verb is the phrase used for the statement in transcript messages
func (statementType StatementType) Verb() string {
	switch statementType {
	case CreateDatabaseStatementType, CreateTableStatementType:
		return "create"
	case DropDatabaseStatementType, DropTableStatementType:
		return "drop"
	case UseStatementType:
		return "use"
	case SelectStatementType:
		return "query"
	case InsertStatementType:
		return "insert"
	case UpdateStatementType:
		return "update"
	case DeleteStatementType:
		return "delete"
	case AlterTableStatementType:
		return "alter"
	case ExitStatementType:
		return "exit"
	default:
		return "complete"
	}
}

type Statement interface {
	Type() StatementType
}

type CreateDatabaseStatement struct {
	Database string
}

type CreateTableStatement struct {
	Table      string
	Definition string // column list including its parentheses
}

type DropDatabaseStatement struct {
	Database string
}

type DropTableStatement struct {
	Table string
}

type UseStatement struct {
	Database string
}

type SelectStatement struct {
	Projection string
	Table      string
	Where      string
}

type InsertStatement struct {
	Table  string
	Values string // text between the outermost parentheses
}

type UpdateStatement struct {
	Table string
	Where string
	Set   string
}

type DeleteStatement struct {
	Table string
	Where string
}

type AlterTableStatement struct {
	Table      string
	Alteration string
}

type ExitStatement struct{}

func (CreateDatabaseStatement) Type() StatementType { return CreateDatabaseStatementType }
func (CreateTableStatement) Type() StatementType    { return CreateTableStatementType }
func (DropDatabaseStatement) Type() StatementType   { return DropDatabaseStatementType }
func (DropTableStatement) Type() StatementType      { return DropTableStatementType }
func (UseStatement) Type() StatementType            { return UseStatementType }
func (SelectStatement) Type() StatementType         { return SelectStatementType }
func (InsertStatement) Type() StatementType         { return InsertStatementType }
func (UpdateStatement) Type() StatementType         { return UpdateStatementType }
func (DeleteStatement) Type() StatementType         { return DeleteStatementType }
func (AlterTableStatement) Type() StatementType     { return AlterTableStatementType }
func (ExitStatement) Type() StatementType           { return ExitStatementType }
