package db

import (
	"fmt"
	"io"

	"github.com/nickyhof/DirDB/catalog"
	"github.com/nickyhof/DirDB/core"
	"github.com/nickyhof/DirDB/op"
	"github.com/nickyhof/DirDB/ps"
	"github.com/nickyhof/DirDB/sql"
)

// Engine dispatches statements against the catalog and the storage root.
// It is not safe for concurrent use.
type Engine struct {
	*ps.Persistence
	Catalog  *catalog.Catalog
	Session  *Session
	Identity core.Identity
	Pretty   bool // render query results as a grid
}

// NewEngine bootstraps the catalog from persistence and starts a session
func NewEngine(persistence *ps.Persistence, identity core.Identity) *Engine {
	session := NewSession(persistence.Root())
	identity.Session = session.ID

	return &Engine{
		Persistence: persistence,
		Catalog:     Bootstrap(persistence),
		Session:     session,
		Identity:    identity,
	}
}

// Execute runs one terminator-free statement. Failures are returned as
// *CommandError.
func (engine *Engine) Execute(query string) (Result, error) {
	statement, err := sql.Parse(query)
	if err != nil {
		return nil, incorrectCommand(query, err)
	}

	switch statement.Type() {
	case sql.CreateDatabaseStatementType:
		return engine.executeCreateDatabaseStatement(statement.(sql.CreateDatabaseStatement))
	case sql.DropDatabaseStatementType:
		return engine.executeDropDatabaseStatement(statement.(sql.DropDatabaseStatement))
	case sql.UseStatementType:
		return engine.executeUseStatement(statement.(sql.UseStatement))
	case sql.CreateTableStatementType:
		return engine.executeCreateTableStatement(statement.(sql.CreateTableStatement))
	case sql.DropTableStatementType:
		return engine.executeDropTableStatement(statement.(sql.DropTableStatement))
	case sql.SelectStatementType:
		return engine.executeSelectStatement(statement.(sql.SelectStatement))
	case sql.InsertStatementType:
		return engine.executeInsertStatement(statement.(sql.InsertStatement))
	case sql.UpdateStatementType:
		return engine.executeUpdateStatement(statement.(sql.UpdateStatement))
	case sql.DeleteStatementType:
		return engine.executeDeleteStatement(statement.(sql.DeleteStatement))
	case sql.AlterTableStatementType:
		return engine.executeAlterTableStatement(statement.(sql.AlterTableStatement))
	case sql.ExitStatementType:
		return ExitResult{}, nil
	default:
		return nil, incorrectCommand(query, fmt.Errorf("unsupported statement type %d", statement.Type()))
	}
}

// Dispatch executes a statement and writes its outcome to w. It returns
// true when the session should end.
func (engine *Engine) Dispatch(w io.Writer, query string) bool {
	result, err := engine.Execute(query)
	if err != nil {
		Report(w, err)
		return false
	}

	if result.Type() == ExitResultType {
		return true
	}

	result.Display(w)
	return false
}

func (engine *Engine) executeCreateDatabaseStatement(statement sql.CreateDatabaseStatement) (Result, error) {
	verb := statement.Type().Verb()

	if _, _, exists := engine.Catalog.Database(statement.Database); exists {
		return nil, databaseError(DatabaseExists, verb, statement.Database, nil)
	}

	txn, _, err := op.CreateDatabase(core.Database{Name: statement.Database}, engine.Persistence, engine.Identity)
	if err != nil {
		return nil, databaseError(OperationFailed, verb, statement.Database, err)
	}

	if _, err := engine.Catalog.AddDatabase(statement.Database); err != nil {
		return nil, databaseError(DatabaseExists, verb, statement.Database, err)
	}

	return MessageResult{
		Transaction: *txn,
		Message:     fmt.Sprintf("-- Database %s created.", statement.Database),
	}, nil
}

func (engine *Engine) executeDropDatabaseStatement(statement sql.DropDatabaseStatement) (Result, error) {
	verb := statement.Type().Verb()

	database, _, exists := engine.Catalog.Database(statement.Database)
	if !exists {
		return nil, databaseError(DatabaseNotExists, verb, statement.Database, nil)
	}

	databaseOp := op.DatabaseOp{
		Database:    core.Database{Name: database.Name},
		Persistence: engine.Persistence,
	}
	txn, err := databaseOp.DropDatabase(engine.Identity)
	if err != nil {
		return nil, databaseError(OperationFailed, verb, statement.Database, err)
	}

	if err := engine.Catalog.RemoveDatabase(database.Name); err != nil {
		return nil, databaseError(DatabaseNotExists, verb, statement.Database, err)
	}

	// A dropped database can no longer stay selected
	if selected, ok := engine.Session.Selected(); ok && selected == database.Name {
		engine.Session.Use("")
	}

	return MessageResult{
		Transaction: txn,
		Message:     fmt.Sprintf("-- Database %s deleted.", statement.Database),
	}, nil
}

func (engine *Engine) executeUseStatement(statement sql.UseStatement) (Result, error) {
	verb := statement.Type().Verb()

	database, _, exists := engine.Catalog.Database(statement.Database)
	if !exists {
		return nil, databaseError(DatabaseNotExists, verb, statement.Database, nil)
	}

	if _, err := op.GetDatabase(database.Name, engine.Persistence); err != nil {
		return nil, databaseError(OperationFailed, verb, statement.Database, err)
	}

	engine.Session.Use(database.Name)

	return MessageResult{
		Message: fmt.Sprintf("-- Using database %s.", database.Name),
	}, nil
}

// selectedDatabase resolves the session's database for a TABLE-scoped verb
func (engine *Engine) selectedDatabase(verb string, table string) (*catalog.Database, error) {
	name, ok := engine.Session.Selected()
	if !ok {
		return nil, tableError(NoDatabaseSelected, verb, table, nil)
	}

	database, _, exists := engine.Catalog.Database(name)
	if !exists {
		return nil, tableError(NoDatabaseSelected, verb, table, nil)
	}

	return database, nil
}

// existingTable resolves a table of the selected database and opens it
func (engine *Engine) existingTable(verb string, name string) (*op.TableOp, error) {
	database, err := engine.selectedDatabase(verb, name)
	if err != nil {
		return nil, err
	}

	table, _, exists := database.Table(name)
	if !exists {
		return nil, tableError(TableNotExists, verb, name, nil)
	}

	tableOp, err := op.GetTable(database.Name, table.Name, engine.Persistence)
	if err != nil {
		return nil, tableError(OperationFailed, verb, name, err)
	}

	return tableOp, nil
}

func (engine *Engine) executeCreateTableStatement(statement sql.CreateTableStatement) (Result, error) {
	verb := statement.Type().Verb()

	database, err := engine.selectedDatabase(verb, statement.Table)
	if err != nil {
		return nil, err
	}

	if _, _, exists := database.Table(statement.Table); exists {
		return nil, tableError(TableExists, verb, statement.Table, nil)
	}

	txn, _, err := op.CreateTable(database.Name, statement.Table, statement.Definition, engine.Persistence, engine.Identity)
	if err != nil {
		return nil, tableError(OperationFailed, verb, statement.Table, err)
	}

	if _, err := database.AddTable(statement.Table); err != nil {
		return nil, tableError(TableExists, verb, statement.Table, err)
	}

	return MessageResult{
		Transaction: *txn,
		Message:     fmt.Sprintf("-- Table %s created.", statement.Table),
	}, nil
}

func (engine *Engine) executeDropTableStatement(statement sql.DropTableStatement) (Result, error) {
	verb := statement.Type().Verb()

	database, err := engine.selectedDatabase(verb, statement.Table)
	if err != nil {
		return nil, err
	}

	table, _, exists := database.Table(statement.Table)
	if !exists {
		return nil, tableError(TableNotExists, verb, statement.Table, nil)
	}

	tableOp := op.TableOp{
		Table:       core.Table{Database: database.Name, Name: table.Name},
		Persistence: engine.Persistence,
	}
	txn, err := tableOp.DropTable(engine.Identity)
	if err != nil {
		return nil, tableError(OperationFailed, verb, statement.Table, err)
	}

	if err := database.RemoveTable(table.Name); err != nil {
		return nil, tableError(TableNotExists, verb, statement.Table, err)
	}

	return MessageResult{
		Transaction: txn,
		Message:     fmt.Sprintf("-- Table %s deleted.", statement.Table),
	}, nil
}

func (engine *Engine) executeSelectStatement(statement sql.SelectStatement) (Result, error) {
	verb := statement.Type().Verb()

	tableOp, err := engine.existingTable(verb, statement.Table)
	if err != nil {
		return nil, err
	}

	selection, err := tableOp.Select(statement.Projection, statement.Where)
	if err != nil {
		return nil, tableError(OperationFailed, verb, statement.Table, err)
	}

	return QueryResult{
		Columns: selection.Columns,
		Data:    selection.Rows,
		Pretty:  engine.Pretty,
	}, nil
}

func (engine *Engine) executeInsertStatement(statement sql.InsertStatement) (Result, error) {
	verb := statement.Type().Verb()

	tableOp, err := engine.existingTable(verb, statement.Table)
	if err != nil {
		return nil, err
	}

	txn, err := tableOp.Insert(statement.Values, engine.Identity)
	if err != nil {
		return nil, tableError(OperationFailed, verb, statement.Table, err)
	}

	return CommitResult{
		Transaction: txn,
		Action:      "inserted",
		Records:     1,
	}, nil
}

func (engine *Engine) executeUpdateStatement(statement sql.UpdateStatement) (Result, error) {
	verb := statement.Type().Verb()

	tableOp, err := engine.existingTable(verb, statement.Table)
	if err != nil {
		return nil, err
	}

	count, txn, err := tableOp.Update(statement.Where, statement.Set, engine.Identity)
	if err != nil {
		return nil, tableError(OperationFailed, verb, statement.Table, err)
	}

	return CommitResult{
		Transaction: txn,
		Action:      "modified",
		Records:     count,
	}, nil
}

func (engine *Engine) executeDeleteStatement(statement sql.DeleteStatement) (Result, error) {
	verb := statement.Type().Verb()

	tableOp, err := engine.existingTable(verb, statement.Table)
	if err != nil {
		return nil, err
	}

	count, txn, err := tableOp.Delete(statement.Where, engine.Identity)
	if err != nil {
		return nil, tableError(OperationFailed, verb, statement.Table, err)
	}

	return CommitResult{
		Transaction: txn,
		Action:      "deleted",
		Records:     count,
	}, nil
}

func (engine *Engine) executeAlterTableStatement(statement sql.AlterTableStatement) (Result, error) {
	verb := statement.Type().Verb()

	tableOp, err := engine.existingTable(verb, statement.Table)
	if err != nil {
		return nil, err
	}

	txn, err := tableOp.Alter(statement.Alteration, engine.Identity)
	if err != nil {
		return nil, tableError(OperationFailed, verb, statement.Table, err)
	}

	return MessageResult{
		Transaction: txn,
		Message:     fmt.Sprintf("-- Table %s modified.", statement.Table),
	}, nil
}
