package op

import (
	"github.com/nickyhof/DirDB/core"
	"github.com/nickyhof/DirDB/ps"
)

type DatabaseOp struct {
	Database    core.Database
	Persistence *ps.Persistence
}

func CreateDatabase(database core.Database, persistence *ps.Persistence, identity core.Identity) (*ps.Transaction, *DatabaseOp, error) {
	txn, err := persistence.CreateDatabase(database, identity)
	if err != nil {
		return nil, nil, err
	}

	return &txn, &DatabaseOp{
		Database:    database,
		Persistence: persistence,
	}, nil
}

// GetDatabase opens an existing database directory
func GetDatabase(name string, persistence *ps.Persistence) (*DatabaseOp, error) {
	if !persistence.DatabaseExists(name) {
		return nil, ps.ErrDatabaseNotFound
	}
	return &DatabaseOp{
		Database:    core.Database{Name: name},
		Persistence: persistence,
	}, nil
}

func (op *DatabaseOp) DropDatabase(identity core.Identity) (txn ps.Transaction, err error) {
	return op.Persistence.DropDatabase(op.Database.Name, identity)
}

func (op *DatabaseOp) TableNames() ([]string, error) {
	return op.Persistence.ListTables(op.Database.Name)
}
