package ps

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/go-git/go-billy/v6/util"
	"github.com/nickyhof/DirDB/core"
)

var (
	ErrDatabaseNotFound = errors.New("database directory not found")
	ErrDatabaseFound    = errors.New("database directory already exists")
	ErrTableNotFound    = errors.New("table file not found")
	ErrTableFound       = errors.New("table file already exists")
)

func (persistence *Persistence) tablePath(database string, table string) string {
	return persistence.fs.Join(database, table)
}

// ListDatabases returns the names of all entries directly under the
// storage root, skipping the journal.
func (persistence *Persistence) ListDatabases() ([]string, error) {
	if err := persistence.ensureInitialized(); err != nil {
		return nil, err
	}

	entries, err := persistence.fs.ReadDir("/")
	if err != nil {
		return nil, fmt.Errorf("failed to read storage root: %w", err)
	}

	var databases []string
	for _, entry := range entries {
		if entry.Name() == JournalDir {
			continue
		}
		databases = append(databases, entry.Name())
	}

	sort.Strings(databases)
	return databases, nil
}

// ListTables returns the names of all entries in a database directory
func (persistence *Persistence) ListTables(database string) ([]string, error) {
	if err := persistence.ensureInitialized(); err != nil {
		return nil, err
	}

	if !persistence.DatabaseExists(database) {
		return nil, fmt.Errorf("%w: %s", ErrDatabaseNotFound, database)
	}

	entries, err := persistence.fs.ReadDir(database)
	if err != nil {
		return nil, fmt.Errorf("failed to read database %s: %w", database, err)
	}

	var tables []string
	for _, entry := range entries {
		tables = append(tables, entry.Name())
	}

	sort.Strings(tables)
	return tables, nil
}

func (persistence *Persistence) DatabaseExists(name string) bool {
	if !persistence.IsInitialized() || name == "" || name == JournalDir {
		return false
	}

	info, err := persistence.fs.Stat(name)
	return err == nil && info.IsDir()
}

func (persistence *Persistence) TableExists(database string, table string) bool {
	if !persistence.IsInitialized() {
		return false
	}

	info, err := persistence.fs.Stat(persistence.tablePath(database, table))
	return err == nil && !info.IsDir()
}

func (persistence *Persistence) CreateDatabase(database core.Database, identity core.Identity) (txn Transaction, err error) {
	if err := persistence.ensureInitialized(); err != nil {
		return Transaction{}, err
	}

	if database.Name == JournalDir {
		return Transaction{}, fmt.Errorf("%s is reserved", JournalDir)
	}

	if _, err := persistence.fs.Stat(database.Name); err == nil {
		return Transaction{}, fmt.Errorf("%w: %s", ErrDatabaseFound, database.Name)
	}

	if err := persistence.fs.MkdirAll(database.Name, 0755); err != nil {
		return Transaction{}, fmt.Errorf("failed to create database directory: %w", err)
	}

	txn, err = persistence.commit(fmt.Sprintf("Creating database %s", database.Name), identity)
	if err != nil {
		if rmErr := util.RemoveAll(persistence.fs, database.Name); rmErr != nil {
			return Transaction{}, errors.Join(err, rmErr)
		}
		return Transaction{}, err
	}
	return txn, nil
}

func (persistence *Persistence) DropDatabase(name string, identity core.Identity) (txn Transaction, err error) {
	if err := persistence.ensureInitialized(); err != nil {
		return Transaction{}, err
	}

	if !persistence.DatabaseExists(name) {
		return Transaction{}, fmt.Errorf("%w: %s", ErrDatabaseNotFound, name)
	}

	if err := util.RemoveAll(persistence.fs, name); err != nil {
		return Transaction{}, fmt.Errorf("failed to remove database directory: %w", err)
	}

	return persistence.commit(fmt.Sprintf("Dropping database %s", name), identity)
}

// CreateTable writes a table file holding only the header line. The
// database directory must exist and the table must not.
func (persistence *Persistence) CreateTable(table core.Table, identity core.Identity) (txn Transaction, err error) {
	if err := persistence.ensureInitialized(); err != nil {
		return Transaction{}, err
	}

	if !persistence.DatabaseExists(table.Database) {
		return Transaction{}, fmt.Errorf("%w: %s", ErrDatabaseNotFound, table.Database)
	}

	if _, err := persistence.fs.Stat(persistence.tablePath(table.Database, table.Name)); err == nil {
		return Transaction{}, fmt.Errorf("%w: %s.%s", ErrTableFound, table.Database, table.Name)
	}

	return persistence.WriteTable(TableFile{Table: table}, identity,
		fmt.Sprintf("Creating table %s.%s", table.Database, table.Name))
}

func (persistence *Persistence) ReadTable(database string, table string) (*TableFile, error) {
	if err := persistence.ensureInitialized(); err != nil {
		return nil, err
	}

	data, err := util.ReadFile(persistence.fs, persistence.tablePath(database, table))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s.%s", ErrTableNotFound, database, table)
		}
		return nil, fmt.Errorf("failed to read table %s.%s: %w", database, table, err)
	}

	file, err := DecodeTable(database, table, data)
	if err != nil {
		return nil, err
	}

	return &file, nil
}

// WriteTable replaces the whole table file and records the change. If the
// change cannot be recorded the previous file, or its absence, is restored.
func (persistence *Persistence) WriteTable(file TableFile, identity core.Identity, message string) (txn Transaction, err error) {
	if err := persistence.ensureInitialized(); err != nil {
		return Transaction{}, err
	}

	path := persistence.tablePath(file.Table.Database, file.Table.Name)
	previous, readErr := util.ReadFile(persistence.fs, path)
	existed := readErr == nil

	if err := util.WriteFile(persistence.fs, path, EncodeTable(file), 0644); err != nil {
		return Transaction{}, fmt.Errorf("failed to write table %s.%s: %w", file.Table.Database, file.Table.Name, err)
	}

	txn, err = persistence.commit(message, identity)
	if err != nil {
		var undoErr error
		if existed {
			undoErr = util.WriteFile(persistence.fs, path, previous, 0644)
		} else {
			undoErr = persistence.fs.Remove(path)
		}
		if undoErr != nil {
			return Transaction{}, errors.Join(err, undoErr)
		}
		return Transaction{}, err
	}
	return txn, nil
}

func (persistence *Persistence) DropTable(database string, table string, identity core.Identity) (txn Transaction, err error) {
	if err := persistence.ensureInitialized(); err != nil {
		return Transaction{}, err
	}

	if !persistence.TableExists(database, table) {
		return Transaction{}, fmt.Errorf("%w: %s.%s", ErrTableNotFound, database, table)
	}

	if err := persistence.fs.Remove(persistence.tablePath(database, table)); err != nil {
		return Transaction{}, fmt.Errorf("failed to remove table %s.%s: %w", database, table, err)
	}

	return persistence.commit(fmt.Sprintf("Dropping table %s.%s", database, table), identity)
}
