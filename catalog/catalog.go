package catalog

import (
	"errors"
	"strings"
)

var (
	ErrDatabaseExists    = errors.New("database already exists")
	ErrDatabaseNotExists = errors.New("database does not exist")
	ErrTableExists       = errors.New("table already exists")
	ErrTableNotExists    = errors.New("table does not exist")
)

// Catalog holds every known database in creation order
type Catalog struct {
	databases []*Database
}

// Database owns its tables in creation order
type Database struct {
	Name   string
	tables []*Table
}

type Table struct {
	Name string
}

func New() *Catalog {
	return &Catalog{}
}

// Len returns the number of databases
func (c *Catalog) Len() int {
	return len(c.databases)
}

// Databases returns the databases in creation order
func (c *Catalog) Databases() []*Database {
	return append([]*Database(nil), c.databases...)
}

// Database looks a database up by name, ignoring case
func (c *Catalog) Database(name string) (*Database, int, bool) {
	for i, database := range c.databases {
		if strings.EqualFold(database.Name, name) {
			return database, i, true
		}
	}
	return nil, -1, false
}

func (c *Catalog) AddDatabase(name string) (*Database, error) {
	if _, _, exists := c.Database(name); exists {
		return nil, ErrDatabaseExists
	}
	database := &Database{Name: name}
	c.databases = append(c.databases, database)
	return database, nil
}

func (c *Catalog) RemoveDatabase(name string) error {
	_, index, exists := c.Database(name)
	if !exists {
		return ErrDatabaseNotExists
	}
	c.databases = append(c.databases[:index], c.databases[index+1:]...)
	return nil
}

// Tables returns the tables in creation order
func (d *Database) Tables() []*Table {
	return append([]*Table(nil), d.tables...)
}

// Table looks a table up by name, ignoring case
func (d *Database) Table(name string) (*Table, int, bool) {
	for i, table := range d.tables {
		if strings.EqualFold(table.Name, name) {
			return table, i, true
		}
	}
	return nil, -1, false
}

func (d *Database) AddTable(name string) (*Table, error) {
	if _, _, exists := d.Table(name); exists {
		return nil, ErrTableExists
	}
	table := &Table{Name: name}
	d.tables = append(d.tables, table)
	return table, nil
}

func (d *Database) RemoveTable(name string) error {
	_, index, exists := d.Table(name)
	if !exists {
		return ErrTableNotExists
	}
	d.tables = append(d.tables[:index], d.tables[index+1:]...)
	return nil
}
