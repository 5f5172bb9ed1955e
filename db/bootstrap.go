package db

import (
	"log"

	"github.com/nickyhof/DirDB/catalog"
	"github.com/nickyhof/DirDB/ps"
)

// Bootstrap rebuilds the catalog from the storage root: one database per
// entry and one table name per entry inside it. Column definitions are not
// read. An unreadable root yields an empty catalog.
func Bootstrap(persistence *ps.Persistence) *catalog.Catalog {
	c := catalog.New()

	names, err := persistence.ListDatabases()
	if err != nil {
		log.Printf("Starting with an empty catalog: %v", err)
		return c
	}

	for _, name := range names {
		database, err := c.AddDatabase(name)
		if err != nil {
			log.Printf("Skipping database %s: %v", name, err)
			continue
		}

		tables, err := persistence.ListTables(name)
		if err != nil {
			continue
		}

		for _, table := range tables {
			if _, err := database.AddTable(table); err != nil {
				log.Printf("Skipping table %s.%s: %v", name, table, err)
			}
		}
	}

	return c
}
