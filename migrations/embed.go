// Package migrations embeds the versioned schema for each SQL backend.
package migrations

import (
	"embed"
	"io/fs"
)

//go:embed postgres/*.sql
var postgresFiles embed.FS

//go:embed sqlite/*.sql
var sqliteFiles embed.FS

// Postgres returns the postgres migration files rooted at their directory.
func Postgres() fs.FS {
	sub, err := fs.Sub(postgresFiles, "postgres")
	if err != nil {
		panic(err)
	}
	return sub
}

// SQLite returns the sqlite migration files rooted at their directory.
func SQLite() fs.FS {
	sub, err := fs.Sub(sqliteFiles, "sqlite")
	if err != nil {
		panic(err)
	}
	return sub
}
