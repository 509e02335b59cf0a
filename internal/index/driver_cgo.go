//go:build cgo_sqlite

package index

import (
	_ "github.com/mattn/go-sqlite3" // CGO SQLite driver, build with -tags cgo_sqlite
)

// sqlDriver selects the database/sql driver for the index cache.
const sqlDriver = "sqlite3"
