//go:build !cgo_sqlite

package index

import (
	_ "modernc.org/sqlite" // pure Go SQLite driver, no CGO required
)

// sqlDriver selects the database/sql driver for the index cache.
const sqlDriver = "sqlite"
