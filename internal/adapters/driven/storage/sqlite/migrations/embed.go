// Package migrations holds the numbered schema files applied by the SQLite
// corpus store. Each NNN_name.up.sql runs once and is recorded in
// schema_migrations; the .down.sql files are kept for manual rollback.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
