package migrations

import "embed"

// FS holds the versioned schema migrations, named NNN_name.up.sql and
// NNN_name.down.sql.
//
//go:embed *.sql
var FS embed.FS
