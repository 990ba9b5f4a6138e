// Package migrations embeds the SQL migration files so both the server and
// the updater binaries are self-contained.
package migrations

import "embed"

// FS contains all *.sql migration files embedded at compile time.
//
//go:embed *.sql
var FS embed.FS
