// Package migrations embeds the goose migrations for the local sheet backend.
package migrations

import "embed"

// FS holds the SQL migration files.
//
//go:embed *.sql
var FS embed.FS
