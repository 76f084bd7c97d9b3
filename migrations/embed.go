// Package migrations embeds goose SQL migrations into the binary.
package migrations

import "embed"

// FS holds all *.sql migrations applied by internal/migrate.
//
//go:embed *.sql
var FS embed.FS
