// Package migrations embeds the SQL schema migrations applied by goose at start-up.
package migrations

import "embed"

// FS holds every goose migration file of the service.
//
//go:embed *.sql
var FS embed.FS
