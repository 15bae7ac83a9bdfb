// Package migrations embeds the goose SQL migrations that create and seed
// the storage schema.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
