// Package migrations embeds the goose SQL migrations so both the API and the
// worker binary can apply them at startup.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
