// Package migrations embeds the SQL migration scripts so the migrate
// binary is self-contained.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
