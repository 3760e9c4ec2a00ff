// Package migrations bundles the assistant schema migrations.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
