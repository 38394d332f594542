// Package migrations embeds the SQLite schema of the session store.
package migrations

import "embed"

// FS contains embedded SQLite migrations for session storage.
//
//go:embed *.sql
var FS embed.FS
