// Package migrations contains embedded SQL migrations for the SQLite store.
package migrations

import "embed"

//go:embed vaults/*.sql
var VaultsFS embed.FS
