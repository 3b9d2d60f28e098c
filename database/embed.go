package database

import "embed"

// EmbeddedMigrations bundles the migration SQL files into the binary.
// Access the subtree with fs.Sub(EmbeddedMigrations, "migrations").
//
//go:embed migrations/*.sql
var EmbeddedMigrations embed.FS
