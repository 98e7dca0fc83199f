package migration

import "embed"

// Migration files ship inside the binary so deploys never depend on a
// files-on-disk layout.
//
//go:embed migrations/*.up.sql
var migrationFiles embed.FS

const migrationsDir = "migrations"
