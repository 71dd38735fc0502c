// Package apidb holds all the migrations for the API server database
package apidb

import "github.com/uptrace/bun/migrate"

// Migrations is the ordered set of API server schema migrations.
var Migrations = migrate.NewMigrations()
