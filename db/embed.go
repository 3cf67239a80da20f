// Package db provides the embedded schema and seed data.
package db

import _ "embed"

// Schema contains the DDL statements for the reference-data tables.
//
//go:embed migrations/001_schema.sql
var Schema string

// SeedMenu is the default menu dataset consumed by cmd/seed-db.
//
//go:embed seed/menu.json
var SeedMenu []byte

