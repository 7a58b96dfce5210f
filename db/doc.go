// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens database connections and manages the schema.

# Drivers

Three database types are supported:

  - sqlite: modernc.org/sqlite (pure Go, default, used by tests)
  - postgres: github.com/lib/pq
  - pgx: github.com/jackc/pgx/v5/stdlib

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)

SQLite connections are capped at one open connection.

# Schema Creation

CreateSchema applies the embedded golang-migrate migrations:

	if err := db.CreateSchema(conn, cfg.DatabaseType); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - migrate.ErrNoChange is not an error.

# Tables

  - participant: id, name (unique), score (never negative), created_at, updated_at
  - app_config: single row holding the show_up_down feature flag

The same SQL runs on SQLite and PostgreSQL.

# Indexes

  - participant.name (unique)
  - participant.(score DESC, name ASC) for the roster ordering

# Errors

IsUniqueViolation recognizes unique constraint failures from all three
drivers so callers can report duplicates without knowing the backend.
*/
package db
