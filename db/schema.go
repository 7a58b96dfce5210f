// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrations embed.FS

// CreateSchema applies every pending migration.
// Safe to call multiple times - an up-to-date schema is not an error.
func CreateSchema(conn *sql.DB, dbType string) error {
	src, err := iofs.New(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("failed to load migrations: %w", err)
	}

	var driver database.Driver
	switch dbType {
	case TypeSQLite:
		driver, err = migratesqlite.WithInstance(conn, &migratesqlite.Config{})
	case TypePostgres, TypePGX:
		// A dedicated connection, so closing the migrator leaves conn open
		var c *sql.Conn
		c, err = conn.Conn(context.Background())
		if err == nil {
			driver, err = migratepg.WithConnection(context.Background(), c, &migratepg.Config{})
			if err != nil {
				c.Close()
			}
		}
	default:
		src.Close()
		return fmt.Errorf("%w: %q", ErrUnsupportedType, dbType)
	}
	if err != nil {
		src.Close()
		return fmt.Errorf("failed to prepare migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, dbType, driver)
	if err != nil {
		src.Close()
		return fmt.Errorf("failed to create migrator: %w", err)
	}
	defer func() {
		// The sqlite driver would close the *sql.DB it wraps
		if dbType == TypeSQLite {
			src.Close()
			return
		}
		m.Close()
	}()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}
