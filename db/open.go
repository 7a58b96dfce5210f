// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Supported database types
const (
	TypeSQLite   = "sqlite"
	TypePostgres = "postgres"
	TypePGX      = "pgx"
)

var ErrUnsupportedType = errors.New("unsupported database type")

// ValidType reports whether dbType names a supported driver
func ValidType(dbType string) bool {
	switch dbType {
	case TypeSQLite, TypePostgres, TypePGX:
		return true
	}
	return false
}

// Open connects using the driver registered for dbType and verifies the
// connection with a ping.
func Open(dbType, url string) (*sql.DB, error) {
	if !ValidType(dbType) {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, dbType)
	}

	conn, err := sql.Open(dbType, url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite has a single writer; one connection also keeps :memory: databases shared
	if dbType == TypeSQLite {
		conn.SetMaxOpenConns(1)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return conn, nil
}
