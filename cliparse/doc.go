// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: Connection string or SQLite path (required)
  - DatabaseType: sqlite, postgres or pgx (default: sqlite)
  - SpinDuration: Length of one spin animation (default: 3s)
  - FrameInterval: Time between animation frames (default: 16ms)
  - AllowedOrigins: CORS origins (default: "*")

# CLI Flags

	-p        Server port
	-d        Database URL
	-t        Database type
	-spin-ms  Spin duration in milliseconds
	-frame-ms Frame interval in milliseconds
	-origins  Comma-separated CORS origins

# Environment Variables

Flags fall back to environment variables:

	PORT             → -p
	DATABASE_URL     → -d
	DATABASE_TYPE    → -t
	SPIN_DURATION_MS → -spin-ms
	SPIN_FRAME_MS    → -frame-ms
	CORS_ORIGINS     → -origins

CLI flags take precedence over environment variables. LoadDotEnv reads a
.env file into the environment first, without overriding variables that
are already set.

# Validation

ParseFlags returns an error if:

  - no database URL is given
  - the database type is not supported
  - a numeric value does not parse, or the port is out of range
  - the spin duration or frame interval is not positive, or the frame
    interval is longer than the spin

# Example

	if err := cliparse.LoadDotEnv(".env"); err != nil {
		slog.Warn("could not load .env file", "error", err)
	}
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
*/
package cliparse
