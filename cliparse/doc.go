// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3321)
  - DatabaseURL: PostgreSQL connection string (required)
  - BaseURL: Frontend base for share/manage/claim links
    (default: http://localhost:5173)

# CLI Flags

	-p  Server port
	-d  Database URL
	-b  Base URL for generated links

# Environment Variables

Flags fall back to environment variables:

	PORT         → -p
	DATABASE_URL → -d
	BASE_URL     → -b

CLI flags take precedence over environment variables. main loads a
.env file via godotenv before parsing, so local development can keep
DATABASE_URL out of the shell.

# Validation

ParseFlags returns an error if DATABASE_URL is missing or PORT is not
a number.
*/
package cliparse
