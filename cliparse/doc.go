// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseType: sqlite (default), postgres or memory
  - DatabaseURL: connection string (sqlite default: file:scoring.db)
  - AdminPassword: shared administrator password (required)
  - ExpertPassword: shared expert password (required)
  - LogLevel: debug, info, warn, error (default: info)
  - EnvFile: dotenv file read before the environment (default: .env)

# CLI Flags

	-p                Server port
	-d                Database URL
	-t                Database type
	-log-level        Log level
	-env-file         Dotenv file
	-admin-password   Administrator password
	-expert-password  Expert password

# Environment Variables

Flags fall back to environment variables:

	PORT            → -p
	DATABASE_URL    → -d
	DATABASE_TYPE   → -t
	LOG_LEVEL       → -log-level
	ADMIN_PASSWORD  → -admin-password
	EXPERT_PASSWORD → -expert-password

CLI flags take precedence over environment variables, and real environment
variables take precedence over the dotenv file. A missing dotenv file is
not an error.

# Validation

ParseFlags returns an error if required values are missing:

  - ADMIN_PASSWORD must be provided
  - EXPERT_PASSWORD must be provided
  - DATABASE_URL must be provided for postgres
*/
package cliparse
