// Package config provides configuration loading and validation for logtable.
//
// The package handles YAML configuration files, environment variables, and CLI flags
// with automatic merging and validation using go-playground/validator.
//
// # Configuration Precedence
//
// Values are loaded in this order (later sources override earlier ones):
//
//  1. Default values
//  2. Configuration file(s) - multiple files merged left-to-right
//  3. Environment variables (LOGTABLE_ prefix)
//  4. CLI flags
//
// # Usage
//
//	cfg, err := config.Load([]string{"config.yaml"}, cmd.Flags())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	a, err := appender.New(ctx, cfg.Appender.Build(appender.Params{Config: cfg.Database}), nil)
//
// # Environment Variables
//
// All config keys map to environment variables with LOGTABLE_ prefix:
//   - database.dsn → LOGTABLE_DATABASE_DSN
//   - appender.table → LOGTABLE_APPENDER_TABLE
//   - server.port → LOGTABLE_SERVER_PORT
//
// # Configuration Structure
//
// The Config struct contains:
//   - Database: backend type (sqlite, postgres, mysql) and DSN
//   - Appender: table, layout, additional_fields and transactional
//   - Server: port and max_body_size for the HTTP endpoint
//   - Auth: read/write access (public or private) and bearer tokens
//   - CORS: cross-origin resource sharing settings
//   - Log: level and format of the process's own logs
//
// # Validation
//
// Configuration is validated using struct tags:
//   - Database type must be sqlite, postgres or mysql
//   - Table must be a lowercase identifier of at most 63 characters
//   - Port must be 1-65535
//   - Log level must be debug, info, warn or error
package config
