// Package config handles configuration loading, parsing, and validation
// from defaults, an optional config.yaml and KANBAN_* environment variables.
// It provides type-safe access to settings needed by the server, the token
// service and the storage layer while keeping those details out of business logic.
package config
