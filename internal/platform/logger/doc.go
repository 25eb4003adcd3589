// Package logger configures the process-wide slog JSON logger and carries
// request-scoped loggers (annotated with trace ids) through context.Context.
package logger
