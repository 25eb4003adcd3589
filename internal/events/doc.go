// Package events lets services publish audit events about board and task
// changes without knowing who consumes them.
//
// Services hold an EventEmitter. The server wires an InMemoryEventEmitter with
// an AuditLogHandler, so every change ends up as one structured log line.
package events
