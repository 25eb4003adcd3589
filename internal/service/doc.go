// Package service contains the application use cases. Services sit between
// the HTTP handlers and the store interfaces: they build and validate domain
// values, enforce cross-entity rules such as board ownership for tasks, and
// publish audit events.
//
// Services depend only on the store interfaces, never on a concrete backend.
// Errors from stores are wrapped with %w so the API layer can still match
// store.ErrNotFound and friends with errors.Is.
package service
