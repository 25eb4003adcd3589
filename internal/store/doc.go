// Package store defines the persistence contracts for users, boards and tasks
// and the sentinel errors every backend returns.
//
// Implementations live in platform/memory and platform/sqlstore; both must
// pass the conformance suite in store/storetest. Board and task methods take
// the caller's user ID and behave as if rows owned by other users do not exist.
package store
