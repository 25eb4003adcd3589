// Package domain holds the Kanban entities (users, boards, tasks), their
// validation rules and the partial-update patch applied to tasks. It has no
// dependencies on storage or transport.
package domain
