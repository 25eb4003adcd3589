// Package api translates HTTP requests on the /auth, /boards and /tasks
// routes into service calls and service results into JSON responses. The
// caller's identity always comes from the token, never from the body.
package api
