package main

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/phrazzld/kanban-api/internal/api"
	apimw "github.com/phrazzld/kanban-api/internal/api/middleware"
	"github.com/phrazzld/kanban-api/internal/api/shared"
)

const healthCheckTimeout = 2 * time.Second

var routedMethods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete}

// setupRouter builds the chi router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(apimw.TraceMiddleware(app.logger))
	r.Use(apimw.RequestLogger)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: app.config.CORS.AllowedOrigins,
		AllowedMethods: append([]string{http.MethodOptions}, routedMethods...),
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		ExposedHeaders: []string{"Retry-After"},
		MaxAge:         300,
	}))

	// Unsupported verbs are rejected during routing, before the auth guard runs.
	r.MethodNotAllowed(methodNotAllowed(r))
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithError(w, r, http.StatusNotFound, "Not Found")
	})

	authHandler := api.NewAuthHandler(app.userService, app.tokenService)
	boardHandler := api.NewBoardHandler(app.boardService)
	taskHandler := api.NewTaskHandler(app.taskService, app.now)
	authMiddleware := apimw.NewAuthMiddleware(app.tokenService)
	limiter := apimw.NewRateLimiter(app.config.RateLimit.AuthRequestsPerMinute, app.config.RateLimit.AuthBurst)

	r.Route("/auth", func(r chi.Router) {
		r.Use(limiter.Limit)
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
	})

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)

		r.Get("/boards", boardHandler.List)
		r.Post("/boards", boardHandler.Create)
		r.Put("/boards", boardHandler.Rename)
		r.Delete("/boards", boardHandler.Delete)

		r.Get("/tasks", taskHandler.List)
		r.Post("/tasks", taskHandler.Create)
		r.Put("/tasks", taskHandler.Update)
		r.Delete("/tasks", taskHandler.Delete)
	})

	r.Get("/health", app.health)

	return r
}

// methodNotAllowed replies 405 with an Allow header listing the verbs the
// path does support.
func methodNotAllowed(routes chi.Routes) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var allowed []string
		for _, method := range routedMethods {
			if routes.Match(chi.NewRouteContext(), method, r.URL.Path) {
				allowed = append(allowed, method)
			}
		}
		w.Header().Set("Allow", strings.Join(allowed, ", "))
		shared.RespondWithError(w, r, http.StatusMethodNotAllowed, "Method Not Allowed")
	}
}

// health reports 200 OK when the store answers a ping and 503 otherwise.
func (app *application) health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	if err := app.ping(ctx); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusServiceUnavailable, "Service Unavailable", err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("OK")); err != nil {
		app.logger.Error("failed to write health check response", "error", err)
	}
}
