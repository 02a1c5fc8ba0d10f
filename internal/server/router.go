package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pharmetrics/askdb/internal/api"
	"github.com/pharmetrics/askdb/internal/api/handlers"
	"github.com/pharmetrics/askdb/internal/api/middleware"
)

type RouterConfig struct {
	QueryHandler  *handlers.QueryHandler
	SchemaHandler *handlers.SchemaHandler
	DBHandler     *handlers.DBHandler
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	const maxBodyBytes int64 = 1 * 1024 * 1024

	r.Use(middleware.RequestID)
	r.Use(middleware.SentryMiddleware)
	r.Use(middleware.AccessLog)
	r.Use(middleware.MaxBodyBytes(maxBodyBytes))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		api.JSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	})
	r.Get("/db/test", cfg.DBHandler.Test)

	r.Post("/query", cfg.QueryHandler.Query)
	r.Post("/query-to-sql", cfg.QueryHandler.ToSQL)
	r.Post("/query-to-sql/detailed", cfg.QueryHandler.ToSQLDetailed)

	r.Route("/schema", func(r chi.Router) {
		r.Get("/list", cfg.SchemaHandler.List)
		r.Post("/update", cfg.SchemaHandler.Update)
		r.Post("/delete", cfg.SchemaHandler.Delete)
		r.Post("/clear", cfg.SchemaHandler.Clear)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		api.Error(w, http.StatusNotFound, "Endpoint not found", "The requested endpoint does not exist")
	})

	return r
}
