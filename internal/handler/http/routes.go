package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	router.Get("/healthz", h.health)
	router.Get("/api/version", h.getVersion)
	router.Get("/api/status", h.getStatus)
	router.Post("/api/batch", h.startBatch)
	router.Delete("/api/batch", h.cancelBatch)

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
