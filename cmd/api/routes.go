package main

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"bookmanager/internal/book"
	"bookmanager/internal/config"
	"bookmanager/internal/httpx"
	"bookmanager/internal/store"
)

const welcomeMessage = "Welcome to the Book Management API"

// newRouter wires the routes and the middleware chain. The returned func
// releases background resources held by the middlewares.
func newRouter(cfg config.Config, st store.Store, validator *book.Validator, logger *slog.Logger) (http.Handler, func()) {
	router := http.NewServeMux()

	router.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"message": welcomeMessage})
	})
	router.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		if err := st.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	bookHandler := book.NewHTTPHandler(book.NewService(), st, validator, logger)
	bookHandler.Register(router)

	middlewares := []func(http.Handler) http.Handler{
		httpx.RequestIDMiddleware,
		httpx.AccessLogMiddleware(logger),
		httpx.RecoveryMiddleware(logger),
		httpx.CORSMiddleware(cfg.CORSAllowedOrigins),
		httpx.SecurityHeadersMiddleware(cfg.EnableHSTS),
	}
	cleanup := func() {}
	if cfg.RateLimitRPS > 0 {
		limiter := httpx.NewRateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst)
		middlewares = append(middlewares, limiter.Middleware)
		cleanup = limiter.Close
	}
	middlewares = append(middlewares, httpx.RequestSizeLimitMiddleware(cfg.MaxBodyBytes))

	return httpx.Chain(router, middlewares...), cleanup
}
