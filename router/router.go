// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/quickly-pick-slack/cliparse"
	"github.com/danielhkuo/quickly-pick-slack/handlers"
	"github.com/danielhkuo/quickly-pick-slack/metrics"
	"github.com/danielhkuo/quickly-pick-slack/middleware"
	"github.com/danielhkuo/quickly-pick-slack/store"
)

func NewRouter(st store.Store, client handlers.SlackClient, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	eventsHandler := handlers.NewEventsHandler(st, client, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Slack webhooks (commands, interactions, Events API)
	mux.HandleFunc("POST /slack/events", middleware.WithLogging(eventsHandler.HandleEvents))

	// Prometheus metrics
	mux.Handle("GET /metrics", metrics.Handler())

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("✅ Poll bot is running."))
	})

	return mux
}
