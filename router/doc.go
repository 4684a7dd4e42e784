// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the poll bot.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(st, slackClient, cfg)

# Endpoints

	POST /slack/events - Slash commands, interactions, Events API
	GET  /health       - Liveness ("OK")
	GET  /metrics      - Prometheus exposition
	GET  /             - Status banner

Slack sends slash commands, button clicks, modal submissions and Events API
callbacks to the same request URL; handlers.EventsHandler tells them apart.

# Handler Initialization

The router creates the events handler with dependency injection:

	eventsHandler := handlers.NewEventsHandler(st, client, cfg)

All handlers receive the poll store, the Slack client and the configuration.
*/
package router
