// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("POST /slack/events", middleware.WithLogging(handler))

Logs request start (method, path, remote) and completion (status,
duration_ms). Each request is also observed in the
pollbot_http_request_duration_seconds histogram, labelled by the matched
route pattern so unknown paths do not grow the series count.

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)

Only used for request logs.
*/
package middleware
