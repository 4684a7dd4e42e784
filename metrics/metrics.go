// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package metrics holds the Prometheus collectors for the poll bot.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry is private to the bot so tests can build routers repeatedly
// without duplicate registration panics.
var Registry = prometheus.NewRegistry()

var (
	PollsCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pollbot_polls_created_total",
			Help: "Total polls created, by kind.",
		},
		[]string{"kind"},
	)

	PollsClosed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pollbot_polls_closed_total",
			Help: "Total polls closed by their creator, by kind.",
		},
		[]string{"kind"},
	)

	Ballots = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pollbot_ballots_total",
			Help: "Votes, ratings and feedback responses recorded, by poll kind.",
		},
		[]string{"kind"},
	)

	BallotsRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pollbot_ballots_rejected_total",
			Help: "Ballots rejected, by reason.",
		},
		[]string{"reason"},
	)

	SlackAPIErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pollbot_slack_api_errors_total",
			Help: "Failed outbound Slack Web API calls, by method.",
		},
		[]string{"method"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pollbot_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds, by path, method and status.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "method", "status"},
	)
)

func init() {
	Registry.MustRegister(
		PollsCreated,
		PollsClosed,
		Ballots,
		BallotsRejected,
		SlackAPIErrors,
		RequestDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// Handler serves the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
