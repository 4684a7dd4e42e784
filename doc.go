// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Slack poll bot.

The bot creates polls from slash commands and a modal wizard, collects
votes, star ratings and free-text feedback through interactive buttons,
and reports tallies in the channel.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	SLACK_BOT_TOKEN=xoxb-... SLACK_SIGNING_SECRET=... go run .

Or with flags:

	go run . -p 3000 -token xoxb-... -signing-secret ...

A .env file in the working directory is loaded first if present.

# Configuration

Required settings:

  - SLACK_BOT_TOKEN (-token): Bot token for the Web API
  - SLACK_SIGNING_SECRET (-signing-secret): App signing secret

Optional settings:

  - PORT (-p): Server port (default: 3000)
  - POLL_STORE (-store): memory or sqlite (default: memory)
  - VOTER_HASH_SALT (-voter-salt): Secret for anonymous voter keys
    (default: random per process)

Polls live for the lifetime of the process with either backend.

# Slack App Setup

Point the slash commands /poll, /survey, /pollresults and /closepoll,
Interactivity and the Events API request URL at POST /slack/events.
The bot token needs chat:write, commands, im:write and canvases:write.

# Architecture

  - handlers: Slash command, action, view and event handlers
  - blocks: Block Kit modals and messages
  - router: Route definitions using Go 1.22+ routing
  - middleware: Logging, metrics, JSON helpers
  - models: Poll record, wizard draft, domain errors
  - store: Memory and SQLite poll stores
  - db: SQLite schema
  - auth: IDs and anonymous voter keys
  - metrics: Prometheus collectors
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
