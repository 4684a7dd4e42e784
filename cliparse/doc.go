// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3000)
  - BotToken: Slack bot token, xoxb-... (required)
  - SigningSecret: Slack app signing secret (required)
  - StoreBackend: memory or sqlite (default: memory)
  - VoterSalt: HMAC salt for anonymous voter keys (default: random)

# CLI Flags

	-p               Server port
	-token           Slack bot token
	-signing-secret  Slack signing secret
	-store           Poll store backend
	-voter-salt      Anonymous voter key salt

# Environment Variables

Flags fall back to environment variables:

	PORT                 → -p
	SLACK_BOT_TOKEN      → -token
	SLACK_SIGNING_SECRET → -signing-secret
	POLL_STORE           → -store
	VOTER_HASH_SALT      → -voter-salt

CLI flags take precedence over environment variables. main loads a .env
file into the environment before ParseFlags runs.

# Validation

ParseFlags returns an error if required values are missing or invalid:

  - SLACK_BOT_TOKEN must be provided
  - SLACK_SIGNING_SECRET must be provided
  - PORT must be a number
  - POLL_STORE must be memory or sqlite
*/
package cliparse
