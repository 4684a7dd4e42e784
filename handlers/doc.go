// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains the Slack request handlers of the poll bot.

# Handler Types

Each handler is a struct with store, Slack client and config dependencies:

  - CommandHandler: /poll, /survey, /pollresults, /closepoll
  - ActionHandler: vote_N, rate_N and respond buttons
  - ViewHandler: wizard steps and response modal submissions
  - EventsHandler: the single POST /slack/events endpoint

Handlers are created via constructor functions:

	events := handlers.NewEventsHandler(st, client, cfg)

SlackClient is the slice of the Web API the handlers call. *slack.Client
satisfies it; tests use testutil.FakeSlack.

# Replies

Slack webhooks are acknowledged with an empty 200. User-facing replies go
out through chat.postEphemeral, chat.postMessage or a DM. Failed Web API
calls are logged and counted in pollbot_slack_api_errors_total; they never
fail the webhook.

View submissions answer inline: response_action "update" moves the wizard
on, "errors" marks invalid fields, and an empty body closes the modal.

# Voter Identity

Public polls key ballots by Slack user ID. Anonymous polls key them by
auth.VoterKey, so raw user IDs are never stored for them.

# Results

Percentages are whole numbers rounded half to even against the sum of the
tallies. Star questions report count, mean and distribution; text answers
are listed and attributed only on public polls.
*/
package handlers
