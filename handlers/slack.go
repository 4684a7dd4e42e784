// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"log/slog"

	"github.com/slack-go/slack"

	"github.com/danielhkuo/quickly-pick-slack/auth"
	"github.com/danielhkuo/quickly-pick-slack/cliparse"
	"github.com/danielhkuo/quickly-pick-slack/metrics"
	"github.com/danielhkuo/quickly-pick-slack/models"
	"github.com/danielhkuo/quickly-pick-slack/store"
)

// SlackClient is the subset of the Slack Web API the bot calls.
// *slack.Client satisfies it.
type SlackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
	PostEphemeralContext(ctx context.Context, channelID, userID string, options ...slack.MsgOption) (string, error)
	OpenViewContext(ctx context.Context, triggerID string, view slack.ModalViewRequest) (*slack.ViewResponse, error)
	OpenConversationContext(ctx context.Context, params *slack.OpenConversationParameters) (*slack.Channel, bool, bool, error)
	CreateCanvasContext(ctx context.Context, title string, documentContent slack.DocumentContent) (string, error)
}

// User-facing replies
const (
	msgUsage           = "❗ Usage: /poll \"Question\" \"Option 1\" \"Option 2\" ..."
	msgNoPoll          = "❗ No active poll found."
	msgClosed          = "❌ This poll has been closed."
	msgAlreadyVoted    = "✅ You’ve already voted!"
	msgAlreadyVotedFor = "✅ You’ve already voted for *%s*!"
	msgAlreadyAnswered = "✅ You’ve already responded!"
	msgNotCreator      = "❌ Only the poll creator can close it."
	msgAlreadyClosed   = "❗ This poll is already closed."
	msgPosted          = "✅ Your poll has been posted."
	msgThanks          = "✅ Thanks, your response was recorded."
	msgInvalidChoice   = "❗ That choice is not available on this poll."
	msgWizardFailed    = "❗ Could not open the poll dialog. Please try again."
	msgInternal        = "❗ Something went wrong. Please try again."
)

// bot carries the dependencies shared by every Slack handler
type bot struct {
	store  store.Store
	client SlackClient
	cfg    cliparse.Config
}

// ephemeral replies to one user in a channel. Failures are logged only.
func (b *bot) ephemeral(ctx context.Context, channelID, userID, text string) {
	_, err := b.client.PostEphemeralContext(ctx, channelID, userID, slack.MsgOptionText(text, false))
	if err != nil {
		apiError("chat.postEphemeral", err, "channel", channelID, "user", userID)
	}
}

// post sends a message to a channel, with optional blocks.
func (b *bot) post(ctx context.Context, channelID, text string, set ...slack.Block) error {
	opts := []slack.MsgOption{slack.MsgOptionText(text, false)}
	if len(set) > 0 {
		opts = append(opts, slack.MsgOptionBlocks(set...))
	}
	_, _, err := b.client.PostMessageContext(ctx, channelID, opts...)
	if err != nil {
		apiError("chat.postMessage", err, "channel", channelID)
	}
	return err
}

// dm opens a direct conversation with a user and posts text there.
func (b *bot) dm(ctx context.Context, userID, text string) {
	ch, _, _, err := b.client.OpenConversationContext(ctx, &slack.OpenConversationParameters{
		Users: []string{userID},
	})
	if err != nil {
		apiError("conversations.open", err, "user", userID)
		return
	}
	_ = b.post(ctx, ch.ID, text)
}

// voterKey identifies a voter within one poll. Anonymous polls never
// store the raw user ID.
func (b *bot) voterKey(p *models.Poll, userID string) string {
	if p.Visibility == models.VisibilityAnonymous {
		return auth.VoterKey(p.ID, userID, b.cfg.VoterSalt)
	}
	return userID
}

func apiError(method string, err error, args ...any) {
	metrics.SlackAPIErrors.WithLabelValues(method).Inc()
	slog.Error("slack api call failed", append([]any{"method", method, "error", err}, args...)...)
}

func rejected(reason string) {
	metrics.BallotsRejected.WithLabelValues(reason).Inc()
}
