// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"github.com/slack-go/slack"

	"github.com/danielhkuo/quickly-pick-slack/blocks"
	"github.com/danielhkuo/quickly-pick-slack/cliparse"
	"github.com/danielhkuo/quickly-pick-slack/metrics"
	"github.com/danielhkuo/quickly-pick-slack/models"
	"github.com/danielhkuo/quickly-pick-slack/store"
)

var ErrUnbalancedQuotes = errors.New("unbalanced quotes")

type CommandHandler struct {
	bot
}

func NewCommandHandler(st store.Store, client SlackClient, cfg cliparse.Config) *CommandHandler {
	return &CommandHandler{bot{store: st, client: client, cfg: cfg}}
}

// Handle dispatches a slash command. Replies go through the Web API, so the
// webhook itself is always acknowledged with an empty 200.
func (h *CommandHandler) Handle(ctx context.Context, cmd slack.SlashCommand) {
	slog.Info("slash command", "command", cmd.Command, "user", cmd.UserID, "channel", cmd.ChannelID)

	switch cmd.Command {
	case "/poll":
		h.Poll(ctx, cmd)
	case "/survey":
		h.openWizard(ctx, cmd, models.KindFeedback)
	case "/pollresults":
		h.Results(ctx, cmd)
	case "/closepoll":
		h.Close(ctx, cmd)
	default:
		slog.Warn("unknown slash command", "command", cmd.Command)
	}
}

// Poll handles /poll. Without arguments it opens the wizard; with quoted
// arguments it posts a single-choice vote poll right away.
func (h *CommandHandler) Poll(ctx context.Context, cmd slack.SlashCommand) {
	if strings.TrimSpace(cmd.Text) == "" {
		h.openWizard(ctx, cmd, models.KindVote)
		return
	}

	args, err := parseQuoted(cmd.Text)
	if err != nil || len(args) < 1+models.MinOptions {
		h.ephemeral(ctx, cmd.ChannelID, cmd.UserID, msgUsage)
		return
	}

	p, err := models.NewVotePoll(uuid.NewString(), cmd.ChannelID, cmd.UserID, args[0], args[1:], false, models.VisibilityPublic)
	if err != nil {
		slog.Info("quick poll rejected", "user", cmd.UserID, "error", err)
		h.ephemeral(ctx, cmd.ChannelID, cmd.UserID, msgUsage)
		return
	}

	if err := h.publish(ctx, p); err != nil {
		h.ephemeral(ctx, cmd.ChannelID, cmd.UserID, msgInternal)
	}
}

func (h *CommandHandler) openWizard(ctx context.Context, cmd slack.SlashCommand, kind models.Kind) {
	view, err := blocks.StepOne(models.Draft{
		Channel: cmd.ChannelID,
		User:    cmd.UserID,
		Kind:    kind,
	})
	if err != nil {
		slog.Error("failed to build wizard", "error", err)
		h.ephemeral(ctx, cmd.ChannelID, cmd.UserID, msgWizardFailed)
		return
	}

	if _, err := h.client.OpenViewContext(ctx, cmd.TriggerID, view); err != nil {
		apiError("views.open", err, "user", cmd.UserID)
		h.ephemeral(ctx, cmd.ChannelID, cmd.UserID, msgWizardFailed)
	}
}

// Results handles /pollresults for the channel's latest poll.
func (h *CommandHandler) Results(ctx context.Context, cmd slack.SlashCommand) {
	p, err := h.store.Latest(ctx, cmd.ChannelID)
	if errors.Is(err, store.ErrNotFound) {
		h.ephemeral(ctx, cmd.ChannelID, cmd.UserID, msgNoPoll)
		return
	}
	if err != nil {
		slog.Error("failed to load poll", "channel", cmd.ChannelID, "error", err)
		h.ephemeral(ctx, cmd.ChannelID, cmd.UserID, msgInternal)
		return
	}

	h.ephemeral(ctx, cmd.ChannelID, cmd.UserID, ResultsText(p))
}

// Close handles /closepoll. Only the creator may close the channel's latest
// poll. The full results go to a canvas; the final tally is posted to the
// channel even if the canvas cannot be created.
func (h *CommandHandler) Close(ctx context.Context, cmd slack.SlashCommand) {
	p, err := h.store.Latest(ctx, cmd.ChannelID)
	if errors.Is(err, store.ErrNotFound) {
		h.ephemeral(ctx, cmd.ChannelID, cmd.UserID, msgNoPoll)
		return
	}
	if err != nil {
		slog.Error("failed to load poll", "channel", cmd.ChannelID, "error", err)
		h.ephemeral(ctx, cmd.ChannelID, cmd.UserID, msgInternal)
		return
	}

	closed, err := h.store.Update(ctx, p.ID, func(p *models.Poll) error {
		return p.Close(cmd.UserID)
	})
	switch {
	case errors.Is(err, models.ErrNotCreator):
		h.ephemeral(ctx, cmd.ChannelID, cmd.UserID, msgNotCreator)
		return
	case errors.Is(err, models.ErrPollClosed):
		h.ephemeral(ctx, cmd.ChannelID, cmd.UserID, msgAlreadyClosed)
		return
	case err != nil:
		slog.Error("failed to close poll", "poll_id", p.ID, "error", err)
		h.ephemeral(ctx, cmd.ChannelID, cmd.UserID, msgInternal)
		return
	}

	metrics.PollsClosed.WithLabelValues(string(closed.Kind)).Inc()
	slog.Info("poll closed", "poll_id", closed.ID, "channel", closed.ChannelID, "participants", closed.Participants())

	var link string
	canvasID, err := h.client.CreateCanvasContext(ctx, "📊 "+closed.Title, slack.DocumentContent{
		Type:     "markdown",
		Markdown: CanvasMarkdown(closed),
	})
	if err != nil {
		apiError("canvases.create", err, "poll_id", closed.ID)
	} else {
		link = CanvasURL(cmd.TeamDomain, cmd.TeamID, canvasID)
	}

	_ = h.post(ctx, cmd.ChannelID, ClosedText(closed, link))
}

// publish posts a new poll to its channel and then stores it. A poll that
// could not be posted is never stored, so the channel's current poll stays
// active.
func (b *bot) publish(ctx context.Context, p *models.Poll) error {
	if err := b.post(ctx, p.ChannelID, blocks.PollFallback(p), blocks.PollMessage(p)...); err != nil {
		return err
	}

	if err := b.store.Create(ctx, p); err != nil {
		slog.Error("failed to store poll", "poll_id", p.ID, "error", err)
		return err
	}
	metrics.PollsCreated.WithLabelValues(string(p.Kind)).Inc()
	slog.Info("poll created", "poll_id", p.ID, "kind", p.Kind, "channel", p.ChannelID, "creator", p.CreatorID)
	return nil
}

// parseQuoted splits `"Question" "A" "B"` into its quoted parts. Straight
// and curly double quotes are accepted. Text outside quotes is an error.
func parseQuoted(s string) ([]string, error) {
	var (
		parts   []string
		current strings.Builder
		inQuote bool
	)
	for _, r := range s {
		switch {
		case isQuote(r) && inQuote:
			parts = append(parts, strings.TrimSpace(current.String()))
			current.Reset()
			inQuote = false
		case isQuote(r):
			inQuote = true
		case inQuote:
			current.WriteRune(r)
		case !unicode.IsSpace(r):
			return nil, ErrUnbalancedQuotes
		}
	}
	if inQuote {
		return nil, ErrUnbalancedQuotes
	}
	return parts, nil
}

func isQuote(r rune) bool {
	return r == '"' || r == '“' || r == '”'
}
