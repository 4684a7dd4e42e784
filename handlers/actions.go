// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/slack-go/slack"

	"github.com/danielhkuo/quickly-pick-slack/blocks"
	"github.com/danielhkuo/quickly-pick-slack/cliparse"
	"github.com/danielhkuo/quickly-pick-slack/metrics"
	"github.com/danielhkuo/quickly-pick-slack/models"
	"github.com/danielhkuo/quickly-pick-slack/store"
)

type ActionHandler struct {
	bot
}

func NewActionHandler(st store.Store, client SlackClient, cfg cliparse.Config) *ActionHandler {
	return &ActionHandler{bot{store: st, client: client, cfg: cfg}}
}

// Handle processes the button clicks of a block_actions payload.
func (h *ActionHandler) Handle(ctx context.Context, cb *slack.InteractionCallback) {
	for _, a := range cb.ActionCallback.BlockActions {
		if a.ActionID == blocks.RespondAction {
			h.Respond(ctx, cb, a)
			continue
		}
		if n, ok := blocks.ParseVoteAction(a.ActionID); ok {
			h.Vote(ctx, cb, a, n)
			continue
		}
		if n, ok := blocks.ParseRateAction(a.ActionID); ok {
			h.Rate(ctx, cb, a, n)
			continue
		}
		slog.Warn("unknown action", "action_id", a.ActionID, "user", cb.User.ID)
	}
}

// Vote handles vote_N on a vote poll.
func (h *ActionHandler) Vote(ctx context.Context, cb *slack.InteractionCallback, a *slack.BlockAction, option int) {
	p, channel, ok := h.pollFor(ctx, cb, a)
	if !ok {
		return
	}

	key := h.voterKey(p, cb.User.ID)
	p, err := h.store.Update(ctx, p.ID, func(p *models.Poll) error {
		return p.CastVote(key, option)
	})
	switch {
	case errors.Is(err, models.ErrPollClosed):
		rejected("closed")
		h.ephemeral(ctx, channel, cb.User.ID, msgClosed)
	case errors.Is(err, models.ErrAlreadyVoted):
		rejected("duplicate")
		if p.Vote.Multi {
			h.ephemeral(ctx, channel, cb.User.ID, fmt.Sprintf(msgAlreadyVotedFor, p.Vote.Options[option]))
		} else {
			h.ephemeral(ctx, channel, cb.User.ID, msgAlreadyVoted)
		}
	case errors.Is(err, models.ErrInvalidOption), errors.Is(err, models.ErrWrongKind):
		rejected("invalid")
		h.ephemeral(ctx, channel, cb.User.ID, msgInvalidChoice)
	case err != nil:
		slog.Error("failed to record vote", "poll_id", a.Value, "error", err)
		h.ephemeral(ctx, channel, cb.User.ID, msgInternal)
	default:
		metrics.Ballots.WithLabelValues(string(p.Kind)).Inc()
		slog.Info("vote recorded", "poll_id", p.ID, "option", option)
		h.ephemeral(ctx, channel, cb.User.ID, VoteRecordedText(p, option))
	}
}

// Rate handles rate_N on a ranking poll. Each voter rates once.
func (h *ActionHandler) Rate(ctx context.Context, cb *slack.InteractionCallback, a *slack.BlockAction, stars int) {
	p, channel, ok := h.pollFor(ctx, cb, a)
	if !ok {
		return
	}

	key := h.voterKey(p, cb.User.ID)
	p, err := h.store.Update(ctx, p.ID, func(p *models.Poll) error {
		if p.Kind != models.KindRanking {
			return models.ErrWrongKind
		}
		return p.Respond(key, []models.Answer{{Stars: stars}})
	})
	switch {
	case errors.Is(err, models.ErrPollClosed):
		rejected("closed")
		h.ephemeral(ctx, channel, cb.User.ID, msgClosed)
	case errors.Is(err, models.ErrAlreadyResponded):
		rejected("duplicate")
		h.ephemeral(ctx, channel, cb.User.ID, msgAlreadyAnswered)
	case errors.Is(err, models.ErrInvalidAnswer), errors.Is(err, models.ErrWrongKind):
		rejected("invalid")
		h.ephemeral(ctx, channel, cb.User.ID, msgInvalidChoice)
	case err != nil:
		slog.Error("failed to record rating", "poll_id", a.Value, "error", err)
		h.ephemeral(ctx, channel, cb.User.ID, msgInternal)
	default:
		metrics.Ballots.WithLabelValues(string(p.Kind)).Inc()
		slog.Info("rating recorded", "poll_id", p.ID, "stars", stars)
		h.ephemeral(ctx, channel, cb.User.ID, RatingRecordedText(p, stars))
	}
}

// Respond opens the response modal of a feedback or blended poll.
func (h *ActionHandler) Respond(ctx context.Context, cb *slack.InteractionCallback, a *slack.BlockAction) {
	p, channel, ok := h.pollFor(ctx, cb, a)
	if !ok {
		return
	}

	switch {
	case !p.Active:
		h.ephemeral(ctx, channel, cb.User.ID, msgClosed)
		return
	case p.Feedback == nil:
		h.ephemeral(ctx, channel, cb.User.ID, msgInvalidChoice)
		return
	case p.HasResponded(h.voterKey(p, cb.User.ID)):
		h.ephemeral(ctx, channel, cb.User.ID, msgAlreadyAnswered)
		return
	}

	if _, err := h.client.OpenViewContext(ctx, cb.TriggerID, blocks.ResponseModal(p)); err != nil {
		apiError("views.open", err, "poll_id", p.ID, "user", cb.User.ID)
		h.ephemeral(ctx, channel, cb.User.ID, msgInternal)
	}
}

// pollFor finds the poll a button belongs to. Buttons carry the poll ID;
// without one the channel's latest poll is used. Missing polls are
// reported to the user and ok is false.
func (h *ActionHandler) pollFor(ctx context.Context, cb *slack.InteractionCallback, a *slack.BlockAction) (p *models.Poll, channel string, ok bool) {
	channel = cb.Channel.ID

	var err error
	if a.Value != "" {
		p, err = h.store.Get(ctx, a.Value)
	} else {
		p, err = h.store.Latest(ctx, channel)
	}
	if errors.Is(err, store.ErrNotFound) {
		h.ephemeral(ctx, channel, cb.User.ID, msgNoPoll)
		return nil, channel, false
	}
	if err != nil {
		slog.Error("failed to load poll", "poll_id", a.Value, "channel", channel, "error", err)
		h.ephemeral(ctx, channel, cb.User.ID, msgInternal)
		return nil, channel, false
	}

	if channel == "" {
		channel = p.ChannelID
	}
	return p, channel, true
}
