// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"

	"github.com/danielhkuo/quickly-pick-slack/cliparse"
	"github.com/danielhkuo/quickly-pick-slack/middleware"
	"github.com/danielhkuo/quickly-pick-slack/store"
)

// Slack payloads are small; anything bigger is not from Slack
const maxBodyBytes = 1 << 20

type EventsHandler struct {
	commands *CommandHandler
	actions  *ActionHandler
	views    *ViewHandler
}

func NewEventsHandler(st store.Store, client SlackClient, cfg cliparse.Config) *EventsHandler {
	return &EventsHandler{
		commands: NewCommandHandler(st, client, cfg),
		actions:  NewActionHandler(st, client, cfg),
		views:    NewViewHandler(st, client, cfg),
	}
}

// HandleEvents handles POST /slack/events: Events API callbacks (JSON),
// interaction payloads and slash commands (form encoded).
func (h *EventsHandler) HandleEvents(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Failed to read body")
		return
	}

	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		h.handleEvent(w, body)
		return
	}

	r.Body = io.NopCloser(bytes.NewReader(body))
	if err := r.ParseForm(); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid form body")
		return
	}

	if payload := r.PostForm.Get("payload"); payload != "" {
		h.handleInteraction(w, r, payload)
		return
	}

	if r.PostForm.Get("command") != "" {
		cmd, err := slack.SlashCommandParse(r)
		if err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid slash command")
			return
		}
		h.commands.Handle(r.Context(), cmd)
		w.WriteHeader(http.StatusOK)
		return
	}

	middleware.ErrorResponse(w, http.StatusBadRequest, "Unrecognized Slack request")
}

func (h *EventsHandler) handleEvent(w http.ResponseWriter, body []byte) {
	// Signature verification is out of scope, so the legacy token is not checked either
	ev, err := slackevents.ParseEvent(json.RawMessage(body), slackevents.OptionNoVerifyToken())
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid event payload")
		return
	}

	switch ev.Type {
	case slackevents.URLVerification:
		var challenge slackevents.ChallengeResponse
		if err := json.Unmarshal(body, &challenge); err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid challenge")
			return
		}
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte(challenge.Challenge))
	case slackevents.CallbackEvent:
		slog.Info("event received", "type", ev.InnerEvent.Type, "team", ev.TeamID)
		w.WriteHeader(http.StatusOK)
	default:
		slog.Debug("ignoring event", "type", ev.Type)
		w.WriteHeader(http.StatusOK)
	}
}

func (h *EventsHandler) handleInteraction(w http.ResponseWriter, r *http.Request, payload string) {
	var cb slack.InteractionCallback
	if err := json.Unmarshal([]byte(payload), &cb); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid interaction payload")
		return
	}

	switch cb.Type {
	case slack.InteractionTypeBlockActions:
		h.actions.Handle(r.Context(), &cb)
	case slack.InteractionTypeViewSubmission:
		if resp := h.views.Handle(r.Context(), &cb); resp != nil {
			middleware.JSONResponse(w, http.StatusOK, resp)
			return
		}
	default:
		slog.Debug("ignoring interaction", "type", cb.Type)
	}
	w.WriteHeader(http.StatusOK)
}
