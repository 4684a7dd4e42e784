// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/slack-go/slack"

	"github.com/danielhkuo/quickly-pick-slack/blocks"
	"github.com/danielhkuo/quickly-pick-slack/cliparse"
	"github.com/danielhkuo/quickly-pick-slack/metrics"
	"github.com/danielhkuo/quickly-pick-slack/models"
	"github.com/danielhkuo/quickly-pick-slack/store"
)

type ViewHandler struct {
	bot
}

func NewViewHandler(st store.Store, client SlackClient, cfg cliparse.Config) *ViewHandler {
	return &ViewHandler{bot{store: st, client: client, cfg: cfg}}
}

// Handle processes a view_submission. A nil response closes the modal;
// otherwise the response updates the view or shows field errors.
func (h *ViewHandler) Handle(ctx context.Context, cb *slack.InteractionCallback) *slack.ViewSubmissionResponse {
	state := viewState{}
	if cb.View.State != nil {
		state = cb.View.State.Values
	}

	switch cb.View.CallbackID {
	case blocks.CallbackStepOne:
		return h.StepOne(cb, state)
	case blocks.CallbackStepTwo:
		return h.StepTwo(cb, state)
	case blocks.CallbackSubmit:
		return h.Submit(ctx, cb, state)
	case blocks.CallbackResponse:
		return h.Response(ctx, cb, state)
	default:
		slog.Warn("unknown view submission", "callback_id", cb.View.CallbackID)
		return nil
	}
}

// StepOne reads the poll type, question and visibility, then moves the
// wizard to the step matching the type.
func (h *ViewHandler) StepOne(cb *slack.InteractionCallback, state viewState) *slack.ViewSubmissionResponse {
	d, err := blocks.DecodeDraft(cb.View.PrivateMetadata)
	if err != nil {
		slog.Error("bad wizard state", "step", blocks.CallbackStepOne, "error", err)
		return fieldError(blocks.QuestionBlock, "Something went wrong. Please start over.")
	}

	kind := models.Kind(state.selected(blocks.TypeBlock, blocks.TypeAction))
	if kind == "" {
		kind = d.Kind
	}
	title := state.text(blocks.QuestionBlock, blocks.QuestionAction)
	if title == "" {
		return fieldError(blocks.QuestionBlock, "Please enter a question.")
	}
	visibility := models.Visibility(state.selected(blocks.VisibilityBlock, blocks.VisibilityAction))
	if visibility == "" {
		visibility = models.VisibilityPublic
	}

	d.Kind = kind
	d.Title = title
	d.Visibility = visibility
	d.Questions = nil

	var view slack.ModalViewRequest
	switch kind {
	case models.KindVote:
		view, err = blocks.VoteOptions(d)
	case models.KindRanking:
		d.Questions = []models.Question{{Prompt: title, Format: models.FormatStars}}
		view, err = blocks.Review(d)
	case models.KindFeedback, models.KindBlended:
		view, err = blocks.StepTwo(d)
	default:
		return fieldError(blocks.TypeBlock, "Please choose a poll type.")
	}
	if err != nil {
		slog.Error("failed to build wizard step", "step", blocks.CallbackStepOne, "error", err)
		return fieldError(blocks.QuestionBlock, "That question is too long.")
	}

	return slack.NewUpdateViewSubmissionResponse(&view)
}

// StepTwo collects the question set of a feedback or blended poll. A
// feedback poll that gains a multiple choice question becomes blended.
func (h *ViewHandler) StepTwo(cb *slack.InteractionCallback, state viewState) *slack.ViewSubmissionResponse {
	d, err := blocks.DecodeDraft(cb.View.PrivateMetadata)
	if err != nil {
		slog.Error("bad wizard state", "step", blocks.CallbackStepTwo, "error", err)
		return fieldError(blocks.PromptBlock(0), "Something went wrong. Please start over.")
	}

	var questions []models.Question
	for i := 0; i < models.MaxQuestions; i++ {
		prompt := state.text(blocks.PromptBlock(i), blocks.PromptAction(i))
		if prompt == "" {
			continue
		}
		format := models.Format(state.selected(blocks.FormatBlock(i), blocks.FormatAction(i)))
		switch format {
		case "":
			format = models.FormatText
		case models.FormatText, models.FormatStars:
		case models.FormatVote:
			if d.Kind == models.KindFeedback {
				d.Kind = models.KindBlended
			}
		default:
			return fieldError(blocks.FormatBlock(i), "Please choose an answer type.")
		}
		questions = append(questions, models.Question{Prompt: prompt, Format: format})
	}
	if len(questions) == 0 {
		return fieldError(blocks.PromptBlock(0), "Add at least one question.")
	}

	d.Questions = questions
	view, err := blocks.Review(d)
	if err != nil {
		slog.Error("failed to build wizard step", "step", blocks.CallbackStepTwo, "error", err)
		return fieldError(blocks.PromptBlock(0), "Those questions are too long.")
	}
	return slack.NewUpdateViewSubmissionResponse(&view)
}

// Submit creates the poll described by the wizard, posts it to the channel
// and confirms to the creator by DM.
func (h *ViewHandler) Submit(ctx context.Context, cb *slack.InteractionCallback, state viewState) *slack.ViewSubmissionResponse {
	d, err := blocks.DecodeDraft(cb.View.PrivateMetadata)
	if err != nil {
		slog.Error("bad wizard state", "step", blocks.CallbackSubmit, "error", err)
		return nil
	}
	creator := cb.User.ID
	if creator == "" {
		creator = d.User
	}
	visibility := d.Visibility
	if visibility == "" {
		visibility = models.VisibilityPublic
	}

	var p *models.Poll
	switch d.Kind {
	case "", models.KindVote:
		var options []string
		for i := 0; i < models.MaxOptions; i++ {
			if o := state.text(blocks.OptionBlock(i), blocks.OptionAction(i)); o != "" {
				options = append(options, o)
			}
		}
		if len(options) < models.MinOptions {
			return fieldError(blocks.OptionBlock(1), "Enter at least two options.")
		}
		multi := len(state.checked(blocks.MultiBlock, blocks.MultiAction)) > 0
		p, err = models.NewVotePoll(uuid.NewString(), d.Channel, creator, d.Title, options, multi, visibility)
		if err != nil {
			return fieldError(blocks.OptionBlock(0), errorText(err))
		}

	default:
		questions := make([]models.Question, len(d.Questions))
		errs := map[string]string{}
		for i, q := range d.Questions {
			if q.Format == models.FormatVote {
				q.Options = splitLines(state.text(blocks.ChoicesBlock(i), blocks.ChoicesAction(i)))
				switch {
				case len(q.Options) < models.MinOptions:
					errs[blocks.ChoicesBlock(i)] = "Enter at least two choices, one per line."
				case len(q.Options) > models.MaxChoices:
					errs[blocks.ChoicesBlock(i)] = fmt.Sprintf("Enter at most %d choices.", models.MaxChoices)
				}
			}
			questions[i] = q
		}
		if len(errs) > 0 {
			return slack.NewErrorsViewSubmissionResponse(errs)
		}
		p, err = models.NewFeedbackPoll(uuid.NewString(), d.Channel, creator, d.Kind, d.Title, questions, visibility)
		if err != nil {
			// The review view may have no inputs to attach errors to
			slog.Info("poll rejected", "user", creator, "error", err)
			h.dm(ctx, creator, "❗ Could not create the poll: "+errorText(err))
			return nil
		}
	}

	if err := h.publish(ctx, p); err != nil {
		h.dm(ctx, creator, fmt.Sprintf("❗ I couldn’t post your poll in <#%s>. Invite me to the channel and try again.", p.ChannelID))
		return nil
	}
	h.dm(ctx, creator, msgPosted)
	return nil
}

// Response records a feedback response from the response modal.
func (h *ViewHandler) Response(ctx context.Context, cb *slack.InteractionCallback, state viewState) *slack.ViewSubmissionResponse {
	p, err := h.store.Get(ctx, cb.View.PrivateMetadata)
	if err != nil {
		slog.Error("failed to load poll for response", "poll_id", cb.View.PrivateMetadata, "error", err)
		return nil
	}
	if p.Feedback == nil || len(p.Feedback.Questions) == 0 {
		slog.Warn("response for poll without questions", "poll_id", p.ID, "kind", p.Kind)
		return nil
	}

	answers := make([]models.Answer, len(p.Feedback.Questions))
	errs := map[string]string{}
	for i, q := range p.Feedback.Questions {
		block, action := blocks.AnswerBlock(i), blocks.AnswerAction(i)
		switch q.Format {
		case models.FormatText:
			answers[i].Text = state.text(block, action)
		case models.FormatStars:
			n, err := strconv.Atoi(state.selected(block, action))
			if err != nil || n < 1 || n > models.MaxStars {
				errs[block] = "Pick a rating."
				continue
			}
			answers[i].Stars = n
		case models.FormatVote:
			n, err := strconv.Atoi(state.selected(block, action))
			if err != nil || n < 0 || n >= len(q.Options) {
				errs[block] = "Pick a choice."
				continue
			}
			answers[i].Choice = n
		}
	}
	if len(errs) > 0 {
		rejected("invalid")
		return slack.NewErrorsViewSubmissionResponse(errs)
	}

	key := h.voterKey(p, cb.User.ID)
	p, err = h.store.Update(ctx, p.ID, func(p *models.Poll) error {
		return p.Respond(key, answers)
	})
	first := blocks.AnswerBlock(0)
	switch {
	case errors.Is(err, models.ErrAlreadyResponded):
		rejected("duplicate")
		return fieldError(first, "You’ve already responded to this poll.")
	case errors.Is(err, models.ErrPollClosed):
		rejected("closed")
		return fieldError(first, "This poll has been closed.")
	case errors.Is(err, models.ErrInvalidAnswer):
		rejected("invalid")
		return fieldError(first, errorText(err))
	case err != nil:
		slog.Error("failed to record response", "poll_id", cb.View.PrivateMetadata, "error", err)
		return fieldError(first, "Something went wrong. Please try again.")
	}

	metrics.Ballots.WithLabelValues(string(p.Kind)).Inc()
	slog.Info("response recorded", "poll_id", p.ID, "responses", len(p.Feedback.Responses))
	h.ephemeral(ctx, p.ChannelID, cb.User.ID, msgThanks)
	return nil
}

// viewState is the submitted input values keyed by block then action ID
type viewState map[string]map[string]slack.BlockAction

func (s viewState) text(block, action string) string {
	return strings.TrimSpace(s[block][action].Value)
}

func (s viewState) selected(block, action string) string {
	return s[block][action].SelectedOption.Value
}

func (s viewState) checked(block, action string) []string {
	var values []string
	for _, o := range s[block][action].SelectedOptions {
		values = append(values, o.Value)
	}
	return values
}

func fieldError(block, message string) *slack.ViewSubmissionResponse {
	return slack.NewErrorsViewSubmissionResponse(map[string]string{block: message})
}

// errorText capitalizes a domain error for display in a modal.
func errorText(err error) string {
	msg := err.Error()
	if msg == "" {
		return msg
	}
	return strings.ToUpper(msg[:1]) + msg[1:] + "."
}

func splitLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}
