// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
)

var (
	ErrPollClosed        = errors.New("poll is closed")
	ErrAlreadyVoted      = errors.New("already voted")
	ErrAlreadyResponded  = errors.New("already responded")
	ErrNotCreator        = errors.New("only the poll creator can close the poll")
	ErrInvalidOption     = errors.New("invalid option")
	ErrInvalidAnswer     = errors.New("invalid answer")
	ErrWrongKind         = errors.New("operation not supported for this poll kind")
	ErrMissingQuestion   = errors.New("question is required")
	ErrTooFewOptions     = errors.New("at least 2 options are required")
	ErrTooManyOptions    = errors.New("too many options")
	ErrNoQuestions       = errors.New("at least one question is required")
	ErrUnknownKind       = errors.New("unknown poll kind")
	ErrUnknownFormat     = errors.New("unknown question format")
	ErrUnknownVisibility = errors.New("unknown visibility")
)

// NewVotePoll creates an active vote poll with zeroed tallies.
func NewVotePoll(id, channelID, creatorID, title string, options []string, multi bool, visibility Visibility) (*Poll, error) {
	p := &Poll{
		ID:         id,
		Kind:       KindVote,
		Title:      strings.TrimSpace(title),
		Visibility: visibility,
		CreatorID:  creatorID,
		ChannelID:  channelID,
		Active:     true,
		CreatedAt:  time.Now(),
		Vote: &VoteBody{
			Options: options,
			Multi:   multi,
			Votes:   map[string][]int{},
			Tallies: make([]int, len(options)),
			Voters:  []string{},
		},
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// NewFeedbackPoll creates an active feedback, ranking or blended poll.
// A ranking poll always has exactly one stars question prompting the title.
func NewFeedbackPoll(id, channelID, creatorID string, kind Kind, title string, questions []Question, visibility Visibility) (*Poll, error) {
	if kind == KindRanking {
		questions = []Question{{Prompt: strings.TrimSpace(title), Format: FormatStars}}
	}
	p := &Poll{
		ID:         id,
		Kind:       kind,
		Title:      strings.TrimSpace(title),
		Visibility: visibility,
		CreatorID:  creatorID,
		ChannelID:  channelID,
		Active:     true,
		CreatedAt:  time.Now(),
		Feedback: &FeedbackBody{
			Questions: questions,
			Responses: []Response{},
		},
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks that the poll is well formed for its kind.
func (p *Poll) Validate() error {
	if p.Title == "" {
		return ErrMissingQuestion
	}
	switch p.Visibility {
	case VisibilityPublic, VisibilityAnonymous:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownVisibility, p.Visibility)
	}

	switch p.Kind {
	case KindVote:
		if p.Vote == nil || p.Feedback != nil {
			return fmt.Errorf("%w: vote poll needs a vote body", ErrWrongKind)
		}
		return validateOptions(p.Vote.Options)
	case KindFeedback, KindRanking, KindBlended:
		if p.Feedback == nil || p.Vote != nil {
			return fmt.Errorf("%w: %s poll needs a feedback body", ErrWrongKind, p.Kind)
		}
		if len(p.Feedback.Questions) == 0 {
			return ErrNoQuestions
		}
		if len(p.Feedback.Questions) > MaxQuestions {
			return fmt.Errorf("%w: %d questions", ErrTooManyOptions, len(p.Feedback.Questions))
		}
		for i, q := range p.Feedback.Questions {
			if strings.TrimSpace(q.Prompt) == "" {
				return fmt.Errorf("question %d: %w", i+1, ErrMissingQuestion)
			}
			switch q.Format {
			case FormatText, FormatStars:
			case FormatVote:
				if p.Kind == KindFeedback || p.Kind == KindRanking {
					return fmt.Errorf("question %d: %w: vote questions need a blended poll", i+1, ErrUnknownFormat)
				}
				if err := validateOptions(q.Options); err != nil {
					return fmt.Errorf("question %d: %w", i+1, err)
				}
			default:
				return fmt.Errorf("question %d: %w: %q", i+1, ErrUnknownFormat, q.Format)
			}
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKind, p.Kind)
	}
}

func validateOptions(options []string) error {
	if len(options) < MinOptions {
		return ErrTooFewOptions
	}
	if len(options) > MaxChoices {
		return fmt.Errorf("%w: %d options", ErrTooManyOptions, len(options))
	}
	for _, o := range options {
		if strings.TrimSpace(o) == "" {
			return ErrInvalidOption
		}
	}
	return nil
}

// CastVote records a vote for option by voter. Single-choice polls accept
// one vote per voter; multi-select polls accept each distinct option once.
func (p *Poll) CastVote(voter string, option int) error {
	if p.Kind != KindVote || p.Vote == nil {
		return ErrWrongKind
	}
	if !p.Active {
		return ErrPollClosed
	}
	if option < 0 || option >= len(p.Vote.Options) {
		return fmt.Errorf("%w: %d", ErrInvalidOption, option)
	}

	chosen, voted := p.Vote.Votes[voter]
	if voted && (!p.Vote.Multi || slices.Contains(chosen, option)) {
		return ErrAlreadyVoted
	}
	if !voted {
		p.Vote.Voters = append(p.Vote.Voters, voter)
	}

	p.Vote.Votes[voter] = append(chosen, option)
	p.Vote.Tallies[option]++
	return nil
}

// Respond records a feedback response. Every question must be answered
// and each voter may respond once.
func (p *Poll) Respond(voter string, answers []Answer) error {
	if p.Feedback == nil {
		return ErrWrongKind
	}
	if !p.Active {
		return ErrPollClosed
	}
	if p.HasResponded(voter) {
		return ErrAlreadyResponded
	}
	if len(answers) != len(p.Feedback.Questions) {
		return fmt.Errorf("%w: got %d answers for %d questions", ErrInvalidAnswer, len(answers), len(p.Feedback.Questions))
	}
	for i, q := range p.Feedback.Questions {
		a := answers[i]
		switch q.Format {
		case FormatStars:
			if a.Stars < 1 || a.Stars > MaxStars {
				return fmt.Errorf("question %d: %w: %d stars", i+1, ErrInvalidAnswer, a.Stars)
			}
		case FormatVote:
			if a.Choice < 0 || a.Choice >= len(q.Options) {
				return fmt.Errorf("question %d: %w: choice %d", i+1, ErrInvalidAnswer, a.Choice)
			}
		}
	}

	p.Feedback.Responses = append(p.Feedback.Responses, Response{
		Voter:       voter,
		Answers:     answers,
		SubmittedAt: time.Now(),
	})
	return nil
}

// HasResponded reports whether voter has already answered a feedback poll.
func (p *Poll) HasResponded(voter string) bool {
	if p.Feedback == nil {
		return false
	}
	for _, r := range p.Feedback.Responses {
		if r.Voter == voter {
			return true
		}
	}
	return false
}

// Close deactivates the poll. Only the creator may close it.
func (p *Poll) Close(userID string) error {
	if p.CreatorID != userID {
		return ErrNotCreator
	}
	if !p.Active {
		return ErrPollClosed
	}
	p.deactivate()
	return nil
}

// Supersede deactivates the poll because a newer one replaced it in the
// same channel.
func (p *Poll) Supersede() {
	if p.Active {
		p.deactivate()
	}
}

func (p *Poll) deactivate() {
	now := time.Now()
	p.Active = false
	p.ClosedAt = &now
}

// Participants returns how many distinct voters took part.
func (p *Poll) Participants() int {
	switch {
	case p.Vote != nil:
		return len(p.Vote.Votes)
	case p.Feedback != nil:
		return len(p.Feedback.Responses)
	}
	return 0
}

// Clone returns a deep copy so callers can read a poll without holding
// the store's lock.
func (p *Poll) Clone() *Poll {
	c := *p
	if p.ClosedAt != nil {
		t := *p.ClosedAt
		c.ClosedAt = &t
	}
	if p.Vote != nil {
		v := *p.Vote
		v.Options = slices.Clone(p.Vote.Options)
		v.Tallies = slices.Clone(p.Vote.Tallies)
		v.Voters = slices.Clone(p.Vote.Voters)
		v.Votes = make(map[string][]int, len(p.Vote.Votes))
		for k, chosen := range p.Vote.Votes {
			v.Votes[k] = slices.Clone(chosen)
		}
		c.Vote = &v
	}
	if p.Feedback != nil {
		f := FeedbackBody{
			Questions: make([]Question, len(p.Feedback.Questions)),
			Responses: make([]Response, len(p.Feedback.Responses)),
		}
		for i, q := range p.Feedback.Questions {
			q.Options = slices.Clone(q.Options)
			f.Questions[i] = q
		}
		for i, r := range p.Feedback.Responses {
			r.Answers = slices.Clone(r.Answers)
			f.Responses[i] = r
		}
		c.Feedback = &f
	}
	return &c
}
