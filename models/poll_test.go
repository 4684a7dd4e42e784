// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func newVote(t *testing.T, multi bool) *Poll {
	t.Helper()
	p, err := NewVotePoll("p1", "C1", "Ucreator", "Choose", []string{"A", "B"}, multi, VisibilityPublic)
	if err != nil {
		t.Fatalf("NewVotePoll() error = %v", err)
	}
	return p
}

func TestNewVotePoll_Validation(t *testing.T) {
	tests := []struct {
		name       string
		title      string
		options    []string
		visibility Visibility
		wantErr    error
	}{
		{"valid", "Lunch?", []string{"Pizza", "Sushi"}, VisibilityPublic, nil},
		{"missing question", "  ", []string{"Pizza", "Sushi"}, VisibilityPublic, ErrMissingQuestion},
		{"one option", "Lunch?", []string{"Pizza"}, VisibilityPublic, ErrTooFewOptions},
		{"no options", "Lunch?", nil, VisibilityPublic, ErrTooFewOptions},
		{"blank option", "Lunch?", []string{"Pizza", " "}, VisibilityPublic, ErrInvalidOption},
		{"too many options", "Lunch?", make([]string, MaxChoices+1), VisibilityPublic, ErrTooManyOptions},
		{"bad visibility", "Lunch?", []string{"Pizza", "Sushi"}, Visibility("secret"), ErrUnknownVisibility},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewVotePoll("id", "C1", "U1", tt.title, tt.options, false, tt.visibility)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("NewVotePoll() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil {
				if !p.Active {
					t.Error("new poll should be active")
				}
				if diff := cmp.Diff([]int{0, 0}, p.Vote.Tallies); diff != "" {
					t.Errorf("tallies mismatch (-want +got):\n%s", diff)
				}
			}
		})
	}
}

func TestCastVote_SingleChoiceRejectsSecondVote(t *testing.T) {
	p := newVote(t, false)

	if err := p.CastVote("U1", 1); err != nil {
		t.Fatalf("first vote: %v", err)
	}
	if err := p.CastVote("U1", 1); !errors.Is(err, ErrAlreadyVoted) {
		t.Fatalf("second vote error = %v, want ErrAlreadyVoted", err)
	}
	if err := p.CastVote("U1", 0); !errors.Is(err, ErrAlreadyVoted) {
		t.Fatalf("vote for other option error = %v, want ErrAlreadyVoted", err)
	}

	if diff := cmp.Diff([]int{0, 1}, p.Vote.Tallies); diff != "" {
		t.Errorf("tallies mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{1}, p.Vote.Votes["U1"]); diff != "" {
		t.Errorf("votes mismatch (-want +got):\n%s", diff)
	}
}

func TestCastVote_MultiSelect(t *testing.T) {
	p := newVote(t, true)

	if err := p.CastVote("U1", 0); err != nil {
		t.Fatal(err)
	}
	if err := p.CastVote("U1", 1); err != nil {
		t.Fatal(err)
	}
	if err := p.CastVote("U1", 1); !errors.Is(err, ErrAlreadyVoted) {
		t.Fatalf("repeat option error = %v, want ErrAlreadyVoted", err)
	}
	if err := p.CastVote("U2", 1); err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff([]int{1, 2}, p.Vote.Tallies); diff != "" {
		t.Errorf("tallies mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{0, 1}, p.Vote.Votes["U1"]); diff != "" {
		t.Errorf("votes mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"U1", "U2"}, p.Vote.Voters); diff != "" {
		t.Errorf("voters mismatch (-want +got):\n%s", diff)
	}
	if got := p.Participants(); got != 2 {
		t.Errorf("Participants() = %d, want 2", got)
	}
}

func TestCastVote_Errors(t *testing.T) {
	p := newVote(t, false)

	if err := p.CastVote("U1", 2); !errors.Is(err, ErrInvalidOption) {
		t.Errorf("out of range error = %v, want ErrInvalidOption", err)
	}
	if err := p.CastVote("U1", -1); !errors.Is(err, ErrInvalidOption) {
		t.Errorf("negative error = %v, want ErrInvalidOption", err)
	}

	if err := p.Close("Ucreator"); err != nil {
		t.Fatal(err)
	}
	if err := p.CastVote("U1", 0); !errors.Is(err, ErrPollClosed) {
		t.Errorf("closed poll error = %v, want ErrPollClosed", err)
	}

	f, err := NewFeedbackPoll("f1", "C1", "U1", KindRanking, "Rate", nil, VisibilityPublic)
	if err != nil {
		t.Fatal(err)
	}
	if err := f.CastVote("U1", 0); !errors.Is(err, ErrWrongKind) {
		t.Errorf("feedback poll error = %v, want ErrWrongKind", err)
	}
}

func TestClose(t *testing.T) {
	p := newVote(t, false)

	if err := p.Close("Unotcreator"); !errors.Is(err, ErrNotCreator) {
		t.Fatalf("Close() by other user error = %v, want ErrNotCreator", err)
	}
	if !p.Active {
		t.Fatal("poll should still be active")
	}

	if err := p.Close("Ucreator"); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if p.Active || p.ClosedAt == nil {
		t.Error("poll should be closed with a timestamp")
	}
	if err := p.Close("Ucreator"); !errors.Is(err, ErrPollClosed) {
		t.Errorf("second Close() error = %v, want ErrPollClosed", err)
	}
}

func TestNewFeedbackPoll_Ranking(t *testing.T) {
	p, err := NewFeedbackPoll("r1", "C1", "U1", KindRanking, "Rate", []Question{{Prompt: "ignored", Format: FormatText}}, VisibilityPublic)
	if err != nil {
		t.Fatal(err)
	}

	want := []Question{{Prompt: "Rate", Format: FormatStars}}
	if diff := cmp.Diff(want, p.Feedback.Questions); diff != "" {
		t.Errorf("questions mismatch (-want +got):\n%s", diff)
	}
}

func TestNewFeedbackPoll_Validation(t *testing.T) {
	tests := []struct {
		name      string
		kind      Kind
		questions []Question
		wantErr   error
	}{
		{"feedback ok", KindFeedback, []Question{{Prompt: "How?", Format: FormatText}, {Prompt: "Stars?", Format: FormatStars}}, nil},
		{"blended ok", KindBlended, []Question{{Prompt: "Pick", Format: FormatVote, Options: []string{"A", "B"}}}, nil},
		{"no questions", KindFeedback, nil, ErrNoQuestions},
		{"blank prompt", KindFeedback, []Question{{Prompt: "", Format: FormatText}}, ErrMissingQuestion},
		{"vote in feedback", KindFeedback, []Question{{Prompt: "Pick", Format: FormatVote, Options: []string{"A", "B"}}}, ErrUnknownFormat},
		{"blended vote too few options", KindBlended, []Question{{Prompt: "Pick", Format: FormatVote, Options: []string{"A"}}}, ErrTooFewOptions},
		{"unknown format", KindBlended, []Question{{Prompt: "Pick", Format: "slider"}}, ErrUnknownFormat},
		{"unknown kind", Kind("quiz"), []Question{{Prompt: "Q", Format: FormatText}}, ErrUnknownKind},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFeedbackPoll("id", "C1", "U1", tt.kind, "Title", tt.questions, VisibilityAnonymous)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("NewFeedbackPoll() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRespond(t *testing.T) {
	questions := []Question{
		{Prompt: "Pick", Format: FormatVote, Options: []string{"A", "B"}},
		{Prompt: "Why?", Format: FormatText},
		{Prompt: "Stars", Format: FormatStars},
	}
	p, err := NewFeedbackPoll("b1", "C1", "U1", KindBlended, "Retro", questions, VisibilityPublic)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		voter   string
		answers []Answer
		wantErr error
	}{
		{"too few answers", "U2", []Answer{{Choice: 0}}, ErrInvalidAnswer},
		{"stars out of range", "U2", []Answer{{Choice: 0}, {Text: "x"}, {Stars: 6}}, ErrInvalidAnswer},
		{"choice out of range", "U2", []Answer{{Choice: 2}, {Text: "x"}, {Stars: 3}}, ErrInvalidAnswer},
		{"valid", "U2", []Answer{{Choice: 1}, {Text: "because"}, {Stars: 4}}, nil},
		{"duplicate", "U2", []Answer{{Choice: 0}, {Text: "again"}, {Stars: 1}}, ErrAlreadyResponded},
		{"empty text allowed", "U3", []Answer{{Choice: 0}, {}, {Stars: 5}}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := p.Respond(tt.voter, tt.answers)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Respond() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	if got := len(p.Feedback.Responses); got != 2 {
		t.Errorf("responses = %d, want 2", got)
	}
	if !p.HasResponded("U2") || p.HasResponded("U4") {
		t.Error("HasResponded() mismatch")
	}
}

func TestClone_IsDeep(t *testing.T) {
	p := newVote(t, true)
	if err := p.CastVote("U1", 0); err != nil {
		t.Fatal(err)
	}

	c := p.Clone()
	if err := c.CastVote("U1", 1); err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff([]int{1, 0}, p.Vote.Tallies); diff != "" {
		t.Errorf("original tallies changed (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{0}, p.Vote.Votes["U1"]); diff != "" {
		t.Errorf("original votes changed (-want +got):\n%s", diff)
	}
}
