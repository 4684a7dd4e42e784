// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package blocks

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/slack-go/slack"

	"github.com/danielhkuo/quickly-pick-slack/models"
)

func TestParseActions(t *testing.T) {
	tests := []struct {
		actionID string
		vote     int
		voteOK   bool
		rate     int
		rateOK   bool
	}{
		{"vote_0", 0, true, 0, false},
		{"vote_9", 9, true, 0, false},
		{"rate_5", 0, false, 5, true},
		{"vote_1x", 0, false, 0, false},
		{"vote_", 0, false, 0, false},
		{"respond", 0, false, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.actionID, func(t *testing.T) {
			n, ok := ParseVoteAction(tt.actionID)
			if n != tt.vote || ok != tt.voteOK {
				t.Errorf("ParseVoteAction() = %d, %v, want %d, %v", n, ok, tt.vote, tt.voteOK)
			}
			n, ok = ParseRateAction(tt.actionID)
			if n != tt.rate || ok != tt.rateOK {
				t.Errorf("ParseRateAction() = %d, %v, want %d, %v", n, ok, tt.rate, tt.rateOK)
			}
		})
	}
}

func TestDraftRoundTrip(t *testing.T) {
	d := models.Draft{
		Channel:    "C1",
		User:       "U1",
		Kind:       models.KindBlended,
		Title:      "Retro",
		Visibility: models.VisibilityAnonymous,
		Questions:  []models.Question{{Prompt: "Pick", Format: models.FormatVote, Options: []string{"A", "B"}}},
	}

	meta, err := EncodeDraft(d)
	if err != nil {
		t.Fatalf("EncodeDraft() error = %v", err)
	}
	if !strings.Contains(meta, `"type":"blended"`) {
		t.Errorf("metadata should carry the kind as type, got %s", meta)
	}

	got, err := DecodeDraft(meta)
	if err != nil {
		t.Fatalf("DecodeDraft() error = %v", err)
	}
	if diff := cmp.Diff(d, got); diff != "" {
		t.Errorf("draft mismatch (-want +got):\n%s", diff)
	}

	if _, err := DecodeDraft(""); err == nil {
		t.Error("DecodeDraft(\"\") should fail")
	}
	if _, err := DecodeDraft("U123"); err == nil {
		t.Error("DecodeDraft() of a bare user ID should fail")
	}
}

func TestEncodeDraft_TooLarge(t *testing.T) {
	d := models.Draft{Channel: "C1", Title: strings.Repeat("x", maxMetadataLen)}
	if _, err := EncodeDraft(d); !errors.Is(err, ErrMetadataTooLarge) {
		t.Errorf("EncodeDraft() error = %v, want ErrMetadataTooLarge", err)
	}
}

func TestStepOne(t *testing.T) {
	tests := []struct {
		name      string
		draft     models.Draft
		wantKind  string
		wantVis   string
		wantTitle string
	}{
		{"poll defaults", models.Draft{Channel: "C1", User: "U1"}, "vote", "public", "Create a Poll"},
		{"survey", models.Draft{Channel: "C1", User: "U1", Kind: models.KindFeedback}, "feedback", "public", "Create a Survey"},
		{"anonymous", models.Draft{Channel: "C1", User: "U1", Kind: models.KindVote, Visibility: models.VisibilityAnonymous}, "vote", "anonymous", "Create a Poll"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view, err := StepOne(tt.draft)
			if err != nil {
				t.Fatalf("StepOne() error = %v", err)
			}
			if view.CallbackID != CallbackStepOne {
				t.Errorf("CallbackID = %q, want %q", view.CallbackID, CallbackStepOne)
			}
			if view.Title.Text != tt.wantTitle {
				t.Errorf("Title = %q, want %q", view.Title.Text, tt.wantTitle)
			}

			set := view.Blocks.BlockSet
			if len(set) != 3 {
				t.Fatalf("Expected 3 blocks, got %d", len(set))
			}
			kind := set[0].(*slack.InputBlock).Element.(*slack.SelectBlockElement)
			if kind.InitialOption.Value != tt.wantKind {
				t.Errorf("initial kind = %q, want %q", kind.InitialOption.Value, tt.wantKind)
			}
			vis := set[2].(*slack.InputBlock).Element.(*slack.SelectBlockElement)
			if vis.InitialOption.Value != tt.wantVis {
				t.Errorf("initial visibility = %q, want %q", vis.InitialOption.Value, tt.wantVis)
			}

			d, err := DecodeDraft(view.PrivateMetadata)
			if err != nil {
				t.Fatal(err)
			}
			if d.Channel != "C1" || d.User != "U1" {
				t.Errorf("metadata lost channel or user: %+v", d)
			}
		})
	}
}

func TestVoteOptions(t *testing.T) {
	view, err := VoteOptions(models.Draft{Channel: "C1", User: "U1", Kind: models.KindVote, Title: "Lunch?"})
	if err != nil {
		t.Fatal(err)
	}
	if view.CallbackID != CallbackSubmit {
		t.Errorf("CallbackID = %q, want %q", view.CallbackID, CallbackSubmit)
	}

	var optional []bool
	var multi bool
	for _, b := range view.Blocks.BlockSet {
		in, ok := b.(*slack.InputBlock)
		if !ok {
			continue
		}
		if in.BlockID == MultiBlock {
			multi = true
			continue
		}
		optional = append(optional, in.Optional)
	}

	if diff := cmp.Diff([]bool{false, false, true, true, true}, optional); diff != "" {
		t.Errorf("option inputs optional mismatch (-want +got):\n%s", diff)
	}
	if !multi {
		t.Error("Expected a multi-select checkbox block")
	}
}

func TestReview_ChoicesOnlyForVoteQuestions(t *testing.T) {
	d := models.Draft{
		Channel: "C1",
		User:    "U1",
		Kind:    models.KindBlended,
		Title:   "Retro",
		Questions: []models.Question{
			{Prompt: "How was it?", Format: models.FormatText},
			{Prompt: "Where next?", Format: models.FormatVote},
			{Prompt: "Rate it", Format: models.FormatStars},
		},
	}
	view, err := Review(d)
	if err != nil {
		t.Fatal(err)
	}
	if view.CallbackID != CallbackSubmit {
		t.Errorf("CallbackID = %q, want %q", view.CallbackID, CallbackSubmit)
	}

	var inputs []string
	for _, b := range view.Blocks.BlockSet {
		if in, ok := b.(*slack.InputBlock); ok {
			inputs = append(inputs, in.BlockID)
		}
	}
	if diff := cmp.Diff([]string{ChoicesBlock(1)}, inputs); diff != "" {
		t.Errorf("input blocks mismatch (-want +got):\n%s", diff)
	}
}

func TestResponseModal(t *testing.T) {
	questions := []models.Question{
		{Prompt: "Why?", Format: models.FormatText},
		{Prompt: "Stars", Format: models.FormatStars},
		{Prompt: "Pick", Format: models.FormatVote, Options: []string{"A", "B"}},
	}
	p, err := models.NewFeedbackPoll("p1", "C1", "U1", models.KindBlended, "Retro", questions, models.VisibilityAnonymous)
	if err != nil {
		t.Fatal(err)
	}

	view := ResponseModal(p)
	if view.CallbackID != CallbackResponse {
		t.Errorf("CallbackID = %q, want %q", view.CallbackID, CallbackResponse)
	}
	if view.PrivateMetadata != "p1" {
		t.Errorf("PrivateMetadata = %q, want p1", view.PrivateMetadata)
	}

	elements := map[string]string{}
	for _, b := range view.Blocks.BlockSet {
		if in, ok := b.(*slack.InputBlock); ok {
			elements[in.BlockID] = string(in.Element.ElementType())
		}
	}
	want := map[string]string{
		AnswerBlock(0): string(slack.METPlainTextInput),
		AnswerBlock(1): string(slack.OptTypeStatic),
		AnswerBlock(2): string(slack.METRadioButtons),
	}
	if diff := cmp.Diff(want, elements); diff != "" {
		t.Errorf("answer elements mismatch (-want +got):\n%s", diff)
	}
}

func TestPollMessage(t *testing.T) {
	vote, err := models.NewVotePoll("p1", "C1", "U1", "Lunch?", []string{"Pizza", "Sushi"}, true, models.VisibilityPublic)
	if err != nil {
		t.Fatal(err)
	}
	ranking, err := models.NewFeedbackPoll("p2", "C1", "U1", models.KindRanking, "Rate lunch", nil, models.VisibilityPublic)
	if err != nil {
		t.Fatal(err)
	}
	feedback, err := models.NewFeedbackPoll("p3", "C1", "U1", models.KindFeedback, "Retro",
		[]models.Question{{Prompt: "Why?", Format: models.FormatText}}, models.VisibilityAnonymous)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		poll    *models.Poll
		actions []string
	}{
		{"vote", vote, []string{"vote_0", "vote_1"}},
		{"ranking", ranking, []string{"rate_1", "rate_2", "rate_3", "rate_4", "rate_5"}},
		{"feedback", feedback, []string{"respond"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var actions []string
			for _, b := range PollMessage(tt.poll) {
				ab, ok := b.(*slack.ActionBlock)
				if !ok {
					continue
				}
				for _, el := range ab.Elements.ElementSet {
					btn := el.(*slack.ButtonBlockElement)
					if btn.Value != tt.poll.ID {
						t.Errorf("button %s value = %q, want poll ID %q", btn.ActionID, btn.Value, tt.poll.ID)
					}
					actions = append(actions, btn.ActionID)
				}
			}
			if diff := cmp.Diff(tt.actions, actions); diff != "" {
				t.Errorf("actions mismatch (-want +got):\n%s", diff)
			}

			// The message must serialize for chat.postMessage
			if _, err := json.Marshal(PollMessage(tt.poll)); err != nil {
				t.Errorf("json.Marshal() error = %v", err)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 75); got != "short" {
		t.Errorf("truncate() = %q", got)
	}
	got := truncate(strings.Repeat("é", 80), 75)
	if n := len([]rune(got)); n != 75 {
		t.Errorf("truncate() length = %d runes, want 75", n)
	}
	if !strings.HasSuffix(got, "…") {
		t.Errorf("truncate() = %q, want ellipsis suffix", got)
	}
}
