// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/danielhkuo/quickly-pick-slack/models"
)

func TestPercent(t *testing.T) {
	tests := []struct {
		name  string
		count int
		total int
		want  int
	}{
		{"no votes", 0, 0, 0},
		{"all votes", 5, 5, 100},
		{"half", 1, 2, 50},
		{"third rounds down", 1, 3, 33},
		{"two thirds rounds up", 2, 3, 67},
		{"half rounds to even down", 1, 8, 12},
		{"half rounds to even up", 3, 8, 38},
		{"half percent rounds to even", 1, 200, 0},
		{"one and a half percent", 3, 200, 2},
		{"exact half from float division", 23, 40, 58},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Percent(tt.count, tt.total); got != tt.want {
				t.Errorf("Percent(%d, %d) = %d, want %d", tt.count, tt.total, got, tt.want)
			}
		})
	}
}

func blendedPoll(t *testing.T) *models.Poll {
	t.Helper()

	questions := []models.Question{
		{Prompt: "Pick", Format: models.FormatVote, Options: []string{"A", "B", "C"}},
		{Prompt: "Why?", Format: models.FormatText},
		{Prompt: "Stars", Format: models.FormatStars},
	}
	p, err := models.NewFeedbackPoll("b1", "C1", "U1", models.KindBlended, "Retro", questions, models.VisibilityPublic)
	if err != nil {
		t.Fatal(err)
	}
	responses := []struct {
		voter   string
		answers []models.Answer
	}{
		{"U1", []models.Answer{{Choice: 0}, {Text: "fast"}, {Stars: 5}}},
		{"U2", []models.Answer{{Choice: 2}, {}, {Stars: 4}}},
		{"U3", []models.Answer{{Choice: 0}, {Text: "fun"}, {Stars: 2}}},
	}
	for _, r := range responses {
		if err := p.Respond(r.voter, r.answers); err != nil {
			t.Fatal(err)
		}
	}
	return p
}

func TestStarStats(t *testing.T) {
	got := StarStats(blendedPoll(t), 2)
	want := StarSummary{
		Count:        3,
		Mean:         11.0 / 3.0,
		Distribution: [models.MaxStars]int{0, 1, 0, 1, 1},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("StarStats() mismatch (-want +got):\n%s", diff)
	}
}

func TestChoiceCounts(t *testing.T) {
	if diff := cmp.Diff([]int{2, 0, 1}, ChoiceCounts(blendedPoll(t), 0)); diff != "" {
		t.Errorf("ChoiceCounts() mismatch (-want +got):\n%s", diff)
	}
}

func TestTextAnswers_SkipsEmpty(t *testing.T) {
	want := []textAnswer{{Voter: "U1", Text: "fast"}, {Voter: "U3", Text: "fun"}}
	if diff := cmp.Diff(want, textAnswers(blendedPoll(t), 1)); diff != "" {
		t.Errorf("textAnswers() mismatch (-want +got):\n%s", diff)
	}
}

func TestVotersByOption(t *testing.T) {
	p, err := models.NewVotePoll("v1", "C1", "U1", "Q", []string{"A", "B"}, true, models.VisibilityPublic)
	if err != nil {
		t.Fatal(err)
	}
	for _, v := range []struct {
		voter  string
		option int
	}{{"U2", 1}, {"U1", 0}, {"U1", 1}} {
		if err := p.CastVote(v.voter, v.option); err != nil {
			t.Fatal(err)
		}
	}

	want := [][]string{{"U1"}, {"U2", "U1"}}
	if diff := cmp.Diff(want, votersByOption(p)); diff != "" {
		t.Errorf("votersByOption() mismatch (-want +got):\n%s", diff)
	}
}
