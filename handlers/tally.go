// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"math"

	"github.com/danielhkuo/quickly-pick-slack/models"
)

// Percent returns count as a whole percentage of total. Halves round to
// even; a zero total yields 0.
func Percent(count, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.RoundToEven(float64(count*100) / float64(total)))
}

// StarSummary aggregates the ratings given to one stars question.
// Distribution[n-1] counts the n-star ratings.
type StarSummary struct {
	Count        int
	Mean         float64
	Distribution [models.MaxStars]int
}

// textAnswer is one non-empty answer to a text question
type textAnswer struct {
	Voter string
	Text  string
}

func sum(counts []int) int {
	total := 0
	for _, c := range counts {
		total += c
	}
	return total
}

// StarStats summarizes the ratings given to question q.
func StarStats(p *models.Poll, q int) StarSummary {
	var s StarSummary
	points := 0
	for _, r := range p.Feedback.Responses {
		n := r.Answers[q].Stars
		if n < 1 || n > models.MaxStars {
			continue
		}
		s.Distribution[n-1]++
		s.Count++
		points += n
	}
	if s.Count > 0 {
		s.Mean = float64(points) / float64(s.Count)
	}
	return s
}

// ChoiceCounts tallies the answers to vote question q.
func ChoiceCounts(p *models.Poll, q int) []int {
	counts := make([]int, len(p.Feedback.Questions[q].Options))
	for _, r := range p.Feedback.Responses {
		c := r.Answers[q].Choice
		if c >= 0 && c < len(counts) {
			counts[c]++
		}
	}
	return counts
}

// textAnswers lists the non-empty answers to text question q in the order
// they were submitted.
func textAnswers(p *models.Poll, q int) []textAnswer {
	var out []textAnswer
	for _, r := range p.Feedback.Responses {
		if t := r.Answers[q].Text; t != "" {
			out = append(out, textAnswer{Voter: r.Voter, Text: t})
		}
	}
	return out
}

// votersByOption groups a vote poll's voters by the options they chose,
// keeping first-vote order.
func votersByOption(p *models.Poll) [][]string {
	out := make([][]string, len(p.Vote.Options))
	for _, v := range p.Vote.Voters {
		for _, o := range p.Vote.Votes[v] {
			out[o] = append(out[o], v)
		}
	}
	return out
}
