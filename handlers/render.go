// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"

	"github.com/danielhkuo/quickly-pick-slack/auth"
	"github.com/danielhkuo/quickly-pick-slack/models"
)

var kindNames = map[models.Kind]string{
	models.KindVote:     "Vote",
	models.KindFeedback: "Feedback",
	models.KindRanking:  "Ranking",
	models.KindBlended:  "Blended",
}

// ResultsText is the /pollresults reply.
func ResultsText(p *models.Poll) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*📊 Results for:* %s\n", p.Title)
	b.WriteString(resultsBody(p))
	if p.Active || p.ClosedAt == nil {
		fmt.Fprintf(&b, "_%s so far_", english.Plural(p.Participants(), "participant", ""))
	} else {
		fmt.Fprintf(&b, "_Closed %s_", humanize.Time(*p.ClosedAt))
	}
	return b.String()
}

// VoteRecordedText confirms a vote and shows the current tallies.
func VoteRecordedText(p *models.Poll, option int) string {
	return fmt.Sprintf("🗳 Vote recorded for *%s*\n\n*📊 Current Results:*\n%s", p.Vote.Options[option], resultsBody(p))
}

// RatingRecordedText confirms a star rating on a ranking poll.
func RatingRecordedText(p *models.Poll, stars int) string {
	return fmt.Sprintf("⭐ Rating recorded: *%d/%d*\n\n*📊 Current Results:*\n%s", stars, models.MaxStars, resultsBody(p))
}

// ClosedText announces a closed poll with its final results. canvasURL may
// be empty when the canvas could not be created.
func ClosedText(p *models.Poll, canvasURL string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "✅ Poll *'%s'* has been closed.\n\n*Final Results:*\n", p.Title)
	b.WriteString(resultsBody(p))
	fmt.Fprintf(&b, "_%s_", english.Plural(p.Participants(), "participant", ""))
	if canvasURL != "" {
		fmt.Fprintf(&b, "\n📄 Full results: <%s|Open canvas>", canvasURL)
	}
	return b.String()
}

// CanvasURL links to a canvas in the workspace. The team domain is
// preferred; the team ID is the fallback host.
func CanvasURL(teamDomain, teamID, canvasID string) string {
	host := teamDomain
	if host == "" {
		host = teamID
	}
	return fmt.Sprintf("https://%s.slack.com/canvas/%s", host, canvasID)
}

func resultsBody(p *models.Poll) string {
	var b strings.Builder
	if p.Vote != nil {
		total := sum(p.Vote.Tallies)
		var voters [][]string
		if p.Visibility == models.VisibilityPublic {
			voters = votersByOption(p)
		}
		for i, o := range p.Vote.Options {
			n := p.Vote.Tallies[i]
			fmt.Fprintf(&b, "- %s: %s (%d%%)", o, english.Plural(n, "vote", ""), Percent(n, total))
			if voters != nil {
				if m := mentions(voters[i]); m != "" {
					b.WriteString(" · " + m)
				}
			}
			b.WriteString("\n")
		}
		return b.String()
	}

	ranking := p.Kind == models.KindRanking
	for i, q := range p.Feedback.Questions {
		if !ranking {
			fmt.Fprintf(&b, "*%d. %s*\n", i+1, q.Prompt)
		}
		switch q.Format {
		case models.FormatStars:
			s := StarStats(p, i)
			if s.Count == 0 {
				b.WriteString("_No ratings yet_\n")
				continue
			}
			fmt.Fprintf(&b, "⭐ %.1f average from %s\n", s.Mean, english.Plural(s.Count, "rating", ""))
			for n := models.MaxStars; n >= 1; n-- {
				c := s.Distribution[n-1]
				fmt.Fprintf(&b, "- %d★: %d (%d%%)\n", n, c, Percent(c, s.Count))
			}
		case models.FormatVote:
			counts := ChoiceCounts(p, i)
			total := sum(counts)
			for j, o := range q.Options {
				fmt.Fprintf(&b, "- %s: %s (%d%%)\n", o, english.Plural(counts[j], "vote", ""), Percent(counts[j], total))
			}
		case models.FormatText:
			answers := textAnswers(p, i)
			if len(answers) == 0 {
				b.WriteString("_No answers yet_\n")
				continue
			}
			for _, a := range answers {
				b.WriteString("> " + strings.ReplaceAll(a.Text, "\n", " "))
				if p.Visibility == models.VisibilityPublic && !auth.IsAnonymous(a.Voter) {
					fmt.Fprintf(&b, " (<@%s>)", a.Voter)
				}
				b.WriteString("\n")
			}
		}
	}
	return b.String()
}

// mentions renders user IDs as Slack mentions. Anonymous voter keys are
// left out.
func mentions(users []string) string {
	out := make([]string, 0, len(users))
	for _, u := range users {
		if auth.IsAnonymous(u) {
			continue
		}
		out = append(out, "<@"+u+">")
	}
	return strings.Join(out, ", ")
}

// CanvasMarkdown renders the full results of a poll as canvas markdown.
func CanvasMarkdown(p *models.Poll) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", p.Title)
	fmt.Fprintf(&b, "**Type:** %s · **Visibility:** %s · **Participants:** %s\n\n",
		kindNames[p.Kind], p.Visibility, humanize.Comma(int64(p.Participants())))
	fmt.Fprintf(&b, "**Created:** %s\n\n", p.CreatedAt.UTC().Format(time.RFC1123))
	if p.ClosedAt != nil {
		fmt.Fprintf(&b, "**Closed:** %s\n\n", p.ClosedAt.UTC().Format(time.RFC1123))
	}

	if p.Vote != nil {
		b.WriteString("## Results\n\n")
		total := sum(p.Vote.Tallies)
		for i, o := range p.Vote.Options {
			n := p.Vote.Tallies[i]
			fmt.Fprintf(&b, "- **%s**: %s (%d%%)\n", o, english.Plural(n, "vote", ""), Percent(n, total))
		}
		return b.String()
	}

	for i, q := range p.Feedback.Questions {
		fmt.Fprintf(&b, "## %d. %s\n\n", i+1, q.Prompt)
		switch q.Format {
		case models.FormatStars:
			s := StarStats(p, i)
			fmt.Fprintf(&b, "Average: **%.1f** from %s\n\n", s.Mean, english.Plural(s.Count, "rating", ""))
			for n := models.MaxStars; n >= 1; n-- {
				fmt.Fprintf(&b, "- %s: %d\n", strings.Repeat("⭐", n), s.Distribution[n-1])
			}
		case models.FormatVote:
			counts := ChoiceCounts(p, i)
			total := sum(counts)
			for j, o := range q.Options {
				fmt.Fprintf(&b, "- **%s**: %s (%d%%)\n", o, english.Plural(counts[j], "vote", ""), Percent(counts[j], total))
			}
		case models.FormatText:
			answers := textAnswers(p, i)
			if len(answers) == 0 {
				b.WriteString("_No answers_\n")
			}
			for _, a := range answers {
				fmt.Fprintf(&b, "- %s\n", strings.ReplaceAll(a.Text, "\n", " "))
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}
