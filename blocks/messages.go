// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package blocks

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize/english"
	"github.com/slack-go/slack"

	"github.com/danielhkuo/quickly-pick-slack/models"
)

// Block IDs of the interactive row on a posted poll
const (
	VoteBlock    = "vote_actions"
	RateBlock    = "rate_actions"
	RespondBlock = "respond_actions"
)

// PollMessage builds the channel message for a newly created poll. Every
// button carries the poll ID as its value so clicks on older messages
// reach the right poll.
func PollMessage(p *models.Poll) []slack.Block {
	var set []slack.Block
	var notes []string

	switch p.Kind {
	case models.KindVote:
		set = append(set, slack.NewSectionBlock(mrkdwn("*📊 "+p.Title+"*"), nil, nil))
		var buttons []slack.BlockElement
		for i, o := range p.Vote.Options {
			buttons = append(buttons, slack.NewButtonBlockElement(VoteAction(i), p.ID, plain(truncate(o, 75))))
		}
		set = append(set, slack.NewActionBlock(VoteBlock, buttons...))
		if p.Vote.Multi {
			notes = append(notes, "Select all that apply.")
		}

	case models.KindRanking:
		set = append(set, slack.NewSectionBlock(mrkdwn("*⭐ "+p.Title+"*"), nil, nil))
		var buttons []slack.BlockElement
		for n := 1; n <= models.MaxStars; n++ {
			buttons = append(buttons, slack.NewButtonBlockElement(RateAction(n), p.ID, plain(strings.Repeat("⭐", n))))
		}
		set = append(set, slack.NewActionBlock(RateBlock, buttons...))

	default:
		set = append(set, slack.NewSectionBlock(mrkdwn("*📝 "+p.Title+"*"), nil, nil))
		respond := slack.NewButtonBlockElement(RespondAction, p.ID, plain("Respond"))
		respond.Style = slack.StylePrimary
		set = append(set, slack.NewActionBlock(RespondBlock, respond))
		notes = append(notes, english.Plural(len(p.Feedback.Questions), "question", ""))
	}

	if p.Visibility == models.VisibilityAnonymous {
		notes = append(notes, "🔒 Anonymous")
	}
	notes = append(notes, fmt.Sprintf("Created by <@%s>", p.CreatorID))
	set = append(set, slack.NewContextBlock("", mrkdwn(strings.Join(notes, " · "))))

	return set
}

// PollFallback is the plain text shown in notifications for a poll message.
func PollFallback(p *models.Poll) string {
	switch p.Kind {
	case models.KindVote:
		return "📊 " + p.Title
	case models.KindRanking:
		return "⭐ " + p.Title
	}
	return "📝 " + p.Title
}
