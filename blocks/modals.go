// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package blocks

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/slack-go/slack"

	"github.com/danielhkuo/quickly-pick-slack/models"
)

var kindLabels = []struct {
	kind  models.Kind
	label string
}{
	{models.KindVote, "📊 Vote"},
	{models.KindFeedback, "📝 Feedback"},
	{models.KindRanking, "⭐ Ranking"},
	{models.KindBlended, "🧩 Blended"},
}

var formatLabels = []struct {
	format models.Format
	label  string
}{
	{models.FormatText, "Text answer"},
	{models.FormatStars, "Star rating (1-5)"},
	{models.FormatVote, "Multiple choice"},
}

// StepOne is the first wizard modal: poll type, question and visibility.
func StepOne(d models.Draft) (slack.ModalViewRequest, error) {
	meta, err := EncodeDraft(d)
	if err != nil {
		return slack.ModalViewRequest{}, err
	}

	kind := d.Kind
	if kind == "" {
		kind = models.KindVote
	}
	var kindOpts []*slack.OptionBlockObject
	var initialKind *slack.OptionBlockObject
	for _, k := range kindLabels {
		o := slack.NewOptionBlockObject(string(k.kind), plain(k.label), nil)
		if k.kind == kind {
			initialKind = o
		}
		kindOpts = append(kindOpts, o)
	}
	kindSelect := slack.NewOptionsSelectBlockElement(slack.OptTypeStatic, plain("Choose a type"), TypeAction, kindOpts...)
	kindSelect.InitialOption = initialKind

	question := slack.NewPlainTextInputBlockElement(plain("What should we ask?"), QuestionAction)
	question.InitialValue = d.Title

	visibility := d.Visibility
	if visibility == "" {
		visibility = models.VisibilityPublic
	}
	public := slack.NewOptionBlockObject(string(models.VisibilityPublic), plain("Public (names shown)"), nil)
	anonymous := slack.NewOptionBlockObject(string(models.VisibilityAnonymous), plain("Anonymous"), nil)
	visSelect := slack.NewOptionsSelectBlockElement(slack.OptTypeStatic, plain("Who can see votes?"), VisibilityAction, public, anonymous)
	visSelect.InitialOption = public
	if visibility == models.VisibilityAnonymous {
		visSelect.InitialOption = anonymous
	}

	title := "Create a Poll"
	if kind != models.KindVote {
		title = "Create a Survey"
	}

	return modal(CallbackStepOne, title, "Next", meta,
		slack.NewInputBlock(TypeBlock, plain("Poll type"), nil, kindSelect),
		slack.NewInputBlock(QuestionBlock, plain("Poll question"), nil, question),
		slack.NewInputBlock(VisibilityBlock, plain("Visibility"), nil, visSelect),
	), nil
}

// VoteOptions is the final step of a vote poll: up to MaxOptions choices,
// the first two required, and a multi-select toggle.
func VoteOptions(d models.Draft) (slack.ModalViewRequest, error) {
	meta, err := EncodeDraft(d)
	if err != nil {
		return slack.ModalViewRequest{}, err
	}

	set := []slack.Block{
		slack.NewSectionBlock(mrkdwn("*📊 "+d.Title+"*"), nil, nil),
	}
	for i := 0; i < models.MaxOptions; i++ {
		input := slack.NewInputBlock(OptionBlock(i), plain(fmt.Sprintf("Option %d", i+1)), nil,
			slack.NewPlainTextInputBlockElement(nil, OptionAction(i)))
		input.Optional = i >= models.MinOptions
		set = append(set, input)
	}

	multi := slack.NewInputBlock(MultiBlock, plain("Settings"), nil,
		slack.NewCheckboxGroupsBlockElement(MultiAction,
			slack.NewOptionBlockObject(MultiValue, plain("Allow multiple selections"), nil)))
	multi.Optional = true
	set = append(set, multi)

	return modal(CallbackSubmit, "Create a Poll", "Post Poll", meta, set...), nil
}

// StepTwo is the question builder for feedback and blended polls.
func StepTwo(d models.Draft) (slack.ModalViewRequest, error) {
	meta, err := EncodeDraft(d)
	if err != nil {
		return slack.ModalViewRequest{}, err
	}

	set := []slack.Block{
		slack.NewSectionBlock(mrkdwn("*📝 "+d.Title+"*"), nil, nil),
		slack.NewContextBlock("", mrkdwn(fmt.Sprintf("Add up to %d questions. Empty slots are skipped.", models.MaxQuestions))),
	}
	for i := 0; i < models.MaxQuestions; i++ {
		prompt := slack.NewInputBlock(PromptBlock(i), plain(fmt.Sprintf("Question %d", i+1)), nil,
			slack.NewPlainTextInputBlockElement(nil, PromptAction(i)))
		prompt.Optional = i > 0

		var opts []*slack.OptionBlockObject
		for _, f := range formatLabels {
			opts = append(opts, slack.NewOptionBlockObject(string(f.format), plain(f.label), nil))
		}
		sel := slack.NewOptionsSelectBlockElement(slack.OptTypeStatic, plain("Answer type"), FormatAction(i), opts...)
		sel.InitialOption = opts[0]
		format := slack.NewInputBlock(FormatBlock(i), plain("Answer type"), nil, sel)
		format.Optional = true

		set = append(set, prompt, format)
	}

	return modal(CallbackStepTwo, "Create a Survey", "Next", meta, set...), nil
}

// Review is the final step of feedback, ranking and blended polls. Vote
// questions get a choices input, one choice per line.
func Review(d models.Draft) (slack.ModalViewRequest, error) {
	meta, err := EncodeDraft(d)
	if err != nil {
		return slack.ModalViewRequest{}, err
	}

	set := []slack.Block{
		slack.NewSectionBlock(mrkdwn("*📋 "+d.Title+"*"), nil, nil),
	}
	if d.Kind == models.KindRanking {
		set = append(set, slack.NewContextBlock("",
			mrkdwn(fmt.Sprintf("Everyone rates this from 1 to %d stars.", models.MaxStars))))
	}
	for i, q := range d.Questions {
		set = append(set, slack.NewSectionBlock(
			mrkdwn(fmt.Sprintf("*%d. %s*  _%s_", i+1, q.Prompt, formatLabel(q.Format))), nil, nil))
		if q.Format != models.FormatVote {
			continue
		}
		choices := slack.NewPlainTextInputBlockElement(plain("One choice per line"), ChoicesAction(i))
		choices.Multiline = true
		choices.InitialValue = strings.Join(q.Options, "\n")
		set = append(set, slack.NewInputBlock(ChoicesBlock(i),
			plain(fmt.Sprintf("Choices for question %d", i+1)),
			plain(fmt.Sprintf("Between %d and %d choices, one per line.", models.MinOptions, models.MaxChoices)),
			choices))
	}

	title := "Create a Survey"
	if d.Kind == models.KindRanking {
		title = "Create a Ranking"
	}
	return modal(CallbackSubmit, title, "Post Poll", meta, set...), nil
}

// ResponseModal collects one answer per question of a feedback poll. The
// poll ID travels in private_metadata.
func ResponseModal(p *models.Poll) slack.ModalViewRequest {
	set := []slack.Block{
		slack.NewSectionBlock(mrkdwn("*📝 "+p.Title+"*"), nil, nil),
	}
	if p.Visibility == models.VisibilityAnonymous {
		set = append(set, slack.NewContextBlock("", mrkdwn("🔒 Responses are anonymous.")))
	}

	for i, q := range p.Feedback.Questions {
		label := plain(truncate(q.Prompt, 2000))
		switch q.Format {
		case models.FormatText:
			input := slack.NewPlainTextInputBlockElement(plain("Your answer"), AnswerAction(i))
			input.Multiline = true
			block := slack.NewInputBlock(AnswerBlock(i), label, nil, input)
			block.Optional = true
			set = append(set, block)
		case models.FormatStars:
			var opts []*slack.OptionBlockObject
			for n := 1; n <= models.MaxStars; n++ {
				opts = append(opts, slack.NewOptionBlockObject(strconv.Itoa(n), plain(strings.Repeat("⭐", n)), nil))
			}
			set = append(set, slack.NewInputBlock(AnswerBlock(i), label, nil,
				slack.NewOptionsSelectBlockElement(slack.OptTypeStatic, plain("Pick a rating"), AnswerAction(i), opts...)))
		case models.FormatVote:
			var opts []*slack.OptionBlockObject
			for j, o := range q.Options {
				opts = append(opts, slack.NewOptionBlockObject(strconv.Itoa(j), plain(truncate(o, 75)), nil))
			}
			set = append(set, slack.NewInputBlock(AnswerBlock(i), label, nil,
				slack.NewRadioButtonsBlockElement(AnswerAction(i), opts...)))
		}
	}

	return modal(CallbackResponse, "Respond", "Submit", p.ID, set...)
}

func modal(callbackID, title, submit, metadata string, set ...slack.Block) slack.ModalViewRequest {
	return slack.ModalViewRequest{
		Type:            slack.VTModal,
		CallbackID:      callbackID,
		Title:           plain(title),
		Submit:          plain(submit),
		Close:           plain("Cancel"),
		PrivateMetadata: metadata,
		Blocks:          slack.Blocks{BlockSet: set},
	}
}

func formatLabel(f models.Format) string {
	for _, l := range formatLabels {
		if l.format == f {
			return l.label
		}
	}
	return string(f)
}

func plain(text string) *slack.TextBlockObject {
	return slack.NewTextBlockObject(slack.PlainTextType, text, true, false)
}

func mrkdwn(text string) *slack.TextBlockObject {
	return slack.NewTextBlockObject(slack.MarkdownType, text, false, false)
}

// truncate shortens s to at most n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
