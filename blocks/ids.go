// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package blocks

import "fmt"

// Modal callback IDs
const (
	CallbackStepOne  = "poll_step1"
	CallbackStepTwo  = "poll_step2"
	CallbackSubmit   = "submit_poll"
	CallbackResponse = "submit_response"
)

// Block and action IDs read back from view state
const (
	TypeBlock        = "type_block"
	TypeAction       = "poll_type"
	QuestionBlock    = "question_block"
	QuestionAction   = "question_input"
	VisibilityBlock  = "visibility_block"
	VisibilityAction = "visibility_select"
	MultiBlock       = "multi_block"
	MultiAction      = "multi_select"
	MultiValue       = "multi"
)

// Message action IDs
const (
	RespondAction = "respond"
	voteActionFmt = "vote_%d"
	rateActionFmt = "rate_%d"
)

// Indexed IDs for the repeated wizard and response inputs

func OptionBlock(i int) string {
	return fmt.Sprintf("option_block_%d", i)
}

func OptionAction(i int) string {
	return fmt.Sprintf("option_input_%d", i)
}

func PromptBlock(i int) string {
	return fmt.Sprintf("q_block_%d", i)
}

func PromptAction(i int) string {
	return fmt.Sprintf("q_input_%d", i)
}

func FormatBlock(i int) string {
	return fmt.Sprintf("q_type_block_%d", i)
}

func FormatAction(i int) string {
	return fmt.Sprintf("q_type_select_%d", i)
}

func ChoicesBlock(i int) string {
	return fmt.Sprintf("choices_block_%d", i)
}

func ChoicesAction(i int) string {
	return fmt.Sprintf("choices_input_%d", i)
}

func AnswerBlock(i int) string {
	return fmt.Sprintf("answer_block_%d", i)
}

func AnswerAction(i int) string {
	return fmt.Sprintf("answer_input_%d", i)
}

// VoteAction is the action ID of the button for option i.
func VoteAction(i int) string {
	return fmt.Sprintf(voteActionFmt, i)
}

// RateAction is the action ID of the n-star button on a ranking poll.
func RateAction(n int) string {
	return fmt.Sprintf(rateActionFmt, n)
}

// ParseVoteAction returns the option index of a vote_N action ID.
func ParseVoteAction(actionID string) (int, bool) {
	return parseIndexed(voteActionFmt, actionID)
}

// ParseRateAction returns the star count of a rate_N action ID.
func ParseRateAction(actionID string) (int, bool) {
	return parseIndexed(rateActionFmt, actionID)
}

func parseIndexed(format, actionID string) (int, bool) {
	var n int
	if _, err := fmt.Sscanf(actionID, format, &n); err != nil {
		return 0, false
	}
	// Sscanf ignores trailing input
	if fmt.Sprintf(format, n) != actionID {
		return 0, false
	}
	return n, true
}
