package models

import "time"

// Poll kinds
type Kind string

const (
	KindVote     Kind = "vote"
	KindFeedback Kind = "feedback"
	KindRanking  Kind = "ranking"
	KindBlended  Kind = "blended"
)

// Visibility controls whether results name the people who voted
type Visibility string

const (
	VisibilityPublic    Visibility = "public"
	VisibilityAnonymous Visibility = "anonymous"
)

// Question formats for feedback, ranking and blended polls
type Format string

const (
	FormatVote  Format = "vote"
	FormatText  Format = "text"
	FormatStars Format = "stars"
)

// Limits shared by the wizard modals and validation
const (
	MaxOptions   = 5
	MaxChoices   = 10
	MaxQuestions = 5
	MinOptions   = 2
	MaxStars     = 5
)

// Domain types

// Poll is a single poll record. Exactly one of Vote or Feedback is set,
// matching Kind.
type Poll struct {
	ID         string        `json:"id"`
	Kind       Kind          `json:"kind"`
	Title      string        `json:"title"`
	Visibility Visibility    `json:"visibility"`
	CreatorID  string        `json:"creator_id"`
	ChannelID  string        `json:"channel_id"`
	Active     bool          `json:"active"`
	CreatedAt  time.Time     `json:"created_at"`
	ClosedAt   *time.Time    `json:"closed_at,omitempty"`
	Vote       *VoteBody     `json:"vote,omitempty"`
	Feedback   *FeedbackBody `json:"feedback,omitempty"`
}

// VoteBody holds the options and ballots of a vote poll. Votes maps a voter
// key to the chosen option indices in the order they were cast; Voters
// keeps voter keys in the order they first voted.
type VoteBody struct {
	Options []string         `json:"options"`
	Multi   bool             `json:"multi"`
	Votes   map[string][]int `json:"votes"`
	Tallies []int            `json:"tallies"`
	Voters  []string         `json:"voters"`
}

// FeedbackBody holds the question set and collected responses of a
// feedback, ranking or blended poll.
type FeedbackBody struct {
	Questions []Question `json:"questions"`
	Responses []Response `json:"responses"`
}

type Question struct {
	Prompt  string   `json:"prompt"`
	Format  Format   `json:"format"`
	Options []string `json:"options,omitempty"`
}

type Response struct {
	Voter       string    `json:"voter"`
	Answers     []Answer  `json:"answers"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// Answer to one question. Which field is meaningful depends on the
// question's format; an empty text answer to a text question is allowed.
type Answer struct {
	Text   string `json:"text,omitempty"`
	Stars  int    `json:"stars,omitempty"`
	Choice int    `json:"choice"`
}

// Draft is the wizard state carried between modal steps in private_metadata.
type Draft struct {
	Channel    string     `json:"channel"`
	User       string     `json:"user"`
	Kind       Kind       `json:"type,omitempty"`
	Title      string     `json:"title,omitempty"`
	Visibility Visibility `json:"visibility,omitempty"`
	Questions  []Question `json:"questions,omitempty"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
