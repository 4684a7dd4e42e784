// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the poll record, wizard state and domain errors.

# Poll Kinds

A Poll is a tagged record. Kind selects which body is set:

  - KindVote: Vote body with options, per-voter choices and tallies
  - KindFeedback: Feedback body with text and star questions
  - KindRanking: Feedback body with a single star question (the title)
  - KindBlended: Feedback body mixing vote, text and star questions

Constructors validate the record before returning it:

	p, err := models.NewVotePoll(id, channelID, userID, "Lunch?", []string{"Pizza", "Sushi"}, false, models.VisibilityPublic)

# Mutations

Mutations are methods on *Poll and return sentinel errors:

	err := p.CastVote(voterKey, 1)      // ErrAlreadyVoted, ErrPollClosed, ErrInvalidOption
	err := p.Respond(voterKey, answers) // ErrAlreadyResponded, ErrInvalidAnswer
	err := p.Close(userID)              // ErrNotCreator, ErrPollClosed

Callers run them inside store.Update so each change is an atomic
read-modify-write.

# Wizard State

Draft is serialized into a modal's private_metadata and carried from
one wizard step to the next:

	{"channel":"C1","user":"U1","type":"blended","title":"Retro","visibility":"public","questions":[...]}
*/
package models
