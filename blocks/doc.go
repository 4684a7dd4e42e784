// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package blocks builds the Block Kit payloads of the poll bot.

# Wizard

Poll creation is a chain of modal views. Each step carries a
models.Draft in private_metadata and is replaced in place with
response_action "update":

	poll_step1  → submit_poll (vote: option inputs)
	            → submit_poll (ranking: review only)
	            → poll_step2 (feedback, blended: question builder)
	poll_step2  → submit_poll (review, choices for vote questions)

Input values are read back by block and action ID, e.g. OptionBlock(i)
and OptionAction(i).

# Messages

PollMessage renders a posted poll. Buttons use the action IDs vote_N,
rate_N and respond; their value is the poll ID.
*/
package blocks
