// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package yesno implements the yes/no vote kind.

# Ballots

Each option gets one of three choices:

	Blank  no entry, CSV ""
	Yes    CSV "1"
	No     CSV "0"

Blank is the zero value and is never stored, so looking up an option that
was not voted on returns Blank:

	b, ok := yesno.Kind{}.FromCSVLine([]string{"1", "0", ""}, options, voter)
	b.Choice(options[0]) // Yes
	b.Voted(options[2])  // false

A row with any other token, or the wrong number of tokens, does not decode.
Set ignores choices other than Blank, Yes and No, and works on a zero
Ballot.

# Counting

	v := yesno.New("Budget", options, constituents)
	v.AddBallots(ballots...)
	tally, err := v.Count(false)

Count(false) runs every validator first and fails without a tally if any
fails. Count(true) skips validation.

# Validators

New votes carry NoForeignOptions. MaxYes(n) limits yes choices per ballot.
Generic validators from package vote apply as well:

	v.AddGenericValidators(vote.NoBlankBallots[yesno.Ballot]())
*/
package yesno
