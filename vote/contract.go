// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package vote

import "github.com/danielhkuo/quickly-tally/models"

// Ballot is one constituent's submission for a particular vote kind.
type Ballot interface {
	// Voter is the constituent who cast the ballot
	Voter() models.Constituent
	// IsBlank reports whether the ballot holds no choice at all
	IsBlank() bool
	// CSVValues encodes one token per option, in option order
	CSVValues(options []models.VoteOption) []string
}

// Cloner is implemented by ballots holding reference types. The aggregate
// stores and hands out clones so no caller shares a ballot with it.
type Cloner[B Ballot] interface {
	Clone() B
}

// Kind supplies what a vote kind needs beyond its ballot values: a type
// name, empty ballots and decoding.
type Kind[B Ballot] interface {
	TypeName() string
	// Bare returns a ballot with no choices for c
	Bare(c models.Constituent) B
	// FromCSVLine decodes one row's option tokens. It reports false when
	// any token is invalid or the count differs from len(options).
	FromCSVLine(values []string, options []models.VoteOption, c models.Constituent) (B, bool)
}

// Validator checks the ballots of a vote without changing them.
type Validator[B Ballot] interface {
	ID() string
	Name() string
	Validate(s Snapshot[B]) ValidationResult
}

// Snapshot is the state validators and tallies see. It is only valid for
// the duration of the call that received it.
type Snapshot[B Ballot] struct {
	Options      []models.VoteOption
	Constituents []models.Constituent
	Ballots      []B
}

// AnyVote is the kind-independent view of a vote, for holding votes of
// different kinds together. TypeName tells them apart.
type AnyVote interface {
	ID() string
	Name() string
	TypeName() string
	Options() []models.VoteOption
	Constituents() []models.Constituent
	BallotCount() int
	Validate() []ValidationResult
}
