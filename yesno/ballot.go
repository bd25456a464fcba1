// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package yesno

import (
	"maps"

	"github.com/danielhkuo/quickly-tally/models"
	"github.com/danielhkuo/quickly-tally/vote"
)

var _ vote.Cloner[Ballot] = Ballot{}

// Choice is a constituent's position on one option. The zero value is Blank,
// so options missing from a ballot read as not voted.
type Choice int8

const (
	Blank Choice = iota
	Yes
	No
)

// CSV tokens
const (
	TokenYes   = "1"
	TokenNo    = "0"
	TokenBlank = ""
)

func (c Choice) String() string {
	switch c {
	case Yes:
		return "yes"
	case No:
		return "no"
	default:
		return "blank"
	}
}

// Valid reports whether c is one of Blank, Yes or No
func (c Choice) Valid() bool {
	return c == Blank || c == Yes || c == No
}

// Token returns the CSV encoding of c
func (c Choice) Token() string {
	switch c {
	case Yes:
		return TokenYes
	case No:
		return TokenNo
	default:
		return TokenBlank
	}
}

// ParseToken is the inverse of Token
func ParseToken(token string) (Choice, bool) {
	switch token {
	case TokenYes:
		return Yes, true
	case TokenNo:
		return No, true
	case TokenBlank:
		return Blank, true
	default:
		return Blank, false
	}
}

// Ballot holds one constituent's yes/no choices. Blank choices are never
// stored, so a ballot is blank exactly when Choices is empty. The zero
// value is a blank ballot ready for Set.
type Ballot struct {
	Constituent models.Constituent
	Choices     map[models.VoteOption]Choice
}

// NewBallot builds a ballot from explicit choices. Blank and invalid entries
// are dropped.
func NewBallot(c models.Constituent, choices map[models.VoteOption]Choice) Ballot {
	b := Ballot{Constituent: c, Choices: make(map[models.VoteOption]Choice, len(choices))}
	for o, choice := range choices {
		b.Set(o, choice)
	}
	return b
}

// Set records choice for o. Setting Blank removes o. An invalid choice
// leaves the ballot unchanged and reports false.
func (b *Ballot) Set(o models.VoteOption, choice Choice) bool {
	switch {
	case !choice.Valid():
		return false
	case choice == Blank:
		delete(b.Choices, o)
	default:
		if b.Choices == nil {
			b.Choices = make(map[models.VoteOption]Choice)
		}
		b.Choices[o] = choice
	}
	return true
}

// Choice returns the choice for o, Blank when none was made
func (b Ballot) Choice(o models.VoteOption) Choice {
	return b.Choices[o]
}

// Voted reports whether a yes or no was cast for o
func (b Ballot) Voted(o models.VoteOption) bool {
	_, ok := b.Choices[o]
	return ok
}

func (b Ballot) Voter() models.Constituent {
	return b.Constituent
}

func (b Ballot) IsBlank() bool {
	return len(b.Choices) == 0
}

// CSVValueFor returns "1", "0" or "" for o
func (b Ballot) CSVValueFor(o models.VoteOption) string {
	return b.Choice(o).Token()
}

func (b Ballot) CSVValues(options []models.VoteOption) []string {
	values := make([]string, len(options))
	for i, o := range options {
		values[i] = b.CSVValueFor(o)
	}
	return values
}

// Clone returns a ballot that shares no state with b
func (b Ballot) Clone() Ballot {
	return Ballot{Constituent: b.Constituent, Choices: maps.Clone(b.Choices)}
}

// Kind is the yes/no vote kind
type Kind struct{}

func (Kind) TypeName() string {
	return models.KindYesNo
}

func (Kind) Bare(c models.Constituent) Ballot {
	return Ballot{Constituent: c, Choices: make(map[models.VoteOption]Choice)}
}

// FromCSVLine maps "1" to Yes, "0" to No and "" to no entry. Any other token
// or a count different from len(options) rejects the whole row.
func (k Kind) FromCSVLine(values []string, options []models.VoteOption, c models.Constituent) (Ballot, bool) {
	if len(values) != len(options) {
		return Ballot{}, false
	}

	b := k.Bare(c)
	for i, token := range values {
		choice, ok := ParseToken(token)
		if !ok {
			return Ballot{}, false
		}
		b.Set(options[i], choice)
	}
	return b, true
}
