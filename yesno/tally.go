// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package yesno

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/quickly-tally/models"
	"github.com/danielhkuo/quickly-tally/vote"
)

// Count is the tally for one option
type Count struct {
	Yes   uint
	No    uint
	Blank uint
}

func (c Count) String() string {
	return fmt.Sprintf("%s yes, %s no, %s blank",
		humanize.Comma(int64(c.Yes)),
		humanize.Comma(int64(c.No)),
		humanize.Comma(int64(c.Blank)),
	)
}

// Tally maps each declared option to its count
type Tally map[models.VoteOption]Count

// Format renders one line per option, in the given order
func (t Tally) Format(options []models.VoteOption) string {
	lines := make([]string, len(options))
	for i, o := range options {
		lines[i] = o.Name + ": " + t[o].String()
	}
	return strings.Join(lines, "\n")
}

// Count tallies every declared option. Unless force is set, all validators
// must pass first; on failure the error wraps vote.ErrValidationFailed and
// no tally is returned.
func (v *Vote) Count(force bool) (Tally, error) {
	var tally Tally
	countLocked := func(s vote.Snapshot[Ballot]) error {
		tally = count(s.Options, s.Ballots)
		return nil
	}

	var err error
	if force {
		err = v.Read(countLocked)
	} else {
		err = v.ReadValidated(countLocked)
	}
	if err != nil {
		return nil, err
	}
	return tally, nil
}

// count classifies every ballot's choice on every option
func count(options []models.VoteOption, ballots []Ballot) Tally {
	tally := make(Tally, len(options))
	for _, o := range options {
		var c Count
		for _, b := range ballots {
			switch b.Choice(o) {
			case Yes:
				c.Yes++
			case No:
				c.No++
			default:
				c.Blank++
			}
		}
		tally[o] = c
	}
	return tally
}
