// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package yesno

import (
	"fmt"

	"github.com/danielhkuo/quickly-tally/models"
	"github.com/danielhkuo/quickly-tally/vote"
)

var _ vote.AnyVote = (*Vote)(nil)

// Vote is a yes/no vote: each constituent may say yes, no or nothing to
// every option independently.
type Vote struct {
	*vote.Aggregate[Ballot]
}

// New creates a yes/no vote that rejects choices on undeclared options.
func New(name string, options []models.VoteOption, constituents []models.Constituent) *Vote {
	v := &Vote{Aggregate: vote.New[Ballot](Kind{}, name, options, constituents)}
	v.AddParticularValidators(NoForeignOptions())
	return v
}

// Particular validators

// NoForeignOptions fails when a ballot has a choice on an option the vote
// does not declare
func NoForeignOptions() vote.Validator[Ballot] {
	return vote.NewValidator("no-foreign-options", "Only declared options",
		func(s vote.Snapshot[Ballot]) ([]models.Constituent, string) {
			declared := make(map[models.VoteOption]bool, len(s.Options))
			for _, o := range s.Options {
				declared[o] = true
			}
			var offenders []models.Constituent
			for _, b := range s.Ballots {
				for o := range b.Choices {
					if !declared[o] {
						offenders = append(offenders, b.Constituent)
						break
					}
				}
			}
			return offenders, ""
		})
}

// MaxYes fails when a ballot says yes to more than n options
func MaxYes(n int) vote.Validator[Ballot] {
	return vote.NewValidator(fmt.Sprintf("max-yes-%d", n), fmt.Sprintf("At most %d yes", n),
		func(s vote.Snapshot[Ballot]) ([]models.Constituent, string) {
			var offenders []models.Constituent
			for _, b := range s.Ballots {
				yes := 0
				for _, choice := range b.Choices {
					if choice == Yes {
						yes++
					}
				}
				if yes > n {
					offenders = append(offenders, b.Constituent)
				}
			}
			return offenders, ""
		})
}
