// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package vote

import (
	"errors"
	"fmt"
	"strings"

	"github.com/danielhkuo/quickly-tally/models"
)

var ErrValidationFailed = errors.New("vote validation failed")

// ValidationResult is the outcome of one validator run
type ValidationResult struct {
	ValidatorID string
	Name        string
	Passed      bool
	Message     string
	// Offenders lists the constituents whose ballots caused a failure
	Offenders []models.Constituent
}

// Pass returns a passing result for v
func Pass[B Ballot](v Validator[B]) ValidationResult {
	return ValidationResult{ValidatorID: v.ID(), Name: v.Name(), Passed: true}
}

// Fail returns a failing result for v
func Fail[B Ballot](v Validator[B], message string, offenders ...models.Constituent) ValidationResult {
	return ValidationResult{
		ValidatorID: v.ID(),
		Name:        v.Name(),
		Message:     message,
		Offenders:   offenders,
	}
}

func (r ValidationResult) String() string {
	if r.Passed {
		return r.Name + ": ok"
	}
	return r.Name + ": " + r.Message
}

// ValidationError carries every failing result of a strict validation.
type ValidationError struct {
	Failures []ValidationResult
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		parts[i] = f.String()
	}
	return fmt.Sprintf("%v: %s", ErrValidationFailed, strings.Join(parts, "; "))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}

// failures returns nil when every result passed
func failures(results []ValidationResult) error {
	var failed []ValidationResult
	for _, r := range results {
		if !r.Passed {
			failed = append(failed, r)
		}
	}
	if len(failed) == 0 {
		return nil
	}
	return &ValidationError{Failures: failed}
}

type funcValidator[B Ballot] struct {
	id, name string
	fn       func(Snapshot[B]) (offenders []models.Constituent, message string)
}

// NewValidator adapts fn into a Validator. fn returns the offending
// constituents and a message; no offenders and an empty message mean pass.
func NewValidator[B Ballot](id, name string, fn func(Snapshot[B]) ([]models.Constituent, string)) Validator[B] {
	return &funcValidator[B]{id: id, name: name, fn: fn}
}

func (v *funcValidator[B]) ID() string   { return v.id }
func (v *funcValidator[B]) Name() string { return v.name }

func (v *funcValidator[B]) Validate(s Snapshot[B]) ValidationResult {
	offenders, message := v.fn(s)
	if len(offenders) == 0 && message == "" {
		return Pass[B](v)
	}
	if message == "" {
		message = fmt.Sprintf("%d offending ballot(s)", len(offenders))
	}
	return Fail[B](v, message, offenders...)
}

// Generic validators, usable with every vote kind

// NoBlankBallots fails when any ballot is blank
func NoBlankBallots[B Ballot]() Validator[B] {
	return NewValidator("no-blank-ballots", "No blank ballots",
		func(s Snapshot[B]) ([]models.Constituent, string) {
			var offenders []models.Constituent
			for _, b := range s.Ballots {
				if b.IsBlank() {
					offenders = append(offenders, b.Voter())
				}
			}
			return offenders, ""
		})
}

// NoForeignConstituents fails when a ballot comes from someone outside the
// vote's constituents
func NoForeignConstituents[B Ballot]() Validator[B] {
	return NewValidator("no-foreign-constituents", "Only constituents vote",
		func(s Snapshot[B]) ([]models.Constituent, string) {
			known := identifierSet(s.Constituents)
			var offenders []models.Constituent
			for _, b := range s.Ballots {
				if !known[b.Voter().Identifier] {
					offenders = append(offenders, b.Voter())
				}
			}
			return offenders, ""
		})
}

// NoDuplicateVoters fails when a constituent cast more than one ballot
func NoDuplicateVoters[B Ballot]() Validator[B] {
	return NewValidator("no-duplicate-voters", "One ballot per constituent",
		func(s Snapshot[B]) ([]models.Constituent, string) {
			counts := make(map[string]int, len(s.Ballots))
			var offenders []models.Constituent
			for _, b := range s.Ballots {
				id := b.Voter().Identifier
				counts[id]++
				if counts[id] == 2 {
					offenders = append(offenders, b.Voter())
				}
			}
			return offenders, ""
		})
}

// EveryoneVoted fails when a constituent has no ballot
func EveryoneVoted[B Ballot]() Validator[B] {
	return NewValidator("everyone-voted", "Every constituent voted",
		func(s Snapshot[B]) ([]models.Constituent, string) {
			voted := make(map[string]bool, len(s.Ballots))
			for _, b := range s.Ballots {
				voted[b.Voter().Identifier] = true
			}
			var missing []models.Constituent
			for _, c := range s.Constituents {
				if !voted[c.Identifier] {
					missing = append(missing, c)
				}
			}
			if len(missing) == 0 {
				return nil, ""
			}
			return missing, fmt.Sprintf("%d constituent(s) did not vote", len(missing))
		})
}

func identifierSet(constituents []models.Constituent) map[string]bool {
	set := make(map[string]bool, len(constituents))
	for _, c := range constituents {
		set[c.Identifier] = true
	}
	return set
}
