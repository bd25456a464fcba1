// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package vote

import (
	"log/slog"
	"maps"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/danielhkuo/quickly-tally/models"
)

// Aggregate owns the constituents, options, ballots and validators of one
// vote. Every method takes the same lock, so operations on one Aggregate
// never interleave; concurrent callers wait their turn.
type Aggregate[B Ballot] struct {
	kind    Kind[B]
	id      string
	name    string
	options []models.VoteOption

	mu           sync.Mutex
	constituents []models.Constituent
	ballots      []B
	generic      []Validator[B]
	particular   []Validator[B]
	customData   map[string]string
}

// New creates an aggregate with a fresh ID. options stay fixed for the
// lifetime of the vote. Constituents are deduplicated by identifier, keeping
// the first.
func New[B Ballot](kind Kind[B], name string, options []models.VoteOption, constituents []models.Constituent) *Aggregate[B] {
	return &Aggregate[B]{
		kind:         kind,
		id:           uuid.NewString(),
		name:         name,
		options:      slices.Clone(options),
		constituents: uniqueConstituents(constituents),
		customData:   make(map[string]string),
	}
}

func (a *Aggregate[B]) ID() string       { return a.id }
func (a *Aggregate[B]) Name() string     { return a.name }
func (a *Aggregate[B]) TypeName() string { return a.kind.TypeName() }
func (a *Aggregate[B]) Kind() Kind[B]    { return a.kind }

// Options returns a copy of the option list
func (a *Aggregate[B]) Options() []models.VoteOption {
	return slices.Clone(a.options)
}

// Constituents returns a copy of the constituent list
func (a *Aggregate[B]) Constituents() []models.Constituent {
	a.mu.Lock()
	defer a.mu.Unlock()
	return slices.Clone(a.constituents)
}

// Ballots returns a copy of the ballot list. Ballots implementing Cloner
// are copied as well, so callers never share state with the aggregate.
func (a *Aggregate[B]) Ballots() []B {
	a.mu.Lock()
	defer a.mu.Unlock()
	return cloneBallots(a.ballots)
}

func (a *Aggregate[B]) BallotCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.ballots)
}

// AddBallots appends copies of ballots, see Ballots. Membership and
// duplicates are not checked here; use NoForeignConstituents and
// NoDuplicateVoters for that.
func (a *Aggregate[B]) AddBallots(ballots ...B) {
	copies := cloneBallots(ballots)
	a.mu.Lock()
	defer a.mu.Unlock()
	a.ballots = append(a.ballots, copies...)
}

// AddGenericValidators appends kind-independent validators
func (a *Aggregate[B]) AddGenericValidators(validators ...Validator[B]) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.generic = append(a.generic, validators...)
}

// AddParticularValidators appends validators specific to this vote kind
func (a *Aggregate[B]) AddParticularValidators(validators ...Validator[B]) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.particular = append(a.particular, validators...)
}

// Validators returns the generic and particular validator lists
func (a *Aggregate[B]) Validators() (generic, particular []Validator[B]) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return slices.Clone(a.generic), slices.Clone(a.particular)
}

func (a *Aggregate[B]) SetCustomData(key, value string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.customData[key] = value
}

func (a *Aggregate[B]) CustomData(key string) (string, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	v, ok := a.customData[key]
	return v, ok
}

// AllCustomData returns a copy of the custom data map
func (a *Aggregate[B]) AllCustomData() map[string]string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return maps.Clone(a.customData)
}

// Validate runs every validator, generic ones first, and returns all
// results in order.
func (a *Aggregate[B]) Validate() []ValidationResult {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.validateLocked()
}

// ValidateStrict runs every validator and returns a *ValidationError
// holding the failures, if any.
func (a *Aggregate[B]) ValidateStrict() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.validateStrictLocked()
}

// Read calls fn with the current state while holding the lock. The snapshot
// must not be retained after fn returns.
func (a *Aggregate[B]) Read(fn func(Snapshot[B]) error) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return fn(a.snapshotLocked())
}

// ReadValidated is Read preceded by strict validation under the same lock.
// fn is not called when validation fails.
func (a *Aggregate[B]) ReadValidated(fn func(Snapshot[B]) error) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.validateStrictLocked(); err != nil {
		return err
	}
	return fn(a.snapshotLocked())
}

func (a *Aggregate[B]) snapshotLocked() Snapshot[B] {
	return Snapshot[B]{
		Options:      a.options,
		Constituents: a.constituents,
		Ballots:      a.ballots,
	}
}

func (a *Aggregate[B]) validateLocked() []ValidationResult {
	s := a.snapshotLocked()
	results := make([]ValidationResult, 0, len(a.generic)+len(a.particular))
	for _, v := range a.generic {
		results = append(results, v.Validate(s))
	}
	for _, v := range a.particular {
		results = append(results, v.Validate(s))
	}
	return results
}

func (a *Aggregate[B]) validateStrictLocked() error {
	err := failures(a.validateLocked())
	if err != nil {
		slog.Warn("vote validation failed", "vote_id", a.id, "error", err)
	}
	return err
}

func cloneBallots[B Ballot](ballots []B) []B {
	copies := make([]B, len(ballots))
	for i, b := range ballots {
		if c, ok := any(b).(Cloner[B]); ok {
			b = c.Clone()
		}
		copies[i] = b
	}
	return copies
}

func uniqueConstituents(constituents []models.Constituent) []models.Constituent {
	seen := make(map[string]bool, len(constituents))
	unique := make([]models.Constituent, 0, len(constituents))
	for _, c := range constituents {
		if seen[c.Identifier] {
			continue
		}
		seen[c.Identifier] = true
		unique = append(unique, c)
	}
	return unique
}
