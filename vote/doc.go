// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package vote defines what every vote kind shares: the ballot contract, the
Aggregate that owns a vote's state, validators and the vote-file CSV codec.

# Vote Kinds

A kind provides a ballot type implementing Ballot and a Kind value that
names it, builds empty ballots and decodes CSV rows:

	type Kind[B Ballot] interface {
		TypeName() string
		Bare(c models.Constituent) B
		FromCSVLine(values []string, options []models.VoteOption, c models.Constituent) (B, bool)
	}

Aggregate[B] then provides storage, locking, validation and CSV for free.
AnyVote lets callers hold votes of different kinds in one collection.

# Concurrency

Every Aggregate method takes one mutex. Operations on the same vote run one
at a time; different votes never block each other.

# Validation

Validators come in two lists. Generic validators work for any B:

  - NoBlankBallots
  - NoForeignConstituents
  - NoDuplicateVoters
  - EveryoneVoted

Particular validators are written for one kind's ballot type. Validate runs
both lists, generic first, and returns every result. ValidateStrict and
ReadValidated turn failures into a *ValidationError, which matches
ErrValidationFailed under errors.Is.

Ballots from unknown constituents and repeated ballots are accepted unless
the matching validator is added.

# CSV

	text, err := vote.ExportCSV(agg, cfg)
	report, err := vote.ImportCSV(agg, cfg, strings.NewReader(text))

The header is cfg's pre-headers followed by one rendered option header per
option. Rows that do not decode are skipped and listed in the report.

A row goes to the constituent whose rendered pre-values it repeats exactly,
then to the identifier recovered from the template. A row that fits several
constituents is skipped with ErrAmbiguousVoter. Exports fail with
ErrUnencodableConstituent when an identifier or tag holds a separator.

Ballot types holding maps or slices implement Cloner; the Aggregate then
stores and returns copies.
*/
package vote
