// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package vote

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/danielhkuo/quickly-tally/csvconf"
	"github.com/danielhkuo/quickly-tally/models"
)

// MaxRowBytes bounds a single vote-file line, header included
const MaxRowBytes = 1 << 20

// forbidden cannot appear inside a rendered field
const forbidden = ",\t;\n\r"

var (
	ErrUnencodableOption      = errors.New("option name cannot be written to CSV")
	ErrUnencodableConstituent = errors.New("constituent cannot be written to CSV")
	ErrHeaderMismatch         = errors.New("CSV header does not match the vote")
	ErrMissingIdentifier      = errors.New("row has no constituent identifier")
	ErrAmbiguousVoter         = errors.New("row matches more than one constituent")
	ErrInvalidBallot          = errors.New("row is not a valid ballot")
)

// SkippedRow is a row ImportCSV did not turn into a ballot
type SkippedRow struct {
	Line   int
	Reason error
}

// ImportReport summarizes an ImportCSV call
type ImportReport struct {
	Imported int
	Skipped  []SkippedRow
}

// ExportCSV writes a header followed by one row per ballot: the configured
// pre-values for the voter, then one token per option.
func ExportCSV[B Ballot](a *Aggregate[B], cfg *csvconf.Configuration) (string, error) {
	options := a.Options()
	for _, o := range options {
		if strings.ContainsAny(o.Name, forbidden) {
			return "", fmt.Errorf("%w: %q", ErrUnencodableOption, o.Name)
		}
	}

	var b strings.Builder
	b.WriteString(cfg.PreHeaderLine())
	b.WriteString(cfg.OptionHeaders(models.OptionNames(options)...))

	err := a.Read(func(s Snapshot[B]) error {
		for _, ballot := range s.Ballots {
			voter := ballot.Voter()
			if strings.ContainsAny(voter.Identifier, forbidden) || strings.ContainsAny(voter.Tag, forbidden) {
				return fmt.Errorf("%w: %q", ErrUnencodableConstituent, voter.Identifier)
			}
			b.WriteByte('\n')
			b.WriteString(cfg.PreValues(voter))
			for _, v := range ballot.CSVValues(options) {
				b.WriteByte(',')
				b.WriteString(v)
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	return b.String(), nil
}

// ImportCSV reads rows written by ExportCSV and appends the decoded ballots.
// The header must match the configuration and the vote's options; a bad
// header fails the import. Bad rows are skipped and reported.
//
// A row belongs to the constituent whose rendered pre-values it repeats
// exactly. Otherwise the identifier is recovered from the template and
// looked up by identifier; unknown identifiers get a bare constituent. Rows
// that fit more than one constituent are skipped.
func ImportCSV[B Ballot](a *Aggregate[B], cfg *csvconf.Configuration, r io.Reader) (ImportReport, error) {
	var report ImportReport
	options := a.Options()
	voters := newVoterIndex(a.Constituents(), cfg)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxRowBytes)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return report, fmt.Errorf("failed to read ballots: %w", err)
		}
		return report, fmt.Errorf("%w: empty input", ErrHeaderMismatch)
	}
	if err := checkHeader(strings.TrimSuffix(scanner.Text(), "\r"), cfg, options); err != nil {
		return report, err
	}

	var ballots []B
	preCount := cfg.PreValueCount()
	line := 2
	for ; scanner.Scan(); line++ {
		text := strings.TrimSuffix(scanner.Text(), "\r")
		if strings.TrimSpace(text) == "" {
			continue
		}

		fields := strings.Split(text, ",")
		if len(fields) != preCount+len(options) {
			report.skip(a.id, line, fmt.Errorf("%w: got %d fields, want %d", ErrInvalidBallot, len(fields), preCount+len(options)))
			continue
		}

		voter, err := voters.lookup(fields[:preCount], cfg)
		if err != nil {
			report.skip(a.id, line, err)
			continue
		}

		ballot, ok := a.kind.FromCSVLine(fields[preCount:], options, voter)
		if !ok {
			report.skip(a.id, line, ErrInvalidBallot)
			continue
		}
		ballots = append(ballots, ballot)
	}
	if err := scanner.Err(); err != nil {
		return report, fmt.Errorf("failed to read ballots at line %d: %w", line, err)
	}

	a.AddBallots(ballots...)
	report.Imported = len(ballots)

	slog.Info("ballots imported", "vote_id", a.id, "imported", report.Imported, "skipped", len(report.Skipped))

	return report, nil
}

// voterIndex finds the constituent a row's pre-value columns refer to
type voterIndex struct {
	byID       map[string]models.Constituent
	byRendered map[string]models.Constituent
	// ambiguous holds renderings shared by several constituents
	ambiguous map[string]bool
}

func newVoterIndex(constituents []models.Constituent, cfg *csvconf.Configuration) voterIndex {
	idx := voterIndex{
		byID:       make(map[string]models.Constituent, len(constituents)),
		byRendered: make(map[string]models.Constituent, len(constituents)),
		ambiguous:  make(map[string]bool),
	}
	for _, c := range constituents {
		idx.byID[c.Identifier] = c
		rendered := cfg.PreValues(c)
		if _, dup := idx.byRendered[rendered]; dup {
			idx.ambiguous[rendered] = true
			continue
		}
		idx.byRendered[rendered] = c
	}
	return idx
}

func (idx voterIndex) lookup(preValues []string, cfg *csvconf.Configuration) (models.Constituent, error) {
	rendered := strings.Join(preValues, ",")
	if idx.ambiguous[rendered] {
		return models.Constituent{}, fmt.Errorf("%w: %q", ErrAmbiguousVoter, rendered)
	}
	if c, ok := idx.byRendered[rendered]; ok {
		return c, nil
	}

	id, err := cfg.ConstituentID(preValues)
	if errors.Is(err, csvconf.ErrAmbiguousIdentifier) {
		return models.Constituent{}, fmt.Errorf("%w: %w", ErrAmbiguousVoter, err)
	}
	id = models.NormalizeIdentifier(id)
	if err != nil || id == "" {
		return models.Constituent{}, ErrMissingIdentifier
	}
	if c, ok := idx.byID[id]; ok {
		return c, nil
	}
	return models.Identified(id), nil
}

func (r *ImportReport) skip(voteID string, line int, reason error) {
	slog.Warn("skipping ballot row", "vote_id", voteID, "line", line, "error", reason)
	r.Skipped = append(r.Skipped, SkippedRow{Line: line, Reason: reason})
}

func checkHeader(header string, cfg *csvconf.Configuration, options []models.VoteOption) error {
	columns := strings.Split(header, ",")
	preCount := cfg.PreValueCount()
	if len(columns) != preCount+len(options) {
		return fmt.Errorf("%w: got %d columns, want %d", ErrHeaderMismatch, len(columns), preCount+len(options))
	}

	if got := strings.Join(columns[:preCount], ","); got != cfg.PreHeaderLine() {
		return fmt.Errorf("%w: leading columns %q, want %q", ErrHeaderMismatch, got, cfg.PreHeaderLine())
	}

	for i, column := range columns[preCount:] {
		name, ok := cfg.OptionName(column)
		if !ok || name != options[i].Name {
			return fmt.Errorf("%w: column %d is %q, want option %q", ErrHeaderMismatch, preCount+i+1, column, options[i].Name)
		}
	}
	return nil
}
