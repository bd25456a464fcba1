// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package roster

import (
	"cmp"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/danielhkuo/quickly-tally/csvconf"
	"github.com/danielhkuo/quickly-tally/models"
)

// Built-in headers
const (
	HeaderDefault = "Name,Identifier"
	HeaderTagged  = "Name,Identifier,Tag"
)

// MaxLines caps an import, header line included
const MaxLines = 10_000

var (
	ErrForbiddenCharacter  = errors.New("roster contains a tab or semicolon")
	ErrTooManyLines        = errors.New("roster has too many lines")
	ErrMissingHeader       = errors.New("roster is empty")
	ErrInvalidHeader       = errors.New("unrecognized roster header")
	ErrFieldCount          = errors.New("wrong number of fields")
	ErrEmptyIdentifier     = models.ErrEmptyIdentifier
	ErrIdentifierTooLong   = errors.New("identifier is too long")
	ErrNameTooLong         = errors.New("name is too long")
	ErrInvalidTag          = models.ErrInvalidTag
	ErrDuplicateIdentifier = errors.New("duplicate identifier")
)

// RowError reports which line of an import failed
type RowError struct {
	Line int // 1-indexed, header is line 1
	Err  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// Limits bounds the length of imported fields, counted in runes
type Limits struct {
	MaxIdentifierLength int
	MaxNameLength       int
	MaxTagLength        int
}

// DefaultLimits returns the limits used when none are configured
func DefaultLimits() Limits {
	return Limits{
		MaxIdentifierLength: 128,
		MaxNameLength:       256,
		MaxTagLength:        64,
	}
}

// Export renders constituents as a roster, sorted by identifier.
func Export(constituents []models.Constituent, cfg *csvconf.Configuration) string {
	header, custom := cfg.ExportHeader()
	showTags := !custom && cfg.ShowTags()
	if !custom {
		header = HeaderDefault
		if showTags {
			header = HeaderTagged
		}
	}

	sorted := slices.Clone(constituents)
	slices.SortFunc(sorted, func(a, b models.Constituent) int {
		return cmp.Compare(a.Identifier, b.Identifier)
	})

	var b strings.Builder
	b.WriteString(header)
	for _, c := range sorted {
		b.WriteByte('\n')
		b.WriteString(c.DisplayName())
		b.WriteByte(',')
		b.WriteString(c.Identifier)
		if showTags {
			b.WriteByte(',')
			b.WriteString(c.Tag)
		}
	}
	return b.String()
}

// ImportReader reads all of r and passes it to Import
func ImportReader(r io.Reader, cfg *csvconf.Configuration, limits Limits) ([]models.Constituent, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read roster: %w", err)
	}
	return Import(string(data), cfg, limits)
}

// Import parses a roster. Any invalid line fails the whole import.
func Import(text string, cfg *csvconf.Configuration, limits Limits) ([]models.Constituent, error) {
	lines := strings.Split(text, "\n")
	// A final newline does not start another line
	if len(lines) > 1 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) > MaxLines {
		return nil, fmt.Errorf("%w: %d, max %d", ErrTooManyLines, len(lines), MaxLines)
	}
	if strings.ContainsAny(text, "\t;") {
		return nil, ErrForbiddenCharacter
	}

	header := strings.TrimSuffix(lines[0], "\r")
	if header == "" {
		return nil, ErrMissingHeader
	}
	columns, err := headerColumns(header, cfg)
	if err != nil {
		return nil, err
	}

	constituents := make([]models.Constituent, 0, len(lines)-1)
	seen := make(map[string]int, len(lines)-1)
	for i, line := range lines[1:] {
		lineNo := i + 2
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		c, err := parseRow(line, columns, limits)
		if err != nil {
			return nil, &RowError{Line: lineNo, Err: err}
		}
		if first, dup := seen[c.Identifier]; dup {
			return nil, &RowError{
				Line: lineNo,
				Err:  fmt.Errorf("%w %q, first on line %d", ErrDuplicateIdentifier, c.Identifier, first),
			}
		}
		seen[c.Identifier] = lineNo
		constituents = append(constituents, c)
	}

	slog.Info("roster imported", "constituents", len(constituents))

	return constituents, nil
}

// headerColumns returns the column count a header implies. Only the built-in
// tagged header carries a tag column.
func headerColumns(header string, cfg *csvconf.Configuration) (int, error) {
	switch header {
	case HeaderDefault:
		return 2, nil
	case HeaderTagged:
		return 3, nil
	}
	if custom, ok := cfg.ExportHeader(); ok && header == custom {
		return 2, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidHeader, header)
}

func parseRow(line string, columns int, limits Limits) (models.Constituent, error) {
	fields := strings.Split(line, ",")
	if len(fields) != columns {
		return models.Constituent{}, fmt.Errorf("%w: got %d, want %d", ErrFieldCount, len(fields), columns)
	}

	identifier := models.NormalizeIdentifier(fields[1])
	switch {
	case identifier == "":
		return models.Constituent{}, ErrEmptyIdentifier
	case utf8.RuneCountInString(identifier) > limits.MaxIdentifierLength:
		return models.Constituent{}, fmt.Errorf("%w: max %d", ErrIdentifierTooLong, limits.MaxIdentifierLength)
	}

	name := strings.TrimSpace(fields[0])
	if utf8.RuneCountInString(name) > limits.MaxNameLength {
		return models.Constituent{}, fmt.Errorf("%w: max %d", ErrNameTooLong, limits.MaxNameLength)
	}

	var tag string
	if columns == 3 {
		tag = fields[2]
		if err := models.ValidateTag(tag); err != nil {
			return models.Constituent{}, err
		}
		if utf8.RuneCountInString(tag) > limits.MaxTagLength {
			return models.Constituent{}, fmt.Errorf("%w: longer than %d", ErrInvalidTag, limits.MaxTagLength)
		}
	}

	return models.NewConstituent(identifier, name, tag), nil
}
