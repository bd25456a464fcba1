// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package csvconf

import (
	"errors"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strings"

	"github.com/danielhkuo/quickly-tally/models"
)

// Placeholders recognized in templates
const (
	PlaceholderConstituentID  = "{constituentID}"
	PlaceholderConstituentTag = "{constituentTag}"
	PlaceholderOptionName     = "{option name}"
)

// Special keys
const (
	KeyExportHeader          = "constituents-export header"
	KeyExportShowTags        = "constituents-export show-tags"
	KeyAlternativeVoteSuffix = "Alternative vote priority suffix"
)

var (
	ErrShapeMismatch                = errors.New("pre-headers and pre-values differ in length")
	ErrInvalidPreHeader             = errors.New("invalid pre-header")
	ErrInvalidPreValue              = errors.New("invalid pre-value")
	ErrMissingIdentifierPlaceholder = errors.New("pre-values lack " + PlaceholderConstituentID)
	ErrInvalidOptionHeader          = errors.New("invalid option header")
	ErrInvalidExportHeader          = errors.New("invalid constituents-export header")

	ErrNoIdentifier        = errors.New("pre-values do not match the identifier template")
	ErrAmbiguousIdentifier = errors.New("pre-values match more than one identifier")
)

// Configuration is a validated template for rendering and parsing CSV rows.
// It never changes after New returns, so it can be shared between goroutines.
type Configuration struct {
	preHeaders   []string
	preValues    []string
	optionHeader string
	specialKeys  map[string]string

	// idColumn is the first pre-value holding the identifier placeholder.
	// The two patterns give the shortest and longest identifier it can hold.
	idColumn   int
	idShortest *regexp.Regexp
	idLongest  *regexp.Regexp
}

// New validates the templates and returns a Configuration.
func New(preHeaders, preValues []string, optionHeader string, specialKeys map[string]string) (*Configuration, error) {
	if len(preHeaders) != len(preValues) {
		return nil, fmt.Errorf("%w: %d headers, %d values", ErrShapeMismatch, len(preHeaders), len(preValues))
	}

	for i, h := range preHeaders {
		if _, err := parseTemplate(h, preHeaderRule); err != nil {
			return nil, fmt.Errorf("%w %d: %w", ErrInvalidPreHeader, i, err)
		}
	}

	idColumn := -1
	for i, v := range preValues {
		names, err := parseTemplate(v, preValueRule)
		if err != nil {
			return nil, fmt.Errorf("%w %d: %w", ErrInvalidPreValue, i, err)
		}
		if idColumn < 0 && slices.Contains(names, trimBraces(PlaceholderConstituentID)) {
			idColumn = i
		}
	}
	if idColumn < 0 {
		return nil, ErrMissingIdentifierPlaceholder
	}

	names, err := parseTemplate(optionHeader, optionHeaderRule)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidOptionHeader, err)
	}
	if names[0] != trimBraces(PlaceholderOptionName) {
		return nil, fmt.Errorf("%w: placeholder must be %s, got {%s}", ErrInvalidOptionHeader, PlaceholderOptionName, names[0])
	}

	if header, ok := specialKeys[KeyExportHeader]; ok {
		if !hasSingleInteriorComma(header) {
			return nil, fmt.Errorf("%w: need exactly one comma between two columns", ErrInvalidExportHeader)
		}
		if _, err := parseTemplate(header, exportHeaderRule); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidExportHeader, err)
		}
	}

	return &Configuration{
		preHeaders:   slices.Clone(preHeaders),
		preValues:    slices.Clone(preValues),
		optionHeader: optionHeader,
		specialKeys:  maps.Clone(specialKeys),
		idColumn:     idColumn,
		idShortest:   identifierPattern(preValues[idColumn], false),
		idLongest:    identifierPattern(preValues[idColumn], true),
	}, nil
}

// Default returns the built-in configuration: one "Identifier" column and
// option names used verbatim as headers.
func Default() *Configuration {
	cfg, err := New([]string{"Identifier"}, []string{PlaceholderConstituentID}, PlaceholderOptionName, nil)
	if err != nil {
		panic(err)
	}
	return cfg
}

// PreHeaders returns a copy of the pre-header columns
func (c *Configuration) PreHeaders() []string {
	return slices.Clone(c.preHeaders)
}

// PreHeaderLine joins the pre-headers with commas
func (c *Configuration) PreHeaderLine() string {
	return strings.Join(c.preHeaders, ",")
}

// PreValues renders the pre-value columns for one constituent, joined with
// commas. Placeholders other than the identifier and tag are left as is.
func (c *Configuration) PreValues(constituent models.Constituent) string {
	r := strings.NewReplacer(
		PlaceholderConstituentID, constituent.Identifier,
		PlaceholderConstituentTag, constituent.Tag,
	)
	values := make([]string, len(c.preValues))
	for i, v := range c.preValues {
		values[i] = r.Replace(v)
	}
	return strings.Join(values, ",")
}

// OptionHeaders renders one comma-prefixed column header per option name.
func (c *Configuration) OptionHeaders(names ...string) string {
	var b strings.Builder
	for _, name := range names {
		b.WriteByte(',')
		b.WriteString(strings.ReplaceAll(c.optionHeader, PlaceholderOptionName, name))
	}
	return b.String()
}

// OptionHeaderSplit returns the literal text before and after the option name
// placeholder in the option header template.
func (c *Configuration) OptionHeaderSplit() (prefix, suffix string) {
	prefix, suffix, _ = strings.Cut(c.optionHeader, PlaceholderOptionName)
	return prefix, suffix
}

// OptionName recovers the option name from a rendered option header.
func (c *Configuration) OptionName(header string) (string, bool) {
	prefix, suffix := c.OptionHeaderSplit()
	if len(header) < len(prefix)+len(suffix) ||
		!strings.HasPrefix(header, prefix) ||
		!strings.HasSuffix(header, suffix) {
		return "", false
	}
	return header[len(prefix) : len(header)-len(suffix)], true
}

// PreValueCount is the number of leading columns rendered by PreValues
func (c *Configuration) PreValueCount() int {
	return len(c.preValues)
}

// ConstituentID recovers the identifier from the rendered pre-value columns
// of one row. When the tag placeholder shares a column with the identifier,
// a tag containing the literal text between them can make the split
// ambiguous; that returns ErrAmbiguousIdentifier.
func (c *Configuration) ConstituentID(preValues []string) (string, error) {
	if len(preValues) != len(c.preValues) {
		return "", fmt.Errorf("%w: got %d columns, want %d", ErrNoIdentifier, len(preValues), len(c.preValues))
	}
	value := preValues[c.idColumn]
	shortest := c.idShortest.FindStringSubmatch(value)
	if shortest == nil {
		return "", fmt.Errorf("%w: %q", ErrNoIdentifier, value)
	}
	if longest := c.idLongest.FindStringSubmatch(value); longest[1] != shortest[1] {
		return "", fmt.Errorf("%w: %q could be %q or %q", ErrAmbiguousIdentifier, value, shortest[1], longest[1])
	}
	return shortest[1], nil
}

// SpecialKey returns the value stored under key
func (c *Configuration) SpecialKey(key string) (string, bool) {
	v, ok := c.specialKeys[key]
	return v, ok
}

// ExportHeader returns the custom roster header, if one is configured
func (c *Configuration) ExportHeader() (string, bool) {
	return c.SpecialKey(KeyExportHeader)
}

// ShowTags reports whether roster exports include the tag column
func (c *Configuration) ShowTags() bool {
	v, _ := c.SpecialKey(KeyExportShowTags)
	return v == "1"
}

func trimBraces(placeholder string) string {
	return strings.TrimSuffix(strings.TrimPrefix(placeholder, "{"), "}")
}

// identifierPattern matches a rendered pre-value and captures the identifier.
// The tag placeholder matches any text; other placeholders are literal.
// greedy makes every placeholder match as much as it can.
func identifierPattern(template string, greedy bool) *regexp.Regexp {
	wildcard := ".*?"
	if greedy {
		wildcard = ".*"
	}
	var b strings.Builder
	b.WriteString("^")
	captured := false
	rest := template
	for rest != "" {
		start := strings.IndexByte(rest, '{')
		if start < 0 {
			b.WriteString(regexp.QuoteMeta(rest))
			break
		}
		end := strings.IndexByte(rest[start:], '}') + start
		b.WriteString(regexp.QuoteMeta(rest[:start]))

		switch token := rest[start : end+1]; {
		case token == PlaceholderConstituentID && !captured:
			b.WriteString("(" + wildcard + ")")
			captured = true
		case token == PlaceholderConstituentID, token == PlaceholderConstituentTag:
			b.WriteString(wildcard)
		default:
			b.WriteString(regexp.QuoteMeta(token))
		}
		rest = rest[end+1:]
	}
	b.WriteString("$")
	return regexp.MustCompile(b.String())
}
