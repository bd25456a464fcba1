// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Vote kind type names
const (
	KindYesNo = "yes-no"
)

var (
	ErrEmptyIdentifier = errors.New("identifier is empty")
	ErrInvalidTag      = errors.New("invalid tag")
)

// Domain types

// Constituent is a participant eligible to cast a ballot.
// Empty Name and Tag mean "not set".
type Constituent struct {
	Identifier string `json:"identifier"`
	Name       string `json:"name,omitempty"`
	Tag        string `json:"tag,omitempty"`
}

// NewConstituent builds a normalized constituent. The name is dropped when it
// matches the normalized identifier. Nothing is validated; see Validate.
func NewConstituent(identifier, name, tag string) Constituent {
	id := NormalizeIdentifier(identifier)
	name = strings.TrimSpace(name)
	if name == id {
		name = ""
	}
	return Constituent{
		Identifier: id,
		Name:       name,
		Tag:        tag,
	}
}

// Identified returns a constituent with only an identifier.
func Identified(identifier string) Constituent {
	return NewConstituent(identifier, "", "")
}

// Validate checks the identifier is non-empty and the tag does not start
// with '-'. Length limits are configurable and enforced by the roster codec.
func (c Constituent) Validate() error {
	if c.Identifier == "" {
		return ErrEmptyIdentifier
	}
	return ValidateTag(c.Tag)
}

// ValidateTag rejects tags starting with '-'
func ValidateTag(tag string) error {
	if strings.HasPrefix(tag, "-") {
		return fmt.Errorf("%w: %q starts with '-'", ErrInvalidTag, tag)
	}
	return nil
}

// DisplayName returns the name if present, otherwise the identifier
func (c Constituent) DisplayName() string {
	if c.Name != "" {
		return c.Name
	}
	return c.Identifier
}

// NormalizeIdentifier trims surrounding whitespace and lowercases.
func NormalizeIdentifier(identifier string) string {
	// Casers are stateful; one per call keeps this safe for concurrent use.
	return cases.Lower(language.Und).String(strings.TrimSpace(identifier))
}

// VoteOption is one choice within a vote. It is used as a map key and for
// display text only.
type VoteOption struct {
	Name     string `json:"name"`
	Subtitle string `json:"subtitle,omitempty"`
}

func (o VoteOption) String() string {
	return o.Name
}

// OptionNames returns the display names of options, in order.
func OptionNames(options []VoteOption) []string {
	names := make([]string, len(options))
	for i, o := range options {
		names[i] = o.Name
	}
	return names
}
