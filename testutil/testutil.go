// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/danielhkuo/quickly-tally/csvconf"
	"github.com/danielhkuo/quickly-tally/models"
)

// CreateTestConstituents returns bare constituents for each identifier
func CreateTestConstituents(identifiers ...string) []models.Constituent {
	constituents := make([]models.Constituent, len(identifiers))
	for i, id := range identifiers {
		constituents[i] = models.Identified(id)
	}
	return constituents
}

// CreateNumberedConstituents returns n constituents named voter1..voterN
func CreateNumberedConstituents(n int) []models.Constituent {
	constituents := make([]models.Constituent, n)
	for i := range constituents {
		constituents[i] = models.NewConstituent(
			fmt.Sprintf("voter%d", i+1),
			fmt.Sprintf("Voter %d", i+1),
			"",
		)
	}
	return constituents
}

// CreateTestOptions returns one option per name
func CreateTestOptions(names ...string) []models.VoteOption {
	options := make([]models.VoteOption, len(names))
	for i, name := range names {
		options[i] = models.VoteOption{Name: name}
	}
	return options
}

// MustConfig builds a configuration or fails the test
func MustConfig(t *testing.T, preHeaders, preValues []string, optionHeader string, specialKeys map[string]string) *csvconf.Configuration {
	t.Helper()

	cfg, err := csvconf.New(preHeaders, preValues, optionHeader, specialKeys)
	if err != nil {
		t.Fatalf("Failed to build CSV configuration: %v", err)
	}
	return cfg
}

// RosterText builds a roster with the given header and n generated rows
func RosterText(header string, n int) string {
	var b strings.Builder
	b.WriteString(header)
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&b, "\nVoter %d,voter%d", i, i)
	}
	return b.String()
}

// AssertError checks that err matches target
func AssertError(t *testing.T, err, target error) {
	t.Helper()
	if !errors.Is(err, target) {
		t.Errorf("Expected error %v, got %v", target, err)
	}
}
