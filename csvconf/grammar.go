// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package csvconf

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrDisallowedCharacter = errors.New("disallowed character")
	ErrUnbalancedBraces    = errors.New("unbalanced braces")
	ErrPlaceholderCount    = errors.New("wrong number of placeholders")
)

// rule bounds what a single template field may contain
type rule struct {
	minPlaceholders int
	maxPlaceholders int
	allowComma      bool
}

var (
	preHeaderRule    = rule{minPlaceholders: 0, maxPlaceholders: 0}
	preValueRule     = rule{minPlaceholders: 1, maxPlaceholders: 2}
	optionHeaderRule = rule{minPlaceholders: 1, maxPlaceholders: 1}
	exportHeaderRule = rule{minPlaceholders: 0, maxPlaceholders: 0, allowComma: true}
)

// parseTemplate checks s against r and returns the placeholder names it
// contains, without braces, in order of appearance.
//
// Braces must pair up left to right: "}{" and "{{a}}" are rejected even
// though their counts balance.
func parseTemplate(s string, r rule) ([]string, error) {
	var placeholders []string
	open := -1

	for i, ch := range s {
		switch ch {
		case '\t', ';', '\n', '\r':
			return nil, fmt.Errorf("%w %q at offset %d", ErrDisallowedCharacter, ch, i)
		case ',':
			if !r.allowComma {
				return nil, fmt.Errorf("%w %q at offset %d", ErrDisallowedCharacter, ch, i)
			}
		case '{':
			if open >= 0 {
				return nil, fmt.Errorf("%w: nested '{' at offset %d", ErrUnbalancedBraces, i)
			}
			open = i
		case '}':
			if open < 0 {
				return nil, fmt.Errorf("%w: '}' without '{' at offset %d", ErrUnbalancedBraces, i)
			}
			placeholders = append(placeholders, s[open+1:i])
			open = -1
		}
	}
	if open >= 0 {
		return nil, fmt.Errorf("%w: '{' at offset %d is never closed", ErrUnbalancedBraces, open)
	}

	if n := len(placeholders); n < r.minPlaceholders || n > r.maxPlaceholders {
		return nil, fmt.Errorf("%w: got %d, want %d to %d",
			ErrPlaceholderCount, n, r.minPlaceholders, r.maxPlaceholders)
	}

	return placeholders, nil
}

// hasSingleInteriorComma reports whether s contains exactly one comma that is
// neither its first nor its last character.
func hasSingleInteriorComma(s string) bool {
	return strings.Count(s, ",") == 1 &&
		!strings.HasPrefix(s, ",") &&
		!strings.HasSuffix(s, ",")
}
