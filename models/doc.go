// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the value types shared by every package.

# Domain Types

  - Constituent: identifier, optional name and optional tag
  - VoteOption: a choice within a vote, compared by value

Constituents are plain comparable structs, so == and map keys cover all
three fields.

# Identifiers

Identifiers are trimmed and lowercased:

	c := models.NewConstituent(" ABC ", "abc", "")
	c.Identifier    // "abc"
	c.Name          // "" (same as identifier)
	c.DisplayName() // "abc"

# Constants

Vote kinds:

	KindYesNo = "yes-no"
*/
package models
