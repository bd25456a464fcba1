// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package csvconf holds the template that decides how rosters and ballots are
written to and read from CSV.

# Templates

A Configuration is built from four parts:

  - preHeaders: leading header columns, plain text only
  - preValues: one template per pre-header, rendered per constituent
  - optionHeader: header template for each option column
  - specialKeys: free-form settings read by the codecs

Placeholders are brace-delimited:

	{constituentID}   identifier, required in at least one pre-value
	{constituentTag}  tag, or empty
	{option name}     option name, exactly once in optionHeader

Templates may not contain tabs, semicolons, newlines, carriage returns or
commas. Braces must open and close in order without nesting.

# Validation

All checks run in New; a Configuration that was built once renders without
error from then on:

	cfg, err := csvconf.New(
		[]string{"Member"},
		[]string{"{constituentID}"},
		"Yes to {option name}",
		map[string]string{csvconf.KeyExportShowTags: "1"},
	)
	if errors.Is(err, csvconf.ErrInvalidOptionHeader) { ... }

# Special Keys

	constituents-export header        full roster header, exactly one comma
	constituents-export show-tags     "1" adds the Tag column to roster exports
	Alternative vote priority suffix  stored for vote kinds that need it
*/
package csvconf
