// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package roster imports and exports constituent lists as CSV.

# Format

The first line is one of:

	Name,Identifier
	Name,Identifier,Tag
	<custom header from csvconf.KeyExportHeader>

Every following line has the header's column count. Tabs and semicolons are
rejected anywhere in the file, and a file may hold at most MaxLines lines
including the header.

# Import

	constituents, err := roster.Import(text, cfg, roster.DefaultLimits())

Identifiers are trimmed and lowercased, names are trimmed and dropped when
they equal the identifier. The first bad line aborts the import; the
returned error is a *RowError carrying the line number and wrapping one of
the Err* sentinels.

# Export

	text := roster.Export(constituents, cfg)

Lines are sorted by identifier. The tag column is written only when
csvconf.KeyExportShowTags is "1" and no custom header is set.
*/
package roster
