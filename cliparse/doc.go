// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

Config turns into the values the other packages take:

	limits := cfg.Limits()
	csvCfg, err := cfg.CSVConfiguration()

# CLI Flags

	-max-id         Maximum identifier length (default: 128)
	-max-name       Maximum display name length (default: 256)
	-max-tag        Maximum tag length (default: 64)
	-pre-headers    Pre-header columns, separated by | (default: Identifier)
	-pre-values     Pre-value columns, separated by | (default: {constituentID})
	-option-header  Option column template (default: {option name})
	-export-header  Custom roster export header
	-show-tags      Include tags in roster exports

# Environment Variables

Flags fall back to environment variables:

	TALLY_MAX_IDENTIFIER_LENGTH → -max-id
	TALLY_MAX_NAME_LENGTH       → -max-name
	TALLY_MAX_TAG_LENGTH        → -max-tag
	TALLY_PRE_HEADERS           → -pre-headers
	TALLY_PRE_VALUES            → -pre-values
	TALLY_OPTION_HEADER         → -option-header
	TALLY_EXPORT_HEADER         → -export-header
	TALLY_EXPORT_SHOW_TAGS      → -show-tags

Variables missing from the environment are read from .env, or from the file
named by TALLY_ENV_FILE. A missing file is not an error.

CLI flags take precedence over environment variables.

# Validation

ParseFlags rejects non-positive limits with ErrInvalidLimit. Templates are
checked by CSVConfiguration, which wraps the csvconf errors.
*/
package cliparse
