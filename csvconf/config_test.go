// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package csvconf

import (
	"errors"
	"testing"

	"github.com/danielhkuo/quickly-tally/models"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name         string
		preHeaders   []string
		preValues    []string
		optionHeader string
		specialKeys  map[string]string
		wantErr      error
	}{
		{
			name:         "default shape",
			preHeaders:   []string{"Identifier"},
			preValues:    []string{"{constituentID}"},
			optionHeader: "{option name}",
		},
		{
			name:         "tag and identifier",
			preHeaders:   []string{"Member", "Group"},
			preValues:    []string{"{constituentID}", "{constituentTag}"},
			optionHeader: "Yes to {option name}?",
		},
		{
			name:         "identifier and tag in one column",
			preHeaders:   []string{"Who"},
			preValues:    []string{"{constituentTag}-{constituentID}"},
			optionHeader: "{option name}",
		},
		{
			name:         "header count differs",
			preHeaders:   []string{"A", "B"},
			preValues:    []string{"{constituentID}"},
			optionHeader: "{option name}",
			wantErr:      ErrShapeMismatch,
		},
		{
			name:         "missing identifier placeholder",
			preHeaders:   []string{"Tag"},
			preValues:    []string{"{constituentTag}"},
			optionHeader: "{option name}",
			wantErr:      ErrMissingIdentifierPlaceholder,
		},
		{
			name:         "pre-value without placeholder",
			preHeaders:   []string{"ID", "Fixed"},
			preValues:    []string{"{constituentID}", "1"},
			optionHeader: "{option name}",
			wantErr:      ErrInvalidPreValue,
		},
		{
			name:         "pre-header with placeholder",
			preHeaders:   []string{"{constituentID}"},
			preValues:    []string{"{constituentID}"},
			optionHeader: "{option name}",
			wantErr:      ErrInvalidPreHeader,
		},
		{
			name:         "tab in pre-header",
			preHeaders:   []string{"Iden\ttifier"},
			preValues:    []string{"{constituentID}"},
			optionHeader: "{option name}",
			wantErr:      ErrInvalidPreHeader,
		},
		{
			name:         "semicolon in pre-value",
			preHeaders:   []string{"Identifier"},
			preValues:    []string{"{constituentID};"},
			optionHeader: "{option name}",
			wantErr:      ErrInvalidPreValue,
		},
		{
			name:         "comma in pre-value",
			preHeaders:   []string{"Identifier"},
			preValues:    []string{"{constituentID},x"},
			optionHeader: "{option name}",
			wantErr:      ErrInvalidPreValue,
		},
		{
			name:         "option header without placeholder",
			preHeaders:   []string{"Identifier"},
			preValues:    []string{"{constituentID}"},
			optionHeader: "Option",
			wantErr:      ErrInvalidOptionHeader,
		},
		{
			name:         "option header with two placeholders",
			preHeaders:   []string{"Identifier"},
			preValues:    []string{"{constituentID}"},
			optionHeader: "{option name} {option name}",
			wantErr:      ErrInvalidOptionHeader,
		},
		{
			name:         "option header with wrong placeholder",
			preHeaders:   []string{"Identifier"},
			preValues:    []string{"{constituentID}"},
			optionHeader: "{constituentID}",
			wantErr:      ErrInvalidOptionHeader,
		},
		{
			name:         "newline in option header",
			preHeaders:   []string{"Identifier"},
			preValues:    []string{"{constituentID}"},
			optionHeader: "{option name}\n",
			wantErr:      ErrInvalidOptionHeader,
		},
		{
			name:         "valid export header",
			preHeaders:   []string{"Identifier"},
			preValues:    []string{"{constituentID}"},
			optionHeader: "{option name}",
			specialKeys:  map[string]string{KeyExportHeader: "Full name,Username"},
		},
		{
			name:         "export header without comma",
			preHeaders:   []string{"Identifier"},
			preValues:    []string{"{constituentID}"},
			optionHeader: "{option name}",
			specialKeys:  map[string]string{KeyExportHeader: "Full name"},
			wantErr:      ErrInvalidExportHeader,
		},
		{
			name:         "export header with two commas",
			preHeaders:   []string{"Identifier"},
			preValues:    []string{"{constituentID}"},
			optionHeader: "{option name}",
			specialKeys:  map[string]string{KeyExportHeader: "a,b,c"},
			wantErr:      ErrInvalidExportHeader,
		},
		{
			name:         "export header with leading comma",
			preHeaders:   []string{"Identifier"},
			preValues:    []string{"{constituentID}"},
			optionHeader: "{option name}",
			specialKeys:  map[string]string{KeyExportHeader: ",Username"},
			wantErr:      ErrInvalidExportHeader,
		},
		{
			name:         "export header with semicolon",
			preHeaders:   []string{"Identifier"},
			preValues:    []string{"{constituentID}"},
			optionHeader: "{option name}",
			specialKeys:  map[string]string{KeyExportHeader: "Name;x,Username"},
			wantErr:      ErrInvalidExportHeader,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := New(tt.preHeaders, tt.preValues, tt.optionHeader, tt.specialKeys)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("New() error = %v", err)
				}
				if cfg == nil {
					t.Fatal("New() returned nil configuration")
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("New() error = %v, want %v", err, tt.wantErr)
			}
			if cfg != nil {
				t.Error("New() returned a configuration alongside an error")
			}
		})
	}
}

func TestParseTemplate(t *testing.T) {
	loose := rule{minPlaceholders: 0, maxPlaceholders: 3}

	tests := []struct {
		name    string
		input   string
		want    int
		wantErr error
	}{
		{"plain", "abc", 0, nil},
		{"two placeholders", "{a}-{b}", 2, nil},
		{"close before open", "}{", 0, ErrUnbalancedBraces},
		{"nested", "{{a}}", 0, ErrUnbalancedBraces},
		{"unclosed", "{a", 0, ErrUnbalancedBraces},
		{"stray close", "a}", 0, ErrUnbalancedBraces},
		{"carriage return", "a\rb", 0, ErrDisallowedCharacter},
		{"too many", "{a}{b}{c}{d}", 0, ErrPlaceholderCount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseTemplate(tt.input, loose)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("parseTemplate(%q) error = %v, want %v", tt.input, err, tt.wantErr)
			}
			if err == nil && len(got) != tt.want {
				t.Errorf("parseTemplate(%q) = %v, want %d placeholders", tt.input, got, tt.want)
			}
		})
	}
}

func TestPreValues(t *testing.T) {
	cfg, err := New(
		[]string{"Member", "Group", "Note"},
		[]string{"{constituentID}", "{constituentTag}", "{other}"},
		"{option name}",
		nil,
	)
	if err != nil {
		t.Fatal(err)
	}

	got := cfg.PreValues(models.NewConstituent("Alice", "Alice A.", "board"))
	if want := "alice,board,{other}"; got != want {
		t.Errorf("PreValues() = %q, want %q", got, want)
	}

	got = cfg.PreValues(models.Identified("bob"))
	if want := "bob,,{other}"; got != want {
		t.Errorf("PreValues() without tag = %q, want %q", got, want)
	}

	if got := cfg.PreHeaderLine(); got != "Member,Group,Note" {
		t.Errorf("PreHeaderLine() = %q", got)
	}
}

func TestOptionHeaders(t *testing.T) {
	cfg, err := New([]string{"ID"}, []string{"{constituentID}"}, "Yes to {option name}?", nil)
	if err != nil {
		t.Fatal(err)
	}

	got := cfg.OptionHeaders("A", "B")
	if want := ",Yes to A?,Yes to B?"; got != want {
		t.Errorf("OptionHeaders() = %q, want %q", got, want)
	}
	if got := cfg.OptionHeaders(); got != "" {
		t.Errorf("OptionHeaders() with no options = %q, want empty", got)
	}

	prefix, suffix := cfg.OptionHeaderSplit()
	if prefix != "Yes to " || suffix != "?" {
		t.Errorf("OptionHeaderSplit() = %q, %q", prefix, suffix)
	}

	name, ok := cfg.OptionName("Yes to Budget 2025?")
	if !ok || name != "Budget 2025" {
		t.Errorf("OptionName() = %q, %v", name, ok)
	}
	if _, ok := cfg.OptionName("No to Budget?"); ok {
		t.Error("OptionName() accepted a header with the wrong prefix")
	}
	if _, ok := cfg.OptionName("Yes to"); ok {
		t.Error("OptionName() accepted a header shorter than the template")
	}
}

func TestConstituentID(t *testing.T) {
	cfg, err := New(
		[]string{"Group", "Who"},
		[]string{"{constituentTag}", "id:{constituentTag}/{constituentID}."},
		"{option name}",
		nil,
	)
	if err != nil {
		t.Fatal(err)
	}

	c := models.NewConstituent("carol", "", "staff")
	rendered := cfg.PreValues(c)
	if rendered != "staff,id:staff/carol." {
		t.Fatalf("PreValues() = %q", rendered)
	}

	id, err := cfg.ConstituentID([]string{"staff", "id:staff/carol."})
	if err != nil || id != "carol" {
		t.Errorf("ConstituentID() = %q, %v", id, err)
	}
	if _, err := cfg.ConstituentID([]string{"staff", "carol"}); !errors.Is(err, ErrNoIdentifier) {
		t.Errorf("ConstituentID() without the literal parts: got %v", err)
	}
	if _, err := cfg.ConstituentID([]string{"carol"}); !errors.Is(err, ErrNoIdentifier) {
		t.Errorf("ConstituentID() with the wrong column count: got %v", err)
	}
}

func TestConstituentIDAmbiguous(t *testing.T) {
	tests := []struct {
		name     string
		template string
		value    string
		want     string
		wantErr  error
	}{
		{"tag first", "{constituentTag}-{constituentID}", "staff-bob", "bob", nil},
		{"tag first with separator in tag", "{constituentTag}-{constituentID}", "a-b-bob", "", ErrAmbiguousIdentifier},
		{"tag first with separator in id", "{constituentTag}-{constituentID}", "a-b-c", "", ErrAmbiguousIdentifier},
		{"tag first empty tag", "{constituentTag}-{constituentID}", "-bob", "bob", nil},
		{"id first", "{constituentID}/{constituentTag}", "bob/x/y", "", ErrAmbiguousIdentifier},
		{"id only", "{constituentID}", "a-b-bob", "a-b-bob", nil},
		{"literal prefix", "m-{constituentID}", "m-a-b", "a-b", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := New([]string{"Who"}, []string{tt.template}, "{option name}", nil)
			if err != nil {
				t.Fatal(err)
			}

			id, err := cfg.ConstituentID([]string{tt.value})
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("ConstituentID(%q) error = %v, want %v", tt.value, err, tt.wantErr)
				}
				return
			}
			if err != nil || id != tt.want {
				t.Errorf("ConstituentID(%q) = %q, %v, want %q", tt.value, id, err, tt.want)
			}
		})
	}
}

func TestSpecialKeys(t *testing.T) {
	keys := map[string]string{
		KeyExportShowTags:        "1",
		KeyAlternativeVoteSuffix: " (priority)",
	}
	cfg, err := New([]string{"ID"}, []string{"{constituentID}"}, "{option name}", keys)
	if err != nil {
		t.Fatal(err)
	}

	// Later changes to the caller's map must not leak in.
	keys[KeyExportShowTags] = "0"

	if !cfg.ShowTags() {
		t.Error("ShowTags() = false, want true")
	}
	if v, ok := cfg.SpecialKey(KeyAlternativeVoteSuffix); !ok || v != " (priority)" {
		t.Errorf("SpecialKey() = %q, %v", v, ok)
	}
	if _, ok := cfg.ExportHeader(); ok {
		t.Error("ExportHeader() reported a header that was never set")
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.PreHeaderLine() != "Identifier" {
		t.Errorf("PreHeaderLine() = %q", cfg.PreHeaderLine())
	}
	if cfg.PreValueCount() != 1 {
		t.Errorf("PreValueCount() = %d", cfg.PreValueCount())
	}
	if cfg.ShowTags() {
		t.Error("default configuration should not show tags")
	}
}
