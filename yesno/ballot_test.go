// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package yesno

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/danielhkuo/quickly-tally/models"
	"github.com/danielhkuo/quickly-tally/testutil"
)

func TestFromCSVLine(t *testing.T) {
	options := testutil.CreateTestOptions("A", "B", "C")
	a, b, c := options[0], options[1], options[2]
	voter := models.Identified("alice")

	ballot, ok := Kind{}.FromCSVLine([]string{"1", "0", ""}, options, voter)
	if !ok {
		t.Fatal("FromCSVLine() rejected a valid row")
	}

	want := map[models.VoteOption]Choice{a: Yes, b: No}
	if diff := cmp.Diff(want, ballot.Choices); diff != "" {
		t.Errorf("Choices mismatch (-want +got):\n%s", diff)
	}
	if ballot.Voted(c) {
		t.Error("blank token should leave the option out")
	}
	if ballot.CSVValueFor(a) != "1" || ballot.CSVValueFor(b) != "0" || ballot.CSVValueFor(c) != "" {
		t.Errorf("CSVValueFor() = %q %q %q", ballot.CSVValueFor(a), ballot.CSVValueFor(b), ballot.CSVValueFor(c))
	}
	if ballot.Voter() != voter {
		t.Errorf("Voter() = %+v", ballot.Voter())
	}
}

func TestFromCSVLineRejects(t *testing.T) {
	options := testutil.CreateTestOptions("A", "B")

	tests := []struct {
		name   string
		values []string
	}{
		{"too few", []string{"1"}},
		{"too many", []string{"1", "0", ""}},
		{"unknown token", []string{"1", "yes"}},
		{"padded token", []string{" 1", "0"}},
		{"two", []string{"2", "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ballot, ok := Kind{}.FromCSVLine(tt.values, options, models.Identified("x"))
			if ok {
				t.Errorf("FromCSVLine(%q) accepted the row", tt.values)
			}
			if ballot.Choices != nil {
				t.Error("rejected row returned a partial ballot")
			}
		})
	}
}

func TestCSVValues(t *testing.T) {
	options := testutil.CreateTestOptions("A", "B", "C")
	ballot := NewBallot(models.Identified("bob"), map[models.VoteOption]Choice{
		options[0]: No,
		options[1]: Blank,
		options[2]: Yes,
	})

	if diff := cmp.Diff([]string{"0", "", "1"}, ballot.CSVValues(options)); diff != "" {
		t.Errorf("CSVValues() mismatch (-want +got):\n%s", diff)
	}

	decoded, ok := Kind{}.FromCSVLine(ballot.CSVValues(options), options, ballot.Constituent)
	if !ok {
		t.Fatal("FromCSVLine() rejected encoded values")
	}
	if diff := cmp.Diff(ballot, decoded); diff != "" {
		t.Errorf("decode mismatch (-want +got):\n%s", diff)
	}
}

func TestBlank(t *testing.T) {
	options := testutil.CreateTestOptions("A")
	ballot := Kind{}.Bare(models.Identified("carol"))

	if !ballot.IsBlank() {
		t.Error("bare ballot should be blank")
	}

	ballot.Set(options[0], No)
	if ballot.IsBlank() {
		t.Error("an explicit no is not blank")
	}

	ballot.Set(options[0], Blank)
	if !ballot.IsBlank() || ballot.Voted(options[0]) {
		t.Error("setting Blank should remove the choice")
	}
}

func TestChoiceTokens(t *testing.T) {
	for _, c := range []Choice{Blank, Yes, No} {
		got, ok := ParseToken(c.Token())
		if !ok || got != c {
			t.Errorf("ParseToken(%q) = %v, %v, want %v", c.Token(), got, ok, c)
		}
	}
	if Choice(0) != Blank {
		t.Error("zero Choice must be Blank")
	}
	if Yes.String() != "yes" || No.String() != "no" || Blank.String() != "blank" {
		t.Error("unexpected Choice.String()")
	}
}

func TestSetOnZeroBallot(t *testing.T) {
	options := testutil.CreateTestOptions("A", "B")
	ballot := Ballot{Constituent: models.Identified("alice")}

	if !ballot.IsBlank() {
		t.Error("zero ballot should be blank")
	}
	ballot.Set(options[1], Blank)
	ballot.Set(options[0], Yes)

	if ballot.Choice(options[0]) != Yes || ballot.IsBlank() {
		t.Errorf("Choices = %v", ballot.Choices)
	}
	if diff := cmp.Diff([]string{"1", ""}, ballot.CSVValues(options)); diff != "" {
		t.Errorf("CSVValues() mismatch (-want +got):\n%s", diff)
	}
}

func TestSetRejectsInvalidChoice(t *testing.T) {
	options := testutil.CreateTestOptions("A", "B")
	a, b := options[0], options[1]

	ballot := Kind{}.Bare(models.Identified("alice"))
	ballot.Set(a, No)
	if ballot.Set(a, Choice(5)) {
		t.Error("Set() accepted Choice(5)")
	}
	if ballot.Set(b, Choice(-1)) {
		t.Error("Set() accepted Choice(-1)")
	}
	if ballot.Choice(a) != No || ballot.Voted(b) {
		t.Errorf("invalid choices changed the ballot: %v", ballot.Choices)
	}

	built := NewBallot(models.Identified("bob"), map[models.VoteOption]Choice{a: Choice(7), b: Yes})
	if diff := cmp.Diff(map[models.VoteOption]Choice{b: Yes}, built.Choices); diff != "" {
		t.Errorf("NewBallot() kept an invalid choice (-want +got):\n%s", diff)
	}

	for _, c := range []Choice{Blank, Yes, No} {
		if !c.Valid() {
			t.Errorf("%v should be valid", c)
		}
	}
	if Choice(3).Valid() {
		t.Error("Choice(3) should be invalid")
	}
}
