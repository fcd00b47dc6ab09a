package sanitize

import (
	"strings"
	"testing"
)

// --- Filename Tests ---

func TestFilename_ReplacesReservedCharacters(t *testing.T) {
	got := Filename(`a<b>c:d"e/f\g|h?i*j`)
	want := "a_b_c_d_e_f_g_h_i_j"
	if got != want {
		t.Errorf("Filename() = %q, want %q", got, want)
	}
}

func TestFilename_NeverEmitsReservedCharacters(t *testing.T) {
	inputs := []string{
		`<>:"/\|?*`,
		`report: Q3 "final" <v2>`,
		"plain title",
		strings.Repeat(`a?b `, 100),
	}
	for _, in := range inputs {
		got := Filename(in)
		if strings.ContainsAny(got, `<>:"/\|?*`) {
			t.Errorf("Filename(%q) = %q contains reserved characters", in, got)
		}
	}
}

func TestFilename_CollapsesWhitespace(t *testing.T) {
	got := Filename("  a   b\t\tc\n\nd  ")
	want := "a b c d"
	if got != want {
		t.Errorf("Filename() = %q, want %q", got, want)
	}
}

func TestFilename_EmptyInput_Placeholder(t *testing.T) {
	for _, in := range []string{"", "   ", "\t\n"} {
		if got := Filename(in); got != Placeholder {
			t.Errorf("Filename(%q) = %q, want %q", in, got, Placeholder)
		}
	}
}

func TestFilename_TruncatesAtWordBoundary(t *testing.T) {
	// 12 words of 9 characters = 119 characters with separators; the
	// limit of 100 must cut at a space, not mid-word.
	word := strings.Repeat("x", 9)
	title := strings.TrimSpace(strings.Repeat(word+" ", 12))

	got := Filename(title)
	if len(got) > DefaultMaxLength {
		t.Errorf("Filename() length = %d, want <= %d", len(got), DefaultMaxLength)
	}
	if strings.HasSuffix(got, " ") {
		t.Errorf("Filename() = %q has trailing space", got)
	}
	for _, w := range strings.Split(got, " ") {
		if len(w) != 9 {
			t.Errorf("Filename() broke a word: %q", w)
		}
	}
}

func TestFilename_NoSpacesToBreakAt(t *testing.T) {
	title := strings.Repeat("a", 150)
	got := Filename(title)
	if len(got) != DefaultMaxLength {
		t.Errorf("Filename() length = %d, want %d", len(got), DefaultMaxLength)
	}
}

func TestFilename_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"simple title",
		`a<b>c:d"e/f\g|h?i*j`,
		"  lots    of \t whitespace  ",
		strings.Repeat("word ", 50),
		strings.Repeat("b", 200),
		"unicode ✓ title — dash",
	}
	for _, in := range inputs {
		once := Filename(in)
		twice := Filename(once)
		if once != twice {
			t.Errorf("Filename not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestFilenameLimit_CustomLimit(t *testing.T) {
	got := FilenameLimit("one two three four", 9)
	if got != "one two" {
		t.Errorf("FilenameLimit() = %q, want %q", got, "one two")
	}
}
