package media

import (
	"encoding/hex"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSanitizeFilename_ShortNameUnchanged(t *testing.T) {
	if got := SanitizeFilename("photo.png"); got != "photo.png" {
		t.Errorf("SanitizeFilename returned %q, want %q", got, "photo.png")
	}
}

func TestSanitizeFilename_ExactLimitUnchanged(t *testing.T) {
	name := strings.Repeat("a", 20)
	if got := SanitizeFilename(name); got != name {
		t.Errorf("SanitizeFilename returned %q, want %q", got, name)
	}
}

func TestSanitizeFilename_EmptyGetsGeneratedName(t *testing.T) {
	got := SanitizeFilename("")

	if len(got) != 32 {
		t.Fatalf("SanitizeFilename returned %q (%d chars), want a 32 char identifier", got, len(got))
	}
	if _, err := hex.DecodeString(got); err != nil {
		t.Errorf("generated name %q is not hex", got)
	}

	// Fresh identifier per call
	if other := SanitizeFilename(""); other == got {
		t.Errorf("two generated names collided: %q", got)
	}
}

func TestSanitizeFilename_StripsPathSeparators(t *testing.T) {
	if got := SanitizeFilename("a/b\\c.png"); got != "abc.png" {
		t.Errorf("SanitizeFilename returned %q, want %q", got, "abc.png")
	}
}

func TestSanitizeFilename_OnlySeparatorsGetsGeneratedName(t *testing.T) {
	got := SanitizeFilename("///\\\\")

	if len(got) != 32 {
		t.Fatalf("SanitizeFilename returned %q, want a 32 char identifier", got)
	}
	if _, err := hex.DecodeString(got); err != nil {
		t.Errorf("generated name %q is not hex", got)
	}
}

func TestSanitizeFilename_LongNameCompacted(t *testing.T) {
	// 40 characters: head and tail survive, joined by the separator
	name := strings.Repeat("a", 15) + "0123456789" + strings.Repeat("z", 15)

	got := SanitizeFilename(name)

	want := strings.Repeat("a", 9) + "__" + strings.Repeat("z", 9)
	if got != want {
		t.Errorf("SanitizeFilename returned %q, want %q", got, want)
	}
	if utf8.RuneCountInString(got) != 20 {
		t.Errorf("compacted name %q has %d runes, want 20", got, utf8.RuneCountInString(got))
	}
}

func TestSanitizeFilename_LongMultibyteName(t *testing.T) {
	name := strings.Repeat("ф", 40)

	got := SanitizeFilename(name)

	want := strings.Repeat("ф", 9) + "__" + strings.Repeat("ф", 9)
	if got != want {
		t.Errorf("SanitizeFilename returned %q, want %q", got, want)
	}
	if utf8.RuneCountInString(got) != 20 {
		t.Errorf("compacted name %q has %d runes, want 20", got, utf8.RuneCountInString(got))
	}
}

func TestSanitizeFilename_SeparatorStripBeforeLengthCheck(t *testing.T) {
	// 22 characters of which 4 are separators: short enough once stripped
	name := "a/b/c\\d\\" + strings.Repeat("e", 14)

	got := SanitizeFilename(name)

	want := "abcd" + strings.Repeat("e", 14)
	if got != want {
		t.Errorf("SanitizeFilename returned %q, want %q", got, want)
	}
}
