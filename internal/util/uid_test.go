package util

import (
	"strings"
	"testing"
)

func TestGenerateDeterministicUID(t *testing.T) {
	a := GenerateDeterministicUID("study_42")
	b := GenerateDeterministicUID("study_42")
	if a != b {
		t.Fatalf("same input produced different UIDs: %q / %q", a, b)
	}
	if a == GenerateDeterministicUID("study_43") {
		t.Error("different inputs produced identical UIDs")
	}
	if !strings.HasPrefix(a, "2.25.") {
		t.Errorf("UID %q lacks the 2.25 root", a)
	}
	if len(a) > 64 {
		t.Errorf("UID %q exceeds the 64-byte limit", a)
	}
	// Only digits and dots are legal in a UID.
	for _, r := range a {
		if r != '.' && (r < '0' || r > '9') {
			t.Fatalf("UID %q holds illegal rune %q", a, r)
		}
	}
}
