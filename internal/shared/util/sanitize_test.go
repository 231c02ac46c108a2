package util

import "testing"

func TestSanitizeFileName(t *testing.T) {
	got, err := SanitizeFileName("dir/passport scan.pdf")
	if err != nil {
		t.Fatalf("SanitizeFileName: %v", err)
	}
	if got != "dir_passport scan.pdf" {
		t.Fatalf("unexpected sanitized name: %q", got)
	}

	if _, err := SanitizeFileName("../../etc/passwd"); err == nil {
		t.Fatalf("expected traversal rejection")
	}
	if _, err := SanitizeFileName("   "); err == nil {
		t.Fatalf("expected empty name rejection")
	}
}
