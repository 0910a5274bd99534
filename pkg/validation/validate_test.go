package validation

import "testing"

func TestValidFileIdentifier(t *testing.T) {
	cases := map[string]bool{
		"FOO.TXT;1": true,
		"README":    true,
		"foo.txt":   false, // lowercase not in d-characters
		"BAD NAME":  false, // space not permitted
	}
	for id, want := range cases {
		if got := ValidFileIdentifier(id); got != want {
			t.Errorf("ValidFileIdentifier(%q) = %v; want %v", id, got, want)
		}
	}
}

func TestValidDirectoryIdentifier(t *testing.T) {
	if !ValidDirectoryIdentifier("\x00") {
		t.Error("self identifier should be valid")
	}
	if !ValidDirectoryIdentifier("\x01") {
		t.Error("parent identifier should be valid")
	}
	if !ValidDirectoryIdentifier("SUBDIR") {
		t.Error("SUBDIR should be a valid directory identifier")
	}
	if ValidDirectoryIdentifier("sub.dir") {
		t.Error("dotted lowercase name should not be a valid directory identifier")
	}
}
