package resolv

import (
	"testing"

	"github.com/birkland/realpath"
)

func TestStrategyPerCategory(t *testing.T) {
	for _, c := range realpath.Categories() {
		if _, ok := strategies[c]; !ok {
			t.Errorf("no strategy for %s", c)
		}
	}

	if len(strategies) != len(realpath.Categories()) {
		t.Errorf("expected %d strategies, got %d", len(realpath.Categories()), len(strategies))
	}
}

func TestSplitDocumentID(t *testing.T) {
	cases := []struct {
		docID string
		typ   string
		rest  string
		ok    bool
	}{
		{"primary:a/b.jpg", "primary", "a/b.jpg", true},
		{"primary:", "primary", "", true},
		{"image:42", "image", "42", true},
		{"a:b:c", "a", "b:c", true},
		{"42", "42", "", false},
		{"", "", "", false},
	}

	for _, c := range cases {
		typ, rest, ok := splitDocumentID(c.docID)
		if typ != c.typ || rest != c.rest || ok != c.ok {
			t.Errorf("splitDocumentID(%q) = %q, %q, %t", c.docID, typ, rest, ok)
		}
	}
}
