package detector

import (
	"strings"
	"testing"
)

func TestDetectEmpty(t *testing.T) {
	d := New()
	for _, tokens := range [][]string{nil, {}, {" ", ""}} {
		if got := d.Detect(tokens); got != Unknown {
			t.Errorf("Detect(%q) = %q, want %q", tokens, got, Unknown)
		}
	}
}

func TestDetectEnglish(t *testing.T) {
	d := New()
	tokens := strings.Fields("the weather is very nice today and we are going to walk through the park with our children before dinner")
	if got := d.Detect(tokens); got != "en" {
		t.Errorf("Detect() = %q, want %q", got, "en")
	}
}
