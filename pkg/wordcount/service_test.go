package wordcount

import (
	"reflect"
	"strings"
	"testing"

	"github.com/dtnitsch/wordbucket/pkg/buckets"
)

var excludedStrings = []string{"Den", "lille", "Ole", "og", "paraplyen", "ham", "kender", "alle", "småfolk", "i", "byen"}

var denLilleOle = []string{"Og", "Og", "når", "om", "ost", "morgenen", "solen", "skinner",
	"da", "vågner", "de", "med", "OST", "små", "røde", "kinder",
	"og", "takke", "Gud", "oSt", "kender", "hvad", "ost", "de", "har", "drømt",
	"og", "kysse", "osT", "paraplyen", "i", "paraplyen", "ost", "ømt"}

func TestCreateOutputMapScenario(t *testing.T) {
	s := &Service{Alphabet: "DKM", Render: buckets.DefaultRenderOptions}
	in := []string{"Og", "Og", "morgenen", "de", "de", "kySsE", "paraplyen"}
	excl := []string{"og", "paraplyen"}

	got := s.CreateOutputMap(in, excl)
	want := map[string]string{
		"D": "DE 2\n",
		"K": "KYSSE 1\n",
		"M": "MORGENEN 1\n",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("CreateOutputMap() = %q, want %q", got, want)
	}

	if n := s.CountExcluded(in, excl); n != 2 {
		t.Errorf("CountExcluded() = %d, want 2", n)
	}
}

func TestCreateOutputMapRhyme(t *testing.T) {
	s := NewService()
	out := s.CreateOutputMap(denLilleOle, excludedStrings)

	if len(out) != len([]rune(DefaultAlphabet)) {
		t.Errorf("len(out) = %d, want %d", len(out), len([]rune(DefaultAlphabet)))
	}
	if !strings.Contains(out["M"], "MORGENEN") {
		t.Errorf("out[M] = %q, want MORGENEN", out["M"])
	}
	if strings.TrimSpace(out["L"]) != "" {
		t.Errorf("out[L] = %q, want blank", out["L"])
	}
	if out["O"] != "OM 1\nOST 6\n" {
		t.Errorf("out[O] = %q", out["O"])
	}
	if out["Ø"] != "ØMT 1\n" {
		t.Errorf("out[Ø] = %q", out["Ø"])
	}
	if strings.Contains(out["P"], "PARAPLYEN") {
		t.Errorf("out[P] = %q, excluded word present", out["P"])
	}
}

func TestCreateOutputMapEmptyInput(t *testing.T) {
	s := NewService()
	out := s.CreateOutputMap([]string{}, []string{})
	for k, v := range out {
		if v != "" {
			t.Errorf("out[%q] = %q, want empty", k, v)
		}
	}
	if n := s.CountExcluded([]string{}, []string{}); n != 0 {
		t.Errorf("CountExcluded() = %d, want 0", n)
	}
}

func TestCreateWordcountFiles(t *testing.T) {
	s := NewService()
	out := s.CreateWordcountFiles(denLilleOle, excludedStrings)

	if out[DefaultExcludedCountKey] != "4" {
		t.Errorf("out[%q] = %q, want 4", DefaultExcludedCountKey, out[DefaultExcludedCountKey])
	}
	if len(out) != len([]rune(DefaultAlphabet))+1 {
		t.Errorf("len(out) = %d, want %d", len(out), len([]rune(DefaultAlphabet))+1)
	}

	s.ExcludedCountKey = ""
	out = s.CreateWordcountFiles(denLilleOle, excludedStrings)
	if _, ok := out[DefaultExcludedCountKey]; ok {
		t.Error("excluded count present with empty key")
	}
}

func TestRunKeepsIntermediates(t *testing.T) {
	res := NewService().Run(denLilleOle, excludedStrings)

	if len(res.Words) != 34 {
		t.Errorf("len(Words) = %d, want 34", len(res.Words))
	}
	if res.Words[0] != res.Words[1] {
		t.Errorf("Words[0] = %q, Words[1] = %q, want equal", res.Words[0], res.Words[1])
	}
	if got := len(res.Buckets["M"]); got != 2 {
		t.Errorf("len(Buckets[M]) = %d, want 2", got)
	}
	if _, ok := res.Buckets["L"]; ok {
		t.Error("Buckets[L] present, want absent")
	}
}

func TestRunIsStateless(t *testing.T) {
	s := NewService()
	first := s.CreateOutputMap(denLilleOle, excludedStrings)
	_ = s.CreateOutputMap([]string{"zebra"}, nil)
	second := s.CreateOutputMap(denLilleOle, excludedStrings)
	if !reflect.DeepEqual(first, second) {
		t.Error("repeated runs produced different output")
	}
}
