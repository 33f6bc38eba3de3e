package policy

import "testing"

func TestLoadCompiles(t *testing.T) {
	p, err := Load()
	if err != nil {
		t.Fatalf("Load(): %v", err)
	}
	if p.Version == 0 {
		t.Fatalf("expected non-zero version")
	}
	if len(p.PII) == 0 {
		t.Fatalf("expected compiled pii rules")
	}
	for _, r := range p.PII {
		if r.Re == nil {
			t.Fatalf("nil compiled regexp for %q", r.ID)
		}
	}
	if len(p.Questions) < 10 {
		t.Fatalf("question pool too small: %d", len(p.Questions))
	}
	if len(p.CrisisResources) == 0 {
		t.Fatalf("expected crisis resources")
	}
}

func TestLoad_TermsFolded(t *testing.T) {
	p, err := Load()
	if err != nil {
		t.Fatalf("Load(): %v", err)
	}
	has := func(list []string, term string) bool {
		for _, s := range list {
			if s == term {
				return true
			}
		}
		return false
	}
	if !has(p.RiskyTerms, "suicide") {
		t.Fatalf("risky term 'suicide' missing")
	}
	if !has(p.SelfHarmPhrases, "better off dead") {
		t.Fatalf("self-harm phrase 'better off dead' missing")
	}
	for _, s := range p.RiskyTerms {
		if s != "" && s[0] >= 'A' && s[0] <= 'Z' {
			t.Fatalf("risky term not folded: %q", s)
		}
	}
}

func TestLoad_PIIRulesMatchKnownShapes(t *testing.T) {
	p, err := Load()
	if err != nil {
		t.Fatalf("Load(): %v", err)
	}
	byID := make(map[string]PIIRule, len(p.PII))
	for _, r := range p.PII {
		byID[r.ID] = r
	}

	cases := []struct {
		id   string
		text string
	}{
		{"phone", "call me at 555-867-5309 tonight"},
		{"ssn", "my ssn is 123-45-6789"},
		{"email", "reach me at someone@example.com please"},
		{"address", "I live at 42 Maple Street near the park"},
	}
	for _, tc := range cases {
		r, ok := byID[tc.id]
		if !ok {
			t.Fatalf("pii rule %q missing", tc.id)
		}
		if !r.Re.MatchString(tc.text) {
			t.Fatalf("pii rule %q did not match %q", tc.id, tc.text)
		}
	}

	if byID["phone"].Re.MatchString("the year 2024 was fine") {
		t.Fatalf("phone rule matched plain text")
	}
}

func TestFoldTerms_Dedupes(t *testing.T) {
	got := foldTerms([]string{" Hate ", "hate", "", "Violence"})
	if len(got) != 2 {
		t.Fatalf("expected 2 terms, got %v", got)
	}
	if got[0] != "hate" || got[1] != "violence" {
		t.Fatalf("unexpected folding: %v", got)
	}
}
