// Package policy loads and compiles the moderation policy from the embedded policy.json.
// It prepares folded term lists and PII regexes for the scanner, plus the daily
// question pool and the crisis resources payload
package policy

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

//go:embed policy.json
var embedded []byte

type rawPII struct {
	ID      string `json:"id"`
	Pattern string `json:"pattern"`
}

type rawPack struct {
	Version         int              `json:"version"`
	Meta            map[string]any   `json:"meta"`
	RiskyTerms      []string         `json:"risky_terms"`
	SelfHarmPhrases []string         `json:"self_harm_phrases"`
	PIIPatterns     []rawPII         `json:"pii_patterns"`
	Questions       []string         `json:"questions"`
	CrisisResources []CrisisResource `json:"crisis_resources"`
}

// CrisisResource is one entry of the static crisis payload
type CrisisResource struct {
	Name    string `json:"name"`
	Phone   string `json:"phone,omitempty"`
	Text    string `json:"text,omitempty"`
	Website string `json:"website"`
}

// PIIRule pairs a compiled pattern with its stable id
type PIIRule struct {
	ID string
	Re *regexp.Regexp
}

// Pack represents a compiled moderation policy
type Pack struct {
	Version int
	Meta    map[string]any

	// Term lists, lowercased and deduped
	RiskyTerms      []string
	SelfHarmPhrases []string

	// Compiled PII heuristics, 1:1 with policy.json order after sort by id
	PII []PIIRule

	// Daily question pool, order preserved from policy.json
	Questions []string

	// Static crisis resources payload served verbatim
	CrisisResources []CrisisResource
}

// Load returns the compiled pack from the embedded policy.json
func Load() (*Pack, error) {
	var rp rawPack
	if err := json.Unmarshal(embedded, &rp); err != nil {
		return nil, fmt.Errorf("policy: parse policy.json: %w", err)
	}
	if rp.Version != 1 {
		return nil, fmt.Errorf("policy: unsupported policy.json version %d (want 1)", rp.Version)
	}

	p := &Pack{
		Version:         rp.Version,
		Meta:            rp.Meta,
		RiskyTerms:      foldTerms(rp.RiskyTerms),
		SelfHarmPhrases: foldTerms(rp.SelfHarmPhrases),
		Questions:       rp.Questions,
		CrisisResources: rp.CrisisResources,
	}

	if len(p.RiskyTerms) == 0 {
		return nil, fmt.Errorf("policy: empty risky_terms")
	}
	if len(p.SelfHarmPhrases) == 0 {
		return nil, fmt.Errorf("policy: empty self_harm_phrases")
	}
	if len(p.Questions) == 0 {
		return nil, fmt.Errorf("policy: empty question pool")
	}

	for _, r := range rp.PIIPatterns {
		id := strings.TrimSpace(r.ID)
		if id == "" {
			return nil, fmt.Errorf("policy: pii pattern with empty id")
		}
		re, err := regexp.Compile(r.Pattern)
		if err != nil {
			return nil, fmt.Errorf("policy: compile pii %q: %w", id, err)
		}
		p.PII = append(p.PII, PIIRule{ID: id, Re: re})
	}
	if len(p.PII) == 0 {
		return nil, fmt.Errorf("policy: empty pii_patterns")
	}

	// Deterministic iteration for tests/debug
	sort.Slice(p.PII, func(i, j int) bool { return p.PII[i].ID < p.PII[j].ID })

	return p, nil
}

// foldTerms lowercases, trims and dedupes a term list, preserving first-seen order
func foldTerms(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, t := range in {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
