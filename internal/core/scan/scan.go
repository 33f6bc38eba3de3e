// Package scan runs the lexical moderation pass over a transcript.
// Term lists use folded substring matching, PII uses the compiled policy regexes
package scan

import (
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"murmur/internal/core/policy"
)

// Result carries the three lexical signals for one transcript
type Result struct {
	Risky    bool
	PII      bool
	SelfHarm bool

	// Matched rule ids and terms, for logs and the moderation queue
	PIIRules []string
	Terms    []string
}

// Scanner is concurrency safe, one instance serves all submissions
type Scanner struct {
	pack *policy.Pack
}

// pool of fresh fold chains, cases.Fold transformers are not safe for reuse
var foldPool = sync.Pool{
	New: func() any {
		return transform.Chain(norm.NFKC, cases.Fold())
	},
}

// New constructs a Scanner over a compiled policy pack
func New(pack *policy.Pack) *Scanner {
	if pack == nil {
		panic("scan.Scanner requires a non nil policy pack")
	}
	return &Scanner{pack: pack}
}

// Scan evaluates text against the policy lists.
// Empty input returns the zero Result, there is no failure mode
func (s *Scanner) Scan(text string) Result {
	var res Result
	if text == "" {
		return res
	}

	folded := fold(text)

	for _, term := range s.pack.RiskyTerms {
		if strings.Contains(folded, term) {
			res.Risky = true
			res.Terms = append(res.Terms, term)
		}
	}
	for _, phrase := range s.pack.SelfHarmPhrases {
		if strings.Contains(folded, phrase) {
			res.SelfHarm = true
		}
	}

	// PII runs against the raw text, the patterns carry their own case flags
	for _, r := range s.pack.PII {
		if r.Re.MatchString(text) {
			res.PII = true
			res.PIIRules = append(res.PIIRules, r.ID)
		}
	}

	return res
}

// fold lowercases via unicode case folding and maps curly apostrophes to ASCII
// so "can’t" matches the policy's "can't"
func fold(s string) string {
	tr := foldPool.Get().(transform.Transformer)
	out, _, _ := transform.String(tr, s)
	tr.Reset()
	foldPool.Put(tr)
	return strings.Map(func(r rune) rune {
		if r == '’' || r == '‘' {
			return '\''
		}
		return r
	}, out)
}
