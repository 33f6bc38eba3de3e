// Package decision combines lexical and classifier signals into a moderation verdict
package decision

import "murmur/internal/core/scan"

// Flag values recorded on responses and queue entries
const (
	FlagPII             = "PII_DETECTED"
	FlagHarmful         = "HARMFUL_CONTENT"
	FlagSelfHarm        = "SELF_HARM_RISK"
	FlagModerationError = "MODERATION_ERROR"
)

// Rejection reasons surfaced to callers
const (
	ReasonPII     = "Personal information detected"
	ReasonHarmful = "Content violates community guidelines"
	ReasonError   = "Unable to process content"
)

// Classification is the external classifier signal.
// Category names the highest scoring category when flagged
type Classification struct {
	Flagged  bool
	Category string
}

// Verdict is the moderation outcome for one submission
type Verdict struct {
	Approved  bool
	Flags     []string
	Escalated bool
	Reason    string
}

// Decide applies the fixed precedence over the joined signals.
// clsOK false means the classifier produced no signal and must not reject on its own.
// PII rejects first, harmful content rejects and overwrites the reason,
// self-harm escalates independently of approval
func Decide(sc scan.Result, cls Classification, clsOK bool) Verdict {
	v := Verdict{Approved: true, Flags: []string{}}

	if sc.PII {
		v.Approved = false
		v.Flags = append(v.Flags, FlagPII)
		v.Reason = ReasonPII
	}

	if sc.Risky || (clsOK && cls.Flagged) {
		v.Approved = false
		v.Flags = append(v.Flags, FlagHarmful)
		v.Reason = ReasonHarmful
	}

	if sc.SelfHarm {
		v.Escalated = true
		v.Flags = append(v.Flags, FlagSelfHarm)
	}

	return v
}

// ErrorVerdict is the fail-closed outcome used when the moderation attempt itself fails
func ErrorVerdict() Verdict {
	return Verdict{
		Approved:  false,
		Flags:     []string{FlagModerationError},
		Escalated: false,
		Reason:    ReasonError,
	}
}
