package models

// ScoreSet maps criterion name to a user score in [0,5].
type ScoreSet map[string]int

// Clone returns an independent copy of the score set.
func (s ScoreSet) Clone() ScoreSet {
	out := make(ScoreSet, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// CompatibilityResult is one typology's compatibility percentage. Derived per
// evaluation, never stored.
type CompatibilityResult struct {
	Typology   Typology `json:"typology"`
	Percentage float64  `json:"percentage"`
}

// Gap is one entry of the ranked gap list for a typology: the score a
// criterion is leaving on the table, weighted.
type Gap struct {
	Criterion string  `json:"criterion"`
	Impact    float64 `json:"impact"`
}

// Verdict bands the portfolio versatility score.
type Verdict string

const (
	// VerdictUniversal marks a design that pivots markets without invasive work.
	VerdictUniversal Verdict = "universal"
	// VerdictLimited marks a design optimized for specific types, invasive for others.
	VerdictLimited Verdict = "limited"
	// VerdictStatic marks a design at high risk of functional obsolescence.
	VerdictStatic Verdict = "static"
)

// Evaluation is the full outcome of one user interaction: every typology's
// compatibility, the gap ranking for the target, the recommended fallback
// typology, and the portfolio-level verdict.
type Evaluation struct {
	SessionID       string                `json:"sessionId"`
	Target          Typology              `json:"target"`
	Compatibilities []CompatibilityResult `json:"compatibilities"`
	Gaps            []Gap                 `json:"gaps"`
	BestAlternative Typology              `json:"bestAlternative"`
	Versatility     float64               `json:"versatility"`
	Verdict         Verdict               `json:"verdict"`
	Degraded        bool                  `json:"degraded,omitempty"`
	Warning         string                `json:"warning,omitempty"`
}
