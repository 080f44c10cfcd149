// internal/scoring/engine.go
package scoring

import (
	"sort"

	"adaptive-chassis/internal/models"
)

// MaxScore is the top of the slider range.
const MaxScore = 5

// Engine computes typology compatibility and gap rankings. Pure computation,
// no I/O; one instance serves every session.
type Engine struct {
	defaultScore int
}

func NewEngine(defaultScore int) *Engine {
	return &Engine{defaultScore: clampScore(defaultScore)}
}

// DefaultScore returns the score assumed for criteria the user has not
// touched yet.
func (e *Engine) DefaultScore() int {
	return e.defaultScore
}

// score reads a criterion's score, substituting the default for missing
// entries and clamping to the slider range. Lookups never fail.
func (e *Engine) score(scores models.ScoreSet, criterion string) int {
	v, ok := scores[criterion]
	if !ok {
		return e.defaultScore
	}
	return clampScore(v)
}

// Compatibility sums (score/5)*weight over all criteria for one typology.
//
// The raw weighted sum is the percentage: sheet weights are expected to sum
// to 100 per typology, and a drifting sheet shows up as a ceiling above or
// below 100 rather than being silently renormalized. WeightSum exposes the
// actual sum for callers that want to flag drift.
func (e *Engine) Compatibility(t models.Typology, scores models.ScoreSet, criteria []models.Criterion) float64 {
	var total float64
	for _, c := range criteria {
		total += float64(e.score(scores, c.Name)) / MaxScore * c.Weight(t)
	}
	return total
}

// AllCompatibilities computes every typology's percentage in the given
// order, each against its own score set.
func (e *Engine) AllCompatibilities(typologies []models.Typology, scores map[models.Typology]models.ScoreSet, criteria []models.Criterion) []models.CompatibilityResult {
	results := make([]models.CompatibilityResult, 0, len(typologies))
	for _, t := range typologies {
		results = append(results, models.CompatibilityResult{
			Typology:   t,
			Percentage: e.Compatibility(t, scores[t], criteria),
		})
	}
	return results
}

// WeightSum totals a typology's weights across the criteria set.
func (e *Engine) WeightSum(t models.Typology, criteria []models.Criterion) float64 {
	var sum float64
	for _, c := range criteria {
		sum += c.Weight(t)
	}
	return sum
}

// Gaps ranks criteria by the compatibility points each one is leaving on the
// table for a typology: impact = (5 - score)/5 * weight, so a full-weight
// criterion scored 0 costs exactly its weight in percentage points.
// Descending, ties keeping sheet row order, truncated to topN.
func (e *Engine) Gaps(t models.Typology, scores models.ScoreSet, criteria []models.Criterion, topN int) []models.Gap {
	if topN <= 0 || len(criteria) == 0 {
		return nil
	}

	ordered := make([]models.Criterion, len(criteria))
	copy(ordered, criteria)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Order < ordered[j].Order
	})

	gaps := make([]models.Gap, 0, len(ordered))
	for _, c := range ordered {
		impact := float64(MaxScore-e.score(scores, c.Name)) / MaxScore * c.Weight(t)
		gaps = append(gaps, models.Gap{Criterion: c.Name, Impact: impact})
	}

	sort.SliceStable(gaps, func(i, j int) bool {
		return gaps[i].Impact > gaps[j].Impact
	})

	if len(gaps) > topN {
		gaps = gaps[:topN]
	}
	return gaps
}

// BestAlternative returns the typology with the highest compatibility
// excluding current. Ties resolve to the first entry after a descending
// stable sort, i.e. the earlier typology in registry order. Empty when no
// other typology exists.
func (e *Engine) BestAlternative(current models.Typology, results []models.CompatibilityResult) models.Typology {
	candidates := make([]models.CompatibilityResult, 0, len(results))
	for _, r := range results {
		if r.Typology != current {
			candidates = append(candidates, r)
		}
	}
	if len(candidates) == 0 {
		return ""
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Percentage > candidates[j].Percentage
	})
	return candidates[0].Typology
}

// Versatility is the mean compatibility across all typologies, the
// portfolio-level pivot score.
func Versatility(results []models.CompatibilityResult) float64 {
	if len(results) == 0 {
		return 0
	}
	var sum float64
	for _, r := range results {
		sum += r.Percentage
	}
	return sum / float64(len(results))
}

// VerdictFor bands a versatility score: above 85 the chassis is universal,
// above 60 it is optimized for some types and invasive for others, below
// that it is a static asset.
func VerdictFor(versatility float64) models.Verdict {
	switch {
	case versatility > 85:
		return models.VerdictUniversal
	case versatility > 60:
		return models.VerdictLimited
	default:
		return models.VerdictStatic
	}
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > MaxScore {
		return MaxScore
	}
	return v
}
