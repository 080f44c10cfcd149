// internal/scoring/engine_test.go
package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adaptive-chassis/internal/models"
)

const (
	housing    = models.Typology("Housing")
	education  = models.Typology("Education")
	lab        = models.Typology("Lab")
	dataCenter = models.Typology("Data Center")
)

// ==========================
// Test Helper Functions
// ==========================

func testEngine(t *testing.T, defaultScore int) *Engine {
	t.Helper()
	return NewEngine(defaultScore)
}

// twoCriteria is the worked example from the design doc: A carries 60% of
// the Housing weight, B the remaining 40%.
func twoCriteria() []models.Criterion {
	return []models.Criterion{
		{
			Name:    "A",
			Order:   0,
			Weights: map[models.Typology]float64{housing: 60, education: 30},
		},
		{
			Name:    "B",
			Order:   1,
			Weights: map[models.Typology]float64{housing: 40, education: 70},
		},
	}
}

func allFives(criteria []models.Criterion) models.ScoreSet {
	set := make(models.ScoreSet, len(criteria))
	for _, c := range criteria {
		set[c.Name] = 5
	}
	return set
}

// ==========================
// Compatibility
// ==========================

func TestCompatibility_AllFivesWithFullWeightsIsHundred(t *testing.T) {
	engine := testEngine(t, 3)
	criteria := twoCriteria()
	scores := allFives(criteria)

	for _, typ := range []models.Typology{housing, education} {
		require.InDelta(t, 100.0, engine.WeightSum(typ, criteria), 1e-9)
		assert.InDelta(t, 100.0, engine.Compatibility(typ, scores, criteria), 1e-9)
	}
}

func TestCompatibility_AllZerosIsZero(t *testing.T) {
	engine := testEngine(t, 3)
	criteria := twoCriteria()
	scores := models.ScoreSet{"A": 0, "B": 0}

	assert.Zero(t, engine.Compatibility(housing, scores, criteria))
	assert.Zero(t, engine.Compatibility(education, scores, criteria))
}

func TestCompatibility_WorkedExample(t *testing.T) {
	engine := testEngine(t, 3)
	criteria := twoCriteria()
	scores := models.ScoreSet{"A": 5, "B": 0}

	// (5/5)*60 + (0/5)*40
	assert.InDelta(t, 60.0, engine.Compatibility(housing, scores, criteria), 1e-9)
}

func TestCompatibility_MissingScoreDefaultsWithoutFailing(t *testing.T) {
	engine := testEngine(t, 3)
	criteria := twoCriteria()

	// B was never scored; it reads as the default 3.
	scores := models.ScoreSet{"A": 5}
	got := engine.Compatibility(housing, scores, criteria)
	assert.InDelta(t, 60.0+(3.0/5.0)*40.0, got, 1e-9)

	// Entirely empty score set: every criterion reads as default.
	assert.InDelta(t, (3.0/5.0)*100.0, engine.Compatibility(housing, models.ScoreSet{}, criteria), 1e-9)
	assert.InDelta(t, (3.0/5.0)*100.0, engine.Compatibility(housing, nil, criteria), 1e-9)
}

func TestCompatibility_ClampsOutOfRangeScores(t *testing.T) {
	engine := testEngine(t, 3)
	criteria := twoCriteria()

	scores := models.ScoreSet{"A": 9, "B": -2}
	assert.InDelta(t, 60.0, engine.Compatibility(housing, scores, criteria), 1e-9)
}

func TestCompatibility_EmptyCriteriaIsZero(t *testing.T) {
	engine := testEngine(t, 3)
	assert.Zero(t, engine.Compatibility(housing, models.ScoreSet{"A": 5}, nil))
}

func TestCompatibility_UnknownCriterionInScoresIsIgnored(t *testing.T) {
	engine := testEngine(t, 3)
	criteria := twoCriteria()

	scores := allFives(criteria)
	scores["Ghost"] = 5
	assert.InDelta(t, 100.0, engine.Compatibility(housing, scores, criteria), 1e-9)
}

func TestAllCompatibilities_KeepsTypologyOrder(t *testing.T) {
	engine := testEngine(t, 3)
	criteria := twoCriteria()
	scores := map[models.Typology]models.ScoreSet{
		housing:   allFives(criteria),
		education: {"A": 0, "B": 0},
	}

	results := engine.AllCompatibilities([]models.Typology{housing, education}, scores, criteria)
	require.Len(t, results, 2)
	assert.Equal(t, housing, results[0].Typology)
	assert.InDelta(t, 100.0, results[0].Percentage, 1e-9)
	assert.Equal(t, education, results[1].Typology)
	assert.Zero(t, results[1].Percentage)
}

// ==========================
// Gaps
// ==========================

func TestGaps_WorkedExample(t *testing.T) {
	engine := testEngine(t, 3)
	criteria := twoCriteria()
	scores := models.ScoreSet{"A": 5, "B": 0}

	gaps := engine.Gaps(housing, scores, criteria, 1)
	require.Len(t, gaps, 1)
	assert.Equal(t, "B", gaps[0].Criterion)
	assert.InDelta(t, 40.0, gaps[0].Impact, 1e-9) // B scored 0 costs its full 40 points
}

func TestGaps_SortedDescendingAndTruncated(t *testing.T) {
	engine := testEngine(t, 3)
	criteria := []models.Criterion{
		{Name: "A", Order: 0, Weights: map[models.Typology]float64{housing: 10}},
		{Name: "B", Order: 1, Weights: map[models.Typology]float64{housing: 50}},
		{Name: "C", Order: 2, Weights: map[models.Typology]float64{housing: 25}},
		{Name: "D", Order: 3, Weights: map[models.Typology]float64{housing: 15}},
	}
	scores := models.ScoreSet{"A": 0, "B": 0, "C": 0, "D": 0}

	gaps := engine.Gaps(housing, scores, criteria, 3)
	require.Len(t, gaps, 3)
	assert.Equal(t, "B", gaps[0].Criterion)
	assert.Equal(t, "C", gaps[1].Criterion)
	assert.Equal(t, "D", gaps[2].Criterion)
	for i := 1; i < len(gaps); i++ {
		assert.GreaterOrEqual(t, gaps[i-1].Impact, gaps[i].Impact)
	}
}

func TestGaps_TiesKeepSheetOrder(t *testing.T) {
	engine := testEngine(t, 3)
	criteria := []models.Criterion{
		{Name: "First", Order: 0, Weights: map[models.Typology]float64{housing: 25}},
		{Name: "Second", Order: 1, Weights: map[models.Typology]float64{housing: 25}},
		{Name: "Third", Order: 2, Weights: map[models.Typology]float64{housing: 25}},
	}
	scores := models.ScoreSet{"First": 2, "Second": 2, "Third": 2}

	gaps := engine.Gaps(housing, scores, criteria, 3)
	require.Len(t, gaps, 3)
	assert.Equal(t, "First", gaps[0].Criterion)
	assert.Equal(t, "Second", gaps[1].Criterion)
	assert.Equal(t, "Third", gaps[2].Criterion)
}

func TestGaps_ShorterThanTopN(t *testing.T) {
	engine := testEngine(t, 3)
	criteria := twoCriteria()

	gaps := engine.Gaps(housing, models.ScoreSet{}, criteria, 10)
	assert.Len(t, gaps, 2)
}

func TestGaps_EmptyInputs(t *testing.T) {
	engine := testEngine(t, 3)

	assert.Nil(t, engine.Gaps(housing, models.ScoreSet{}, nil, 4))
	assert.Nil(t, engine.Gaps(housing, models.ScoreSet{}, twoCriteria(), 0))
}

// ==========================
// Best Alternative
// ==========================

func TestBestAlternative_ExcludesCurrentEvenWhenHighest(t *testing.T) {
	engine := testEngine(t, 3)
	results := []models.CompatibilityResult{
		{Typology: housing, Percentage: 95},
		{Typology: education, Percentage: 70},
		{Typology: lab, Percentage: 80},
		{Typology: dataCenter, Percentage: 40},
	}

	assert.Equal(t, lab, engine.BestAlternative(housing, results))
	assert.Equal(t, housing, engine.BestAlternative(lab, results))
}

func TestBestAlternative_TieResolvesToEarlierTypology(t *testing.T) {
	engine := testEngine(t, 3)
	results := []models.CompatibilityResult{
		{Typology: housing, Percentage: 90},
		{Typology: education, Percentage: 75},
		{Typology: lab, Percentage: 75},
	}

	assert.Equal(t, education, engine.BestAlternative(housing, results))
}

func TestBestAlternative_NoCandidates(t *testing.T) {
	engine := testEngine(t, 3)

	assert.Equal(t, models.Typology(""), engine.BestAlternative(housing, nil))
	assert.Equal(t, models.Typology(""), engine.BestAlternative(housing, []models.CompatibilityResult{
		{Typology: housing, Percentage: 100},
	}))
}

// ==========================
// Versatility & Verdict
// ==========================

func TestVersatility_MeanAcrossTypologies(t *testing.T) {
	results := []models.CompatibilityResult{
		{Typology: housing, Percentage: 100},
		{Typology: education, Percentage: 50},
	}

	assert.InDelta(t, 75.0, Versatility(results), 1e-9)
	assert.Zero(t, Versatility(nil))
}

func TestVerdictFor_Bands(t *testing.T) {
	tests := []struct {
		name        string
		versatility float64
		expected    models.Verdict
	}{
		{"universal above 85", 86.0, models.VerdictUniversal},
		{"limited at exactly 85", 85.0, models.VerdictLimited},
		{"limited above 60", 61.0, models.VerdictLimited},
		{"static at exactly 60", 60.0, models.VerdictStatic},
		{"static at zero", 0.0, models.VerdictStatic},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, VerdictFor(tt.versatility))
		})
	}
}

// ==========================
// Defaults
// ==========================

func TestNewEngine_ClampsDefaultScore(t *testing.T) {
	assert.Equal(t, 5, testEngine(t, 9).DefaultScore())
	assert.Equal(t, 0, testEngine(t, -1).DefaultScore())
	assert.Equal(t, 3, testEngine(t, 3).DefaultScore())
}
