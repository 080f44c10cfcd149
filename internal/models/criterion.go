package models

// Typology identifies one occupancy program the building is scored against.
type Typology string

// Criterion is one row of the criteria sheet: a named design criterion with a
// free-text scoring hint and one weight per typology. Weights within a
// typology are expected to sum to 100 across the sheet.
type Criterion struct {
	Name        string               `json:"name"`
	Category    string               `json:"category"`
	ScoringHint string               `json:"scoringHint,omitempty"`
	Weights     map[Typology]float64 `json:"weights"`
	Order       int                  `json:"order"` // sheet row index, keeps ranking ties stable
}

// Weight returns the criterion's weight for a typology, 0 if unregistered.
func (c Criterion) Weight(t Typology) float64 {
	return c.Weights[t]
}
