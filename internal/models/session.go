package models

import "time"

// Session holds one user's slider state for the lifetime of their visit.
// Scores are kept per typology, criterion name -> score in [0,5]. Sessions
// are in-memory only; nothing here survives a restart.
type Session struct {
	ID           string                `json:"id"`
	CreatedAt    time.Time             `json:"createdAt"`
	LastActivity time.Time             `json:"lastActivity"`
	ExpiresAt    time.Time             `json:"expiresAt"`
	Scores       map[Typology]ScoreSet `json:"scores"`
}

// ScoresFor returns the session's score set for a typology, allocating it on
// first use so callers can always write through it.
func (s *Session) ScoresFor(t Typology) ScoreSet {
	if s.Scores == nil {
		s.Scores = make(map[Typology]ScoreSet)
	}
	set, ok := s.Scores[t]
	if !ok {
		set = make(ScoreSet)
		s.Scores[t] = set
	}
	return set
}
