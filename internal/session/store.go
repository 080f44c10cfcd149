// internal/session/store.go
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	chassiserrors "adaptive-chassis/internal/common/errors"
	"adaptive-chassis/internal/common/logger"
	"adaptive-chassis/internal/common/metrics"
	"adaptive-chassis/internal/models"
)

// Store owns every live scoring session. Each session is single-owner per
// the interaction model; the mutex only guards the session table itself
// (creation, lookup, reaping).
type Store struct {
	typologies   []models.Typology
	defaultScore int
	idleTTL      time.Duration
	logger       logger.Logger
	now          func() time.Time

	mu       sync.Mutex
	sessions map[string]*models.Session
}

func NewStore(typologies []models.Typology, defaultScore int, idleTTL time.Duration, log logger.Logger) *Store {
	return &Store{
		typologies:   typologies,
		defaultScore: defaultScore,
		idleTTL:      idleTTL,
		logger:       log.WithFields(map[string]interface{}{"component": "session-store"}),
		now:          time.Now,
		sessions:     make(map[string]*models.Session),
	}
}

// Create opens a new session and returns its id.
func (s *Store) Create() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	sess := &models.Session{
		ID:           uuid.NewString(),
		CreatedAt:    now,
		LastActivity: now,
		ExpiresAt:    now.Add(s.idleTTL),
		Scores:       make(map[models.Typology]models.ScoreSet, len(s.typologies)),
	}
	s.sessions[sess.ID] = sess
	metrics.SessionsActive.Set(float64(len(s.sessions)))

	s.logger.Info("session created", map[string]interface{}{
		"sessionId": sess.ID,
	})
	return sess.ID
}

// get looks up a live session, expiring it on the way if idle too long.
// Callers hold s.mu.
func (s *Store) get(id string) (*models.Session, error) {
	sess, ok := s.sessions[id]
	if !ok {
		return nil, chassiserrors.NewSessionNotFoundError(id)
	}
	now := s.now()
	if now.After(sess.ExpiresAt) {
		delete(s.sessions, id)
		metrics.SessionsActive.Set(float64(len(s.sessions)))
		return nil, chassiserrors.NewSessionNotFoundError(id)
	}
	sess.LastActivity = now
	sess.ExpiresAt = now.Add(s.idleTTL)
	return sess, nil
}

// SetScore records one slider move: criterion score for one typology,
// clamped to the slider range.
func (s *Store) SetScore(id string, t models.Typology, criterion string, score int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.get(id)
	if err != nil {
		return err
	}

	if !s.knownTypology(t) {
		return chassiserrors.NewTypologyUnknownError(string(t))
	}

	if score < 0 {
		score = 0
	}
	if score > 5 {
		score = 5
	}
	sess.ScoresFor(t)[criterion] = score
	return nil
}

// Scores returns a copy of one typology's score set.
func (s *Store) Scores(id string, t models.Typology) (models.ScoreSet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.get(id)
	if err != nil {
		return nil, err
	}
	return sess.ScoresFor(t).Clone(), nil
}

// AllScores returns a copy of the session's full two-level score map.
func (s *Store) AllScores(id string) (map[models.Typology]models.ScoreSet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.get(id)
	if err != nil {
		return nil, err
	}

	out := make(map[models.Typology]models.ScoreSet, len(sess.Scores))
	for t, set := range sess.Scores {
		out[t] = set.Clone()
	}
	return out, nil
}

// Prime seeds every criterion with the default score in every typology's
// score set, leaving scores the user already set alone. After Prime the
// scoring invariant holds: no lookup during scoring can miss.
func (s *Store) Prime(id string, criteria []models.Criterion) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.get(id)
	if err != nil {
		return err
	}

	for _, t := range s.typologies {
		set := sess.ScoresFor(t)
		for _, c := range criteria {
			if _, ok := set[c.Name]; !ok {
				set[c.Name] = s.defaultScore
			}
		}
	}
	return nil
}

// Reap drops expired sessions and reports how many were removed.
func (s *Store) Reap() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, sess := range s.sessions {
		if now.After(sess.ExpiresAt) {
			delete(s.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		metrics.SessionsActive.Set(float64(len(s.sessions)))
		s.logger.Info("expired sessions reaped", map[string]interface{}{
			"removed": removed,
		})
	}
	return removed
}

// Count returns the number of live sessions.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Store) knownTypology(t models.Typology) bool {
	for _, known := range s.typologies {
		if known == t {
			return true
		}
	}
	return false
}
