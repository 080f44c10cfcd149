// internal/evaluator/service.go
package evaluator

import (
	"context"
	"time"

	chassiserrors "adaptive-chassis/internal/common/errors"
	"adaptive-chassis/internal/common/logger"
	"adaptive-chassis/internal/common/metrics"
	"adaptive-chassis/internal/common/observability"
	"adaptive-chassis/internal/criteria"
	"adaptive-chassis/internal/models"
	"adaptive-chassis/internal/scoring"
	"adaptive-chassis/internal/session"
	"adaptive-chassis/pkg/registry"
)

const sourceWarning = "Criteria source unavailable; showing empty results until the sheet is reachable again."

// Service orchestrates one user interaction: load the criteria, prime the
// session, recompute every typology's compatibility plus the gap ranking for
// the target, and hand back a single Evaluation for the presentation layer.
type Service struct {
	criteria   *criteria.Store
	sessions   *session.Store
	engine     *scoring.Engine
	typologies []models.Typology
	topGaps    int
	logger     logger.Logger
	obs        *observability.Observability
}

func NewService(
	criteriaStore *criteria.Store,
	sessions *session.Store,
	engine *scoring.Engine,
	reg *registry.TypologyRegistry,
	topGaps int,
	log logger.Logger,
	obs *observability.Observability,
) *Service {
	typologies := make([]models.Typology, 0, len(reg.Typologies))
	for _, t := range reg.Typologies {
		typologies = append(typologies, models.Typology(t.ID))
	}

	return &Service{
		criteria:   criteriaStore,
		sessions:   sessions,
		engine:     engine,
		typologies: typologies,
		topGaps:    topGaps,
		logger:     log.WithFields(map[string]interface{}{"component": "evaluator"}),
		obs:        obs,
	}
}

// NewSession opens a scoring session for one visitor.
func (s *Service) NewSession() string {
	return s.sessions.Create()
}

// SetScore records one slider move for a session.
func (s *Service) SetScore(sessionID string, t models.Typology, criterion string, score int) error {
	return s.sessions.SetScore(sessionID, t, criterion, score)
}

// Evaluate recomputes the full dashboard state for one session and target
// typology. A source failure is not an error here: the evaluation comes back
// degraded with empty results and a user-facing warning.
func (s *Service) Evaluate(ctx context.Context, sessionID string, target models.Typology) (*models.Evaluation, error) {
	start := time.Now()

	if !s.knownTypology(target) {
		return nil, chassiserrors.NewTypologyUnknownError(string(target))
	}

	criteriaSet, degraded, err := s.loadCriteria(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.sessions.Prime(sessionID, criteriaSet); err != nil {
		return nil, err
	}
	scores, err := s.sessions.AllScores(sessionID)
	if err != nil {
		return nil, err
	}

	compatibilities := s.engine.AllCompatibilities(s.typologies, scores, criteriaSet)
	gaps := s.engine.Gaps(target, scores[target], criteriaSet, s.topGaps)
	best := s.engine.BestAlternative(target, compatibilities)
	versatility := scoring.Versatility(compatibilities)

	eval := &models.Evaluation{
		SessionID:       sessionID,
		Target:          target,
		Compatibilities: compatibilities,
		Gaps:            gaps,
		BestAlternative: best,
		Versatility:     versatility,
		Verdict:         scoring.VerdictFor(versatility),
		Degraded:        degraded,
	}
	if degraded {
		eval.Warning = sourceWarning
	}

	status := "success"
	if degraded {
		status = "degraded"
	}
	metrics.EvaluationsCompleted.WithLabelValues(string(target)).Inc()
	metrics.EvaluationDuration.WithLabelValues(string(target)).Observe(time.Since(start).Seconds())
	if s.obs != nil {
		s.obs.RecordEvaluation(ctx, status)
		s.obs.RecordEvaluationDuration(ctx, time.Since(start), status)
	}

	s.logger.Info("evaluation completed", map[string]interface{}{
		"sessionId":   sessionID,
		"target":      string(target),
		"versatility": versatility,
		"degraded":    degraded,
	})

	return eval, nil
}

// loadCriteria reads through the TTL store, degrading to an empty set on any
// source failure. Other errors (none today) would propagate.
func (s *Service) loadCriteria(ctx context.Context) ([]models.Criterion, bool, error) {
	criteriaSet, err := s.criteria.Load(ctx)
	if err == nil {
		return criteriaSet, false, nil
	}
	if !chassiserrors.IsSourceUnavailable(err) {
		return nil, false, err
	}

	metrics.EvaluationsDegraded.Inc()
	s.logger.WithError(err).Warn("serving degraded evaluation", nil)
	return nil, true, nil
}

func (s *Service) knownTypology(t models.Typology) bool {
	for _, known := range s.typologies {
		if known == t {
			return true
		}
	}
	return false
}
