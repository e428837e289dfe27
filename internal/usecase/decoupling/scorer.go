package decoupling

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/LavaJover/shvark-buffer-service/internal/domain"
	"github.com/LavaJover/shvark-buffer-service/internal/infrastructure/metrics"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	maxScore      = 100
	maxConfidence = 100

	mainHubBoost            = 10
	distributionCenterBoost = 5
)

var (
	ten            = decimal.NewFromInt(10)
	seventy        = decimal.NewFromInt(70)
	forty          = decimal.NewFromInt(40)
	thirtyFive     = decimal.NewFromInt(35)
	twentyFive     = decimal.NewFromInt(25)
	contributionDP = int32(4)
)

// Evaluation - результат оценки без учета роли локации.
type Evaluation struct {
	Score         int
	Contributions map[string]decimal.Decimal
	Type          domain.DecouplingType
	Confidence    int
}

// Score считает вклад каждого фактора и итоговую оценку 0-100,
// затем выбирает тип точки развязки по таблице решений.
func Score(factors []domain.DecouplingFactor, maxWeight decimal.Decimal) (*Evaluation, error) {
	if !maxWeight.IsPositive() {
		return nil, fmt.Errorf("%w: max weight must be positive", domain.ErrInvalidFactor)
	}

	contributions := make(map[string]decimal.Decimal, len(factors))
	sumContribution := decimal.Zero
	sumWeight := decimal.Zero
	for _, f := range factors {
		if f.ID == "" {
			return nil, fmt.Errorf("%w: empty factor id", domain.ErrInvalidFactor)
		}
		if _, dup := contributions[f.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate factor %s", domain.ErrInvalidFactor, f.ID)
		}
		if f.Weight.IsNegative() {
			return nil, fmt.Errorf("%w: negative weight for %s", domain.ErrInvalidFactor, f.ID)
		}

		c := f.Weight.Mul(f.Score).Div(maxWeight).Round(contributionDP)
		contributions[f.ID] = c
		sumContribution = sumContribution.Add(c)
		sumWeight = sumWeight.Add(f.Weight)
	}

	final := 0
	if sumWeight.IsPositive() {
		final = int(sumContribution.Div(sumWeight).Mul(ten).Round(0).IntPart())
	}
	if final < 0 {
		final = 0
	}
	if final > maxScore {
		final = maxScore
	}

	t, confidence := classify(final, contributions)
	return &Evaluation{
		Score:         final,
		Contributions: contributions,
		Type:          t,
		Confidence:    confidence,
	}, nil
}

// classify - первая подходящая строка таблицы решений.
func classify(final int, c map[string]decimal.Decimal) (domain.DecouplingType, int) {
	leadTime := c[domain.FactorLeadTime]
	variability := c[domain.FactorDemandVariability]
	service := c[domain.FactorCustomerService]
	score := decimal.NewFromInt(int64(final))

	switch {
	case score.GreaterThanOrEqual(seventy) && leadTime.GreaterThan(forty) && variability.GreaterThan(thirtyFive):
		return domain.DecouplingStrategic, 85
	case score.GreaterThanOrEqual(seventy) && service.GreaterThan(forty) && leadTime.GreaterThan(twentyFive):
		return domain.DecouplingCustomerOrder, 80
	case score.GreaterThanOrEqual(seventy):
		return domain.DecouplingStockPoint, 75
	case score.GreaterThanOrEqual(forty):
		return domain.DecouplingIntermediate, 65
	case final > 0:
		return domain.DecouplingNone, 50
	default:
		return domain.DecouplingNone, 0
	}
}

// RoleBoost добавляет бонус уверенности, если роль локации совпадает с типом.
func RoleBoost(role domain.LocationRole, t domain.DecouplingType, confidence int) int {
	switch {
	case role == domain.RoleMainHub && t == domain.DecouplingStrategic:
		confidence += mainHubBoost
	case role == domain.RoleDistributionCenter && t == domain.DecouplingCustomerOrder:
		confidence += distributionCenterBoost
	}
	if confidence > maxConfidence {
		confidence = maxConfidence
	}
	return confidence
}

type Scorer struct {
	master    domain.MasterDataRepository
	repo      domain.DecouplingRepository
	maxWeight decimal.Decimal
	metrics   *metrics.EngineMetrics
	logger    *slog.Logger
	now       func() time.Time
}

func NewScorer(
	master domain.MasterDataRepository,
	repo domain.DecouplingRepository,
	maxWeight decimal.Decimal,
	engineMetrics *metrics.EngineMetrics,
	logger *slog.Logger,
) *Scorer {
	return &Scorer{
		master:    master,
		repo:      repo,
		maxWeight: maxWeight,
		metrics:   engineMetrics,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *Scorer) WithClock(now func() time.Time) *Scorer {
	s.now = now
	return s
}

// ScoreLocation оценивает локацию и сохраняет рекомендацию.
func (s *Scorer) ScoreLocation(ctx context.Context, locationID string, factors []domain.DecouplingFactor) (*domain.DecouplingRecommendation, error) {
	location, err := s.master.GetLocation(ctx, locationID)
	if err != nil {
		return nil, err
	}

	eval, err := Score(factors, s.maxWeight)
	if err != nil {
		return nil, err
	}

	rec := &domain.DecouplingRecommendation{
		ID:            uuid.New().String(),
		LocationID:    location.ID,
		Score:         eval.Score,
		Contributions: eval.Contributions,
		Type:          eval.Type,
		Confidence:    RoleBoost(location.Role, eval.Type, eval.Confidence),
		ScoredAt:      s.now(),
	}
	if err := s.repo.SaveRecommendation(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to save recommendation: %w", err)
	}

	s.metrics.RecordDecouplingScore(string(rec.Type), rec.Score)
	s.logger.Info("Decoupling point scored",
		"location_id", location.ID,
		"score", rec.Score,
		"type", rec.Type,
		"confidence", rec.Confidence)
	return rec, nil
}
