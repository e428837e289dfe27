package decoupling

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/LavaJover/shvark-buffer-service/internal/domain"
	"github.com/LavaJover/shvark-buffer-service/internal/infrastructure/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func factor(id string, weight, score int64) domain.DecouplingFactor {
	return domain.DecouplingFactor{ID: id, Weight: decimal.NewFromInt(weight), Score: decimal.NewFromInt(score)}
}

func TestScore_LowScoreHasNoType(t *testing.T) {
	eval, err := Score([]domain.DecouplingFactor{
		factor(domain.FactorLeadTime, 10, 8),
		factor(domain.FactorDemandVariability, 8, 7),
	}, decimal.NewFromInt(10))
	require.NoError(t, err)

	assert.True(t, eval.Contributions[domain.FactorLeadTime].Equal(decimal.RequireFromString("8")))
	assert.True(t, eval.Contributions[domain.FactorDemandVariability].Equal(decimal.RequireFromString("5.6")))
	// round(13.6 / 18 * 10) = 8
	assert.Equal(t, 8, eval.Score)
	assert.Equal(t, domain.DecouplingNone, eval.Type)
	assert.Equal(t, 50, eval.Confidence)
}

func TestScore_DecisionTable(t *testing.T) {
	tests := []struct {
		name       string
		factors    []domain.DecouplingFactor
		maxWeight  int64
		wantScore  int
		wantType   domain.DecouplingType
		wantConfid int
	}{
		{
			// c = 90, 80; score = round(170/2*10) -> 100
			name: "strategic",
			factors: []domain.DecouplingFactor{
				factor(domain.FactorLeadTime, 1, 90),
				factor(domain.FactorDemandVariability, 1, 80),
			},
			maxWeight: 1, wantScore: 100, wantType: domain.DecouplingStrategic, wantConfid: 85,
		},
		{
			name: "customer order",
			factors: []domain.DecouplingFactor{
				factor(domain.FactorLeadTime, 1, 30),
				factor(domain.FactorDemandVariability, 1, 10),
				factor(domain.FactorCustomerService, 1, 50),
			},
			maxWeight: 1, wantScore: 100, wantType: domain.DecouplingCustomerOrder, wantConfid: 80,
		},
		{
			// c = 7, 7; score = round(14/2*10) = 70
			name: "stock point at boundary",
			factors: []domain.DecouplingFactor{
				factor(domain.FactorLeadTime, 1, 7),
				factor("supply_risk", 1, 7),
			},
			maxWeight: 1, wantScore: 70, wantType: domain.DecouplingStockPoint, wantConfid: 75,
		},
		{
			name:      "intermediate",
			factors:   []domain.DecouplingFactor{factor(domain.FactorLeadTime, 10, 40)},
			maxWeight: 10, wantScore: 40, wantType: domain.DecouplingIntermediate, wantConfid: 65,
		},
		{
			name:      "zero score",
			factors:   []domain.DecouplingFactor{factor(domain.FactorLeadTime, 5, 0)},
			maxWeight: 10, wantScore: 0, wantType: domain.DecouplingNone, wantConfid: 0,
		},
		{
			name:      "no factors",
			factors:   nil,
			maxWeight: 10, wantScore: 0, wantType: domain.DecouplingNone, wantConfid: 0,
		},
		{
			name:      "zero weights",
			factors:   []domain.DecouplingFactor{factor(domain.FactorLeadTime, 0, 9)},
			maxWeight: 10, wantScore: 0, wantType: domain.DecouplingNone, wantConfid: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eval, err := Score(tt.factors, decimal.NewFromInt(tt.maxWeight))
			require.NoError(t, err)
			assert.Equal(t, tt.wantScore, eval.Score)
			assert.Equal(t, tt.wantType, eval.Type)
			assert.Equal(t, tt.wantConfid, eval.Confidence)
		})
	}
}

func TestScore_RejectsInvalidInput(t *testing.T) {
	_, err := Score([]domain.DecouplingFactor{factor("a", 1, 1)}, decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrInvalidFactor)

	_, err = Score([]domain.DecouplingFactor{factor("a", -1, 1)}, decimal.NewFromInt(10))
	assert.ErrorIs(t, err, domain.ErrInvalidFactor)

	_, err = Score([]domain.DecouplingFactor{factor("a", 1, 1), factor("a", 2, 2)}, decimal.NewFromInt(10))
	assert.ErrorIs(t, err, domain.ErrInvalidFactor)

	_, err = Score([]domain.DecouplingFactor{factor("", 1, 1)}, decimal.NewFromInt(10))
	assert.ErrorIs(t, err, domain.ErrInvalidFactor)
}

func TestRoleBoost(t *testing.T) {
	assert.Equal(t, 95, RoleBoost(domain.RoleMainHub, domain.DecouplingStrategic, 85))
	assert.Equal(t, 85, RoleBoost(domain.RoleDistributionCenter, domain.DecouplingCustomerOrder, 80))
	assert.Equal(t, 80, RoleBoost(domain.RoleMainHub, domain.DecouplingCustomerOrder, 80))
	assert.Equal(t, 75, RoleBoost(domain.RoleStore, domain.DecouplingStockPoint, 75))
	assert.Equal(t, 100, RoleBoost(domain.RoleMainHub, domain.DecouplingStrategic, 95))
}

func TestScorer_ScoreLocationPersistsRecommendation(t *testing.T) {
	store := memory.NewStore()
	store.PutLocation(&domain.Location{ID: "HUB-1", Name: "Central hub", Role: domain.RoleMainHub})
	s := NewScorer(store, store, decimal.NewFromInt(1), nil, slog.New(slog.NewTextHandler(io.Discard, nil)))

	rec, err := s.ScoreLocation(context.Background(), "HUB-1", []domain.DecouplingFactor{
		factor(domain.FactorLeadTime, 1, 90),
		factor(domain.FactorDemandVariability, 1, 80),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.DecouplingStrategic, rec.Type)
	assert.Equal(t, 95, rec.Confidence)
	assert.Len(t, store.Recommendations("HUB-1"), 1)
}

func TestScorer_UnknownLocation(t *testing.T) {
	store := memory.NewStore()
	s := NewScorer(store, store, decimal.NewFromInt(10), nil, slog.New(slog.NewTextHandler(io.Discard, nil)))

	_, err := s.ScoreLocation(context.Background(), "NOPE", nil)
	assert.ErrorIs(t, err, domain.ErrLocationNotFound)
}
