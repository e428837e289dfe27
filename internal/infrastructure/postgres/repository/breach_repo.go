package repository

import (
	"context"
	"time"

	"github.com/LavaJover/shvark-buffer-service/internal/domain"
	"github.com/LavaJover/shvark-buffer-service/internal/infrastructure/postgres/mappers"
	"github.com/LavaJover/shvark-buffer-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DefaultBreachRepo struct {
	DB *gorm.DB
}

func NewDefaultBreachRepo(db *gorm.DB) *DefaultBreachRepo {
	return &DefaultBreachRepo{DB: db}
}

var _ domain.BreachRepository = (*DefaultBreachRepo)(nil)

func (r *DefaultBreachRepo) OpenBreaches(ctx context.Context, productID, locationID string) ([]*domain.BreachEvent, error) {
	return r.listOpen(ctx, domain.Scope{ProductID: productID, LocationID: locationID})
}

// CreateBreachIfAbsent опирается на частичный индекс uq_open_breach.
func (r *DefaultBreachRepo) CreateBreachIfAbsent(ctx context.Context, event *domain.BreachEvent) (bool, error) {
	result := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(mappers.ToGORMBreach(event))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *DefaultBreachRepo) AcknowledgeBreach(ctx context.Context, breachID string, at time.Time) error {
	result := r.DB.WithContext(ctx).
		Model(&models.BreachEventModel{}).
		Where("id = ? AND acknowledged = false", breachID).
		Updates(map[string]any{
			"acknowledged":    true,
			"acknowledged_at": at,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	// уже подтверждено или не существует
	var count int64
	if err := r.DB.WithContext(ctx).Model(&models.BreachEventModel{}).Where("id = ?", breachID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return domain.ErrBreachNotFound
	}
	return nil
}

func (r *DefaultBreachRepo) ListOpenBreaches(ctx context.Context, scope domain.Scope) ([]*domain.BreachEvent, error) {
	return r.listOpen(ctx, scope)
}

func (r *DefaultBreachRepo) listOpen(ctx context.Context, scope domain.Scope) ([]*domain.BreachEvent, error) {
	var rows []models.BreachEventModel
	q := applyScope(r.DB.WithContext(ctx).Where("acknowledged = false"), scope, "")
	if err := q.Order("detected_at").Find(&rows).Error; err != nil {
		return nil, err
	}

	events := make([]*domain.BreachEvent, 0, len(rows))
	for i := range rows {
		events = append(events, mappers.ToDomainBreach(&rows[i]))
	}
	return events, nil
}
