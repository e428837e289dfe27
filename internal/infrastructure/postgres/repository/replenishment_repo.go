package repository

import (
	"context"

	"github.com/LavaJover/shvark-buffer-service/internal/domain"
	"github.com/LavaJover/shvark-buffer-service/internal/infrastructure/postgres/mappers"
	"github.com/LavaJover/shvark-buffer-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DefaultReplenishmentRepo struct {
	DB *gorm.DB
}

func NewDefaultReplenishmentRepo(db *gorm.DB) *DefaultReplenishmentRepo {
	return &DefaultReplenishmentRepo{DB: db}
}

var _ domain.ReplenishmentRepository = (*DefaultReplenishmentRepo)(nil)

func (r *DefaultReplenishmentRepo) HasDraft(ctx context.Context, productID, locationID string) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).
		Model(&models.ReplenishmentOrderModel{}).
		Where("product_id = ? AND location_id = ? AND status = ?", productID, locationID, string(domain.ReplenishmentDraft)).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CreateDraftIfAbsent опирается на частичный индекс uq_draft_per_item.
func (r *DefaultReplenishmentRepo) CreateDraftIfAbsent(ctx context.Context, order *domain.ReplenishmentOrder) (bool, error) {
	result := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(mappers.ToGORMReplenishment(order))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *DefaultReplenishmentRepo) ListDrafts(ctx context.Context, scope domain.Scope) ([]*domain.ReplenishmentOrder, error) {
	var rows []models.ReplenishmentOrderModel
	q := r.DB.WithContext(ctx).Where("status = ?", string(domain.ReplenishmentDraft))
	q = applyScope(q, scope, "")
	if err := q.Order("proposal_ts").Find(&rows).Error; err != nil {
		return nil, err
	}

	orders := make([]*domain.ReplenishmentOrder, 0, len(rows))
	for i := range rows {
		orders = append(orders, mappers.ToDomainReplenishment(&rows[i]))
	}
	return orders, nil
}
