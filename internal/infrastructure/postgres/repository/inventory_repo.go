package repository

import (
	"context"
	"time"

	"github.com/LavaJover/shvark-buffer-service/internal/domain"
	"github.com/LavaJover/shvark-buffer-service/internal/infrastructure/postgres/mappers"
	"github.com/LavaJover/shvark-buffer-service/internal/infrastructure/postgres/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type DefaultInventoryRepo struct {
	DB *gorm.DB
}

func NewDefaultInventoryRepo(db *gorm.DB) *DefaultInventoryRepo {
	return &DefaultInventoryRepo{DB: db}
}

var _ domain.InventoryRepository = (*DefaultInventoryRepo)(nil)

// LatestOnHand возвращает ноль, если снимков по паре нет.
func (r *DefaultInventoryRepo) LatestOnHand(ctx context.Context, productID, locationID string) (decimal.Decimal, error) {
	var rows []models.OnHandSnapshotModel
	err := r.DB.WithContext(ctx).
		Where("product_id = ? AND location_id = ?", productID, locationID).
		Order("captured_at DESC").
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return decimal.Zero, err
	}
	if len(rows) == 0 {
		return decimal.Zero, nil
	}
	return rows[0].Qty, nil
}

func (r *DefaultInventoryRepo) OpenSupply(ctx context.Context, productID, locationID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.DB.WithContext(ctx).
		Model(&models.OpenSupplyOrderModel{}).
		Select("COALESCE(SUM(open_qty), 0)").
		Where("product_id = ? AND location_id = ? AND status = ?", productID, locationID, domain.SupplyOpen).
		Row().
		Scan(&total)
	if err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

func (r *DefaultInventoryRepo) DemandHistory(ctx context.Context, productID, locationID string, from, to time.Time) ([]*domain.DemandRecord, error) {
	var rows []models.DemandRecordModel
	err := r.DB.WithContext(ctx).
		Where("product_id = ? AND location_id = ?", productID, locationID).
		Where("demand_date >= ? AND demand_date < ?", from, to).
		Order("demand_date").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	records := make([]*domain.DemandRecord, 0, len(rows))
	for i := range rows {
		records = append(records, mappers.ToDomainDemand(&rows[i]))
	}
	return records, nil
}

func (r *DefaultInventoryRepo) ActiveAdjustments(ctx context.Context, productID, locationID string, at time.Time) ([]*domain.PlannedAdjustment, error) {
	var rows []models.PlannedAdjustmentModel
	err := r.DB.WithContext(ctx).
		Where("product_id = ? AND location_id = ?", productID, locationID).
		Where("starts_at <= ? AND ends_at > ?", at, at).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	adjustments := make([]*domain.PlannedAdjustment, 0, len(rows))
	for i := range rows {
		adjustments = append(adjustments, mappers.ToDomainAdjustment(&rows[i]))
	}
	return adjustments, nil
}
