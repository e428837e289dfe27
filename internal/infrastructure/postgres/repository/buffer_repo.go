package repository

import (
	"context"
	"errors"

	"github.com/LavaJover/shvark-buffer-service/internal/domain"
	"github.com/LavaJover/shvark-buffer-service/internal/infrastructure/postgres/mappers"
	"github.com/LavaJover/shvark-buffer-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultBufferRepo struct {
	DB *gorm.DB
}

func NewDefaultBufferRepo(db *gorm.DB) *DefaultBufferRepo {
	return &DefaultBufferRepo{DB: db}
}

var _ domain.BufferRepository = (*DefaultBufferRepo)(nil)

func (r *DefaultBufferRepo) ListBuffers(ctx context.Context, scope domain.Scope) ([]*domain.BufferState, error) {
	var rows []models.BufferStateModel
	q := applyScope(r.DB.WithContext(ctx).Model(&models.BufferStateModel{}), scope, "")
	if err := q.Order("product_id, location_id").Find(&rows).Error; err != nil {
		return nil, err
	}

	buffers := make([]*domain.BufferState, 0, len(rows))
	for i := range rows {
		buffers = append(buffers, mappers.ToDomainBuffer(&rows[i]))
	}
	return buffers, nil
}

func (r *DefaultBufferRepo) GetBuffer(ctx context.Context, productID, locationID string) (*domain.BufferState, error) {
	var row models.BufferStateModel
	err := r.DB.WithContext(ctx).
		Where("product_id = ? AND location_id = ?", productID, locationID).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrBufferNotFound
		}
		return nil, err
	}
	return mappers.ToDomainBuffer(&row), nil
}

func (r *DefaultBufferRepo) ApplyRecalculation(ctx context.Context, b *domain.BufferState, record *domain.RecalculationHistoryRecord) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.BufferStateModel{}).
			Where("product_id = ? AND location_id = ?", b.ProductID, b.LocationID).
			Updates(map[string]any{
				"adu":                  b.ADU,
				"variability_factor":   b.VariabilityFactor,
				"red_zone":             b.Zones.Red,
				"yellow_zone":          b.Zones.Yellow,
				"green_zone":           b.Zones.Green,
				"daf":                  b.DAF,
				"ltaf":                 b.LTAF,
				"last_recalculated_at": b.LastRecalculatedAt,
				"updated_at":           b.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrBufferNotFound
		}

		return tx.Create(mappers.ToGORMRecalculation(record)).Error
	})
}

func (r *DefaultBufferRepo) ListHistory(ctx context.Context, productID, locationID string, limit int) ([]*domain.RecalculationHistoryRecord, error) {
	var rows []models.RecalculationHistoryModel
	q := r.DB.WithContext(ctx).
		Where("product_id = ? AND location_id = ?", productID, locationID).
		Order("recalc_ts DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}

	records := make([]*domain.RecalculationHistoryRecord, 0, len(rows))
	for i := range rows {
		records = append(records, mappers.ToDomainRecalculation(&rows[i]))
	}
	return records, nil
}
