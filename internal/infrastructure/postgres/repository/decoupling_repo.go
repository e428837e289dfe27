package repository

import (
	"context"

	"github.com/LavaJover/shvark-buffer-service/internal/domain"
	"github.com/LavaJover/shvark-buffer-service/internal/infrastructure/postgres/mappers"
	"gorm.io/gorm"
)

type DefaultDecouplingRepo struct {
	DB *gorm.DB
}

func NewDefaultDecouplingRepo(db *gorm.DB) *DefaultDecouplingRepo {
	return &DefaultDecouplingRepo{DB: db}
}

var _ domain.DecouplingRepository = (*DefaultDecouplingRepo)(nil)

func (r *DefaultDecouplingRepo) SaveRecommendation(ctx context.Context, rec *domain.DecouplingRecommendation) error {
	model, err := mappers.ToGORMRecommendation(rec)
	if err != nil {
		return err
	}
	return r.DB.WithContext(ctx).Create(model).Error
}
