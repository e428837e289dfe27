package repository

import (
	"context"
	"errors"

	"github.com/LavaJover/shvark-buffer-service/internal/domain"
	"github.com/LavaJover/shvark-buffer-service/internal/infrastructure/postgres/mappers"
	"github.com/LavaJover/shvark-buffer-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultMasterDataRepo struct {
	DB *gorm.DB
}

func NewDefaultMasterDataRepo(db *gorm.DB) *DefaultMasterDataRepo {
	return &DefaultMasterDataRepo{DB: db}
}

var _ domain.MasterDataRepository = (*DefaultMasterDataRepo)(nil)

func (r *DefaultMasterDataRepo) GetLocation(ctx context.Context, locationID string) (*domain.Location, error) {
	var row models.LocationModel
	if err := r.DB.WithContext(ctx).First(&row, "id = ?", locationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrLocationNotFound
		}
		return nil, err
	}
	return mappers.ToDomainLocation(&row), nil
}

func (r *DefaultMasterDataRepo) GetProfile(ctx context.Context, profileID string) (*domain.BufferProfile, error) {
	var row models.BufferProfileModel
	if err := r.DB.WithContext(ctx).First(&row, "id = ?", profileID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return mappers.ToDomainProfile(&row), nil
}
