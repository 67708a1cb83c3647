package repository

import (
	"context"

	"reclamation/internal/domain"

	"gorm.io/gorm"
)

type RegionRepository struct {
	db *gorm.DB
}

func NewRegionRepository(db *gorm.DB) *RegionRepository {
	return &RegionRepository{db: db}
}

func (r *RegionRepository) Create(ctx context.Context, region *domain.Region) error {
	return r.db.WithContext(ctx).Create(region).Error
}

func (r *RegionRepository) GetByID(ctx context.Context, id int64) (*domain.Region, error) {
	var region domain.Region
	if err := r.db.WithContext(ctx).First(&region, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &region, nil
}

func (r *RegionRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Region{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *RegionRepository) List(ctx context.Context) ([]domain.Region, error) {
	regions := make([]domain.Region, 0)
	err := r.db.WithContext(ctx).Order("name ASC").Find(&regions).Error
	return regions, err
}

func (r *RegionRepository) Update(ctx context.Context, region *domain.Region) error {
	return r.db.WithContext(ctx).
		Model(region).
		Select("name", "date_debut", "date_fin", "updated_at").
		Updates(region).Error
}

func (r *RegionRepository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&domain.Region{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
