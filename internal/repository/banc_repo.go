package repository

import (
	"context"
	"strings"

	"reclamation/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BancRepository struct {
	db *gorm.DB
}

func NewBancRepository(db *gorm.DB) *BancRepository {
	return &BancRepository{db: db}
}

// FindByCIN returns the reference row for a national id.
func (r *BancRepository) FindByCIN(ctx context.Context, cin string) (*domain.Banc, error) {
	var b domain.Banc
	err := r.db.WithContext(ctx).Where("cin = ?", strings.TrimSpace(cin)).First(&b).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &b, nil
}

// Seed inserts rows, skipping any cin already present.
func (r *BancRepository) Seed(ctx context.Context, rows []domain.Banc) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	tx := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "cin"}}, DoNothing: true}).
		Create(&rows)
	return tx.RowsAffected, tx.Error
}
