package region

import (
	"context"

	"reclamation/internal/domain"
	"reclamation/internal/repository"
)

type RegionRepository interface {
	Create(ctx context.Context, region *domain.Region) error
	GetByID(ctx context.Context, id int64) (*domain.Region, error)
	List(ctx context.Context) ([]domain.Region, error)
	Update(ctx context.Context, region *domain.Region) error
	Delete(ctx context.Context, id int64) error
}

type UserLister interface {
	List(ctx context.Context, f repository.UserFilter) ([]domain.User, error)
}
