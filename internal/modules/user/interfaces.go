package user

import (
	"context"

	"reclamation/internal/domain"
	"reclamation/internal/repository"
)

// UserRepository is the subset of the user store this module uses.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context, f repository.UserFilter) ([]domain.User, error)
	UpdateProfile(ctx context.Context, u *domain.User) error
	UpdateRole(ctx context.Context, id int64, role domain.UserRole, regionID *int64) error
	UpdatePassword(ctx context.Context, id int64, hash string) error
	Delete(ctx context.Context, id int64) error
}

type RegionChecker interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

type jwtService interface {
	GenerateToken(userID int64, role string) (string, error)
}

// Actor is the authenticated caller of an operation.
type Actor struct {
	ID   int64
	Role domain.UserRole
}

func (a Actor) IsAdmin() bool { return a.Role == domain.RoleAdmin }

// CanManage reports whether the actor may read or edit user id.
func (a Actor) CanManage(id int64) bool {
	return a.IsAdmin() || a.ID == id
}
