package reclam

import (
	"context"

	"reclamation/internal/domain"
)

type ReclamRepository interface {
	Create(ctx context.Context, rec *domain.Reclam) error
	GetByID(ctx context.Context, id int64) (*domain.Reclam, error)
	List(ctx context.Context) ([]domain.ReclamView, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.ReclamView, error)
	ListByRegion(ctx context.Context, regionID int64) ([]domain.ReclamView, error)
	ListByPriority(ctx context.Context, p domain.ReclamPriority) ([]domain.ReclamView, error)
	Search(ctx context.Context, query string) ([]domain.ReclamView, error)
	Update(ctx context.Context, rec *domain.Reclam) error
	UpdateStatus(ctx context.Context, id int64, status domain.ReclamStatus) error
	Reject(ctx context.Context, id int64, reason string) error
	UpdateAgency(ctx context.Context, id int64, agency string) error
	Delete(ctx context.Context, id int64) error
	CountByStatus(ctx context.Context) ([]domain.StatusCount, error)
	CountByPriority(ctx context.Context) ([]domain.PriorityCount, error)
}

// ExistenceChecker is satisfied by both the region and the user repositories.
type ExistenceChecker interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

// Actor is the authenticated caller of an operation.
type Actor struct {
	ID   int64
	Role domain.UserRole
}

func (a Actor) IsStaff() bool {
	return a.Role == domain.RoleAgent || a.Role == domain.RoleAdmin
}

// Owns reports whether the actor may change rec.
func (a Actor) Owns(rec *domain.Reclam) bool {
	return a.IsStaff() || rec.UserID == a.ID
}
