package auth

import (
	"context"
	"time"

	"reclamation/internal/domain"
)

// UserRepository is the token side of the user store.
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	SetResetToken(ctx context.Context, id int64, token string, expiresAt time.Time) error
	GetByResetToken(ctx context.Context, token string) (*domain.User, error)
	ResetPassword(ctx context.Context, id int64, hash string) error
	SetVerificationToken(ctx context.Context, id int64, token string, expiresAt time.Time) error
	GetByVerificationToken(ctx context.Context, token string) (*domain.User, error)
	MarkEmailVerified(ctx context.Context, id int64) error
}
