package repository

import (
	"context"
	"strings"
	"time"

	"reclamation/internal/domain"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

type UserFilter struct {
	Role     domain.UserRole
	RegionID int64
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	u.Email = normalizeEmail(u.Email)
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var u domain.User
	if err := r.db.WithContext(ctx).Preload("Region").First(&u, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).
		Where("LOWER(email) = ?", normalizeEmail(email)).
		First(&u).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.User{}).
		Where("LOWER(email) = ?", normalizeEmail(email)).
		Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) List(ctx context.Context, f UserFilter) ([]domain.User, error) {
	users := make([]domain.User, 0)
	q := r.db.WithContext(ctx).Preload("Region").Order("id ASC")
	if f.Role != "" {
		q = q.Where("role = ?", f.Role)
	}
	if f.RegionID > 0 {
		q = q.Where("region_id = ?", f.RegionID)
	}
	err := q.Find(&users).Error
	return users, err
}

// UpdateProfile writes the editable profile columns of u.
func (r *UserRepository) UpdateProfile(ctx context.Context, u *domain.User) error {
	u.Email = normalizeEmail(u.Email)
	return r.db.WithContext(ctx).
		Model(u).
		Select("name", "full_name", "phone_number", "email", "bank_account_number", "bank_account_balance", "updated_at").
		Updates(u).Error
}

func (r *UserRepository) UpdateRole(ctx context.Context, id int64, role domain.UserRole, regionID *int64) error {
	return r.updateColumns(ctx, id, map[string]any{
		"role":      role,
		"region_id": regionID,
	})
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id int64, hash string) error {
	return r.updateColumns(ctx, id, map[string]any{"password_hash": hash})
}

func (r *UserRepository) SetResetToken(ctx context.Context, id int64, token string, expiresAt time.Time) error {
	return r.updateColumns(ctx, id, map[string]any{
		"reset_token":            token,
		"reset_token_expires_at": expiresAt,
	})
}

func (r *UserRepository) GetByResetToken(ctx context.Context, token string) (*domain.User, error) {
	var u domain.User
	if err := r.db.WithContext(ctx).Where("reset_token = ?", token).First(&u).Error; err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

// ResetPassword stores the new hash and clears the reset token in one statement.
func (r *UserRepository) ResetPassword(ctx context.Context, id int64, hash string) error {
	return r.updateColumns(ctx, id, map[string]any{
		"password_hash":          hash,
		"reset_token":            nil,
		"reset_token_expires_at": nil,
	})
}

func (r *UserRepository) SetVerificationToken(ctx context.Context, id int64, token string, expiresAt time.Time) error {
	return r.updateColumns(ctx, id, map[string]any{
		"verification_token":      token,
		"verification_expires_at": expiresAt,
	})
}

func (r *UserRepository) GetByVerificationToken(ctx context.Context, token string) (*domain.User, error) {
	var u domain.User
	if err := r.db.WithContext(ctx).Where("verification_token = ?", token).First(&u).Error; err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (r *UserRepository) MarkEmailVerified(ctx context.Context, id int64) error {
	return r.updateColumns(ctx, id, map[string]any{
		"email_verified":          true,
		"verification_token":      nil,
		"verification_expires_at": nil,
	})
}

// ClearExpiredTokens nulls reset and verification tokens whose expiry is before now.
func (r *UserRepository) ClearExpiredTokens(ctx context.Context, now time.Time) (resets, verifications int64, err error) {
	res := r.db.WithContext(ctx).
		Model(&domain.User{}).
		Where("reset_token IS NOT NULL AND reset_token_expires_at < ?", now).
		Updates(map[string]any{"reset_token": nil, "reset_token_expires_at": nil})
	if res.Error != nil {
		return 0, 0, res.Error
	}
	resets = res.RowsAffected

	res = r.db.WithContext(ctx).
		Model(&domain.User{}).
		Where("verification_token IS NOT NULL AND verification_expires_at < ?", now).
		Updates(map[string]any{"verification_token": nil, "verification_expires_at": nil})
	if res.Error != nil {
		return resets, 0, res.Error
	}
	return resets, res.RowsAffected, nil
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&domain.User{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *UserRepository) updateColumns(ctx context.Context, id int64, cols map[string]any) error {
	tx := r.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", id).Updates(cols)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
