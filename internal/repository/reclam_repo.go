package repository

import (
	"context"
	"time"

	"reclamation/internal/domain"

	"gorm.io/gorm"
)

type ReclamRepository struct {
	db *gorm.DB
}

func NewReclamRepository(db *gorm.DB) *ReclamRepository {
	return &ReclamRepository{db: db}
}

// reclamJoinRow is one complaint LEFT JOINed with its submitter and region.
// The user columns are NULL when the user reference dangles.
type reclamJoinRow struct {
	ID              int64      `gorm:"column:id"`
	Title           string     `gorm:"column:title"`
	Description     string     `gorm:"column:description"`
	Status          string     `gorm:"column:status"`
	Priority        string     `gorm:"column:priority"`
	DateDebut       time.Time  `gorm:"column:date_debut"`
	DateFin         *time.Time `gorm:"column:date_fin"`
	RegionID        int64      `gorm:"column:region_id"`
	UserID          int64      `gorm:"column:user_id"`
	Attachment      *string    `gorm:"column:attachment"`
	CurrentAgency   *string    `gorm:"column:current_agency"`
	RejectionReason *string    `gorm:"column:rejection_reason"`
	CreatedAt       time.Time  `gorm:"column:created_at"`
	UpdatedAt       time.Time  `gorm:"column:updated_at"`

	RegionName *string `gorm:"column:region_name"`

	UserRefID    *int64  `gorm:"column:user_ref_id"`
	UserName     *string `gorm:"column:user_name"`
	UserFullName *string `gorm:"column:user_full_name"`
	UserEmail    *string `gorm:"column:user_email"`
	UserPhone    *string `gorm:"column:user_phone"`
	UserRole     *string `gorm:"column:user_role"`
}

const reclamJoinSelect = `reclams.id, reclams.title, reclams.description, reclams.status, reclams.priority,
reclams.date_debut, reclams.date_fin, reclams.region_id, reclams.user_id, reclams.attachment,
reclams.current_agency, reclams.rejection_reason, reclams.created_at, reclams.updated_at,
regions.name AS region_name,
users.id AS user_ref_id, users.name AS user_name, users.full_name AS user_full_name,
users.email AS user_email, users.phone_number AS user_phone, users.role AS user_role`

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func toReclamView(row reclamJoinRow) domain.ReclamView {
	v := domain.ReclamView{
		Reclam: domain.Reclam{
			ID:              row.ID,
			Title:           row.Title,
			Description:     row.Description,
			Status:          domain.ReclamStatus(row.Status),
			Priority:        domain.ReclamPriority(row.Priority),
			DateDebut:       row.DateDebut,
			DateFin:         row.DateFin,
			RegionID:        row.RegionID,
			UserID:          row.UserID,
			Attachment:      deref(row.Attachment),
			CurrentAgency:   deref(row.CurrentAgency),
			RejectionReason: deref(row.RejectionReason),
			CreatedAt:       row.CreatedAt,
			UpdatedAt:       row.UpdatedAt,
		},
	}
	if row.RegionName != nil {
		v.Region = &domain.RegionRef{ID: row.RegionID, Name: *row.RegionName}
	}
	if row.UserRefID != nil {
		v.User = &domain.UserPublic{
			ID:          *row.UserRefID,
			Name:        deref(row.UserName),
			FullName:    deref(row.UserFullName),
			Email:       deref(row.UserEmail),
			PhoneNumber: deref(row.UserPhone),
			Role:        domain.UserRole(deref(row.UserRole)),
		}
	}
	return v
}

func (r *ReclamRepository) joined(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("reclams").
		Select(reclamJoinSelect).
		Joins("LEFT JOIN users ON users.id = reclams.user_id").
		Joins("LEFT JOIN regions ON regions.id = reclams.region_id").
		Order("reclams.created_at DESC, reclams.id DESC")
}

func (r *ReclamRepository) findViews(q *gorm.DB) ([]domain.ReclamView, error) {
	var rows []reclamJoinRow
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.ReclamView, 0, len(rows))
	for _, row := range rows {
		out = append(out, toReclamView(row))
	}
	return out, nil
}

func (r *ReclamRepository) Create(ctx context.Context, rec *domain.Reclam) error {
	return r.db.WithContext(ctx).Omit("Region").Create(rec).Error
}

func (r *ReclamRepository) GetByID(ctx context.Context, id int64) (*domain.Reclam, error) {
	var rec domain.Reclam
	if err := r.db.WithContext(ctx).Preload("Region").First(&rec, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &rec, nil
}

func (r *ReclamRepository) List(ctx context.Context) ([]domain.ReclamView, error) {
	return r.findViews(r.joined(ctx))
}

func (r *ReclamRepository) ListByUser(ctx context.Context, userID int64) ([]domain.ReclamView, error) {
	return r.findViews(r.joined(ctx).Where("reclams.user_id = ?", userID))
}

// ListByRegion returns every complaint of the region in one query, including
// the ones whose submitter no longer exists (their User is nil).
func (r *ReclamRepository) ListByRegion(ctx context.Context, regionID int64) ([]domain.ReclamView, error) {
	return r.findViews(r.joined(ctx).Where("reclams.region_id = ?", regionID))
}

func (r *ReclamRepository) ListByPriority(ctx context.Context, p domain.ReclamPriority) ([]domain.ReclamView, error) {
	return r.findViews(r.joined(ctx).Where("reclams.priority = ?", p))
}

// Search matches query as a case-sensitive substring of title or description.
// LIKE folds ASCII case on SQLite, so the match goes through instr/strpos instead.
func (r *ReclamRepository) Search(ctx context.Context, query string) ([]domain.ReclamView, error) {
	pos := "strpos"
	if r.db.Dialector.Name() == "sqlite" {
		pos = "instr"
	}
	return r.findViews(r.joined(ctx).Where(
		pos+"(reclams.title, ?) > 0 OR "+pos+"(reclams.description, ?) > 0",
		query, query,
	))
}

// Update replaces the substantive columns of rec.
func (r *ReclamRepository) Update(ctx context.Context, rec *domain.Reclam) error {
	return r.db.WithContext(ctx).
		Model(rec).
		Select("title", "description", "status", "priority", "date_debut", "date_fin", "region_id", "user_id", "attachment", "updated_at").
		Updates(rec).Error
}

func (r *ReclamRepository) UpdateStatus(ctx context.Context, id int64, status domain.ReclamStatus) error {
	return r.updateColumns(ctx, id, map[string]any{"status": status})
}

func (r *ReclamRepository) Reject(ctx context.Context, id int64, reason string) error {
	return r.updateColumns(ctx, id, map[string]any{
		"status":           domain.ReclamRejected,
		"rejection_reason": reason,
	})
}

func (r *ReclamRepository) UpdateAgency(ctx context.Context, id int64, agency string) error {
	return r.updateColumns(ctx, id, map[string]any{"current_agency": agency})
}

func (r *ReclamRepository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&domain.Reclam{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ReclamRepository) CountByStatus(ctx context.Context) ([]domain.StatusCount, error) {
	out := make([]domain.StatusCount, 0)
	err := r.db.WithContext(ctx).
		Model(&domain.Reclam{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Order("status").
		Scan(&out).Error
	return out, err
}

func (r *ReclamRepository) CountByPriority(ctx context.Context) ([]domain.PriorityCount, error) {
	out := make([]domain.PriorityCount, 0)
	err := r.db.WithContext(ctx).
		Model(&domain.Reclam{}).
		Select("priority, COUNT(*) AS count").
		Group("priority").
		Order("priority").
		Scan(&out).Error
	return out, err
}

func (r *ReclamRepository) updateColumns(ctx context.Context, id int64, cols map[string]any) error {
	tx := r.db.WithContext(ctx).Model(&domain.Reclam{}).Where("id = ?", id).Updates(cols)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
