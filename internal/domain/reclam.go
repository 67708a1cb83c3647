package domain

import "time"

type ReclamStatus string

const (
	ReclamPending    ReclamStatus = "pending"
	ReclamInProgress ReclamStatus = "in_progress"
	ReclamResolved   ReclamStatus = "resolved"
	ReclamClosed     ReclamStatus = "closed"
	ReclamRejected   ReclamStatus = "rejected"
)

func (s ReclamStatus) Valid() bool {
	switch s {
	case ReclamPending, ReclamInProgress, ReclamResolved, ReclamClosed, ReclamRejected:
		return true
	}
	return false
}

// Settable reports whether s may be written through the status-only update.
// Rejection goes through its own operation because it needs a reason.
func (s ReclamStatus) Settable() bool {
	return s.Valid() && s != ReclamRejected
}

type ReclamPriority string

const (
	PriorityLow    ReclamPriority = "low"
	PriorityMedium ReclamPriority = "medium"
	PriorityHigh   ReclamPriority = "high"
)

func (p ReclamPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Reclam is a customer complaint attached to a region.
type Reclam struct {
	ID              int64          `json:"id" gorm:"primaryKey"`
	Title           string         `json:"title" gorm:"not null"`
	Description     string         `json:"description" gorm:"type:text;not null"`
	Status          ReclamStatus   `json:"status" gorm:"type:varchar(16);default:'pending';not null;index"`
	Priority        ReclamPriority `json:"priority" gorm:"type:varchar(16);not null;index"`
	DateDebut       time.Time      `json:"date_debut" gorm:"not null"`
	DateFin         *time.Time     `json:"date_fin,omitempty"`
	RegionID        int64          `json:"region_id" gorm:"not null;index"`
	UserID          int64          `json:"user_id" gorm:"not null;index"`
	Attachment      string         `json:"attachment,omitempty"`
	CurrentAgency   string         `json:"current_agency,omitempty"`
	RejectionReason string         `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`

	Region *Region `json:"region,omitempty" gorm:"foreignKey:RegionID;constraint:OnDelete:CASCADE"`
}

// ReclamView is a complaint enriched with its submitter for listings.
// The user reference is not a declared foreign key, so it may dangle.
type ReclamView struct {
	Reclam
	User   *UserPublic `json:"user,omitempty"`
	Region *RegionRef  `json:"region,omitempty"`
}

type StatusCount struct {
	Status ReclamStatus `json:"status"`
	Count  int64        `json:"count"`
}

type PriorityCount struct {
	Priority ReclamPriority `json:"priority"`
	Count    int64          `json:"count"`
}
