package reclam

import "reclamation/internal/domain"

// ReclamRequest is the body of both create and full update.
type ReclamRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description" binding:"required"`
	Status      string  `json:"status" binding:"required,reclam_status"`
	Priority    string  `json:"priority" binding:"required,reclam_priority"`
	DateDebut   string  `json:"date_debut" binding:"required,isodate"`
	DateFin     *string `json:"date_fin" binding:"omitempty,isodate"`
	RegionID    int64   `json:"region_id" binding:"required,gt=0"`
	UserID      int64   `json:"user_id" binding:"required,gt=0"`
	Attachment  string  `json:"attachment" binding:"max=255"`
}

type StatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type RejectRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type AgencyRequest struct {
	Agency string `json:"current_agency" binding:"required"`
}

type Stats struct {
	Total      int64                  `json:"total"`
	ByStatus   []domain.StatusCount   `json:"by_status"`
	ByPriority []domain.PriorityCount `json:"by_priority"`
}
