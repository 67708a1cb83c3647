// Package events defines the complaint lifecycle messages published to the broker.
package events

import "time"

const (
	QueueReclamCreated       = "reclam.created"
	QueueReclamStatusChanged = "reclam.status_changed"
)

// ReclamCreated is published after a complaint is stored.
type ReclamCreated struct {
	ReclamID  int64     `json:"reclam_id"`
	UserID    int64     `json:"user_id"`
	RegionID  int64     `json:"region_id"`
	Title     string    `json:"title"`
	Priority  string    `json:"priority"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// ReclamStatusChanged is published whenever the status column is rewritten,
// including rejections.
type ReclamStatusChanged struct {
	ReclamID  int64     `json:"reclam_id"`
	UserID    int64     `json:"user_id"`
	RegionID  int64     `json:"region_id"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	Reason    string    `json:"reason,omitempty"`
	ChangedAt time.Time `json:"changed_at"`
}
