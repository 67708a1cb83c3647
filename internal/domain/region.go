package domain

import "time"

type Region struct {
	ID        int64      `json:"id" gorm:"primaryKey"`
	Name      string     `json:"name" gorm:"not null"`
	DateDebut time.Time  `json:"date_debut" gorm:"not null"`
	DateFin   *time.Time `json:"date_fin,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type RegionRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
