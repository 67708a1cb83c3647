package domain

// Banc is a reference row used to confirm a claimed national id and name.
type Banc struct {
	ID       int64  `json:"id" gorm:"primaryKey"`
	CIN      string `json:"cin" gorm:"column:cin;uniqueIndex;not null"`
	Name     string `json:"name" gorm:"not null"`
	FullName string `json:"full_name"`
}

func (Banc) TableName() string { return "bancs" }
