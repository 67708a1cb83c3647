package domain

import "time"

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
	RoleAgent UserRole = "agent"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleAgent:
		return true
	}
	return false
}

type User struct {
	ID                 int64    `json:"id" gorm:"primaryKey"`
	Name               string   `json:"name" gorm:"not null"`
	FullName           string   `json:"full_name"`
	PhoneNumber        string   `json:"phone_number"`
	Email              string   `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash       string   `json:"-" gorm:"column:password_hash;not null"`
	Role               UserRole `json:"role" gorm:"type:varchar(16);default:'user';not null"`
	BankAccountNumber  string   `json:"bank_account_number"`
	BankAccountBalance float64  `json:"bank_account_balance"`
	RegionID           *int64   `json:"region_id,omitempty" gorm:"index"`
	Region             *Region  `json:"region,omitempty" gorm:"foreignKey:RegionID;constraint:OnDelete:SET NULL"`
	EmailVerified      bool     `json:"email_verified"`

	ResetToken            *string    `json:"-" gorm:"index"`
	ResetTokenExpiresAt   *time.Time `json:"-"`
	VerificationToken     *string    `json:"-" gorm:"index"`
	VerificationExpiresAt *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserPublic is the subset of a user attached to complaints returned to agents.
type UserPublic struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	FullName    string   `json:"full_name"`
	Email       string   `json:"email"`
	PhoneNumber string   `json:"phone_number"`
	Role        UserRole `json:"role"`
}
