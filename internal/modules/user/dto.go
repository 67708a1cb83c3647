package user

import "reclamation/internal/domain"

type CreateUserRequest struct {
	Name               string  `json:"name" binding:"required"`
	FullName           string  `json:"full_name"`
	Email              string  `json:"email" binding:"required,email"`
	PhoneNumber        string  `json:"phone_number" binding:"required,phone"`
	Password           string  `json:"password" binding:"required,min=6"`
	Role               string  `json:"role" binding:"omitempty,user_role"`
	BankAccountNumber  string  `json:"bank_account_number"`
	BankAccountBalance float64 `json:"bank_account_balance" binding:"gte=0"`
	RegionID           *int64  `json:"region_id" binding:"omitempty,gt=0"`
}

type UpdateUserRequest struct {
	Name               string  `json:"name" binding:"required"`
	FullName           string  `json:"full_name"`
	Email              string  `json:"email" binding:"required,email"`
	PhoneNumber        string  `json:"phone_number" binding:"required,phone"`
	BankAccountNumber  string  `json:"bank_account_number"`
	BankAccountBalance float64 `json:"bank_account_balance" binding:"gte=0"`
}

type UpdateRoleRequest struct {
	Role     string `json:"role" binding:"required,user_role"`
	RegionID *int64 `json:"region_id" binding:"omitempty,gt=0"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResult struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}
