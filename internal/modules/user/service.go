package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"reclamation/internal/domain"
	"reclamation/internal/pkg/sanitize"
	"reclamation/internal/repository"
)

// Service contains user administration and login logic.
type Service struct {
	users   UserRepository
	regions RegionChecker
	jwt     jwtService
}

func NewService(users UserRepository, regions RegionChecker, jwt jwtService) *Service {
	return &Service{users: users, regions: regions, jwt: jwt}
}

// Create registers a user. Only admins may create agents or admins.
func (s *Service) Create(ctx context.Context, actor Actor, req CreateUserRequest) (*domain.User, error) {
	role := domain.RoleUser
	if req.Role != "" {
		role = domain.UserRole(req.Role)
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: role must be one of user, agent, admin", ErrValidation)
	}
	if role != domain.RoleUser && !actor.IsAdmin() {
		return nil, ErrForbidden
	}

	name := sanitize.Text(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}

	if err := s.validateEmailUnique(ctx, req.Email); err != nil {
		return nil, err
	}
	if err := s.checkRegion(ctx, req.RegionID); err != nil {
		return nil, err
	}

	hashedPassword, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	u := &domain.User{
		Name:               name,
		FullName:           sanitize.Text(req.FullName),
		Email:              strings.ToLower(strings.TrimSpace(req.Email)),
		PhoneNumber:        strings.TrimSpace(req.PhoneNumber),
		PasswordHash:       hashedPassword,
		Role:               role,
		BankAccountNumber:  strings.TrimSpace(req.BankAccountNumber),
		BankAccountBalance: req.BankAccountBalance,
		RegionID:           req.RegionID,
	}

	if err := s.users.Create(ctx, u); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, err
	}
	return u, nil
}

// Login never tells apart an unknown email from a wrong password.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	u, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(u.ID, string(u.Role))
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, User: u}, nil
}

func (s *Service) List(ctx context.Context, f repository.UserFilter) ([]domain.User, error) {
	if f.Role != "" && !f.Role.Valid() {
		return nil, fmt.Errorf("%w: unknown role filter", ErrValidation)
	}
	return s.users.List(ctx, f)
}

func (s *Service) Get(ctx context.Context, actor Actor, id int64) (*domain.User, error) {
	if !actor.CanManage(id) && actor.Role != domain.RoleAgent {
		return nil, ErrForbidden
	}
	return s.get(ctx, id)
}

func (s *Service) Update(ctx context.Context, actor Actor, id int64, req UpdateUserRequest) (*domain.User, error) {
	if !actor.CanManage(id) {
		return nil, ErrForbidden
	}
	u, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	name := sanitize.Text(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email != u.Email {
		if err := s.validateEmailUnique(ctx, email); err != nil {
			return nil, err
		}
	}

	u.Name = name
	u.FullName = sanitize.Text(req.FullName)
	u.Email = email
	u.PhoneNumber = strings.TrimSpace(req.PhoneNumber)
	u.BankAccountNumber = strings.TrimSpace(req.BankAccountNumber)
	u.BankAccountBalance = req.BankAccountBalance

	if err := s.users.UpdateProfile(ctx, u); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, err
	}
	return u, nil
}

// UpdateRole reassigns role and region. Region may be cleared with nil.
func (s *Service) UpdateRole(ctx context.Context, id int64, req UpdateRoleRequest) (*domain.User, error) {
	role := domain.UserRole(req.Role)
	if !role.Valid() {
		return nil, fmt.Errorf("%w: role must be one of user, agent, admin", ErrValidation)
	}
	if _, err := s.get(ctx, id); err != nil {
		return nil, err
	}
	if err := s.checkRegion(ctx, req.RegionID); err != nil {
		return nil, err
	}

	if err := s.users.UpdateRole(ctx, id, role, req.RegionID); err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.get(ctx, id)
}

func (s *Service) ChangePassword(ctx context.Context, actor Actor, req ChangePasswordRequest) error {
	u, err := s.get(ctx, actor.ID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return ErrWrongPassword
	}

	hash, err := hashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, u.ID, hash)
}

func (s *Service) Delete(ctx context.Context, actor Actor, id int64) error {
	if !actor.CanManage(id) {
		return ErrForbidden
	}
	if err := s.users.Delete(ctx, id); err != nil {
		if repository.IsNotFound(err) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *Service) get(ctx context.Context, id int64) (*domain.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (s *Service) validateEmailUnique(ctx context.Context, email string) error {
	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return err
	}
	if exists {
		return ErrEmailAlreadyExists
	}
	return nil
}

func (s *Service) checkRegion(ctx context.Context, regionID *int64) error {
	if regionID == nil {
		return nil
	}
	ok, err := s.regions.Exists(ctx, *regionID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrRegionNotFound
	}
	return nil
}

func hashPassword(password string) (string, error) {
	if len(password) < 6 {
		return "", fmt.Errorf("%w: password must be at least 6 characters", ErrValidation)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", fmt.Errorf("%w: password is too long", ErrValidation)
		}
		return "", err
	}
	return string(hash), nil
}
