package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"reclamation/internal/mail"
	"reclamation/internal/repository"
)

const tokenBytes = 32

// Config carries the token lifetimes and the base url used in mailed links.
type Config struct {
	FrontendURL     string
	ResetTTL        time.Duration
	VerificationTTL time.Duration
}

// Service implements password reset and email verification. Reset and
// verification tokens live in separate columns and never stand in for each other.
type Service struct {
	users  UserRepository
	mailer mail.Mailer
	cfg    Config
	log    *zap.Logger
	now    func() time.Time
	token  func() (string, error)
}

func NewService(users UserRepository, mailer mail.Mailer, cfg Config, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.ResetTTL <= 0 {
		cfg.ResetTTL = time.Hour
	}
	if cfg.VerificationTTL <= 0 {
		cfg.VerificationTTL = 24 * time.Hour
	}
	cfg.FrontendURL = strings.TrimRight(cfg.FrontendURL, "/")
	return &Service{
		users:  users,
		mailer: mailer,
		cfg:    cfg,
		log:    log,
		now:    time.Now,
		token:  newToken,
	}
}

// ForgotPassword stores a fresh reset token and mails the link. Unknown
// emails succeed silently. A mail failure leaves the token in place.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if repository.IsNotFound(err) {
			s.log.Info("password reset requested for unknown email")
			return nil
		}
		return err
	}

	token, err := s.token()
	if err != nil {
		return err
	}
	if err := s.users.SetResetToken(ctx, u.ID, token, s.now().Add(s.cfg.ResetTTL)); err != nil {
		return err
	}

	link := s.cfg.FrontendURL + "/reset-password/" + token
	if err := s.mailer.SendPasswordReset(ctx, u.Email, link); err != nil {
		s.log.Error("password reset email failed", zap.Int64("user_id", u.ID), zap.Error(err))
		return fmt.Errorf("%w: %v", ErrMailFailed, err)
	}
	return nil
}

// ResetPassword replaces the password of the user holding token and
// clears the token.
func (s *Service) ResetPassword(ctx context.Context, token, password string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return ErrInvalidToken
	}
	if len(password) < 6 {
		return fmt.Errorf("%w: password must be at least 6 characters", ErrValidation)
	}

	u, err := s.users.GetByResetToken(ctx, token)
	if err != nil {
		if repository.IsNotFound(err) {
			return ErrInvalidToken
		}
		return err
	}
	if u.ResetToken == nil || *u.ResetToken != token ||
		u.ResetTokenExpiresAt == nil || !s.now().Before(*u.ResetTokenExpiresAt) {
		return ErrInvalidToken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return fmt.Errorf("%w: password is too long", ErrValidation)
		}
		return err
	}
	return s.users.ResetPassword(ctx, u.ID, string(hash))
}

// SendVerification mails a verification link to the user's address.
func (s *Service) SendVerification(ctx context.Context, userID int64) error {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if repository.IsNotFound(err) {
			return ErrUserNotFound
		}
		return err
	}
	if u.EmailVerified {
		return ErrAlreadyVerified
	}

	token, err := s.token()
	if err != nil {
		return err
	}
	if err := s.users.SetVerificationToken(ctx, u.ID, token, s.now().Add(s.cfg.VerificationTTL)); err != nil {
		return err
	}

	link := s.cfg.FrontendURL + "/verify-email/" + token
	if err := s.mailer.SendVerification(ctx, u.Email, link); err != nil {
		s.log.Error("verification email failed", zap.Int64("user_id", u.ID), zap.Error(err))
		return fmt.Errorf("%w: %v", ErrMailFailed, err)
	}
	return nil
}

func (s *Service) VerifyEmail(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return ErrInvalidToken
	}
	u, err := s.users.GetByVerificationToken(ctx, token)
	if err != nil {
		if repository.IsNotFound(err) {
			return ErrInvalidToken
		}
		return err
	}
	if u.VerificationExpiresAt == nil || !s.now().Before(*u.VerificationExpiresAt) {
		return ErrInvalidToken
	}
	return s.users.MarkEmailVerified(ctx, u.ID)
}

func newToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
