package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/zachariahbioto-bot/Nutrition/logger"
	"github.com/zachariahbioto-bot/Nutrition/models"
	"github.com/zachariahbioto-bot/Nutrition/utils"
	"go.uber.org/zap"
)

const (
	minPasswordLen = 8
	resetCodeLen   = 6
	resetCodeTTL   = 15 * time.Minute
)

type ResetMailer interface {
	SendResetEmail(ctx context.Context, to, token string) error
}

type AuthService struct {
	users     UserStore
	mailer    ResetMailer
	jwtSecret []byte
	now       func() time.Time
}

// NewAuthService wires auth. mailer may be nil, in which case reset codes are
// generated but only logged.
func NewAuthService(users UserStore, mailer ResetMailer, jwtSecret []byte) *AuthService {
	return &AuthService{users: users, mailer: mailer, jwtSecret: jwtSecret, now: time.Now}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AuthService) Register(ctx context.Context, email, password, fullName string) (*models.User, error) {
	email = normalizeEmail(email)
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("invalid email: %w", utils.ErrValidation)
	}
	if len(password) < minPasswordLen {
		return nil, fmt.Errorf("password must be at least %d characters: %w", minPasswordLen, utils.ErrValidation)
	}

	_, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		return nil, fmt.Errorf("email already registered: %w", utils.ErrConflict)
	}
	if !errors.Is(err, utils.ErrNotFound) {
		return nil, err
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}
	u := &models.User{Email: email, Password: hashed, FullName: strings.TrimSpace(fullName)}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Login returns a signed token. Unknown email and wrong password look the same.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	u, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, utils.ErrNotFound) || (err == nil && !utils.CheckPasswordHash(password, u.Password)) {
		return "", nil, fmt.Errorf("invalid email or password: %w", utils.ErrUnauthorized)
	}
	if err != nil {
		return "", nil, err
	}

	token, err := utils.GenerateJWT(s.jwtSecret, u.ID, u.Email)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

// ForgotPassword stores a short reset code and mails it. Unknown addresses
// succeed silently so callers cannot probe for accounts.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	u, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, utils.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	code := utils.GenerateRandomToken(resetCodeLen)
	u.ResetToken = code
	u.ResetTokenExp = s.now().Add(resetCodeTTL)
	if err := s.users.Save(ctx, u); err != nil {
		return err
	}

	if s.mailer == nil {
		logger.Warn("no mailer configured, reset code not sent", zap.Uint("user_id", u.ID))
		return nil
	}
	return s.mailer.SendResetEmail(ctx, u.Email, code)
}

func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if token == "" {
		return fmt.Errorf("invalid or expired token: %w", utils.ErrValidation)
	}
	if len(newPassword) < minPasswordLen {
		return fmt.Errorf("password must be at least %d characters: %w", minPasswordLen, utils.ErrValidation)
	}
	u, err := s.users.FindByResetToken(ctx, token)
	if errors.Is(err, utils.ErrNotFound) || (err == nil && s.now().After(u.ResetTokenExp)) {
		return fmt.Errorf("invalid or expired token: %w", utils.ErrValidation)
	}
	if err != nil {
		return err
	}

	hashed, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}
	u.Password = hashed
	u.ResetToken = ""
	u.ResetTokenExp = time.Time{}
	return s.users.Save(ctx, u)
}
