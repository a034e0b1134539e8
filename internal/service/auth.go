package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/udmdigital/lead-crm-api/internal/auth"
	"github.com/udmdigital/lead-crm-api/internal/repository"
)

// Auth error sentinels surfaced to handlers.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")
)

// DefaultRole is assigned to self-registered accounts.
const DefaultRole = "sales"

// ResetMailer sends a password-reset token to an account address.
type ResetMailer interface {
	SendPasswordReset(to, token string) error
}

// AuthService coordinates credential validation and token issuance.
type AuthService struct {
	users  repository.UsersRepository
	jwt    *auth.JWTManager
	mailer ResetMailer
	log    *zap.Logger
}

// NewAuthService constructs a new AuthService. The mailer may be nil, in
// which case password resets are acknowledged but no mail goes out.
func NewAuthService(users repository.UsersRepository, jwtManager *auth.JWTManager, mailer ResetMailer, log *zap.Logger) *AuthService {
	if log == nil {
		log = zap.NewNop()
	}
	return &AuthService{users: users, jwt: jwtManager, mailer: mailer, log: log}
}

// Login validates credentials and returns a JWT.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return "", ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(user.ID.String(), user.Email, user.Role)
	if err != nil {
		return "", err
	}

	return token, nil
}

// Register creates an account with the default role and returns a JWT.
func (s *AuthService) Register(ctx context.Context, email, password string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return "", ValidationError{Message: "email and password are required"}
	}

	normalized, err := NormalizeEmail(email)
	if err != nil {
		return "", ValidationError{Message: err.Error()}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	user, err := s.users.Create(ctx, normalized, string(hashed), DefaultRole)
	if err != nil {
		if errors.Is(err, repository.ErrEmailDuplicate) {
			return "", ErrEmailAlreadyExists
		}
		return "", err
	}

	token, err := s.jwt.GenerateToken(user.ID.String(), user.Email, user.Role)
	if err != nil {
		return "", err
	}

	return token, nil
}

// ResetPassword issues a short-lived reset token and mails it to the
// account. The call always acknowledges: an unknown address or a mail
// failure is logged but not revealed to the caller.
func (s *AuthService) ResetPassword(ctx context.Context, email string) {
	email = strings.TrimSpace(email)
	if email == "" {
		return
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, repository.ErrUserNotFound) {
			s.log.Warn("password reset lookup failed", zap.Error(err))
		}
		return
	}

	token, err := s.jwt.GenerateResetToken(user.ID.String(), user.Email)
	if err != nil {
		s.log.Warn("password reset token generation failed", zap.Error(err))
		return
	}

	if s.mailer == nil {
		s.log.Info("password reset requested but no mailer configured", zap.String("email", user.Email))
		return
	}
	if err := s.mailer.SendPasswordReset(user.Email, token); err != nil {
		s.log.Warn("password reset email failed", zap.Error(err))
	}
}

// CompleteReset verifies an emailed reset token and stores a new credential.
func (s *AuthService) CompleteReset(ctx context.Context, token, newPassword string) error {
	if token == "" || newPassword == "" {
		return ValidationError{Message: "token and new password are required"}
	}

	claims, err := s.jwt.ParseToken(token)
	if err != nil || claims.Purpose != auth.PurposeReset {
		return ErrInvalidResetToken
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return ErrInvalidResetToken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := s.users.UpdatePasswordHash(ctx, id, string(hashed)); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrInvalidResetToken
		}
		return err
	}

	return nil
}
