package service

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"officetrack/internal/auth"
	"officetrack/internal/model"
	"officetrack/internal/repository"
)

var (
	// ErrInvalidCredentials is returned when email, password, or role is incorrect.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidSession is returned when a session token fails validation.
	ErrInvalidSession = errors.New("invalid session")
)

// AuthService handles login and logout.
type AuthService interface {
	Login(ctx context.Context, email, password, role string, remember bool) (token string, expiresAt time.Time, user *model.User, err error)
	// Logout revokes the session token server-side.
	Logout(ctx context.Context, token string) error
}

type authService struct {
	userRepo     repository.UserRepository
	jwtService   *auth.JWTService
	sessionStore auth.SessionStoreInterface
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService, sessionStore auth.SessionStoreInterface) AuthService {
	return &authService{
		userRepo:     userRepo,
		jwtService:   jwtService,
		sessionStore: sessionStore,
	}
}

// Login authenticates a user against email, password, and expected role.
func (s *authService) Login(ctx context.Context, email, password, role string, remember bool) (string, time.Time, *model.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", time.Time{}, nil, ErrInvalidCredentials
	}

	// The login form states the role; a mismatch is treated the same as a bad
	// password so the response leaks nothing about the account.
	if user.Role != role {
		return "", time.Time{}, nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", time.Time{}, nil, ErrInvalidCredentials
	}

	_, token, expiresAt, err := s.jwtService.GenerateSessionToken(user.ID, user.Role, user.Name, user.Email, remember)
	if err != nil {
		return "", time.Time{}, nil, err
	}

	return token, expiresAt, user, nil
}

// Logout blacklists the session token until its natural expiry.
func (s *authService) Logout(ctx context.Context, token string) error {
	claims, err := s.jwtService.ValidateToken(token)
	if err != nil {
		return ErrInvalidSession
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	return s.sessionStore.BlacklistSession(ctx, claims.ID, ttl)
}
