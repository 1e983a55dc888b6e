package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"smartbiz-backend/internal/auth"
	"smartbiz-backend/internal/metrics"
	"smartbiz-backend/internal/models"
	"smartbiz-backend/internal/repositories"
)

const minPasswordLength = 6

// AuthCache remembers recent successful logins. *cache.Cache satisfies it.
type AuthCache interface {
	GetCachedAuth(ctx context.Context, email, password string) bool
	CacheAuth(ctx context.Context, email, password string)
	InvalidateAuth(ctx context.Context, email string)
}

type UserService struct {
	Repo       *repositories.CredentialRepository
	JWTManager *auth.JWTManager
	Cache      AuthCache
}

func NewUserService(repo *repositories.CredentialRepository, jwtManager *auth.JWTManager, cache AuthCache) *UserService {
	return &UserService{Repo: repo, JWTManager: jwtManager, Cache: cache}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return invalid("password", "must be at least 6 characters")
	}
	return nil
}

// Signup registers a new user and returns a token for them.
func (s *UserService) Signup(ctx context.Context, req *models.SignupRequest) (*models.AuthResponse, error) {
	email := normalizeEmail(req.Email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, invalid("email", "is not a valid address")
	}
	if err := validatePassword(req.Password); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.Add(ctx, &models.UserCredentials{Email: email, PasswordHash: hash}); err != nil {
		return nil, err
	}

	log.Printf("[Auth] New user registered: %s", email)
	return s.issueToken(email)
}

// Login verifies credentials against the credentials sheet, short-circuiting
// through the cache when the same pair verified recently.
func (s *UserService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	email := normalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return nil, ErrInvalidCredentials
	}

	if s.Cache != nil && s.Cache.GetCachedAuth(ctx, email, req.Password) {
		metrics.AuthCacheLookups.WithLabelValues("hit").Inc()
		return s.issueToken(email)
	}
	metrics.AuthCacheLookups.WithLabelValues("miss").Inc()

	if err := s.verify(ctx, email, req.Password); err != nil {
		return nil, err
	}
	if s.Cache != nil {
		s.Cache.CacheAuth(ctx, email, req.Password)
	}
	return s.issueToken(email)
}

// ChangePassword replaces the password of a signed-in user after checking
// the current one. Cached logins for the user are dropped.
func (s *UserService) ChangePassword(ctx context.Context, email string, req *models.ChangePasswordRequest) error {
	email = normalizeEmail(email)
	if err := s.verify(ctx, email, req.CurrentPassword); err != nil {
		return err
	}
	if err := validatePassword(req.NewPassword); err != nil {
		return err
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	if err := s.Repo.UpdatePassword(ctx, email, hash); err != nil {
		return err
	}
	if s.Cache != nil {
		s.Cache.InvalidateAuth(ctx, email)
	}

	log.Printf("[Auth] Password changed for %s", email)
	return nil
}

func (s *UserService) verify(ctx context.Context, email, password string) error {
	creds, err := s.Repo.Get(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrInvalidCredentials
		}
		return err
	}
	if !strings.HasPrefix(creds.PasswordHash, "$2") {
		log.Printf("[Auth] Credentials for %s are not hashed; a password reset is required", email)
		return ErrInvalidCredentials
	}
	if !auth.VerifyPassword(creds.PasswordHash, password) {
		return ErrInvalidCredentials
	}
	return nil
}

func (s *UserService) issueToken(email string) (*models.AuthResponse, error) {
	token, err := s.JWTManager.GenerateToken(email)
	if err != nil {
		return nil, err
	}
	return &models.AuthResponse{Token: token, Email: email}, nil
}
