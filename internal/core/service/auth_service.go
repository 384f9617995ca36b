package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/evrikaedu/catalog-api/internal/core/domain"
	"github.com/evrikaedu/catalog-api/internal/core/ports"
)

const (
	// PasswordCost is the bcrypt work factor used for every stored hash.
	PasswordCost = 12
	// TokenTTL is the lifetime of a session token.
	TokenTTL = 7 * 24 * time.Hour
)

// tokenClaims is the payload of a session token.
type tokenClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// AuthService implements registration, login and token verification.
type AuthService struct {
	repo      ports.AuthRepository
	attempts  ports.AttemptTracker
	jwtSecret []byte
	tokenTTL  time.Duration
	cost      int
	log       zerolog.Logger
}

func NewAuthService(repo ports.AuthRepository, attempts ports.AttemptTracker, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = TokenTTL
	}
	return &AuthService{
		repo:      repo,
		attempts:  attempts,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
		cost:      PasswordCost,
		log:       log,
	}
}

func (s *AuthService) Register(ctx context.Context, email, name, password, role string) (*domain.User, error) {
	email = normalizeEmail(email)
	switch {
	case email == "":
		return nil, domain.NewValidationError("email", "is required")
	case strings.TrimSpace(name) == "":
		return nil, domain.NewValidationError("name", "is required")
	case password == "":
		return nil, domain.NewValidationError("password", "is required")
	}
	if role == "" {
		role = domain.RoleUser
	}
	if !domain.ValidRole(role) {
		return nil, domain.NewValidationError("role", "must be one of: user admin")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Email:        email,
		Name:         strings.TrimSpace(name),
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", created.ID).Str("role", created.Role).Msg("user registered")
	return created.Public(), nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, domain.NewValidationError("email", "is required")
	}
	if password == "" {
		return nil, domain.NewValidationError("password", "is required")
	}

	locked, remaining, err := s.attempts.IsLocked(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("lockout check: %w", err)
	}
	if locked {
		s.log.Warn().Str("email", email).Dur("remaining", remaining).Msg("login rejected: locked out")
		return nil, &domain.LockedError{RemainingMinutes: remainingMinutes(remaining)}
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, s.failLogin(ctx, email)
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, s.failLogin(ctx, email)
	}

	if err := s.attempts.Reset(ctx, email); err != nil {
		s.log.Warn().Err(err).Str("email", email).Msg("failed to reset login attempts")
	}

	token, err := s.issueToken(user, s.tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &ports.LoginResult{User: user.Public(), Token: token}, nil
}

// failLogin records the failure and always yields the same error, whether the
// account exists or not.
func (s *AuthService) failLogin(ctx context.Context, email string) error {
	if err := s.attempts.RecordFailure(ctx, email); err != nil {
		s.log.Warn().Err(err).Str("email", email).Msg("failed to record login attempt")
	}
	s.log.Warn().Str("email", email).Msg("login failed")
	return domain.ErrInvalidCredentials
}

func (s *AuthService) GetUserByToken(ctx context.Context, token string) (*domain.User, error) {
	principal, err := s.VerifyToken(token)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.FindByID(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}
	return user.Public(), nil
}

// VerifyToken checks signature and expiry together. Every failure cause is
// reported as domain.ErrInvalidToken.
func (s *AuthService) VerifyToken(token string) (*domain.Principal, error) {
	if token == "" {
		return nil, domain.ErrInvalidToken
	}

	claims := &tokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid || claims.UserID == "" {
		return nil, domain.ErrInvalidToken
	}

	return &domain.Principal{
		UserID: claims.UserID,
		Email:  claims.Email,
		Role:   claims.Role,
	}, nil
}

func (s *AuthService) issueToken(user *domain.User, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.jwtSecret)
}

// normalizeEmail is applied on every path that stores, looks up or keys a
// lockout by email. Case is preserved.
func normalizeEmail(email string) string {
	return strings.TrimSpace(email)
}

// remainingMinutes rounds a lockout remainder up to whole minutes.
func remainingMinutes(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int(math.Ceil(float64(d.Milliseconds()) / 60000))
}
