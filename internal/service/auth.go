package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/pageza/smartchef/backend/internal/common"
	"github.com/pageza/smartchef/backend/internal/logging"
	"github.com/pageza/smartchef/backend/internal/models"
	"github.com/pageza/smartchef/backend/internal/store"
	"github.com/pageza/smartchef/backend/internal/types"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenRevoked = errors.New("token has been revoked")
)

// AuthService owns accounts and the tokens issued for them.
type AuthService struct {
	users     store.UserRepository
	jwtSecret []byte
	tokenTTL  time.Duration
	denylist  TokenDenylist
	now       func() time.Time
}

// NewAuthService creates an AuthService. denylist may be nil, in which case
// logout only discards the token client side.
func NewAuthService(users store.UserRepository, jwtSecret string, tokenTTL time.Duration, denylist TokenDenylist) *AuthService {
	return &AuthService{
		users:     users,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
		denylist:  denylist,
		now:       time.Now,
	}
}

// Register creates an account after a single existence check covering both
// the username and the email.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	const op = "auth.register"

	existing, err := s.users.FindByUsernameOrEmail(ctx, username, email)
	switch {
	case err == nil:
		if existing.Username == username {
			return nil, common.E(common.KindDuplicateUsername, op, nil)
		}
		return nil, common.E(common.KindDuplicateEmail, op, nil)
	case !errors.Is(err, common.ErrNotFound):
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Language:     models.DefaultLanguage,
		Theme:        models.DefaultTheme,
		Favorites:    []string{},
		CreatedAt:    s.now().UTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	logging.For("auth").WithField("user_id", user.ID).Info("User registered")
	return user, nil
}

// Authenticate looks the user up by username or email and checks the
// password. Both failure kinds match common.ErrInvalidCredentials.
func (s *AuthService) Authenticate(ctx context.Context, usernameOrEmail, password string) (*models.User, error) {
	const op = "auth.authenticate"

	user, err := s.users.FindByUsernameOrEmail(ctx, usernameOrEmail, usernameOrEmail)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.E(common.KindUserNotFound, op, nil)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return nil, common.E(common.KindInvalidPassword, op, nil)
	}
	return user, nil
}

func (s *AuthService) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return s.users.GetByID(ctx, id)
}

// UpdateSettings applies the non-empty fields of settings.
func (s *AuthService) UpdateSettings(ctx context.Context, id string, settings models.UserSettings) error {
	if settings.Empty() {
		return common.E(common.KindNoChanges, "auth.update_settings", nil)
	}
	return s.users.UpdateSettings(ctx, id, settings)
}

// GenerateToken issues an HS256 token for user.
func (s *AuthService) GenerateToken(user *models.User) (string, error) {
	now := s.now()
	claims := &types.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
		UserID:   user.ID,
		Username: user.Username,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken verifies the signature and expiry and rejects revoked tokens.
func (s *AuthService) ValidateToken(ctx context.Context, tokenString string) (*types.TokenClaims, error) {
	claims := &types.TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.UserID == "" {
		return nil, ErrInvalidToken
	}

	if s.denylist != nil && claims.ID != "" {
		revoked, err := s.denylist.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, err
		}
		if revoked {
			return nil, ErrTokenRevoked
		}
	}
	return claims, nil
}

// Logout revokes the token until its natural expiry.
func (s *AuthService) Logout(ctx context.Context, claims *types.TokenClaims) error {
	if s.denylist == nil {
		logging.For("auth").Debug("No token denylist configured, logout is client side only")
		return nil
	}
	if !claims.Revocable() {
		return ErrInvalidToken
	}
	return s.denylist.Revoke(ctx, claims.ID, claims.Remaining(s.now()))
}
