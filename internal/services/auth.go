package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/teddy12-design/my-blog/internal/models"
	"github.com/teddy12-design/my-blog/internal/store"
	"github.com/teddy12-design/my-blog/pkg/utils"
)

var (
	// ErrInvalidCredentials covers both an unknown username and a wrong
	// password, so a caller cannot probe which usernames exist.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUsernameTaken is returned when registering an existing username.
	ErrUsernameTaken = errors.New("username already in use")
	// ErrInvalidToken is returned for any token that fails verification.
	ErrInvalidToken = errors.New("invalid token")
)

// Claims defines the JWT claims carried by a session token.
type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// AuthService validates credentials and issues and verifies session tokens.
type AuthService struct {
	users    store.UserStore
	secret   []byte
	tokenTTL time.Duration
	log      *zap.SugaredLogger
}

func NewAuthService(users store.UserStore, secret []byte, tokenTTL time.Duration, log *zap.SugaredLogger) *AuthService {
	return &AuthService{users: users, secret: secret, tokenTTL: tokenTTL, log: log}
}

// Register creates a new user and returns a session token, so registration
// also logs the user in. A duplicate username maps to ErrUsernameTaken and
// leaves the existing user untouched.
func (s *AuthService) Register(ctx context.Context, username, password string) (string, error) {
	hashed, err := utils.HashPassword(password)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username: username,
		Password: hashed,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrUsernameTaken) {
			return "", ErrUsernameTaken
		}
		return "", fmt.Errorf("failed to create user: %w", err)
	}

	s.log.Infow("user registered", "username", username)
	return s.IssueToken(user.ID.Hex())
}

// Login verifies the credentials and returns a session token.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("failed to look up user: %w", err)
	}

	if !utils.CheckPassword(user.Password, password) {
		return "", ErrInvalidCredentials
	}

	return s.IssueToken(user.ID.Hex())
}

// IssueToken produces a signed token embedding the user ID.
func (s *AuthService) IssueToken(userID string) (string, error) {
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken validates a session token and returns the embedded user ID.
// Every verification failure maps to ErrInvalidToken.
func (s *AuthService) VerifyToken(tokenStr string) (string, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		return "", ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.UserID == "" {
		return "", ErrInvalidToken
	}

	return claims.UserID, nil
}
