package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/auctionhub/currency-service/internal/domain/entity"
	errs "github.com/auctionhub/currency-service/internal/domain/error"
	coreport "github.com/auctionhub/currency-service/internal/domain/port/core"
	"github.com/golang-jwt/jwt/v5"
)

// Config holds the token settings
type Config struct {
	JWTSecret string        `mapstructure:"jwtSecret"`
	Issuer    string        `mapstructure:"issuer"`
	TokenTTL  time.Duration `mapstructure:"tokenTTL"`
}

// Claims are the access token claims issued by the platform's auth service
type Claims struct {
	UserID   uint64 `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// IsAdmin reports whether the token carries the admin role
func (c *Claims) IsAdmin() bool {
	return c.Role == entity.RoleAdmin
}

// JWTManager verifies HS256 bearer tokens and signs tokens for tooling and tests
type JWTManager struct {
	secret       []byte
	issuer       string
	ttl          time.Duration
	timeProvider coreport.TimeProvider
}

// NewJWTManager creates a manager; the secret must be non-empty
func NewJWTManager(cfg Config, timeProvider coreport.TimeProvider) (*JWTManager, error) {
	if cfg.JWTSecret == "" {
		return nil, errors.New("jwt secret is required")
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = time.Hour
	}
	return &JWTManager{
		secret:       []byte(cfg.JWTSecret),
		issuer:       cfg.Issuer,
		ttl:          cfg.TokenTTL,
		timeProvider: timeProvider,
	}, nil
}

// Issue signs an access token for user
func (m *JWTManager) Issue(user *entity.User) (string, error) {
	now := m.timeProvider.Now()
	claims := &Claims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(user.ID, 10),
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Verify parses tokenString and returns its claims; every failure is ErrUnauthorized
func (m *JWTManager) Verify(tokenString string) (*Claims, error) {
	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.timeProvider.Now),
	}
	if m.issuer != "" {
		options = append(options, jwt.WithIssuer(m.issuer))
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return m.secret, nil
	}, options...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrUnauthorized, err.Error())
	}
	if !token.Valid || claims.UserID == 0 {
		return nil, fmt.Errorf("%w: invalid token claims", errs.ErrUnauthorized)
	}

	return claims, nil
}
