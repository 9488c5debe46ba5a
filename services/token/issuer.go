// Package token issues and revokes the access/refresh JWT pair.
package token

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"admission-portal/apperrors"
	"admission-portal/config"
	"admission-portal/constants"
	"admission-portal/logger"
	tokenmodel "admission-portal/models/token"
	"admission-portal/models/user"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Claims carried by both token types.
type Claims struct {
	UserID    uint   `json:"user_id"`
	Username  string `json:"username"`
	UserType  string `json:"user_type"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// Pair is a freshly issued session credential pair.
type Pair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type Issuer struct {
	db         *gorm.DB
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

type Option func(*Issuer)

// WithClock replaces time.Now for issuing and validating tokens.
func WithClock(now func() time.Time) Option {
	return func(i *Issuer) { i.now = now }
}

func NewIssuer(db *gorm.DB, cfg config.JWTConfig, opts ...Option) *Issuer {
	i := &Issuer{
		db:         db,
		secret:     []byte(cfg.Secret),
		accessTTL:  cfg.AccessTTL,
		refreshTTL: cfg.RefreshTTL,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Issue signs a new pair for u and records the refresh token.
func (i *Issuer) Issue(ctx context.Context, u *user.User) (Pair, error) {
	access, _, err := i.sign(u, constants.TokenTypeAccess, i.accessTTL)
	if err != nil {
		return Pair{}, err
	}
	refresh, refreshClaims, err := i.sign(u, constants.TokenTypeRefresh, i.refreshTTL)
	if err != nil {
		return Pair{}, err
	}

	outstanding := tokenmodel.OutstandingToken{
		UserID:    u.ID,
		JTI:       refreshClaims.ID,
		ExpiresAt: refreshClaims.ExpiresAt.Time,
	}
	if err := i.db.WithContext(ctx).Create(&outstanding).Error; err != nil {
		return Pair{}, fmt.Errorf("failed to record refresh token: %w", err)
	}

	return Pair{Access: access, Refresh: refresh}, nil
}

// ParseAccess validates an access token and returns its claims.
func (i *Issuer) ParseAccess(tokenString string) (*Claims, error) {
	return i.parse(tokenString, constants.TokenTypeAccess)
}

// Refresh mints a new access token from a live, unrevoked refresh token.
func (i *Issuer) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := i.parse(refreshToken, constants.TokenTypeRefresh)
	if err != nil {
		return "", err
	}

	revoked, err := i.isBlacklisted(ctx, claims.ID)
	if err != nil {
		return "", err
	}
	if revoked {
		return "", apperrors.ErrInvalidToken
	}

	var u user.User
	if err := i.db.WithContext(ctx).First(&u, claims.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperrors.ErrInvalidToken
		}
		return "", fmt.Errorf("failed to load token owner: %w", err)
	}

	access, _, err := i.sign(&u, constants.TokenTypeAccess, i.accessTTL)
	return access, err
}

// Revoke blacklists a refresh token owned by callerID. Revoking the same
// token twice fails with ErrInvalidToken.
func (i *Issuer) Revoke(ctx context.Context, callerID uint, refreshToken string) error {
	claims, err := i.parse(refreshToken, constants.TokenTypeRefresh)
	if err != nil {
		return err
	}
	if claims.UserID != callerID {
		logger.Warning(fmt.Sprintf("User %d tried to revoke a token of user %d", callerID, claims.UserID))
		return apperrors.ErrInvalidToken
	}

	revoked, err := i.isBlacklisted(ctx, claims.ID)
	if err != nil {
		return err
	}
	if revoked {
		return apperrors.ErrInvalidToken
	}

	entry := tokenmodel.BlacklistedToken{UserID: claims.UserID, JTI: claims.ID}
	if err := i.db.WithContext(ctx).Create(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.ErrInvalidToken
		}
		return fmt.Errorf("failed to blacklist token: %w", err)
	}
	return nil
}

func (i *Issuer) isBlacklisted(ctx context.Context, jti string) (bool, error) {
	var count int64
	if err := i.db.WithContext(ctx).Model(&tokenmodel.BlacklistedToken{}).Where("jti = ?", jti).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check token blacklist: %w", err)
	}
	return count > 0, nil
}

func (i *Issuer) sign(u *user.User, tokenType string, ttl time.Duration) (string, *Claims, error) {
	now := i.now()
	claims := &Claims{
		UserID:    u.ID,
		Username:  u.Username,
		UserType:  u.UserType,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatUint(uint64(u.ID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign %s token: %w", tokenType, err)
	}
	return signed, claims, nil
}

func (i *Issuer) parse(tokenString, tokenType string) (*Claims, error) {
	if tokenString == "" {
		return nil, apperrors.ErrMissingToken
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}
	if claims.TokenType != tokenType || claims.ID == "" {
		return nil, apperrors.ErrInvalidToken
	}
	return claims, nil
}
