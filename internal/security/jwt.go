package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/SAP-F-2025/academic-records-service/internal/models"
)

const (
	TokenUseAccess  = "access"
	TokenUseRefresh = "refresh"
)

var (
	// ErrTokenExpired indicates a structurally valid token past its expiry.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid covers malformed tokens, bad signatures and wrong token_use.
	ErrTokenInvalid = errors.New("token invalid")
)

// Claims carries the identity and role set of an issued token.
type Claims struct {
	UserID   uint     `json:"uid"`
	Username string   `json:"username"`
	Roles    []string `json:"roles,omitempty"`
	TokenUse string   `json:"token_use"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies HS256 access/refresh token pairs.
// Tokens are stateless; nothing is persisted on issue.
type TokenManager struct {
	secret     []byte
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewTokenManager(secret, issuer string, accessTTL, refreshTTL time.Duration) *TokenManager {
	return &TokenManager{
		secret:     []byte(secret),
		issuer:     issuer,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// Issue creates a fresh access/refresh pair for the given user.
func (m *TokenManager) Issue(user *models.User) (models.TokenPair, error) {
	access, err := m.sign(user, TokenUseAccess, m.accessTTL)
	if err != nil {
		return models.TokenPair{}, err
	}

	refresh, err := m.sign(user, TokenUseRefresh, m.refreshTTL)
	if err != nil {
		return models.TokenPair{}, err
	}

	return models.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Refresh verifies a refresh token and mints a new access token from its claims.
func (m *TokenManager) Refresh(refreshToken string) (string, error) {
	claims, err := m.parse(refreshToken, TokenUseRefresh)
	if err != nil {
		return "", err
	}

	user := &models.User{ID: claims.UserID, Username: claims.Username}
	for _, role := range claims.Roles {
		switch models.UserRole(role) {
		case models.RoleAdmin:
			user.IsAdmin = true
		case models.RoleStaff:
			user.IsStaff = true
		case models.RoleTeacher:
			user.IsTeacher = true
		case models.RoleStudent:
			user.IsStudent = true
		}
	}

	return m.sign(user, TokenUseAccess, m.accessTTL)
}

// ParseAccess verifies an access token and returns its claims.
func (m *TokenManager) ParseAccess(token string) (*Claims, error) {
	return m.parse(token, TokenUseAccess)
}

// Verify checks a token of either use without caring which, for the
// verification endpoint.
func (m *TokenManager) Verify(token string) (*Claims, error) {
	claims, err := m.parseSigned(token)
	if err != nil {
		return nil, err
	}
	if claims.TokenUse != TokenUseAccess && claims.TokenUse != TokenUseRefresh {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

func (m *TokenManager) sign(user *models.User, tokenUse string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()

	roles := make([]string, 0, 4)
	for _, role := range user.Roles() {
		roles = append(roles, string(role))
	}

	claims := &Claims{
		UserID:   user.ID,
		Username: user.Username,
		Roles:    roles,
		TokenUse: tokenUse,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			Subject:   fmt.Sprintf("%d", user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return signed, nil
}

func (m *TokenManager) parse(token, expectedUse string) (*Claims, error) {
	claims, err := m.parseSigned(token)
	if err != nil {
		return nil, err
	}
	if claims.TokenUse != expectedUse {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

func (m *TokenManager) parseSigned(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithIssuer(m.issuer))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !token.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
