// Package auth verifies the bearer tokens issued by the identity service and
// turns them into the acting identity of a ledger call.
package auth

import (
	"fmt"
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"khata/internal/config"
	"khata/internal/domain"
)

// Claims represents the JWT claims with tenant context.
type Claims struct {
	jwt.RegisteredClaims
	TenantID  uuid.UUID       `json:"tenant_id"`
	UserID    uuid.UUID       `json:"user_id"`
	Email     string          `json:"email"`
	Role      domain.UserRole `json:"role"`
	Name      string          `json:"name,omitempty"`
	StateCode string          `json:"state_code,omitempty"`
	GSTIN     string          `json:"gstin,omitempty"`
}

// Actor converts the claims into the identity passed to services.
func (c *Claims) Actor() domain.Actor {
	return domain.Actor{
		TenantID:      c.TenantID,
		UserID:        c.UserID,
		Role:          c.Role,
		HomeStateCode: c.StateCode,
		GSTIN:         c.GSTIN,
		Email:         c.Email,
		DisplayName:   c.Name,
	}
}

// TokenVerifier validates bearer tokens.
type TokenVerifier interface {
	Verify(tokenString string) (*Claims, error)
}

// HMACVerifier validates HS256 tokens against a shared secret.
type HMACVerifier struct {
	cfg config.JWTConfig
}

// NewHMACVerifier creates a verifier.
func NewHMACVerifier(cfg config.JWTConfig) *HMACVerifier {
	return &HMACVerifier{cfg: cfg}
}

// Verify parses tokenString and checks signature, expiry, issuer and audience.
func (v *HMACVerifier) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(v.cfg.Secret), nil
	}, jwt.WithIssuer(v.cfg.Issuer))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	if !token.Valid {
		return nil, domain.ErrUnauthorized
	}

	aud, _ := claims.GetAudience()
	if v.cfg.Audience != "" && !slices.Contains(aud, v.cfg.Audience) {
		return nil, fmt.Errorf("%w: token audience mismatch", domain.ErrUnauthorized)
	}
	if claims.TenantID == uuid.Nil || claims.UserID == uuid.Nil {
		return nil, fmt.Errorf("%w: token carries no tenant", domain.ErrUnauthorized)
	}
	return claims, nil
}

// Issue signs a token for the given identity. The identity service owns token
// issuance; this exists for operator tooling and tests.
func (v *HMACVerifier) Issue(actor domain.Actor, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   actor.UserID.String(),
			Issuer:    v.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.New().String(),
			Audience:  jwt.ClaimStrings{v.cfg.Audience},
		},
		TenantID:  actor.TenantID,
		UserID:    actor.UserID,
		Email:     actor.Email,
		Role:      actor.Role,
		Name:      actor.DisplayName,
		StateCode: actor.HomeStateCode,
		GSTIN:     actor.GSTIN,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(v.cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}
