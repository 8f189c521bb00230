package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken is returned for every verification failure: bad signature,
// malformed token, wrong issuer or audience, or expiry in the past. Callers
// must not learn which one occurred.
var ErrInvalidToken = errors.New("invalid or expired token")

const (
	tokenIssuer   = "ripple-api"
	tokenAudience = "ripple-client"
)

// TokenService issues and verifies signed, time-limited identity tokens.
// It is stateless: validity is computed from the signature and the embedded
// expiry, never from a server-side session table.
type TokenService struct {
	secret []byte
}

// NewTokenService returns a TokenService signing with the given key.
// The key comes from explicitly constructed configuration; the service
// performs no ambient lookups.
func NewTokenService(secret string) *TokenService {
	return &TokenService{secret: []byte(secret)}
}

// Issue produces a signed token carrying the account ID as subject and an
// absolute expiry of now + ttl.
func (s *TokenService) Issue(accountID uint, ttl time.Duration) (string, error) {
	if len(s.secret) == 0 {
		return "", fmt.Errorf("token signing key not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub": strconv.FormatUint(uint64(accountID), 10),
		"iss": tokenIssuer,
		"aud": tokenAudience,
		"exp": now.Add(ttl).Unix(),
		"iat": now.Unix(),
		"nbf": now.Unix(),
		"jti": generateJTI(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify parses and validates a token, returning the embedded account ID.
// All failure modes collapse into ErrInvalidToken.
func (s *TokenService) Verify(tokenString string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	},
		jwt.WithIssuer(tokenIssuer),
		jwt.WithAudience(tokenAudience),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return 0, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrInvalidToken
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return 0, ErrInvalidToken
	}

	accountID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil || accountID == 0 {
		return 0, ErrInvalidToken
	}

	return uint(accountID), nil
}

// generateJTI creates a unique JWT ID to prevent replay attacks
func generateJTI() string {
	return fmt.Sprintf("%d-%s", time.Now().Unix(), uuid.New().String()[:8])
}
