package service

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"docvault/internal/model"
)

// TokenService mints and verifies stateless HS256 session tokens. The
// signing key is fixed at construction; tokens issued before a restart
// verify as long as the key is unchanged. There is no revocation before
// natural expiry.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string, ttl time.Duration) (*TokenService, error) {
	if secret == "" {
		return nil, fmt.Errorf("token signing secret is required")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("token ttl must be positive")
	}

	return &TokenService{secret: []byte(secret), ttl: ttl}, nil
}

// Issue signs a token carrying the user's identity and role claims,
// expiring at issue time + ttl.
func (s *TokenService) Issue(user model.User) (string, time.Time, error) {
	now := time.Now().UTC()
	expiresAt := now.Add(s.ttl)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      strconv.FormatInt(user.ID, 10),
		"username": user.Username,
		"is_admin": user.IsAdmin,
		"iat":      now.Unix(),
		"exp":      expiresAt.Unix(),
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}

	return signed, expiresAt, nil
}

// Verify parses and validates a token string. Malformed input, a wrong
// signature or a past expiry all return ErrInvalidToken; verification
// never panics and has no side effects.
func (s *TokenService) Verify(tokenString string) (*model.TokenClaims, error) {
	parsed, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", token.Method.Alg())
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, model.ErrInvalidToken
	}

	claimsMap, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, model.ErrInvalidToken
	}

	// exp is validated by jwt.Parse, but a token without one never expires;
	// reject those outright.
	if _, hasExp := claimsMap["exp"]; !hasExp {
		return nil, model.ErrInvalidToken
	}

	sub, _ := claimsMap["sub"].(string)
	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil || userID <= 0 {
		return nil, model.ErrInvalidToken
	}

	claims := &model.TokenClaims{UserID: userID}
	claims.Username, _ = claimsMap["username"].(string)
	claims.IsAdmin, _ = claimsMap["is_admin"].(bool)

	return claims, nil
}
