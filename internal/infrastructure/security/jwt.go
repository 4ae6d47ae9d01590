package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/avercheq/taskhive/internal/application/auth"
	"github.com/avercheq/taskhive/internal/domain"
)

// JWTSigner issues and verifies HMAC-signed access tokens carrying
// {sub: username, user_id, role, exp}.
type JWTSigner struct {
	secret []byte
	method jwt.SigningMethod
	ttl    time.Duration
}

// NewJWTSigner builds a signer for the configured HMAC algorithm. Only the
// HS family is accepted; anything else is a startup error.
func NewJWTSigner(secret, algorithm string, ttl time.Duration) (*JWTSigner, error) {
	var method jwt.SigningMethod
	switch algorithm {
	case "HS256", "":
		method = jwt.SigningMethodHS256
	case "HS384":
		method = jwt.SigningMethodHS384
	case "HS512":
		method = jwt.SigningMethodHS512
	default:
		return nil, fmt.Errorf("unsupported JWT algorithm %q", algorithm)
	}
	if secret == "" {
		return nil, errors.New("empty JWT secret")
	}
	return &JWTSigner{secret: []byte(secret), method: method, ttl: ttl}, nil
}

type accessClaims struct {
	UserID int64  `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

func (s *JWTSigner) Sign(username string, userID int64, role string) (string, error) {
	now := time.Now()
	claims := accessClaims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	tok := jwt.NewWithClaims(s.method, claims)
	signed, err := tok.SignedString(s.secret)
	if err != nil {
		return "", domain.ErrTokenSignFailed(err)
	}
	return signed, nil
}

func (s *JWTSigner) Verify(token string) (auth.TokenClaims, error) {
	parsed, err := jwt.ParseWithClaims(token, &accessClaims{}, func(t *jwt.Token) (any, error) {
		// prevent alg confusion
		if t.Method.Alg() != s.method.Alg() {
			return nil, domain.ErrTokenInvalid()
		}
		return s.secret, nil
	}, jwt.WithValidMethods([]string{s.method.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return auth.TokenClaims{}, domain.ErrTokenExpired()
		}
		return auth.TokenClaims{}, domain.ErrTokenInvalid()
	}

	claims, ok := parsed.Claims.(*accessClaims)
	if !ok || !parsed.Valid {
		return auth.TokenClaims{}, domain.ErrTokenInvalid()
	}

	// Required claims: a token without identity is useless.
	if claims.Subject == "" || claims.UserID == 0 {
		return auth.TokenClaims{}, domain.ErrTokenInvalid()
	}

	return auth.TokenClaims{
		Username: claims.Subject,
		UserID:   claims.UserID,
		Role:     claims.Role,
	}, nil
}
