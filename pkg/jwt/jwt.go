package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const tokenTypeAccess = "access"

var (
	// ErrTokenInvalid covers malformed, forged and wrongly signed tokens.
	ErrTokenInvalid = errors.New("invalid token")
	// ErrTokenExpired is returned once now is past the token's expiry.
	ErrTokenExpired = errors.New("token has expired")
	// ErrMissingSubject means the signature checked out but the payload has no subject.
	ErrMissingSubject = errors.New("token is missing subject")
)

// Claims represents JWT claims structure
type Claims struct {
	Type string `json:"type"`
	jwt.RegisteredClaims
}

// Config is loaded once at startup and injected into the Manager.
type Config struct {
	Secret string
	TTL    time.Duration
	// Now overrides the clock; nil means time.Now.
	Now func() time.Time
}

// Manager issues and verifies access tokens
type Manager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewManager creates new JWT manager
func NewManager(cfg Config) *Manager {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Manager{
		secret: []byte(cfg.Secret),
		ttl:    cfg.TTL,
		now:    now,
	}
}

// TTL returns the configured access token lifetime.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Issue signs an access token for subjectID valid for the configured TTL.
func (m *Manager) Issue(subjectID string) (string, time.Time, error) {
	now := m.now()
	expiresAt := now.Add(m.ttl)

	claims := Claims{
		Type: tokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Verify checks signature, algorithm and expiry and returns the claims.
// Expired tokens yield ErrTokenExpired, everything else that fails ErrTokenInvalid.
func (m *Manager) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Verify signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	if !token.Valid {
		return nil, ErrTokenInvalid
	}

	if claims.Type != tokenTypeAccess {
		return nil, fmt.Errorf("%w: expected access token, got %q", ErrTokenInvalid, claims.Type)
	}

	if claims.Subject == "" {
		return nil, ErrMissingSubject
	}

	return claims, nil
}
