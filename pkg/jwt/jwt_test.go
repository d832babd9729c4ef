package jwt

import (
	"strings"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func newTestManager(clock *fakeClock) *Manager {
	return NewManager(Config{
		Secret: "test-secret",
		TTL:    30 * time.Minute,
		Now:    clock.Now,
	})
}

func TestIssueThenVerify(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)}
	m := newTestManager(clock)

	token, expiresAt, err := m.Issue("author-1")
	require.NoError(t, err)
	assert.Equal(t, clock.now.Add(30*time.Minute), expiresAt)

	claims, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "author-1", claims.Subject)
	assert.Equal(t, "access", claims.Type)
}

func TestVerifyExpired(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)}
	m := newTestManager(clock)

	token, _, err := m.Issue("author-1")
	require.NoError(t, err)

	clock.now = clock.now.Add(29 * time.Minute)
	_, err = m.Verify(token)
	require.NoError(t, err)

	clock.now = clock.now.Add(2 * time.Minute)
	_, err = m.Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerifyTampered(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	m := newTestManager(clock)

	token, _, err := m.Issue("author-1")
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	forged, _, err := NewManager(Config{Secret: "other", TTL: time.Hour, Now: clock.Now}).Issue("author-2")
	require.NoError(t, err)
	forgedParts := strings.Split(forged, ".")

	// payload of another subject with the original signature
	tampered := parts[0] + "." + forgedParts[1] + "." + parts[2]
	_, err = m.Verify(tampered)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = m.Verify(forged)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerifyGarbage(t *testing.T) {
	m := newTestManager(&fakeClock{now: time.Now()})

	for _, raw := range []string{"", "abc", "a.b.c"} {
		_, err := m.Verify(raw)
		assert.ErrorIs(t, err, ErrTokenInvalid, "raw %q", raw)
	}
}

func TestVerifyRejectsNoneAlgorithm(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	m := newTestManager(clock)

	claims := Claims{
		Type: "access",
		RegisteredClaims: gojwt.RegisteredClaims{
			Subject:   "author-1",
			ExpiresAt: gojwt.NewNumericDate(clock.now.Add(time.Hour)),
		},
	}
	unsigned, err := gojwt.NewWithClaims(gojwt.SigningMethodNone, claims).SignedString(gojwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = m.Verify(unsigned)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerifyMissingSubject(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	m := newTestManager(clock)

	token, _, err := m.Issue("")
	require.NoError(t, err)

	_, err = m.Verify(token)
	assert.ErrorIs(t, err, ErrMissingSubject)
}

func TestVerifyRequiresExpiry(t *testing.T) {
	m := newTestManager(&fakeClock{now: time.Now()})

	claims := Claims{
		Type:             "access",
		RegisteredClaims: gojwt.RegisteredClaims{Subject: "author-1"},
	}
	token, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = m.Verify(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerifyRejectsOtherTokenTypes(t *testing.T) {
	m := newTestManager(&fakeClock{now: time.Now()})

	claims := Claims{
		Type: "refresh",
		RegisteredClaims: gojwt.RegisteredClaims{
			Subject:   "author-1",
			ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = m.Verify(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
