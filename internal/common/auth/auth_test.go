package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)

	assert.True(t, VerifyPassword("correct horse", hash))
	assert.False(t, VerifyPassword("wrong horse", hash))
}

func TestHashLongPassword(t *testing.T) {
	long := strings.Repeat("x", 100)
	hash, err := HashPassword(long)
	require.NoError(t, err)

	assert.True(t, VerifyPassword(long, hash))
	// Only the first 72 bytes would matter without pre-hashing.
	assert.False(t, VerifyPassword(strings.Repeat("x", 99)+"y", hash))
}

func TestVerifyLegacyPlainBcrypt(t *testing.T) {
	legacy, err := bcrypt.GenerateFromPassword([]byte("old-password"), bcrypt.MinCost)
	require.NoError(t, err)

	assert.True(t, VerifyPassword("old-password", string(legacy)))
	assert.False(t, VerifyPassword("other", string(legacy)))
}

func TestVerifyGarbageHash(t *testing.T) {
	assert.False(t, VerifyPassword("anything", "not-a-bcrypt-hash"))
}

func newIssuer(t *testing.T, now time.Time) *TokenIssuer {
	t.Helper()
	issuer, err := NewTokenIssuer("test-secret", "study-abroad-workers", 30*time.Minute)
	require.NoError(t, err)
	issuer.now = func() time.Time { return now }
	return issuer
}

func TestIssueAndParse(t *testing.T) {
	now := time.Now().Truncate(time.Second)
	issuer := newIssuer(t, now)

	token, expiresAt, err := issuer.Issue("student@example.com")
	require.NoError(t, err)
	assert.Equal(t, now.Add(30*time.Minute), expiresAt)

	claims, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "student@example.com", claims.Email())
	assert.Equal(t, "study-abroad-workers", claims.Issuer)
	assert.NotEmpty(t, claims.ID)
}

func TestParseExpired(t *testing.T) {
	now := time.Now()
	issuer := newIssuer(t, now)
	token, _, err := issuer.Issue("student@example.com")
	require.NoError(t, err)

	issuer.now = func() time.Time { return now.Add(31 * time.Minute) }
	_, err = issuer.Parse(token)
	require.Error(t, err)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestParseWrongSecret(t *testing.T) {
	now := time.Now()
	token, _, err := newIssuer(t, now).Issue("student@example.com")
	require.NoError(t, err)

	other, err := NewTokenIssuer("another-secret", "study-abroad-workers", time.Minute)
	require.NoError(t, err)
	_, err = other.Parse(token)
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestParseRejectsOtherAlgorithms(t *testing.T) {
	claims := jwt.RegisteredClaims{
		Subject:   "student@example.com",
		Issuer:    "study-abroad-workers",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = newIssuer(t, time.Now()).Parse(unsigned)
	assert.Error(t, err)
}

func TestNewTokenIssuerRequiresSecret(t *testing.T) {
	_, err := NewTokenIssuer("", "x", time.Minute)
	assert.Error(t, err)

	issuer, err := NewTokenIssuer("s", "", 0)
	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute, issuer.ttl)
}
