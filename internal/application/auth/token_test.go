package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-that-is-long-enough"

func newTestTokens(t *testing.T, now time.Time) *TokenService {
	t.Helper()
	s, err := NewTokenService(testSecret)
	require.NoError(t, err)
	s.timeFunc = func() time.Time { return now }
	return s
}

func TestNewTokenService_EmptySecret(t *testing.T) {
	s, err := NewTokenService("")
	assert.Nil(t, s)
	assert.Error(t, err)
}

func TestIssueVerify_RoundTrip(t *testing.T) {
	s := newTestTokens(t, time.Now())
	uid := uuid.New()

	token, err := s.Issue(uid, "ann@x.com")
	require.NoError(t, err)

	id, err := s.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, uid, id.ID)
	assert.Equal(t, "ann@x.com", id.Email)
}

func TestVerify_ValidJustBeforeExpiry(t *testing.T) {
	issued := time.Now()
	s := newTestTokens(t, issued)
	token, err := s.Issue(uuid.New(), "ann@x.com")
	require.NoError(t, err)

	s.timeFunc = func() time.Time { return issued.Add(59 * time.Minute) }
	_, err = s.Verify(token)
	assert.NoError(t, err)
}

func TestVerify_Expired(t *testing.T) {
	issued := time.Now()
	s := newTestTokens(t, issued)
	token, err := s.Issue(uuid.New(), "ann@x.com")
	require.NoError(t, err)

	s.timeFunc = func() time.Time { return issued.Add(TokenLifetime + time.Second) }
	_, err = s.Verify(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestVerify_Tampered(t *testing.T) {
	s := newTestTokens(t, time.Now())
	token, err := s.Issue(uuid.New(), "ann@x.com")
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	_, err = s.Verify(parts[0] + "." + parts[1] + "." + string(sig))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_OtherSecret(t *testing.T) {
	other, err := NewTokenService("a-completely-different-secret")
	require.NoError(t, err)
	token, err := other.Issue(uuid.New(), "ann@x.com")
	require.NoError(t, err)

	s := newTestTokens(t, time.Now())
	_, err = s.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_RejectsNoneAlgorithm(t *testing.T) {
	claims := jwt.MapClaims{"id": uuid.New().String(), "email": "a@b.com", "exp": time.Now().Add(time.Hour).Unix()}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	s := newTestTokens(t, time.Now())
	_, err = s.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_Garbage(t *testing.T) {
	s := newTestTokens(t, time.Now())
	_, err := s.Verify("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
