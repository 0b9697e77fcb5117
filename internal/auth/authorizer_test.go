package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "test-signing-key"

func sessionRequest(token string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
	return r
}

func TestAuthenticate_ValidToken(t *testing.T) {
	a := NewSessionAuthorizer(testKey)
	token, err := SignToken("user-1", "jo@example.com", []byte(testKey), time.Hour)
	require.NoError(t, err)

	u, err := a.Authenticate(sessionRequest(token))
	require.NoError(t, err)
	assert.Equal(t, "user-1", u.ID)
	assert.Equal(t, "jo@example.com", u.Email)
}

func TestAuthenticate_MissingCookie(t *testing.T) {
	a := NewSessionAuthorizer(testKey)

	_, err := a.Authenticate(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestAuthenticate_WrongKey(t *testing.T) {
	a := NewSessionAuthorizer(testKey)
	token, err := SignToken("user-1", "", []byte("other-key"), time.Hour)
	require.NoError(t, err)

	_, err = a.Authenticate(sessionRequest(token))
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestAuthenticate_ExpiredToken(t *testing.T) {
	a := NewSessionAuthorizer(testKey)
	token, err := SignToken("user-1", "", []byte(testKey), -time.Minute)
	require.NoError(t, err)

	_, err = a.Authenticate(sessionRequest(token))
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestAuthenticate_RejectsUnsignedAlgorithm(t *testing.T) {
	a := NewSessionAuthorizer(testKey)
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1"},
	})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = a.Authenticate(sessionRequest(token))
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestAuthenticate_EmptySubject(t *testing.T) {
	a := NewSessionAuthorizer(testKey)
	token, err := SignToken("", "jo@example.com", []byte(testKey), time.Hour)
	require.NoError(t, err)

	_, err = a.Authenticate(sessionRequest(token))
	assert.ErrorIs(t, err, ErrUnauthenticated)
}
