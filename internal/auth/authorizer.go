package auth

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionCookie is the cookie the identity provider sets after sign-in.
const SessionCookie = "courtprep_session"

// Claims are the session-token claims shared with the identity provider.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
}

// User identifies an authenticated caller.
type User struct {
	ID    string
	Email string
}

// Authorizer resolves the current user from a request, if any.
type Authorizer interface {
	// Authenticate returns the authenticated user or ErrUnauthenticated.
	Authenticate(r *http.Request) (*User, error)
}

// SessionAuthorizer verifies session-cookie JWTs signed by the identity
// provider with the shared key. This service never mints tokens.
type SessionAuthorizer struct {
	signingKey []byte
}

func NewSessionAuthorizer(signingKey string) *SessionAuthorizer {
	return &SessionAuthorizer{signingKey: []byte(signingKey)}
}

func (a *SessionAuthorizer) Authenticate(r *http.Request) (*User, error) {
	c, err := r.Cookie(SessionCookie)
	if err != nil || c.Value == "" {
		return nil, ErrUnauthenticated
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(c.Value, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return a.signingKey, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrUnauthenticated
	}
	if claims.Subject == "" {
		return nil, ErrUnauthenticated
	}

	return &User{ID: claims.Subject, Email: claims.Email}, nil
}

// SignToken mints a session token. Used by tests and local tooling; in
// deployment the identity provider signs with the same key.
func SignToken(userID, email string, signingKey []byte, validity time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validity)),
		},
		Email: email,
	})
	return token.SignedString(signingKey)
}
