// Package gate implements the three-layer guard in front of every
// chronology read and write: authenticated identity, private-beta profile
// flag, and the password-gated unlock cookie. Deny reasons stay precise in
// here; the HTTP layer erases them into redirects so the feature's existence
// is never advertised.
package gate

import (
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/courtprep/backend/internal/auth"
	"github.com/courtprep/backend/internal/model"
	"github.com/courtprep/backend/internal/store"
)

const (
	// UnlockCookie is the capability cookie set by a successful unlock.
	UnlockCookie = "chrono_unlocked"
	// UnlockValue is the only accepted cookie value.
	UnlockValue = "1"
	// UnlockTTL bounds how long a single unlock lasts.
	UnlockTTL = 8 * time.Hour
)

var (
	// ErrNotConfigured is returned when no unlock secret is configured.
	ErrNotConfigured = errors.New("chronology unlock password is not configured")
	// ErrWrongPassword is returned on an unlock attempt with the wrong secret.
	ErrWrongPassword = errors.New("wrong unlock password")
)

// DenyReason tags why access was refused.
type DenyReason int

const (
	DenyNone DenyReason = iota
	DenyUnauthenticated
	DenyFlagMissing
	DenyNotUnlocked
)

// RedirectPath maps a deny reason to the page the caller is sent to.
// FlagMissing deliberately lands on the product home, indistinguishable from
// the feature not existing.
func (r DenyReason) RedirectPath() string {
	switch r {
	case DenyUnauthenticated:
		return "/login"
	case DenyFlagMissing:
		return "/"
	case DenyNotUnlocked:
		return "/dashboard"
	default:
		return "/"
	}
}

// Decision is the outcome of an access check.
type Decision struct {
	UserID string
	Email  string
	Reason DenyReason
}

func (d Decision) Allowed() bool { return d.Reason == DenyNone }

// Gate evaluates chronology access. Every request is re-evaluated from
// scratch; decisions are never cached across requests.
type Gate struct {
	auth     auth.Authorizer
	profiles store.Profiles
	password string
	log      zerolog.Logger
}

func New(a auth.Authorizer, profiles store.Profiles, unlockPassword string, log zerolog.Logger) *Gate {
	return &Gate{auth: a, profiles: profiles, password: unlockPassword, log: log}
}

// Authorize runs the three gates in order and stops at the first failure.
func (g *Gate) Authorize(r *http.Request) Decision {
	user, err := g.auth.Authenticate(r)
	if err != nil {
		return Decision{Reason: DenyUnauthenticated}
	}

	profile, err := g.profiles.Get(r.Context(), user.ID)
	if err != nil {
		if !errors.Is(err, model.ErrNotFound) {
			g.log.Error().Err(err).Str("user_id", user.ID).Msg("profile lookup failed")
		}
		return Decision{Reason: DenyFlagMissing}
	}
	if !profile.IsPrivateBeta {
		return Decision{Reason: DenyFlagMissing}
	}

	c, err := r.Cookie(UnlockCookie)
	if err != nil || c.Value != UnlockValue {
		return Decision{Reason: DenyNotUnlocked}
	}

	return Decision{UserID: user.ID, Email: user.Email}
}

// VerifyUnlockPassword checks an unlock attempt against the shared secret.
// There is no lockout or backoff; the only protections are the secret itself
// and the short cookie lifetime.
func (g *Gate) VerifyUnlockPassword(password string) error {
	if g.password == "" {
		return ErrNotConfigured
	}
	if password != g.password {
		return ErrWrongPassword
	}
	return nil
}

// NewUnlockCookie builds the capability cookie granted by a successful
// unlock. Secure is only set in production so local development over plain
// HTTP keeps working.
func NewUnlockCookie(production bool) *http.Cookie {
	return &http.Cookie{
		Name:     UnlockCookie,
		Value:    UnlockValue,
		Path:     "/",
		MaxAge:   int(UnlockTTL / time.Second),
		HttpOnly: true,
		Secure:   production,
		SameSite: http.SameSiteLaxMode,
	}
}
