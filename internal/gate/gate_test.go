package gate

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courtprep/backend/internal/auth"
	"github.com/courtprep/backend/internal/store/storetest"
)

const signingKey = "test-signing-key"

func newGate(t *testing.T, fake *storetest.Fake) *Gate {
	t.Helper()
	return New(auth.NewSessionAuthorizer(signingKey), fake.Profiles(), "beta-password", zerolog.Nop())
}

func request(t *testing.T, userID string, unlockValue string) *http.Request {
	t.Helper()
	r := httptest.NewRequest(http.MethodGet, "/dashboard/chronology", nil)
	if userID != "" {
		token, err := auth.SignToken(userID, userID+"@example.test", []byte(signingKey), time.Hour)
		require.NoError(t, err)
		r.AddCookie(&http.Cookie{Name: auth.SessionCookie, Value: token})
	}
	if unlockValue != "" {
		r.AddCookie(&http.Cookie{Name: UnlockCookie, Value: unlockValue})
	}
	return r
}

func TestAuthorize_Unauthenticated(t *testing.T) {
	g := newGate(t, storetest.NewFake())

	d := g.Authorize(request(t, "", ""))

	assert.False(t, d.Allowed())
	assert.Equal(t, DenyUnauthenticated, d.Reason)
	assert.Equal(t, "/login", d.Reason.RedirectPath())
}

func TestAuthorize_BadToken(t *testing.T) {
	g := newGate(t, storetest.NewFake())
	r := httptest.NewRequest(http.MethodGet, "/dashboard/chronology", nil)
	r.AddCookie(&http.Cookie{Name: auth.SessionCookie, Value: "garbage"})

	d := g.Authorize(r)

	assert.Equal(t, DenyUnauthenticated, d.Reason)
}

func TestAuthorize_MissingProfile(t *testing.T) {
	g := newGate(t, storetest.NewFake())

	d := g.Authorize(request(t, "user-1", UnlockValue))

	assert.Equal(t, DenyFlagMissing, d.Reason)
	assert.Equal(t, "/", d.Reason.RedirectPath())
}

func TestAuthorize_FlagOff(t *testing.T) {
	fake := storetest.NewFake()
	fake.SeedProfile("user-1", false)
	g := newGate(t, fake)

	d := g.Authorize(request(t, "user-1", UnlockValue))

	assert.Equal(t, DenyFlagMissing, d.Reason)
}

// Authenticated and flagged for private beta is still not enough: without
// the unlock cookie set to exactly "1" the caller lands on the dashboard.
func TestAuthorize_NotUnlocked(t *testing.T) {
	fake := storetest.NewFake()
	fake.SeedProfile("user-1", true)
	g := newGate(t, fake)

	for _, unlock := range []string{"", "0", "yes", "11"} {
		d := g.Authorize(request(t, "user-1", unlock))
		assert.Equal(t, DenyNotUnlocked, d.Reason, "unlock cookie %q", unlock)
		assert.Equal(t, "/dashboard", d.Reason.RedirectPath())
	}
}

func TestAuthorize_AllGatesPass(t *testing.T) {
	fake := storetest.NewFake()
	fake.SeedProfile("user-1", true)
	g := newGate(t, fake)

	d := g.Authorize(request(t, "user-1", UnlockValue))

	require.True(t, d.Allowed())
	assert.Equal(t, "user-1", d.UserID)
	assert.Equal(t, "user-1@example.test", d.Email)
}

func TestVerifyUnlockPassword(t *testing.T) {
	g := newGate(t, storetest.NewFake())

	assert.NoError(t, g.VerifyUnlockPassword("beta-password"))
	assert.ErrorIs(t, g.VerifyUnlockPassword("wrong"), ErrWrongPassword)

	unconfigured := New(auth.NewSessionAuthorizer(signingKey), storetest.NewFake().Profiles(), "", zerolog.Nop())
	assert.ErrorIs(t, unconfigured.VerifyUnlockPassword("anything"), ErrNotConfigured)
}

func TestNewUnlockCookie(t *testing.T) {
	c := NewUnlockCookie(true)

	assert.Equal(t, UnlockCookie, c.Name)
	assert.Equal(t, "1", c.Value)
	assert.Equal(t, "/", c.Path)
	assert.Equal(t, 28800, c.MaxAge)
	assert.True(t, c.HttpOnly)
	assert.True(t, c.Secure)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)

	assert.False(t, NewUnlockCookie(false).Secure)
}
