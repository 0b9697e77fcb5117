package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/courtprep/backend/internal/auth"
	"github.com/courtprep/backend/internal/courts"
	"github.com/courtprep/backend/internal/gate"
	"github.com/courtprep/backend/internal/model"
	"github.com/courtprep/backend/internal/services"
	"github.com/courtprep/backend/internal/store/storetest"
)

const (
	testSigningKey = "test-signing-key"
	testPassword   = "test-unlock"
	testUserID     = "user-1"
)

type captureSender struct {
	Sent []model.Enquiry
	Err  error
}

func (s *captureSender) SendEnquiry(ctx context.Context, e model.Enquiry) error {
	if s.Err != nil {
		return s.Err
	}
	s.Sent = append(s.Sent, e)
	return nil
}

type env struct {
	handler http.Handler
	store   *storetest.Fake
	mail    *captureSender
}

func newEnv(t *testing.T, unlockPassword string) *env {
	t.Helper()
	f := storetest.NewFake()
	log := zerolog.Nop()

	g := gate.New(auth.NewSessionAuthorizer(testSigningKey), f.Profiles(), unlockPassword, log)
	h := NewHandler(
		g,
		services.NewCaseService(f, time.UTC),
		services.NewEventService(f),
		courts.NewClient("http://127.0.0.1:1", log),
		&captureSender{},
		false,
		time.UTC,
		log,
	)
	m := h.mail.(*captureSender)
	return &env{handler: NewRouter(h, NewHealthHandler(f)), store: f, mail: m}
}

func (e *env) do(req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	e.handler.ServeHTTP(rr, req)
	return rr
}

func sessionCookie(t *testing.T, userID string) *http.Cookie {
	t.Helper()
	token, err := auth.SignToken(userID, userID+"@example.com", []byte(testSigningKey), time.Hour)
	require.NoError(t, err)
	return &http.Cookie{Name: auth.SessionCookie, Value: token}
}

func unlockCookie(value string) *http.Cookie {
	return &http.Cookie{Name: gate.UnlockCookie, Value: value}
}

// get builds a GET request with the full set of access cookies.
func (e *env) get(t *testing.T, path string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.AddCookie(sessionCookie(t, testUserID))
	req.AddCookie(unlockCookie(gate.UnlockValue))
	return req
}

// postForm builds a form POST with the full set of access cookies.
func (e *env) postForm(t *testing.T, path string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(sessionCookie(t, testUserID))
	req.AddCookie(unlockCookie(gate.UnlockValue))
	return req
}

func (e *env) seedBetaUser(userID string) {
	e.store.SeedProfile(userID, true)
}

func (e *env) createCase(t *testing.T, ownerID, title string) *model.Case {
	t.Helper()
	c, err := e.store.Cases().Create(context.Background(), &model.Case{OwnerID: ownerID, Title: title})
	require.NoError(t, err)
	return c
}
