package api

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courtprep/backend/internal/model"
)

func TestAddEvent_PersistsAndRedirects(t *testing.T) {
	e := newEnv(t, testPassword)
	e.seedBetaUser(testUserID)
	c := e.createCase(t, testUserID, "My case")

	rr := e.do(e.postForm(t, "/dashboard/chronology/cases/"+c.CaseID+"/events", url.Values{
		"event_date": {"2026-02-01"},
		"summary":    {"  Filed application  "},
		"evidence":   {"Court stamp"},
	}))

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/dashboard/chronology/cases/"+c.CaseID, rr.Header().Get("Location"))

	events, err := e.store.Events().ListByCase(context.Background(), c.CaseID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Filed application", events[0].Summary)
	require.NotNil(t, events[0].EventDate)
	assert.Equal(t, "2026-02-01", *events[0].EventDate)
}

func TestAddEvent_EmptySummaryIsSilentNoOp(t *testing.T) {
	e := newEnv(t, testPassword)
	e.seedBetaUser(testUserID)
	c := e.createCase(t, testUserID, "My case")

	rr := e.do(e.postForm(t, "/dashboard/chronology/cases/"+c.CaseID+"/events", url.Values{
		"event_date": {"2026-02-01"},
		"summary":    {"   "},
	}))

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/dashboard/chronology/cases/"+c.CaseID, rr.Header().Get("Location"))

	events, err := e.store.Events().ListByCase(context.Background(), c.CaseID)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestAddEvent_OtherOwnersCaseRefused(t *testing.T) {
	e := newEnv(t, testPassword)
	e.seedBetaUser(testUserID)
	c := e.createCase(t, "someone-else", "Not yours")

	rr := e.do(e.postForm(t, "/dashboard/chronology/cases/"+c.CaseID+"/events", url.Values{
		"summary": {"Sneaky entry"},
	}))

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/dashboard/chronology", rr.Header().Get("Location"))

	events, err := e.store.Events().ListByCase(context.Background(), c.CaseID)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestSaveEvent_DateUnknownClearsDate(t *testing.T) {
	e := newEnv(t, testPassword)
	e.seedBetaUser(testUserID)
	c := e.createCase(t, testUserID, "My case")
	date := "2026-02-01"
	ev := e.store.SeedEvent(model.CaseEvent{CaseID: c.CaseID, EventDate: &date, Summary: "Filed application"})

	rr := e.do(e.postForm(t, "/dashboard/chronology/cases/"+c.CaseID+"/events/"+ev.EventID, url.Values{
		"event_date":   {"2026-02-01"},
		"date_unknown": {"1"},
		"summary":      {"Filed application"},
	}))

	assert.Equal(t, http.StatusSeeOther, rr.Code)

	got, err := e.store.Events().Get(context.Background(), c.CaseID, ev.EventID)
	require.NoError(t, err)
	assert.True(t, got.DateUnknown)
	assert.Nil(t, got.EventDate)
}

func TestSaveEvent_MismatchedCaseChangesNothing(t *testing.T) {
	e := newEnv(t, testPassword)
	e.seedBetaUser(testUserID)
	mine := e.createCase(t, testUserID, "Mine")
	other := e.createCase(t, testUserID, "Other")
	ev := e.store.SeedEvent(model.CaseEvent{CaseID: other.CaseID, DateUnknown: true, Summary: "Original"})

	rr := e.do(e.postForm(t, "/dashboard/chronology/cases/"+mine.CaseID+"/events/"+ev.EventID, url.Values{
		"summary": {"Hijacked"},
	}))

	assert.Equal(t, http.StatusSeeOther, rr.Code)

	got, err := e.store.Events().Get(context.Background(), other.CaseID, ev.EventID)
	require.NoError(t, err)
	assert.Equal(t, "Original", got.Summary)
}

func TestDeleteEvent_RemovesEntry(t *testing.T) {
	e := newEnv(t, testPassword)
	e.seedBetaUser(testUserID)
	c := e.createCase(t, testUserID, "My case")
	ev := e.store.SeedEvent(model.CaseEvent{CaseID: c.CaseID, DateUnknown: true, Summary: "Remove me"})

	rr := e.do(e.postForm(t, "/dashboard/chronology/cases/"+c.CaseID+"/events/"+ev.EventID+"/delete", url.Values{}))

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	_, err := e.store.Events().Get(context.Background(), c.CaseID, ev.EventID)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestEventEditPage_ShowsCurrentValues(t *testing.T) {
	e := newEnv(t, testPassword)
	e.seedBetaUser(testUserID)
	c := e.createCase(t, testUserID, "My case")
	date := "2026-02-01"
	evidence := "Court stamp"
	ev := e.store.SeedEvent(model.CaseEvent{CaseID: c.CaseID, EventDate: &date, Summary: "Filed application", Evidence: &evidence})

	rr := e.do(e.get(t, "/dashboard/chronology/cases/"+c.CaseID+"/events/"+ev.EventID))

	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, "Filed application")
	assert.Contains(t, body, "2026-02-01")
	assert.Contains(t, body, "Court stamp")
}
