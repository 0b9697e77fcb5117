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

func TestCreateCase_RedirectsToNewCase(t *testing.T) {
	e := newEnv(t, testPassword)
	e.seedBetaUser(testUserID)

	rr := e.do(e.postForm(t, "/dashboard/chronology/cases", url.Values{"title": {"  Housing dispute  "}}))

	assert.Equal(t, http.StatusSeeOther, rr.Code)

	list, err := e.store.Cases().List(context.Background(), testUserID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Housing dispute", list[0].Title)
	assert.Equal(t, "/dashboard/chronology/cases/"+list[0].CaseID, rr.Header().Get("Location"))
}

func TestCreateCase_EmptyTitleIsSilentNoOp(t *testing.T) {
	e := newEnv(t, testPassword)
	e.seedBetaUser(testUserID)

	rr := e.do(e.postForm(t, "/dashboard/chronology/cases", url.Values{"title": {"   "}}))

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/dashboard/chronology", rr.Header().Get("Location"))

	list, err := e.store.Cases().List(context.Background(), testUserID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCaseDetail_OtherOwnerIsInvisible(t *testing.T) {
	e := newEnv(t, testPassword)
	e.seedBetaUser(testUserID)
	c := e.createCase(t, "someone-else", "Not yours")

	rr := e.do(e.get(t, "/dashboard/chronology/cases/"+c.CaseID))

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/dashboard/chronology", rr.Header().Get("Location"))
}

func TestCaseDetail_ShowsEventGroups(t *testing.T) {
	e := newEnv(t, testPassword)
	e.seedBetaUser(testUserID)
	c := e.createCase(t, testUserID, "My case")
	date := "2026-02-01"
	e.store.SeedEvent(model.CaseEvent{CaseID: c.CaseID, EventDate: &date, Summary: "Filed application"})
	e.store.SeedEvent(model.CaseEvent{CaseID: c.CaseID, DateUnknown: true, Summary: "Incident occurred"})

	rr := e.do(e.get(t, "/dashboard/chronology/cases/"+c.CaseID))

	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, "01 Feb 2026")
	assert.Contains(t, body, "Filed application")
	assert.Contains(t, body, "Date unknown")
	assert.Contains(t, body, "Incident occurred")
}

func TestDeleteCase_WrongConfirmationKeepsCase(t *testing.T) {
	e := newEnv(t, testPassword)
	e.seedBetaUser(testUserID)
	c := e.createCase(t, testUserID, "Keep me")

	for _, confirm := range []string{"", "delete", "Delete", "DELETE "} {
		rr := e.do(e.postForm(t, "/dashboard/chronology/cases/"+c.CaseID+"/delete",
			url.Values{"confirm": {confirm}}))
		assert.Equal(t, http.StatusSeeOther, rr.Code, "confirm %q", confirm)
		assert.Equal(t, "/dashboard/chronology/cases/"+c.CaseID, rr.Header().Get("Location"), "confirm %q", confirm)
	}

	_, err := e.store.Cases().Get(context.Background(), testUserID, c.CaseID)
	assert.NoError(t, err)
}

func TestDeleteCase_ExactConfirmationDeletes(t *testing.T) {
	e := newEnv(t, testPassword)
	e.seedBetaUser(testUserID)
	c := e.createCase(t, testUserID, "Remove me")
	e.store.SeedEvent(model.CaseEvent{CaseID: c.CaseID, DateUnknown: true, Summary: "Something"})

	rr := e.do(e.postForm(t, "/dashboard/chronology/cases/"+c.CaseID+"/delete",
		url.Values{"confirm": {"DELETE"}}))

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/dashboard/chronology", rr.Header().Get("Location"))

	_, err := e.store.Cases().Get(context.Background(), testUserID, c.CaseID)
	assert.ErrorIs(t, err, model.ErrNotFound)
	events, err := e.store.Events().ListByCase(context.Background(), c.CaseID)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestSaveHeading_RoundTrip(t *testing.T) {
	e := newEnv(t, testPassword)
	e.seedBetaUser(testUserID)
	c := e.createCase(t, testUserID, "My case")

	rr := e.do(e.postForm(t, "/dashboard/chronology/cases/"+c.CaseID+"/heading", url.Values{
		"court_name":       {"Family Court at Leeds"},
		"case_number":      {"LS26P00123"},
		"hearing_datetime": {"2026-03-14T10:30"},
	}))

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/dashboard/chronology/cases/"+c.CaseID, rr.Header().Get("Location"))

	got, err := e.store.Cases().Get(context.Background(), testUserID, c.CaseID)
	require.NoError(t, err)
	require.NotNil(t, got.Heading.CourtName)
	assert.Equal(t, "Family Court at Leeds", *got.Heading.CourtName)
	require.NotNil(t, got.Heading.HearingTime)
	assert.Nil(t, got.Heading.ApplicantName)
}

func TestExport_RendersDocument(t *testing.T) {
	e := newEnv(t, testPassword)
	e.seedBetaUser(testUserID)
	c := e.createCase(t, testUserID, "My case")
	date := "2026-02-01"
	e.store.SeedEvent(model.CaseEvent{CaseID: c.CaseID, EventDate: &date, Summary: "Filed application"})

	rr := e.do(e.get(t, "/dashboard/chronology/cases/"+c.CaseID+"/export"))

	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, "CHRONOLOGY")
	assert.Contains(t, body, "Filed application")
	assert.Contains(t, body, "No undated events.")
}
