package storetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/courtprep/backend/internal/model"
	"github.com/courtprep/backend/internal/store"
)

func strPtr(s string) *string { return &s }

// Run exercises a minimal compliance suite against a store.Store implementation.
// Implementations should provide a clean, isolated store and return it from makeStore.
func Run(t *testing.T, makeStore func(t *testing.T) store.Store) {
	t.Helper()

	s := makeStore(t)
	ctx := context.Background()

	ownerID := "u-" + uuid.New().String()

	// Profiles
	if _, err := s.Profiles().Get(ctx, ownerID); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("GetProfile missing: want ErrNotFound, got %v", err)
	}
	if err := s.Profiles().SetPrivateBeta(ctx, ownerID, true); err != nil {
		t.Fatalf("SetPrivateBeta: %v", err)
	}
	if p, err := s.Profiles().Get(ctx, ownerID); err != nil || !p.IsPrivateBeta {
		t.Fatalf("GetProfile: got=%v err=%v", p, err)
	}
	if err := s.Profiles().SetPrivateBeta(ctx, ownerID, false); err != nil {
		t.Fatalf("SetPrivateBeta off: %v", err)
	}
	if p, _ := s.Profiles().Get(ctx, ownerID); p.IsPrivateBeta {
		t.Fatalf("SetPrivateBeta off not persisted")
	}

	// Cases
	c, err := s.Cases().Create(ctx, &model.Case{OwnerID: ownerID, Title: "Child arrangements"})
	if err != nil {
		t.Fatalf("CreateCase: %v", err)
	}
	if c.CaseID == "" {
		t.Fatalf("CreateCase: empty case id")
	}
	if got, err := s.Cases().Get(ctx, ownerID, c.CaseID); err != nil || got.Title != "Child arrangements" {
		t.Fatalf("GetCase: got=%v err=%v", got, err)
	}
	if _, err := s.Cases().Get(ctx, "someone-else", c.CaseID); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("GetCase wrong owner: want ErrNotFound, got %v", err)
	}
	if lst, err := s.Cases().List(ctx, ownerID); err != nil || len(lst) != 1 {
		t.Fatalf("ListCases: n=%d err=%v", len(lst), err)
	}

	// Heading update round-trip
	hearing := time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)
	h := model.CaseHeading{
		CourtName:          strPtr("Family Court at Leeds"),
		CaseNumber:         strPtr("LS26P00123"),
		ApplicantName:      strPtr("A Person"),
		HearingTime:        &hearing,
		ProceedingsHeading: strPtr("CHRONOLOGY OF EVENTS"),
		ProceedingsLines:   []string{"In the matter of the Children Act 1989"},
	}
	if err := s.Cases().UpdateHeading(ctx, ownerID, c.CaseID, h); err != nil {
		t.Fatalf("UpdateHeading: %v", err)
	}
	got, err := s.Cases().Get(ctx, ownerID, c.CaseID)
	if err != nil {
		t.Fatalf("GetCase after heading: %v", err)
	}
	if got.Heading.CourtName == nil || *got.Heading.CourtName != "Family Court at Leeds" {
		t.Fatalf("heading court name not persisted: %+v", got.Heading)
	}
	if got.Heading.RespondentName != nil {
		t.Fatalf("absent heading field came back non-nil")
	}
	if got.Heading.HearingTime == nil || !got.Heading.HearingTime.Equal(hearing) {
		t.Fatalf("hearing time mismatch: %v", got.Heading.HearingTime)
	}
	if len(got.Heading.ProceedingsLines) != 1 {
		t.Fatalf("proceedings lines mismatch: %v", got.Heading.ProceedingsLines)
	}
	if err := s.Cases().UpdateHeading(ctx, ownerID, uuid.New().String(), h); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("UpdateHeading missing case: want ErrNotFound, got %v", err)
	}

	// Events
	d := "2024-03-01"
	e1, err := s.Events().Create(ctx, &model.CaseEvent{CaseID: c.CaseID, EventDate: &d, Summary: "Filed application"})
	if err != nil {
		t.Fatalf("CreateEvent e1: %v", err)
	}
	time.Sleep(5 * time.Millisecond) // ensure monotonic creation time ordering
	e2, err := s.Events().Create(ctx, &model.CaseEvent{CaseID: c.CaseID, DateUnknown: true, Summary: "Incident occurred"})
	if err != nil {
		t.Fatalf("CreateEvent e2: %v", err)
	}

	if got, err := s.Events().Get(ctx, c.CaseID, e1.EventID); err != nil || got.EventDate == nil || *got.EventDate != d {
		t.Fatalf("GetEvent: got=%v err=%v", got, err)
	}
	if _, err := s.Events().Get(ctx, uuid.New().String(), e1.EventID); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("GetEvent wrong case: want ErrNotFound, got %v", err)
	}

	lst, err := s.Events().ListByCase(ctx, c.CaseID)
	if err != nil || len(lst) != 2 {
		t.Fatalf("ListByCase: n=%d err=%v", len(lst), err)
	}
	if !lst[0].CreationTime.Before(lst[1].CreationTime) {
		t.Fatalf("ListByCase not in creation order")
	}

	// Update is scoped to (event, case): a mismatched pair must not touch the row.
	e1.Summary = "Filed C100 application"
	if err := s.Events().Update(ctx, e1); err != nil {
		t.Fatalf("UpdateEvent: %v", err)
	}
	mismatched := *e2
	mismatched.CaseID = uuid.New().String()
	mismatched.Summary = "should not land"
	if err := s.Events().Update(ctx, &mismatched); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("UpdateEvent mismatched case: want ErrNotFound, got %v", err)
	}
	if got, _ := s.Events().Get(ctx, c.CaseID, e2.EventID); got.Summary != "Incident occurred" {
		t.Fatalf("mismatched update mutated event: %q", got.Summary)
	}

	// Delete event; deleting an unknown id is a no-op.
	if err := s.Events().Delete(ctx, e2.EventID); err != nil {
		t.Fatalf("DeleteEvent: %v", err)
	}
	if err := s.Events().Delete(ctx, uuid.New().String()); err != nil {
		t.Fatalf("DeleteEvent unknown id: %v", err)
	}

	// Case delete cascades to events.
	if err := s.Cases().Delete(ctx, ownerID, c.CaseID); err != nil {
		t.Fatalf("DeleteCase: %v", err)
	}
	if _, err := s.Cases().Get(ctx, ownerID, c.CaseID); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("GetCase after delete: want ErrNotFound, got %v", err)
	}
	if _, err := s.Events().Get(ctx, c.CaseID, e1.EventID); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("event survived case delete: %v", err)
	}
}
