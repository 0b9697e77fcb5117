package services

import (
	"context"
	"strings"
	"time"

	"github.com/courtprep/backend/internal/model"
	"github.com/courtprep/backend/internal/store"
)

// EventService orchestrates chronology-entry use cases.
type EventService struct {
	store store.Store
}

func NewEventService(s store.Store) *EventService {
	return &EventService{store: s}
}

// EventInput is the raw add/edit form for one chronology entry.
type EventInput struct {
	Date        string // calendar date, "2006-01-02"
	DateUnknown bool
	Summary     string
	Evidence    string
}

// normalize applies the event invariants: an empty summary aborts the write,
// a DateUnknown flag forces the date to absent, and evidence empty after
// trim is stored as absent.
func (in EventInput) normalize() (*model.CaseEvent, error) {
	summary := strings.TrimSpace(in.Summary)
	if summary == "" {
		return nil, ErrEmptySummary
	}
	e := &model.CaseEvent{
		DateUnknown: in.DateUnknown,
		Summary:     summary,
		Evidence:    nilIfEmpty(in.Evidence),
	}
	if !in.DateUnknown {
		if raw := strings.TrimSpace(in.Date); raw != "" {
			if _, err := time.Parse("2006-01-02", raw); err == nil {
				e.EventDate = &raw
			}
		}
	}
	return e, nil
}

// AddEvent appends an entry to a case. An empty summary is reported as
// ErrEmptySummary and nothing is stored.
func (s *EventService) AddEvent(ctx context.Context, caseID string, in EventInput) (*model.CaseEvent, error) {
	e, err := in.normalize()
	if err != nil {
		return nil, err
	}
	e.CaseID = caseID
	return s.store.Events().Create(ctx, e)
}

// EditEvent updates an entry in place. The write is scoped to
// (eventID, caseID); a mismatched pair can never update an unrelated event.
func (s *EventService) EditEvent(ctx context.Context, caseID, eventID string, in EventInput) error {
	e, err := in.normalize()
	if err != nil {
		return err
	}
	e.EventID = eventID
	e.CaseID = caseID
	return s.store.Events().Update(ctx, e)
}

func (s *EventService) GetEvent(ctx context.Context, caseID, eventID string) (*model.CaseEvent, error) {
	return s.store.Events().Get(ctx, caseID, eventID)
}

// DeleteEvent removes an entry by id. Deleting an unknown id is a no-op.
func (s *EventService) DeleteEvent(ctx context.Context, eventID string) error {
	return s.store.Events().Delete(ctx, eventID)
}
