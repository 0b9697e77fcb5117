package services

import (
	"context"
	"strings"
	"time"

	"github.com/courtprep/backend/internal/chronology"
	"github.com/courtprep/backend/internal/model"
	"github.com/courtprep/backend/internal/store"
)

// DeleteConfirmation is the literal a user must type to delete a case.
// Case-sensitive, no trimming tolerance.
const DeleteConfirmation = "DELETE"

// hearingLayout is the wall-clock form posted by datetime-local inputs.
const hearingLayout = "2006-01-02T15:04"

// CaseService orchestrates case-level use cases.
type CaseService struct {
	store store.Store
	// hearingZone interprets hearing datetimes entered as local wall clock.
	hearingZone *time.Location
}

func NewCaseService(s store.Store, hearingZone *time.Location) *CaseService {
	if hearingZone == nil {
		hearingZone = time.UTC
	}
	return &CaseService{store: s, hearingZone: hearingZone}
}

// CreateCase rejects a title that trims to empty with ErrEmptyTitle.
func (s *CaseService) CreateCase(ctx context.Context, ownerID, title string) (*model.Case, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	return s.store.Cases().Create(ctx, &model.Case{OwnerID: ownerID, Title: title})
}

func (s *CaseService) GetCase(ctx context.Context, ownerID, caseID string) (*model.Case, error) {
	return s.store.Cases().Get(ctx, ownerID, caseID)
}

func (s *CaseService) ListCases(ctx context.Context, ownerID string) ([]*model.Case, error) {
	return s.store.Cases().List(ctx, ownerID)
}

// Chronology loads a case with its events partitioned and ordered for
// display and export.
func (s *CaseService) Chronology(ctx context.Context, ownerID, caseID string) (*model.Case, []model.CaseEvent, []model.CaseEvent, error) {
	c, err := s.store.Cases().Get(ctx, ownerID, caseID)
	if err != nil {
		return nil, nil, nil, err
	}
	rows, err := s.store.Events().ListByCase(ctx, caseID)
	if err != nil {
		return nil, nil, nil, err
	}
	events := make([]model.CaseEvent, 0, len(rows))
	for _, r := range rows {
		events = append(events, *r)
	}
	dated, undated := chronology.Partition(events)
	return c, dated, undated, nil
}

// HeadingInput is the raw heading form. Every field is optional; empty
// strings become absent values before storage.
type HeadingInput struct {
	CourtName          string
	CourtSlug          string
	CaseNumber         string
	ApplicantName      string
	RespondentName     string
	HearingTitle       string
	HearingDateTime    string // local wall clock, "2006-01-02T15:04"
	ChildrenNote       string
	ProceedingsHeading string
	ProceedingsLines   string // one line per row, blank rows dropped
}

// SaveHeading normalizes and stores the caption block. An unparseable
// hearing datetime is stored as absent rather than raising an error.
func (s *CaseService) SaveHeading(ctx context.Context, ownerID, caseID string, in HeadingInput) error {
	h := model.CaseHeading{
		CourtName:          nilIfEmpty(in.CourtName),
		CourtSlug:          nilIfEmpty(in.CourtSlug),
		CaseNumber:         nilIfEmpty(in.CaseNumber),
		ApplicantName:      nilIfEmpty(in.ApplicantName),
		RespondentName:     nilIfEmpty(in.RespondentName),
		HearingTitle:       nilIfEmpty(in.HearingTitle),
		ChildrenNote:       nilIfEmpty(in.ChildrenNote),
		ProceedingsHeading: nilIfEmpty(in.ProceedingsHeading),
		ProceedingsLines:   splitLines(in.ProceedingsLines),
	}

	if raw := strings.TrimSpace(in.HearingDateTime); raw != "" {
		if t, err := time.ParseInLocation(hearingLayout, raw, s.hearingZone); err == nil {
			utc := t.UTC()
			h.HearingTime = &utc
		}
	}

	return s.store.Cases().UpdateHeading(ctx, ownerID, caseID, h)
}

// DeleteCase hard-deletes the case and, via the schema cascade, all its
// events, but only when the confirmation is exactly DeleteConfirmation.
func (s *CaseService) DeleteCase(ctx context.Context, ownerID, caseID, confirmation string) error {
	if confirmation != DeleteConfirmation {
		return ErrConfirmationMismatch
	}
	return s.store.Cases().Delete(ctx, ownerID, caseID)
}

func nilIfEmpty(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}

func splitLines(v string) []string {
	var out []string
	for _, line := range strings.Split(v, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}
