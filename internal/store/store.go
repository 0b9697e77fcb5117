package store

import (
	"context"

	"github.com/courtprep/backend/internal/model"
)

// Store exposes persistence operations required by services.
// Implementations live under internal/store/<driver>/ (postgres, sqlite).
// Adapters translate driver-level "no rows" into model.ErrNotFound so the
// layers above never see database/sql.
type Store interface {
	Profiles() Profiles
	Cases() Cases
	Events() Events
}

type Profiles interface {
	Get(ctx context.Context, userID string) (*model.Profile, error)
	// SetPrivateBeta upserts the flag. Only the admin CLI calls this; the
	// service itself never mutates profiles.
	SetPrivateBeta(ctx context.Context, userID string, enabled bool) error
}

type Cases interface {
	Create(ctx context.Context, c *model.Case) (*model.Case, error)
	Get(ctx context.Context, ownerID, caseID string) (*model.Case, error)
	List(ctx context.Context, ownerID string) ([]*model.Case, error)
	UpdateHeading(ctx context.Context, ownerID, caseID string, h model.CaseHeading) error
	// Delete removes the case; events cascade via the schema.
	Delete(ctx context.Context, ownerID, caseID string) error
}

type Events interface {
	Create(ctx context.Context, e *model.CaseEvent) (*model.CaseEvent, error)
	Get(ctx context.Context, caseID, eventID string) (*model.CaseEvent, error)
	ListByCase(ctx context.Context, caseID string) ([]*model.CaseEvent, error)
	// Update writes the mutable fields, scoped to (EventID, CaseID) so a
	// mismatched pair can never touch an unrelated event.
	Update(ctx context.Context, e *model.CaseEvent) error
	// Delete is a no-op when the id does not exist.
	Delete(ctx context.Context, eventID string) error
}
