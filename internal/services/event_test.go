package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courtprep/backend/internal/model"
	"github.com/courtprep/backend/internal/store/storetest"
)

func TestAddEvent_EmptySummaryIsNoOp(t *testing.T) {
	fake := storetest.NewFake()
	svc := NewEventService(fake)
	ctx := context.Background()

	for _, summary := range []string{"", "   ", "\n\t"} {
		_, err := svc.AddEvent(ctx, "case-1", EventInput{Summary: summary})
		assert.ErrorIs(t, err, ErrEmptySummary, "summary %q", summary)

		evs, _ := fake.Events().ListByCase(ctx, "case-1")
		assert.Empty(t, evs, "nothing may be stored for summary %q", summary)
	}
}

func TestAddEvent_DateUnknownForcesDateAbsent(t *testing.T) {
	fake := storetest.NewFake()
	svc := NewEventService(fake)
	ctx := context.Background()

	e, err := svc.AddEvent(ctx, "case-1", EventInput{
		Date:        "2024-05-01",
		DateUnknown: true,
		Summary:     "happened at some point",
	})
	require.NoError(t, err)
	assert.True(t, e.DateUnknown)
	assert.Nil(t, e.EventDate)
}

func TestAddEvent_Normalization(t *testing.T) {
	fake := storetest.NewFake()
	svc := NewEventService(fake)
	ctx := context.Background()

	e, err := svc.AddEvent(ctx, "case-1", EventInput{
		Date:     " 2024-05-01 ",
		Summary:  "  Filed application  ",
		Evidence: "   ",
	})
	require.NoError(t, err)
	assert.Equal(t, "Filed application", e.Summary)
	require.NotNil(t, e.EventDate)
	assert.Equal(t, "2024-05-01", *e.EventDate)
	assert.Nil(t, e.Evidence, "blank evidence is stored absent")

	// A malformed date degrades to undated rather than erroring.
	e2, err := svc.AddEvent(ctx, "case-1", EventInput{Date: "01/05/2024", Summary: "odd date"})
	require.NoError(t, err)
	assert.Nil(t, e2.EventDate)
	assert.False(t, e2.Dated())
}

func TestEditEvent(t *testing.T) {
	fake := storetest.NewFake()
	svc := NewEventService(fake)
	ctx := context.Background()

	e, err := svc.AddEvent(ctx, "case-1", EventInput{Date: "2024-05-01", Summary: "original"})
	require.NoError(t, err)

	// Empty summary leaves the stored event untouched.
	err = svc.EditEvent(ctx, "case-1", e.EventID, EventInput{Summary: "  "})
	assert.ErrorIs(t, err, ErrEmptySummary)
	got, _ := svc.GetEvent(ctx, "case-1", e.EventID)
	assert.Equal(t, "original", got.Summary)

	// A mismatched case id must not update an unrelated event.
	err = svc.EditEvent(ctx, "case-2", e.EventID, EventInput{Summary: "hijack"})
	assert.ErrorIs(t, err, model.ErrNotFound)
	got, _ = svc.GetEvent(ctx, "case-1", e.EventID)
	assert.Equal(t, "original", got.Summary)

	require.NoError(t, svc.EditEvent(ctx, "case-1", e.EventID, EventInput{DateUnknown: true, Summary: "updated"}))
	got, _ = svc.GetEvent(ctx, "case-1", e.EventID)
	assert.Equal(t, "updated", got.Summary)
	assert.True(t, got.DateUnknown)
	assert.Nil(t, got.EventDate)
}

func TestDeleteEvent(t *testing.T) {
	fake := storetest.NewFake()
	svc := NewEventService(fake)
	ctx := context.Background()

	e, err := svc.AddEvent(ctx, "case-1", EventInput{Summary: "to delete"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteEvent(ctx, e.EventID))
	_, err = svc.GetEvent(ctx, "case-1", e.EventID)
	assert.ErrorIs(t, err, model.ErrNotFound)

	// unknown id is a no-op
	assert.NoError(t, svc.DeleteEvent(ctx, "no-such-event"))
}
