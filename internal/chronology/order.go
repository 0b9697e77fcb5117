// Package chronology implements the ordering rules for chronology documents:
// events are split into dated and undated groups, the dated group is sorted
// by calendar date, and each group is numbered independently when rendered.
package chronology

import (
	"sort"
	"time"

	"github.com/courtprep/backend/internal/model"
)

// Partition splits events into the dated and undated groups and sorts each
// for display. An event is undated when its date is flagged unknown or simply
// absent. Dated events order by event date ascending, ties broken by creation
// time; undated events order by creation time alone. The function is pure:
// the input slice is never modified.
func Partition(events []model.CaseEvent) (dated, undated []model.CaseEvent) {
	for _, e := range events {
		if e.Dated() {
			dated = append(dated, e)
		} else {
			undated = append(undated, e)
		}
	}

	sort.SliceStable(dated, func(i, j int) bool {
		if *dated[i].EventDate != *dated[j].EventDate {
			return *dated[i].EventDate < *dated[j].EventDate
		}
		return dated[i].CreationTime.Before(dated[j].CreationTime)
	})
	sort.SliceStable(undated, func(i, j int) bool {
		return undated[i].CreationTime.Before(undated[j].CreationTime)
	})
	return dated, undated
}

// UnknownDateLabel is displayed in place of a date for undated events.
const UnknownDateLabel = "Date unknown"

// FormatEventDate renders a stored calendar date ("2006-01-02") in the fixed
// en-GB convention used throughout the product, e.g. "14 Mar 2026". The raw
// value is returned unchanged if it does not parse; a bad stored date should
// stay visible rather than vanish from a legal document.
func FormatEventDate(d string) string {
	t, err := time.Parse("2006-01-02", d)
	if err != nil {
		return d
	}
	return t.Format("02 Jan 2006")
}

// FormatHearingTime renders a hearing datetime in the long en-GB form used on
// the export heading, e.g. "14 March 2026, 10:30".
func FormatHearingTime(t time.Time) string {
	return t.Format("02 January 2006, 15:04")
}
