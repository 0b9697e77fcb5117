package model

import "time"

// Profile carries the per-user flags read by this service. Accounts
// themselves live with the identity provider; this core only ever reads
// profiles, it never creates or mutates them.
type Profile struct {
	UserID        string    `json:"userId"`
	IsPrivateBeta bool      `json:"isPrivateBeta"`
	CreationTime  time.Time `json:"creationTime"`
}

// Case represents one legal matter owned by a single user.
type Case struct {
	CaseID       string      `json:"caseId"`
	OwnerID      string      `json:"ownerId"`
	Title        string      `json:"title"`
	Heading      CaseHeading `json:"heading"`
	CreationTime time.Time   `json:"creationTime"`
}

// CaseHeading is the optional court caption block printed atop an exported
// chronology. Every field is independently nullable; empty strings are never
// stored.
type CaseHeading struct {
	CourtName          *string    `json:"courtName,omitempty"`
	CourtSlug          *string    `json:"courtSlug,omitempty"`
	CaseNumber         *string    `json:"caseNumber,omitempty"`
	ApplicantName      *string    `json:"applicantName,omitempty"`
	RespondentName     *string    `json:"respondentName,omitempty"`
	HearingTitle       *string    `json:"hearingTitle,omitempty"`
	HearingTime        *time.Time `json:"hearingTime,omitempty"`
	ChildrenNote       *string    `json:"childrenNote,omitempty"`
	ProceedingsHeading *string    `json:"proceedingsHeading,omitempty"`
	ProceedingsLines   []string   `json:"proceedingsLines,omitempty"`
}

// CaseEvent is one chronology entry. EventDate is a calendar date in
// "2006-01-02" form; when DateUnknown is set the date is treated as absent
// regardless of the stored value.
type CaseEvent struct {
	EventID      string    `json:"eventId"`
	CaseID       string    `json:"caseId"`
	EventDate    *string   `json:"eventDate,omitempty"`
	DateUnknown  bool      `json:"dateUnknown"`
	Summary      string    `json:"summary"`
	Evidence     *string   `json:"evidence,omitempty"`
	CreationTime time.Time `json:"creationTime"`
}

// Dated reports whether the event belongs in the dated section of a
// chronology. An absent date implies unknown even when DateUnknown is false.
func (e CaseEvent) Dated() bool {
	return !e.DateUnknown && e.EventDate != nil && *e.EventDate != ""
}

// Enquiry is a validated contact-form submission forwarded to the mail relay.
type Enquiry struct {
	Name             string `json:"name"`
	Email            string `json:"email"`
	Message          string `json:"message"`
	Service          string `json:"service,omitempty"`
	CourtType        string `json:"courtType,omitempty"`
	Stage            string `json:"stage,omitempty"`
	Urgency          string `json:"urgency,omitempty"`
	HearingDate      string `json:"hearingDate,omitempty"`
	CourtLocation    string `json:"courtLocation,omitempty"`
	PreferredContact string `json:"preferredContact,omitempty"`
}

// Court is one normalized result from the court-register lookup.
type Court struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}
