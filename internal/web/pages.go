// Package web renders the server-side chronology pages. The pages are
// deliberately plain: forms that post back to the service and redirect,
// no client-side state.
package web

import (
	"html/template"
	"io"

	"github.com/courtprep/backend/internal/chronology"
	"github.com/courtprep/backend/internal/model"
)

var funcs = template.FuncMap{
	"eventDate": func(e model.CaseEvent) string {
		if e.Dated() {
			return chronology.FormatEventDate(*e.EventDate)
		}
		return chronology.UnknownDateLabel
	},
	"deref": func(v *string) string {
		if v == nil {
			return ""
		}
		return *v
	},
}

// CaseListData drives the chronology landing page.
type CaseListData struct {
	Email string
	Cases []*model.Case
}

// CaseDetailData drives the single-case page: caption form, event forms and
// the two ordered event groups.
type CaseDetailData struct {
	Case    *model.Case
	Dated   []model.CaseEvent
	Undated []model.CaseEvent
	// HearingLocal is the stored hearing time rendered back into the local
	// wall-clock form value, empty when absent.
	HearingLocal     string
	ProceedingsLines string
}

// EventEditData drives the edit form for one entry.
type EventEditData struct {
	Case  *model.Case
	Event *model.CaseEvent
}

func CaseList(w io.Writer, data CaseListData) error {
	return caseListTmpl.Execute(w, data)
}

func CaseDetail(w io.Writer, data CaseDetailData) error {
	return caseDetailTmpl.Execute(w, data)
}

func EventEdit(w io.Writer, data EventEditData) error {
	return eventEditTmpl.Execute(w, data)
}

const pageHead = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Chronology builder</title>
<style>
  body { font-family: system-ui, sans-serif; margin: 2rem auto; max-width: 52rem; color: #18181b; }
  table { width: 100%; border-collapse: collapse; margin-top: 0.5rem; }
  th, td { border-bottom: 1px solid #d4d4d8; padding: 0.4rem 0.6rem; text-align: left; vertical-align: top; }
  form.inline { display: inline; }
  fieldset { margin-top: 1.5rem; border: 1px solid #d4d4d8; }
  label { display: block; margin-top: 0.5rem; font-size: 0.85rem; }
  input[type=text], input[type=date], input[type=datetime-local], textarea { width: 100%; box-sizing: border-box; }
  .muted { color: #71717a; font-size: 0.85rem; }
</style>
</head>
<body>
`

var caseListTmpl = template.Must(template.New("caseList").Funcs(funcs).Parse(pageHead + `
<h1>Chronology builder</h1>
<p class="muted">Signed in as {{.Email}} · <a href="/dashboard">Dashboard</a></p>

<fieldset>
<legend>New case</legend>
<form method="post" action="/dashboard/chronology/cases">
  <label>Working title
    <input type="text" name="title" required>
  </label>
  <button type="submit">Create case</button>
</form>
</fieldset>

<h2>Your cases</h2>
{{- if .Cases}}
<table>
  <thead><tr><th>Title</th><th></th></tr></thead>
  <tbody>
{{- range .Cases}}
    <tr>
      <td><a href="/dashboard/chronology/cases/{{.CaseID}}">{{.Title}}</a></td>
      <td><a href="/dashboard/chronology/cases/{{.CaseID}}/export">Export</a></td>
    </tr>
{{- end}}
  </tbody>
</table>
{{- else}}
<p class="muted">No cases yet. Create one above to get started.</p>
{{- end}}
</body>
</html>
`))

var caseDetailTmpl = template.Must(template.New("caseDetail").Funcs(funcs).Parse(pageHead + `
<p><a href="/dashboard/chronology">&larr; All cases</a></p>
<h1>{{.Case.Title}}</h1>
<p><a href="/dashboard/chronology/cases/{{.Case.CaseID}}/export">Export for print</a></p>

<fieldset>
<legend>Court heading</legend>
<form method="post" action="/dashboard/chronology/cases/{{.Case.CaseID}}/heading">
  <label>Court
    <input type="text" name="court_name" value="{{deref .Case.Heading.CourtName}}" list="court-suggestions" autocomplete="off">
  </label>
  <datalist id="court-suggestions"></datalist>
  <input type="hidden" name="court_slug" value="{{deref .Case.Heading.CourtSlug}}">
  <label>Case number
    <input type="text" name="case_number" value="{{deref .Case.Heading.CaseNumber}}">
  </label>
  <label>Applicant
    <input type="text" name="applicant_name" value="{{deref .Case.Heading.ApplicantName}}">
  </label>
  <label>Respondent
    <input type="text" name="respondent_name" value="{{deref .Case.Heading.RespondentName}}">
  </label>
  <label>Children
    <input type="text" name="children_note" value="{{deref .Case.Heading.ChildrenNote}}">
  </label>
  <label>Hearing title
    <input type="text" name="hearing_title" value="{{deref .Case.Heading.HearingTitle}}">
  </label>
  <label>Hearing date and time
    <input type="datetime-local" name="hearing_datetime" value="{{.HearingLocal}}">
  </label>
  <label>Document heading
    <input type="text" name="proceedings_heading" value="{{deref .Case.Heading.ProceedingsHeading}}" placeholder="CHRONOLOGY">
  </label>
  <label>Proceedings lines (one per line)
    <textarea name="proceedings_lines" rows="3">{{.ProceedingsLines}}</textarea>
  </label>
  <button type="submit">Save heading</button>
</form>
</fieldset>

<fieldset>
<legend>Add event</legend>
<form method="post" action="/dashboard/chronology/cases/{{.Case.CaseID}}/events">
  <label>Date
    <input type="date" name="event_date">
  </label>
  <label><input type="checkbox" name="date_unknown" value="1"> Date unknown</label>
  <label>What happened
    <textarea name="summary" rows="3" required></textarea>
  </label>
  <label>Evidence
    <input type="text" name="evidence">
  </label>
  <button type="submit">Add event</button>
</form>
</fieldset>

<h2>Dated events</h2>
{{- if .Dated}}
<table>
  <thead><tr><th>Date</th><th>Event</th><th>Evidence</th><th></th></tr></thead>
  <tbody>
{{- range .Dated}}
    <tr>
      <td>{{eventDate .}}</td>
      <td>{{.Summary}}</td>
      <td>{{deref .Evidence}}</td>
      <td>
        <a href="/dashboard/chronology/cases/{{.CaseID}}/events/{{.EventID}}">Edit</a>
        <form class="inline" method="post" action="/dashboard/chronology/cases/{{.CaseID}}/events/{{.EventID}}/delete">
          <button type="submit">Delete</button>
        </form>
      </td>
    </tr>
{{- end}}
  </tbody>
</table>
{{- else}}
<p class="muted">No dated events.</p>
{{- end}}

<h2>Undated events</h2>
{{- if .Undated}}
<table>
  <thead><tr><th>Date</th><th>Event</th><th>Evidence</th><th></th></tr></thead>
  <tbody>
{{- range .Undated}}
    <tr>
      <td>{{eventDate .}}</td>
      <td>{{.Summary}}</td>
      <td>{{deref .Evidence}}</td>
      <td>
        <a href="/dashboard/chronology/cases/{{.CaseID}}/events/{{.EventID}}">Edit</a>
        <form class="inline" method="post" action="/dashboard/chronology/cases/{{.CaseID}}/events/{{.EventID}}/delete">
          <button type="submit">Delete</button>
        </form>
      </td>
    </tr>
{{- end}}
  </tbody>
</table>
{{- else}}
<p class="muted">No undated events.</p>
{{- end}}

<fieldset>
<legend>Delete case</legend>
<form method="post" action="/dashboard/chronology/cases/{{.Case.CaseID}}/delete">
  <label>Type DELETE to confirm. This removes the case and every event.
    <input type="text" name="confirm" autocomplete="off">
  </label>
  <button type="submit">Delete case</button>
</form>
</fieldset>
</body>
</html>
`))

var eventEditTmpl = template.Must(template.New("eventEdit").Funcs(funcs).Parse(pageHead + `
<p><a href="/dashboard/chronology/cases/{{.Case.CaseID}}">&larr; {{.Case.Title}}</a></p>
<h1>Edit event</h1>

<form method="post" action="/dashboard/chronology/cases/{{.Case.CaseID}}/events/{{.Event.EventID}}">
  <label>Date
    <input type="date" name="event_date" value="{{deref .Event.EventDate}}">
  </label>
  <label><input type="checkbox" name="date_unknown" value="1"{{if .Event.DateUnknown}} checked{{end}}> Date unknown</label>
  <label>What happened
    <textarea name="summary" rows="3" required>{{.Event.Summary}}</textarea>
  </label>
  <label>Evidence
    <input type="text" name="evidence" value="{{deref .Event.Evidence}}">
  </label>
  <button type="submit">Save changes</button>
</form>

<form method="post" action="/dashboard/chronology/cases/{{.Case.CaseID}}/events/{{.Event.EventID}}/delete">
  <button type="submit">Delete event</button>
</form>
</body>
</html>
`))
