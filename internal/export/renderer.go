// Package export renders a chronology as a self-contained, print-formatted
// document. The layout is fixed: absent heading fields render as blank
// placeholder runs so a partially completed case still prints as a properly
// shaped court document.
package export

import (
	"html/template"
	"io"
	"strings"

	"github.com/courtprep/backend/internal/chronology"
	"github.com/courtprep/backend/internal/model"
)

// Placeholder fills absent heading fields on the printed document.
const Placeholder = "________________________"

// DefaultProceedingsHeading labels the document when no custom heading is set.
const DefaultProceedingsHeading = "CHRONOLOGY"

type row struct {
	No       int
	Date     string
	Summary  string
	Evidence string
}

type document struct {
	BackHref         string
	CourtLine        string
	CaseNumber       string
	Applicant        string
	Respondent       string
	ChildrenNote     string
	HearingLine      string
	Heading          string
	ProceedingsLines []string
	Title            string
	Dated            []row
	Undated          []row
}

// Render writes the print view for a case and its ordered event groups.
func Render(w io.Writer, c *model.Case, dated, undated []model.CaseEvent) error {
	return tmpl.Execute(w, buildDocument(c, dated, undated))
}

func buildDocument(c *model.Case, dated, undated []model.CaseEvent) document {
	h := c.Heading

	doc := document{
		BackHref:     "/dashboard/chronology/cases/" + c.CaseID,
		CourtLine:    courtLine(h.CourtName),
		CaseNumber:   orPlaceholder(h.CaseNumber),
		Applicant:    orPlaceholder(h.ApplicantName),
		Respondent:   orPlaceholder(h.RespondentName),
		ChildrenNote: orPlaceholder(h.ChildrenNote),
		HearingLine:  hearingLine(h),
		Heading:      proceedingsHeading(h.ProceedingsHeading),
		Title:        c.Title,
		Dated:        rows(dated),
		Undated:      rows(undated),
	}
	for _, l := range h.ProceedingsLines {
		doc.ProceedingsLines = append(doc.ProceedingsLines, strings.ToUpper(l))
	}
	return doc
}

func courtLine(name *string) string {
	if name == nil || strings.TrimSpace(*name) == "" {
		return Placeholder
	}
	return strings.ToUpper("IN THE " + strings.TrimSpace(*name))
}

func proceedingsHeading(h *string) string {
	if h == nil || strings.TrimSpace(*h) == "" {
		return DefaultProceedingsHeading
	}
	return strings.ToUpper(strings.TrimSpace(*h))
}

func hearingLine(h model.CaseHeading) string {
	var parts []string
	if h.HearingTitle != nil && strings.TrimSpace(*h.HearingTitle) != "" {
		parts = append(parts, strings.TrimSpace(*h.HearingTitle))
	}
	if h.HearingTime != nil {
		parts = append(parts, chronology.FormatHearingTime(*h.HearingTime))
	}
	if len(parts) == 0 {
		return Placeholder
	}
	return strings.Join(parts, " • ")
}

func orPlaceholder(v *string) string {
	if v == nil || strings.TrimSpace(*v) == "" {
		return Placeholder
	}
	return strings.TrimSpace(*v)
}

func rows(events []model.CaseEvent) []row {
	out := make([]row, 0, len(events))
	for i, e := range events {
		r := row{No: i + 1, Summary: e.Summary}
		if e.Dated() {
			r.Date = chronology.FormatEventDate(*e.EventDate)
		} else {
			r.Date = chronology.UnknownDateLabel
		}
		if e.Evidence != nil {
			r.Evidence = *e.Evidence
		}
		out = append(out, r)
	}
	return out
}

var tmpl = template.Must(template.New("export").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Chronology export</title>
<style>
  body { font-family: Georgia, "Times New Roman", serif; margin: 2rem auto; max-width: 56rem; color: #18181b; }
  table { width: 100%; border-collapse: collapse; margin-top: 0.75rem; }
  th, td { border-bottom: 1px solid #d4d4d8; padding: 0.5rem 0.75rem; text-align: left; vertical-align: top; font-size: 0.9rem; }
  th { font-size: 0.8rem; }
  .caption { font-size: 0.85rem; }
  .caption .label { font-weight: bold; }
  .doc-heading { text-align: center; font-weight: bold; margin-top: 1.5rem; }
  .doc-title { text-align: center; margin-top: 0.25rem; }
  .section { margin-top: 2rem; font-weight: bold; font-size: 0.9rem; }
  @media print {
    .print-hidden { display: none !important; }
    @page { margin: 16mm; }
    table { page-break-inside: auto; }
    tr { page-break-inside: avoid; page-break-after: auto; }
    thead { display: table-header-group; }
  }
</style>
</head>
<body>
<div class="print-hidden">
  <button onclick="window.print()">Print / save as PDF</button>
  <a href="{{.BackHref}}">Back</a>
</div>

<div class="caption">
  <div class="label">{{.CourtLine}}</div>
  <p><span class="label">Case number:</span> {{.CaseNumber}}</p>
  <p><span class="label">Applicant:</span> {{.Applicant}}</p>
  <p><span class="label">Respondent:</span> {{.Respondent}}</p>
  <p><span class="label">Children:</span> {{.ChildrenNote}}</p>
{{- range .ProceedingsLines}}
  <div>{{.}}</div>
{{- end}}
  <p><span class="label">Hearing:</span> {{.HearingLine}}</p>
</div>

<div class="doc-heading">{{.Heading}}</div>
<div class="doc-title">{{.Title}}</div>

<div class="section">Dated events</div>
<table>
  <thead>
    <tr><th>No.</th><th>Date</th><th>Event</th><th>Evidence</th></tr>
  </thead>
  <tbody>
{{- if .Dated}}
{{- range .Dated}}
    <tr><td>{{.No}}</td><td>{{.Date}}</td><td>{{.Summary}}</td><td>{{.Evidence}}</td></tr>
{{- end}}
{{- else}}
    <tr><td colspan="4">No dated events.</td></tr>
{{- end}}
  </tbody>
</table>

<div class="section">Undated events</div>
<table>
  <thead>
    <tr><th>No.</th><th>Date</th><th>Event</th><th>Evidence</th></tr>
  </thead>
  <tbody>
{{- if .Undated}}
{{- range .Undated}}
    <tr><td>{{.No}}</td><td>{{.Date}}</td><td>{{.Summary}}</td><td>{{.Evidence}}</td></tr>
{{- end}}
{{- else}}
    <tr><td colspan="4">No undated events.</td></tr>
{{- end}}
  </tbody>
</table>

<p class="print-hidden">End of document.</p>
</body>
</html>
`))
