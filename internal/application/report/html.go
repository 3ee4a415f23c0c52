package report

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"
)

// PDFRenderer converts a rendered HTML document into a PDF. The
// infrastructure layer provides a Chrome-backed implementation.
type PDFRenderer interface {
	RenderPDF(ctx context.Context, title, html string) ([]byte, error)
}

// reportDocument is the data model behind the tabular report template
type reportDocument struct {
	Title       string
	Subtitle    string
	GeneratedAt time.Time
	Columns     []string
	Rows        [][]string
	Summary     []summaryLine
}

// summaryLine is one label/value pair rendered below the table
type summaryLine struct {
	Label string
	Value string
}

const reportTemplateHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  body { font-family: "Helvetica Neue", Arial, sans-serif; font-size: 12px; color: #222; margin: 0; }
  h1 { font-size: 18px; margin: 0 0 2px 0; }
  .subtitle { color: #666; margin-bottom: 4px; }
  .generated { color: #999; font-size: 10px; margin-bottom: 12px; }
  table { width: 100%; border-collapse: collapse; }
  th { background: #e6f3ff; border-bottom: 2px solid #999; padding: 6px 8px; text-align: left; }
  td { border-bottom: 1px solid #ddd; padding: 5px 8px; }
  tr:nth-child(even) td { background: #fafafa; }
  .summary { margin-top: 12px; }
  .summary div { margin: 2px 0; }
  .summary .label { display: inline-block; min-width: 160px; font-weight: bold; }
</style>
</head>
<body>
  <h1>{{.Title}}</h1>
  {{if .Subtitle}}<div class="subtitle">{{.Subtitle}}</div>{{end}}
  <div class="generated">Generated {{.GeneratedAt.Format "02 Jan 2006 15:04"}}</div>
  <table>
    <thead>
      <tr>{{range .Columns}}<th>{{.}}</th>{{end}}</tr>
    </thead>
    <tbody>
      {{range .Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>{{end}}
    </tbody>
  </table>
  {{if .Summary}}
  <div class="summary">
    {{range .Summary}}<div><span class="label">{{.Label}}</span>{{.Value}}</div>{{end}}
  </div>
  {{end}}
</body>
</html>`

var reportTemplate = template.Must(template.New("report").Parse(reportTemplateHTML))

// renderReportHTML renders the generic tabular report document
func renderReportHTML(doc reportDocument) (string, error) {
	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, doc); err != nil {
		return "", fmt.Errorf("failed to render report template: %w", err)
	}
	return buf.String(), nil
}
