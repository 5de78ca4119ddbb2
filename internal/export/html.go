// Package export renders a computed profile into downloadable report
// payloads. Exporters are pure consumers of the table and report; they never
// mutate session state.
package export

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/gomarkdown/markdown"

	"goeda/domain/dataset"
	"goeda/internal/errors"
	"goeda/internal/profiling"
)

// sampleSize is the number of rows embedded in report documents
const sampleSize = 10

// ReportFilename builds a timestamped report file name
func ReportFilename(prefix, ext string) string {
	return fmt.Sprintf("%s_%s.%s", prefix, time.Now().Format("20060102_150405"), ext)
}

type htmlColumn struct {
	Name       string
	Type       string
	NonNull    int
	Missing    int
	MissingPct float64
}

type htmlInsight struct {
	Title string
	Body  template.HTML
}

type htmlReportData struct {
	GeneratedAt string
	Rows        int
	Cols        int
	Missing     int
	Duplicates  int
	MemoryMB    string
	Columns     []htmlColumn
	Headers     []string
	Sample      [][]string
	Insights    []htmlInsight
}

// HTMLReport renders the profile into a standalone HTML document with an
// overview, a per-column table, a bounded sample and any generated insight
// texts (markdown, rendered to HTML).
func HTMLReport(table *dataset.Table, report *profiling.Report, insights map[string]string) ([]byte, error) {
	data := htmlReportData{
		GeneratedAt: time.Now().Format("2006-01-02 15:04:05"),
		Rows:        report.Rows,
		Cols:        report.Cols,
		Missing:     report.TotalMissing(),
		Duplicates:  report.DuplicateRows,
		MemoryMB:    fmt.Sprintf("%.2f MB", report.MemoryMB),
		Headers:     table.ColumnNames(),
		Sample:      table.Head(sampleSize),
	}
	for _, name := range table.ColumnNames() {
		data.Columns = append(data.Columns, htmlColumn{
			Name:       name,
			Type:       report.ColumnTypes[name],
			NonNull:    report.Rows - report.MissingCounts[name],
			Missing:    report.MissingCounts[name],
			MissingPct: report.MissingPct[name],
		})
	}
	for _, title := range []string{"summary", "data_quality", "insights", "recommendations"} {
		if text, ok := insights[title]; ok && text != "" {
			rendered := markdown.ToHTML([]byte(text), nil, nil)
			data.Insights = append(data.Insights, htmlInsight{
				Title: title,
				Body:  template.HTML(rendered),
			})
		}
	}

	var buf bytes.Buffer
	if err := htmlReportTemplate.Execute(&buf, data); err != nil {
		return nil, errors.Wrap(err, "failed to render HTML report")
	}
	return buf.Bytes(), nil
}

var htmlReportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
    <title>EDA Report - {{.GeneratedAt}}</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 20px; background-color: #f5f5f5; }
        .container { background-color: white; padding: 30px; border-radius: 8px; box-shadow: 0 2px 4px rgba(0,0,0,0.1); }
        h1 { color: #2c3e50; border-bottom: 3px solid #3498db; padding-bottom: 10px; }
        h2 { color: #34495e; margin-top: 30px; border-left: 4px solid #3498db; padding-left: 10px; }
        table { border-collapse: collapse; width: 100%; margin: 15px 0; }
        th { background-color: #3498db; color: white; padding: 12px; text-align: left; }
        td { border: 1px solid #ddd; padding: 10px; }
        tr:nth-child(even) { background-color: #f9f9f9; }
        .metric { display: inline-block; margin: 10px 20px 10px 0; padding: 15px; background-color: #ecf0f1; border-radius: 5px; }
        .metric-label { font-weight: bold; color: #2c3e50; }
        .metric-value { font-size: 18px; color: #3498db; margin-top: 5px; }
        .timestamp { text-align: right; color: #7f8c8d; margin-top: 20px; font-size: 12px; }
    </style>
</head>
<body>
<div class="container">
    <h1>Automated EDA Report</h1>

    <h2>Dataset Overview</h2>
    <div class="metric"><div class="metric-label">Total Rows</div><div class="metric-value">{{.Rows}}</div></div>
    <div class="metric"><div class="metric-label">Total Columns</div><div class="metric-value">{{.Cols}}</div></div>
    <div class="metric"><div class="metric-label">Missing Values</div><div class="metric-value">{{.Missing}}</div></div>
    <div class="metric"><div class="metric-label">Duplicate Rows</div><div class="metric-value">{{.Duplicates}}</div></div>
    <div class="metric"><div class="metric-label">Memory Usage</div><div class="metric-value">{{.MemoryMB}}</div></div>

    <h2>Column Information</h2>
    <table>
        <tr><th>Column</th><th>Data Type</th><th>Non-Null Count</th><th>Missing Values</th><th>Missing %</th></tr>
        {{range .Columns}}<tr><td>{{.Name}}</td><td>{{.Type}}</td><td>{{.NonNull}}</td><td>{{.Missing}}</td><td>{{printf "%.2f" .MissingPct}}%</td></tr>
        {{end}}
    </table>

    <h2>Data Sample (First 10 rows)</h2>
    <table>
        <tr>{{range .Headers}}<th>{{.}}</th>{{end}}</tr>
        {{range .Sample}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
        {{end}}
    </table>

    {{range .Insights}}
    <h2>AI Analysis: {{.Title}}</h2>
    <div>{{.Body}}</div>
    {{end}}

    <div class="timestamp">Report generated on: {{.GeneratedAt}}</div>
</div>
</body>
</html>
`))
