package tabular

import (
	"html/template"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// The print projection is one continuous table; the browser's print dialog
// handles page breaks, not this renderer.
var printTemplate = template.Must(template.New("print").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; margin: 24px; }
h1 { font-size: 18px; margin-bottom: 4px; }
p.meta { color: #555; font-size: 12px; margin-top: 0; }
table { border-collapse: collapse; width: 100%; font-size: 12px; }
th, td { border: 1px solid #999; padding: 4px 8px; text-align: left; }
th { background: #eee; }
</style>
</head>
<body onload="window.print()">
<h1>{{.Title}}</h1>
<p class="meta">Generated at {{.GeneratedAt}} &mdash; {{.Total}} records</p>
<table>
<thead><tr>{{range .Headers}}<th>{{.}}</th>{{end}}</tr></thead>
<tbody>
{{range .Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{end}}</tbody>
</table>
</body>
</html>
`))

type printDocument struct {
	Title       string
	GeneratedAt string
	Total       int
	Headers     []string
	Rows        [][]string
}

// RenderPrintDocument emits the filtered/sorted records as a printable HTML
// page carrying a generated-at timestamp and the total row count. Cells
// follow the same contract as RenderCSV, so the three projections agree.
func RenderPrintDocument[T any](records []T, keys []string, table *Table[T], title string, generatedAt time.Time) (string, error) {
	if len(records) == 0 {
		return "", ErrNoRows
	}
	keys = knownKeys(keys, table)

	doc := printDocument{
		Title:       title,
		GeneratedAt: generatedAt.Format("2006-01-02 15:04:05"),
		Total:       len(records),
	}
	for _, key := range keys {
		doc.Headers = append(doc.Headers, table.Label(key))
	}
	for _, record := range records {
		row := make([]string, len(keys))
		for i, key := range keys {
			row[i] = table.ExportValue(key, record)
		}
		doc.Rows = append(doc.Rows, row)
	}

	var b strings.Builder
	if err := printTemplate.Execute(&b, doc); err != nil {
		return "", errors.Wrap(err, "failed to render print document")
	}
	return b.String(), nil
}
