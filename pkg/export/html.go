package export

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/PuerkitoBio/goquery"

	"sparc/entities"
)

var page = template.Must(template.New("entries").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>SPARC time entries</title></head>
<body>
<table class="entries">
<thead><tr>{{range .Header}}<th>{{.}}</th>{{end}}</tr></thead>
<tbody>
{{- range .Rows}}
<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{- end}}
</tbody>
</table>
</body>
</html>
`))

// WriteHTML renders the rows as a printable table.
func WriteHTML(w io.Writer, entries []entities.TimeEntry, loc *time.Location) error {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, Row(e, loc))
	}
	if err := page.Execute(w, struct {
		Header []string
		Rows   [][]string
	}{Header, rows}); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	return nil
}

// ReadHTML extracts the table written by WriteHTML, header included. Cell
// text is returned as written.
func ReadHTML(r io.Reader) ([][]string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	var rows [][]string
	doc.Find("table.entries tr").Each(func(_ int, tr *goquery.Selection) {
		var row []string
		tr.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
			row = append(row, cell.Text())
		})
		rows = append(rows, row)
	})
	if len(rows) == 0 {
		return nil, fmt.Errorf("no entries table found")
	}
	return rows, nil
}
