// Package render produces the printable representation of a generated
// document served on the download route.
package render

import (
	"encoding/json"
	"fmt"
	"html/template"
	"io"

	"docvault/internal/model"
)

var documentTemplate = template.Must(template.New("document").Parse(`<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Name}} {{.Surname}}</title>
<style>
body { font-family: Georgia, serif; margin: 4rem auto; max-width: 42rem; color: #1a1a1a; }
h1 { border-bottom: 2px solid #1a1a1a; padding-bottom: .5rem; }
dl { display: grid; grid-template-columns: 12rem 1fr; gap: .5rem 1rem; }
dt { font-weight: bold; }
footer { margin-top: 3rem; font-size: .8rem; color: #666; }
pre { background: #f5f5f5; padding: 1rem; overflow-x: auto; }
</style>
</head>
<body>
<h1>Identity Document</h1>
<dl>
<dt>Name</dt><dd>{{.Name}}</dd>
<dt>Surname</dt><dd>{{.Surname}}</dd>
<dt>National ID</dt><dd>{{.NationalID}}</dd>
<dt>Issued</dt><dd>{{.Issued}}</dd>
</dl>
{{if .Payload}}<pre>{{.Payload}}</pre>{{end}}
<footer>Reference: {{.PublicID}}</footer>
</body>
</html>
`))

type documentView struct {
	Name       string
	Surname    string
	NationalID string
	Issued     string
	PublicID   string
	Payload    string
}

// Document writes the printable HTML for doc to w.
func Document(w io.Writer, doc model.Document) error {
	view := documentView{
		Name:       doc.Name,
		Surname:    doc.Surname,
		NationalID: doc.NationalID,
		Issued:     doc.CreatedAt.Format("2006-01-02"),
		PublicID:   doc.PublicID,
	}

	if len(doc.Data) > 0 {
		pretty, err := json.MarshalIndent(json.RawMessage(doc.Data), "", "  ")
		if err == nil {
			view.Payload = string(pretty)
		}
	}

	if err := documentTemplate.Execute(w, view); err != nil {
		return fmt.Errorf("render document: %w", err)
	}
	return nil
}
