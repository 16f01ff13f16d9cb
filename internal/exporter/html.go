package exporter

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/productforge/backend/internal/models"
)

// htmlDocument is a standalone page styled for screen and print.
// Template escaping covers title, type, date and content; the content's
// newlines are turned into <br> after escaping.
var htmlDocument = template.Must(template.New("export").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}}</title>
    <style>
        body {
            font-family: 'Arial', sans-serif;
            line-height: 1.6;
            max-width: 800px;
            margin: 0 auto;
            padding: 20px;
            color: #333;
        }
        h1 {
            color: #6366F1;
            border-bottom: 2px solid #6366F1;
            padding-bottom: 10px;
        }
        .metadata {
            background: #f8f9fa;
            padding: 15px;
            border-radius: 8px;
            margin: 20px 0;
            font-size: 14px;
        }
        .content {
            white-space: pre-wrap;
            line-height: 1.8;
        }
        @media print {
            body { margin: 0; padding: 15px; }
        }
    </style>
</head>
<body>
    <h1>{{.Title}}</h1>
{{- if .IncludeMetadata}}
    <div class="metadata">
        <strong>Type:</strong> {{.Type}}<br>
        <strong>Created:</strong> {{.Date}}
    </div>
{{- end}}
    <div class="content">{{.Content}}</div>
</body>
</html>
`))

type htmlView struct {
	Normalized
	IncludeMetadata bool
	Content         template.HTML
}

type htmlRenderer struct{}

// NewHTMLRenderer returns the renderer for FormatHTML.
func NewHTMLRenderer() Renderer { return htmlRenderer{} }

func (htmlRenderer) Format() Format { return FormatHTML }

func (htmlRenderer) Render(project *models.ExportableProject, opts Options) ([]byte, error) {
	n := Normalize(project)
	view := htmlView{
		Normalized:      n,
		IncludeMetadata: opts.IncludeMetadata,
		Content:         template.HTML(strings.ReplaceAll(template.HTMLEscapeString(n.Content), "\n", "<br>")),
	}

	var buf bytes.Buffer
	if err := htmlDocument.Execute(&buf, view); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
