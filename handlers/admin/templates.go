package admin

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/gofiber/fiber/v2"
)

var funcs = template.FuncMap{
	"cell": func(row map[string]any, column string) string {
		return formatCell(row[column])
	},
}

var pages = template.Must(template.New("index").Funcs(funcs).Parse(`<!DOCTYPE html>
<html lang="es">
<head><meta charset="utf-8"><title>Administración FACET</title></head>
<body>
<h1>Administración FACET</h1>
<table>
<thead><tr><th>Modelo</th><th>Por página</th></tr></thead>
<tbody>
{{range .}}<tr><td><a href="{{.URL}}?format=html">{{.VerboseName}}</a></td><td>{{.ListPerPage}}</td></tr>
{{end}}</tbody>
</table>
</body>
</html>
`))

var changelistPage = template.Must(template.New("changelist").Funcs(funcs).Parse(`<!DOCTYPE html>
<html lang="es">
<head><meta charset="utf-8"><title>{{.Title}} | Administración FACET</title></head>
<body>
<h1>{{.Title}}</h1>
<p>{{.Count}} resultados{{if .Filters}} · filtros: {{range $i, $f := .Filters}}{{if $i}}, {{end}}{{$f}}{{end}}{{end}}</p>
<table>
<thead><tr>{{range .Columns}}<th>{{.}}</th>{{end}}</tr></thead>
<tbody>
{{range $row := .Rows}}<tr>{{range $.Columns}}<td>{{cell $row .}}</td>{{end}}</tr>
{{end}}</tbody>
</table>
<p>{{if .Previous}}<a href="{{.Previous}}">anterior</a>{{end}} página {{.Page}} de {{.Last}} {{if .Next}}<a href="{{.Next}}">siguiente</a>{{end}}</p>
</body>
</html>
`))

type changelistData struct {
	Title    string
	Count    int64
	Filters  []string
	Columns  []string
	Rows     []map[string]any
	Page     int
	Last     int
	Previous string
	Next     string
}

func formatCell(v any) string {
	switch t := v.(type) {
	case nil:
		return "-"
	case string:
		if t == "" {
			return "-"
		}
		return t
	case bool:
		if t {
			return "Sí"
		}
		return "No"
	case *time.Time:
		if t == nil {
			return "-"
		}
		return t.Format("02/01/2006")
	case time.Time:
		return t.Format("02/01/2006 15:04")
	case fmt.Stringer:
		return t.String()
	}
	return fmt.Sprint(v)
}

func renderIndex(c *fiber.Ctx, models []ModelInfo) error {
	var buf bytes.Buffer
	if err := pages.Execute(&buf, models); err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(buf.Bytes())
}

func renderChangelist(c *fiber.Ctx, reg *registration, cl *changelist) error {
	body := cl.page.Body(c, nil)
	data := changelistData{
		Title:   reg.verboseName,
		Count:   cl.page.Total,
		Filters: reg.listFilter,
		Columns: cl.columns,
		Rows:    cl.rows,
		Page:    cl.page.Number,
		Last:    cl.page.Last(),
	}
	if body.Previous != nil {
		data.Previous = *body.Previous
	}
	if body.Next != nil {
		data.Next = *body.Next
	}

	var buf bytes.Buffer
	if err := changelistPage.Execute(&buf, data); err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(buf.Bytes())
}
