package docs

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"

	"github.com/go-openapi/spec"
	"github.com/gofiber/fiber/v2"
	"gopkg.in/yaml.v3"
)

// DocsHandler serves the schema and the two documentation UIs
type DocsHandler struct {
	json []byte
	yaml []byte
}

// NewDocsHandler renders doc once. The route table is fixed after startup.
func NewDocsHandler(doc *spec.Swagger) (*DocsHandler, error) {
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode swagger json: %w", err)
	}
	y, err := toYAML(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to encode swagger yaml: %w", err)
	}
	return &DocsHandler{json: raw, yaml: y}, nil
}

// toYAML re-encodes JSON as block YAML keeping key order.
func toYAML(raw []byte) ([]byte, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(raw, &node); err != nil {
		return nil, err
	}
	blockStyle(&node)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&node); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// blockStyle drops the flow and quoting styles the JSON decode left on every
// node. Strings that would read as another type stay quoted.
func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, child := range n.Content {
		blockStyle(child)
	}
}

// JSON handles GET /api/swagger.json
func (h *DocsHandler) JSON(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
	return c.Send(h.json)
}

// YAML handles GET /api/swagger.yaml
func (h *DocsHandler) YAML(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, "application/yaml; charset=utf-8")
	return c.Send(h.yaml)
}

var swaggerUI = template.Must(template.New("swagger").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/swagger-ui-dist@5/swagger-ui.css">
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://cdn.jsdelivr.net/npm/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
<script>
window.ui = SwaggerUIBundle({url: "{{.SchemaURL}}", dom_id: "#swagger-ui", persistAuthorization: true});
</script>
</body>
</html>
`))

var redoc = template.Must(template.New("redoc").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
<redoc spec-url="{{.SchemaURL}}"></redoc>
<script src="https://cdn.jsdelivr.net/npm/redoc@2/bundles/redoc.standalone.js"></script>
</body>
</html>
`))

type uiData struct {
	Title     string
	SchemaURL string
}

func (h *DocsHandler) render(c *fiber.Ctx, t *template.Template) error {
	var buf bytes.Buffer
	data := uiData{Title: DefaultInfo.Title, SchemaURL: c.BaseURL() + "/api/swagger.json"}
	if err := t.Execute(&buf, data); err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(buf.Bytes())
}

// SwaggerUI handles GET /api/swagger/
func (h *DocsHandler) SwaggerUI(c *fiber.Ctx) error {
	return h.render(c, swaggerUI)
}

// Redoc handles GET /api/redoc/
func (h *DocsHandler) Redoc(c *fiber.Ctx) error {
	return h.render(c, redoc)
}
