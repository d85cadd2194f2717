package admin

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/facet-unt/departamentos-api/utils/response"
	"github.com/facet-unt/departamentos-api/utils/validation"
	"github.com/facet-unt/departamentos-api/utils/viewset"
)

// DefaultListPerPage applies to registrations that set no ListPerPage
const DefaultListPerPage = 100

// Column is one list_display entry.
type Column[M any] struct {
	Name  string
	Value func(m *M) any
}

// ModelAdmin declares how a model is listed in the console.
type ModelAdmin[M any] struct {
	VerboseName  string
	ListDisplay  []Column[M]
	ListFilter   []string
	SearchFields []string
	ListPerPage  int
	Ordering     []string
	Preload      []string
	Relations    map[string]viewset.Relation
}

// changelist is one page of rows projected onto list_display.
type changelist struct {
	columns []string
	rows    []map[string]any
	page    viewset.Page
}

type registration struct {
	slug         string
	verboseName  string
	listDisplay  []string
	listFilter   []string
	searchFields []string
	perPage      int
	list         func(c *fiber.Ctx) (*changelist, error)
}

// Site holds the model registrations served under /admin/
type Site struct {
	db            *gorm.DB
	registrations []*registration
	bySlug        map[string]*registration
}

// NewSite creates an empty admin site
func NewSite(db *gorm.DB) *Site {
	return &Site{db: db, bySlug: map[string]*registration{}}
}

// Register adds M to the site under slug. A slug registered twice keeps
// its first registration, as Django raises AlreadyRegistered.
func Register[M any](s *Site, slug string, a ModelAdmin[M]) {
	slug = strings.Trim(slug, "/")
	if _, ok := s.bySlug[slug]; ok {
		return
	}
	if a.ListPerPage <= 0 {
		a.ListPerPage = DefaultListPerPage
	}
	if len(a.ListDisplay) == 0 {
		a.ListDisplay = []Column[M]{{Name: "__str__", Value: func(m *M) any { return m }}}
	}

	columns := make([]string, len(a.ListDisplay))
	for i, col := range a.ListDisplay {
		columns[i] = col.Name
	}

	project := func(m *M) map[string]any {
		row := make(map[string]any, len(a.ListDisplay))
		for _, col := range a.ListDisplay {
			row[col.Name] = col.Value(m)
		}
		return row
	}

	vs := viewset.New(s.db, viewset.Config[M, viewset.ReadOnlyInput[M]]{
		Name:         a.VerboseName,
		ReadOnly:     true,
		Permission:   viewset.IsStaff,
		Preload:      a.Preload,
		Ordering:     a.Ordering,
		Filters:      a.ListFilter,
		Relations:    a.Relations,
		SearchFields: a.SearchFields,
		PageSize:     a.ListPerPage,
	})

	reg := &registration{
		slug:         slug,
		verboseName:  a.VerboseName,
		listDisplay:  columns,
		listFilter:   a.ListFilter,
		searchFields: a.SearchFields,
		perPage:      a.ListPerPage,
		list: func(c *fiber.Ctx) (*changelist, error) {
			rows, page, err := vs.Paginate(c)
			if err != nil {
				return nil, err
			}
			cl := &changelist{columns: columns, page: page, rows: make([]map[string]any, 0, len(rows))}
			for i := range rows {
				cl.rows = append(cl.rows, project(&rows[i]))
			}
			return cl, nil
		},
	}
	s.registrations = append(s.registrations, reg)
	s.bySlug[slug] = reg
}

// ModelInfo is one entry of the admin index.
type ModelInfo struct {
	Name         string   `json:"name"`
	VerboseName  string   `json:"verbose_name"`
	URL          string   `json:"url"`
	ListDisplay  []string `json:"list_display"`
	ListFilter   []string `json:"list_filter"`
	SearchFields []string `json:"search_fields"`
	ListPerPage  int      `json:"list_per_page"`
}

// Models lists the registrations in registration order.
func (s *Site) Models(baseURL string) []ModelInfo {
	out := make([]ModelInfo, 0, len(s.registrations))
	for _, r := range s.registrations {
		out = append(out, ModelInfo{
			Name:         r.slug,
			VerboseName:  r.verboseName,
			URL:          baseURL + r.slug + "/",
			ListDisplay:  r.listDisplay,
			ListFilter:   nonNil(r.listFilter),
			SearchFields: nonNil(r.searchFields),
			ListPerPage:  r.perPage,
		})
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// Mount serves the index at / and one changelist per model, each behind
// guards.
func (s *Site) Mount(g fiber.Router, guards ...fiber.Handler) {
	g.Get("/", append(append([]fiber.Handler{}, guards...), s.Index)...)
	g.Get("/:model", append(append([]fiber.Handler{}, guards...), s.Changelist)...)
}

// Index handles GET /admin/
func (s *Site) Index(c *fiber.Ctx) error {
	base := c.BaseURL() + strings.TrimSuffix(c.Path(), "/") + "/"
	models := s.Models(base)
	if wantsHTML(c) {
		return renderIndex(c, models)
	}
	return response.Success(c, fiber.Map{"models": models})
}

// Changelist handles GET /admin/:model/
func (s *Site) Changelist(c *fiber.Ctx) error {
	reg, ok := s.bySlug[c.Params("model")]
	if !ok {
		return response.NotFound(c, "")
	}
	if !viewset.IsStaff(c) {
		return response.Forbidden(c, "")
	}

	cl, err := reg.list(c)
	var errs validation.Errors
	switch {
	case errors.As(err, &errs):
		return response.ValidationError(c, errs)
	case errors.Is(err, viewset.ErrInvalidPage):
		return response.NotFound(c, "Invalid page.")
	case err != nil:
		return err
	}

	if wantsHTML(c) {
		return renderChangelist(c, reg, cl)
	}

	results := make([]any, len(cl.rows))
	for i, row := range cl.rows {
		results[i] = row
	}
	return response.Paginated(c, cl.page.Body(c, results))
}

func wantsHTML(c *fiber.Ctx) bool {
	return c.Query("format") == "html"
}
