package viewset

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/facet-unt/departamentos-api/model"
	"github.com/facet-unt/departamentos-api/utils/validation"
)

// Relation describes a foreign key that filters and search may traverse.
type Relation struct {
	Column string // FK column on this table, e.g. "persona_id"
	Table  string // referenced table, e.g. "personas"
}

// Filter lookups
const (
	LookupExact     = "exact"
	LookupIContains = "icontains"
	LookupDate      = "date"
	LookupGTE       = "gte"
	LookupLTE       = "lte"
)

var (
	errInvalidChoice = errors.New("Select a valid choice. That choice is not one of the available choices.")
	errInvalidDate   = errors.New("Enter a valid date.")
)

var lookups = map[string]bool{
	LookupExact:     true,
	LookupIContains: true,
	LookupDate:      true,
	LookupGTE:       true,
	LookupLTE:       true,
}

// filterSpec is a parsed filter param such as persona__apellido__icontains.
type filterSpec struct {
	param    string
	relation string // "" for a column of this table
	field    string
	lookup   string
}

func parseFilter(param string) filterSpec {
	parts := strings.Split(param, "__")
	spec := filterSpec{param: param, lookup: LookupExact}
	if n := len(parts); n > 1 && lookups[parts[n-1]] {
		spec.lookup = parts[n-1]
		parts = parts[:n-1]
	}
	if len(parts) > 1 {
		spec.relation = parts[0]
		parts = parts[1:]
	}
	spec.field = strings.Join(parts, "__")
	return spec
}

// filterScope turns the declared query params, search, and the
// active-by-default rule into a single gorm scope.
func (v *ModelViewSet[M, T, PT]) filterScope(c *fiber.Ctx) (func(*gorm.DB) *gorm.DB, validation.Errors) {
	errs := validation.Errors{}
	var conds []clause.Expression

	for _, param := range v.cfg.Filters {
		raw := strings.TrimSpace(c.Query(param))
		if raw == "" {
			continue
		}
		cond, err := v.condition(parseFilter(param), raw)
		if err != nil {
			errs.Add(param, err.Error())
			continue
		}
		conds = append(conds, cond)
	}

	if v.cfg.ActiveByDefault && c.Query("estado") == "" && !strings.EqualFold(c.Query("show_all"), "true") {
		conds = append(conds, clause.Eq{Column: clause.Column{Name: "estado"}, Value: string(model.EstadoActivo)})
	}

	if term := strings.TrimSpace(c.Query("search")); term != "" && len(v.cfg.SearchFields) > 0 {
		for _, word := range strings.Fields(term) {
			var alts []clause.Expression
			for _, field := range v.cfg.SearchFields {
				cond, err := v.condition(parseFilter(field+"__"+LookupIContains), word)
				if err != nil {
					continue
				}
				alts = append(alts, cond)
			}
			if len(alts) > 0 {
				conds = append(conds, clause.Or(alts...))
			}
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return func(db *gorm.DB) *gorm.DB {
		for _, cond := range conds {
			db = db.Where(cond)
		}
		return db
	}, nil
}

func (v *ModelViewSet[M, T, PT]) condition(spec filterSpec, raw string) (clause.Expression, error) {
	if spec.relation == "" {
		if rel, ok := v.cfg.Relations[spec.field]; ok {
			if spec.lookup != LookupExact {
				return nil, fmt.Errorf("unsupported lookup %q", spec.lookup)
			}
			id, err := strconv.ParseUint(raw, 10, 64)
			if err != nil {
				return nil, errInvalidChoice
			}
			return clause.Eq{Column: clause.Column{Name: rel.Column}, Value: id}, nil
		}
		return lookupExpr(spec.field, spec.lookup, raw)
	}

	rel, ok := v.cfg.Relations[spec.relation]
	if !ok {
		return nil, fmt.Errorf("unknown relation %q", spec.relation)
	}
	inner, err := lookupExpr(spec.field, spec.lookup, raw)
	if err != nil {
		return nil, err
	}
	return clause.Expr{
		SQL:  "? IN (SELECT id FROM ? WHERE ?)",
		Vars: []interface{}{clause.Column{Name: rel.Column}, clause.Table{Name: rel.Table}, inner},
	}, nil
}

func lookupExpr(column, lookup, raw string) (clause.Expression, error) {
	col := clause.Column{Name: column}
	switch lookup {
	case LookupIContains:
		return clause.Expr{SQL: "LOWER(?) LIKE ?", Vars: []interface{}{col, "%" + strings.ToLower(raw) + "%"}}, nil
	case LookupDate:
		day, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return nil, errInvalidDate
		}
		return clause.Expr{SQL: "DATE(?) = ?", Vars: []interface{}{col, day.Format("2006-01-02")}}, nil
	case LookupGTE:
		return clause.Gte{Column: col, Value: rangeValue(raw)}, nil
	case LookupLTE:
		return clause.Lte{Column: col, Value: rangeValue(raw)}, nil
	}
	return clause.Eq{Column: col, Value: exactValue(raw)}, nil
}

// exactValue maps the boolean spellings of query strings to bools.
func exactValue(raw string) interface{} {
	switch strings.ToLower(raw) {
	case "true":
		return true
	case "false":
		return false
	}
	return raw
}

// rangeValue compares numbers as numbers and dates as dates.
func rangeValue(raw string) interface{} {
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return n
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return raw
}

// orderScope applies ?ordering= over the declared fields, falling back to
// the default ordering.
func (v *ModelViewSet[M, T, PT]) orderScope(c *fiber.Ctx) func(*gorm.DB) *gorm.DB {
	fields := v.cfg.Ordering
	if raw := c.Query("ordering"); raw != "" {
		var requested []string
		for _, f := range strings.Split(raw, ",") {
			f = strings.TrimSpace(f)
			if v.orderable(strings.TrimPrefix(f, "-")) {
				requested = append(requested, f)
			}
		}
		if len(requested) > 0 {
			fields = requested
		}
	}

	return func(db *gorm.DB) *gorm.DB {
		cols := make([]clause.OrderByColumn, 0, len(fields)+1)
		for _, f := range fields {
			cols = append(cols, clause.OrderByColumn{
				Column: clause.Column{Name: strings.TrimPrefix(f, "-")},
				Desc:   strings.HasPrefix(f, "-"),
			})
		}
		// Stable pages need a unique tiebreaker
		cols = append(cols, clause.OrderByColumn{Column: clause.Column{Name: "id"}})
		return db.Order(clause.OrderBy{Columns: cols})
	}
}

func (v *ModelViewSet[M, T, PT]) orderable(field string) bool {
	if field == "id" {
		return true
	}
	for _, f := range v.cfg.OrderingFields {
		if f == field {
			return true
		}
	}
	return false
}
