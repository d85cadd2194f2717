package serializers

import (
	"time"

	"github.com/facet-unt/departamentos-api/utils/validation"
)

// checkPeriod rejects a designation that ends before it starts.
func checkPeriod(errs validation.Errors, field string, start, end *time.Time) {
	if start != nil && end != nil && end.Before(*start) {
		errs.Add(field, "La fecha de fin no puede ser anterior a la fecha de inicio.")
	}
}

// pickDate prefers the alias when the request carried one.
func pickDate(alias, canonical *DateTime) *time.Time {
	if alias != nil {
		return alias.Ptr()
	}
	return canonical.Ptr()
}

func sameTime(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
