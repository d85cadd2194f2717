package docs

import (
	"encoding"
	"encoding/json"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-openapi/spec"
)

var (
	timeType      = reflect.TypeOf(time.Time{})
	marshalerType = reflect.TypeOf((*json.Marshaler)(nil)).Elem()
	textType      = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
)

// schemas turns Go payload types into Swagger definitions keyed by type name.
type schemas struct {
	definitions spec.Definitions
}

func newSchemas() *schemas {
	return &schemas{definitions: spec.Definitions{}}
}

// ref returns a $ref to t's definition, registering it on first use.
func (s *schemas) ref(t reflect.Type) *spec.Schema {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct || isScalarStruct(t) {
		return s.schema(t)
	}
	name := t.Name()
	if _, ok := s.definitions[name]; !ok {
		// Reserve the name first so self references terminate.
		s.definitions[name] = spec.Schema{}
		s.definitions[name] = *s.object(t)
	}
	return spec.RefSchema("#/definitions/" + name)
}

func (s *schemas) schema(t reflect.Type) *spec.Schema {
	nullable := false
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
		nullable = true
	}

	var out *spec.Schema
	switch {
	case isScalarStruct(t):
		out = spec.DateTimeProperty()
	case t.Kind() == reflect.Struct:
		return s.ref(t)
	case t.Kind() == reflect.Slice && t.Elem().Kind() == reflect.Uint8:
		// json.RawMessage and datatypes.JSON
		out = new(spec.Schema).Typed("object", "")
	case t.Kind() == reflect.Slice || t.Kind() == reflect.Array:
		out = spec.ArrayProperty(s.schema(t.Elem()))
	case t.Kind() == reflect.Map:
		out = new(spec.Schema).Typed("object", "")
	case t.Kind() == reflect.Bool:
		out = spec.BoolProperty()
	case t.Kind() >= reflect.Int && t.Kind() <= reflect.Uint64:
		out = spec.Int64Property()
	case t.Kind() == reflect.Float32 || t.Kind() == reflect.Float64:
		out = spec.Float64Property()
	case t.Kind() == reflect.Interface:
		out = new(spec.Schema)
	default:
		out = spec.StringProperty()
	}
	if nullable {
		out.AsNullable()
	}
	return out
}

// isScalarStruct reports structs that marshal to a JSON string, like time.Time.
func isScalarStruct(t reflect.Type) bool {
	if t.Kind() != reflect.Struct {
		return false
	}
	if t == timeType {
		return true
	}
	return t.Implements(marshalerType) && reflect.PointerTo(t).Implements(textType)
}

func (s *schemas) object(t reflect.Type) *spec.Schema {
	obj := new(spec.Schema).Typed("object", "")
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name, skip := jsonName(f)
		if skip {
			continue
		}
		if f.Anonymous && name == "" {
			embedded := s.object(derefType(f.Type))
			for k, v := range embedded.Properties {
				obj.SetProperty(k, v)
			}
			obj.Required = append(obj.Required, embedded.Required...)
			continue
		}
		if name == "" {
			name = f.Name
		}

		prop := s.schema(f.Type)
		rules := validateRules(f)
		if _, ok := rules["required"]; ok {
			obj.Required = append(obj.Required, name)
		}
		if choices, ok := rules["oneof"]; ok && prop.Ref.String() == "" {
			for _, c := range strings.Fields(choices) {
				prop.Enum = append(prop.Enum, c)
			}
		}
		if max, ok := rules["max"]; ok && prop.Type.Contains("string") {
			if n, err := strconv.ParseInt(max, 10, 64); err == nil {
				prop.WithMaxLength(n)
			}
		}
		obj.SetProperty(name, *prop)
	}
	return obj
}

func derefType(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}

// jsonName returns the wire name, "" for an untagged field.
func jsonName(f reflect.StructField) (string, bool) {
	tag := f.Tag.Get("json")
	if tag == "-" {
		return "", true
	}
	name, _, _ := strings.Cut(tag, ",")
	return name, false
}

// validateRules parses `validate:"required,max=100,oneof=a b"`.
func validateRules(f reflect.StructField) map[string]string {
	rules := map[string]string{}
	for _, rule := range strings.Split(f.Tag.Get("validate"), ",") {
		if rule == "" {
			continue
		}
		key, value, _ := strings.Cut(rule, "=")
		rules[key] = value
	}
	return rules
}
