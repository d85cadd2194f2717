package serializers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/facet-unt/departamentos-api/utils/validation"
)

// DesignationLayout renders the start and end dates of designations.
const DesignationLayout = "02/01/2006 15:04:05"

var errDatetimeFormat = errors.New("Datetime has wrong format. Use one of these formats instead: YYYY-MM-DDThh:mm[:ss[.uuuuuu]][+HH:MM|-HH:MM|Z], DD/MM/YYYY hh:mm:ss.")

var inputLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	DesignationLayout,
	"02/01/2006",
	"2006-01-02",
}

// ParseTime accepts the date formats the frontend forms send.
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range inputLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errDatetimeFormat
}

// DateTime is a designation date, rendered as DD/MM/YYYY HH:mm:ss.
type DateTime struct {
	time.Time
}

// NewDateTime wraps t, nil stays nil.
func NewDateTime(t *time.Time) *DateTime {
	if t == nil {
		return nil
	}
	return &DateTime{Time: *t}
}

// Ptr returns the wrapped time, nil for a nil or empty DateTime.
func (d *DateTime) Ptr() *time.Time {
	if d == nil || d.IsZero() {
		return nil
	}
	t := d.Time
	return &t
}

func (d DateTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format(DesignationLayout))
}

func (d *DateTime) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	return d.UnmarshalText([]byte(s))
}

// UnmarshalText lets form decoders fill a DateTime. An empty string clears it.
func (d *DateTime) UnmarshalText(b []byte) error {
	if len(bytes.TrimSpace(b)) == 0 {
		d.Time = time.Time{}
		return nil
	}
	t, err := ParseTime(string(b))
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// Timestamp is a date rendered as RFC 3339 that accepts the same inputs as DateTime.
type Timestamp struct {
	time.Time
}

// NewTimestamp wraps t, nil stays nil.
func NewTimestamp(t *time.Time) *Timestamp {
	if t == nil {
		return nil
	}
	return &Timestamp{Time: *t}
}

// Ptr returns the wrapped time, nil for a nil or empty Timestamp.
func (ts *Timestamp) Ptr() *time.Time {
	if ts == nil || ts.IsZero() {
		return nil
	}
	t := ts.Time
	return &t
}

func (ts Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(ts.Format(time.RFC3339))
}

func (ts *Timestamp) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	return ts.UnmarshalText([]byte(s))
}

func (ts *Timestamp) UnmarshalText(b []byte) error {
	if len(bytes.TrimSpace(b)) == 0 {
		ts.Time = time.Time{}
		return nil
	}
	t, err := ParseTime(string(b))
	if err != nil {
		return err
	}
	ts.Time = t
	return nil
}

// PK is a primary key reference that accepts 5 or "5".
type PK uint

func (p *PK) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if string(b) == "null" {
		*p = 0
		return nil
	}
	s := strings.Trim(string(b), `"`)
	if s == "" {
		*p = 0
		return nil
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return fmt.Errorf("Incorrect type. Expected pk value, received %s.", s)
	}
	*p = PK(n)
	return nil
}

// Ptr maps 0 to nil for nullable foreign keys.
func (p PK) Ptr() *uint {
	if p == 0 {
		return nil
	}
	id := uint(p)
	return &id
}

// PKOf turns a nullable foreign key into a PK.
func PKOf(id *uint) PK {
	if id == nil {
		return 0
	}
	return PK(*id)
}

// checkPK adds the REST framework "does not exist" message when table has
// no row with id. Zero ids are left to the required tag.
func checkPK(db *gorm.DB, errs validation.Errors, field string, model interface{}, id PK) {
	if id == 0 {
		return
	}
	var count int64
	if err := db.Model(model).Where("id = ?", uint(id)).Count(&count).Error; err != nil || count == 0 {
		errs.Add(field, fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", id))
	}
}

// checkUnique reports field when another row already holds value.
func checkUnique(db *gorm.DB, errs validation.Errors, field, column string, model interface{}, value interface{}, id uint, label string) {
	var count int64
	q := db.Model(model).Where(column+" = ?", value)
	if id != 0 {
		q = q.Where("id <> ?", id)
	}
	if err := q.Count(&count).Error; err == nil && count > 0 {
		errs.Add(field, fmt.Sprintf("%s with this %s already exists.", label, field))
	}
}
