// Package dates holds the calendar date used by every dated column. Values
// are stored as midnight UTC and travel over JSON as "YYYY-MM-DD".
package dates

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"
)

const Layout = "2006-01-02"

type Date datatypes.Date

// Of keeps the calendar day of t as seen in t's own location.
func Of(t time.Time) Date {
	y, m, d := t.Date()
	return Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

// Today is the current UTC calendar day.
func Today() Date { return Of(time.Now().UTC()) }

// Parse reads YYYY-MM-DD, or the date part of an RFC 3339 timestamp.
func Parse(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(Layout, s); err == nil {
		return Of(t), nil
	}
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q, expected %s", s, Layout)
	}
	return Of(ts), nil
}

func MustParse(s string) Date {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Date) Time() time.Time      { return time.Time(d) }
func (d Date) String() string       { return time.Time(d).Format(Layout) }
func (d Date) Before(o Date) bool   { return time.Time(d).Before(time.Time(o)) }
func (d Date) Equal(o Date) bool    { return time.Time(d).Equal(time.Time(o)) }
func (d Date) GormDataType() string { return datatypes.Date(d).GormDataType() }

func (d *Date) Scan(value any) error {
	var raw datatypes.Date
	if err := raw.Scan(value); err != nil {
		return err
	}
	*d = Of(time.Time(raw))
	return nil
}

func (d Date) Value() (driver.Value, error) {
	return datatypes.Date(Of(time.Time(d))).Value()
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	raw := bytes.TrimSpace(b)
	if string(raw) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return fmt.Errorf("date must be a string like %s", Layout)
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
