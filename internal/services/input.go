package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/RodCinelli/gestao-engparente/internal/domain/dates"
)

// Ref points at a related row either by id (a JSON number) or by exact
// name (a JSON string). Set records whether the field was present in the
// payload at all; an explicit null is present but empty.
type Ref struct {
	Set  bool
	ID   *uint
	Name string
}

func RefID(id uint) Ref { return Ref{Set: true, ID: &id} }

func RefName(name string) Ref { return Ref{Set: true, Name: strings.TrimSpace(name)} }

func (r Ref) Empty() bool { return r.ID == nil && r.Name == "" }

func (r *Ref) UnmarshalJSON(b []byte) error {
	*r = Ref{Set: true}
	raw := bytes.TrimSpace(b)
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return err
		}
		r.Name = strings.TrimSpace(s)
		return nil
	}
	var id uint64
	if err := json.Unmarshal(raw, &id); err != nil || id == 0 {
		return fmt.Errorf("reference must be a positive id or a name")
	}
	v := uint(id)
	r.ID = &v
	return nil
}

func (r Ref) MarshalJSON() ([]byte, error) {
	switch {
	case r.ID != nil:
		return json.Marshal(*r.ID)
	case r.Name != "":
		return json.Marshal(r.Name)
	default:
		return []byte("null"), nil
	}
}

// Date is an optional calendar date in a payload. It accepts "2024-03-01",
// an RFC 3339 timestamp, an empty string or null.
type Date struct {
	Set   bool
	Value *dates.Date
}

func (d *Date) UnmarshalJSON(b []byte) error {
	*d = Date{Set: true}
	raw := bytes.TrimSpace(b)
	if string(raw) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return fmt.Errorf("date must be a string like %s", dates.Layout)
	}
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parsed, err := dates.Parse(s)
	if err != nil {
		return err
	}
	d.Value = &parsed
	return nil
}

func trimmed(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
