package dates

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDateJSONIsDateOnly(t *testing.T) {
	d := MustParse("2024-03-01")
	raw, err := json.Marshal(struct {
		Start Date  `json:"start_date"`
		End   *Date `json:"end_date"`
	}{Start: d})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(raw) != `{"start_date":"2024-03-01","end_date":null}` {
		t.Fatalf("json: %s", raw)
	}

	var back struct {
		Start Date `json:"start_date"`
	}
	if err := json.Unmarshal([]byte(`{"start_date":"2024-03-01"}`), &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Start.Equal(d) {
		t.Fatalf("round trip: %s", back.Start)
	}
	if err := json.Unmarshal([]byte(`{"start_date":"01/03/2024"}`), &back); err == nil {
		t.Fatalf("expected error for non-ISO date")
	}
}

func TestParseKeepsCalendarDay(t *testing.T) {
	cases := map[string]string{
		"2024-03-01":                "2024-03-01",
		" 2024-03-01 ":              "2024-03-01",
		"2024-03-01T23:30:00-03:00": "2024-03-01",
		"2024-03-01T00:15:00+09:00": "2024-03-01",
	}
	for in, want := range cases {
		d, err := Parse(in)
		if err != nil {
			t.Fatalf("%q: %v", in, err)
		}
		if d.String() != want || d.Time().Location() != time.UTC {
			t.Fatalf("%q: got %s in %s", in, d, d.Time().Location())
		}
	}
}

func TestScanAndValueUseUTCMidnight(t *testing.T) {
	sp := time.FixedZone("BRT", -3*3600)
	var d Date
	if err := d.Scan(time.Date(2024, 5, 2, 0, 0, 0, 0, sp)); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if d.String() != "2024-05-02" {
		t.Fatalf("scanned: %s", d)
	}
	v, err := d.Value()
	if err != nil {
		t.Fatalf("value: %v", err)
	}
	ts, ok := v.(time.Time)
	if !ok || !ts.Equal(time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("value: %#v", v)
	}
	if Today().Time().Location() != time.UTC {
		t.Fatalf("today not in UTC")
	}
}
