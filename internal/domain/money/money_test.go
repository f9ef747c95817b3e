package money

import (
	"encoding/json"
	"testing"
)

func TestSumIsExact(t *testing.T) {
	total := Sum(MustParse("0.10"), MustParse("0.20"), MustParse("1000.00"), MustParse("1500.50"))
	if got := total.String(); got != "2500.80" {
		t.Fatalf("sum: want=2500.80 got=%s", got)
	}
	if got := Sum().String(); got != "0.00" {
		t.Fatalf("empty sum: want=0.00 got=%s", got)
	}
}

func TestMoneyJSON(t *testing.T) {
	b, err := json.Marshal(struct {
		Amount Money `json:"amount"`
	}{Amount: MustParse("2500")})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"amount":"2500.00"}` {
		t.Fatalf("unexpected json: %s", b)
	}

	tests := []struct {
		in   string
		want string
	}{
		{`"300.00"`, "300.00"},
		{`300`, "300.00"},
		{`12.345`, "12.35"},
		{`null`, "0.00"},
	}
	for _, tt := range tests {
		var m Money
		if err := json.Unmarshal([]byte(tt.in), &m); err != nil {
			t.Fatalf("unmarshal %s: %v", tt.in, err)
		}
		if m.String() != tt.want {
			t.Fatalf("unmarshal %s: want=%s got=%s", tt.in, tt.want, m.String())
		}
	}

	var bad Money
	if err := json.Unmarshal([]byte(`"abc"`), &bad); err == nil {
		t.Fatalf("expected error for malformed amount")
	}
}

func TestMoneyScan(t *testing.T) {
	var m Money
	if err := m.Scan("1000.5"); err != nil {
		t.Fatalf("scan string: %v", err)
	}
	if m.String() != "1000.50" {
		t.Fatalf("scan string: got=%s", m.String())
	}
	if err := m.Scan([]byte("7")); err != nil {
		t.Fatalf("scan bytes: %v", err)
	}
	if m.String() != "7.00" {
		t.Fatalf("scan bytes: got=%s", m.String())
	}
}
