package logger

import "testing"

func TestSanitizeKVsRedactsSensitiveKeys(t *testing.T) {
	redactOnce.Do(func() { redactionEnabled = true })

	got := sanitizeKVs([]interface{}{
		"access_token", "abc",
		"cpf", "000.000.000-00",
		"employee_id", 7,
		"header", "eyJhbGciOiJIUzI1.eyJzdWIiOiIxMjM0NTY3.sig",
	})
	want := []interface{}{
		"access_token", "[REDACTED]",
		"cpf", "[REDACTED]",
		"employee_id", 7,
		"header", "[REDACTED]",
	}
	if len(got) != len(want) {
		t.Fatalf("len: want=%d got=%d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("kv[%d]: want=%v got=%v", i, want[i], got[i])
		}
	}
}

func TestSanitizeKVsKeepsDanglingKey(t *testing.T) {
	redactOnce.Do(func() { redactionEnabled = true })

	got := sanitizeKVs([]interface{}{"group", "employees", "orphan"})
	if len(got) != 3 || got[2] != "orphan" {
		t.Fatalf("unexpected kvs: %v", got)
	}
}
