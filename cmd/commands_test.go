package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const seedFile = `
departments:
  - name: Obras
  - name: Administrativo
constructions:
  - name: Residencial Sol
    start_date: 2024-02-01
    sectors:
      - name: Fundação
categories:
  - name: Materiais
`

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func useSQLite(t *testing.T, path string) {
	t.Helper()
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", path)
	t.Setenv("LOG_MODE", "test")
	t.Setenv("REDIS_ADDR", "")
}

func TestMigrateInMemory(t *testing.T) {
	useSQLite(t, ":memory:")
	if _, err := runCLI(t, "migrate"); err != nil {
		t.Fatalf("migrate: %v", err)
	}
}

func TestMigrateThenSeed(t *testing.T) {
	dir := t.TempDir()
	useSQLite(t, filepath.Join(dir, "engparente.db"))

	if _, err := runCLI(t, "migrate"); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	path := filepath.Join(dir, "seed.yaml")
	if err := os.WriteFile(path, []byte(seedFile), 0o600); err != nil {
		t.Fatalf("write seed: %v", err)
	}
	out, err := runCLI(t, "seed", "--file", path)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if !strings.Contains(out, "Created 2 departments, 1 constructions, 1 sectors, 1 categories") {
		t.Fatalf("first seed output: %q", out)
	}
	out, err = runCLI(t, "seed", "-f", path)
	if err != nil {
		t.Fatalf("reseed: %v", err)
	}
	if !strings.Contains(out, "Created 0 departments, 0 constructions, 0 sectors, 0 categories") {
		t.Fatalf("second seed output: %q", out)
	}

	if _, err := runCLI(t, "seed"); err == nil {
		t.Fatalf("seed without --file should fail")
	}
	if _, err := runCLI(t, "seed", "--file", filepath.Join(dir, "missing.yaml")); err == nil {
		t.Fatalf("seed with a missing file should fail")
	}
}

func TestCreateDefaultUserCommand(t *testing.T) {
	useSQLite(t, filepath.Join(t.TempDir(), "engparente.db"))

	out, err := runCLI(t, "create-default-user")
	if err != nil || !strings.Contains(out, "created") {
		t.Fatalf("first run: %q err=%v", out, err)
	}
	out, err = runCLI(t, "create-default-user")
	if err != nil || !strings.Contains(out, "already exists") {
		t.Fatalf("second run: %q err=%v", out, err)
	}
}
