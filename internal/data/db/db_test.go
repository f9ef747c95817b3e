package db

import (
	"fmt"
	"testing"
	"time"

	"github.com/RodCinelli/gestao-engparente/internal/platform/logger"
	"gorm.io/gorm"
)

func TestAutoMigrateAllOnSQLite(t *testing.T) {
	dsn := fmt.Sprintf("file:migrate_%d?mode=memory&cache=shared&_pragma=foreign_keys(1)", time.Now().UnixNano())
	gdb, err := gorm.Open(SQLiteDialector(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = Close(gdb) })

	if err := AutoMigrateAll(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	// second run must be a no-op
	if err := AutoMigrateAll(gdb); err != nil {
		t.Fatalf("re-migrate: %v", err)
	}
	for _, table := range []string{"employee", "construction", "construction_sector", "department", "material", "expense", "financial_transaction", "app_user", "user_token"} {
		if !gdb.Migrator().HasTable(table) {
			t.Fatalf("missing table %s", table)
		}
	}
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	if _, err := Open(Config{Driver: "oracle"}, logger.Nop()); err == nil {
		t.Fatalf("expected error for unknown driver")
	}
}
