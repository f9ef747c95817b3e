package db

import (
	"fmt"

	"github.com/RodCinelli/gestao-engparente/internal/domain"
	"gorm.io/gorm"
)

func AutoMigrateAll(db *gorm.DB) error {
	if err := db.AutoMigrate(domain.Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return EnsureIndexes(db)
}

// EnsureIndexes adds the composite indexes the dashboard and list filters
// lean on. Plain CREATE INDEX IF NOT EXISTS runs on both drivers.
func EnsureIndexes(db *gorm.DB) error {
	stmts := []struct {
		name string
		sql  string
	}{
		{"idx_employee_construction_status", `CREATE INDEX IF NOT EXISTS idx_employee_construction_status ON employee (construction_id, salary_payment_status)`},
		{"idx_employee_department_name", `CREATE INDEX IF NOT EXISTS idx_employee_department_name ON employee (department_id, name)`},
		{"idx_construction_active_name", `CREATE INDEX IF NOT EXISTS idx_construction_active_name ON construction (is_active, name)`},
		{"idx_expense_type_date", `CREATE INDEX IF NOT EXISTS idx_expense_type_date ON expense (expense_type, expense_date)`},
		{"idx_financial_transaction_type_date", `CREATE INDEX IF NOT EXISTS idx_financial_transaction_type_date ON financial_transaction (transaction_type, transaction_date)`},
	}
	for _, s := range stmts {
		if err := db.Exec(s.sql).Error; err != nil {
			return fmt.Errorf("create %s: %w", s.name, err)
		}
	}
	return nil
}
