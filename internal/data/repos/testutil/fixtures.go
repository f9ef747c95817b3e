package testutil

import (
	"context"
	"testing"

	types "github.com/RodCinelli/gestao-engparente/internal/domain"
	"github.com/RodCinelli/gestao-engparente/internal/domain/dates"
	"github.com/RodCinelli/gestao-engparente/internal/domain/money"
	"gorm.io/gorm"
)

func SeedDepartment(tb testing.TB, ctx context.Context, tx *gorm.DB, name string) *types.Department {
	tb.Helper()
	d := &types.Department{Name: name}
	if err := tx.WithContext(ctx).Create(d).Error; err != nil {
		tb.Fatalf("seed department: %v", err)
	}
	return d
}

func SeedConstruction(tb testing.TB, ctx context.Context, tx *gorm.DB, name string, active bool) *types.Construction {
	tb.Helper()
	c := &types.Construction{Name: name, StartDate: dates.Today(), IsActive: true}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed construction: %v", err)
	}
	if !active {
		if err := tx.WithContext(ctx).Model(c).Update("is_active", false).Error; err != nil {
			tb.Fatalf("deactivate construction: %v", err)
		}
		c.IsActive = false
	}
	return c
}

func SeedSector(tb testing.TB, ctx context.Context, tx *gorm.DB, constructionID uint, name string) *types.ConstructionSector {
	tb.Helper()
	s := &types.ConstructionSector{Name: name, ConstructionID: constructionID}
	if err := tx.WithContext(ctx).Create(s).Error; err != nil {
		tb.Fatalf("seed sector: %v", err)
	}
	return s
}

// SeedEmployee creates an employee owed salary in departmentID, with
// nothing paid yet.
func SeedEmployee(tb testing.TB, ctx context.Context, tx *gorm.DB, departmentID uint, name, salary string) *types.Employee {
	tb.Helper()
	e := &types.Employee{
		Name:         name,
		DepartmentID: departmentID,
		Salary:       money.MustParse(salary),
		PaymentDay:   5,
	}
	e.ResetPayments()
	if err := tx.WithContext(ctx).Omit("Department", "Construction", "ConstructionSector").Create(e).Error; err != nil {
		tb.Fatalf("seed employee: %v", err)
	}
	return e
}

func SeedMaterial(tb testing.TB, ctx context.Context, tx *gorm.DB, name, unitPrice string) *types.Material {
	tb.Helper()
	m := &types.Material{Name: name, UnitPrice: money.MustParse(unitPrice)}
	if err := tx.WithContext(ctx).Create(m).Error; err != nil {
		tb.Fatalf("seed material: %v", err)
	}
	return m
}

func SeedCategory(tb testing.TB, ctx context.Context, tx *gorm.DB, name string) *types.ExpenseCategory {
	tb.Helper()
	c := &types.ExpenseCategory{Name: name}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed category: %v", err)
	}
	return c
}

func PtrUint(v uint) *uint { return &v }

func PtrString(v string) *string { return &v }
