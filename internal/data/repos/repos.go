package repos

import (
	"github.com/RodCinelli/gestao-engparente/internal/data/repos/auth"
	"github.com/RodCinelli/gestao-engparente/internal/data/repos/employees"
	"github.com/RodCinelli/gestao-engparente/internal/data/repos/financials"
	"github.com/RodCinelli/gestao-engparente/internal/data/repos/user"
	"github.com/RodCinelli/gestao-engparente/internal/platform/logger"
	"gorm.io/gorm"
)

type UserRepo = user.UserRepo
type UserTokenRepo = auth.UserTokenRepo

type DepartmentRepo = employees.DepartmentRepo
type ConstructionRepo = employees.ConstructionRepo
type ConstructionSectorRepo = employees.ConstructionSectorRepo
type EmployeeRepo = employees.EmployeeRepo
type EmployeeFilter = employees.EmployeeFilter

type MaterialRepo = financials.MaterialRepo
type ExpenseCategoryRepo = financials.ExpenseCategoryRepo
type ExpenseRepo = financials.ExpenseRepo
type ExpenseFilter = financials.ExpenseFilter
type TransactionRepo = financials.TransactionRepo
type TransactionFilter = financials.TransactionFilter

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo { return user.NewUserRepo(db, baseLog) }
func NewUserTokenRepo(db *gorm.DB, baseLog *logger.Logger) UserTokenRepo {
	return auth.NewUserTokenRepo(db, baseLog)
}

func NewDepartmentRepo(db *gorm.DB, baseLog *logger.Logger) DepartmentRepo {
	return employees.NewDepartmentRepo(db, baseLog)
}
func NewConstructionRepo(db *gorm.DB, baseLog *logger.Logger) ConstructionRepo {
	return employees.NewConstructionRepo(db, baseLog)
}
func NewConstructionSectorRepo(db *gorm.DB, baseLog *logger.Logger) ConstructionSectorRepo {
	return employees.NewConstructionSectorRepo(db, baseLog)
}
func NewEmployeeRepo(db *gorm.DB, baseLog *logger.Logger) EmployeeRepo {
	return employees.NewEmployeeRepo(db, baseLog)
}

func NewMaterialRepo(db *gorm.DB, baseLog *logger.Logger) MaterialRepo {
	return financials.NewMaterialRepo(db, baseLog)
}
func NewExpenseCategoryRepo(db *gorm.DB, baseLog *logger.Logger) ExpenseCategoryRepo {
	return financials.NewExpenseCategoryRepo(db, baseLog)
}
func NewExpenseRepo(db *gorm.DB, baseLog *logger.Logger) ExpenseRepo {
	return financials.NewExpenseRepo(db, baseLog)
}
func NewTransactionRepo(db *gorm.DB, baseLog *logger.Logger) TransactionRepo {
	return financials.NewTransactionRepo(db, baseLog)
}
