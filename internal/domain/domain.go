package domain

import (
	"github.com/RodCinelli/gestao-engparente/internal/domain/auth"
	"github.com/RodCinelli/gestao-engparente/internal/domain/employees"
	"github.com/RodCinelli/gestao-engparente/internal/domain/financials"
	"github.com/RodCinelli/gestao-engparente/internal/domain/user"
)

type (
	User      = user.User
	UserToken = auth.UserToken

	Department         = employees.Department
	Construction       = employees.Construction
	ConstructionSector = employees.ConstructionSector
	Employee           = employees.Employee
	EmployeeView       = employees.EmployeeView
	PaymentType        = employees.PaymentType
	PaymentStatus      = employees.PaymentStatus

	Material        = financials.Material
	ExpenseCategory = financials.ExpenseCategory
	Expense         = financials.Expense
	ExpenseView     = financials.ExpenseView
	Transaction     = financials.Transaction
	TransactionView = financials.TransactionView
	Summary         = financials.Summary
)

// Models lists every persisted type in dependency order.
func Models() []interface{} {
	return []interface{}{
		&User{},
		&UserToken{},

		&Department{},
		&Construction{},
		&ConstructionSector{},
		&Employee{},

		&Material{},
		&ExpenseCategory{},
		&Expense{},
		&Transaction{},
	}
}
