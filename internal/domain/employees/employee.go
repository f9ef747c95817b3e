package employees

import (
	"time"

	"github.com/RodCinelli/gestao-engparente/internal/domain/dates"
	"github.com/RodCinelli/gestao-engparente/internal/domain/money"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPartial PaymentStatus = "partial"
	PaymentPaid    PaymentStatus = "paid"
)

// PaymentType names one of the three pay categories an employee is owed.
type PaymentType string

const (
	PaymentSalary             PaymentType = "salary"
	PaymentMealAllowance      PaymentType = "meal_allowance"
	PaymentTransportAllowance PaymentType = "transport_allowance"
)

var PaymentTypes = []PaymentType{PaymentSalary, PaymentMealAllowance, PaymentTransportAllowance}

func (p PaymentType) Valid() bool {
	switch p {
	case PaymentSalary, PaymentMealAllowance, PaymentTransportAllowance:
		return true
	}
	return false
}

type Employee struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"column:name;size:100;not null;index" json:"name"`
	CPF  string `gorm:"column:cpf;size:14" json:"cpf"`

	Phone string `gorm:"column:phone;size:20" json:"phone"`
	Email string `gorm:"column:email;size:254" json:"email"`

	DepartmentID uint        `gorm:"column:department_id;not null;index" json:"department"`
	Department   *Department `gorm:"foreignKey:DepartmentID;constraint:OnDelete:RESTRICT" json:"-"`
	Position     string      `gorm:"column:position;size:100" json:"position"`

	ConstructionID       *uint               `gorm:"column:construction_id;index" json:"construction"`
	Construction         *Construction       `gorm:"foreignKey:ConstructionID;constraint:OnDelete:SET NULL" json:"-"`
	ConstructionSectorID *uint               `gorm:"column:construction_sector_id;index" json:"construction_sector"`
	ConstructionSector   *ConstructionSector `gorm:"foreignKey:ConstructionSectorID;constraint:OnDelete:SET NULL" json:"-"`

	Salary             money.Money `gorm:"column:salary;not null" json:"salary"`
	PaymentDay         int         `gorm:"column:payment_day;not null;default:5" json:"payment_day"`
	MealAllowance      money.Money `gorm:"column:meal_allowance;not null" json:"meal_allowance"`
	TransportAllowance money.Money `gorm:"column:transport_allowance;not null" json:"transport_allowance"`

	SalaryPaymentStatus             PaymentStatus `gorm:"column:salary_payment_status;size:10;not null;default:pending;index" json:"salary_payment_status"`
	SalaryAmountPaid                money.Money   `gorm:"column:salary_amount_paid;not null" json:"salary_amount_paid"`
	MealAllowancePaymentStatus      PaymentStatus `gorm:"column:meal_allowance_payment_status;size:10;not null;default:pending" json:"meal_allowance_payment_status"`
	MealAllowanceAmountPaid         money.Money   `gorm:"column:meal_allowance_amount_paid;not null" json:"meal_allowance_amount_paid"`
	TransportAllowancePaymentStatus PaymentStatus `gorm:"column:transport_allowance_payment_status;size:10;not null;default:pending" json:"transport_allowance_payment_status"`
	TransportAllowanceAmountPaid    money.Money   `gorm:"column:transport_allowance_amount_paid;not null" json:"transport_allowance_amount_paid"`

	LastPaymentDate *dates.Date `gorm:"column:last_payment_date" json:"last_payment_date"`
	CreatedAt       time.Time   `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time   `gorm:"not null" json:"updated_at"`
}

func (Employee) TableName() string { return "employee" }

// Owed returns the amount due for a pay category.
func (e *Employee) Owed(p PaymentType) money.Money {
	switch p {
	case PaymentSalary:
		return e.Salary
	case PaymentMealAllowance:
		return e.MealAllowance
	case PaymentTransportAllowance:
		return e.TransportAllowance
	}
	return money.Zero
}

// Paid returns the amount already paid for a pay category.
func (e *Employee) Paid(p PaymentType) money.Money {
	switch p {
	case PaymentSalary:
		return e.SalaryAmountPaid
	case PaymentMealAllowance:
		return e.MealAllowanceAmountPaid
	case PaymentTransportAllowance:
		return e.TransportAllowanceAmountPaid
	}
	return money.Zero
}

// Outstanding is owed minus paid, floored at zero.
func (e *Employee) Outstanding(p PaymentType) money.Money {
	rest := e.Owed(p).Sub(e.Paid(p))
	if rest.IsNegative() {
		return money.Zero
	}
	return rest
}

// SetPaid records the paid amount for a category and recomputes its status.
func (e *Employee) SetPaid(p PaymentType, paid money.Money) {
	status := StatusFor(e.Owed(p), paid)
	switch p {
	case PaymentSalary:
		e.SalaryAmountPaid, e.SalaryPaymentStatus = paid, status
	case PaymentMealAllowance:
		e.MealAllowanceAmountPaid, e.MealAllowancePaymentStatus = paid, status
	case PaymentTransportAllowance:
		e.TransportAllowanceAmountPaid, e.TransportAllowancePaymentStatus = paid, status
	}
}

// ResetPayments zeroes every category back to pending.
func (e *Employee) ResetPayments() {
	for _, p := range PaymentTypes {
		e.SetPaid(p, money.Zero)
	}
}

// StatusFor derives the payment status of a category from owed and paid.
// Nothing paid is pending even when nothing is owed.
func StatusFor(owed, paid money.Money) PaymentStatus {
	switch {
	case !paid.IsPositive():
		return PaymentPending
	case paid.Cmp(owed) >= 0:
		return PaymentPaid
	default:
		return PaymentPartial
	}
}

// EmployeeView is the serialized form pushed to clients, with the names of
// the related reference rows flattened in.
type EmployeeView struct {
	Employee
	DepartmentName         string `json:"department_name"`
	ConstructionName       string `json:"construction_name"`
	ConstructionSectorName string `json:"construction_sector_name"`
}

func NewEmployeeView(e Employee) EmployeeView {
	v := EmployeeView{Employee: e}
	if e.Department != nil {
		v.DepartmentName = e.Department.Name
	}
	if e.Construction != nil {
		v.ConstructionName = e.Construction.Name
	}
	if e.ConstructionSector != nil {
		v.ConstructionSectorName = e.ConstructionSector.Name
	}
	return v
}
