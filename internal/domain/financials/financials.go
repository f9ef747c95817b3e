package financials

import (
	"time"

	"github.com/RodCinelli/gestao-engparente/internal/domain/dates"
	"github.com/RodCinelli/gestao-engparente/internal/domain/money"
)

type Material struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	Name          string      `gorm:"column:name;size:100;not null;index" json:"name"`
	Description   string      `gorm:"column:description;type:text" json:"description"`
	UnitPrice     money.Money `gorm:"column:unit_price;not null" json:"unit_price"`
	StockQuantity int         `gorm:"column:stock_quantity;not null;default:0" json:"stock_quantity"`
	CreatedAt     time.Time   `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time   `gorm:"not null" json:"updated_at"`
}

func (Material) TableName() string { return "material" }

type ExpenseCategory struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"column:name;size:100;not null;index" json:"name"`
	Description string    `gorm:"column:description;type:text" json:"description"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}

func (ExpenseCategory) TableName() string { return "expense_category" }

type ExpenseType string

const (
	ExpenseMaterial ExpenseType = "material"
	ExpenseService  ExpenseType = "service"
	ExpenseUtility  ExpenseType = "utility"
	ExpenseOther    ExpenseType = "other"
)

var ExpenseTypes = []ExpenseType{ExpenseMaterial, ExpenseService, ExpenseUtility, ExpenseOther}

func (t ExpenseType) Valid() bool {
	for _, v := range ExpenseTypes {
		if v == t {
			return true
		}
	}
	return false
}

type Expense struct {
	ID          uint             `gorm:"primaryKey" json:"id"`
	Description string           `gorm:"column:description;size:200;not null" json:"description"`
	ExpenseType ExpenseType      `gorm:"column:expense_type;size:10;not null;default:material;index" json:"expense_type"`
	MaterialID  *uint            `gorm:"column:material_id;index" json:"material"`
	Material    *Material        `gorm:"foreignKey:MaterialID;constraint:OnDelete:SET NULL" json:"-"`
	CategoryID  *uint            `gorm:"column:category_id;index" json:"category"`
	Category    *ExpenseCategory `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"-"`
	Quantity    int              `gorm:"column:quantity;not null;default:1" json:"quantity"`
	Amount      money.Money      `gorm:"column:amount;not null" json:"amount"`
	ExpenseDate dates.Date       `gorm:"column:expense_date;not null;index" json:"expense_date"`
	CreatedAt   time.Time        `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time        `gorm:"not null" json:"updated_at"`
}

func (Expense) TableName() string { return "expense" }

// AddsStock reports whether saving this expense restocks its material.
func (e *Expense) AddsStock() bool {
	return e.ExpenseType == ExpenseMaterial && e.MaterialID != nil && e.Quantity > 0
}

type ExpenseView struct {
	Expense
	MaterialName string `json:"material_name"`
	CategoryName string `json:"category_name"`
}

func NewExpenseView(e Expense) ExpenseView {
	v := ExpenseView{Expense: e}
	if e.Material != nil {
		v.MaterialName = e.Material.Name
	}
	if e.Category != nil {
		v.CategoryName = e.Category.Name
	}
	return v
}

type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

func (t TransactionType) Valid() bool {
	return t == TransactionIncome || t == TransactionExpense
}

type PaymentMethod string

const (
	MethodCash       PaymentMethod = "cash"
	MethodCreditCard PaymentMethod = "credit_card"
	MethodDebitCard  PaymentMethod = "debit_card"
	MethodTransfer   PaymentMethod = "transfer"
	MethodPix        PaymentMethod = "pix"
	MethodOther      PaymentMethod = "other"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case MethodCash, MethodCreditCard, MethodDebitCard, MethodTransfer, MethodPix, MethodOther:
		return true
	}
	return false
}

type Transaction struct {
	ID              uint             `gorm:"primaryKey" json:"id"`
	Description     string           `gorm:"column:description;size:200;not null" json:"description"`
	TransactionType TransactionType  `gorm:"column:transaction_type;size:10;not null;index" json:"transaction_type"`
	Amount          money.Money      `gorm:"column:amount;not null" json:"amount"`
	TransactionDate dates.Date       `gorm:"column:transaction_date;not null;index" json:"transaction_date"`
	PaymentMethod   PaymentMethod    `gorm:"column:payment_method;size:20;not null;default:cash" json:"payment_method"`
	CategoryID      *uint            `gorm:"column:category_id;index" json:"category"`
	Category        *ExpenseCategory `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"-"`
	ExpenseID       *uint            `gorm:"column:expense_id;index" json:"expense"`
	Expense         *Expense         `gorm:"foreignKey:ExpenseID;constraint:OnDelete:SET NULL" json:"-"`
	Notes           string           `gorm:"column:notes;type:text" json:"notes"`
	CreatedAt       time.Time        `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time        `gorm:"not null" json:"updated_at"`
}

func (Transaction) TableName() string { return "financial_transaction" }

type TransactionView struct {
	Transaction
	CategoryName       string `json:"category_name"`
	ExpenseDescription string `json:"expense_description"`
}

func NewTransactionView(t Transaction) TransactionView {
	v := TransactionView{Transaction: t}
	if t.Category != nil {
		v.CategoryName = t.Category.Name
	}
	if t.Expense != nil {
		v.ExpenseDescription = t.Expense.Description
	}
	return v
}

// Summary is the bookkeeping overview pushed as summary_update.
type Summary struct {
	TotalIncome    money.Money                 `json:"total_income"`
	TotalExpense   money.Money                 `json:"total_expense"`
	Balance        money.Money                 `json:"balance"`
	ExpensesByType map[ExpenseType]money.Money `json:"expenses_by_type"`
	TotalExpenses  money.Money                 `json:"total_expenses"`
}

// ComputeSummary folds transactions and expenses into a Summary. Every
// expense type is present in ExpensesByType, zero when unused.
func ComputeSummary(txs []Transaction, expenses []Expense) Summary {
	s := Summary{ExpensesByType: make(map[ExpenseType]money.Money, len(ExpenseTypes))}
	for _, t := range ExpenseTypes {
		s.ExpensesByType[t] = money.Zero
	}
	for _, t := range txs {
		switch t.TransactionType {
		case TransactionIncome:
			s.TotalIncome = s.TotalIncome.Add(t.Amount)
		case TransactionExpense:
			s.TotalExpense = s.TotalExpense.Add(t.Amount)
		}
	}
	for _, e := range expenses {
		s.ExpensesByType[e.ExpenseType] = s.ExpensesByType[e.ExpenseType].Add(e.Amount)
		s.TotalExpenses = s.TotalExpenses.Add(e.Amount)
	}
	s.Balance = s.TotalIncome.Sub(s.TotalExpense)
	return s
}
