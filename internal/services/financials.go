package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	dataagg "github.com/RodCinelli/gestao-engparente/internal/data/aggregates"
	"github.com/RodCinelli/gestao-engparente/internal/data/repos"
	types "github.com/RodCinelli/gestao-engparente/internal/domain"
	domainagg "github.com/RodCinelli/gestao-engparente/internal/domain/aggregates"
	"github.com/RodCinelli/gestao-engparente/internal/domain/dates"
	"github.com/RodCinelli/gestao-engparente/internal/domain/financials"
	"github.com/RodCinelli/gestao-engparente/internal/domain/money"
	"github.com/RodCinelli/gestao-engparente/internal/platform/dbctx"
	"github.com/RodCinelli/gestao-engparente/internal/platform/logger"
	"github.com/RodCinelli/gestao-engparente/internal/realtime"
)

const (
	msgMaterialChanged    = "Material data changed"
	msgCategoryChanged    = "Category data changed"
	msgExpenseChanged     = "Expense data changed"
	msgTransactionChanged = "Transaction data changed"
)

type MaterialInput struct {
	Name          *string      `json:"name"`
	Description   *string      `json:"description"`
	UnitPrice     *money.Money `json:"unit_price"`
	StockQuantity *int         `json:"stock_quantity"`
}

type CategoryInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type ExpenseInput struct {
	Description *string                 `json:"description"`
	ExpenseType *financials.ExpenseType `json:"expense_type"`
	Material    Ref                     `json:"material"`
	Category    Ref                     `json:"category"`
	Quantity    *int                    `json:"quantity"`
	Amount      *money.Money            `json:"amount"`
	ExpenseDate Date                    `json:"expense_date"`
}

type TransactionInput struct {
	Description     *string                     `json:"description"`
	TransactionType *financials.TransactionType `json:"transaction_type"`
	Amount          *money.Money                `json:"amount"`
	TransactionDate Date                        `json:"transaction_date"`
	PaymentMethod   *financials.PaymentMethod   `json:"payment_method"`
	Category        Ref                         `json:"category"`
	Expense         Ref                         `json:"expense"`
	Notes           *string                     `json:"notes"`
}

// FinancialService is the bookkeeping side: materials, expense categories,
// expenses and transactions. Mutations are announced on the financials
// group.
type FinancialService interface {
	ListMaterials(ctx context.Context) ([]types.Material, error)
	GetMaterial(ctx context.Context, id uint) (*types.Material, error)
	CreateMaterial(ctx context.Context, in MaterialInput) (*types.Material, error)
	UpdateMaterial(ctx context.Context, id uint, in MaterialInput, partial bool) (*types.Material, error)
	DeleteMaterial(ctx context.Context, id uint) error

	ListCategories(ctx context.Context) ([]types.ExpenseCategory, error)
	GetCategory(ctx context.Context, id uint) (*types.ExpenseCategory, error)
	CreateCategory(ctx context.Context, in CategoryInput) (*types.ExpenseCategory, error)
	UpdateCategory(ctx context.Context, id uint, in CategoryInput, partial bool) (*types.ExpenseCategory, error)
	DeleteCategory(ctx context.Context, id uint) error

	ListExpenses(ctx context.Context, f repos.ExpenseFilter) ([]types.ExpenseView, error)
	GetExpense(ctx context.Context, id uint) (*types.ExpenseView, error)
	// CreateExpense restocks the material of a material expense in the same
	// transaction.
	CreateExpense(ctx context.Context, in ExpenseInput) (*types.ExpenseView, error)
	UpdateExpense(ctx context.Context, id uint, in ExpenseInput, partial bool) (*types.ExpenseView, error)
	DeleteExpense(ctx context.Context, id uint) error

	ListTransactions(ctx context.Context, f repos.TransactionFilter) ([]types.TransactionView, error)
	GetTransaction(ctx context.Context, id uint) (*types.TransactionView, error)
	CreateTransaction(ctx context.Context, in TransactionInput) (*types.TransactionView, error)
	UpdateTransaction(ctx context.Context, id uint, in TransactionInput, partial bool) (*types.TransactionView, error)
	DeleteTransaction(ctx context.Context, id uint) error

	Summary(ctx context.Context) (types.Summary, error)
}

type financialService struct {
	log          *logger.Logger
	writer       dataagg.Writer
	notifier     realtime.Notifier
	materials    repos.MaterialRepo
	categories   repos.ExpenseCategoryRepo
	expenses     repos.ExpenseRepo
	transactions repos.TransactionRepo
}

func NewFinancialService(
	log *logger.Logger,
	writer dataagg.Writer,
	notifier realtime.Notifier,
	materials repos.MaterialRepo,
	categories repos.ExpenseCategoryRepo,
	expenses repos.ExpenseRepo,
	transactions repos.TransactionRepo,
) FinancialService {
	if notifier == nil {
		notifier = realtime.NopNotifier{}
	}
	return &financialService{
		log:          log.With("service", "FinancialService"),
		writer:       writer,
		notifier:     notifier,
		materials:    materials,
		categories:   categories,
		expenses:     expenses,
		transactions: transactions,
	}
}

func (s *financialService) notify(ctx context.Context, action realtime.Action, msg string) {
	s.notifier.Notify(ctx, realtime.GroupFinancials, action, msg)
}

// ---- materials ----

func (s *financialService) ListMaterials(ctx context.Context) ([]types.Material, error) {
	rows, err := s.materials.List(readCtx(ctx))
	return rows, dataagg.MapError("material.list", err)
}

func (s *financialService) GetMaterial(ctx context.Context, id uint) (*types.Material, error) {
	m, err := s.materials.GetByID(readCtx(ctx), id)
	return m, dataagg.MapError("material.get", err)
}

func (s *financialService) CreateMaterial(ctx context.Context, in MaterialInput) (*types.Material, error) {
	m := &types.Material{}
	if err := applyMaterial(m, in, false); err != nil {
		return nil, err
	}
	if err := s.writer.Execute(ctx, "material.create", func(dbc dbctx.Context) error {
		return s.materials.Create(dbc, m)
	}); err != nil {
		return nil, err
	}
	s.notify(ctx, realtime.ActionMaterialCreated, msgMaterialChanged)
	return m, nil
}

func (s *financialService) UpdateMaterial(ctx context.Context, id uint, in MaterialInput, partial bool) (*types.Material, error) {
	var m *types.Material
	err := s.writer.Execute(ctx, "material.update", func(dbc dbctx.Context) error {
		var err error
		if m, err = s.materials.GetByID(dbc, id); err != nil {
			return err
		}
		if err := applyMaterial(m, in, partial); err != nil {
			return err
		}
		return s.materials.Update(dbc, m)
	})
	if err != nil {
		return nil, err
	}
	s.notify(ctx, realtime.ActionMaterialUpdated, msgMaterialChanged)
	return m, nil
}

func (s *financialService) DeleteMaterial(ctx context.Context, id uint) error {
	if err := s.writer.Execute(ctx, "material.delete", func(dbc dbctx.Context) error {
		return s.materials.Delete(dbc, id)
	}); err != nil {
		return err
	}
	s.notify(ctx, realtime.ActionMaterialDeleted, msgMaterialChanged)
	return nil
}

func applyMaterial(m *types.Material, in MaterialInput, partial bool) error {
	const op = "material"
	if in.Name != nil || !partial {
		name := trimmed(in.Name)
		if name == "" {
			return domainagg.Validation(op, "name is required")
		}
		m.Name = name
	}
	if in.Description != nil {
		m.Description = strings.TrimSpace(*in.Description)
	}
	if in.UnitPrice != nil || !partial {
		if in.UnitPrice == nil {
			return domainagg.Validation(op, "unit_price is required")
		}
		if in.UnitPrice.IsNegative() {
			return domainagg.Validation(op, "unit_price cannot be negative")
		}
		m.UnitPrice = *in.UnitPrice
	}
	if in.StockQuantity != nil {
		if *in.StockQuantity < 0 {
			return domainagg.Validation(op, "stock_quantity cannot be negative")
		}
		m.StockQuantity = *in.StockQuantity
	}
	return nil
}

// ---- categories ----

func (s *financialService) ListCategories(ctx context.Context) ([]types.ExpenseCategory, error) {
	rows, err := s.categories.List(readCtx(ctx))
	return rows, dataagg.MapError("category.list", err)
}

func (s *financialService) GetCategory(ctx context.Context, id uint) (*types.ExpenseCategory, error) {
	c, err := s.categories.GetByID(readCtx(ctx), id)
	return c, dataagg.MapError("category.get", err)
}

func (s *financialService) CreateCategory(ctx context.Context, in CategoryInput) (*types.ExpenseCategory, error) {
	c := &types.ExpenseCategory{}
	if err := applyCategory(c, in, false); err != nil {
		return nil, err
	}
	if err := s.writer.Execute(ctx, "category.create", func(dbc dbctx.Context) error {
		return s.categories.Create(dbc, c)
	}); err != nil {
		return nil, err
	}
	s.notify(ctx, realtime.ActionCategoryCreated, msgCategoryChanged)
	return c, nil
}

func (s *financialService) UpdateCategory(ctx context.Context, id uint, in CategoryInput, partial bool) (*types.ExpenseCategory, error) {
	var c *types.ExpenseCategory
	err := s.writer.Execute(ctx, "category.update", func(dbc dbctx.Context) error {
		var err error
		if c, err = s.categories.GetByID(dbc, id); err != nil {
			return err
		}
		if err := applyCategory(c, in, partial); err != nil {
			return err
		}
		return s.categories.Update(dbc, c)
	})
	if err != nil {
		return nil, err
	}
	s.notify(ctx, realtime.ActionCategoryUpdated, msgCategoryChanged)
	return c, nil
}

func (s *financialService) DeleteCategory(ctx context.Context, id uint) error {
	if err := s.writer.Execute(ctx, "category.delete", func(dbc dbctx.Context) error {
		return s.categories.Delete(dbc, id)
	}); err != nil {
		return err
	}
	s.notify(ctx, realtime.ActionCategoryDeleted, msgCategoryChanged)
	return nil
}

func applyCategory(c *types.ExpenseCategory, in CategoryInput, partial bool) error {
	if in.Name != nil || !partial {
		name := trimmed(in.Name)
		if name == "" {
			return domainagg.Validation("category", "name is required")
		}
		c.Name = name
	}
	if in.Description != nil {
		c.Description = strings.TrimSpace(*in.Description)
	}
	return nil
}

// ---- expenses ----

func (s *financialService) ListExpenses(ctx context.Context, f repos.ExpenseFilter) ([]types.ExpenseView, error) {
	rows, err := s.expenses.List(readCtx(ctx), f)
	if err != nil {
		return nil, dataagg.MapError("expense.list", err)
	}
	out := make([]types.ExpenseView, 0, len(rows))
	for _, e := range rows {
		out = append(out, financials.NewExpenseView(e))
	}
	return out, nil
}

func (s *financialService) GetExpense(ctx context.Context, id uint) (*types.ExpenseView, error) {
	e, err := s.expenses.GetByID(readCtx(ctx), id)
	if err != nil {
		return nil, dataagg.MapError("expense.get", err)
	}
	v := financials.NewExpenseView(*e)
	return &v, nil
}

func (s *financialService) CreateExpense(ctx context.Context, in ExpenseInput) (*types.ExpenseView, error) {
	var view types.ExpenseView
	err := s.writer.Execute(ctx, "expense.create", func(dbc dbctx.Context) error {
		e := &types.Expense{ExpenseType: financials.ExpenseMaterial, Quantity: 1, ExpenseDate: dates.Today()}
		if err := s.applyExpense(dbc, e, in, false); err != nil {
			return err
		}
		if err := s.expenses.Create(dbc, e); err != nil {
			return err
		}
		if e.AddsStock() {
			if err := s.materials.AddStock(dbc, *e.MaterialID, e.Quantity); err != nil {
				return err
			}
		}
		return s.loadExpense(dbc, e.ID, &view)
	})
	if err != nil {
		return nil, err
	}
	s.notify(ctx, realtime.ActionExpenseCreated, msgExpenseChanged)
	return &view, nil
}

func (s *financialService) UpdateExpense(ctx context.Context, id uint, in ExpenseInput, partial bool) (*types.ExpenseView, error) {
	var view types.ExpenseView
	err := s.writer.Execute(ctx, "expense.update", func(dbc dbctx.Context) error {
		e, err := s.expenses.GetByID(dbc, id)
		if err != nil {
			return err
		}
		if err := s.applyExpense(dbc, e, in, partial); err != nil {
			return err
		}
		if err := s.expenses.Update(dbc, e); err != nil {
			return err
		}
		return s.loadExpense(dbc, e.ID, &view)
	})
	if err != nil {
		return nil, err
	}
	s.notify(ctx, realtime.ActionExpenseUpdated, msgExpenseChanged)
	return &view, nil
}

func (s *financialService) DeleteExpense(ctx context.Context, id uint) error {
	if err := s.writer.Execute(ctx, "expense.delete", func(dbc dbctx.Context) error {
		return s.expenses.Delete(dbc, id)
	}); err != nil {
		return err
	}
	s.notify(ctx, realtime.ActionExpenseDeleted, msgExpenseChanged)
	return nil
}

func (s *financialService) loadExpense(dbc dbctx.Context, id uint, into *types.ExpenseView) error {
	e, err := s.expenses.GetByID(dbc, id)
	if err != nil {
		return err
	}
	*into = financials.NewExpenseView(*e)
	return nil
}

func (s *financialService) applyExpense(dbc dbctx.Context, e *types.Expense, in ExpenseInput, partial bool) error {
	const op = "expense"
	if in.Description != nil || !partial {
		desc := trimmed(in.Description)
		if desc == "" {
			return domainagg.Validation(op, "description is required")
		}
		e.Description = desc
	}
	if in.ExpenseType != nil {
		if !in.ExpenseType.Valid() {
			return domainagg.Validation(op, "unknown expense_type %q", *in.ExpenseType)
		}
		e.ExpenseType = *in.ExpenseType
	}
	if in.Quantity != nil {
		if *in.Quantity < 1 {
			return domainagg.Validation(op, "quantity must be at least 1")
		}
		e.Quantity = *in.Quantity
	}
	if in.Amount != nil || !partial {
		if in.Amount == nil {
			return domainagg.Validation(op, "amount is required")
		}
		if in.Amount.IsNegative() {
			return domainagg.Validation(op, "amount cannot be negative")
		}
		e.Amount = *in.Amount
	}
	if in.ExpenseDate.Set {
		if in.ExpenseDate.Value == nil {
			return domainagg.Validation(op, "expense_date cannot be empty")
		}
		e.ExpenseDate = *in.ExpenseDate.Value
	}
	if in.Material.Set || !partial {
		id, err := s.lookupID(dbc, op, "material", in.Material, func(id uint) error {
			_, err := s.materials.GetByID(dbc, id)
			return err
		})
		if err != nil {
			return err
		}
		e.MaterialID, e.Material = id, nil
	}
	if in.Category.Set || !partial {
		id, err := s.categoryID(dbc, op, in.Category)
		if err != nil {
			return err
		}
		e.CategoryID, e.Category = id, nil
	}
	return nil
}

// ---- transactions ----

func (s *financialService) ListTransactions(ctx context.Context, f repos.TransactionFilter) ([]types.TransactionView, error) {
	rows, err := s.transactions.List(readCtx(ctx), f)
	if err != nil {
		return nil, dataagg.MapError("transaction.list", err)
	}
	out := make([]types.TransactionView, 0, len(rows))
	for _, t := range rows {
		out = append(out, financials.NewTransactionView(t))
	}
	return out, nil
}

func (s *financialService) GetTransaction(ctx context.Context, id uint) (*types.TransactionView, error) {
	t, err := s.transactions.GetByID(readCtx(ctx), id)
	if err != nil {
		return nil, dataagg.MapError("transaction.get", err)
	}
	v := financials.NewTransactionView(*t)
	return &v, nil
}

func (s *financialService) CreateTransaction(ctx context.Context, in TransactionInput) (*types.TransactionView, error) {
	var view types.TransactionView
	err := s.writer.Execute(ctx, "transaction.create", func(dbc dbctx.Context) error {
		t := &types.Transaction{PaymentMethod: financials.MethodCash, TransactionDate: dates.Today()}
		if err := s.applyTransaction(dbc, t, in, false); err != nil {
			return err
		}
		if err := s.transactions.Create(dbc, t); err != nil {
			return err
		}
		return s.loadTransaction(dbc, t.ID, &view)
	})
	if err != nil {
		return nil, err
	}
	s.notify(ctx, realtime.ActionTransactionCreated, msgTransactionChanged)
	return &view, nil
}

func (s *financialService) UpdateTransaction(ctx context.Context, id uint, in TransactionInput, partial bool) (*types.TransactionView, error) {
	var view types.TransactionView
	err := s.writer.Execute(ctx, "transaction.update", func(dbc dbctx.Context) error {
		t, err := s.transactions.GetByID(dbc, id)
		if err != nil {
			return err
		}
		if err := s.applyTransaction(dbc, t, in, partial); err != nil {
			return err
		}
		if err := s.transactions.Update(dbc, t); err != nil {
			return err
		}
		return s.loadTransaction(dbc, t.ID, &view)
	})
	if err != nil {
		return nil, err
	}
	s.notify(ctx, realtime.ActionTransactionUpdated, msgTransactionChanged)
	return &view, nil
}

func (s *financialService) DeleteTransaction(ctx context.Context, id uint) error {
	if err := s.writer.Execute(ctx, "transaction.delete", func(dbc dbctx.Context) error {
		return s.transactions.Delete(dbc, id)
	}); err != nil {
		return err
	}
	s.notify(ctx, realtime.ActionTransactionDeleted, msgTransactionChanged)
	return nil
}

func (s *financialService) loadTransaction(dbc dbctx.Context, id uint, into *types.TransactionView) error {
	t, err := s.transactions.GetByID(dbc, id)
	if err != nil {
		return err
	}
	*into = financials.NewTransactionView(*t)
	return nil
}

func (s *financialService) applyTransaction(dbc dbctx.Context, t *types.Transaction, in TransactionInput, partial bool) error {
	const op = "transaction"
	if in.Description != nil || !partial {
		desc := trimmed(in.Description)
		if desc == "" {
			return domainagg.Validation(op, "description is required")
		}
		t.Description = desc
	}
	if in.TransactionType != nil || !partial {
		if in.TransactionType == nil || !in.TransactionType.Valid() {
			return domainagg.Validation(op, "transaction_type must be income or expense")
		}
		t.TransactionType = *in.TransactionType
	}
	if in.Amount != nil || !partial {
		if in.Amount == nil {
			return domainagg.Validation(op, "amount is required")
		}
		if in.Amount.IsNegative() {
			return domainagg.Validation(op, "amount cannot be negative")
		}
		t.Amount = *in.Amount
	}
	if in.TransactionDate.Set {
		if in.TransactionDate.Value == nil {
			return domainagg.Validation(op, "transaction_date cannot be empty")
		}
		t.TransactionDate = *in.TransactionDate.Value
	}
	if in.PaymentMethod != nil {
		if !in.PaymentMethod.Valid() {
			return domainagg.Validation(op, "unknown payment_method %q", *in.PaymentMethod)
		}
		t.PaymentMethod = *in.PaymentMethod
	}
	if in.Notes != nil {
		t.Notes = strings.TrimSpace(*in.Notes)
	}
	if in.Category.Set || !partial {
		id, err := s.categoryID(dbc, op, in.Category)
		if err != nil {
			return err
		}
		t.CategoryID, t.Category = id, nil
	}
	if in.Expense.Set || !partial {
		id, err := s.lookupID(dbc, op, "expense", in.Expense, func(id uint) error {
			_, err := s.expenses.GetByID(dbc, id)
			return err
		})
		if err != nil {
			return err
		}
		t.ExpenseID, t.Expense = id, nil
	}
	return nil
}

// categoryID resolves a category by id or exact name. Unlike employee
// references, unknown names are rejected rather than created.
func (s *financialService) categoryID(dbc dbctx.Context, op string, ref Ref) (*uint, error) {
	if ref.ID == nil && ref.Name != "" {
		c, err := s.categories.GetByName(dbc, ref.Name)
		if err != nil {
			return nil, err
		}
		if c == nil {
			return nil, domainagg.Validation(op, "category %q does not exist", ref.Name)
		}
		return &c.ID, nil
	}
	return s.lookupID(dbc, op, "category", ref, func(id uint) error {
		_, err := s.categories.GetByID(dbc, id)
		return err
	})
}

// lookupID checks that an id reference exists. An empty ref clears it.
func (s *financialService) lookupID(dbc dbctx.Context, op, what string, ref Ref, exists func(uint) error) (*uint, error) {
	if ref.Empty() {
		return nil, nil
	}
	if ref.ID == nil {
		return nil, domainagg.Validation(op, "%s must be referenced by id", what)
	}
	if err := exists(*ref.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainagg.Validation(op, "%s %d does not exist", what, *ref.ID)
		}
		return nil, err
	}
	id := *ref.ID
	return &id, nil
}

// ---- summary ----

func (s *financialService) Summary(ctx context.Context) (types.Summary, error) {
	dbc := readCtx(ctx)
	txs, err := s.transactions.List(dbc, repos.TransactionFilter{})
	if err != nil {
		return types.Summary{}, dataagg.MapError("financials.summary", err)
	}
	exps, err := s.expenses.List(dbc, repos.ExpenseFilter{})
	if err != nil {
		return types.Summary{}, dataagg.MapError("financials.summary", err)
	}
	return financials.ComputeSummary(txs, exps), nil
}
