package financials

import (
	"context"
	"testing"

	"github.com/RodCinelli/gestao-engparente/internal/data/repos/testutil"
	types "github.com/RodCinelli/gestao-engparente/internal/domain"
	"github.com/RodCinelli/gestao-engparente/internal/domain/dates"
	"github.com/RodCinelli/gestao-engparente/internal/domain/financials"
	"github.com/RodCinelli/gestao-engparente/internal/domain/money"
	"github.com/RodCinelli/gestao-engparente/internal/platform/dbctx"
)

func TestMaterialStockAndExpenses(t *testing.T) {
	db := testutil.DB(t)
	log := testutil.Logger(t)
	dbc := dbctx.Context{Ctx: context.Background()}

	materials := NewMaterialRepo(db, log)
	expenses := NewExpenseRepo(db, log)
	categories := NewExpenseCategoryRepo(db, log)

	cement := &types.Material{Name: "Cimento", UnitPrice: money.MustParse("32.90"), StockQuantity: 10}
	if err := materials.Create(dbc, cement); err != nil {
		t.Fatalf("create material: %v", err)
	}
	if err := materials.AddStock(dbc, cement.ID, 5); err != nil {
		t.Fatalf("AddStock: %v", err)
	}
	got, err := materials.GetByID(dbc, cement.ID)
	if err != nil || got.StockQuantity != 15 {
		t.Fatalf("stock: err=%v got=%+v", err, got)
	}
	if err := materials.AddStock(dbc, 9999, 1); err == nil {
		t.Fatalf("AddStock on missing material should fail")
	}

	cat := &types.ExpenseCategory{Name: "Obra"}
	if err := categories.Create(dbc, cat); err != nil {
		t.Fatalf("create category: %v", err)
	}
	e := &types.Expense{
		Description: "Cimento lote 1", ExpenseType: financials.ExpenseMaterial,
		MaterialID: &cement.ID, CategoryID: &cat.ID, Quantity: 5,
		Amount: money.MustParse("164.50"), ExpenseDate: dates.Today(),
	}
	if err := expenses.Create(dbc, e); err != nil {
		t.Fatalf("create expense: %v", err)
	}
	rows, err := expenses.List(dbc, ExpenseFilter{MaterialID: &cement.ID})
	if err != nil || len(rows) != 1 {
		t.Fatalf("List: err=%v rows=%d", err, len(rows))
	}
	view := financials.NewExpenseView(rows[0])
	if view.MaterialName != "Cimento" || view.CategoryName != "Obra" {
		t.Fatalf("unexpected view: %+v", view)
	}
	if rows, err := expenses.List(dbc, ExpenseFilter{ExpenseType: financials.ExpenseService}); err != nil || len(rows) != 0 {
		t.Fatalf("List service: err=%v rows=%d", err, len(rows))
	}
}

func TestTransactionRepoFilters(t *testing.T) {
	db := testutil.DB(t)
	log := testutil.Logger(t)
	dbc := dbctx.Context{Ctx: context.Background()}
	repo := NewTransactionRepo(db, log)

	for _, tx := range []*types.Transaction{
		{Description: "Medição", TransactionType: financials.TransactionIncome, Amount: money.MustParse("10000.00"), TransactionDate: dates.Today(), PaymentMethod: financials.MethodPix},
		{Description: "Aluguel", TransactionType: financials.TransactionExpense, Amount: money.MustParse("2500.00"), TransactionDate: dates.Today(), PaymentMethod: financials.MethodTransfer},
	} {
		if err := repo.Create(dbc, tx); err != nil {
			t.Fatalf("create transaction: %v", err)
		}
	}
	income, err := repo.List(dbc, TransactionFilter{TransactionType: financials.TransactionIncome})
	if err != nil || len(income) != 1 || income[0].Amount.String() != "10000.00" {
		t.Fatalf("List income: err=%v rows=%+v", err, income)
	}
}
