package financials

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/RodCinelli/gestao-engparente/internal/domain/money"
)

func TestComputeSummary(t *testing.T) {
	txs := []Transaction{
		{TransactionType: TransactionIncome, Amount: money.MustParse("10000.00")},
		{TransactionType: TransactionIncome, Amount: money.MustParse("0.10")},
		{TransactionType: TransactionExpense, Amount: money.MustParse("2500.20")},
	}
	expenses := []Expense{
		{ExpenseType: ExpenseMaterial, Amount: money.MustParse("1200.00")},
		{ExpenseType: ExpenseMaterial, Amount: money.MustParse("0.30")},
		{ExpenseType: ExpenseService, Amount: money.MustParse("800.00")},
	}
	s := ComputeSummary(txs, expenses)

	if got := s.TotalIncome.String(); got != "10000.10" {
		t.Fatalf("income: got=%s", got)
	}
	if got := s.Balance.String(); got != "7499.90" {
		t.Fatalf("balance: got=%s", got)
	}
	if got := s.ExpensesByType[ExpenseMaterial].String(); got != "1200.30" {
		t.Fatalf("material expenses: got=%s", got)
	}
	if got := s.ExpensesByType[ExpenseUtility].String(); got != "0.00" {
		t.Fatalf("utility expenses: got=%s", got)
	}
	if got := s.TotalExpenses.String(); got != "2000.30" {
		t.Fatalf("total expenses: got=%s", got)
	}

	b, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(b), `"balance":"7499.90"`) {
		t.Fatalf("unexpected json: %s", b)
	}
}

func TestExpenseAddsStock(t *testing.T) {
	mid := uint(1)
	tests := []struct {
		name string
		e    Expense
		want bool
	}{
		{"material with material", Expense{ExpenseType: ExpenseMaterial, MaterialID: &mid, Quantity: 3}, true},
		{"material without material", Expense{ExpenseType: ExpenseMaterial, Quantity: 3}, false},
		{"service", Expense{ExpenseType: ExpenseService, MaterialID: &mid, Quantity: 3}, false},
	}
	for _, tt := range tests {
		if got := tt.e.AddsStock(); got != tt.want {
			t.Fatalf("%s: want=%v got=%v", tt.name, tt.want, got)
		}
	}
}
