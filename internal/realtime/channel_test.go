package realtime

import (
	"context"
	"testing"
)

type stubFinancials struct{}

func (stubFinancials) InitialData(context.Context) (any, error)  { return map[string]any{}, nil }
func (stubFinancials) Materials(context.Context) (any, error)    { return []any{}, nil }
func (stubFinancials) Expenses(context.Context) (any, error)     { return []any{}, nil }
func (stubFinancials) Transactions(context.Context) (any, error) { return []any{}, nil }
func (stubFinancials) Summary(context.Context) (any, error)      { return map[string]any{}, nil }

func viewTypes(views []View) []string {
	out := make([]string, len(views))
	for i, v := range views {
		out[i] = v.Type
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestEmployeesRefreshTable(t *testing.T) {
	ch := EmployeesChannel(&stubEmployees{})
	payroll := []string{TypeEmployeesUpdate, TypeDashboardUpdate}
	reference := []string{TypeInitialData}

	tests := []struct {
		action Action
		want   []string
	}{
		{ActionEmployeeCreated, payroll},
		{ActionEmployeeUpdated, payroll},
		{ActionEmployeeDeleted, payroll},
		{ActionPaymentRegistered, payroll},
		{ActionPaymentsReset, payroll},
		{ActionConstructionCreated, reference},
		{ActionConstructionUpdated, reference},
		{ActionConstructionDeleted, reference},
		{ActionConstructionSectorCreated, reference},
		{ActionConstructionSectorUpdated, reference},
		{ActionConstructionSectorDeleted, reference},
		{ActionDepartmentUpdate, reference},
	}
	if len(tests) != len(EmployeeActions) {
		t.Fatalf("table covers %d actions, channel knows %d", len(tests), len(EmployeeActions))
	}
	for _, tt := range tests {
		views, ok := ch.RefreshFor(tt.action)
		if !ok {
			t.Fatalf("%s: no policy", tt.action)
		}
		if got := viewTypes(views); !equalStrings(got, tt.want) {
			t.Fatalf("%s: want=%v got=%v", tt.action, tt.want, got)
		}
	}
	if _, ok := ch.RefreshFor(ActionMaterialCreated); ok {
		t.Fatalf("financial action must not resolve on the employees channel")
	}
}

func TestFinancialsRefreshTable(t *testing.T) {
	ch := FinancialsChannel(stubFinancials{})
	tests := []struct {
		action Action
		want   []string
	}{
		{ActionMaterialUpdated, []string{TypeMaterialsUpdate}},
		{ActionExpenseCreated, []string{TypeExpensesUpdate, TypeMaterialsUpdate, TypeSummaryUpdate}},
		{ActionTransactionDeleted, []string{TypeTransactionsUpdate, TypeSummaryUpdate}},
		{ActionCategoryCreated, []string{TypeInitialData}},
	}
	for _, tt := range tests {
		views, ok := ch.RefreshFor(tt.action)
		if !ok {
			t.Fatalf("%s: no policy", tt.action)
		}
		if got := viewTypes(views); !equalStrings(got, tt.want) {
			t.Fatalf("%s: want=%v got=%v", tt.action, tt.want, got)
		}
	}
	for policy := range map[RefreshPolicy]bool{PolicyMaterials: true, PolicyExpenses: true, PolicyTransactions: true, PolicyReference: true} {
		if len(ch.Refresh[policy]) == 0 {
			t.Fatalf("policy %s has no views", policy)
		}
	}
	for _, req := range []string{RequestMaterials, RequestExpenses, RequestTransactions, RequestSummary} {
		if _, ok := ch.Requests[req]; !ok {
			t.Fatalf("missing request %s", req)
		}
	}
}
