package realtime

import "context"

// View is one snapshot a session can push: the frame type and how to load
// its data from current state.
type View struct {
	Type string
	Load func(ctx context.Context) (any, error)
}

// RefreshPolicy names the set of views re-sent after an action.
type RefreshPolicy string

const (
	PolicyPayroll      RefreshPolicy = "payroll"
	PolicyReference    RefreshPolicy = "reference"
	PolicyMaterials    RefreshPolicy = "materials"
	PolicyExpenses     RefreshPolicy = "expenses"
	PolicyTransactions RefreshPolicy = "transactions"
)

// Channel describes what a websocket endpoint serves for one group.
type Channel struct {
	Group    Group
	Initial  View
	Requests map[string]View
	Actions  map[Action]RefreshPolicy
	Refresh  map[RefreshPolicy][]View
}

// RefreshFor returns the ordered views to push after action a. ok is false
// for actions the channel does not know.
func (c *Channel) RefreshFor(a Action) (views []View, ok bool) {
	policy, ok := c.Actions[a]
	if !ok {
		return nil, false
	}
	return c.Refresh[policy], true
}

// EmployeesSource loads the views of the employees group.
type EmployeesSource interface {
	InitialData(ctx context.Context) (any, error)
	Employees(ctx context.Context) (any, error)
	Dashboard(ctx context.Context) (any, error)
}

// EmployeeActions maps every employees-group action to its refresh policy.
var EmployeeActions = map[Action]RefreshPolicy{
	ActionEmployeeCreated:   PolicyPayroll,
	ActionEmployeeUpdated:   PolicyPayroll,
	ActionEmployeeDeleted:   PolicyPayroll,
	ActionPaymentRegistered: PolicyPayroll,
	ActionPaymentsReset:     PolicyPayroll,

	ActionConstructionCreated:       PolicyReference,
	ActionConstructionUpdated:       PolicyReference,
	ActionConstructionDeleted:       PolicyReference,
	ActionConstructionSectorCreated: PolicyReference,
	ActionConstructionSectorUpdated: PolicyReference,
	ActionConstructionSectorDeleted: PolicyReference,
	ActionDepartmentUpdate:          PolicyReference,
}

func EmployeesChannel(src EmployeesSource) *Channel {
	initial := View{Type: TypeInitialData, Load: src.InitialData}
	employees := View{Type: TypeEmployeesUpdate, Load: src.Employees}
	dashboard := View{Type: TypeDashboardUpdate, Load: src.Dashboard}
	return &Channel{
		Group:   GroupEmployees,
		Initial: initial,
		Requests: map[string]View{
			RequestDashboard: dashboard,
			RequestEmployees: employees,
		},
		Actions: EmployeeActions,
		Refresh: map[RefreshPolicy][]View{
			PolicyPayroll:   {employees, dashboard},
			PolicyReference: {initial},
		},
	}
}

// FinancialsSource loads the views of the financials group.
type FinancialsSource interface {
	InitialData(ctx context.Context) (any, error)
	Materials(ctx context.Context) (any, error)
	Expenses(ctx context.Context) (any, error)
	Transactions(ctx context.Context) (any, error)
	Summary(ctx context.Context) (any, error)
}

var FinancialActions = map[Action]RefreshPolicy{
	ActionMaterialCreated: PolicyMaterials,
	ActionMaterialUpdated: PolicyMaterials,
	ActionMaterialDeleted: PolicyMaterials,

	ActionExpenseCreated: PolicyExpenses,
	ActionExpenseUpdated: PolicyExpenses,
	ActionExpenseDeleted: PolicyExpenses,

	ActionTransactionCreated: PolicyTransactions,
	ActionTransactionUpdated: PolicyTransactions,
	ActionTransactionDeleted: PolicyTransactions,

	ActionCategoryCreated: PolicyReference,
	ActionCategoryUpdated: PolicyReference,
	ActionCategoryDeleted: PolicyReference,
}

func FinancialsChannel(src FinancialsSource) *Channel {
	initial := View{Type: TypeInitialData, Load: src.InitialData}
	materials := View{Type: TypeMaterialsUpdate, Load: src.Materials}
	expenses := View{Type: TypeExpensesUpdate, Load: src.Expenses}
	transactions := View{Type: TypeTransactionsUpdate, Load: src.Transactions}
	summary := View{Type: TypeSummaryUpdate, Load: src.Summary}
	return &Channel{
		Group:   GroupFinancials,
		Initial: initial,
		Requests: map[string]View{
			RequestMaterials:    materials,
			RequestExpenses:     expenses,
			RequestTransactions: transactions,
			RequestSummary:      summary,
		},
		Actions: FinancialActions,
		Refresh: map[RefreshPolicy][]View{
			PolicyMaterials:    {materials},
			PolicyExpenses:     {expenses, materials, summary},
			PolicyTransactions: {transactions, summary},
			PolicyReference:    {initial},
		},
	}
}
