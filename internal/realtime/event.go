package realtime

import "strings"

// Group names a broadcast group. Membership is in-memory only.
type Group string

const (
	GroupEmployees  Group = "employees"
	GroupFinancials Group = "financials"
)

// Action is the closed set of change kinds a mutation can announce.
type Action string

const (
	ActionEmployeeCreated Action = "employee_created"
	ActionEmployeeUpdated Action = "employee_updated"
	ActionEmployeeDeleted Action = "employee_deleted"

	ActionPaymentRegistered Action = "payment_registered"
	ActionPaymentsReset     Action = "payments_reset"

	ActionConstructionCreated Action = "construction_created"
	ActionConstructionUpdated Action = "construction_updated"
	ActionConstructionDeleted Action = "construction_deleted"

	ActionConstructionSectorCreated Action = "construction_sector_created"
	ActionConstructionSectorUpdated Action = "construction_sector_updated"
	ActionConstructionSectorDeleted Action = "construction_sector_deleted"

	ActionDepartmentUpdate Action = "department_update"
)

const (
	ActionMaterialCreated Action = "material_created"
	ActionMaterialUpdated Action = "material_updated"
	ActionMaterialDeleted Action = "material_deleted"

	ActionCategoryCreated Action = "category_created"
	ActionCategoryUpdated Action = "category_updated"
	ActionCategoryDeleted Action = "category_deleted"

	ActionExpenseCreated Action = "expense_created"
	ActionExpenseUpdated Action = "expense_updated"
	ActionExpenseDeleted Action = "expense_deleted"

	ActionTransactionCreated Action = "transaction_created"
	ActionTransactionUpdated Action = "transaction_updated"
	ActionTransactionDeleted Action = "transaction_deleted"
)

// DomainEvent announces that persisted state in a group changed.
type DomainEvent struct {
	Group   Group  `json:"group"`
	Action  Action `json:"action"`
	Message string `json:"message"`
}

func (e DomainEvent) Valid() bool {
	return strings.TrimSpace(string(e.Group)) != "" && strings.TrimSpace(string(e.Action)) != ""
}

// Outbound frame types.
const (
	TypeInitialData        = "initial_data"
	TypeEmployeesUpdate    = "employees_update"
	TypeDashboardUpdate    = "dashboard_update"
	TypeMaterialsUpdate    = "materials_update"
	TypeExpensesUpdate     = "expenses_update"
	TypeTransactionsUpdate = "transactions_update"
	TypeSummaryUpdate      = "summary_update"
	TypeUpdate             = "update"
	TypeError              = "error"
)

// Inbound request types.
const (
	RequestDashboard    = "get_dashboard"
	RequestEmployees    = "get_employees"
	RequestMaterials    = "get_materials"
	RequestExpenses     = "get_expenses"
	RequestTransactions = "get_transactions"
	RequestSummary      = "get_summary"
)

type DataFrame struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

type UpdateFrame struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Action  Action `json:"action"`
}

type ErrorFrame struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

const MsgInvalidJSON = "Invalid JSON format"

func ServerError(err error) ErrorFrame {
	return ErrorFrame{Type: TypeError, Message: "Server error: " + err.Error()}
}

type inboundFrame struct {
	Type string `json:"type"`
}
