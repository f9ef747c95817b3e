package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	dataagg "github.com/RodCinelli/gestao-engparente/internal/data/aggregates"
	"github.com/RodCinelli/gestao-engparente/internal/data/repos"
	"github.com/RodCinelli/gestao-engparente/internal/data/repos/testutil"
	httpH "github.com/RodCinelli/gestao-engparente/internal/http/handlers"
	httpMW "github.com/RodCinelli/gestao-engparente/internal/http/middleware"
	"github.com/RodCinelli/gestao-engparente/internal/observability"
	"github.com/RodCinelli/gestao-engparente/internal/realtime"
	"github.com/RodCinelli/gestao-engparente/internal/services"
)

func newTestRouter(t *testing.T, authRequired bool) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := testutil.DB(t)
	log := testutil.Logger(t)
	runner := dataagg.NewGormTxRunner(db)
	writer := dataagg.NewWriter(runner, log)
	metrics := observability.NewMetrics()
	hub := realtime.NewHub(log).Instrument(metrics)
	notifier := realtime.NewHubNotifier(hub, log)

	departments := repos.NewDepartmentRepo(db, log)
	constructions := repos.NewConstructionRepo(db, log)
	sectors := repos.NewConstructionSectorRepo(db, log)
	employeeRepo := repos.NewEmployeeRepo(db, log)
	resolver := services.NewResolver(log, departments, constructions, sectors)

	reference := services.NewReferenceService(log, writer, notifier, resolver, departments, constructions, sectors)
	employees := services.NewEmployeeService(log, writer, notifier, resolver, employeeRepo)
	dashboard := services.NewDashboardService(log, runner, employeeRepo, constructions, departments)
	financial := services.NewFinancialService(log, writer, notifier,
		repos.NewMaterialRepo(db, log), repos.NewExpenseCategoryRepo(db, log),
		repos.NewExpenseRepo(db, log), repos.NewTransactionRepo(db, log))
	auth := services.NewAuthService(log, writer, repos.NewUserRepo(db, log), repos.NewUserTokenRepo(db, log),
		"router-test-secret", 5*time.Minute, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	return NewRouter(RouterConfig{
		Log:              log,
		Metrics:          metrics,
		UserHandler:      httpH.NewUserHandler(auth),
		AuthMiddleware:   httpMW.NewAuthMiddleware(log, auth, authRequired),
		EmployeeHandler:  httpH.NewEmployeeHandler(employees),
		ReferenceHandler: httpH.NewReferenceHandler(reference),
		DashboardHandler: httpH.NewDashboardHandler(dashboard),
		FinancialHandler: httpH.NewFinancialHandler(financial),
		HealthHandler:    httpH.NewHealthHandler(),
		RealtimeHandler: httpH.NewRealtimeHandler(ctx, log, hub,
			services.NewEmployeesViews(reference, employees, dashboard),
			services.NewFinancialsViews(financial),
			httpH.RealtimeConfig{SendBuffer: 16, PingInterval: time.Second}),
	})
}

func do(t *testing.T, r http.Handler, method, path, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, into any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), into); err != nil {
		t.Fatalf("decode %s: %v", rec.Body.String(), err)
	}
}

func TestHealthcheck(t *testing.T) {
	r := newTestRouter(t, false)
	rec := do(t, r, http.MethodGet, "/healthcheck", "")
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Fatalf("healthcheck: %d %q", rec.Code, rec.Body.String())
	}
}

func TestMetricsEndpoint(t *testing.T) {
	r := newTestRouter(t, false)

	if rec := do(t, r, http.MethodGet, "/api/employees/", ""); rec.Code != http.StatusOK {
		t.Fatalf("list: %d", rec.Code)
	}
	if rec := do(t, r, http.MethodPost, "/api/employees/", `{"name":"Ana","salary":"100.00"}`); rec.Code != http.StatusCreated {
		t.Fatalf("create: %d %s", rec.Code, rec.Body.String())
	}
	do(t, r, http.MethodGet, "/nowhere", "")

	rec := do(t, r, http.MethodGet, "/metrics", "")
	if rec.Code != http.StatusOK || !strings.HasPrefix(rec.Header().Get("Content-Type"), "text/plain") {
		t.Fatalf("metrics: %d %q", rec.Code, rec.Header().Get("Content-Type"))
	}
	body := rec.Body.String()
	for _, want := range []string{
		`engparente_api_requests_total{method="GET",route="/api/employees/",status="200"} 1`,
		`engparente_api_requests_total{method="POST",route="/api/employees/",status="201"} 1`,
		`engparente_api_requests_total{method="GET",route="unmatched",status="404"} 1`,
		`engparente_realtime_events_total{group="employees",action="employee_created"} 1`,
		"# TYPE engparente_api_request_duration_seconds histogram",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("missing %q in:\n%s", want, body)
		}
	}
}

func TestEmployeePayrollOverHTTP(t *testing.T) {
	r := newTestRouter(t, false)

	rec := do(t, r, http.MethodPost, "/api/employees/",
		`{"name":"Carlos","department":"Obras","construction":"Residencial Sol","salary":"3000.00","meal_allowance":"400.00"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: %d %s", rec.Code, rec.Body.String())
	}
	var emp struct {
		ID                  uint   `json:"id"`
		SalaryPaymentStatus string `json:"salary_payment_status"`
		SalaryAmountPaid    string `json:"salary_amount_paid"`
	}
	decode(t, rec, &emp)
	if emp.ID == 0 || emp.SalaryPaymentStatus != "pending" {
		t.Fatalf("created employee: %+v", emp)
	}
	id := jsonID(emp.ID)

	rec = do(t, r, http.MethodPost, "/api/employees/"+id+"/register_payment/", `{"payment_type":"salary","amount":"1000.00"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("register payment: %d %s", rec.Code, rec.Body.String())
	}
	decode(t, rec, &emp)
	if emp.SalaryPaymentStatus != "partial" || emp.SalaryAmountPaid != "1000.00" {
		t.Fatalf("after partial payment: %+v", emp)
	}

	rec = do(t, r, http.MethodPost, "/api/employees/"+id+"/register_payment/", `{"payment_type":"salary","amount":"5000.00"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("overpayment: want 400 got %d %s", rec.Code, rec.Body.String())
	}

	rec = do(t, r, http.MethodGet, "/api/employees/?salary_payment_status=partial", "")
	var list []json.RawMessage
	decode(t, rec, &list)
	if len(list) != 1 {
		t.Fatalf("filter partial: %s", rec.Body.String())
	}
	rec = do(t, r, http.MethodGet, "/api/employees/?salary_payment_status=bogus", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad filter: want 400 got %d", rec.Code)
	}

	rec = do(t, r, http.MethodGet, "/api/dashboard/", "")
	var snap struct {
		TotalEmployees     int    `json:"total_employees"`
		TotalConstructions int    `json:"total_constructions"`
		TotalSalaryPaid    string `json:"total_salary_paid"`
	}
	decode(t, rec, &snap)
	if snap.TotalEmployees != 1 || snap.TotalConstructions != 1 || snap.TotalSalaryPaid != "1000.00" {
		t.Fatalf("dashboard: %s", rec.Body.String())
	}

	rec = do(t, r, http.MethodPost, "/api/employees/reset_payments/", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("reset all: %d %s", rec.Code, rec.Body.String())
	}

	rec = do(t, r, http.MethodGet, "/api/employees/999/", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("missing employee: want 404 got %d", rec.Code)
	}
	rec = do(t, r, http.MethodGet, "/api/employees/abc/", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad id: want 400 got %d", rec.Code)
	}

	rec = do(t, r, http.MethodDelete, "/api/employees/"+id+"/", "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete: %d", rec.Code)
	}
}

func TestDepartmentDeleteInUse(t *testing.T) {
	r := newTestRouter(t, false)

	rec := do(t, r, http.MethodPost, "/api/departments/", `{"name":"Obras"}`)
	var dept struct {
		ID uint `json:"id"`
	}
	decode(t, rec, &dept)
	if rec := do(t, r, http.MethodPost, "/api/employees/",
		`{"name":"Ana","department":`+jsonID(dept.ID)+`,"salary":"100"}`); rec.Code != http.StatusCreated {
		t.Fatalf("create employee: %d %s", rec.Code, rec.Body.String())
	}
	rec = do(t, r, http.MethodDelete, "/api/departments/"+jsonID(dept.ID)+"/", "")
	if rec.Code != http.StatusPreconditionFailed {
		t.Fatalf("delete in use: want 412 got %d %s", rec.Code, rec.Body.String())
	}
	var env struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	decode(t, rec, &env)
	if env.Error.Code != "precondition_failed" {
		t.Fatalf("error code: %s", rec.Body.String())
	}
}

func TestFinancialRoutes(t *testing.T) {
	r := newTestRouter(t, false)

	rec := do(t, r, http.MethodPost, "/api/materials/", `{"name":"Areia","unit_price":"120.00"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create material: %d %s", rec.Code, rec.Body.String())
	}
	var mat struct {
		ID            uint `json:"id"`
		StockQuantity int  `json:"stock_quantity"`
	}
	decode(t, rec, &mat)

	rec = do(t, r, http.MethodPost, "/api/expenses/",
		`{"description":"Areia lavada","expense_type":"material","material":`+jsonID(mat.ID)+`,"quantity":3,"amount":"360.00","expense_date":"2024-06-10"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create expense: %d %s", rec.Code, rec.Body.String())
	}
	var exp struct {
		ExpenseDate string `json:"expense_date"`
	}
	decode(t, rec, &exp)
	if exp.ExpenseDate != "2024-06-10" {
		t.Fatalf("expense_date should be a plain date: %q", exp.ExpenseDate)
	}
	decode(t, do(t, r, http.MethodGet, "/api/materials/"+jsonID(mat.ID)+"/", ""), &mat)
	if mat.StockQuantity != 3 {
		t.Fatalf("stock after expense: %d", mat.StockQuantity)
	}

	var rows []json.RawMessage
	decode(t, do(t, r, http.MethodGet, "/api/expenses/?expense_date=2024-06-10", ""), &rows)
	if len(rows) != 1 {
		t.Fatalf("filter by date: %d", len(rows))
	}
	if rec := do(t, r, http.MethodGet, "/api/expenses/?expense_type=food", ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("bad expense_type: want 400 got %d", rec.Code)
	}

	rec = do(t, r, http.MethodPost, "/api/transactions/", `{"description":"Medição","transaction_type":"income","amount":"1000.00"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create transaction: %d %s", rec.Code, rec.Body.String())
	}
	var sum struct {
		Balance string `json:"balance"`
	}
	decode(t, do(t, r, http.MethodGet, "/api/financials/summary/", ""), &sum)
	if sum.Balance != "1000.00" {
		t.Fatalf("summary balance: %q", sum.Balance)
	}
}

func TestAuthRequired(t *testing.T) {
	r := newTestRouter(t, true)

	if rec := do(t, r, http.MethodGet, "/api/employees/", ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous: want 401 got %d", rec.Code)
	}
	rec := do(t, r, http.MethodPost, "/api/users/register/",
		`{"username":"maria","password":"segredo123","password_confirm":"segredo123"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: %d %s", rec.Code, rec.Body.String())
	}
	if strings.Contains(rec.Body.String(), "segredo123") {
		t.Fatalf("register response leaks password: %s", rec.Body.String())
	}

	rec = do(t, r, http.MethodPost, "/api/users/login/", `{"username":"maria","password":"segredo123"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("login: %d %s", rec.Code, rec.Body.String())
	}
	var login struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
	}
	decode(t, rec, &login)

	bearer := "Bearer " + login.Access
	if rec := do(t, r, http.MethodGet, "/api/employees/", "", "Authorization", bearer); rec.Code != http.StatusOK {
		t.Fatalf("authorized list: %d %s", rec.Code, rec.Body.String())
	}
	rec = do(t, r, http.MethodGet, "/api/users/me/", "", "Authorization", bearer)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"maria"`) {
		t.Fatalf("me: %d %s", rec.Code, rec.Body.String())
	}
	if rec := do(t, r, http.MethodGet, "/api/users/", "", "Authorization", bearer); rec.Code != http.StatusUnauthorized {
		t.Fatalf("non-staff user list: want 401 got %d", rec.Code)
	}

	rec = do(t, r, http.MethodPost, "/api/users/token/refresh/", `{"refresh":"`+login.Refresh+`"}`)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"access"`) {
		t.Fatalf("refresh: %d %s", rec.Code, rec.Body.String())
	}
	rec = do(t, r, http.MethodPost, "/api/users/logout/", `{"refresh":"`+login.Refresh+`"}`, "Authorization", bearer)
	if rec.Code != http.StatusOK {
		t.Fatalf("logout: %d %s", rec.Code, rec.Body.String())
	}
	if rec := do(t, r, http.MethodPost, "/api/users/token/refresh/", `{"refresh":"`+login.Refresh+`"}`); rec.Code != http.StatusUnauthorized {
		t.Fatalf("refresh after logout: want 401 got %d", rec.Code)
	}
}

func jsonID(id uint) string {
	raw, _ := json.Marshal(id)
	return string(raw)
}
