package handlers

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/RodCinelli/gestao-engparente/internal/data/repos"
	domainagg "github.com/RodCinelli/gestao-engparente/internal/domain/aggregates"
	"github.com/RodCinelli/gestao-engparente/internal/domain/employees"
	"github.com/RodCinelli/gestao-engparente/internal/http/response"
	"github.com/RodCinelli/gestao-engparente/internal/services"
)

type EmployeeHandler struct {
	employees services.EmployeeService
}

func NewEmployeeHandler(employees services.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{employees: employees}
}

// GET /api/employees/?department=&construction=&salary_payment_status=
func (h *EmployeeHandler) List(c *gin.Context) {
	var f repos.EmployeeFilter
	var err error
	if f.DepartmentID, err = optionalUintQuery(c, "department"); err != nil {
		response.FromError(c, err)
		return
	}
	if f.ConstructionID, err = optionalUintQuery(c, "construction"); err != nil {
		response.FromError(c, err)
		return
	}
	if raw := strings.TrimSpace(c.Query("salary_payment_status")); raw != "" {
		status := employees.PaymentStatus(raw)
		switch status {
		case employees.PaymentPending, employees.PaymentPartial, employees.PaymentPaid:
			f.SalaryPaymentStatus = status
		default:
			response.FromError(c, domainagg.Validation("http.query", "invalid salary_payment_status %q", raw))
			return
		}
	}
	rows, err := h.employees.List(c.Request.Context(), f)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.RespondOK(c, rows)
}

// GET /api/employees/:id/
func (h *EmployeeHandler) Get(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}
	v, err := h.employees.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.RespondOK(c, v)
}

// POST /api/employees/
func (h *EmployeeHandler) Create(c *gin.Context) {
	var in services.EmployeeInput
	if err := bindJSON(c, &in); err != nil {
		response.FromError(c, err)
		return
	}
	v, err := h.employees.Create(c.Request.Context(), in)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.RespondCreated(c, v)
}

// PUT|PATCH /api/employees/:id/
func (h *EmployeeHandler) Update(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}
	var in services.EmployeeInput
	if err := bindJSON(c, &in); err != nil {
		response.FromError(c, err)
		return
	}
	v, err := h.employees.Update(c.Request.Context(), id, in, isPatch(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.RespondOK(c, v)
}

// DELETE /api/employees/:id/
func (h *EmployeeHandler) Delete(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}
	if err := h.employees.Delete(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}
	response.RespondNoContent(c)
}

// POST /api/employees/:id/register_payment/
func (h *EmployeeHandler) RegisterPayment(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}
	var in services.PaymentInput
	if err := bindJSON(c, &in); err != nil {
		response.FromError(c, err)
		return
	}
	v, err := h.employees.RegisterPayment(c.Request.Context(), id, in)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.RespondOK(c, v)
}

// POST /api/employees/:id/mark_as_paid/
func (h *EmployeeHandler) MarkAsPaid(c *gin.Context) {
	h.byID(c, h.employees.MarkAsPaid)
}

// POST /api/employees/:id/reset_payment/
func (h *EmployeeHandler) ResetPayment(c *gin.Context) {
	h.byID(c, h.employees.ResetPayment)
}

// POST /api/employees/reset_payments/
func (h *EmployeeHandler) ResetAllPayments(c *gin.Context) {
	n, err := h.employees.ResetAllPayments(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"reset": n})
}

func (h *EmployeeHandler) byID(c *gin.Context, fn func(ctx context.Context, id uint) (*employees.EmployeeView, error)) {
	id, err := idParam(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}
	v, err := fn(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.RespondOK(c, v)
}
