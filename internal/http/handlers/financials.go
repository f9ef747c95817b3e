package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/RodCinelli/gestao-engparente/internal/data/repos"
	domainagg "github.com/RodCinelli/gestao-engparente/internal/domain/aggregates"
	"github.com/RodCinelli/gestao-engparente/internal/domain/dates"
	"github.com/RodCinelli/gestao-engparente/internal/domain/financials"
	"github.com/RodCinelli/gestao-engparente/internal/http/response"
	"github.com/RodCinelli/gestao-engparente/internal/services"
)

type FinancialHandler struct {
	financial services.FinancialService
}

func NewFinancialHandler(financial services.FinancialService) *FinancialHandler {
	return &FinancialHandler{financial: financial}
}

// crud binds the shared shape of the id-addressed routes.
type crud[In any, Out any] struct {
	list   func(c *gin.Context) (any, error)
	get    func(c *gin.Context, id uint) (Out, error)
	create func(c *gin.Context, in In) (Out, error)
	update func(c *gin.Context, id uint, in In, partial bool) (Out, error)
	delete func(c *gin.Context, id uint) error
}

func (r crud[In, Out]) List(c *gin.Context) {
	rows, err := r.list(c)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.RespondOK(c, rows)
}

func (r crud[In, Out]) Get(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}
	out, err := r.get(c, id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.RespondOK(c, out)
}

func (r crud[In, Out]) Create(c *gin.Context) {
	var in In
	if err := bindJSON(c, &in); err != nil {
		response.FromError(c, err)
		return
	}
	out, err := r.create(c, in)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.RespondCreated(c, out)
}

func (r crud[In, Out]) Update(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}
	var in In
	if err := bindJSON(c, &in); err != nil {
		response.FromError(c, err)
		return
	}
	out, err := r.update(c, id, in, isPatch(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.RespondOK(c, out)
}

func (r crud[In, Out]) Delete(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}
	if err := r.delete(c, id); err != nil {
		response.FromError(c, err)
		return
	}
	response.RespondNoContent(c)
}

// Resource is the handler set of one financial collection.
type Resource interface {
	List(c *gin.Context)
	Get(c *gin.Context)
	Create(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

func (h *FinancialHandler) Materials() Resource {
	return crud[services.MaterialInput, *financials.Material]{
		list: func(c *gin.Context) (any, error) { return h.financial.ListMaterials(c.Request.Context()) },
		get: func(c *gin.Context, id uint) (*financials.Material, error) {
			return h.financial.GetMaterial(c.Request.Context(), id)
		},
		create: func(c *gin.Context, in services.MaterialInput) (*financials.Material, error) {
			return h.financial.CreateMaterial(c.Request.Context(), in)
		},
		update: func(c *gin.Context, id uint, in services.MaterialInput, partial bool) (*financials.Material, error) {
			return h.financial.UpdateMaterial(c.Request.Context(), id, in, partial)
		},
		delete: func(c *gin.Context, id uint) error { return h.financial.DeleteMaterial(c.Request.Context(), id) },
	}
}

func (h *FinancialHandler) Categories() Resource {
	return crud[services.CategoryInput, *financials.ExpenseCategory]{
		list: func(c *gin.Context) (any, error) { return h.financial.ListCategories(c.Request.Context()) },
		get: func(c *gin.Context, id uint) (*financials.ExpenseCategory, error) {
			return h.financial.GetCategory(c.Request.Context(), id)
		},
		create: func(c *gin.Context, in services.CategoryInput) (*financials.ExpenseCategory, error) {
			return h.financial.CreateCategory(c.Request.Context(), in)
		},
		update: func(c *gin.Context, id uint, in services.CategoryInput, partial bool) (*financials.ExpenseCategory, error) {
			return h.financial.UpdateCategory(c.Request.Context(), id, in, partial)
		},
		delete: func(c *gin.Context, id uint) error { return h.financial.DeleteCategory(c.Request.Context(), id) },
	}
}

// Expenses accepts ?expense_type=, ?material= and ?expense_date= filters.
func (h *FinancialHandler) Expenses() Resource {
	return crud[services.ExpenseInput, *financials.ExpenseView]{
		list: func(c *gin.Context) (any, error) {
			f, err := expenseFilter(c)
			if err != nil {
				return nil, err
			}
			return h.financial.ListExpenses(c.Request.Context(), f)
		},
		get: func(c *gin.Context, id uint) (*financials.ExpenseView, error) {
			return h.financial.GetExpense(c.Request.Context(), id)
		},
		create: func(c *gin.Context, in services.ExpenseInput) (*financials.ExpenseView, error) {
			return h.financial.CreateExpense(c.Request.Context(), in)
		},
		update: func(c *gin.Context, id uint, in services.ExpenseInput, partial bool) (*financials.ExpenseView, error) {
			return h.financial.UpdateExpense(c.Request.Context(), id, in, partial)
		},
		delete: func(c *gin.Context, id uint) error { return h.financial.DeleteExpense(c.Request.Context(), id) },
	}
}

// Transactions accepts ?category= and ?transaction_type= filters.
func (h *FinancialHandler) Transactions() Resource {
	return crud[services.TransactionInput, *financials.TransactionView]{
		list: func(c *gin.Context) (any, error) {
			f, err := transactionFilter(c)
			if err != nil {
				return nil, err
			}
			return h.financial.ListTransactions(c.Request.Context(), f)
		},
		get: func(c *gin.Context, id uint) (*financials.TransactionView, error) {
			return h.financial.GetTransaction(c.Request.Context(), id)
		},
		create: func(c *gin.Context, in services.TransactionInput) (*financials.TransactionView, error) {
			return h.financial.CreateTransaction(c.Request.Context(), in)
		},
		update: func(c *gin.Context, id uint, in services.TransactionInput, partial bool) (*financials.TransactionView, error) {
			return h.financial.UpdateTransaction(c.Request.Context(), id, in, partial)
		},
		delete: func(c *gin.Context, id uint) error { return h.financial.DeleteTransaction(c.Request.Context(), id) },
	}
}

// GET /api/financials/summary/
func (h *FinancialHandler) Summary(c *gin.Context) {
	sum, err := h.financial.Summary(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.RespondOK(c, sum)
}

func expenseFilter(c *gin.Context) (repos.ExpenseFilter, error) {
	var f repos.ExpenseFilter
	if raw := strings.TrimSpace(c.Query("expense_type")); raw != "" {
		t := financials.ExpenseType(raw)
		if !t.Valid() {
			return f, domainagg.Validation("http.query", "invalid expense_type %q", raw)
		}
		f.ExpenseType = t
	}
	var err error
	if f.MaterialID, err = optionalUintQuery(c, "material"); err != nil {
		return f, err
	}
	if raw := strings.TrimSpace(c.Query("expense_date")); raw != "" {
		d, err := dates.Parse(raw)
		if err != nil {
			return f, domainagg.Validation("http.query", "invalid expense_date %q", raw)
		}
		f.ExpenseDate = &d
	}
	return f, nil
}

func transactionFilter(c *gin.Context) (repos.TransactionFilter, error) {
	var f repos.TransactionFilter
	if raw := strings.TrimSpace(c.Query("transaction_type")); raw != "" {
		t := financials.TransactionType(raw)
		if !t.Valid() {
			return f, domainagg.Validation("http.query", "invalid transaction_type %q", raw)
		}
		f.TransactionType = t
	}
	var err error
	f.CategoryID, err = optionalUintQuery(c, "category")
	return f, err
}
