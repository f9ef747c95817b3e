package financials

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/RodCinelli/gestao-engparente/internal/domain"
	"github.com/RodCinelli/gestao-engparente/internal/domain/dates"
	"github.com/RodCinelli/gestao-engparente/internal/domain/financials"
	"github.com/RodCinelli/gestao-engparente/internal/platform/dbctx"
	"github.com/RodCinelli/gestao-engparente/internal/platform/logger"
)

type ExpenseFilter struct {
	ExpenseType financials.ExpenseType
	MaterialID  *uint
	ExpenseDate *dates.Date
}

type ExpenseRepo interface {
	Create(dbc dbctx.Context, e *types.Expense) error
	Update(dbc dbctx.Context, e *types.Expense) error
	Delete(dbc dbctx.Context, id uint) error
	GetByID(dbc dbctx.Context, id uint) (*types.Expense, error)
	List(dbc dbctx.Context, f ExpenseFilter) ([]types.Expense, error)
}

type expenseRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewExpenseRepo(db *gorm.DB, baseLog *logger.Logger) ExpenseRepo {
	repoLog := baseLog.With("repo", "ExpenseRepo")
	return &expenseRepo{db: db, log: repoLog}
}

func (r *expenseRepo) Create(dbc dbctx.Context, e *types.Expense) error {
	return dbc.DB(r.db).Omit(clause.Associations).Create(e).Error
}

func (r *expenseRepo) Update(dbc dbctx.Context, e *types.Expense) error {
	return dbc.DB(r.db).Omit(clause.Associations).Save(e).Error
}

func (r *expenseRepo) Delete(dbc dbctx.Context, id uint) error {
	return deleteByID(dbc.DB(r.db), &types.Expense{}, id)
}

func (r *expenseRepo) GetByID(dbc dbctx.Context, id uint) (*types.Expense, error) {
	var e types.Expense
	if err := dbc.DB(r.db).Preload("Material").Preload("Category").First(&e, id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *expenseRepo) List(dbc dbctx.Context, f ExpenseFilter) ([]types.Expense, error) {
	q := dbc.DB(r.db).Preload("Material").Preload("Category")
	if f.ExpenseType != "" {
		q = q.Where("expense_type = ?", f.ExpenseType)
	}
	if f.MaterialID != nil {
		q = q.Where("material_id = ?", *f.MaterialID)
	}
	if f.ExpenseDate != nil {
		q = q.Where("expense_date = ?", *f.ExpenseDate)
	}
	var rows []types.Expense
	if err := q.Order("expense_date DESC").Order("id DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
