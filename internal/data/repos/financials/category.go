package financials

import (
	"gorm.io/gorm"

	types "github.com/RodCinelli/gestao-engparente/internal/domain"
	"github.com/RodCinelli/gestao-engparente/internal/platform/dbctx"
	"github.com/RodCinelli/gestao-engparente/internal/platform/logger"
)

type ExpenseCategoryRepo interface {
	Create(dbc dbctx.Context, c *types.ExpenseCategory) error
	Update(dbc dbctx.Context, c *types.ExpenseCategory) error
	Delete(dbc dbctx.Context, id uint) error
	GetByID(dbc dbctx.Context, id uint) (*types.ExpenseCategory, error)
	GetByName(dbc dbctx.Context, name string) (*types.ExpenseCategory, error)
	List(dbc dbctx.Context) ([]types.ExpenseCategory, error)
}

type expenseCategoryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewExpenseCategoryRepo(db *gorm.DB, baseLog *logger.Logger) ExpenseCategoryRepo {
	repoLog := baseLog.With("repo", "ExpenseCategoryRepo")
	return &expenseCategoryRepo{db: db, log: repoLog}
}

func (r *expenseCategoryRepo) Create(dbc dbctx.Context, c *types.ExpenseCategory) error {
	return dbc.DB(r.db).Create(c).Error
}

func (r *expenseCategoryRepo) Update(dbc dbctx.Context, c *types.ExpenseCategory) error {
	return dbc.DB(r.db).Save(c).Error
}

func (r *expenseCategoryRepo) Delete(dbc dbctx.Context, id uint) error {
	return deleteByID(dbc.DB(r.db), &types.ExpenseCategory{}, id)
}

func (r *expenseCategoryRepo) GetByID(dbc dbctx.Context, id uint) (*types.ExpenseCategory, error) {
	var c types.ExpenseCategory
	if err := dbc.DB(r.db).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *expenseCategoryRepo) GetByName(dbc dbctx.Context, name string) (*types.ExpenseCategory, error) {
	var rows []types.ExpenseCategory
	if err := dbc.DB(r.db).Where("name = ?", name).Order("id").Limit(1).Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func (r *expenseCategoryRepo) List(dbc dbctx.Context) ([]types.ExpenseCategory, error) {
	var rows []types.ExpenseCategory
	if err := dbc.DB(r.db).Order("name").Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
