package financials

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/RodCinelli/gestao-engparente/internal/domain"
	"github.com/RodCinelli/gestao-engparente/internal/domain/financials"
	"github.com/RodCinelli/gestao-engparente/internal/platform/dbctx"
	"github.com/RodCinelli/gestao-engparente/internal/platform/logger"
)

type TransactionFilter struct {
	CategoryID      *uint
	TransactionType financials.TransactionType
}

type TransactionRepo interface {
	Create(dbc dbctx.Context, t *types.Transaction) error
	Update(dbc dbctx.Context, t *types.Transaction) error
	Delete(dbc dbctx.Context, id uint) error
	GetByID(dbc dbctx.Context, id uint) (*types.Transaction, error)
	List(dbc dbctx.Context, f TransactionFilter) ([]types.Transaction, error)
}

type transactionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTransactionRepo(db *gorm.DB, baseLog *logger.Logger) TransactionRepo {
	repoLog := baseLog.With("repo", "TransactionRepo")
	return &transactionRepo{db: db, log: repoLog}
}

func (r *transactionRepo) Create(dbc dbctx.Context, t *types.Transaction) error {
	return dbc.DB(r.db).Omit(clause.Associations).Create(t).Error
}

func (r *transactionRepo) Update(dbc dbctx.Context, t *types.Transaction) error {
	return dbc.DB(r.db).Omit(clause.Associations).Save(t).Error
}

func (r *transactionRepo) Delete(dbc dbctx.Context, id uint) error {
	return deleteByID(dbc.DB(r.db), &types.Transaction{}, id)
}

func (r *transactionRepo) GetByID(dbc dbctx.Context, id uint) (*types.Transaction, error) {
	var t types.Transaction
	if err := dbc.DB(r.db).Preload("Category").Preload("Expense").First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *transactionRepo) List(dbc dbctx.Context, f TransactionFilter) ([]types.Transaction, error) {
	q := dbc.DB(r.db).Preload("Category").Preload("Expense")
	if f.CategoryID != nil {
		q = q.Where("category_id = ?", *f.CategoryID)
	}
	if f.TransactionType != "" {
		q = q.Where("transaction_type = ?", f.TransactionType)
	}
	var rows []types.Transaction
	if err := q.Order("transaction_date DESC").Order("id DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
