package financials

import (
	"gorm.io/gorm"

	types "github.com/RodCinelli/gestao-engparente/internal/domain"
	"github.com/RodCinelli/gestao-engparente/internal/platform/dbctx"
	"github.com/RodCinelli/gestao-engparente/internal/platform/logger"
)

type MaterialRepo interface {
	Create(dbc dbctx.Context, m *types.Material) error
	Update(dbc dbctx.Context, m *types.Material) error
	Delete(dbc dbctx.Context, id uint) error
	GetByID(dbc dbctx.Context, id uint) (*types.Material, error)
	List(dbc dbctx.Context) ([]types.Material, error)
	AddStock(dbc dbctx.Context, id uint, quantity int) error
}

type materialRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMaterialRepo(db *gorm.DB, baseLog *logger.Logger) MaterialRepo {
	repoLog := baseLog.With("repo", "MaterialRepo")
	return &materialRepo{db: db, log: repoLog}
}

func (r *materialRepo) Create(dbc dbctx.Context, m *types.Material) error {
	return dbc.DB(r.db).Create(m).Error
}

func (r *materialRepo) Update(dbc dbctx.Context, m *types.Material) error {
	return dbc.DB(r.db).Save(m).Error
}

func (r *materialRepo) Delete(dbc dbctx.Context, id uint) error {
	return deleteByID(dbc.DB(r.db), &types.Material{}, id)
}

func (r *materialRepo) GetByID(dbc dbctx.Context, id uint) (*types.Material, error) {
	var m types.Material
	if err := dbc.DB(r.db).First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *materialRepo) List(dbc dbctx.Context) ([]types.Material, error) {
	var rows []types.Material
	if err := dbc.DB(r.db).Order("name").Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// AddStock increments stock_quantity in place.
func (r *materialRepo) AddStock(dbc dbctx.Context, id uint, quantity int) error {
	res := dbc.DB(r.db).Model(&types.Material{}).
		Where("id = ?", id).
		UpdateColumn("stock_quantity", gorm.Expr("stock_quantity + ?", quantity))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func deleteByID(q *gorm.DB, model interface{}, id uint) error {
	res := q.Delete(model, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
