package employees

import (
	"gorm.io/gorm"

	types "github.com/RodCinelli/gestao-engparente/internal/domain"
	"github.com/RodCinelli/gestao-engparente/internal/platform/dbctx"
	"github.com/RodCinelli/gestao-engparente/internal/platform/logger"
)

type DepartmentRepo interface {
	Create(dbc dbctx.Context, d *types.Department) error
	Update(dbc dbctx.Context, d *types.Department) error
	Delete(dbc dbctx.Context, id uint) error
	GetByID(dbc dbctx.Context, id uint) (*types.Department, error)
	GetByName(dbc dbctx.Context, name string) (*types.Department, error)
	List(dbc dbctx.Context) ([]types.Department, error)
	Count(dbc dbctx.Context) (int64, error)
}

type departmentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDepartmentRepo(db *gorm.DB, baseLog *logger.Logger) DepartmentRepo {
	repoLog := baseLog.With("repo", "DepartmentRepo")
	return &departmentRepo{db: db, log: repoLog}
}

func (r *departmentRepo) Create(dbc dbctx.Context, d *types.Department) error {
	return dbc.DB(r.db).Create(d).Error
}

func (r *departmentRepo) Update(dbc dbctx.Context, d *types.Department) error {
	return dbc.DB(r.db).Save(d).Error
}

func (r *departmentRepo) Delete(dbc dbctx.Context, id uint) error {
	res := dbc.DB(r.db).Delete(&types.Department{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *departmentRepo) GetByID(dbc dbctx.Context, id uint) (*types.Department, error) {
	var d types.Department
	if err := dbc.DB(r.db).First(&d, id).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

// GetByName matches the name exactly. Returns (nil, nil) when absent.
func (r *departmentRepo) GetByName(dbc dbctx.Context, name string) (*types.Department, error) {
	var rows []types.Department
	if err := dbc.DB(r.db).Where("name = ?", name).Order("id").Limit(1).Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func (r *departmentRepo) List(dbc dbctx.Context) ([]types.Department, error) {
	var rows []types.Department
	if err := dbc.DB(r.db).Order("name").Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *departmentRepo) Count(dbc dbctx.Context) (int64, error) {
	var n int64
	if err := dbc.DB(r.db).Model(&types.Department{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
