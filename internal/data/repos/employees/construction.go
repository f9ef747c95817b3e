package employees

import (
	"gorm.io/gorm"

	types "github.com/RodCinelli/gestao-engparente/internal/domain"
	"github.com/RodCinelli/gestao-engparente/internal/platform/dbctx"
	"github.com/RodCinelli/gestao-engparente/internal/platform/logger"
)

type ConstructionRepo interface {
	Create(dbc dbctx.Context, c *types.Construction) error
	Update(dbc dbctx.Context, c *types.Construction) error
	Delete(dbc dbctx.Context, id uint) error
	GetByID(dbc dbctx.Context, id uint) (*types.Construction, error)
	GetByName(dbc dbctx.Context, name string) (*types.Construction, error)
	List(dbc dbctx.Context, activeOnly bool) ([]types.Construction, error)
	CountActive(dbc dbctx.Context) (int64, error)
}

type constructionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewConstructionRepo(db *gorm.DB, baseLog *logger.Logger) ConstructionRepo {
	repoLog := baseLog.With("repo", "ConstructionRepo")
	return &constructionRepo{db: db, log: repoLog}
}

func (r *constructionRepo) Create(dbc dbctx.Context, c *types.Construction) error {
	active := c.IsActive
	q := dbc.DB(r.db)
	if err := q.Create(c).Error; err != nil {
		return err
	}
	// is_active has a column default, so gorm skips an explicit false.
	if !active {
		c.IsActive = false
		return q.Model(c).Update("is_active", false).Error
	}
	return nil
}

func (r *constructionRepo) Update(dbc dbctx.Context, c *types.Construction) error {
	// Select("*") so is_active=false is written.
	return dbc.DB(r.db).Select("*").Omit("created_at").Updates(c).Error
}

func (r *constructionRepo) Delete(dbc dbctx.Context, id uint) error {
	res := dbc.DB(r.db).Delete(&types.Construction{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *constructionRepo) GetByID(dbc dbctx.Context, id uint) (*types.Construction, error) {
	var c types.Construction
	if err := dbc.DB(r.db).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *constructionRepo) GetByName(dbc dbctx.Context, name string) (*types.Construction, error) {
	var rows []types.Construction
	if err := dbc.DB(r.db).Where("name = ?", name).Order("id").Limit(1).Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func (r *constructionRepo) List(dbc dbctx.Context, activeOnly bool) ([]types.Construction, error) {
	q := dbc.DB(r.db)
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	var rows []types.Construction
	if err := q.Order("name").Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *constructionRepo) CountActive(dbc dbctx.Context) (int64, error) {
	var n int64
	if err := dbc.DB(r.db).Model(&types.Construction{}).Where("is_active = ?", true).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
