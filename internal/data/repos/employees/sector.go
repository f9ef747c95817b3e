package employees

import (
	"gorm.io/gorm"

	types "github.com/RodCinelli/gestao-engparente/internal/domain"
	"github.com/RodCinelli/gestao-engparente/internal/platform/dbctx"
	"github.com/RodCinelli/gestao-engparente/internal/platform/logger"
)

type ConstructionSectorRepo interface {
	Create(dbc dbctx.Context, s *types.ConstructionSector) error
	Update(dbc dbctx.Context, s *types.ConstructionSector) error
	Delete(dbc dbctx.Context, id uint) error
	GetByID(dbc dbctx.Context, id uint) (*types.ConstructionSector, error)
	GetByName(dbc dbctx.Context, constructionID uint, name string) (*types.ConstructionSector, error)
	List(dbc dbctx.Context, constructionID *uint) ([]types.ConstructionSector, error)
}

type constructionSectorRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewConstructionSectorRepo(db *gorm.DB, baseLog *logger.Logger) ConstructionSectorRepo {
	repoLog := baseLog.With("repo", "ConstructionSectorRepo")
	return &constructionSectorRepo{db: db, log: repoLog}
}

func (r *constructionSectorRepo) Create(dbc dbctx.Context, s *types.ConstructionSector) error {
	return dbc.DB(r.db).Create(s).Error
}

func (r *constructionSectorRepo) Update(dbc dbctx.Context, s *types.ConstructionSector) error {
	return dbc.DB(r.db).Omit("Construction").Save(s).Error
}

func (r *constructionSectorRepo) Delete(dbc dbctx.Context, id uint) error {
	res := dbc.DB(r.db).Delete(&types.ConstructionSector{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *constructionSectorRepo) GetByID(dbc dbctx.Context, id uint) (*types.ConstructionSector, error) {
	var s types.ConstructionSector
	if err := dbc.DB(r.db).First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// GetByName looks a sector up by exact name within one construction.
func (r *constructionSectorRepo) GetByName(dbc dbctx.Context, constructionID uint, name string) (*types.ConstructionSector, error) {
	var rows []types.ConstructionSector
	if err := dbc.DB(r.db).
		Where("construction_id = ? AND name = ?", constructionID, name).
		Order("id").Limit(1).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func (r *constructionSectorRepo) List(dbc dbctx.Context, constructionID *uint) ([]types.ConstructionSector, error) {
	q := dbc.DB(r.db)
	if constructionID != nil {
		q = q.Where("construction_id = ?", *constructionID)
	}
	var rows []types.ConstructionSector
	if err := q.Order("name").Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
