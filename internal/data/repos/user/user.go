package user

import (
	"time"

	"gorm.io/gorm"

	types "github.com/RodCinelli/gestao-engparente/internal/domain"
	"github.com/RodCinelli/gestao-engparente/internal/platform/dbctx"
	"github.com/RodCinelli/gestao-engparente/internal/platform/logger"
)

type UserRepo interface {
	Create(dbc dbctx.Context, u *types.User) error
	GetByID(dbc dbctx.Context, id uint) (*types.User, error)
	GetByUsername(dbc dbctx.Context, username string) (*types.User, error)
	UsernameExists(dbc dbctx.Context, username string) (bool, error)
	TouchLastLogin(dbc dbctx.Context, id uint, at time.Time) error
	List(dbc dbctx.Context) ([]types.User, error)
}

type userRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	repoLog := baseLog.With("repo", "UserRepo")
	return &userRepo{db: db, log: repoLog}
}

func (r *userRepo) Create(dbc dbctx.Context, u *types.User) error {
	return dbc.DB(r.db).Create(u).Error
}

func (r *userRepo) GetByID(dbc dbctx.Context, id uint) (*types.User, error) {
	var u types.User
	if err := dbc.DB(r.db).First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) GetByUsername(dbc dbctx.Context, username string) (*types.User, error) {
	var u types.User
	if err := dbc.DB(r.db).Where("username = ?", username).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) UsernameExists(dbc dbctx.Context, username string) (bool, error) {
	var n int64
	if err := dbc.DB(r.db).Model(&types.User{}).Where("username = ?", username).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *userRepo) TouchLastLogin(dbc dbctx.Context, id uint, at time.Time) error {
	return dbc.DB(r.db).Model(&types.User{}).Where("id = ?", id).UpdateColumn("last_login", at).Error
}

func (r *userRepo) List(dbc dbctx.Context) ([]types.User, error) {
	var rows []types.User
	if err := dbc.DB(r.db).Order("username").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
