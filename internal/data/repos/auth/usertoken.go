package auth

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/RodCinelli/gestao-engparente/internal/domain"
	"github.com/RodCinelli/gestao-engparente/internal/platform/dbctx"
	"github.com/RodCinelli/gestao-engparente/internal/platform/logger"
)

type UserTokenRepo interface {
	Create(dbc dbctx.Context, tokens []*types.UserToken) ([]*types.UserToken, error)
	GetByRefreshToken(dbc dbctx.Context, refreshToken string) (*types.UserToken, error)
	DeleteByIDs(dbc dbctx.Context, ids []uuid.UUID) error
	DeleteByUserIDs(dbc dbctx.Context, userIDs []uint) error
	DeleteExpired(dbc dbctx.Context, now time.Time) (int64, error)
}

type userTokenRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserTokenRepo(db *gorm.DB, baseLog *logger.Logger) UserTokenRepo {
	repoLog := baseLog.With("repo", "UserTokenRepo")
	return &userTokenRepo{db: db, log: repoLog}
}

func (utr *userTokenRepo) Create(dbc dbctx.Context, tokens []*types.UserToken) ([]*types.UserToken, error) {
	if len(tokens) == 0 {
		return []*types.UserToken{}, nil
	}
	if err := dbc.DB(utr.db).Omit("User").Create(&tokens).Error; err != nil {
		return nil, err
	}
	return tokens, nil
}

func (utr *userTokenRepo) GetByRefreshToken(dbc dbctx.Context, refreshToken string) (*types.UserToken, error) {
	var tok types.UserToken
	if err := dbc.DB(utr.db).Where("refresh_token = ?", refreshToken).First(&tok).Error; err != nil {
		return nil, err
	}
	return &tok, nil
}

func (utr *userTokenRepo) DeleteByIDs(dbc dbctx.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return dbc.DB(utr.db).Unscoped().Where("id IN ?", ids).Delete(&types.UserToken{}).Error
}

func (utr *userTokenRepo) DeleteByUserIDs(dbc dbctx.Context, userIDs []uint) error {
	if len(userIDs) == 0 {
		return nil
	}
	return dbc.DB(utr.db).Unscoped().Where("user_id IN ?", userIDs).Delete(&types.UserToken{}).Error
}

func (utr *userTokenRepo) DeleteExpired(dbc dbctx.Context, now time.Time) (int64, error) {
	res := dbc.DB(utr.db).Unscoped().Where("expires_at <= ?", now).Delete(&types.UserToken{})
	return res.RowsAffected, res.Error
}
