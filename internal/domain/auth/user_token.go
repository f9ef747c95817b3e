package auth

import (
	"time"

	"github.com/RodCinelli/gestao-engparente/internal/domain/user"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserToken is an issued refresh token. Deleting the row revokes it.
type UserToken struct {
	ID           uuid.UUID      `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID       uint           `gorm:"index;not null" json:"user_id"`
	User         *user.User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	RefreshToken string         `gorm:"uniqueIndex;not null;size:64;column:refresh_token" json:"-"`
	ExpiresAt    time.Time      `gorm:"column:expires_at;not null" json:"expires_at"`
	CreatedAt    time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (UserToken) TableName() string { return "user_token" }

func (t *UserToken) BeforeCreate(*gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

func (t *UserToken) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}
