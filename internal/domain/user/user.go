package user

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Username  string `gorm:"uniqueIndex;not null;size:150;column:username" json:"username"`
	Email     string `gorm:"column:email;size:254" json:"email"`
	Password  string `gorm:"not null;column:password" json:"-"`
	FirstName string `gorm:"column:first_name;size:150" json:"first_name"`
	LastName  string `gorm:"column:last_name;size:150" json:"last_name"`
	IsStaff   bool   `gorm:"column:is_staff;not null;default:false" json:"is_staff"`

	LastLogin *time.Time     `gorm:"column:last_login" json:"last_login"`
	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string { return "app_user" }
