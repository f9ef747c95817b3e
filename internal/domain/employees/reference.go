package employees

import (
	"time"

	"github.com/RodCinelli/gestao-engparente/internal/domain/dates"
)

type Department struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"column:name;size:100;not null;index" json:"name"`
	Description string    `gorm:"column:description;type:text" json:"description"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}

func (Department) TableName() string { return "department" }

// Construction is a building site employees can be allocated to.
type Construction struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	Name        string      `gorm:"column:name;size:100;not null;index" json:"name"`
	Address     string      `gorm:"column:address;size:255" json:"address"`
	StartDate   dates.Date  `gorm:"column:start_date;not null" json:"start_date"`
	EndDate     *dates.Date `gorm:"column:end_date" json:"end_date"`
	IsActive    bool        `gorm:"column:is_active;not null;default:true;index" json:"is_active"`
	Description string      `gorm:"column:description;type:text" json:"description"`
	CreatedAt   time.Time   `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time   `gorm:"not null" json:"updated_at"`
}

func (Construction) TableName() string { return "construction" }

type ConstructionSector struct {
	ID             uint          `gorm:"primaryKey" json:"id"`
	Name           string        `gorm:"column:name;size:100;not null;index" json:"name"`
	ConstructionID uint          `gorm:"column:construction_id;not null;index" json:"construction"`
	Construction   *Construction `gorm:"foreignKey:ConstructionID;constraint:OnDelete:CASCADE" json:"-"`
	Description    string        `gorm:"column:description;type:text" json:"description"`
	CreatedAt      time.Time     `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time     `gorm:"not null" json:"updated_at"`
}

func (ConstructionSector) TableName() string { return "construction_sector" }
