package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const TypeHourly = "hourly"

type Employee struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	FirstName      string    `gorm:"column:first_name;type:varchar(120);not null"`
	LastName       string    `gorm:"column:last_name;type:varchar(120);not null"`
	Type           string    `gorm:"column:type;type:varchar(20);not null;default:hourly;index"`
	BaseHourlyRate float64   `gorm:"column:base_hourly_rate;not null;default:0"`
	SuperRate      float64   `gorm:"column:super_rate;not null;default:0"`

	// Bank details are optional but atomic: both columns set or both null.
	BankBSB     *string `gorm:"column:bank_bsb;type:varchar(20)"`
	BankAccount *string `gorm:"column:bank_account;type:varchar(30)"`

	CreatedAt time.Time      `gorm:"column:created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Employee) TableName() string {
	return "employees"
}
