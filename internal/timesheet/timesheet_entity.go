package timesheet

import (
	"time"

	"github.com/google/uuid"
)

// Timesheet is unique per (employee_id, period_start, period_end).
// Resubmission for the same key replaces the stored row and its entries.
type Timesheet struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	EmployeeID  uuid.UUID `gorm:"column:employee_id;type:uuid;not null;index:idx_timesheet_period,unique"`
	PeriodStart time.Time `gorm:"column:period_start;type:date;not null;index:idx_timesheet_period,unique"`
	PeriodEnd   time.Time `gorm:"column:period_end;type:date;not null;index:idx_timesheet_period,unique"`
	Allowances  float64   `gorm:"column:allowances;not null;default:0"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`

	Entries []TimesheetEntry `gorm:"foreignKey:TimesheetID;constraint:OnDelete:CASCADE"`
}

func (Timesheet) TableName() string {
	return "timesheets"
}

type TimesheetEntry struct {
	ID              uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	TimesheetID     uuid.UUID `gorm:"column:timesheet_id;type:uuid;not null;index"`
	Date            time.Time `gorm:"column:date;type:date;not null"`
	Start           string    `gorm:"column:start;type:varchar(5);not null"`
	End             string    `gorm:"column:end;type:varchar(5);not null"`
	UnpaidBreakMins int       `gorm:"column:unpaid_break_mins;not null;default:0"`
	CreatedAt       time.Time `gorm:"column:created_at"`
}

func (TimesheetEntry) TableName() string {
	return "timesheet_entries"
}
