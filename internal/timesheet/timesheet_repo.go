package timesheet

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	// Upsert writes the timesheet header for its composite key in a single
	// statement, returning the id of the surviving row. A resubmission keeps
	// the original row id so the key is never observably absent.
	Upsert(ctx context.Context, ts *Timesheet) (uuid.UUID, error)
	ReplaceEntries(ctx context.Context, timesheetID uuid.UUID, entries []TimesheetEntry) error
	EmployeeExists(ctx context.Context, employeeID string) (bool, error)
	FindInPeriod(ctx context.Context, start, end time.Time, employeeType *string) ([]Timesheet, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) Upsert(ctx context.Context, ts *Timesheet) (uuid.UUID, error) {
	var keptID uuid.UUID

	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO timesheets (id, employee_id, period_start, period_end, allowances, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, now(), now())
		ON CONFLICT (employee_id, period_start, period_end) DO UPDATE
		SET allowances = EXCLUDED.allowances, updated_at = now()
		RETURNING id
	`, ts.ID, ts.EmployeeID, ts.PeriodStart, ts.PeriodEnd, ts.Allowances).Scan(&keptID).Error

	if err != nil {
		return uuid.Nil, err
	}

	return keptID, nil
}

func (r *repository) ReplaceEntries(ctx context.Context, timesheetID uuid.UUID, entries []TimesheetEntry) error {
	db := r.db.WithContext(ctx)

	if err := db.Where("timesheet_id = ?", timesheetID).Delete(&TimesheetEntry{}).Error; err != nil {
		return err
	}

	if len(entries) == 0 {
		return nil
	}

	return db.Create(&entries).Error
}

func (r *repository) EmployeeExists(ctx context.Context, employeeID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("employees").
		Where("id = ?", employeeID).
		Where("deleted_at IS NULL").
		Count(&count).Error
	return count > 0, err
}

func (r *repository) FindInPeriod(ctx context.Context, start, end time.Time, employeeType *string) ([]Timesheet, error) {
	db := r.db.WithContext(ctx).
		Preload("Entries").
		Where("period_start >= ?", start).
		Where("period_end <= ?", end)

	if employeeType != nil {
		db = db.Joins("JOIN employees ON employees.id = timesheets.employee_id").
			Where("employees.type = ?", *employeeType).
			Where("employees.deleted_at IS NULL")
	}

	var rows []Timesheet
	err := db.Order("period_start ASC").Find(&rows).Error
	return rows, err
}
