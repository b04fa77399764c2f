package timesheet

import (
	"context"
	"time"

	"mini-payrun/internal/shared/contextutil"
	timesheeterrors "mini-payrun/internal/timesheet/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	Submit(ctx context.Context, req SubmitTimesheetRequest) (TimesheetResponse, error)
}

type service struct {
	db     *gorm.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("timesheet.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("timesheet.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

// Submit stores one timesheet per (employee, period) key. A resubmission for
// the same key replaces the previous header and entries atomically, so a
// later pay-run can never double-count the period.
func (s *service) Submit(ctx context.Context, req SubmitTimesheetRequest) (TimesheetResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return TimesheetResponse{}, timesheeterrors.ErrEmployeeNotFound
	}

	periodStart, err := parseDate(req.PeriodStart)
	if err != nil {
		return TimesheetResponse{}, err
	}
	periodEnd, err := parseDate(req.PeriodEnd)
	if err != nil {
		return TimesheetResponse{}, err
	}
	if !periodStart.Before(periodEnd) {
		return TimesheetResponse{}, timesheeterrors.ErrInvalidPeriodOrder
	}

	entries := make([]TimesheetEntry, 0, len(req.Entries))
	for _, e := range req.Entries {
		date, err := parseDate(e.Date)
		if err != nil {
			return TimesheetResponse{}, err
		}
		if _, _, err := ParseClock(e.Start); err != nil {
			return TimesheetResponse{}, err
		}
		if _, _, err := ParseClock(e.End); err != nil {
			return TimesheetResponse{}, err
		}
		// A negative worked duration (end before start, or an oversized
		// break) is deliberately not rejected here; the aggregation step
		// passes it through as-is.
		entries = append(entries, TimesheetEntry{
			ID:              uuid.New(),
			Date:            date,
			Start:           e.Start,
			End:             e.End,
			UnpaidBreakMins: e.UnpaidBreakMins,
		})
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return TimesheetResponse{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	exists, err := qtx.EmployeeExists(ctx, req.EmployeeID)
	if err != nil {
		return TimesheetResponse{}, err
	}
	if !exists {
		return TimesheetResponse{}, timesheeterrors.ErrEmployeeNotFound
	}

	ts := &Timesheet{
		ID:          uuid.New(),
		EmployeeID:  employeeID,
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
		Allowances:  req.Allowances,
	}

	keptID, err := qtx.Upsert(ctx, ts)
	if err != nil {
		s.logger.Error("timesheet upsert failed",
			zap.String("request_id", rid),
			zap.String("employee_id", req.EmployeeID),
			zap.Error(err),
		)
		return TimesheetResponse{}, mapRepositoryError(err)
	}
	ts.ID = keptID

	for i := range entries {
		entries[i].TimesheetID = keptID
	}
	if err := qtx.ReplaceEntries(ctx, keptID, entries); err != nil {
		s.logger.Error("timesheet entries replace failed",
			zap.String("request_id", rid),
			zap.String("timesheet_id", keptID.String()),
			zap.Error(err),
		)
		return TimesheetResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return TimesheetResponse{}, err
	}

	ts.Entries = entries
	return mapToResponse(*ts), nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, timesheeterrors.ErrInvalidDateFormat
	}
	return t, nil
}

// ParseClock splits an "HH:MM" time of day into hour and minute.
func ParseClock(v string) (int, int, error) {
	t, err := time.Parse("15:04", v)
	if err != nil {
		return 0, 0, timesheeterrors.ErrInvalidClockFormat
	}
	return t.Hour(), t.Minute(), nil
}

func mapToResponse(ts Timesheet) TimesheetResponse {
	entries := make([]EntryResponse, len(ts.Entries))
	for i, e := range ts.Entries {
		entries[i] = EntryResponse{
			ID:              e.ID.String(),
			Date:            e.Date.Format("2006-01-02"),
			Start:           e.Start,
			End:             e.End,
			UnpaidBreakMins: e.UnpaidBreakMins,
		}
	}

	return TimesheetResponse{
		ID:          ts.ID.String(),
		EmployeeID:  ts.EmployeeID.String(),
		PeriodStart: ts.PeriodStart.Format("2006-01-02"),
		PeriodEnd:   ts.PeriodEnd.Format("2006-01-02"),
		Allowances:  ts.Allowances,
		Entries:     entries,
	}
}
