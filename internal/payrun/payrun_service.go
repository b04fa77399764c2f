package payrun

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"mini-payrun/internal/events"
	"mini-payrun/internal/messaging/kafka"
	payrunerrors "mini-payrun/internal/payrun/errors"
	"mini-payrun/internal/shared/contextutil"
	"mini-payrun/internal/timesheet"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const payrunListCacheKey = "payruns:all"

type Service interface {
	Run(ctx context.Context, req RunPayrunRequest) (RunPayrunResponse, error)
	GetAll(ctx context.Context) ([]PayrunResponse, error)
	GetByID(ctx context.Context, id string) (PayrunDetailResponse, error)
	GetPayslip(ctx context.Context, employeeID, payrunID string) (*PayslipResponse, error)
}

type service struct {
	db     *gorm.DB
	repo   Repository
	tsRepo timesheet.Repository
	outbox kafka.OutboxRepository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, tsRepo timesheet.Repository) Service {
	return NewServiceWithOutbox(db, repo, tsRepo, nil, nil)
}

func NewServiceWithOutbox(
	db *gorm.DB,
	repo Repository,
	tsRepo timesheet.Repository,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("payrun.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payrun.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		tsRepo: tsRepo,
		outbox: outboxRepo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

// Run executes one pay-run batch. The timesheet read and every write share a
// serializable transaction, so a submission racing the batch either lands
// fully before it or fully after it; two overlapping batches cannot both
// commit against the same rows.
func (s *service) Run(ctx context.Context, req RunPayrunRequest) (RunPayrunResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	periodStart, err := parseDate(req.PeriodStart)
	if err != nil {
		return RunPayrunResponse{}, err
	}
	periodEnd, err := parseDate(req.PeriodEnd)
	if err != nil {
		return RunPayrunResponse{}, err
	}
	if !periodStart.Before(periodEnd) {
		return RunPayrunResponse{}, payrunerrors.ErrInvalidDateRange
	}

	var employeeType *string
	switch req.EmployeeSubset {
	case SubsetAll:
		// no filter
	case SubsetHourly:
		t := SubsetHourly
		employeeType = &t
	default:
		return RunPayrunResponse{}, payrunerrors.ErrInvalidSubset
	}

	tx := s.db.WithContext(ctx).Begin(&sql.TxOptions{Isolation: sql.LevelSerializable})
	if tx.Error != nil {
		s.logger.Error("payrun begin tx failed", zap.String("request_id", rid), zap.Error(tx.Error))
		return RunPayrunResponse{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	tsq := s.tsRepo.WithTx(tx)

	sheets, err := tsq.FindInPeriod(ctx, periodStart, periodEnd, employeeType)
	if err != nil {
		s.logger.Error("payrun timesheet selection failed", zap.String("request_id", rid), zap.Error(err))
		return RunPayrunResponse{}, mapRepositoryError(err)
	}

	employeeIDs := make([]string, 0, len(sheets))
	seen := make(map[string]bool, len(sheets))
	for _, ts := range sheets {
		id := ts.EmployeeID.String()
		if !seen[id] {
			seen[id] = true
			employeeIDs = append(employeeIDs, id)
		}
	}

	refs, err := qtx.FindEmployeesByIDs(ctx, employeeIDs)
	if err != nil {
		return RunPayrunResponse{}, mapRepositoryError(err)
	}
	rates := make(map[uuid.UUID]EmployeeRef, len(refs))
	for _, ref := range refs {
		rates[ref.ID] = ref
	}

	payrunID := uuid.New()
	var totals Totals
	payslips := make([]Payslip, 0, len(sheets))

	for _, ts := range sheets {
		ref, ok := rates[ts.EmployeeID]
		if !ok {
			return RunPayrunResponse{}, payrunerrors.ErrEmployeeNotFound
		}

		hours := CalcHours(ts.Entries)
		pay := CalcPay(hours, ref.BaseHourlyRate, ts.Allowances, ref.SuperRate)

		totals.Gross += pay.Gross
		totals.Tax += pay.Tax
		totals.Super += pay.Super
		totals.Net += pay.Net

		payslips = append(payslips, Payslip{
			ID:            uuid.New(),
			PayrunID:      payrunID,
			EmployeeID:    ts.EmployeeID,
			NormalHours:   pay.Normal,
			OvertimeHours: pay.Overtime,
			Gross:         pay.Gross,
			Tax:           pay.Tax,
			Super:         pay.Super,
			Net:           pay.Net,
		})
	}

	// One rounding pass, after accumulation.
	totals = Totals{
		Gross: round2(totals.Gross),
		Tax:   round2(totals.Tax),
		Super: round2(totals.Super),
		Net:   round2(totals.Net),
	}

	if totals.Net <= 0 {
		// Empty-of-effect outcome: nothing is persisted.
		return RunPayrunResponse{}, payrunerrors.ErrNoPayableEntries
	}

	request := &PayrunRequest{
		ID:          uuid.New(),
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
		EmployeeIDs: employeeIDs,
	}
	if err := qtx.CreateRequest(ctx, request); err != nil {
		return RunPayrunResponse{}, mapRepositoryError(err)
	}

	run := &Payrun{
		ID:              payrunID,
		PayrunRequestID: request.ID,
		PeriodStart:     periodStart,
		PeriodEnd:       periodEnd,
		GrossTotal:      totals.Gross,
		TaxTotal:        totals.Tax,
		SuperTotal:      totals.Super,
		NetTotal:        totals.Net,
	}
	if err := qtx.CreatePayrun(ctx, run); err != nil {
		return RunPayrunResponse{}, mapRepositoryError(err)
	}

	if err := qtx.CreatePayslips(ctx, payslips); err != nil {
		return RunPayrunResponse{}, mapRepositoryError(err)
	}

	if s.outbox != nil {
		payload, err := json.Marshal(events.PayrunCompletedEvent{
			EventType:     "payrun.completed",
			PayrunID:      payrunID.String(),
			PeriodStart:   req.PeriodStart,
			PeriodEnd:     req.PeriodEnd,
			PayslipsCount: len(payslips),
			NetTotal:      totals.Net,
			OccurredAt:    time.Now().UTC(),
		})
		if err != nil {
			return RunPayrunResponse{}, err
		}
		if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
			ID:            uuid.New().String(),
			RequestID:     rid,
			AggregateType: "payrun",
			AggregateID:   payrunID.String(),
			EventType:     "payrun.completed",
			Topic:         events.PayrunCompletedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			return RunPayrunResponse{}, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		// Serialization failures surface here under contention.
		return RunPayrunResponse{}, mapRepositoryError(err)
	}

	s.invalidateListCache(ctx)

	s.logger.Info("payrun completed",
		zap.String("request_id", rid),
		zap.String("payrun_id", payrunID.String()),
		zap.Int("payslips", len(payslips)),
		zap.Float64("net_total", totals.Net),
	)

	return RunPayrunResponse{
		ID:            payrunID.String(),
		PeriodStart:   req.PeriodStart,
		PeriodEnd:     req.PeriodEnd,
		Totals:        totals,
		PayslipsCount: len(payslips),
	}, nil
}

func (s *service) GetAll(ctx context.Context) ([]PayrunResponse, error) {
	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, payrunListCacheKey).Result()
		if err == nil {
			var resp []PayrunResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(payrunListCacheKey, func() (interface{}, error) {
		runs, err := s.repo.FindAll(ctx)
		if err != nil {
			return nil, err
		}

		resp := make([]PayrunResponse, len(runs))
		for i, run := range runs {
			resp[i] = mapToResponse(run)
		}

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, payrunListCacheKey, jsonData, 10*time.Minute)
			}
		}

		return resp, nil
	})

	if err != nil {
		return nil, err
	}

	return v.([]PayrunResponse), nil
}

func (s *service) GetByID(ctx context.Context, id string) (PayrunDetailResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return PayrunDetailResponse{}, payrunerrors.ErrPayrunNotFound
	}

	run, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayrunDetailResponse{}, payrunerrors.ErrPayrunNotFound
		}
		return PayrunDetailResponse{}, err
	}

	request, err := s.repo.FindRequestByID(ctx, run.PayrunRequestID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayrunDetailResponse{}, payrunerrors.ErrPayrunNotFound
		}
		return PayrunDetailResponse{}, err
	}

	refs, err := s.repo.FindEmployeesByIDs(ctx, request.EmployeeIDs)
	if err != nil {
		return PayrunDetailResponse{}, err
	}

	byID := make(map[string]EmployeeRef, len(refs))
	for _, ref := range refs {
		byID[ref.ID.String()] = ref
	}

	// Preserve the order the request resolved.
	employees := make([]PayrunEmployee, 0, len(request.EmployeeIDs))
	for _, eid := range request.EmployeeIDs {
		ref, ok := byID[eid]
		if !ok {
			continue
		}
		empl := PayrunEmployee{
			ID:        ref.ID.String(),
			FirstName: ref.FirstName,
			LastName:  ref.LastName,
		}
		if ref.BankBSB != nil && ref.BankAccount != nil {
			empl.Bank = &BankResponse{BSB: *ref.BankBSB, Account: *ref.BankAccount}
		}
		employees = append(employees, empl)
	}

	return PayrunDetailResponse{
		PeriodStart: request.PeriodStart.Format("2006-01-02"),
		PeriodEnd:   request.PeriodEnd.Format("2006-01-02"),
		Employees:   employees,
	}, nil
}

// GetPayslip returns nil without error when no payslip exists for the pair.
func (s *service) GetPayslip(ctx context.Context, employeeID, payrunID string) (*PayslipResponse, error) {
	slip, err := s.repo.FindPayslip(ctx, employeeID, payrunID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &PayslipResponse{
		ID:            slip.ID.String(),
		PayrunID:      slip.PayrunID.String(),
		EmployeeID:    slip.EmployeeID.String(),
		NormalHours:   slip.NormalHours,
		OvertimeHours: slip.OvertimeHours,
		Gross:         slip.Gross,
		Tax:           slip.Tax,
		Super:         slip.Super,
		Net:           slip.Net,
	}, nil
}

func (s *service) invalidateListCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, payrunListCacheKey).Err(); err != nil {
		s.logger.Warn("invalidate payrun cache failed",
			zap.String("key", payrunListCacheKey),
			zap.Error(err),
		)
	}
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, payrunerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapToResponse(run Payrun) PayrunResponse {
	return PayrunResponse{
		ID:              run.ID.String(),
		PayrunRequestID: run.PayrunRequestID.String(),
		PeriodStart:     run.PeriodStart.Format("2006-01-02"),
		PeriodEnd:       run.PeriodEnd.Format("2006-01-02"),
		Totals: Totals{
			Gross: run.GrossTotal,
			Tax:   run.TaxTotal,
			Super: run.SuperTotal,
			Net:   run.NetTotal,
		},
	}
}
