package employee

import (
	"context"
	"encoding/json"
	"time"

	employeeerrors "mini-payrun/internal/employee/errors"
	"mini-payrun/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const employeeListCacheKey = "employees:all"

type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
}

type service struct {
	db     *gorm.DB
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

// validateBank enforces the all-or-nothing bank rule: a bsb without an
// account (or the reverse) is rejected.
func validateBank(bank *BankDetails) error {
	if bank == nil {
		return nil
	}
	hasBSB := bank.BSB != nil && *bank.BSB != ""
	hasAccount := bank.Account != nil && *bank.Account != ""
	if hasBSB != hasAccount {
		return employeeerrors.ErrBankDetailsIncomplete
	}
	return nil
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("type", req.Type),
	)

	if err := validateBank(req.Bank); err != nil {
		return EmployeeResponse{}, err
	}

	empl := &Employee{
		ID:             uuid.New(),
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Type:           req.Type,
		BaseHourlyRate: req.BaseHourlyRate,
		SuperRate:      req.SuperRate,
	}
	if req.Bank != nil && req.Bank.BSB != nil && *req.Bank.BSB != "" {
		empl.BankBSB = req.Bank.BSB
		empl.BankAccount = req.Bank.Account
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		s.logger.Error("create employee begin tx failed", zap.String("request_id", rid), zap.Error(tx.Error))
		return EmployeeResponse{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Create(ctx, empl); err != nil {
		s.logger.Error("create employee persist failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return EmployeeResponse{}, err
	}

	s.invalidateListCache(ctx)

	return mapToResponse(*empl), nil
}

func (s *service) GetAll(ctx context.Context) ([]EmployeeResponse, error) {
	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, employeeListCacheKey).Result()
		if err == nil {
			var resp []EmployeeResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return resp, nil
			}
		}
	}

	// singleflight collapses concurrent cache misses into one DB query
	v, err, _ := s.sf.Do(employeeListCacheKey, func() (interface{}, error) {
		rows, err := s.repo.FindAll(ctx)
		if err != nil {
			return nil, err
		}

		resp := mapToListResponse(rows)

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, employeeListCacheKey, jsonData, 30*time.Minute)
			}
		}

		return resp, nil
	})

	if err != nil {
		return nil, err
	}

	return v.([]EmployeeResponse), nil
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	empl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*empl), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}
	if err := validateBank(req.Bank); err != nil {
		return EmployeeResponse{}, err
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return EmployeeResponse{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	empl, err := qtx.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if req.FirstName != nil {
		empl.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		empl.LastName = *req.LastName
	}
	if req.Type != nil {
		empl.Type = *req.Type
	}
	if req.BaseHourlyRate != nil {
		empl.BaseHourlyRate = *req.BaseHourlyRate
	}
	if req.SuperRate != nil {
		empl.SuperRate = *req.SuperRate
	}
	if req.Bank != nil {
		if req.Bank.BSB != nil && *req.Bank.BSB != "" {
			empl.BankBSB = req.Bank.BSB
			empl.BankAccount = req.Bank.Account
		} else {
			empl.BankBSB = nil
			empl.BankAccount = nil
		}
	}

	if err := qtx.Update(ctx, empl); err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return EmployeeResponse{}, err
	}

	s.invalidateListCache(ctx)

	return mapToResponse(*empl), nil
}

func (s *service) invalidateListCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, employeeListCacheKey).Err(); err != nil {
		s.logger.Warn("invalidate employee cache failed",
			zap.String("key", employeeListCacheKey),
			zap.Error(err),
		)
	}
}

func mapToResponse(e Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:             e.ID.String(),
		FirstName:      e.FirstName,
		LastName:       e.LastName,
		Type:           e.Type,
		BaseHourlyRate: e.BaseHourlyRate,
		SuperRate:      e.SuperRate,
	}
	if e.BankBSB != nil && e.BankAccount != nil {
		resp.Bank = &BankDetails{BSB: e.BankBSB, Account: e.BankAccount}
	}
	return resp
}

func mapToListResponse(rows []Employee) []EmployeeResponse {
	resp := make([]EmployeeResponse, len(rows))
	for i, row := range rows {
		resp[i] = mapToResponse(row)
	}
	return resp
}
