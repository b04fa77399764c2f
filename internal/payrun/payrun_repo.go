package payrun

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateRequest(ctx context.Context, req *PayrunRequest) error
	CreatePayrun(ctx context.Context, run *Payrun) error
	CreatePayslips(ctx context.Context, slips []Payslip) error
	FindAll(ctx context.Context) ([]Payrun, error)
	FindByID(ctx context.Context, id string) (*Payrun, error)
	FindRequestByID(ctx context.Context, id string) (*PayrunRequest, error)
	FindEmployeesByIDs(ctx context.Context, ids []string) ([]EmployeeRef, error)
	FindPayslip(ctx context.Context, employeeID, payrunID string) (*Payslip, error)
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

func (r *repository) CreateRequest(ctx context.Context, req *PayrunRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *repository) CreatePayrun(ctx context.Context, run *Payrun) error {
	return r.db.WithContext(ctx).Create(run).Error
}

// CreatePayslips bulk-inserts the whole batch in one statement.
func (r *repository) CreatePayslips(ctx context.Context, slips []Payslip) error {
	if len(slips) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&slips).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Payrun, error) {
	var runs []Payrun
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&runs).Error
	return runs, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Payrun, error) {
	var run Payrun
	err := r.db.WithContext(ctx).
		First(&run, "id = ?", id).Error
	return &run, err
}

func (r *repository) FindRequestByID(ctx context.Context, id string) (*PayrunRequest, error) {
	var req PayrunRequest
	err := r.db.WithContext(ctx).
		First(&req, "id = ?", id).Error
	return &req, err
}

func (r *repository) FindEmployeesByIDs(ctx context.Context, ids []string) ([]EmployeeRef, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var refs []EmployeeRef
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Where("deleted_at IS NULL").
		Find(&refs).Error
	return refs, err
}

func (r *repository) FindPayslip(ctx context.Context, employeeID, payrunID string) (*Payslip, error) {
	var slip Payslip
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("payrun_id = ?", payrunID).
		First(&slip).Error
	if err != nil {
		return nil, err
	}
	return &slip, nil
}
