package payrun

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// UUIDList persists a resolved employee-id list as a jsonb column.
type UUIDList []string

func (l UUIDList) Value() (driver.Value, error) {
	if l == nil {
		l = UUIDList{}
	}
	return json.Marshal(l)
}

func (l *UUIDList) Scan(src any) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	case nil:
		*l = nil
		return nil
	default:
		return fmt.Errorf("unsupported uuid list source type %T", src)
	}
}

// PayrunRequest records what a batch was asked to cover and which employees
// ended up included. Immutable once created; one request maps to one payrun.
type PayrunRequest struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	PeriodStart time.Time `gorm:"column:period_start;type:date;not null"`
	PeriodEnd   time.Time `gorm:"column:period_end;type:date;not null"`
	EmployeeIDs UUIDList  `gorm:"column:employee_ids;type:jsonb;not null"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (PayrunRequest) TableName() string {
	return "payrun_requests"
}

// Payrun carries the aggregated totals, each rounded to two decimals once at
// the end of accumulation.
type Payrun struct {
	ID              uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	PayrunRequestID uuid.UUID `gorm:"column:payrun_request_id;type:uuid;not null;index"`
	PeriodStart     time.Time `gorm:"column:period_start;type:date;not null"`
	PeriodEnd       time.Time `gorm:"column:period_end;type:date;not null"`
	GrossTotal      float64   `gorm:"column:gross_total;not null"`
	TaxTotal        float64   `gorm:"column:tax_total;not null"`
	SuperTotal      float64   `gorm:"column:super_total;not null"`
	NetTotal        float64   `gorm:"column:net_total;not null"`
	CreatedAt       time.Time `gorm:"column:created_at"`
}

func (Payrun) TableName() string {
	return "payruns"
}

type Payslip struct {
	ID            uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	PayrunID      uuid.UUID `gorm:"column:payrun_id;type:uuid;not null;index"`
	EmployeeID    uuid.UUID `gorm:"column:employee_id;type:uuid;not null;index"`
	NormalHours   float64   `gorm:"column:normal_hours;not null"`
	OvertimeHours float64   `gorm:"column:overtime_hours;not null"`
	Gross         float64   `gorm:"column:gross;not null"`
	Tax           float64   `gorm:"column:tax;not null"`
	Super         float64   `gorm:"column:super;not null"`
	Net           float64   `gorm:"column:net;not null"`
	CreatedAt     time.Time `gorm:"column:created_at"`
}

func (Payslip) TableName() string {
	return "payslips"
}

// EmployeeRef is a read-only projection of the employees table for payrun
// detail responses. The core never writes employee records.
type EmployeeRef struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	FirstName      string    `gorm:"column:first_name"`
	LastName       string    `gorm:"column:last_name"`
	Type           string    `gorm:"column:type"`
	BaseHourlyRate float64   `gorm:"column:base_hourly_rate"`
	SuperRate      float64   `gorm:"column:super_rate"`
	BankBSB        *string   `gorm:"column:bank_bsb"`
	BankAccount    *string   `gorm:"column:bank_account"`
}

func (EmployeeRef) TableName() string {
	return "employees"
}
