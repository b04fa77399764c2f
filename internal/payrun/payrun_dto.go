package payrun

const (
	SubsetAll    = "all"
	SubsetHourly = "hourly"
)

type RunPayrunRequest struct {
	PeriodStart    string `json:"periodStart" binding:"required"`
	PeriodEnd      string `json:"periodEnd" binding:"required"`
	EmployeeSubset string `json:"employeeSubset" binding:"required,oneof=all hourly"`
}

type Totals struct {
	Gross float64 `json:"gross"`
	Tax   float64 `json:"tax"`
	Super float64 `json:"super"`
	Net   float64 `json:"net"`
}

type RunPayrunResponse struct {
	ID            string `json:"id"`
	PeriodStart   string `json:"periodStart"`
	PeriodEnd     string `json:"periodEnd"`
	Totals        Totals `json:"totals"`
	PayslipsCount int    `json:"payslipsCount"`
}

type PayrunResponse struct {
	ID              string `json:"id"`
	PayrunRequestID string `json:"payrunRequestId"`
	PeriodStart     string `json:"periodStart"`
	PeriodEnd       string `json:"periodEnd"`
	Totals          Totals `json:"totals"`
}

type PayrunEmployee struct {
	ID        string        `json:"id"`
	FirstName string        `json:"firstName"`
	LastName  string        `json:"lastName"`
	Bank      *BankResponse `json:"bank"`
}

type BankResponse struct {
	BSB     string `json:"bsb"`
	Account string `json:"account"`
}

type PayrunDetailResponse struct {
	PeriodStart string           `json:"periodStart"`
	PeriodEnd   string           `json:"periodEnd"`
	Employees   []PayrunEmployee `json:"employees"`
}

type PayslipResponse struct {
	ID            string  `json:"id"`
	PayrunID      string  `json:"payrunId"`
	EmployeeID    string  `json:"employeeId"`
	NormalHours   float64 `json:"normalHours"`
	OvertimeHours float64 `json:"overtimeHours"`
	Gross         float64 `json:"gross"`
	Tax           float64 `json:"tax"`
	Super         float64 `json:"super"`
	Net           float64 `json:"net"`
}
