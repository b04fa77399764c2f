package employee

type BankDetails struct {
	BSB     *string `json:"bsb"`
	Account *string `json:"account"`
}

type CreateEmployeeRequest struct {
	FirstName      string       `json:"firstName" binding:"required"`
	LastName       string       `json:"lastName" binding:"required"`
	Type           string       `json:"type" binding:"required,oneof=hourly"`
	BaseHourlyRate float64      `json:"baseHourlyRate" binding:"gte=0"`
	SuperRate      float64      `json:"superRate" binding:"gte=0,lte=100"`
	Bank           *BankDetails `json:"bank"`
}

type UpdateEmployeeRequest struct {
	FirstName      *string      `json:"firstName"`
	LastName       *string      `json:"lastName"`
	Type           *string      `json:"type" binding:"omitempty,oneof=hourly"`
	BaseHourlyRate *float64     `json:"baseHourlyRate" binding:"omitempty,gte=0"`
	SuperRate      *float64     `json:"superRate" binding:"omitempty,gte=0,lte=100"`
	Bank           *BankDetails `json:"bank"`
}

type EmployeeResponse struct {
	ID             string       `json:"id"`
	FirstName      string       `json:"firstName"`
	LastName       string       `json:"lastName"`
	Type           string       `json:"type"`
	BaseHourlyRate float64      `json:"baseHourlyRate"`
	SuperRate      float64      `json:"superRate"`
	Bank           *BankDetails `json:"bank"`
}
