package timesheet

type EntryRequest struct {
	Date            string `json:"date" binding:"required"`
	Start           string `json:"start" binding:"required"`
	End             string `json:"end" binding:"required"`
	UnpaidBreakMins int    `json:"unpaidBreakMins" binding:"gte=0"`
}

type SubmitTimesheetRequest struct {
	EmployeeID  string         `json:"employeeId" binding:"required,uuid4"`
	PeriodStart string         `json:"periodStart" binding:"required"`
	PeriodEnd   string         `json:"periodEnd" binding:"required"`
	Entries     []EntryRequest `json:"entries" binding:"required,dive"`
	Allowances  float64        `json:"allowances"`
}

type EntryResponse struct {
	ID              string `json:"id"`
	Date            string `json:"date"`
	Start           string `json:"start"`
	End             string `json:"end"`
	UnpaidBreakMins int    `json:"unpaidBreakMins"`
}

type TimesheetResponse struct {
	ID          string          `json:"id"`
	EmployeeID  string          `json:"employeeId"`
	PeriodStart string          `json:"periodStart"`
	PeriodEnd   string          `json:"periodEnd"`
	Allowances  float64         `json:"allowances"`
	Entries     []EntryResponse `json:"entries"`
}
