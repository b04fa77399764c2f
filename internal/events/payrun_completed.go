package events

import "time"

const PayrunCompletedTopic = "payroll.payrun.completed.v1"

type PayrunCompletedEvent struct {
	EventType     string    `json:"event_type"`
	PayrunID      string    `json:"payrun_id"`
	PeriodStart   string    `json:"period_start"`
	PeriodEnd     string    `json:"period_end"`
	PayslipsCount int       `json:"payslips_count"`
	NetTotal      float64   `json:"net_total"`
	OccurredAt    time.Time `json:"occurred_at"`
}
