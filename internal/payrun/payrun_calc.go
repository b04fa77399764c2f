package payrun

import (
	"math"
	"strconv"

	"mini-payrun/internal/timesheet"
)

// fullTimeWeeklyHours is the boundary between normal and overtime pay.
const fullTimeWeeklyHours = 38.0

// overtimeMultiplier applies to every hour beyond the full-time threshold.
const overtimeMultiplier = 1.5

// CalcHours sums the worked hours of a period's entries and fixes the result
// to a two-decimal string. Downstream math parses this string back, so any
// sub-cent precision is deliberately lost at this boundary. An entry whose
// end precedes its start (or whose break exceeds the span) contributes a
// negative duration as-is; validation of that case is left to the caller.
func CalcHours(entries []timesheet.TimesheetEntry) string {
	total := 0.0
	for _, e := range entries {
		sh, sm, err := timesheet.ParseClock(e.Start)
		if err != nil {
			continue
		}
		eh, em, err := timesheet.ParseClock(e.End)
		if err != nil {
			continue
		}
		mins := (eh*60 + em) - (sh*60 + sm) - e.UnpaidBreakMins
		total += float64(mins) / 60
	}
	return strconv.FormatFloat(total, 'f', 2, 64)
}

// CalcOvertime splits total hours at the 38-hour full-time mark.
func CalcOvertime(hours string) (normal, overtime float64) {
	h, _ := strconv.ParseFloat(hours, 64)
	normal = math.Min(h, fullTimeWeeklyHours)
	overtime = math.Max(h-fullTimeWeeklyHours, 0)
	return normal, overtime
}

// CalcTax applies the fixed progressive bracket table. The bases (53, 167,
// 654.5, 1394.5) are the cumulative tax at each bracket's lower edge.
// Gross at or below the tax-free threshold, including any negative gross,
// owes nothing.
func CalcTax(gross float64) float64 {
	switch {
	case gross <= 370:
		return 0
	case gross <= 900:
		return (gross - 370) * 0.10
	case gross <= 1500:
		return 53 + (gross-900)*0.19
	case gross <= 3000:
		return 167 + (gross-1500)*0.325
	case gross <= 5000:
		return 654.5 + (gross-3000)*0.37
	default:
		return 1394.5 + (gross-5000)*0.45
	}
}

// PayBreakdown holds one employee-period's computed pay. Currency fields are
// exact; rounding happens once, at batch aggregation.
type PayBreakdown struct {
	Normal   float64
	Overtime float64
	Gross    float64
	Tax      float64
	Super    float64
	Net      float64
}

// CalcPay combines hours, rate, allowances and the superannuation rate.
// Super is computed on gross but not deducted from net.
func CalcPay(hours string, baseRate, allowances, superRate float64) PayBreakdown {
	normal, overtime := CalcOvertime(hours)

	gross := normal*baseRate + overtime*baseRate*overtimeMultiplier + allowances
	tax := CalcTax(gross)
	superAmt := gross * superRate / 100
	net := gross - tax

	return PayBreakdown{
		Normal:   normal,
		Overtime: overtime,
		Gross:    gross,
		Tax:      tax,
		Super:    superAmt,
		Net:      net,
	}
}

// round2 rounds half away from zero to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
