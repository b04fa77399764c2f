package payrun_test

import (
	"testing"

	"mini-payrun/internal/payrun"
	"mini-payrun/internal/timesheet"

	"github.com/stretchr/testify/assert"
)

func TestCalcHours(t *testing.T) {
	t.Run("sums entries net of breaks", func(t *testing.T) {
		entries := []timesheet.TimesheetEntry{
			{Start: "09:00", End: "17:00", UnpaidBreakMins: 30},
			{Start: "10:00", End: "14:00", UnpaidBreakMins: 0},
		}
		assert.Equal(t, "11.50", payrun.CalcHours(entries))
	})

	t.Run("empty entries", func(t *testing.T) {
		assert.Equal(t, "0.00", payrun.CalcHours(nil))
	})

	t.Run("unparseable clocks are skipped", func(t *testing.T) {
		entries := []timesheet.TimesheetEntry{
			{Start: "bogus", End: "17:00"},
			{Start: "09:00", End: "10:00"},
		}
		assert.Equal(t, "1.00", payrun.CalcHours(entries))
	})

	t.Run("end before start contributes a negative duration", func(t *testing.T) {
		entries := []timesheet.TimesheetEntry{
			{Start: "17:00", End: "09:00", UnpaidBreakMins: 0},
		}
		assert.Equal(t, "-8.00", payrun.CalcHours(entries))
	})
}

func TestCalcOvertime(t *testing.T) {
	t.Run("splits at the full-time mark", func(t *testing.T) {
		normal, overtime := payrun.CalcOvertime("45")
		assert.Equal(t, 38.0, normal)
		assert.Equal(t, 7.0, overtime)
	})

	t.Run("under the mark is all normal", func(t *testing.T) {
		normal, overtime := payrun.CalcOvertime("11.50")
		assert.Equal(t, 11.5, normal)
		assert.Equal(t, 0.0, overtime)
	})

	t.Run("exactly at the mark", func(t *testing.T) {
		normal, overtime := payrun.CalcOvertime("38")
		assert.Equal(t, 38.0, normal)
		assert.Equal(t, 0.0, overtime)
	})
}

func TestCalcTax(t *testing.T) {
	t.Run("bracket values", func(t *testing.T) {
		assert.Equal(t, 0.0, payrun.CalcTax(0))
		assert.Equal(t, 0.0, payrun.CalcTax(370))
		assert.InDelta(t, 72.0, payrun.CalcTax(1000), 1e-9)
		assert.InDelta(t, 53.0, payrun.CalcTax(900), 1e-9)
		assert.InDelta(t, 167.0, payrun.CalcTax(1500), 1e-9)
		assert.InDelta(t, 654.5, payrun.CalcTax(3000), 1e-9)
		assert.InDelta(t, 1394.5, payrun.CalcTax(5000), 1e-9)
		assert.InDelta(t, 1394.5+1000*0.45, payrun.CalcTax(6000), 1e-9)
	})

	t.Run("negative gross owes nothing", func(t *testing.T) {
		assert.Equal(t, 0.0, payrun.CalcTax(-250))
	})

	t.Run("continuous at bracket boundaries", func(t *testing.T) {
		for _, edge := range []float64{370, 900, 1500, 3000, 5000} {
			below := payrun.CalcTax(edge - 1e-6)
			at := payrun.CalcTax(edge)
			assert.InDelta(t, at, below, 1e-5, "boundary %v", edge)
		}
	})

	t.Run("monotonically non-decreasing", func(t *testing.T) {
		prev := payrun.CalcTax(0)
		for gross := 10.0; gross <= 10000; gross += 10 {
			cur := payrun.CalcTax(gross)
			assert.GreaterOrEqual(t, cur, prev, "gross %v", gross)
			prev = cur
		}
	})
}

func TestCalcPay(t *testing.T) {
	t.Run("overtime week with allowances and super", func(t *testing.T) {
		pay := payrun.CalcPay("45", 25, 50, 11.5)

		assert.Equal(t, 38.0, pay.Normal)
		assert.Equal(t, 7.0, pay.Overtime)
		assert.InDelta(t, 1262.5, pay.Gross, 1e-9)
		assert.InDelta(t, 1262.5*0.115, pay.Super, 1e-9)
		// Super is reported alongside, never deducted.
		assert.InDelta(t, pay.Gross, pay.Net+pay.Tax, 1e-9)
	})

	t.Run("zero hours yields allowances only", func(t *testing.T) {
		pay := payrun.CalcPay("0.00", 25, 100, 10)

		assert.Equal(t, 0.0, pay.Normal)
		assert.Equal(t, 0.0, pay.Overtime)
		assert.InDelta(t, 100.0, pay.Gross, 1e-9)
		assert.InDelta(t, 0.0, pay.Tax, 1e-9)
		assert.InDelta(t, 10.0, pay.Super, 1e-9)
		assert.InDelta(t, 100.0, pay.Net, 1e-9)
	})
}
