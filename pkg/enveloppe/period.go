package enveloppe

import (
	"fmt"
	"time"
)

// BudgetPeriod identifies one budget instance by calendar month and year
type BudgetPeriod struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

// String formats the period as "YYYY-MM"
func (p BudgetPeriod) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, p.Month)
}

// Previous returns the period immediately before this one
func (p BudgetPeriod) Previous() BudgetPeriod {
	if p.Month == 1 {
		return BudgetPeriod{Month: 12, Year: p.Year - 1}
	}
	return BudgetPeriod{Month: p.Month - 1, Year: p.Year}
}

// Next returns the period immediately after this one
func (p BudgetPeriod) Next() BudgetPeriod {
	if p.Month == 12 {
		return BudgetPeriod{Month: 1, Year: p.Year + 1}
	}
	return BudgetPeriod{Month: p.Month + 1, Year: p.Year}
}

// Time returns the first instant of the period's month in UTC
func (p BudgetPeriod) Time() time.Time {
	return time.Date(p.Year, time.Month(p.Month), 1, 0, 0, 0, 0, time.UTC)
}

// PeriodOf returns the calendar period containing t
func PeriodOf(t time.Time) BudgetPeriod {
	return BudgetPeriod{Month: int(t.Month()), Year: t.Year()}
}

// ResolvePeriod resolves which budget period is active on a given day.
//
// With no pay day configured (payDay <= 1) the active period is simply the
// calendar month of today. With a mid-month pay day, the budget window runs
// from one pay day to the next, and the budget is named after the month that
// holds the majority of the window's days: a pay day on the 15th or earlier
// keeps the name of the month the window starts in, a later pay day pushes
// the name to the following month.
func ResolvePeriod(today time.Time, payDay int) BudgetPeriod {
	if payDay <= 1 {
		return PeriodOf(today)
	}

	period := PeriodOf(today)
	if today.Day() < payDay {
		// The window containing today started in the previous month
		period = period.Previous()
	}

	if payDay > 15 {
		// The window covers mostly the following month
		period = period.Next()
	}

	return period
}
