package booking

import "github.com/shopspring/decimal"

var oneHour = decimal.NewFromInt(1)

// DurationHours returns (end - start) expressed in hours.
func DurationHours(start, end ClockTime) (decimal.Decimal, error) {
	if err := ValidateInterval(start, end); err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromInt(int64(end - start)).Div(decimal.NewFromInt(60)), nil
}

// BillableHours is DurationHours with a one-hour floor. The facility
// bills a minimum of one hour even for shorter sessions; this is a
// business rule, not rounding.
func BillableHours(start, end ClockTime) (decimal.Decimal, error) {
	d, err := DurationHours(start, end)
	if err != nil {
		return decimal.Zero, err
	}
	if d.LessThan(oneHour) {
		return oneHour, nil
	}
	return d, nil
}

// Price computes billable hours times the hourly rate. Full precision
// is kept internally; rounding to currency precision happens at the
// presentation layer only.
func Price(start, end ClockTime, hourlyRate decimal.Decimal) (decimal.Decimal, error) {
	h, err := BillableHours(start, end)
	if err != nil {
		return decimal.Zero, err
	}
	return h.Mul(hourlyRate), nil
}
