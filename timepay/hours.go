// Package timepay holds the time-and-pay computation rules shared by the
// working-hour, roster and payroll handlers. Everything here is pure: no
// database access, no clock reads.
package timepay

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"
)

const clockLayout = "15:04"

const (
	DefaultDailyThreshold     = 8.0
	DefaultOvertimeMultiplier = 1.5
)

// OvernightPolicy decides what an end time earlier than the start time means.
type OvernightPolicy int

const (
	// OvernightWrap treats end < start as a shift crossing midnight and
	// adds 24 hours.
	OvernightWrap OvernightPolicy = iota
	// OvernightClamp treats end < start as invalid input and floors the
	// duration at zero.
	OvernightClamp
)

// ParseOvernightPolicy maps the config value to a policy, defaulting to wrap.
func ParseOvernightPolicy(s string) OvernightPolicy {
	if s == "clamp" {
		return OvernightClamp
	}
	return OvernightWrap
}

// ComputeHours derives elapsed hours from two "HH:MM" clock times on the same
// nominal day.
func ComputeHours(start, end string, policy OvernightPolicy) (float64, error) {
	s, err := time.Parse(clockLayout, start)
	if err != nil {
		return 0, fmt.Errorf("invalid start time %q: %w", start, err)
	}
	e, err := time.Parse(clockLayout, end)
	if err != nil {
		return 0, fmt.Errorf("invalid end time %q: %w", end, err)
	}

	minutes := e.Sub(s).Minutes()
	if minutes < 0 {
		switch policy {
		case OvernightWrap:
			minutes += 24 * 60
		case OvernightClamp:
			minutes = 0
		}
	}
	return minutes / 60, nil
}

// SplitOvertime buckets hours worked into regular and overtime at the daily
// threshold. Negative input is the caller's validation problem; the split
// itself is total.
func SplitOvertime(actualHours, threshold float64) (regular, overtime float64) {
	regular = math.Min(actualHours, threshold)
	overtime = math.Max(0, actualHours-threshold)
	return regular, overtime
}

// ComputePayable prices hours worked: regular hours at the hourly rate,
// overtime hours at rate times the multiplier.
func ComputePayable(actualHours float64, rate decimal.Decimal, threshold, multiplier float64) decimal.Decimal {
	regular, overtime := SplitOvertime(actualHours, threshold)
	payable := decimal.NewFromFloat(regular).Mul(rate)
	if overtime > 0 {
		payable = payable.Add(decimal.NewFromFloat(overtime).Mul(rate).Mul(decimal.NewFromFloat(multiplier)))
	}
	return payable
}
