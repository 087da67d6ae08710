package timepay

import "github.com/shopspring/decimal"

// DeductionPolicy computes the deduction for a gross amount. The two
// recognized policies are a flat percentage of gross and a caller-supplied
// manual amount.
type DeductionPolicy interface {
	Apply(gross decimal.Decimal) decimal.Decimal
}

// FlatPercentDeduction deducts Percent% of gross pay.
type FlatPercentDeduction struct {
	Percent decimal.Decimal
}

func (d FlatPercentDeduction) Apply(gross decimal.Decimal) decimal.Decimal {
	return gross.Mul(d.Percent).Div(decimal.NewFromInt(100))
}

// ManualDeduction deducts a fixed amount regardless of gross pay.
type ManualDeduction struct {
	Amount decimal.Decimal
}

func (d ManualDeduction) Apply(decimal.Decimal) decimal.Decimal {
	return d.Amount
}

// ComputeGross prices total hours at the hourly rate.
func ComputeGross(totalHours float64, rate decimal.Decimal) decimal.Decimal {
	return decimal.NewFromFloat(totalHours).Mul(rate)
}

// ComputeDeductions applies the policy to gross pay.
func ComputeDeductions(gross decimal.Decimal, policy DeductionPolicy) decimal.Decimal {
	return policy.Apply(gross)
}

// ComputeNet subtracts deductions from gross. Net pay may go negative when
// deductions exceed gross; flagging that is the caller's job.
func ComputeNet(gross, deductions decimal.Decimal) decimal.Decimal {
	return gross.Sub(deductions)
}
