package timepay

import (
	"testing"

	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestComputeGross(t *testing.T) {
	got := ComputeGross(160, d("12.50"))
	if !got.Equal(d("2000")) {
		t.Errorf("ComputeGross(160, 12.50) = %s, want 2000", got)
	}
}

func TestComputeGrossLinear(t *testing.T) {
	rate := d("17.25")
	double := ComputeGross(2*37.5, rate)
	twice := ComputeGross(37.5, rate).Mul(decimal.NewFromInt(2))
	if !double.Equal(twice) {
		t.Errorf("ComputeGross(2h, r) = %s, 2*ComputeGross(h, r) = %s", double, twice)
	}
}

func TestComputeDeductions(t *testing.T) {
	tests := []struct {
		name   string
		gross  string
		policy DeductionPolicy
		want   string
	}{
		{name: "flat ten percent", gross: "1000", policy: FlatPercentDeduction{Percent: d("10")}, want: "100"},
		{name: "flat zero percent", gross: "1000", policy: FlatPercentDeduction{Percent: d("0")}, want: "0"},
		{name: "manual amount", gross: "1000", policy: ManualDeduction{Amount: d("250")}, want: "250"},
		{name: "manual exceeds gross", gross: "100", policy: ManualDeduction{Amount: d("150")}, want: "150"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeDeductions(d(tt.gross), tt.policy)
			if !got.Equal(d(tt.want)) {
				t.Errorf("ComputeDeductions(%s) = %s, want %s", tt.gross, got, tt.want)
			}
		})
	}
}

func TestComputeNet(t *testing.T) {
	if got := ComputeNet(d("2000"), d("200")); !got.Equal(d("1800")) {
		t.Errorf("ComputeNet(2000, 200) = %s, want 1800", got)
	}
}

func TestComputeNetGoesNegative(t *testing.T) {
	// Deductions exceeding gross must produce a negative net, not an error.
	got := ComputeNet(d("100"), d("150"))
	if !got.Equal(d("-50")) {
		t.Errorf("ComputeNet(100, 150) = %s, want -50", got)
	}
}
