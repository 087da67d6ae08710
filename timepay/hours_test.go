package timepay

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestComputeHours(t *testing.T) {
	tests := []struct {
		name    string
		start   string
		end     string
		policy  OvernightPolicy
		want    float64
		wantErr bool
	}{
		{name: "standard day", start: "09:00", end: "17:00", policy: OvernightWrap, want: 8},
		{name: "half hour", start: "09:00", end: "09:30", policy: OvernightWrap, want: 0.5},
		// Overnight shift resolved by wrap-around, the service default.
		{name: "overnight wrap", start: "22:00", end: "06:00", policy: OvernightWrap, want: 8},
		{name: "overnight clamp", start: "22:00", end: "06:00", policy: OvernightClamp, want: 0},
		{name: "zero duration", start: "12:00", end: "12:00", policy: OvernightWrap, want: 0},
		{name: "bad start", start: "9am", end: "17:00", policy: OvernightWrap, wantErr: true},
		{name: "bad end", start: "09:00", end: "25:00", policy: OvernightWrap, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeHours(tt.start, tt.end, tt.policy)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ComputeHours(%q, %q) expected error, got %v", tt.start, tt.end, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ComputeHours(%q, %q) error: %v", tt.start, tt.end, err)
			}
			if got != tt.want {
				t.Errorf("ComputeHours(%q, %q) = %v, want %v", tt.start, tt.end, got, tt.want)
			}
		})
	}
}

func TestSplitOvertime(t *testing.T) {
	tests := []struct {
		actual       float64
		wantRegular  float64
		wantOvertime float64
	}{
		{actual: 0, wantRegular: 0, wantOvertime: 0},
		{actual: 6, wantRegular: 6, wantOvertime: 0},
		{actual: 8, wantRegular: 8, wantOvertime: 0},
		{actual: 10, wantRegular: 8, wantOvertime: 2},
		{actual: 12.5, wantRegular: 8, wantOvertime: 4.5},
	}

	for _, tt := range tests {
		regular, overtime := SplitOvertime(tt.actual, DefaultDailyThreshold)
		if regular != tt.wantRegular || overtime != tt.wantOvertime {
			t.Errorf("SplitOvertime(%v, 8) = (%v, %v), want (%v, %v)",
				tt.actual, regular, overtime, tt.wantRegular, tt.wantOvertime)
		}
	}
}

func TestComputePayable(t *testing.T) {
	tests := []struct {
		name   string
		actual float64
		rate   string
		want   string
	}{
		// 8 regular at 20 plus 2 overtime at 20*1.5
		{name: "with overtime", actual: 10, rate: "20", want: "220"},
		{name: "under threshold", actual: 6, rate: "15", want: "90"},
		{name: "exactly threshold", actual: 8, rate: "20", want: "160"},
		{name: "zero hours", actual: 0, rate: "25", want: "0"},
		{name: "fractional rate", actual: 9, rate: "10.50", want: "99.75"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rate := decimal.RequireFromString(tt.rate)
			got := ComputePayable(tt.actual, rate, DefaultDailyThreshold, DefaultOvertimeMultiplier)
			if !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("ComputePayable(%v, %s) = %s, want %s", tt.actual, tt.rate, got, tt.want)
			}
		})
	}
}

func TestParseOvernightPolicy(t *testing.T) {
	if ParseOvernightPolicy("clamp") != OvernightClamp {
		t.Error(`ParseOvernightPolicy("clamp") should be OvernightClamp`)
	}
	if ParseOvernightPolicy("wrap") != OvernightWrap {
		t.Error(`ParseOvernightPolicy("wrap") should be OvernightWrap`)
	}
	if ParseOvernightPolicy("") != OvernightWrap {
		t.Error("empty policy should default to OvernightWrap")
	}
}
