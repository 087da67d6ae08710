package handlers

import (
	"reflect"
	"testing"
	"time"

	"workforce/models"

	"github.com/shopspring/decimal"
)

func TestPayrollExportRow(t *testing.T) {
	p := &models.Payroll{
		User:        models.User{Username: "jdoe", FullName: "Jane Doe"},
		PeriodStart: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:   time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
		TotalHours:  168,
		HourlyRate:  decimal.RequireFromString("20"),
		GrossPay:    decimal.RequireFromString("3440"),
		Deductions:  decimal.RequireFromString("344"),
		NetPay:      decimal.RequireFromString("3096"),
		Status:      models.PayrollApproved,
	}

	want := []string{
		"Jane Doe", "2024-03-01", "2024-03-31", "168.00",
		"20.00", "3440.00", "344.00", "3096.00", "approved",
	}
	if got := payrollExportRow(p); !reflect.DeepEqual(got, want) {
		t.Errorf("payrollExportRow() = %v, want %v", got, want)
	}
}

func TestPayrollExportHeader(t *testing.T) {
	want := []string{
		"Employee", "Period Start", "Period End", "Total Hours",
		"Hourly Rate", "Gross Pay", "Deductions", "Net Pay", "Status",
	}
	if !reflect.DeepEqual(payrollExportHeader, want) {
		t.Errorf("export header = %v, want %v", payrollExportHeader, want)
	}
	if len(payrollExportHeader) != len(payrollExportRow(&models.Payroll{})) {
		t.Error("header and row column counts differ")
	}
}

func TestDeductionRequestPolicy(t *testing.T) {
	gross := decimal.RequireFromString("2000")

	flat := deductionRequest{Type: "flat_percent", Value: decimal.RequireFromString("10")}
	if got := flat.policy().Apply(gross); !got.Equal(decimal.RequireFromString("200")) {
		t.Errorf("flat_percent 10 of 2000 = %s, want 200", got)
	}

	manual := deductionRequest{Type: "manual", Value: decimal.RequireFromString("75.50")}
	if got := manual.policy().Apply(gross); !got.Equal(decimal.RequireFromString("75.50")) {
		t.Errorf("manual deduction = %s, want 75.50", got)
	}

	// Unspecified policy falls back to a flat 10%
	var fallback deductionRequest
	if got := fallback.policy().Apply(gross); !got.Equal(decimal.RequireFromString("200")) {
		t.Errorf("default deduction = %s, want 200", got)
	}
}
