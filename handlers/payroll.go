package handlers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"workforce/config"
	"workforce/database"
	"workforce/models"
	"workforce/timepay"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

type PayrollHandler struct {
	config *config.Config
}

func NewPayrollHandler(cfg *config.Config) *PayrollHandler {
	return &PayrollHandler{config: cfg}
}

type deductionRequest struct {
	Type  string          `json:"type" validate:"omitempty,oneof=flat_percent manual"`
	Value decimal.Decimal `json:"value"`
}

// policy resolves the request into one of the two recognized deduction
// policies. An absent policy falls back to a flat 10% of gross.
func (d deductionRequest) policy() timepay.DeductionPolicy {
	switch d.Type {
	case "manual":
		return timepay.ManualDeduction{Amount: d.Value}
	case "flat_percent":
		return timepay.FlatPercentDeduction{Percent: d.Value}
	default:
		return timepay.FlatPercentDeduction{Percent: decimal.NewFromInt(10)}
	}
}

type payrollGenerateRequest struct {
	UserID      uint             `json:"user_id" validate:"required"`
	PeriodStart string           `json:"period_start" validate:"required"`
	PeriodEnd   string           `json:"period_end" validate:"required"`
	HourlyRate  decimal.Decimal  `json:"hourly_rate"`
	Deduction   deductionRequest `json:"deduction"`
}

// Generate aggregates the worker's approved working hours over the period
// into one payroll record, linked through the payroll_working_hours join
// table.
func (h *PayrollHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req payrollGenerateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusUnprocessableEntity, "validation", err.Error())
		return
	}

	periodStart, err := time.Parse("2006-01-02", req.PeriodStart)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, "validation", "invalid period_start, want YYYY-MM-DD")
		return
	}
	periodEnd, err := time.Parse("2006-01-02", req.PeriodEnd)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, "validation", "invalid period_end, want YYYY-MM-DD")
		return
	}
	if periodEnd.Before(periodStart) {
		respondError(w, http.StatusUnprocessableEntity, "validation", "period_end is before period_start")
		return
	}

	var worker models.User
	if err := database.GetDB().First(&worker, req.UserID).Error; err != nil {
		respondError(w, http.StatusUnprocessableEntity, "validation", "unknown worker")
		return
	}

	var entries []models.WorkingHour
	err = database.GetDB().
		Where("user_id = ? AND status = ? AND date >= ? AND date <= ?",
			req.UserID, models.WorkingHourApproved, periodStart, periodEnd).
		Order("date asc").
		Find(&entries).Error
	if err != nil {
		respondBusinessError(w, err)
		return
	}
	if len(entries) == 0 {
		respondError(w, http.StatusUnprocessableEntity, "validation", "no approved working hours in period")
		return
	}

	var totalHours float64
	for _, entry := range entries {
		totalHours += entry.ActualHours
	}

	rate := req.HourlyRate
	if rate.IsZero() {
		rate = worker.HourlyRate
	}

	gross := timepay.ComputeGross(totalHours, rate)
	deductions := timepay.ComputeDeductions(gross, req.Deduction.policy())
	net := timepay.ComputeNet(gross, deductions)

	payroll := models.Payroll{
		UserID:        req.UserID,
		PeriodStart:   periodStart,
		PeriodEnd:     periodEnd,
		TotalHours:    totalHours,
		HourlyRate:    rate,
		GrossPay:      gross,
		Deductions:    deductions,
		NetPay:        net,
		Status:        models.PayrollPending,
		BankAccountID: worker.BankAccountID,
	}

	err = database.GetDB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&payroll).Error; err != nil {
			return err
		}
		return tx.Model(&payroll).Association("WorkingHours").Append(&entries)
	})
	if err != nil {
		respondBusinessError(w, err)
		return
	}

	logrus.WithFields(logrus.Fields{
		"payroll_id": payroll.ID,
		"user_id":    payroll.UserID,
		"entries":    len(entries),
	}).Info("payroll generated")
	respondJSON(w, http.StatusCreated, payroll)
}

func (h *PayrollHandler) List(w http.ResponseWriter, r *http.Request) {
	query := database.GetDB().Preload("User").Preload("BankAccount")

	if v := r.URL.Query().Get("user_id"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 32); err == nil && id > 0 {
			query = query.Where("user_id = ?", uint(id))
		}
	}
	if v := r.URL.Query().Get("status"); v != "" {
		if models.ValidPayrollStatus(models.PayrollStatus(v)) {
			query = query.Where("status = ?", v)
		}
	}

	var records []models.Payroll
	if err := query.Order("period_start desc").Limit(500).Find(&records).Error; err != nil {
		respondBusinessError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"payroll": records})
}

func (h *PayrollHandler) Get(w http.ResponseWriter, r *http.Request) {
	payroll, ok := h.loadPayroll(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, payroll)
}

// UpdateStatus moves a payroll record forward: pending -> approved -> paid.
// Marking a payroll paid also pays out its linked working-hour records.
func (h *PayrollHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	payroll, ok := h.loadPayroll(w, r)
	if !ok {
		return
	}

	var req statusRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusUnprocessableEntity, "validation", err.Error())
		return
	}

	next := models.PayrollStatus(req.Status)
	if !models.ValidPayrollStatus(next) {
		respondError(w, http.StatusUnprocessableEntity, "validation", "unknown status "+req.Status)
		return
	}
	if !payroll.Status.CanTransitionTo(next) {
		respondBusinessError(w, models.ErrInvalidTransition)
		return
	}

	err := database.GetDB().Transaction(func(tx *gorm.DB) error {
		payroll.Status = next
		if err := tx.Save(payroll).Error; err != nil {
			return err
		}
		if next != models.PayrollPaid {
			return nil
		}
		for i := range payroll.WorkingHours {
			entry := &payroll.WorkingHours[i]
			if !entry.Status.CanTransitionTo(models.WorkingHourPaid) {
				continue
			}
			entry.Status = models.WorkingHourPaid
			if err := tx.Save(entry).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		respondBusinessError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, payroll)
}

var payrollExportHeader = []string{
	"Employee", "Period Start", "Period End", "Total Hours",
	"Hourly Rate", "Gross Pay", "Deductions", "Net Pay", "Status",
}

func payrollExportRow(p *models.Payroll) []string {
	return []string{
		p.User.DisplayName(),
		p.PeriodStart.Format("2006-01-02"),
		p.PeriodEnd.Format("2006-01-02"),
		fmt.Sprintf("%.2f", p.TotalHours),
		p.HourlyRate.StringFixed(2),
		p.GrossPay.StringFixed(2),
		p.Deductions.StringFixed(2),
		p.NetPay.StringFixed(2),
		string(p.Status),
	}
}

func (h *PayrollHandler) exportRecords(w http.ResponseWriter, r *http.Request) ([]models.Payroll, bool) {
	query := database.GetDB().Preload("User")

	if v := r.URL.Query().Get("user_id"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 32); err == nil && id > 0 {
			query = query.Where("user_id = ?", uint(id))
		}
	}
	if v := r.URL.Query().Get("status"); v != "" {
		if models.ValidPayrollStatus(models.PayrollStatus(v)) {
			query = query.Where("status = ?", v)
		}
	}
	if v := r.URL.Query().Get("year"); v != "" {
		if y, err := strconv.Atoi(v); err == nil && y >= 2000 && y <= 2100 {
			start := time.Date(y, 1, 1, 0, 0, 0, 0, time.UTC)
			query = query.Where("period_start >= ? AND period_start < ?", start, start.AddDate(1, 0, 0))
		}
	}

	var records []models.Payroll
	if err := query.Order("period_start asc, user_id asc").Find(&records).Error; err != nil {
		respondBusinessError(w, err)
		return nil, false
	}
	return records, true
}

func (h *PayrollHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	records, ok := h.exportRecords(w, r)
	if !ok {
		return
	}

	filename := fmt.Sprintf("payroll_%s.csv", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))

	writer := csv.NewWriter(w)
	defer writer.Flush()

	writer.Write(payrollExportHeader)
	for i := range records {
		writer.Write(payrollExportRow(&records[i]))
	}
}

// ExportXLSX writes the salary sheet as a spreadsheet.
func (h *PayrollHandler) ExportXLSX(w http.ResponseWriter, r *http.Request) {
	records, ok := h.exportRecords(w, r)
	if !ok {
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Salary Sheet"
	f.SetSheetName("Sheet1", sheet)

	for col, name := range payrollExportHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, name)
	}
	for i := range records {
		for col, value := range payrollExportRow(&records[i]) {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			f.SetCellValue(sheet, cell, value)
		}
	}

	filename := fmt.Sprintf("payroll_%s.xlsx", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))

	if err := f.Write(w); err != nil {
		logrus.WithError(err).Error("xlsx export failed")
	}
}

func (h *PayrollHandler) loadPayroll(w http.ResponseWriter, r *http.Request) (*models.Payroll, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, "validation", "invalid payroll ID")
		return nil, false
	}

	var payroll models.Payroll
	err = database.GetDB().Preload("User").Preload("WorkingHours").First(&payroll, id).Error
	if err != nil {
		respondError(w, http.StatusNotFound, "not_found", "payroll record not found")
		return nil, false
	}
	return &payroll, true
}
