package handlers

import (
	"net/http"
	"strconv"
	"time"

	"workforce/config"
	"workforce/database"
	"workforce/middleware"
	"workforce/models"
	"workforce/timepay"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

type WorkingHoursHandler struct {
	config *config.Config
	policy timepay.OvernightPolicy
}

func NewWorkingHoursHandler(cfg *config.Config) *WorkingHoursHandler {
	return &WorkingHoursHandler{
		config: cfg,
		policy: timepay.ParseOvernightPolicy(cfg.OvernightPolicy),
	}
}

func hasPermission(role models.Role, permission string) bool {
	var count int64
	database.GetDB().Model(&models.RolePermission{}).
		Where("role = ? AND permission = ?", role, permission).
		Count(&count)
	return count > 0
}

type workingHourRequest struct {
	UserID      uint            `json:"user_id"`
	ClientID    *uint           `json:"client_id"`
	ProjectID   *uint           `json:"project_id"`
	RosterID    *uint           `json:"roster_id"`
	Date        string          `json:"date" validate:"required"`
	StartTime   string          `json:"start_time" validate:"required"`
	EndTime     string          `json:"end_time" validate:"required"`
	ActualHours float64         `json:"actual_hours" validate:"gte=0"`
	HourlyRate  decimal.Decimal `json:"hourly_rate"`
	Notes       string          `json:"notes"`
}

// applyDerived recomputes every derived field from the raw inputs. Called on
// create and on every update that touches times, actual hours or the rate.
func (h *WorkingHoursHandler) applyDerived(entry *models.WorkingHour, actualHours float64) error {
	total, err := timepay.ComputeHours(entry.StartTime, entry.EndTime, h.policy)
	if err != nil {
		return err
	}
	entry.TotalHours = total

	// Worker-confirmed hours default to the derived duration
	if actualHours == 0 {
		actualHours = total
	}
	entry.ActualHours = actualHours

	_, overtime := timepay.SplitOvertime(actualHours, h.config.DailyThreshold)
	entry.OvertimeHours = overtime
	entry.PayableAmount = timepay.ComputePayable(actualHours, entry.HourlyRate, h.config.DailyThreshold, h.config.OvertimeMultiplier)
	return nil
}

func (h *WorkingHoursHandler) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	db := database.GetDB()
	query := db.Preload("User").Preload("Client").Preload("Project")

	// Approvers see everyone, everyone else sees their own records
	if !hasPermission(user.Role, models.PermWorkingHoursApprove) {
		query = query.Where("user_id = ?", user.ID)
	} else if v := r.URL.Query().Get("user_id"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 32); err == nil && id > 0 {
			query = query.Where("user_id = ?", uint(id))
		}
	}

	if v := r.URL.Query().Get("client_id"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 32); err == nil && id > 0 {
			query = query.Where("client_id = ?", uint(id))
		}
	}
	if v := r.URL.Query().Get("project_id"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 32); err == nil && id > 0 {
			query = query.Where("project_id = ?", uint(id))
		}
	}
	if v := r.URL.Query().Get("status"); v != "" {
		if models.ValidWorkingHourStatus(models.WorkingHourStatus(v)) {
			query = query.Where("status = ?", v)
		}
	}

	var month, year int
	if v := r.URL.Query().Get("month"); v != "" {
		if m, err := strconv.Atoi(v); err == nil && m >= 1 && m <= 12 {
			month = m
		}
	}
	if v := r.URL.Query().Get("year"); v != "" {
		if y, err := strconv.Atoi(v); err == nil && y >= 2000 && y <= 2100 {
			year = y
		}
	}
	if month > 0 && year > 0 {
		start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
		query = query.Where("working_hours.date >= ? AND working_hours.date < ?", start, start.AddDate(0, 1, 0))
	} else if month > 0 {
		query = query.Where("EXTRACT(MONTH FROM working_hours.date) = ?", month)
	} else if year > 0 {
		start := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
		query = query.Where("working_hours.date >= ? AND working_hours.date < ?", start, start.AddDate(1, 0, 0))
	}

	var entries []models.WorkingHour
	if err := query.Order("working_hours.date desc").Limit(500).Find(&entries).Error; err != nil {
		respondBusinessError(w, err)
		return
	}

	var totalHours, overtimeHours float64
	payable := decimal.Zero
	for _, entry := range entries {
		totalHours += entry.ActualHours
		overtimeHours += entry.OvertimeHours
		payable = payable.Add(entry.PayableAmount)
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"entries":        entries,
		"total_hours":    totalHours,
		"overtime_hours": overtimeHours,
		"payable_amount": payable,
	})
}

func (h *WorkingHoursHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	var req workingHourRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusUnprocessableEntity, "validation", err.Error())
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, "validation", "invalid date format, want YYYY-MM-DD")
		return
	}

	targetUserID := user.ID
	if req.UserID != 0 && user.IsAdmin() {
		targetUserID = req.UserID
	}
	if !user.CanManageHoursFor(targetUserID) {
		respondError(w, http.StatusForbidden, "forbidden", "cannot log hours for another worker")
		return
	}

	rate := req.HourlyRate
	if rate.IsZero() {
		var target models.User
		if err := database.GetDB().First(&target, targetUserID).Error; err != nil {
			respondError(w, http.StatusUnprocessableEntity, "validation", "unknown worker")
			return
		}
		rate = target.HourlyRate
	}

	entry := models.WorkingHour{
		UserID:     targetUserID,
		ClientID:   req.ClientID,
		ProjectID:  req.ProjectID,
		RosterID:   req.RosterID,
		Date:       date,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		HourlyRate: rate,
		Notes:      req.Notes,
		Status:     models.WorkingHourPending,
	}
	if err := h.applyDerived(&entry, req.ActualHours); err != nil {
		respondError(w, http.StatusUnprocessableEntity, "validation", err.Error())
		return
	}

	if err := database.GetDB().Create(&entry).Error; err != nil {
		respondBusinessError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, entry)
}

func (h *WorkingHoursHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	entry, ok := h.loadEntry(w, r)
	if !ok {
		return
	}
	if entry.UserID != user.ID && !hasPermission(user.Role, models.PermWorkingHoursApprove) {
		respondError(w, http.StatusForbidden, "forbidden", "not your record")
		return
	}
	respondJSON(w, http.StatusOK, entry)
}

func (h *WorkingHoursHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	entry, ok := h.loadEntry(w, r)
	if !ok {
		return
	}
	if !user.CanManageHoursFor(entry.UserID) {
		respondError(w, http.StatusForbidden, "forbidden", "not your record")
		return
	}
	if entry.IsPaid() {
		respondBusinessError(w, models.ErrRecordPaid)
		return
	}

	var req workingHourRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusUnprocessableEntity, "validation", err.Error())
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, "validation", "invalid date format, want YYYY-MM-DD")
		return
	}

	entry.Date = date
	entry.StartTime = req.StartTime
	entry.EndTime = req.EndTime
	entry.ClientID = req.ClientID
	entry.ProjectID = req.ProjectID
	entry.RosterID = req.RosterID
	entry.Notes = req.Notes
	if !req.HourlyRate.IsZero() {
		entry.HourlyRate = req.HourlyRate
	}
	if err := h.applyDerived(entry, req.ActualHours); err != nil {
		respondError(w, http.StatusUnprocessableEntity, "validation", err.Error())
		return
	}

	if err := database.GetDB().Save(entry).Error; err != nil {
		respondBusinessError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, entry)
}

func (h *WorkingHoursHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	entry, ok := h.loadEntry(w, r)
	if !ok {
		return
	}
	if !user.CanManageHoursFor(entry.UserID) {
		respondError(w, http.StatusForbidden, "forbidden", "not your record")
		return
	}
	if entry.IsPaid() {
		respondBusinessError(w, models.ErrRecordPaid)
		return
	}

	if err := database.GetDB().Delete(entry).Error; err != nil {
		respondBusinessError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

type statusRequest struct {
	Status string `json:"status" validate:"required"`
}

// UpdateStatus drives the pending -> approved|rejected -> paid workflow.
// Permission-gated at the router; the transition table is the guard here.
func (h *WorkingHoursHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	entry, ok := h.loadEntry(w, r)
	if !ok {
		return
	}

	var req statusRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusUnprocessableEntity, "validation", err.Error())
		return
	}

	next := models.WorkingHourStatus(req.Status)
	if !models.ValidWorkingHourStatus(next) {
		respondError(w, http.StatusUnprocessableEntity, "validation", "unknown status "+req.Status)
		return
	}
	if !entry.Status.CanTransitionTo(next) {
		respondBusinessError(w, models.ErrInvalidTransition)
		return
	}

	entry.Status = next
	if err := database.GetDB().Save(entry).Error; err != nil {
		respondBusinessError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, entry)
}

// Dashboard summarizes the current month for the requesting worker.
func (h *WorkingHoursHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	now := time.Now().UTC()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	var entries []models.WorkingHour
	err := database.GetDB().Preload("Client").Preload("Project").
		Where("user_id = ? AND date >= ? AND date < ?", user.ID, start, start.AddDate(0, 1, 0)).
		Order("date desc").Limit(100).
		Find(&entries).Error
	if err != nil {
		respondBusinessError(w, err)
		return
	}

	var totalHours, overtimeHours float64
	payable := decimal.Zero
	for _, entry := range entries {
		totalHours += entry.ActualHours
		overtimeHours += entry.OvertimeHours
		payable = payable.Add(entry.PayableAmount)
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"month":          start.Format("2006-01"),
		"entries":        entries,
		"total_hours":    totalHours,
		"overtime_hours": overtimeHours,
		"payable_amount": payable,
	})
}

func (h *WorkingHoursHandler) loadEntry(w http.ResponseWriter, r *http.Request) (*models.WorkingHour, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, "validation", "invalid entry ID")
		return nil, false
	}

	var entry models.WorkingHour
	if err := database.GetDB().First(&entry, id).Error; err != nil {
		respondError(w, http.StatusNotFound, "not_found", "entry not found")
		return nil, false
	}
	return &entry, true
}
