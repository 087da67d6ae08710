package handlers

import (
	"net/http"
	"strconv"
	"time"

	"workforce/config"
	"workforce/database"
	"workforce/models"
	"workforce/timepay"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type RostersHandler struct {
	config *config.Config
	policy timepay.OvernightPolicy
}

func NewRostersHandler(cfg *config.Config) *RostersHandler {
	return &RostersHandler{
		config: cfg,
		policy: timepay.ParseOvernightPolicy(cfg.OvernightPolicy),
	}
}

type rosterRequest struct {
	Name             string          `json:"name" validate:"required"`
	ClientID         *uint           `json:"client_id"`
	ProjectID        *uint           `json:"project_id"`
	StartDate        string          `json:"start_date" validate:"required"`
	EndDate          string          `json:"end_date"`
	StartTime        string          `json:"start_time" validate:"required"`
	EndTime          string          `json:"end_time" validate:"required"`
	ExpectedProfiles int             `json:"expected_profiles" validate:"gte=0"`
	PerHourRate      decimal.Decimal `json:"per_hour_rate"`
	Notes            string          `json:"notes"`
	WorkerIDs        []uint          `json:"worker_ids"`
}

func (h *RostersHandler) List(w http.ResponseWriter, r *http.Request) {
	query := database.GetDB().
		Preload("Client").Preload("Project").
		Preload("Assignments").Preload("Assignments.User")

	if v := r.URL.Query().Get("client_id"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 32); err == nil && id > 0 {
			query = query.Where("client_id = ?", uint(id))
		}
	}
	if v := r.URL.Query().Get("status"); v != "" {
		query = query.Where("status = ?", v)
	}

	var rosters []models.Roster
	if err := query.Order("start_date desc").Limit(500).Find(&rosters).Error; err != nil {
		respondBusinessError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"rosters": rosters})
}

func (h *RostersHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req rosterRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusUnprocessableEntity, "validation", err.Error())
		return
	}

	roster, err := h.buildRoster(&req, &models.Roster{Status: models.RosterPending})
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, "validation", err.Error())
		return
	}

	err = database.GetDB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(roster).Error; err != nil {
			return err
		}
		return replaceAssignments(tx, roster.ID, req.WorkerIDs)
	})
	if err != nil {
		respondBusinessError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, roster)
}

func (h *RostersHandler) Get(w http.ResponseWriter, r *http.Request) {
	roster, ok := h.loadRoster(w, r, true)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"roster":   roster,
		"editable": roster.IsEditable(roster.WorkingHours),
	})
}

func (h *RostersHandler) Update(w http.ResponseWriter, r *http.Request) {
	roster, ok := h.loadRoster(w, r, true)
	if !ok {
		return
	}

	// The lock rule is evaluated against the working hours loaded for this
	// request, never a cached editability flag.
	if !roster.IsEditable(roster.WorkingHours) {
		respondBusinessError(w, models.ErrRosterLocked)
		return
	}

	var req rosterRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusUnprocessableEntity, "validation", err.Error())
		return
	}
	if _, err := h.buildRoster(&req, roster); err != nil {
		respondError(w, http.StatusUnprocessableEntity, "validation", err.Error())
		return
	}

	err := database.GetDB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(roster).Error; err != nil {
			return err
		}
		return replaceAssignments(tx, roster.ID, req.WorkerIDs)
	})
	if err != nil {
		respondBusinessError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, roster)
}

func (h *RostersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	roster, ok := h.loadRoster(w, r, true)
	if !ok {
		return
	}
	if !roster.IsEditable(roster.WorkingHours) {
		respondBusinessError(w, models.ErrRosterLocked)
		return
	}

	err := database.GetDB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("roster_id = ?", roster.ID).Delete(&models.RosterAssignment{}).Error; err != nil {
			return err
		}
		return tx.Delete(roster).Error
	})
	if err != nil {
		respondBusinessError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *RostersHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	roster, ok := h.loadRoster(w, r, false)
	if !ok {
		return
	}

	var req statusRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusUnprocessableEntity, "validation", err.Error())
		return
	}

	next := models.RosterStatus(req.Status)
	if !roster.Status.CanTransitionTo(next) {
		respondBusinessError(w, models.ErrInvalidTransition)
		return
	}

	roster.Status = next
	if err := database.GetDB().Save(roster).Error; err != nil {
		respondBusinessError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, roster)
}

// Lock sets the explicit lock flag, making the roster read-only regardless of
// linked working-hour statuses.
func (h *RostersHandler) Lock(w http.ResponseWriter, r *http.Request) {
	roster, ok := h.loadRoster(w, r, false)
	if !ok {
		return
	}

	roster.Locked = true
	if err := database.GetDB().Save(roster).Error; err != nil {
		respondBusinessError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, roster)
}

func (h *RostersHandler) buildRoster(req *rosterRequest, roster *models.Roster) (*models.Roster, error) {
	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return nil, err
	}
	var endDate *time.Time
	if req.EndDate != "" {
		parsed, err := time.Parse("2006-01-02", req.EndDate)
		if err != nil {
			return nil, err
		}
		endDate = &parsed
	}

	total, err := timepay.ComputeHours(req.StartTime, req.EndTime, h.policy)
	if err != nil {
		return nil, err
	}

	roster.Name = req.Name
	roster.ClientID = req.ClientID
	roster.ProjectID = req.ProjectID
	roster.StartDate = startDate
	roster.EndDate = endDate
	roster.StartTime = req.StartTime
	roster.EndTime = req.EndTime
	roster.TotalHours = total
	roster.ExpectedProfiles = req.ExpectedProfiles
	roster.PerHourRate = req.PerHourRate
	roster.Notes = req.Notes
	return roster, nil
}

func replaceAssignments(tx *gorm.DB, rosterID uint, workerIDs []uint) error {
	if err := tx.Where("roster_id = ?", rosterID).Delete(&models.RosterAssignment{}).Error; err != nil {
		return err
	}
	for _, userID := range workerIDs {
		assignment := models.RosterAssignment{RosterID: rosterID, UserID: userID}
		if err := tx.Create(&assignment).Error; err != nil {
			return err
		}
	}
	return nil
}

// loadRoster fetches the roster and, when withHours is set, the linked
// working-hour records the lock rule needs.
func (h *RostersHandler) loadRoster(w http.ResponseWriter, r *http.Request, withHours bool) (*models.Roster, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, "validation", "invalid roster ID")
		return nil, false
	}

	query := database.GetDB().Preload("Assignments").Preload("Assignments.User")
	if withHours {
		query = query.Preload("WorkingHours")
	}

	var roster models.Roster
	if err := query.First(&roster, id).Error; err != nil {
		respondError(w, http.StatusNotFound, "not_found", "roster not found")
		return nil, false
	}
	return &roster, true
}
