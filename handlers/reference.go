package handlers

import (
	"net/http"
	"strconv"

	"workforce/config"
	"workforce/database"
	"workforce/models"

	"github.com/go-chi/chi/v5"
)

// ReferenceHandler covers the reference entities consumed by the working-hour
// and payroll flows: clients, projects, bank accounts.
type ReferenceHandler struct {
	config *config.Config
}

func NewReferenceHandler(cfg *config.Config) *ReferenceHandler {
	return &ReferenceHandler{config: cfg}
}

func parseID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, "validation", "invalid ID")
		return 0, false
	}
	return uint(id), true
}

type clientRequest struct {
	Name         string `json:"name" validate:"required"`
	Company      string `json:"company"`
	ContactEmail string `json:"contact_email" validate:"omitempty,email"`
	Active       *bool  `json:"active"`
}

func (h *ReferenceHandler) ListClients(w http.ResponseWriter, r *http.Request) {
	var clients []models.Client
	if err := database.GetDB().Preload("Projects").Order("name asc").Find(&clients).Error; err != nil {
		respondBusinessError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"clients": clients})
}

func (h *ReferenceHandler) CreateClient(w http.ResponseWriter, r *http.Request) {
	var req clientRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusUnprocessableEntity, "validation", err.Error())
		return
	}

	client := models.Client{
		Name:         req.Name,
		Company:      req.Company,
		ContactEmail: req.ContactEmail,
		Active:       true,
	}
	if err := database.GetDB().Create(&client).Error; err != nil {
		respondBusinessError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, client)
}

func (h *ReferenceHandler) UpdateClient(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var client models.Client
	if err := database.GetDB().First(&client, id).Error; err != nil {
		respondError(w, http.StatusNotFound, "not_found", "client not found")
		return
	}

	var req clientRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusUnprocessableEntity, "validation", err.Error())
		return
	}

	client.Name = req.Name
	client.Company = req.Company
	client.ContactEmail = req.ContactEmail
	if req.Active != nil {
		client.Active = *req.Active
	}

	if err := database.GetDB().Save(&client).Error; err != nil {
		respondBusinessError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, client)
}

func (h *ReferenceHandler) DeleteClient(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	if err := database.GetDB().Delete(&models.Client{}, id).Error; err != nil {
		respondBusinessError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

type projectRequest struct {
	Name     string `json:"name" validate:"required"`
	ClientID *uint  `json:"client_id"`
	Active   *bool  `json:"active"`
}

func (h *ReferenceHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	query := database.GetDB().Preload("Client")
	if v := r.URL.Query().Get("client_id"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 32); err == nil && id > 0 {
			query = query.Where("client_id = ?", uint(id))
		}
	}

	var projects []models.Project
	if err := query.Order("name asc").Find(&projects).Error; err != nil {
		respondBusinessError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"projects": projects})
}

func (h *ReferenceHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req projectRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusUnprocessableEntity, "validation", err.Error())
		return
	}

	project := models.Project{
		Name:     req.Name,
		ClientID: req.ClientID,
		Active:   true,
	}
	if err := database.GetDB().Create(&project).Error; err != nil {
		respondBusinessError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, project)
}

func (h *ReferenceHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var project models.Project
	if err := database.GetDB().First(&project, id).Error; err != nil {
		respondError(w, http.StatusNotFound, "not_found", "project not found")
		return
	}

	var req projectRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusUnprocessableEntity, "validation", err.Error())
		return
	}

	project.Name = req.Name
	project.ClientID = req.ClientID
	if req.Active != nil {
		project.Active = *req.Active
	}

	if err := database.GetDB().Save(&project).Error; err != nil {
		respondBusinessError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, project)
}

func (h *ReferenceHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	if err := database.GetDB().Delete(&models.Project{}, id).Error; err != nil {
		respondBusinessError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

type bankAccountRequest struct {
	UserID        uint   `json:"user_id" validate:"required"`
	BankName      string `json:"bank_name" validate:"required"`
	AccountName   string `json:"account_name" validate:"required"`
	AccountNumber string `json:"account_number" validate:"required"`
}

func (h *ReferenceHandler) ListBankAccounts(w http.ResponseWriter, r *http.Request) {
	query := database.GetDB()
	if v := r.URL.Query().Get("user_id"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 32); err == nil && id > 0 {
			query = query.Where("user_id = ?", uint(id))
		}
	}

	var accounts []models.BankAccount
	if err := query.Order("bank_name asc").Find(&accounts).Error; err != nil {
		respondBusinessError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"bank_accounts": accounts})
}

func (h *ReferenceHandler) CreateBankAccount(w http.ResponseWriter, r *http.Request) {
	var req bankAccountRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusUnprocessableEntity, "validation", err.Error())
		return
	}

	account := models.BankAccount{
		UserID:        req.UserID,
		BankName:      req.BankName,
		AccountName:   req.AccountName,
		AccountNumber: req.AccountNumber,
		Active:        true,
	}
	if err := database.GetDB().Create(&account).Error; err != nil {
		respondBusinessError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, account)
}

func (h *ReferenceHandler) DeleteBankAccount(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	if err := database.GetDB().Delete(&models.BankAccount{}, id).Error; err != nil {
		respondBusinessError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
