package handlers

import (
	"net/http"
	"strconv"
	"time"

	"workforce/config"
	"workforce/database"
	"workforce/middleware"
	"workforce/models"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

type AuthHandler struct {
	config *config.Config
}

func NewAuthHandler(cfg *config.Config) *AuthHandler {
	return &AuthHandler{config: cfg}
}

func (h *AuthHandler) setTokenCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.config.JWTExpiration.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusUnprocessableEntity, "validation", err.Error())
		return
	}

	var user models.User
	if err := database.GetDB().Where("username = ?", req.Username).First(&user).Error; err != nil {
		respondError(w, http.StatusUnauthorized, "unauthorized", "invalid credentials")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		respondError(w, http.StatusUnauthorized, "unauthorized", "invalid credentials")
		return
	}

	token, err := middleware.GenerateToken(&user, h.config.JWTExpiration)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal", "failed to generate token")
		return
	}
	h.setTokenCookie(w, token)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	respondJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

type registerRequest struct {
	Code            string `json:"code" validate:"required"`
	Username        string `json:"username" validate:"required,min=3"`
	Password        string `json:"password" validate:"required,min=5"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusUnprocessableEntity, "validation", err.Error())
		return
	}

	var invite models.Invite
	if err := database.GetDB().Where("code = ?", req.Code).First(&invite).Error; err != nil {
		respondError(w, http.StatusUnprocessableEntity, "validation", "invalid invite code")
		return
	}
	if !invite.IsValid() {
		respondError(w, http.StatusUnprocessableEntity, "validation", "invite code expired or already used")
		return
	}

	var existing models.User
	if err := database.GetDB().Where("username = ?", req.Username).First(&existing).Error; err == nil {
		respondError(w, http.StatusUnprocessableEntity, "validation", "username already exists")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal", "failed to create account")
		return
	}

	user := models.User{
		Username:           req.Username,
		FullName:           invite.FullName,
		PasswordHash:       string(hashedPassword),
		Role:               invite.Role,
		MustChangePassword: false,
	}
	if err := database.GetDB().Create(&user).Error; err != nil {
		respondBusinessError(w, err)
		return
	}

	invite.Used = true
	database.GetDB().Save(&invite)

	token, err := middleware.GenerateToken(&user, h.config.JWTExpiration)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal", "failed to generate token")
		return
	}
	h.setTokenCookie(w, token)

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=5"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=NewPassword"`
}

func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	var req changePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusUnprocessableEntity, "validation", err.Error())
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		respondError(w, http.StatusUnauthorized, "unauthorized", "current password is incorrect")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal", "failed to hash password")
		return
	}

	user.PasswordHash = string(hashedPassword)
	user.MustChangePassword = false
	if err := database.GetDB().Save(user).Error; err != nil {
		respondBusinessError(w, err)
		return
	}

	token, err := middleware.GenerateToken(user, h.config.JWTExpiration)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal", "failed to generate token")
		return
	}
	h.setTokenCookie(w, token)

	respondJSON(w, http.StatusOK, map[string]string{"status": "password changed"})
}

type inviteRequest struct {
	FullName string      `json:"full_name" validate:"required"`
	Role     models.Role `json:"role" validate:"required,oneof=HR EMPLOYEE"`
}

func (h *AuthHandler) CreateInvite(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	var req inviteRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusUnprocessableEntity, "validation", err.Error())
		return
	}

	code, err := models.GenerateInviteCode()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal", "failed to generate invite code")
		return
	}

	invite := models.Invite{
		Code:      code,
		FullName:  req.FullName,
		Role:      req.Role,
		CreatedBy: user.ID,
		ExpiresAt: time.Now().Add(h.config.InviteExpiration),
	}
	if err := database.GetDB().Create(&invite).Error; err != nil {
		respondBusinessError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, invite)
}

func (h *AuthHandler) ListInvites(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	var invites []models.Invite
	err := database.GetDB().Where("created_by = ?", user.ID).Order("created_at desc").Find(&invites).Error
	if err != nil {
		respondBusinessError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"invites": invites})
}

func (h *AuthHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	var users []models.User
	if err := database.GetDB().Preload("BankAccount").Order("full_name asc").Find(&users).Error; err != nil {
		respondBusinessError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"users": users})
}

type updateUserRequest struct {
	FullName   string          `json:"full_name"`
	Role       models.Role     `json:"role" validate:"omitempty,oneof=ADMIN HR EMPLOYEE"`
	HourlyRate decimal.Decimal `json:"hourly_rate"`
	Active     *bool           `json:"active"`
}

func (h *AuthHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, "validation", "invalid user ID")
		return
	}

	var user models.User
	if err := database.GetDB().First(&user, id).Error; err != nil {
		respondError(w, http.StatusNotFound, "not_found", "user not found")
		return
	}

	var req updateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusUnprocessableEntity, "validation", err.Error())
		return
	}

	if req.FullName != "" {
		user.FullName = req.FullName
	}
	if req.Role != "" {
		user.Role = req.Role
	}
	if !req.HourlyRate.IsZero() {
		user.HourlyRate = req.HourlyRate
	}
	if req.Active != nil {
		user.Active = *req.Active
	}

	if err := database.GetDB().Save(&user).Error; err != nil {
		respondBusinessError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

func (h *AuthHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetUserFromContext(r.Context())

	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, "validation", "invalid user ID")
		return
	}
	if uint(id) == actor.ID {
		respondError(w, http.StatusUnprocessableEntity, "validation", "cannot delete your own account")
		return
	}

	var user models.User
	if err := database.GetDB().First(&user, id).Error; err != nil {
		respondError(w, http.StatusNotFound, "not_found", "user not found")
		return
	}

	if err := database.GetDB().Delete(&user).Error; err != nil {
		respondBusinessError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
