package handlers

import (
	"net/http"

	"workforce/config"
	"workforce/database"
	"workforce/models"

	"github.com/sirupsen/logrus"
)

type PermissionsHandler struct {
	config *config.Config
}

func NewPermissionsHandler(cfg *config.Config) *PermissionsHandler {
	return &PermissionsHandler{config: cfg}
}

func (h *PermissionsHandler) List(w http.ResponseWriter, r *http.Request) {
	var rows []models.RolePermission
	if err := database.GetDB().Find(&rows).Error; err != nil {
		respondBusinessError(w, err)
		return
	}

	matrix := models.BuildMatrix(rows)
	out := map[models.Role][]string{}
	for role, perms := range matrix {
		for perm := range perms {
			out[role] = append(out[role], perm)
		}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"matrix":      out,
		"permissions": models.AllPermissions,
	})
}

type permissionSaveRequest struct {
	Matrix map[models.Role][]string `json:"matrix" validate:"required"`
}

// Save replaces the whole permission set. Toggling is a client-side concern;
// the server only ever receives — and stores — the complete matrix.
func (h *PermissionsHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req permissionSaveRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusUnprocessableEntity, "validation", err.Error())
		return
	}

	known := map[string]bool{}
	for _, p := range models.AllPermissions {
		known[p] = true
	}

	matrix := models.PermissionMatrix{}
	for role, perms := range req.Matrix {
		if !models.ValidRole(role) {
			respondError(w, http.StatusUnprocessableEntity, "validation", "unknown role "+string(role))
			return
		}
		matrix[role] = map[string]bool{}
		for _, perm := range perms {
			if !known[perm] {
				respondError(w, http.StatusUnprocessableEntity, "validation", "unknown permission "+perm)
				return
			}
			matrix[role][perm] = true
		}
	}

	// Admins keep permissions.manage no matter what was submitted, so the
	// matrix can never lock every role out of editing it.
	if matrix[models.RoleAdmin] == nil {
		matrix[models.RoleAdmin] = map[string]bool{}
	}
	matrix[models.RoleAdmin][models.PermPermissionsManage] = true

	if err := database.ReplacePermissionMatrix(matrix); err != nil {
		respondBusinessError(w, err)
		return
	}

	logrus.WithField("grants", len(matrix.Rows())).Info("permission matrix replaced")
	respondJSON(w, http.StatusOK, map[string]string{"status": "saved"})
}
