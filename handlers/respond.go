package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"workforce/models"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

var validate = validator.New()

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		json.NewEncoder(w).Encode(v)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, map[string]string{"error": code, "message": message})
}

// respondBusinessError maps the business-rule sentinels onto their own codes
// so clients can tell a locked roster from a generic validation failure.
func respondBusinessError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrRosterLocked):
		respondError(w, http.StatusConflict, "roster_locked", "roster has approved working hours and can no longer be edited")
	case errors.Is(err, models.ErrInvalidTransition):
		respondError(w, http.StatusConflict, "invalid_transition", err.Error())
	case errors.Is(err, models.ErrRecordPaid):
		respondError(w, http.StatusConflict, "record_paid", "paid records are immutable")
	default:
		logrus.WithError(err).Error("persistence failure")
		respondError(w, http.StatusInternalServerError, "internal", "operation failed")
	}
}

// decodeJSON parses and validates a request body. Validation failures are
// surfaced before any database call is issued.
func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return err
	}
	return validate.Struct(dst)
}
