package controller

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/api-sage/wallet-ledger-service/src/internal/commons"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// statusForError maps domain error kinds to transport status codes. The
// fallback checks the envelope message so validation failures raised inside
// services map to 400 like everywhere else.
func statusForError(err error, message string) int {
	switch {
	case errors.Is(err, commons.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, commons.ErrDuplicateAccount):
		return http.StatusConflict
	case errors.Is(err, commons.ErrDuplicateTransaction):
		return http.StatusConflict
	case errors.Is(err, commons.ErrInsufficientBalance):
		return http.StatusUnprocessableEntity
	}

	if message == "validation failed" {
		return http.StatusBadRequest
	}

	return http.StatusInternalServerError
}
