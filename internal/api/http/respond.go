package http

import (
	"encoding/json"
	"net/http"

	"github.com/adarsh-sng/JustRentIt/internal/domain"
	"github.com/adarsh-sng/JustRentIt/internal/logger"
)

type errorBody struct {
	Kind    domain.ErrorKind `json:"kind"`
	Message string           `json:"message"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			logger.Error("Failed to encode response", "error", err)
		}
	}
}

// writeError maps business error kinds onto HTTP statuses. Anything
// without a kind is an internal error and its detail stays server-side.
func writeError(w http.ResponseWriter, err error) {
	kind := domain.KindOf(err)
	status := http.StatusInternalServerError
	message := err.Error()

	switch kind {
	case domain.ErrInvalidInput, domain.ErrInvalidState:
		status = http.StatusBadRequest
	case domain.ErrNotFound:
		status = http.StatusNotFound
	case domain.ErrForbidden:
		status = http.StatusForbidden
	default:
		logger.Error("Internal error", "error", err)
		kind = "internal"
		message = "internal server error"
	}

	writeJSON(w, status, errorResponse{Error: errorBody{Kind: kind, Message: message}})
}

func badRequest(w http.ResponseWriter, message string) {
	writeError(w, domain.NewError(domain.ErrInvalidInput, message))
}

type pagination struct {
	CurrentPage int32 `json:"current_page"`
	TotalPages  int32 `json:"total_pages"`
	Total       int32 `json:"total"`
	HasNext     bool  `json:"has_next"`
	HasPrev     bool  `json:"has_prev"`
}

func newPagination(page, pageSize, total int32) pagination {
	totalPages := total / pageSize
	if total%pageSize != 0 {
		totalPages++
	}
	return pagination{
		CurrentPage: page,
		TotalPages:  totalPages,
		Total:       total,
		HasNext:     page < totalPages,
		HasPrev:     page > 1,
	}
}
