package handlers

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/rokadeamol25/billing-app-mvp-sub000/internal/billing"
	"github.com/rokadeamol25/billing-app-mvp-sub000/internal/services"
)

// writeServiceError maps service errors onto HTTP status codes.
// Validation failures are 400, overpayments 422, dependent-record
// conflicts 409, missing rows 404, anything else 500.
func writeServiceError(w http.ResponseWriter, err error) {
	var validationErr *billing.ValidationError
	var overpaymentErr *billing.OverpaymentError
	var conflictErr *services.ConflictError

	switch {
	case errors.As(err, &validationErr):
		http.Error(w, validationErr.Error(), http.StatusBadRequest)
	case errors.As(err, &overpaymentErr):
		http.Error(w, overpaymentErr.Error(), http.StatusUnprocessableEntity)
	case errors.As(err, &conflictErr):
		http.Error(w, conflictErr.Error(), http.StatusConflict)
	case errors.Is(err, pgx.ErrNoRows):
		http.Error(w, "Not found", http.StatusNotFound)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
