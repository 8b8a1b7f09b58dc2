package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"

	"github.com/rokadeamol25/billing-app-mvp-sub000/internal/billing"
	"github.com/rokadeamol25/billing-app-mvp-sub000/internal/services"
)

func TestWriteServiceError_Validation(t *testing.T) {
	rec := httptest.NewRecorder()
	writeServiceError(rec, &billing.ValidationError{Field: "quantity", Message: "must be positive"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "quantity")
}

func TestWriteServiceError_Overpayment(t *testing.T) {
	rec := httptest.NewRecorder()
	writeServiceError(rec, &billing.OverpaymentError{Amount: 150, BalanceDue: 100})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestWriteServiceError_WrappedOverpayment(t *testing.T) {
	rec := httptest.NewRecorder()
	err := fmt.Errorf("recording payment: %w", &billing.OverpaymentError{Amount: 150, BalanceDue: 100})
	writeServiceError(rec, err)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestWriteServiceError_Conflict(t *testing.T) {
	rec := httptest.NewRecorder()
	writeServiceError(rec, &services.ConflictError{Message: "cannot delete invoice with recorded payments"})

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "recorded payments")
}

func TestWriteServiceError_DeleteMissingRowIsNotFound(t *testing.T) {
	rec := httptest.NewRecorder()
	writeServiceError(rec, fmt.Errorf("failed to get customer: %w", pgx.ErrNoRows))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestWriteServiceError_NotFound(t *testing.T) {
	rec := httptest.NewRecorder()
	writeServiceError(rec, fmt.Errorf("failed to get invoice: %w", pgx.ErrNoRows))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestWriteServiceError_Internal(t *testing.T) {
	rec := httptest.NewRecorder()
	writeServiceError(rec, errors.New("connection reset"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
