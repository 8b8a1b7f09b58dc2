package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/rokadeamol25/billing-app-mvp-sub000/internal/services"
	"github.com/rokadeamol25/billing-app-mvp-sub000/pkg/utils"
)

type ReminderHandler struct {
	Service *services.ReminderService
}

func NewReminderHandler(s *services.ReminderService) *ReminderHandler {
	return &ReminderHandler{Service: s}
}

// SendInvoiceReminder pushes a WhatsApp payment reminder for an unpaid invoice
func (h *ReminderHandler) SendInvoiceReminder(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	if err := h.Service.SendPaymentReminder(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]string{"status": "sent"})
}
