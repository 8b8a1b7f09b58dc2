package services

import (
	"context"
	"fmt"
	"log"

	"github.com/rokadeamol25/billing-app-mvp-sub000/internal/billing"
	"github.com/rokadeamol25/billing-app-mvp-sub000/internal/repositories"
	"github.com/rokadeamol25/billing-app-mvp-sub000/internal/timeutil"
	"github.com/rokadeamol25/billing-app-mvp-sub000/internal/whatsapp"
)

// ReminderService sends WhatsApp payment reminders for open invoices.
type ReminderService struct {
	InvoiceService    *InvoiceService
	CustomerRepo      *repositories.CustomerRepository
	SystemSettingRepo *repositories.SystemSettingRepository
}

func NewReminderService(
	invoiceService *InvoiceService,
	customerRepo *repositories.CustomerRepository,
	systemSettingRepo *repositories.SystemSettingRepository,
) *ReminderService {
	return &ReminderService{
		InvoiceService:    invoiceService,
		CustomerRepo:      customerRepo,
		SystemSettingRepo: systemSettingRepo,
	}
}

func (s *ReminderService) getClient(ctx context.Context) (*whatsapp.Client, error) {
	setting, err := s.SystemSettingRepo.Get(ctx, SettingWhatsAppAPIKey)
	if err != nil || setting == nil || setting.SettingValue == "" {
		return nil, &billing.ValidationError{Field: "whatsapp_api_key", Message: "WhatsApp API key is not configured"}
	}
	return whatsapp.NewClient(setting.SettingValue), nil
}

// SendPaymentReminder sends the payment_reminder template for an
// invoice that still has a balance due.
func (s *ReminderService) SendPaymentReminder(ctx context.Context, invoiceID int) error {
	client, err := s.getClient(ctx)
	if err != nil {
		return err
	}

	invoice, err := s.InvoiceService.GetInvoice(ctx, invoiceID)
	if err != nil {
		return err
	}
	if invoice.PaymentStatus == billing.StatusPaid {
		return &billing.ValidationError{Field: "invoice_id", Message: "invoice is already settled"}
	}

	customer, err := s.CustomerRepo.Get(ctx, invoice.CustomerID)
	if err != nil {
		return fmt.Errorf("failed to load customer: %w", err)
	}
	if customer.Phone == "" {
		return &billing.ValidationError{Field: "customer", Message: "customer has no phone number on record"}
	}

	params := []string{
		customer.Name,
		invoice.InvoiceNumber,
		fmt.Sprintf("%.2f", invoice.BalanceDue),
		timeutil.FormatIST(invoice.DueDate, timeutil.DateLayout),
	}
	if err := client.SendTemplate(customer.Phone, "payment_reminder", params); err != nil {
		return fmt.Errorf("failed to send reminder: %w", err)
	}

	log.Printf("[Reminder] Sent payment reminder for %s to customer %d", invoice.InvoiceNumber, customer.ID)
	return nil
}
