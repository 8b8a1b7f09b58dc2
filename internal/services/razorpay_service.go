package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	razorpay "github.com/razorpay/razorpay-go"
	"github.com/rokadeamol25/billing-app-mvp-sub000/internal/billing"
	"github.com/rokadeamol25/billing-app-mvp-sub000/internal/models"
	"github.com/rokadeamol25/billing-app-mvp-sub000/internal/repositories"
)

// RazorpayService handles online collection of invoice balances.
// A verified gateway payment is recorded through the same
// overpayment-checked path as a manual payment.
type RazorpayService struct {
	transactionRepo   *repositories.OnlineTransactionRepository
	invoiceService    *InvoiceService
	paymentService    *PaymentService
	systemSettingRepo *repositories.SystemSettingRepository
	// Fallback credentials from environment (used if DB credentials not set)
	envKeyID         string
	envKeySecret     string
	envWebhookSecret string
}

func NewRazorpayService(
	keyID, keySecret, webhookSecret string,
	transactionRepo *repositories.OnlineTransactionRepository,
	invoiceService *InvoiceService,
	paymentService *PaymentService,
	systemSettingRepo *repositories.SystemSettingRepository,
) *RazorpayService {
	return &RazorpayService{
		transactionRepo:   transactionRepo,
		invoiceService:    invoiceService,
		paymentService:    paymentService,
		systemSettingRepo: systemSettingRepo,
		envKeyID:          keyID,
		envKeySecret:      keySecret,
		envWebhookSecret:  webhookSecret,
	}
}

// getCredentials returns the Razorpay credentials (from DB first, then env fallback)
func (s *RazorpayService) getCredentials(ctx context.Context) (keyID, keySecret, webhookSecret string) {
	if setting, err := s.systemSettingRepo.Get(ctx, "razorpay_key_id"); err == nil && setting != nil && setting.SettingValue != "" {
		keyID = setting.SettingValue
	}
	if setting, err := s.systemSettingRepo.Get(ctx, "razorpay_key_secret"); err == nil && setting != nil && setting.SettingValue != "" {
		keySecret = setting.SettingValue
	}
	if setting, err := s.systemSettingRepo.Get(ctx, "razorpay_webhook_secret"); err == nil && setting != nil && setting.SettingValue != "" {
		webhookSecret = setting.SettingValue
	}

	if keyID == "" {
		keyID = s.envKeyID
	}
	if keySecret == "" {
		keySecret = s.envKeySecret
	}
	if webhookSecret == "" {
		webhookSecret = s.envWebhookSecret
	}

	return keyID, keySecret, webhookSecret
}

// getClient returns a Razorpay client with current credentials
func (s *RazorpayService) getClient(ctx context.Context) *razorpay.Client {
	keyID, keySecret, _ := s.getCredentials(ctx)
	if keyID == "" || keySecret == "" {
		return nil
	}
	return razorpay.NewClient(keyID, keySecret)
}

// ListInvoiceTransactions returns all gateway attempts for an invoice,
// newest first
func (s *RazorpayService) ListInvoiceTransactions(ctx context.Context, invoiceID int) ([]*models.OnlineTransaction, error) {
	return s.transactionRepo.ListByInvoice(ctx, invoiceID)
}

// PublicKey returns the publishable key id the checkout widget embeds.
// The secret never leaves the server.
func (s *RazorpayService) PublicKey(ctx context.Context) string {
	keyID, _, _ := s.getCredentials(ctx)
	return keyID
}

// IsEnabled checks if online payments are enabled in system settings
func (s *RazorpayService) IsEnabled(ctx context.Context) bool {
	setting, err := s.systemSettingRepo.Get(ctx, "online_payment_enabled")
	if err != nil || setting == nil {
		return false
	}
	return setting.SettingValue == "true"
}

// toPaise converts rupees to the integer paise the gateway API wants.
// Rounded, not truncated: 19.99 rupees is 1999 paise, not 1998.
func toPaise(rupees float64) int {
	return int(math.Round(rupees * 100))
}

// CreateOrderResponse carries checkout fields for the frontend
type CreateOrderResponse struct {
	OrderID       string  `json:"order_id"`
	AmountPaise   int     `json:"amount"` // Razorpay checkout wants paise
	Currency      string  `json:"currency"`
	KeyID         string  `json:"key_id"`
	InvoiceNumber string  `json:"invoice_number"`
	CustomerName  string  `json:"customer_name"`
	BalanceDue    float64 `json:"balance_due"`
}

// CreateOrder creates a gateway order for an invoice's balance
func (s *RazorpayService) CreateOrder(ctx context.Context, req *models.CreateOrderRequest) (*CreateOrderResponse, error) {
	if !s.IsEnabled(ctx) {
		return nil, errors.New("online payments are currently disabled")
	}

	client := s.getClient(ctx)
	if client == nil {
		return nil, errors.New("razorpay client not configured")
	}

	invoice, err := s.invoiceService.GetInvoice(ctx, req.InvoiceID)
	if err != nil {
		return nil, err
	}

	amount := req.Amount
	if amount == 0 {
		amount = invoice.BalanceDue
	}
	if amount <= 0 {
		return nil, &billing.ValidationError{Field: "amount", Message: "nothing to collect, invoice is settled"}
	}
	if amount > invoice.BalanceDue {
		return nil, &billing.OverpaymentError{Amount: amount, BalanceDue: invoice.BalanceDue}
	}

	amountPaise := toPaise(amount)

	orderData := map[string]interface{}{
		"amount":   amountPaise,
		"currency": "INR",
		"receipt":  fmt.Sprintf("inv_%d_%d", invoice.ID, time.Now().Unix()),
		"notes": map[string]interface{}{
			"invoice_id":     invoice.ID,
			"invoice_number": invoice.InvoiceNumber,
		},
	}

	order, err := client.Order.Create(orderData, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create razorpay order: %w", err)
	}

	orderID := order["id"].(string)

	tx := &models.OnlineTransaction{
		RazorpayOrderID: orderID,
		InvoiceID:       invoice.ID,
		CustomerID:      invoice.CustomerID,
		Amount:          billing.Round2(amount),
	}
	if err := s.transactionRepo.Create(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to store transaction: %w", err)
	}

	keyID, _, _ := s.getCredentials(ctx)
	return &CreateOrderResponse{
		OrderID:       orderID,
		AmountPaise:   amountPaise,
		Currency:      "INR",
		KeyID:         keyID,
		InvoiceNumber: invoice.InvoiceNumber,
		CustomerName:  invoice.CustomerName,
		BalanceDue:    invoice.BalanceDue,
	}, nil
}

// VerifyPayment verifies the checkout signature and records the payment
// against the invoice
func (s *RazorpayService) VerifyPayment(ctx context.Context, req *models.VerifyPaymentRequest) (*models.OnlineTransaction, error) {
	if !s.verifySignature(ctx, req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature) {
		_ = s.transactionRepo.UpdatePaymentFailed(ctx, req.RazorpayOrderID, "Invalid signature")
		return nil, errors.New("invalid payment signature")
	}

	tx, err := s.transactionRepo.GetByOrderID(ctx, req.RazorpayOrderID)
	if err != nil {
		return nil, fmt.Errorf("transaction not found: %w", err)
	}

	// Idempotent: checkout callback and webhook can both land here
	if tx.Status == models.OnlineTxStatusSuccess {
		return tx, nil
	}

	payment, err := s.paymentService.RecordPayment(ctx, &models.CreatePaymentRequest{
		DocumentType: models.DocumentTypeInvoice,
		DocumentID:   tx.InvoiceID,
		Amount:       tx.Amount,
		Method:       "razorpay",
		Reference:    req.RazorpayPaymentID,
	}, 0)
	if err != nil {
		_ = s.transactionRepo.UpdatePaymentFailed(ctx, req.RazorpayOrderID, err.Error())
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}

	err = s.transactionRepo.UpdatePaymentSuccess(ctx, req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature, payment.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	return s.transactionRepo.GetByOrderID(ctx, req.RazorpayOrderID)
}

// verifySignature verifies the Razorpay payment signature
func (s *RazorpayService) verifySignature(ctx context.Context, orderID, paymentID, signature string) bool {
	_, keySecret, _ := s.getCredentials(ctx)
	if keySecret == "" {
		return false
	}
	data := orderID + "|" + paymentID
	h := hmac.New(sha256.New, []byte(keySecret))
	h.Write([]byte(data))
	expectedSignature := hex.EncodeToString(h.Sum(nil))
	return hmac.Equal([]byte(expectedSignature), []byte(signature))
}

// VerifyWebhookSignature verifies the X-Razorpay-Signature header over
// the raw webhook body
func (s *RazorpayService) VerifyWebhookSignature(ctx context.Context, body []byte, signature string) bool {
	_, _, webhookSecret := s.getCredentials(ctx)
	if webhookSecret == "" {
		return false
	}
	h := hmac.New(sha256.New, []byte(webhookSecret))
	h.Write(body)
	expectedSignature := hex.EncodeToString(h.Sum(nil))
	return hmac.Equal([]byte(expectedSignature), []byte(signature))
}

// HandleWebhook processes payment.captured events. Other events are
// logged and acknowledged.
func (s *RazorpayService) HandleWebhook(ctx context.Context, body []byte) error {
	var event struct {
		Event   string `json:"event"`
		Payload struct {
			Payment struct {
				Entity struct {
					ID      string `json:"id"`
					OrderID string `json:"order_id"`
				} `json:"entity"`
			} `json:"payment"`
		} `json:"payload"`
	}

	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("invalid webhook payload: %w", err)
	}

	switch event.Event {
	case "payment.captured":
		orderID := event.Payload.Payment.Entity.OrderID
		paymentID := event.Payload.Payment.Entity.ID

		tx, err := s.transactionRepo.GetByOrderID(ctx, orderID)
		if err != nil {
			return fmt.Errorf("transaction not found for order %s: %w", orderID, err)
		}
		if tx.Status == models.OnlineTxStatusSuccess {
			return nil
		}

		payment, err := s.paymentService.RecordPayment(ctx, &models.CreatePaymentRequest{
			DocumentType: models.DocumentTypeInvoice,
			DocumentID:   tx.InvoiceID,
			Amount:       tx.Amount,
			Method:       "razorpay",
			Reference:    paymentID,
		}, 0)
		if err != nil {
			_ = s.transactionRepo.UpdatePaymentFailed(ctx, orderID, err.Error())
			return fmt.Errorf("failed to record payment: %w", err)
		}

		return s.transactionRepo.UpdatePaymentSuccess(ctx, orderID, paymentID, "", payment.ID)

	case "payment.failed":
		orderID := event.Payload.Payment.Entity.OrderID
		return s.transactionRepo.UpdatePaymentFailed(ctx, orderID, "Payment failed at gateway")

	default:
		log.Printf("[Razorpay] Ignoring webhook event: %s", event.Event)
		return nil
	}
}
