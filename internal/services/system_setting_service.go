package services

import (
	"context"
	"errors"

	"github.com/rokadeamol25/billing-app-mvp-sub000/internal/models"
	"github.com/rokadeamol25/billing-app-mvp-sub000/internal/repositories"
)

// Settings keys the app understands
const (
	SettingOnlinePaymentEnabled  = "online_payment_enabled"
	SettingRazorpayKeyID         = "razorpay_key_id"
	SettingRazorpayKeySecret     = "razorpay_key_secret"
	SettingRazorpayWebhookSecret = "razorpay_webhook_secret"
	SettingBusinessName          = "business_name"
	SettingBusinessGSTIN         = "business_gstin"
	SettingBusinessAddress       = "business_address"
	SettingWhatsAppAPIKey        = "whatsapp_api_key"
)

type SystemSettingService struct {
	Repo *repositories.SystemSettingRepository
}

func NewSystemSettingService(repo *repositories.SystemSettingRepository) *SystemSettingService {
	return &SystemSettingService{Repo: repo}
}

func (s *SystemSettingService) Get(ctx context.Context, key string) (*models.SystemSetting, error) {
	return s.Repo.Get(ctx, key)
}

func (s *SystemSettingService) List(ctx context.Context) ([]*models.SystemSetting, error) {
	settings, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}

	// Secrets never leave the API
	filtered := settings[:0]
	for _, setting := range settings {
		if setting.SettingKey == SettingRazorpayKeySecret || setting.SettingKey == SettingRazorpayWebhookSecret || setting.SettingKey == SettingWhatsAppAPIKey {
			continue
		}
		filtered = append(filtered, setting)
	}
	return filtered, nil
}

func (s *SystemSettingService) Set(ctx context.Context, key, value string, updatedByUserID int) error {
	if key == "" {
		return errors.New("setting key is required")
	}
	return s.Repo.Set(ctx, key, value, updatedByUserID)
}
