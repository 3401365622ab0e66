package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"safebaby/models"

	"gorm.io/gorm"
)

// planTiers maps billing-provider plan references to internal tiers. Anything
// unknown stays free.
var planTiers = map[string]string{
	"premium_monthly": models.TierPremium,
	"premium_yearly":  models.TierPremium,
	"free":            models.TierFree,
}

type SubscriptionService struct {
	db      *gorm.DB
	client  *http.Client
	baseURL string
	apiKey  string
}

func NewSubscriptionService(db *gorm.DB) *SubscriptionService {
	return &SubscriptionService{
		db:      db,
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: os.Getenv("BILLING_API_URL"),
		apiKey:  os.Getenv("BILLING_API_KEY"),
	}
}

type providerStatus struct {
	Provider         string    `json:"provider"`
	Ref              string    `json:"ref"`
	Plan             string    `json:"plan"`
	Status           string    `json:"status"`
	CurrentPeriodEnd time.Time `json:"current_period_end"`
}

// Refresh pulls the billing provider's view of a user's subscription, stores
// it, and re-derives User.Tier. A lapsed or canceled subscription drops the
// user back to free.
func (s *SubscriptionService) Refresh(userID uint) (*models.Subscription, error) {
	status, err := s.fetchStatus(userID)
	if err != nil {
		return nil, err
	}

	var sub models.Subscription
	err = s.db.Where("user_id = ?", userID).First(&sub).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	sub.UserID = userID
	sub.Provider = status.Provider
	sub.ProviderRef = status.Ref
	sub.Plan = status.Plan
	sub.Status = status.Status
	sub.CurrentPeriodEnd = status.CurrentPeriodEnd
	if err := s.db.Save(&sub).Error; err != nil {
		return nil, err
	}

	tier := models.TierFree
	if status.Status == "active" {
		if t, ok := planTiers[status.Plan]; ok {
			tier = t
		}
	}
	if err := s.db.Model(&models.User{}).
		Where("id = ?", userID).
		Update("tier", tier).Error; err != nil {
		return nil, err
	}

	return &sub, nil
}

func (s *SubscriptionService) fetchStatus(userID uint) (*providerStatus, error) {
	if s.baseURL == "" {
		return nil, fmt.Errorf("BILLING_API_URL not set")
	}

	req, err := http.NewRequest("GET", fmt.Sprintf("%s/subscriptions/%d", s.baseURL, userID), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call billing API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read billing response: %w", err)
	}
	if resp.StatusCode == http.StatusNotFound {
		// No subscription on record means free tier.
		return &providerStatus{Plan: "free", Status: "none"}, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("billing API error %d: %s", resp.StatusCode, string(body))
	}

	var status providerStatus
	if err := json.Unmarshal(body, &status); err != nil {
		return nil, fmt.Errorf("failed to parse billing JSON: %w", err)
	}
	return &status, nil
}
