package dto

import (
	"time"

	"github.com/famvault/famvault-backend/internal/core/domain"
)

// UpdateSettingsRequest overwrites a user's currency settings wholesale.
type UpdateSettingsRequest struct {
	DefaultCurrency   string            `json:"defaultCurrency" binding:"required,currencycode"`
	DisplayCurrency   string            `json:"displayCurrency" binding:"required,currencycode"`
	AutoConvert       *bool             `json:"autoConvert" binding:"required"`
	AccountCurrencies map[string]string `json:"accountCurrencies"`
}

// SettingsResponse defines the data returned for a user's currency settings.
type SettingsResponse struct {
	UserID            string            `json:"userID"`
	DefaultCurrency   string            `json:"defaultCurrency"`
	DisplayCurrency   string            `json:"displayCurrency"`
	AutoConvert       bool              `json:"autoConvert"`
	AccountCurrencies map[string]string `json:"accountCurrencies"`
	UpdatedAt         time.Time         `json:"updatedAt"`
}

// ToSettingsResponse converts domain.UserCurrencySettings to SettingsResponse DTO
func ToSettingsResponse(s domain.UserCurrencySettings) SettingsResponse {
	accountCurrencies := s.AccountCurrencies
	if accountCurrencies == nil {
		accountCurrencies = map[string]string{}
	}
	return SettingsResponse{
		UserID:            s.UserID,
		DefaultCurrency:   s.DefaultCurrency,
		DisplayCurrency:   s.DisplayCurrency,
		AutoConvert:       s.AutoConvert,
		AccountCurrencies: accountCurrencies,
		UpdatedAt:         s.UpdatedAt,
	}
}

// ToUserCurrencySettings builds the domain record this request overwrites.
func (r UpdateSettingsRequest) ToUserCurrencySettings(userID string) domain.UserCurrencySettings {
	accountCurrencies := r.AccountCurrencies
	if accountCurrencies == nil {
		accountCurrencies = map[string]string{}
	}
	return domain.UserCurrencySettings{
		UserID:            userID,
		DefaultCurrency:   r.DefaultCurrency,
		DisplayCurrency:   r.DisplayCurrency,
		AutoConvert:       *r.AutoConvert,
		AccountCurrencies: accountCurrencies,
	}
}
