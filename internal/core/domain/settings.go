package domain

import "time"

// UserCurrencySettings is the per-user record controlling how amounts are
// shown. It is created lazily with defaults on first load and overwritten
// wholesale on save.
type UserCurrencySettings struct {
	UserID            string            `json:"userID"`
	DefaultCurrency   string            `json:"defaultCurrency"`
	AccountCurrencies map[string]string `json:"accountCurrencies"` // accountID -> currency code override
	DisplayCurrency   string            `json:"displayCurrency"`
	AutoConvert       bool              `json:"autoConvert"`
	UpdatedAt         time.Time         `json:"updatedAt"`
}

// DefaultUserCurrencySettings returns the record handed out when a user has
// never saved settings (or when storage cannot be read).
func DefaultUserCurrencySettings(userID, baseCurrency string) UserCurrencySettings {
	return UserCurrencySettings{
		UserID:            userID,
		DefaultCurrency:   baseCurrency,
		AccountCurrencies: map[string]string{},
		DisplayCurrency:   baseCurrency,
		AutoConvert:       true,
	}
}
