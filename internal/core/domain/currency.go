package domain

// Currency describes a currency the app can display.
type Currency struct {
	CurrencyCode string `json:"currencyCode"` // e.g. "GHS"
	Name         string `json:"name"`         // e.g. "Ghanaian Cedi"
	Symbol       string `json:"symbol"`       // e.g. "₵"
	Flag         string `json:"flag"`         // emoji flag shown next to the code
	IsDefault    bool   `json:"isDefault"`
}
