package domain

import "time"

type ListingStatus string

const (
	ListingStatusActive  ListingStatus = "ACTIVE"
	ListingStatusPaused  ListingStatus = "PAUSED"
	ListingStatusRemoved ListingStatus = "REMOVED"
)

// Listing is a user-created rental offer. SuggestedRateMin/Max and PriceValidated
// are stamped by the listing service from the pricing engine at creation time;
// EquipmentModel holds the catalog id when auto-detection found a match.
type Listing struct {
	ID               string         `json:"id"`
	OwnerID          string         `json:"owner_id"`
	Title            string         `json:"title"`
	Description      string         `json:"description"`
	Category         string         `json:"category"`
	Condition        ConditionGrade `json:"condition"`
	DailyRate        int            `json:"daily_rate"`
	DepositAmount    int            `json:"deposit_amount"`
	PurchasePrice    int            `json:"purchase_price"`
	EquipmentModel   string         `json:"equipment_model,omitempty"`
	SuggestedRateMin int            `json:"suggested_rate_min"`
	SuggestedRateMax int            `json:"suggested_rate_max"`
	PriceValidated   bool           `json:"price_validated"`
	PhotoURLs        []string       `json:"photo_urls"`
	Status           ListingStatus  `json:"status"`
	CreatedOn        time.Time      `json:"created_on"`
}
