package service

import (
	"context"

	"gearshare-backend/internal/domain"
	"gearshare-backend/internal/pricing"
)

// ListingSuggestion is what the listing form shows before the user commits:
// the detected equipment (if any), the condition-adjusted rate range, the
// recommended deposit, and the selectable duration tiers.
type ListingSuggestion struct {
	Equipment       *domain.EquipmentRecord  `json:"equipment,omitempty"`
	SuggestedRate   *domain.PriceRange       `json:"suggested_rate,omitempty"`
	DepositAmount   int                      `json:"deposit_amount,omitempty"`
	DurationOptions []pricing.DurationOption `json:"duration_options"`
}

type ListingService interface {
	SuggestListing(ctx context.Context, title, description string, condition domain.ConditionGrade) (*ListingSuggestion, error)
	CreateListing(ctx context.Context, listing *domain.Listing) error
	GetListing(ctx context.Context, id string) (*domain.Listing, error)
	ListListings(ctx context.Context, category string, page, pageSize int32) ([]domain.Listing, int32, error)
	ListMyListings(ctx context.Context, ownerID string, page, pageSize int32) ([]domain.Listing, int32, error)
}
