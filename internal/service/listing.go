package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"gearshare-backend/internal/catalog"
	"gearshare-backend/internal/domain"
	"gearshare-backend/internal/logger"
	"gearshare-backend/internal/pricing"
	"gearshare-backend/internal/repository"
)

type listingService struct {
	listingRepo repository.ListingRepository
	catalog     *catalog.Catalog
	engine      *pricing.Engine
}

func NewListingService(listingRepo repository.ListingRepository, cat *catalog.Catalog, engine *pricing.Engine) ListingService {
	return &listingService{
		listingRepo: listingRepo,
		catalog:     cat,
		engine:      engine,
	}
}

// SuggestListing runs free-text detection over the draft title and description
// and returns pricing guidance for the form. No catalog match is a valid
// outcome: the suggestion then carries only the duration options.
func (s *listingService) SuggestListing(ctx context.Context, title, description string, condition domain.ConditionGrade) (*ListingSuggestion, error) {
	suggestion := &ListingSuggestion{DurationOptions: pricing.DurationOptions()}

	rec := s.catalog.FindByText(title + " " + description)
	if rec == nil {
		return suggestion, nil
	}

	adjusted := s.engine.ConditionAdjustedPricing(rec.ID, condition)
	suggestion.Equipment = rec
	suggestion.SuggestedRate = &adjusted.DailyRate
	suggestion.DepositAmount = adjusted.DepositAmount
	return suggestion, nil
}

// CreateListing stamps the listing with the engine's opinion and persists it.
// An out-of-band daily rate is recorded (price_validated=false plus the
// suggested range), never rejected; price guidance must not block submission.
func (s *listingService) CreateListing(ctx context.Context, listing *domain.Listing) error {
	if listing.OwnerID == "" {
		return fmt.Errorf("listing owner is required")
	}
	if strings.TrimSpace(listing.Title) == "" {
		return fmt.Errorf("listing title is required")
	}
	if listing.DailyRate <= 0 {
		return fmt.Errorf("daily rate must be positive")
	}

	if listing.ID == "" {
		listing.ID = uuid.New().String()
	}
	if listing.Status == "" {
		listing.Status = domain.ListingStatusActive
	}
	if listing.CreatedOn.IsZero() {
		listing.CreatedOn = time.Now()
	}
	if listing.Condition == "" {
		listing.Condition = domain.ConditionExcellent
	}

	if listing.EquipmentModel == "" {
		if rec := s.catalog.FindByText(listing.Title + " " + listing.Description); rec != nil {
			listing.EquipmentModel = rec.ID
			if listing.Category == "" {
				listing.Category = string(rec.Category)
			}
			logger.Debug("Detected equipment for listing", "listing_id", listing.ID, "equipment_id", rec.ID)
		}
	}

	validation := s.engine.ValidateDailyRate(listing.DailyRate, listing.EquipmentModel, listing.PurchasePrice, listing.Condition)
	listing.PriceValidated = validation.IsValid
	if suggested := s.engine.SuggestedDailyRate(listing.EquipmentModel, listing.PurchasePrice, listing.Condition); suggested != nil {
		listing.SuggestedRateMin = suggested.Min
		listing.SuggestedRateMax = suggested.Max
	}
	if !validation.IsValid {
		logger.Info("Listing priced outside suggested band", "listing_id", listing.ID, "daily_rate", listing.DailyRate, "reason", validation.Reason)
	}

	if listing.DepositAmount == 0 && listing.EquipmentModel != "" {
		if rec := s.catalog.GetByID(listing.EquipmentModel); rec != nil {
			listing.DepositAmount = rec.DepositAmount
		}
	}

	return s.listingRepo.Create(ctx, listing)
}

func (s *listingService) GetListing(ctx context.Context, id string) (*domain.Listing, error) {
	return s.listingRepo.GetByID(ctx, id)
}

func (s *listingService) ListListings(ctx context.Context, category string, page, pageSize int32) ([]domain.Listing, int32, error) {
	return s.listingRepo.List(ctx, category, page, pageSize)
}

func (s *listingService) ListMyListings(ctx context.Context, ownerID string, page, pageSize int32) ([]domain.Listing, int32, error) {
	return s.listingRepo.ListByOwner(ctx, ownerID, page, pageSize)
}
