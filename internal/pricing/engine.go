package pricing

import (
	"errors"
	"fmt"

	"gearshare-backend/internal/domain"
)

// ErrNoPriceSource is returned when a calculation has neither a resolvable
// catalog record nor a complete manual purchase-price + daily-rate pair.
var ErrNoPriceSource = errors.New("either a catalog equipment id or a purchase price with a custom daily rate is required")

// ErrUnknownDuration is returned for a duration outside the supported tiers.
var ErrUnknownDuration = errors.New("unsupported rental duration")

// Catalog is the lookup surface the engine needs. *catalog.Catalog satisfies it.
type Catalog interface {
	GetByID(id string) *domain.EquipmentRecord
}

// Engine computes rental cost breakdowns and validates user-entered prices
// against catalog or heuristic reference ranges. All methods are pure over the
// injected catalog; identical inputs always produce identical outputs.
type Engine struct {
	catalog Catalog
}

func NewEngine(catalog Catalog) *Engine {
	return &Engine{catalog: catalog}
}

type sourceKind int

const (
	sourceCatalog sourceKind = iota + 1
	sourceManual
)

// PriceSource identifies where base pricing comes from: a catalog record or a
// manual purchase-price + custom-daily-rate pair. Use CatalogSource or
// ManualSource; the zero value is invalid and rejected by Calculate.
type PriceSource struct {
	kind            sourceKind
	equipmentID     string
	purchasePrice   int
	customDailyRate domain.PriceRange
}

// CatalogSource prices a rental from a catalog record.
func CatalogSource(equipmentID string) PriceSource {
	return PriceSource{kind: sourceCatalog, equipmentID: equipmentID}
}

// ManualSource prices a rental for equipment absent from the catalog.
func ManualSource(purchasePrice int, customDailyRate domain.PriceRange) PriceSource {
	return PriceSource{kind: sourceManual, purchasePrice: purchasePrice, customDailyRate: customDailyRate}
}

// Calculation is the full cost breakdown for one rental quote. It has no
// identity and no lifecycle; it is recomputed fresh on every call.
type Calculation struct {
	BasePrice       domain.PriceRange `json:"base_price"`
	DiscountedPrice domain.PriceRange `json:"discounted_price"`
	Savings         domain.PriceRange `json:"savings"`
	InsuranceCost   int               `json:"insurance_cost"`
	DepositAmount   int               `json:"deposit_amount"`
	PlatformFee     domain.PriceRange `json:"platform_fee"`
	TotalCost       domain.PriceRange `json:"total_cost"`
}

// Calculate produces the cost breakdown for one rental.
//
// The platform fee is asymmetric on purpose: 10% of the discounted minimum and
// 15% of the discounted maximum, so the fee scales up with rental value. When
// insurance is elected it substitutes for the deposit, which is returned as 0.
func (e *Engine) Calculate(source PriceSource, duration domain.DurationTier, includeInsurance bool) (*Calculation, error) {
	rates, ok := tierTable[duration]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDuration, duration)
	}

	var (
		basePrice     domain.PriceRange
		insuranceCost int
		depositAmount int
	)

	switch source.kind {
	case sourceCatalog:
		rec := e.catalog.GetByID(source.equipmentID)
		if rec == nil {
			return nil, fmt.Errorf("equipment %q not in catalog: %w", source.equipmentID, ErrNoPriceSource)
		}
		basePrice = rec.Pricing[duration]
		insuranceCost = rec.Insurance[duration]
		depositAmount = rec.DepositAmount
	case sourceManual:
		if source.purchasePrice <= 0 {
			return nil, fmt.Errorf("purchase price must be positive: %w", ErrNoPriceSource)
		}
		basePrice = scaleRange(source.customDailyRate, float64(rates.Days))
		insuranceCost = Insurance(source.purchasePrice, duration)
		depositAmount = Deposit(source.purchasePrice)
	default:
		return nil, ErrNoPriceSource
	}

	discountedPrice := scaleRange(basePrice, 1-rates.Discount)
	savings := domain.PriceRange{
		Min: basePrice.Min - discountedPrice.Min,
		Max: basePrice.Max - discountedPrice.Max,
	}
	platformFee := domain.PriceRange{
		Min: roundToInt(float64(discountedPrice.Min) * 0.10),
		Max: roundToInt(float64(discountedPrice.Max) * 0.15),
	}
	totalCost := domain.PriceRange{
		Min: discountedPrice.Min + platformFee.Min,
		Max: discountedPrice.Max + platformFee.Max,
	}
	if includeInsurance {
		totalCost.Min += insuranceCost
		totalCost.Max += insuranceCost
		// Insurance substitutes for the refundable deposit.
		depositAmount = 0
	}

	return &Calculation{
		BasePrice:       basePrice,
		DiscountedPrice: discountedPrice,
		Savings:         savings,
		InsuranceCost:   insuranceCost,
		DepositAmount:   depositAmount,
		PlatformFee:     platformFee,
		TotalCost:       totalCost,
	}, nil
}

// RateValidation reports whether a daily rate sits inside the expected band.
// Out-of-range values are guidance, not errors; submission is never blocked.
type RateValidation struct {
	IsValid    bool               `json:"is_valid"`
	Reason     string             `json:"reason,omitempty"`
	Suggestion *domain.PriceRange `json:"suggestion,omitempty"`
}

// ValidateDailyRate checks a proposed daily rate against the catalog range for
// the equipment, or a purchase-price heuristic when there is no catalog match.
//
// The guards run in this exact order: the 0.7/1.3 factors are hard market
// bounds and the 0.9/1.1 factors are soft warning bands strictly inside them.
// Reordering the checks changes behavior at the overlaps.
func (e *Engine) ValidateDailyRate(dailyRate int, equipmentID string, purchasePrice int, condition domain.ConditionGrade) RateValidation {
	mult := ConditionMultiplier(condition)
	rate := float64(dailyRate)

	if rec := e.resolve(equipmentID); rec != nil {
		min := float64(rec.DailyRate.Min) * mult
		max := float64(rec.DailyRate.Max) * mult
		suggestion := &domain.PriceRange{Min: roundToInt(min), Max: roundToInt(max)}

		switch {
		case rate < min*0.7:
			return RateValidation{Reason: "daily rate is below market rate for this equipment", Suggestion: suggestion}
		case rate > max*1.3:
			return RateValidation{Reason: "daily rate is above market rate for this equipment", Suggestion: suggestion}
		case rate > max*1.1:
			return RateValidation{Reason: "daily rate is higher than recommended", Suggestion: suggestion}
		case rate < min*0.9:
			return RateValidation{Reason: "daily rate is lower than recommended", Suggestion: suggestion}
		}
		return RateValidation{IsValid: true}
	}

	if purchasePrice > 0 {
		minRate := float64(purchasePrice) * 0.02 * mult
		maxRate := float64(purchasePrice) * 0.06 * mult
		if rate < minRate || rate > maxRate {
			return RateValidation{
				Reason:     "daily rate is outside the suggested range for this purchase price",
				Suggestion: &domain.PriceRange{Min: roundToInt(minRate), Max: roundToInt(maxRate)},
			}
		}
		return RateValidation{IsValid: true}
	}

	// No reference data means no opinion, not a failure.
	return RateValidation{IsValid: true}
}

// SuggestedDailyRate returns the reference range a daily rate is judged
// against: the condition-adjusted catalog range, or the purchase-price
// heuristic band when there is no catalog match. Nil means no opinion.
func (e *Engine) SuggestedDailyRate(equipmentID string, purchasePrice int, condition domain.ConditionGrade) *domain.PriceRange {
	mult := ConditionMultiplier(condition)
	if rec := e.resolve(equipmentID); rec != nil {
		return &domain.PriceRange{
			Min: roundToInt(float64(rec.DailyRate.Min) * mult),
			Max: roundToInt(float64(rec.DailyRate.Max) * mult),
		}
	}
	if purchasePrice > 0 {
		return &domain.PriceRange{
			Min: roundToInt(float64(purchasePrice) * 0.02 * mult),
			Max: roundToInt(float64(purchasePrice) * 0.06 * mult),
		}
	}
	return nil
}

// DepositValidation reports whether a deposit sits inside the expected band.
type DepositValidation struct {
	IsValid    bool   `json:"is_valid"`
	Reason     string `json:"reason,omitempty"`
	Suggestion int    `json:"suggestion,omitempty"`
}

// ValidateDeposit checks a proposed deposit against the catalog deposit for the
// equipment, or half the purchase price when there is no catalog match.
func (e *Engine) ValidateDeposit(depositAmount int, equipmentID string, purchasePrice int) DepositValidation {
	expected := 0
	if rec := e.resolve(equipmentID); rec != nil {
		expected = rec.DepositAmount
	} else if purchasePrice > 0 {
		expected = Deposit(purchasePrice)
	}

	if expected <= 0 {
		return DepositValidation{IsValid: true}
	}

	deposit := float64(depositAmount)
	switch {
	case deposit < float64(expected)*0.8:
		return DepositValidation{Reason: "deposit is lower than recommended", Suggestion: expected}
	case deposit > float64(expected)*1.5:
		return DepositValidation{Reason: "deposit is higher than necessary", Suggestion: expected}
	}
	return DepositValidation{IsValid: true}
}

// AdjustedPricing pairs a condition-adjusted daily rate with the unmodified
// deposit: the deposit tracks replacement value, not wear.
type AdjustedPricing struct {
	DailyRate     domain.PriceRange `json:"daily_rate"`
	DepositAmount int               `json:"deposit_amount"`
}

// ConditionAdjustedPricing returns the catalog daily rate scaled by the
// condition multiplier, or nil when the equipment id does not resolve.
func (e *Engine) ConditionAdjustedPricing(equipmentID string, condition domain.ConditionGrade) *AdjustedPricing {
	rec := e.resolve(equipmentID)
	if rec == nil {
		return nil
	}
	return &AdjustedPricing{
		DailyRate:     scaleRange(rec.DailyRate, ConditionMultiplier(condition)),
		DepositAmount: rec.DepositAmount,
	}
}

func (e *Engine) resolve(equipmentID string) *domain.EquipmentRecord {
	if equipmentID == "" {
		return nil
	}
	return e.catalog.GetByID(equipmentID)
}
