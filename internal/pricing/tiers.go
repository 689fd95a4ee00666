package pricing

import (
	"math"

	"gearshare-backend/internal/domain"
)

// tierRates holds the fixed discount and insurance fractions for one duration tier.
type tierRates struct {
	Days          int
	Discount      float64
	InsuranceRate float64
}

// durationTiers is the closed set of supported rental lengths, in display order.
var durationTiers = []domain.DurationTier{
	domain.Duration1Day,
	domain.Duration3Day,
	domain.Duration7Day,
	domain.Duration14Day,
}

var tierTable = map[domain.DurationTier]tierRates{
	domain.Duration1Day:  {Days: 1, Discount: 0, InsuranceRate: 0.02},
	domain.Duration3Day:  {Days: 3, Discount: 0.20, InsuranceRate: 0.025},
	domain.Duration7Day:  {Days: 7, Discount: 0.40, InsuranceRate: 0.03},
	domain.Duration14Day: {Days: 14, Discount: 0.60, InsuranceRate: 0.035},
}

var conditionMultipliers = map[domain.ConditionGrade]float64{
	domain.ConditionExcellent: 1.0,
	domain.ConditionGood:      0.85,
	domain.ConditionFair:      0.70,
}

// DurationTiers returns the supported tiers in display order.
func DurationTiers() []domain.DurationTier {
	tiers := make([]domain.DurationTier, len(durationTiers))
	copy(tiers, durationTiers)
	return tiers
}

// NominalDays returns the number of days a tier covers (1/3/7/14).
// Unknown tiers return 0; callers are restricted to the closed enumeration.
func NominalDays(tier domain.DurationTier) int {
	return tierTable[tier].Days
}

// Discount returns the tier's discount fraction.
func Discount(tier domain.DurationTier) float64 {
	return tierTable[tier].Discount
}

// InsuranceRate returns the tier's insurance rate fraction.
func InsuranceRate(tier domain.DurationTier) float64 {
	return tierTable[tier].InsuranceRate
}

// ConditionMultiplier returns the rate multiplier for a condition grade.
// Unknown grades are treated as excellent.
func ConditionMultiplier(condition domain.ConditionGrade) float64 {
	if m, ok := conditionMultipliers[condition]; ok {
		return m
	}
	return 1.0
}

// TierRange derives a tier's price range from the 1-day rate: both bounds are
// scaled by the tier length, reduced by the tier discount, and rounded
// independently. The 1-day tier reproduces the daily rate exactly.
func TierRange(dailyRate domain.PriceRange, tier domain.DurationTier) domain.PriceRange {
	rates := tierTable[tier]
	return scaleRange(dailyRate, float64(rates.Days)*(1-rates.Discount))
}

// Insurance computes the insurance cost for a purchase price over one tier.
func Insurance(purchasePrice int, tier domain.DurationTier) int {
	return roundToInt(float64(purchasePrice) * InsuranceRate(tier))
}

// Deposit computes the standard refundable deposit: half the replacement value.
func Deposit(purchasePrice int) int {
	return roundToInt(float64(purchasePrice) * 0.5)
}

// DurationOption is a UI-facing description of one duration tier.
type DurationOption struct {
	Tier            domain.DurationTier `json:"tier"`
	Label           string              `json:"label"`
	Days            int                 `json:"days"`
	DiscountPercent int                 `json:"discount_percent"`
}

var durationLabels = map[domain.DurationTier]string{
	domain.Duration1Day:  "1 day",
	domain.Duration3Day:  "3 days",
	domain.Duration7Day:  "7 days",
	domain.Duration14Day: "14 days",
}

// DurationOptions lists every supported tier with its label and discount,
// in display order.
func DurationOptions() []DurationOption {
	opts := make([]DurationOption, 0, len(durationTiers))
	for _, tier := range durationTiers {
		rates := tierTable[tier]
		opts = append(opts, DurationOption{
			Tier:            tier,
			Label:           durationLabels[tier],
			Days:            rates.Days,
			DiscountPercent: int(rates.Discount * 100),
		})
	}
	return opts
}

// FormatPriceRange renders a range for display, collapsing equal bounds.
func FormatPriceRange(r domain.PriceRange) string {
	return r.String()
}

func roundToInt(v float64) int {
	return int(math.Round(v))
}

// scaleRange multiplies both bounds by a factor and rounds each independently.
func scaleRange(r domain.PriceRange, factor float64) domain.PriceRange {
	return domain.PriceRange{
		Min: roundToInt(float64(r.Min) * factor),
		Max: roundToInt(float64(r.Max) * factor),
	}
}
