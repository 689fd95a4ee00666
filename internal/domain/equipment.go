package domain

import "fmt"

type EquipmentCategory string

const (
	CategoryCameras       EquipmentCategory = "cameras"
	CategoryActionCameras EquipmentCategory = "action-cameras"
	CategoryMicrophones   EquipmentCategory = "microphones"
	CategoryAudio         EquipmentCategory = "audio"
	CategoryLighting      EquipmentCategory = "lighting"
)

type DurationTier string

const (
	Duration1Day  DurationTier = "1-day"
	Duration3Day  DurationTier = "3-day"
	Duration7Day  DurationTier = "7-day"
	Duration14Day DurationTier = "14-day"
)

type ConditionGrade string

const (
	ConditionExcellent ConditionGrade = "excellent"
	ConditionGood      ConditionGrade = "good"
	ConditionFair      ConditionGrade = "fair"
)

// PriceRange is an inclusive min/max band in whole currency units.
type PriceRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

func (r PriceRange) String() string {
	if r.Min == r.Max {
		return fmt.Sprintf("$%d", r.Min)
	}
	return fmt.Sprintf("$%d-$%d", r.Min, r.Max)
}

// EquipmentRecord is a static catalog entry. Records are seeded once at process
// start and never mutated; Pricing and Insurance cover every duration tier, and
// Pricing[Duration1Day] always equals DailyRate.
type EquipmentRecord struct {
	ID            string                      `json:"id"`
	Model         string                      `json:"model"`
	Category      EquipmentCategory           `json:"category"`
	PurchasePrice int                         `json:"purchase_price"`
	DailyRate     PriceRange                  `json:"daily_rate"`
	Pricing       map[DurationTier]PriceRange `json:"pricing"`
	Insurance     map[DurationTier]int        `json:"insurance"`
	DepositAmount int                         `json:"deposit_amount"`
	Keywords      []string                    `json:"keywords"`
}
