package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"gearshare-backend/internal/domain"
	"gearshare-backend/internal/pricing"
)

// minDetectionLength short-circuits free-text matching for very short inputs,
// which would otherwise hit on generic fragments.
const minDetectionLength = 4

// Entry is the hand-maintained part of a catalog record: the tier pricing,
// insurance and deposit tables are derived from it at build time.
type Entry struct {
	ID            string                   `yaml:"id"`
	Model         string                   `yaml:"model"`
	Category      domain.EquipmentCategory `yaml:"category"`
	PurchasePrice int                      `yaml:"purchase_price"`
	DailyRate     domain.PriceRange        `yaml:"daily_rate"`
	Keywords      []string                 `yaml:"keywords"`
}

// Catalog is an immutable reference table of known equipment models. It is
// constructed once at startup and passed by reference; there is no mutation
// API, so concurrent readers need no coordination.
type Catalog struct {
	records []domain.EquipmentRecord
	byID    map[string]*domain.EquipmentRecord
}

//go:embed seed.yaml
var seedData []byte

type seedFile struct {
	Equipment []Entry `yaml:"equipment"`
}

// Default builds the catalog from the embedded seed data.
func Default() *Catalog {
	cat, err := parse(seedData)
	if err != nil {
		// The embedded seed is validated by tests; a parse failure here is a
		// build defect, not a runtime condition.
		panic(fmt.Sprintf("catalog: embedded seed is invalid: %v", err))
	}
	return cat
}

// LoadFile builds a catalog from a YAML file in the seed format, for
// deployments that override the embedded data.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	cat, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse catalog file %s: %w", path, err)
	}
	return cat, nil
}

func parse(data []byte) (*Catalog, error) {
	var seed seedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, err
	}
	return Build(seed.Equipment)
}

// Build derives the full per-tier pricing, insurance and deposit tables for
// each entry and returns the assembled catalog. Entry order is preserved and
// is the tie-break order for free-text detection.
func Build(entries []Entry) (*Catalog, error) {
	records := make([]domain.EquipmentRecord, 0, len(entries))
	byID := make(map[string]*domain.EquipmentRecord, len(entries))

	for _, entry := range entries {
		if entry.ID == "" {
			return nil, fmt.Errorf("catalog entry %q has no id", entry.Model)
		}
		if _, exists := byID[entry.ID]; exists {
			return nil, fmt.Errorf("duplicate catalog id %q", entry.ID)
		}
		if entry.PurchasePrice <= 0 {
			return nil, fmt.Errorf("catalog entry %q: purchase price must be positive", entry.ID)
		}
		if entry.DailyRate.Min < 0 || entry.DailyRate.Min > entry.DailyRate.Max {
			return nil, fmt.Errorf("catalog entry %q: invalid daily rate range", entry.ID)
		}
		records = append(records, buildRecord(entry))
		byID[entry.ID] = &records[len(records)-1]
	}

	return &Catalog{records: records, byID: byID}, nil
}

func buildRecord(entry Entry) domain.EquipmentRecord {
	tierPricing := make(map[domain.DurationTier]domain.PriceRange, 4)
	insurance := make(map[domain.DurationTier]int, 4)
	for _, tier := range pricing.DurationTiers() {
		tierPricing[tier] = pricing.TierRange(entry.DailyRate, tier)
		insurance[tier] = pricing.Insurance(entry.PurchasePrice, tier)
	}

	keywords := make([]string, 0, len(entry.Keywords))
	for _, kw := range entry.Keywords {
		keywords = append(keywords, strings.ToLower(strings.TrimSpace(kw)))
	}

	return domain.EquipmentRecord{
		ID:            entry.ID,
		Model:         entry.Model,
		Category:      entry.Category,
		PurchasePrice: entry.PurchasePrice,
		DailyRate:     entry.DailyRate,
		Pricing:       tierPricing,
		Insurance:     insurance,
		DepositAmount: pricing.Deposit(entry.PurchasePrice),
		Keywords:      keywords,
	}
}

// GetByID returns the record for an id, or nil. Callers must not mutate the
// returned record.
func (c *Catalog) GetByID(id string) *domain.EquipmentRecord {
	return c.byID[id]
}

// FindByText scans the catalog in declaration order and returns the first
// record with any keyword appearing as a substring of the (lowercased) input.
// Inputs shorter than 4 characters never match. A nil result is a valid
// negative, not an error.
//
// This is deliberately not a ranked search: when several records could match,
// declaration order wins, and callers depend on that.
func (c *Catalog) FindByText(text string) *domain.EquipmentRecord {
	needle := strings.ToLower(strings.TrimSpace(text))
	if len(needle) < minDetectionLength {
		return nil
	}
	for i := range c.records {
		for _, kw := range c.records[i].Keywords {
			if kw != "" && strings.Contains(needle, kw) {
				return &c.records[i]
			}
		}
	}
	return nil
}

// ByCategory returns the records in a category, preserving declaration order.
func (c *Catalog) ByCategory(category domain.EquipmentCategory) []domain.EquipmentRecord {
	var out []domain.EquipmentRecord
	for _, rec := range c.records {
		if rec.Category == category {
			out = append(out, rec)
		}
	}
	return out
}

// All returns every record in declaration order.
func (c *Catalog) All() []domain.EquipmentRecord {
	out := make([]domain.EquipmentRecord, len(c.records))
	copy(out, c.records)
	return out
}

// Len returns the number of records.
func (c *Catalog) Len() int {
	return len(c.records)
}
