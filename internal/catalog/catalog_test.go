package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gearshare-backend/internal/catalog"
	"gearshare-backend/internal/domain"
	"gearshare-backend/internal/pricing"
)

func TestDefault_SeedInvariants(t *testing.T) {
	cat := catalog.Default()
	require.Greater(t, cat.Len(), 0)

	for _, rec := range cat.All() {
		t.Run(rec.ID, func(t *testing.T) {
			assert.Equal(t, rec.DailyRate, rec.Pricing[domain.Duration1Day], "1-day tier must equal the daily rate")
			assert.Equal(t, pricing.Deposit(rec.PurchasePrice), rec.DepositAmount)
			for _, tier := range pricing.DurationTiers() {
				pr, ok := rec.Pricing[tier]
				require.True(t, ok, "missing pricing for tier %s", tier)
				assert.LessOrEqual(t, pr.Min, pr.Max, "tier %s", tier)
				_, ok = rec.Insurance[tier]
				require.True(t, ok, "missing insurance for tier %s", tier)
			}
			assert.NotEmpty(t, rec.Keywords)
		})
	}
}

func TestGetByID(t *testing.T) {
	cat := catalog.Default()

	t.Run("Known id", func(t *testing.T) {
		rec := cat.GetByID("canon-eos-r6")
		require.NotNil(t, rec)
		assert.Equal(t, "Canon EOS R6", rec.Model)
		assert.Equal(t, domain.CategoryCameras, rec.Category)
		assert.Equal(t, domain.PriceRange{Min: 45, Max: 90}, rec.DailyRate)
		assert.Equal(t, 750, rec.DepositAmount)
	})

	t.Run("Unknown id is nil, not an error", func(t *testing.T) {
		assert.Nil(t, cat.GetByID("leica-m11"))
	})
}

func TestFindByText(t *testing.T) {
	cat := catalog.Default()

	t.Run("Keyword substring match", func(t *testing.T) {
		rec := cat.FindByText("Canon EOS R6 body with battery grip")
		require.NotNil(t, rec)
		assert.Equal(t, "canon-eos-r6", rec.ID)
	})

	t.Run("Case insensitive", func(t *testing.T) {
		rec := cat.FindByText("GOPRO HERO11 BLACK for weekend rental")
		require.NotNil(t, rec)
		assert.Equal(t, "gopro-hero11-black", rec.ID)
	})

	t.Run("Short input never matches", func(t *testing.T) {
		assert.Nil(t, cat.FindByText("xyz"))
		assert.Nil(t, cat.FindByText("r6"))
		assert.Nil(t, cat.FindByText("  r6  "))
		assert.Nil(t, cat.FindByText(""))
	})

	t.Run("No keyword overlap", func(t *testing.T) {
		assert.Nil(t, cat.FindByText("vintage typewriter in working order"))
	})

	t.Run("First match in declaration order wins", func(t *testing.T) {
		// Mentions both a camera and a microphone; cameras are declared first.
		rec := cat.FindByText("Sony A7 IV kit with Rode VideoMic")
		require.NotNil(t, rec)
		assert.Equal(t, "sony-a7-iv", rec.ID)
	})

	t.Run("Reordered keyword words do not match", func(t *testing.T) {
		// Detection is substring-based with no stemming or reordering.
		assert.Nil(t, cat.FindByText("r6 eos by canon corporation"))
	})
}

func TestByCategory(t *testing.T) {
	cat := catalog.Default()

	t.Run("Preserves declaration order", func(t *testing.T) {
		cameras := cat.ByCategory(domain.CategoryCameras)
		require.NotEmpty(t, cameras)
		assert.Equal(t, "canon-eos-r6", cameras[0].ID)
		for _, rec := range cameras {
			assert.Equal(t, domain.CategoryCameras, rec.Category)
		}
	})

	t.Run("Unknown category is empty", func(t *testing.T) {
		assert.Empty(t, cat.ByCategory(domain.EquipmentCategory("drones")))
	})
}

func TestBuild(t *testing.T) {
	entries := []catalog.Entry{
		{
			ID:            "test-cam",
			Model:         "Test Cam",
			Category:      domain.CategoryCameras,
			PurchasePrice: 1000,
			DailyRate:     domain.PriceRange{Min: 20, Max: 40},
			Keywords:      []string{"Test Cam", " TESTCAM "},
		},
	}

	t.Run("Derives tier tables", func(t *testing.T) {
		cat, err := catalog.Build(entries)
		require.NoError(t, err)

		rec := cat.GetByID("test-cam")
		require.NotNil(t, rec)
		assert.Equal(t, domain.PriceRange{Min: 20, Max: 40}, rec.Pricing[domain.Duration1Day])
		assert.Equal(t, domain.PriceRange{Min: 48, Max: 96}, rec.Pricing[domain.Duration3Day])
		assert.Equal(t, 500, rec.DepositAmount)
		assert.Equal(t, 20, rec.Insurance[domain.Duration1Day])
		// Keywords are normalized to lowercase at build time.
		assert.Equal(t, []string{"test cam", "testcam"}, rec.Keywords)
	})

	t.Run("Rejects duplicate ids", func(t *testing.T) {
		_, err := catalog.Build(append(entries, entries[0]))
		assert.ErrorContains(t, err, "duplicate catalog id")
	})

	t.Run("Rejects non-positive purchase price", func(t *testing.T) {
		bad := entries[0]
		bad.ID = "free-cam"
		bad.PurchasePrice = 0
		_, err := catalog.Build([]catalog.Entry{bad})
		assert.ErrorContains(t, err, "purchase price must be positive")
	})

	t.Run("Rejects inverted daily rate range", func(t *testing.T) {
		bad := entries[0]
		bad.ID = "upside-down-cam"
		bad.DailyRate = domain.PriceRange{Min: 50, Max: 10}
		_, err := catalog.Build([]catalog.Entry{bad})
		assert.ErrorContains(t, err, "invalid daily rate range")
	})

	t.Run("Missing id", func(t *testing.T) {
		bad := entries[0]
		bad.ID = ""
		_, err := catalog.Build([]catalog.Entry{bad})
		assert.ErrorContains(t, err, "has no id")
	})
}
