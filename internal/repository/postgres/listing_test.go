package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gearshare-backend/internal/domain"
	"gearshare-backend/internal/repository/postgres"
)

var listingRows = []string{"id", "owner_id", "title", "description", "category", "condition", "daily_rate", "deposit_amount", "purchase_price", "equipment_model", "suggested_rate_min", "suggested_rate_max", "price_validated", "photo_urls", "status", "created_on"}

func TestListingRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := postgres.NewListingRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		listing := &domain.Listing{
			ID:               "a9f1c2d3-0000-4000-8000-000000000001",
			OwnerID:          "user-1",
			Title:            "Canon EOS R6",
			Description:      "Body only",
			Category:         "cameras",
			Condition:        domain.ConditionGood,
			DailyRate:        60,
			DepositAmount:    750,
			PurchasePrice:    1500,
			EquipmentModel:   "canon-eos-r6",
			SuggestedRateMin: 38,
			SuggestedRateMax: 77,
			PriceValidated:   true,
			PhotoURLs:        []string{"https://cdn.example.com/1.jpg"},
			Status:           domain.ListingStatusActive,
			CreatedOn:        time.Now(),
		}

		mock.ExpectExec("INSERT INTO listings").
			WithArgs(listing.ID, listing.OwnerID, listing.Title, listing.Description, listing.Category, listing.Condition, listing.DailyRate, listing.DepositAmount, listing.PurchasePrice, listing.EquipmentModel, listing.SuggestedRateMin, listing.SuggestedRateMax, listing.PriceValidated, pq.Array(listing.PhotoURLs), listing.Status, listing.CreatedOn).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Create(ctx, listing)
		assert.NoError(t, err)
	})
}

func TestListingRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := postgres.NewListingRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows(listingRows).
			AddRow("id-1", "user-1", "Canon EOS R6", "Body only", "cameras", "good", 60, 750, 1500, "canon-eos-r6", 38, 77, true, pq.Array([]string{"https://cdn.example.com/1.jpg"}), "ACTIVE", time.Now())

		mock.ExpectQuery("SELECT (.+) FROM listings WHERE id = \\$1").
			WithArgs("id-1").
			WillReturnRows(rows)

		listing, err := repo.GetByID(ctx, "id-1")
		require.NoError(t, err)
		require.NotNil(t, listing)
		assert.Equal(t, "id-1", listing.ID)
		assert.Equal(t, "canon-eos-r6", listing.EquipmentModel)
		assert.True(t, listing.PriceValidated)
		assert.Equal(t, []string{"https://cdn.example.com/1.jpg"}, listing.PhotoURLs)
	})
}

func TestListingRepository_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := postgres.NewListingRepository(db)
	ctx := context.Background()

	t.Run("Soft delete", func(t *testing.T) {
		mock.ExpectExec("UPDATE listings SET status = 'REMOVED'").
			WithArgs(sqlmock.AnyArg(), "id-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Delete(ctx, "id-1")
		assert.NoError(t, err)
	})
}

func TestListingRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := postgres.NewListingRepository(db)
	ctx := context.Background()

	t.Run("With category filter", func(t *testing.T) {
		rows := sqlmock.NewRows(listingRows).
			AddRow("id-1", "user-1", "Canon EOS R6", "", "cameras", "excellent", 60, 750, 1500, "canon-eos-r6", 45, 90, true, pq.Array([]string{}), "ACTIVE", time.Now())

		mock.ExpectQuery("SELECT (.+) FROM listings WHERE status = 'ACTIVE' AND category = \\$1").
			WithArgs("cameras", int32(20), int32(0)).
			WillReturnRows(rows)
		mock.ExpectQuery("SELECT count\\(\\*\\) FROM listings WHERE status = 'ACTIVE' AND category = \\$1").
			WithArgs("cameras").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		listings, total, err := repo.List(ctx, "cameras", 1, 20)
		require.NoError(t, err)
		assert.Equal(t, int32(1), total)
		require.Len(t, listings, 1)
		assert.Equal(t, "Canon EOS R6", listings[0].Title)
	})
}
