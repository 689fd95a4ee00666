package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"gearshare-backend/internal/domain"
	"gearshare-backend/internal/repository"
)

type listingRepository struct {
	db *sql.DB
}

func NewListingRepository(db *sql.DB) repository.ListingRepository {
	return &listingRepository{db: db}
}

const listingColumns = `id, owner_id, title, COALESCE(description, ''), category, condition, daily_rate, deposit_amount, purchase_price, COALESCE(equipment_model, ''), suggested_rate_min, suggested_rate_max, price_validated, photo_urls, status, created_on`

func (r *listingRepository) Create(ctx context.Context, l *domain.Listing) error {
	query := `INSERT INTO listings (id, owner_id, title, description, category, condition, daily_rate, deposit_amount, purchase_price, equipment_model, suggested_rate_min, suggested_rate_max, price_validated, photo_urls, status, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.db.ExecContext(ctx, query, l.ID, l.OwnerID, l.Title, l.Description, l.Category, l.Condition, l.DailyRate, l.DepositAmount, l.PurchasePrice, l.EquipmentModel, l.SuggestedRateMin, l.SuggestedRateMax, l.PriceValidated, pq.Array(l.PhotoURLs), l.Status, l.CreatedOn)
	return err
}

func (r *listingRepository) GetByID(ctx context.Context, id string) (*domain.Listing, error) {
	l := &domain.Listing{}
	query := `SELECT ` + listingColumns + ` FROM listings WHERE id = $1 AND status != 'REMOVED'`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&l.ID, &l.OwnerID, &l.Title, &l.Description, &l.Category, &l.Condition, &l.DailyRate, &l.DepositAmount, &l.PurchasePrice, &l.EquipmentModel, &l.SuggestedRateMin, &l.SuggestedRateMax, &l.PriceValidated, pq.Array(&l.PhotoURLs), &l.Status, &l.CreatedOn)
	if err != nil {
		return nil, err
	}
	return l, nil
}

func (r *listingRepository) Update(ctx context.Context, l *domain.Listing) error {
	query := `UPDATE listings SET title=$1, description=$2, category=$3, condition=$4, daily_rate=$5, deposit_amount=$6, purchase_price=$7, equipment_model=$8, suggested_rate_min=$9, suggested_rate_max=$10, price_validated=$11, photo_urls=$12, status=$13 WHERE id=$14`
	_, err := r.db.ExecContext(ctx, query, l.Title, l.Description, l.Category, l.Condition, l.DailyRate, l.DepositAmount, l.PurchasePrice, l.EquipmentModel, l.SuggestedRateMin, l.SuggestedRateMax, l.PriceValidated, pq.Array(l.PhotoURLs), l.Status, l.ID)
	return err
}

func (r *listingRepository) Delete(ctx context.Context, id string) error {
	query := `UPDATE listings SET status = 'REMOVED', removed_on = $1 WHERE id = $2`
	_, err := r.db.ExecContext(ctx, query, time.Now(), id)
	return err
}

func (r *listingRepository) ListByOwner(ctx context.Context, ownerID string, page, pageSize int32) ([]domain.Listing, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + listingColumns + ` FROM listings WHERE owner_id = $1 AND status != 'REMOVED' ORDER BY created_on DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, ownerID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	listings, err := scanListings(rows)
	if err != nil {
		return nil, 0, err
	}

	var count int32
	countQuery := `SELECT count(*) FROM listings WHERE owner_id = $1 AND status != 'REMOVED'`
	if err := r.db.QueryRowContext(ctx, countQuery, ownerID).Scan(&count); err != nil {
		return nil, 0, err
	}
	return listings, count, nil
}

func (r *listingRepository) List(ctx context.Context, category string, page, pageSize int32) ([]domain.Listing, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + listingColumns + ` FROM listings WHERE status = 'ACTIVE'`
	countQuery := `SELECT count(*) FROM listings WHERE status = 'ACTIVE'`

	args := []interface{}{}
	countArgs := []interface{}{}
	argIdx := 1
	if category != "" {
		query += fmt.Sprintf(" AND category = $%d", argIdx)
		countQuery += fmt.Sprintf(" AND category = $%d", argIdx)
		args = append(args, category)
		countArgs = append(countArgs, category)
		argIdx++
	}
	query += fmt.Sprintf(" ORDER BY created_on DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	listings, err := scanListings(rows)
	if err != nil {
		return nil, 0, err
	}

	var count int32
	if err := r.db.QueryRowContext(ctx, countQuery, countArgs...).Scan(&count); err != nil {
		return nil, 0, err
	}
	return listings, count, nil
}

func scanListings(rows *sql.Rows) ([]domain.Listing, error) {
	var listings []domain.Listing
	for rows.Next() {
		var l domain.Listing
		if err := rows.Scan(&l.ID, &l.OwnerID, &l.Title, &l.Description, &l.Category, &l.Condition, &l.DailyRate, &l.DepositAmount, &l.PurchasePrice, &l.EquipmentModel, &l.SuggestedRateMin, &l.SuggestedRateMax, &l.PriceValidated, pq.Array(&l.PhotoURLs), &l.Status, &l.CreatedOn); err != nil {
			return nil, err
		}
		listings = append(listings, l)
	}
	return listings, rows.Err()
}
