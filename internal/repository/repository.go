package repository

import (
	"context"

	"gearshare-backend/internal/domain"
)

type ListingRepository interface {
	Create(ctx context.Context, listing *domain.Listing) error
	GetByID(ctx context.Context, id string) (*domain.Listing, error)
	Update(ctx context.Context, listing *domain.Listing) error
	Delete(ctx context.Context, id string) error
	ListByOwner(ctx context.Context, ownerID string, page, pageSize int32) ([]domain.Listing, int32, error)
	List(ctx context.Context, category string, page, pageSize int32) ([]domain.Listing, int32, error)
}
