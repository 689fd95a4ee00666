package postgres

import (
	"database/sql"

	"gearshare-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.ListingRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                db,
		ListingRepository: NewListingRepository(db),
	}
}
