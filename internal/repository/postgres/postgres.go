package postgres

import (
	"database/sql"

	"rentacar-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.CarRepository
	repository.RentalRepository
	repository.ContractStateRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                      db,
		CarRepository:           NewCarRepository(db),
		RentalRepository:        NewRentalRepository(db),
		ContractStateRepository: NewContractStateRepository(db),
	}
}
