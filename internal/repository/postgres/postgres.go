package postgres

import (
	"database/sql"

	"github.com/adarsh-sng/JustRentIt/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.ProductRepository
	repository.OrderRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                db,
		UserRepository:    NewUserRepository(db),
		ProductRepository: NewProductRepository(db),
		OrderRepository:   NewOrderRepository(db),
	}
}
