package repository

import (
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// PostgresRepository owns the database handle shared by the recorders.
type PostgresRepository struct {
	DB *sqlx.DB
}

func NewPostgresRepository(connStr string) *PostgresRepository {
	db := sqlx.MustConnect("postgres", connStr)
	return &PostgresRepository{DB: db}
}
