package postgres

import (
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"golang.org/x/sync/semaphore"
)

// NewDBFromDSN opens a pool from a full connection string. Used by the admin
// CLI, which takes DATABASE_URL directly and connects through the pgx driver.
func NewDBFromDSN(driverName, dsn string) (*DB, error) {
	db, err := sqlx.Connect(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &DB{
		DB:  db,
		sem: semaphore.NewWeighted(maxInflightStatements),
	}, nil
}
