// cmd/fillratectl/schema.go
package main

import (
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/urfave/cli/v2"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS weekly_reports (
	id              BIGSERIAL PRIMARY KEY,
	store           TEXT NOT NULL,
	sku             TEXT NOT NULL,
	description     TEXT NOT NULL DEFAULT '',
	type            TEXT NOT NULL DEFAULT 'Others',
	um              TEXT NOT NULL DEFAULT '',
	price           NUMERIC(12,2) NOT NULL DEFAULT 0,
	store_order     DOUBLE PRECISION NOT NULL DEFAULT 0,
	delivered       DOUBLE PRECISION NOT NULL DEFAULT 0,
	undelivered     DOUBLE PRECISION NOT NULL DEFAULT 0,
	fill_rate       INTEGER NOT NULL DEFAULT 0,
	remarks         TEXT NOT NULL DEFAULT '',
	week_start_date DATE NOT NULL,
	week_end_date   DATE NOT NULL,
	week_number     INTEGER NOT NULL,
	year            INTEGER NOT NULL,
	created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	CONSTRAINT weekly_reports_store_sku_week_key
		UNIQUE (store, sku, week_start_date, week_end_date)
);

CREATE INDEX IF NOT EXISTS weekly_reports_window_idx
	ON weekly_reports (week_start_date, week_end_date);

CREATE TABLE IF NOT EXISTS catalog_items (
	id          BIGSERIAL PRIMARY KEY,
	sku         TEXT NOT NULL UNIQUE,
	description TEXT NOT NULL DEFAULT '',
	um          TEXT NOT NULL DEFAULT '',
	price       NUMERIC(12,2) NOT NULL DEFAULT 0,
	type        TEXT NOT NULL DEFAULT 'Others',
	created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

func schemaInit(c *cli.Context) error {
	db, err := sql.Open("pgx", c.String("db-url"))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(c.Context); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.ExecContext(c.Context, schemaSQL); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	fmt.Println("schema ready")
	return nil
}
