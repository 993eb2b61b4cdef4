// cmd/fillratectl/catalog.go
package main

import (
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/urfave/cli/v2"
)

var knownItemTypes = map[string]bool{
	"Finished Goods": true,
	"Raw Materials":  true,
	"Packaging":      true,
	"Semi-Finished":  true,
	"Others":         true,
}

// catalogSeed loads catalog rows from a headered CSV:
// sku,description,um,price,type
func catalogSeed(c *cli.Context) error {
	db, err := sql.Open("pgx", c.String("db-url"))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(c.Context); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	file, err := os.Open(c.String("file"))
	if err != nil {
		return fmt.Errorf("failed to open catalog file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	if _, err := reader.Read(); err != nil { // skip header
		return fmt.Errorf("failed to read catalog header: %w", err)
	}

	upsert := `
		INSERT INTO catalog_items (sku, description, um, price, type)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (sku) DO UPDATE SET
			description = EXCLUDED.description,
			um = EXCLUDED.um,
			price = EXCLUDED.price,
			type = EXCLUDED.type
	`

	stmt, err := db.PrepareContext(c.Context, upsert)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	var loaded, skipped int
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read catalog line %d: %w", line, err)
		}
		if len(record) < 5 {
			fmt.Printf("line %d: expected 5 columns, got %d, skipping\n", line, len(record))
			skipped++
			continue
		}

		sku := strings.TrimSpace(record[0])
		if sku == "" {
			skipped++
			continue
		}

		price, err := strconv.ParseFloat(strings.TrimSpace(record[3]), 64)
		if err != nil {
			fmt.Printf("line %d: bad price %q, skipping\n", line, record[3])
			skipped++
			continue
		}

		itemType := strings.TrimSpace(record[4])
		if !knownItemTypes[itemType] {
			itemType = "Others"
		}

		_, err = stmt.ExecContext(c.Context, sku,
			strings.TrimSpace(record[1]), strings.TrimSpace(record[2]), price, itemType)
		if err != nil {
			return fmt.Errorf("failed to upsert catalog sku %s: %w", sku, err)
		}
		loaded++
	}

	fmt.Printf("catalog seeded: %d loaded, %d skipped\n", loaded, skipped)
	return nil
}
