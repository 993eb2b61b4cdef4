// internal/repository/postgres/report_repository.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"fillrate/internal/domain"
)

type reportRepository struct {
	db *DB
}

// NewReportRepository builds the Postgres-backed report gateway.
func NewReportRepository(db *DB) *reportRepository {
	return &reportRepository{db: db}
}

const reportColumns = `
	id, store, sku, description, type, um, price,
	store_order, delivered, undelivered, fill_rate, remarks,
	week_start_date, week_end_date, week_number, year, created_at
`

func (r *reportRepository) SelectAll(ctx context.Context) ([]domain.ReportItem, error) {
	release, err := r.db.acquire(ctx)
	if err != nil {
		return nil, mapError("select all", err, domain.ReportItem{})
	}
	defer release()

	query := `SELECT ` + reportColumns + ` FROM weekly_reports ORDER BY store, sku`

	var items []domain.ReportItem
	if err := sqlx.SelectContext(ctx, r.db, &items, query); err != nil {
		return nil, mapError("select all", err, domain.ReportItem{})
	}

	return items, nil
}

func (r *reportRepository) SelectByStoreAndWindow(ctx context.Context, store string, window domain.WeekWindow) ([]domain.ReportItem, error) {
	release, err := r.db.acquire(ctx)
	if err != nil {
		return nil, mapError("select by store", err, domain.ReportItem{Store: store})
	}
	defer release()

	query := `
		SELECT ` + reportColumns + `
		FROM weekly_reports
		WHERE store = $1 AND week_start_date = $2 AND week_end_date = $3
		ORDER BY sku
	`

	var items []domain.ReportItem
	err = sqlx.SelectContext(ctx, r.db, &items, query, store, window.WeekStartDate, window.WeekEndDate)
	if err != nil {
		return nil, mapError("select by store", err, domain.ReportItem{Store: store})
	}

	return items, nil
}

func (r *reportRepository) Insert(ctx context.Context, item domain.ReportItem) (domain.ReportItem, error) {
	release, err := r.db.acquire(ctx)
	if err != nil {
		return domain.ReportItem{}, mapError("insert", err, item)
	}
	defer release()

	query := `
		INSERT INTO weekly_reports (
			store, sku, description, type, um, price,
			store_order, delivered, undelivered, fill_rate, remarks,
			week_start_date, week_end_date, week_number, year, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING ` + reportColumns

	var saved domain.ReportItem
	err = sqlx.GetContext(ctx, r.db, &saved, query,
		item.Store, item.SKU, item.Description, item.Type, item.UM, item.Price,
		item.StoreOrder, item.Delivered, item.Undelivered, item.FillRate, item.Remarks,
		item.WeekStartDate, item.WeekEndDate, item.WeekNumber, item.Year, time.Now().UTC(),
	)
	if err != nil {
		return domain.ReportItem{}, mapError("insert", err, item)
	}

	return saved, nil
}

func (r *reportRepository) Update(ctx context.Context, item domain.ReportItem) (domain.ReportItem, error) {
	release, err := r.db.acquire(ctx)
	if err != nil {
		return domain.ReportItem{}, mapError("update", err, item)
	}
	defer release()

	query := `
		UPDATE weekly_reports SET
			store = $2, sku = $3, description = $4, type = $5, um = $6, price = $7,
			store_order = $8, delivered = $9, undelivered = $10, fill_rate = $11, remarks = $12,
			week_start_date = $13, week_end_date = $14, week_number = $15, year = $16
		WHERE id = $1
		RETURNING ` + reportColumns

	var saved domain.ReportItem
	err = sqlx.GetContext(ctx, r.db, &saved, query,
		item.ID,
		item.Store, item.SKU, item.Description, item.Type, item.UM, item.Price,
		item.StoreOrder, item.Delivered, item.Undelivered, item.FillRate, item.Remarks,
		item.WeekStartDate, item.WeekEndDate, item.WeekNumber, item.Year,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ReportItem{}, &domain.NotFoundError{ID: item.ID}
		}
		return domain.ReportItem{}, mapError("update", err, item)
	}

	return saved, nil
}

func (r *reportRepository) DeleteByID(ctx context.Context, id int64) error {
	release, err := r.db.acquire(ctx)
	if err != nil {
		return mapError("delete", err, domain.ReportItem{ID: id})
	}
	defer release()

	result, err := r.db.ExecContext(ctx, `DELETE FROM weekly_reports WHERE id = $1`, id)
	if err != nil {
		return mapError("delete", err, domain.ReportItem{ID: id})
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return mapError("delete", err, domain.ReportItem{ID: id})
	}
	if affected == 0 {
		return &domain.NotFoundError{ID: id}
	}

	return nil
}

func (r *reportRepository) DeleteByStoreAndWindow(ctx context.Context, store string, window domain.WeekWindow) (int64, error) {
	release, err := r.db.acquire(ctx)
	if err != nil {
		return 0, mapError("delete by store", err, domain.ReportItem{Store: store})
	}
	defer release()

	query := `DELETE FROM weekly_reports WHERE store = $1 AND week_start_date = $2 AND week_end_date = $3`
	result, err := r.db.ExecContext(ctx, query, store, window.WeekStartDate, window.WeekEndDate)
	if err != nil {
		return 0, mapError("delete by store", err, domain.ReportItem{Store: store})
	}

	return result.RowsAffected()
}

func (r *reportRepository) DeleteByWindow(ctx context.Context, window domain.WeekWindow) (int64, error) {
	release, err := r.db.acquire(ctx)
	if err != nil {
		return 0, mapError("delete by window", err, domain.ReportItem{})
	}
	defer release()

	query := `DELETE FROM weekly_reports WHERE week_start_date = $1 AND week_end_date = $2`
	result, err := r.db.ExecContext(ctx, query, window.WeekStartDate, window.WeekEndDate)
	if err != nil {
		return 0, mapError("delete by window", err, domain.ReportItem{})
	}

	return result.RowsAffected()
}
