// internal/workflow/workflow.go

// Package workflow holds the multi-step bulk operations: seeding a week from
// the catalog, copying the previous week forward and clearing weeks. Each
// composes the report store and the persistence gateway, tolerates per-item
// failures and reports counts instead of aborting.
package workflow

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"fillrate/internal/domain"
	"fillrate/internal/repository"
	"fillrate/internal/store"
	"fillrate/internal/week"
)

// BatchPolicy makes the backpressure against the remote store an explicit,
// testable parameter: items are written in batches of Size with a Pause
// between batches. There is no adaptive retry or backoff.
type BatchPolicy struct {
	Size  int
	Pause time.Duration
}

// DefaultBatchPolicy mirrors the rate the remote store is known to tolerate.
func DefaultBatchPolicy() BatchPolicy {
	return BatchPolicy{Size: 10, Pause: 150 * time.Millisecond}
}

// InitResult reports the outcome of InitializeWeekFromCatalog.
type InitResult struct {
	Inserted int `json:"inserted"`
	Skipped  int `json:"skipped"`
	Failed   int `json:"failed"`
}

// CopyResult reports the outcome of CopyFromPreviousWeek.
type CopyResult struct {
	Saved  int `json:"saved"`
	Failed int `json:"failed"`
}

// ClearResult reports how many remote rows a clear removed.
type ClearResult struct {
	Deleted int64 `json:"deleted"`
}

// Runner executes the bulk workflows. Invocation implies the user already
// confirmed the operation at the boundary; none of the workflows support
// mid-flight cancellation beyond the context.
type Runner struct {
	store   *store.ReportStore
	gateway repository.ReportGateway
	catalog repository.CatalogGateway
	batch   BatchPolicy
}

func NewRunner(s *store.ReportStore, gateway repository.ReportGateway, catalog repository.CatalogGateway, batch BatchPolicy) *Runner {
	if batch.Size <= 0 {
		batch = DefaultBatchPolicy()
	}
	return &Runner{store: s, gateway: gateway, catalog: catalog, batch: batch}
}

// InitializeWeekFromCatalog creates a zero-valued report item for every
// catalog SKU not yet present for (location, window). Items already present
// are skipped; per-item failures are logged and counted but never abort the
// workflow.
func (r *Runner) InitializeWeekFromCatalog(ctx context.Context, location string, window domain.WeekWindow) (InitResult, error) {
	if location == "" {
		return InitResult{}, &domain.ValidationError{Field: "store", Reason: "required"}
	}

	entries, err := r.catalog.List(ctx)
	if err != nil {
		return InitResult{}, err
	}

	existing := make(map[string]struct{})
	for _, item := range r.store.ItemsFor(location, window) {
		existing[item.SKU] = struct{}{}
	}

	var result InitResult
	pending := 0
	for _, entry := range entries {
		if _, ok := existing[entry.SKU]; ok {
			result.Skipped++
			continue
		}

		item := domain.ReportItem{
			Store:       location,
			SKU:         entry.SKU,
			Description: entry.Description,
			Type:        entry.Type,
			UM:          entry.UM,
			Price:       entry.Price,
		}
		item.SetWindow(window)

		if _, err := r.store.Upsert(ctx, item); err != nil {
			log.Error().Err(err).Str("store", location).Str("sku", entry.SKU).Msg("week init: item failed")
			result.Failed++
		} else {
			result.Inserted++
		}

		pending++
		if pending >= r.batch.Size {
			pending = 0
			r.pause(ctx)
		}
	}

	log.Info().Str("store", location).Int("inserted", result.Inserted).
		Int("skipped", result.Skipped).Int("failed", result.Failed).Msg("week init finished")
	return result, nil
}

// CopyFromPreviousWeek clones the location's records from the window 7 days
// earlier into the given window. Clones carry the new window's dates, zeroed
// delivery figures and no id, so the store assigns fresh rows.
func (r *Runner) CopyFromPreviousWeek(ctx context.Context, location string, window domain.WeekWindow) (CopyResult, error) {
	if location == "" {
		return CopyResult{}, &domain.ValidationError{Field: "store", Reason: "required"}
	}

	previous := week.Previous(window)
	items, err := r.gateway.SelectByStoreAndWindow(ctx, location, previous)
	if err != nil {
		return CopyResult{}, err
	}

	var result CopyResult
	pending := 0
	for _, prior := range items {
		clone := prior
		clone.ID = 0
		clone.CreatedAt = time.Time{}
		clone.Delivered = 0
		clone.Undelivered = 0
		clone.FillRate = 0
		clone.Remarks = ""
		clone.SetWindow(window)
		clone = domain.Recompute(clone)

		if _, err := r.store.Upsert(ctx, clone); err != nil {
			log.Error().Err(err).Str("store", location).Str("sku", clone.SKU).Msg("week copy: item failed")
			result.Failed++
		} else {
			result.Saved++
		}

		pending++
		if pending >= r.batch.Size {
			pending = 0
			r.pause(ctx)
		}
	}

	log.Info().Str("store", location).Int("saved", result.Saved).
		Int("failed", result.Failed).Msg("week copy finished")
	return result, nil
}

// ClearStoreForWeek deletes every remote record for (location, window), then
// drops the matching entries from the location's caches.
func (r *Runner) ClearStoreForWeek(ctx context.Context, location string, window domain.WeekWindow) (ClearResult, error) {
	if location == "" {
		return ClearResult{}, &domain.ValidationError{Field: "store", Reason: "required"}
	}

	deleted, err := r.gateway.DeleteByStoreAndWindow(ctx, location, window)
	if err != nil {
		return ClearResult{}, err
	}

	r.store.DropWindow(location, window)
	log.Info().Str("store", location).Int64("deleted", deleted).Msg("week cleared for store")
	return ClearResult{Deleted: deleted}, nil
}

// ClearAllLocationsForWeek deletes every remote record in the window across
// all locations and drops the window from every cache.
func (r *Runner) ClearAllLocationsForWeek(ctx context.Context, window domain.WeekWindow) (ClearResult, error) {
	deleted, err := r.gateway.DeleteByWindow(ctx, window)
	if err != nil {
		return ClearResult{}, err
	}

	r.store.DropWindowAll(window)
	log.Info().Int64("deleted", deleted).Msg("week cleared for all stores")
	return ClearResult{Deleted: deleted}, nil
}

func (r *Runner) pause(ctx context.Context) {
	if r.batch.Pause <= 0 {
		return
	}
	select {
	case <-ctx.Done():
	case <-time.After(r.batch.Pause):
	}
}
