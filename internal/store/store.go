// internal/store/store.go

// Package store owns the per-location report caches. Every location carries
// two parallel slices: original holds everything ever loaded across all weeks,
// windowed holds the subset matching the active week. windowed is always a
// recomputed view over original, never maintained incrementally.
package store

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"fillrate/internal/domain"
	"fillrate/internal/repository"
)

// ReportStore is the only component that mutates the caches. Caches change
// only after the gateway confirms the corresponding persistence call, and the
// confirmed canonical row is what lands in the cache.
type ReportStore struct {
	gateway repository.ReportGateway

	mu       sync.Mutex
	original map[string][]domain.ReportItem
	windowed map[string][]domain.ReportItem
	stores   []string
	window   domain.WeekWindow
}

func NewReportStore(gateway repository.ReportGateway) *ReportStore {
	return &ReportStore{
		gateway:  gateway,
		original: make(map[string][]domain.ReportItem),
		windowed: make(map[string][]domain.ReportItem),
	}
}

// LoadAll fetches every record from the gateway, groups them by store and
// rebuilds the original caches, registering any location not seen before.
// On failure the previous caches are left untouched.
func (s *ReportStore) LoadAll(ctx context.Context) error {
	items, err := s.gateway.SelectAll(ctx)
	if err != nil {
		return err
	}

	original := make(map[string][]domain.ReportItem)
	var stores []string
	for _, item := range items {
		if _, known := original[item.Store]; !known {
			stores = append(stores, item.Store)
		}
		original[item.Store] = append(original[item.Store], item)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.original = original
	s.stores = stores
	s.rebuildWindowed()

	log.Info().Int("items", len(items)).Int("stores", len(stores)).Msg("report cache rebuilt")
	return nil
}

// SetWindow selects the active week and refilters every location's windowed
// cache from original. The remote store is never touched.
func (s *ReportStore) SetWindow(window domain.WeekWindow) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.window = window
	s.rebuildWindowed()
}

// Window returns the active week window.
func (s *ReportStore) Window() domain.WeekWindow {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.window
}

// Stores returns the known location identifiers in discovery order.
func (s *ReportStore) Stores() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.stores...)
}

// Windowed returns the active-week items for one location.
func (s *ReportStore) Windowed(store string) []domain.ReportItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.ReportItem(nil), s.windowed[store]...)
}

// AllWindowed returns every location's active-week items keyed by store,
// alongside the store order for deterministic traversal.
func (s *ReportStore) AllWindowed() ([]string, map[string][]domain.ReportItem) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stores := append([]string(nil), s.stores...)
	windowed := make(map[string][]domain.ReportItem, len(s.windowed))
	for store, items := range s.windowed {
		windowed[store] = append([]domain.ReportItem(nil), items...)
	}
	return stores, windowed
}

// ItemsFor returns the cached items for one location and an arbitrary window,
// drawn from the original cache.
func (s *ReportStore) ItemsFor(store string, window domain.WeekWindow) []domain.ReportItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	var items []domain.ReportItem
	for _, item := range s.original[store] {
		if item.InWindow(window) {
			items = append(items, item)
		}
	}
	return items
}

// Upsert persists the item through the gateway, updating when the item
// already has an id and inserting otherwise. Only the confirmed canonical row
// enters the caches; on failure the caches stay unchanged and the mapped
// error is returned.
func (s *ReportStore) Upsert(ctx context.Context, item domain.ReportItem) (domain.ReportItem, error) {
	var (
		saved domain.ReportItem
		err   error
	)
	if item.ID != 0 {
		saved, err = s.gateway.Update(ctx, item)
	} else {
		saved, err = s.gateway.Insert(ctx, item)
	}
	if err != nil {
		return domain.ReportItem{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.registerStore(saved.Store)

	items := s.original[saved.Store]
	replaced := false
	for i := range items {
		if items[i].ID == saved.ID {
			items[i] = saved
			replaced = true
			break
		}
	}
	if !replaced {
		items = append(items, saved)
	}
	s.original[saved.Store] = items
	s.rebuildWindowedFor(saved.Store)

	return saved, nil
}

// Remove deletes the item remotely, then drops it from both caches for the
// location. Failures leave the caches untouched.
func (s *ReportStore) Remove(ctx context.Context, id int64, store string) error {
	if err := s.gateway.DeleteByID(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.original[store]
	for i := range items {
		if items[i].ID == id {
			s.original[store] = append(items[:i:i], items[i+1:]...)
			break
		}
	}
	s.rebuildWindowedFor(store)

	return nil
}

// DropWindow discards every cached item for one location in the given window.
// Used by bulk clears after the remote delete succeeded.
func (s *ReportStore) DropWindow(store string, window domain.WeekWindow) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.dropWindowLocked(store, window)
}

// DropWindowAll discards the given window from every location's caches.
func (s *ReportStore) DropWindowAll(window domain.WeekWindow) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for store := range s.original {
		s.dropWindowLocked(store, window)
	}
}

func (s *ReportStore) dropWindowLocked(store string, window domain.WeekWindow) {
	items := s.original[store]
	kept := items[:0:0]
	for _, item := range items {
		if !item.InWindow(window) {
			kept = append(kept, item)
		}
	}
	s.original[store] = kept
	s.rebuildWindowedFor(store)
}

func (s *ReportStore) registerStore(store string) {
	for _, known := range s.stores {
		if known == store {
			return
		}
	}
	s.stores = append(s.stores, store)
}

func (s *ReportStore) rebuildWindowed() {
	s.windowed = make(map[string][]domain.ReportItem, len(s.original))
	for store := range s.original {
		s.rebuildWindowedFor(store)
	}
}

// rebuildWindowedFor recomputes one location's windowed view as a pure filter
// of original against the active window.
func (s *ReportStore) rebuildWindowedFor(store string) {
	var filtered []domain.ReportItem
	for _, item := range s.original[store] {
		if item.InWindow(s.window) {
			filtered = append(filtered, item)
		}
	}
	if filtered == nil {
		delete(s.windowed, store)
		return
	}
	s.windowed[store] = filtered
}
