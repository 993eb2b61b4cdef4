// internal/service/report_service.go
package service

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"fillrate/internal/aggregate"
	"fillrate/internal/cache"
	"fillrate/internal/classify"
	"fillrate/internal/config"
	"fillrate/internal/domain"
	"fillrate/internal/store"
	"fillrate/internal/view"
	"fillrate/internal/week"
	"fillrate/internal/workflow"
)

// ReportService drives the weekly fill-rate views for a single active
// session: one selected week, one location scope, one search term and page
// per view. The presentation layer issues synchronous commands and is
// responsible for not overlapping mutations.
type ReportService struct {
	store       *store.ReportStore
	runner      *workflow.Runner
	rollups     cache.RollupCache
	storePage   *view.Pager
	aggPage     *view.Pager
	pastWeeks   int
	futureWeeks int
}

// RowView is one displayed report row with its presentation class.
type RowView struct {
	domain.ReportItem
	DisplayClass string `json:"display_class"`
}

// RollupView is one displayed aggregate row with its presentation class.
type RollupView struct {
	domain.AggregatedItem
	DisplayClass string `json:"display_class"`
}

// PageInfo describes the slice of the filtered list being shown.
type PageInfo struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalPages int `json:"total_pages"`
	TotalItems int `json:"total_items"`
}

func NewReportService(s *store.ReportStore, runner *workflow.Runner, rollups cache.RollupCache, cfg config.ReportConfig) *ReportService {
	if rollups == nil {
		rollups = cache.NewNoopRollupCache()
	}
	return &ReportService{
		store:       s,
		runner:      runner,
		rollups:     rollups,
		storePage:   view.NewPager(cfg.PageSize),
		aggPage:     view.NewPager(cfg.PageSize),
		pastWeeks:   cfg.PastWeeks,
		futureWeeks: cfg.FutureWeeks,
	}
}

// Init loads the full report history and selects the week containing today.
func (s *ReportService) Init(ctx context.Context) error {
	if err := s.store.LoadAll(ctx); err != nil {
		return err
	}
	s.store.SetWindow(week.CurrentWeek(time.Now()))
	return nil
}

// Reload refetches everything from the persistent store, keeping the selected
// week. The prior caches survive a failed reload.
func (s *ReportService) Reload(ctx context.Context) error {
	return s.store.LoadAll(ctx)
}

// SelectWeekFor switches the active window to the week containing the date.
func (s *ReportService) SelectWeekFor(date time.Time) domain.WeekWindow {
	window := week.ForDate(date)
	s.store.SetWindow(window)
	return window
}

// ActiveWindow returns the selected week.
func (s *ReportService) ActiveWindow() domain.WeekWindow {
	return s.store.Window()
}

// WeekOptions lists the selectable windows around the active one. Negative
// counts fall back to the configured defaults.
func (s *ReportService) WeekOptions(pastCount, futureCount int) []domain.WeekWindow {
	if pastCount < 0 {
		pastCount = s.pastWeeks
	}
	if futureCount < 0 {
		futureCount = s.futureWeeks
	}
	return week.Options(s.store.Window(), pastCount, futureCount)
}

// Stores returns the known location identifiers, sorted for display.
func (s *ReportService) Stores() []string {
	stores := s.store.Stores()
	sort.Strings(stores)
	return stores
}

// StoreView returns one page of the selected location's report rows after
// applying the search term. Supplying a changed term snaps back to page 1.
func (s *ReportService) StoreView(location, term string, page int) ([]RowView, PageInfo) {
	s.storePage.SetTerm(term)
	if page > 0 {
		s.storePage.SetPage(page)
	}

	filtered := view.FilterItems(s.store.Windowed(location), term)
	start, end := s.storePage.Slice(len(filtered))

	rows := make([]RowView, 0, end-start)
	for _, item := range filtered[start:end] {
		rows = append(rows, RowView{ReportItem: item, DisplayClass: classify.DisplayClass(item.FillRate)})
	}

	return rows, s.pageInfo(s.storePage, len(filtered))
}

// AggregateView returns one page of the cross-location rollup for the active
// week. The unfiltered rollup is memoized per window; search and paging are
// applied on top of the cached list.
func (s *ReportService) AggregateView(ctx context.Context, term string, page int) ([]RollupView, PageInfo, error) {
	window := s.store.Window()

	rollups, hit, err := s.rollups.Get(ctx, window)
	if err != nil {
		log.Warn().Err(err).Msg("rollup cache read failed")
	}
	if !hit {
		stores, windowed := s.store.AllWindowed()
		rollups = aggregate.Rollup(stores, windowed, window)
		if err := s.rollups.Set(ctx, window, rollups); err != nil {
			log.Warn().Err(err).Msg("rollup cache write failed")
		}
	}

	s.aggPage.SetTerm(term)
	if page > 0 {
		s.aggPage.SetPage(page)
	}

	filtered := view.FilterRollups(rollups, term)
	start, end := s.aggPage.Slice(len(filtered))

	rows := make([]RollupView, 0, end-start)
	for _, rollup := range filtered[start:end] {
		rows = append(rows, RollupView{AggregatedItem: rollup, DisplayClass: classify.DisplayClass(rollup.FillRate)})
	}

	return rows, s.pageInfo(s.aggPage, len(filtered)), nil
}

// SaveItem validates, recomputes and persists a row. A zero id inserts, a set
// id updates. The saved canonical row is returned.
func (s *ReportService) SaveItem(ctx context.Context, item domain.ReportItem) (domain.ReportItem, error) {
	item = domain.Recompute(item)
	if err := domain.Validate(item); err != nil {
		return domain.ReportItem{}, err
	}

	saved, err := s.store.Upsert(ctx, item)
	if err != nil {
		return domain.ReportItem{}, err
	}

	s.invalidateRollup(ctx, saved.Window())
	return saved, nil
}

// DeleteItem removes a row and invalidates the week's rollup.
func (s *ReportService) DeleteItem(ctx context.Context, id int64, location string) error {
	if err := s.store.Remove(ctx, id, location); err != nil {
		return err
	}
	s.invalidateRollup(ctx, s.store.Window())
	return nil
}

// InitializeWeek seeds the active week for one location from the catalog.
func (s *ReportService) InitializeWeek(ctx context.Context, location string) (workflow.InitResult, error) {
	result, err := s.runner.InitializeWeekFromCatalog(ctx, location, s.store.Window())
	if err == nil {
		s.invalidateRollup(ctx, s.store.Window())
	}
	return result, err
}

// CopyPreviousWeek clones the prior week's rows for one location into the
// active week.
func (s *ReportService) CopyPreviousWeek(ctx context.Context, location string) (workflow.CopyResult, error) {
	result, err := s.runner.CopyFromPreviousWeek(ctx, location, s.store.Window())
	if err == nil {
		s.invalidateRollup(ctx, s.store.Window())
	}
	return result, err
}

// ClearWeek removes the active week's rows for one location.
func (s *ReportService) ClearWeek(ctx context.Context, location string) (workflow.ClearResult, error) {
	result, err := s.runner.ClearStoreForWeek(ctx, location, s.store.Window())
	if err == nil {
		s.invalidateRollup(ctx, s.store.Window())
	}
	return result, err
}

// ClearWeekAllStores removes the active week's rows across every location.
func (s *ReportService) ClearWeekAllStores(ctx context.Context) (workflow.ClearResult, error) {
	result, err := s.runner.ClearAllLocationsForWeek(ctx, s.store.Window())
	if err == nil {
		s.invalidateRollup(ctx, s.store.Window())
	}
	return result, err
}

func (s *ReportService) invalidateRollup(ctx context.Context, window domain.WeekWindow) {
	if err := s.rollups.Invalidate(ctx, window); err != nil {
		log.Warn().Err(err).Msg("rollup cache invalidation failed")
	}
}

func (s *ReportService) pageInfo(p *view.Pager, filteredCount int) PageInfo {
	return PageInfo{
		Page:       p.Page(),
		PageSize:   p.PageSize(),
		TotalPages: p.TotalPages(filteredCount),
		TotalItems: filteredCount,
	}
}
