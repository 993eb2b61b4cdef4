package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fillrate/internal/domain"
)

// fakeGateway is an in-memory stand-in for the persistent store.
type fakeGateway struct {
	items  map[int64]domain.ReportItem
	nextID int64

	failSelect bool
	failWrite  bool
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{items: make(map[int64]domain.ReportItem), nextID: 1}
}

func (g *fakeGateway) add(item domain.ReportItem) domain.ReportItem {
	item.ID = g.nextID
	g.nextID++
	g.items[item.ID] = item
	return item
}

func (g *fakeGateway) SelectAll(ctx context.Context) ([]domain.ReportItem, error) {
	if g.failSelect {
		return nil, &domain.ConnectivityError{Op: "select all"}
	}
	var items []domain.ReportItem
	for id := int64(1); id < g.nextID; id++ {
		if item, ok := g.items[id]; ok {
			items = append(items, item)
		}
	}
	return items, nil
}

func (g *fakeGateway) SelectByStoreAndWindow(ctx context.Context, store string, window domain.WeekWindow) ([]domain.ReportItem, error) {
	if g.failSelect {
		return nil, &domain.ConnectivityError{Op: "select by store"}
	}
	var items []domain.ReportItem
	for id := int64(1); id < g.nextID; id++ {
		item, ok := g.items[id]
		if ok && item.Store == store && item.InWindow(window) {
			items = append(items, item)
		}
	}
	return items, nil
}

func (g *fakeGateway) Insert(ctx context.Context, item domain.ReportItem) (domain.ReportItem, error) {
	if g.failWrite {
		return domain.ReportItem{}, &domain.ConnectivityError{Op: "insert"}
	}
	for _, existing := range g.items {
		if existing.Store == item.Store && existing.SKU == item.SKU && existing.InWindow(item.Window()) {
			return domain.ReportItem{}, &domain.ConflictError{Store: item.Store, SKU: item.SKU, Window: item.Window()}
		}
	}
	item.CreatedAt = time.Now()
	return g.add(item), nil
}

func (g *fakeGateway) Update(ctx context.Context, item domain.ReportItem) (domain.ReportItem, error) {
	if g.failWrite {
		return domain.ReportItem{}, &domain.ConnectivityError{Op: "update"}
	}
	if _, ok := g.items[item.ID]; !ok {
		return domain.ReportItem{}, &domain.NotFoundError{ID: item.ID}
	}
	g.items[item.ID] = item
	return item, nil
}

func (g *fakeGateway) DeleteByID(ctx context.Context, id int64) error {
	if g.failWrite {
		return &domain.ConnectivityError{Op: "delete"}
	}
	if _, ok := g.items[id]; !ok {
		return &domain.NotFoundError{ID: id}
	}
	delete(g.items, id)
	return nil
}

func (g *fakeGateway) DeleteByStoreAndWindow(ctx context.Context, store string, window domain.WeekWindow) (int64, error) {
	if g.failWrite {
		return 0, &domain.ConnectivityError{Op: "delete by store"}
	}
	var deleted int64
	for id, item := range g.items {
		if item.Store == store && item.InWindow(window) {
			delete(g.items, id)
			deleted++
		}
	}
	return deleted, nil
}

func (g *fakeGateway) DeleteByWindow(ctx context.Context, window domain.WeekWindow) (int64, error) {
	if g.failWrite {
		return 0, &domain.ConnectivityError{Op: "delete by window"}
	}
	var deleted int64
	for id, item := range g.items {
		if item.InWindow(window) {
			delete(g.items, id)
			deleted++
		}
	}
	return deleted, nil
}

func window(start time.Time) domain.WeekWindow {
	return domain.WeekWindow{
		WeekStartDate: start,
		WeekEndDate:   start.AddDate(0, 0, 6),
	}
}

var (
	weekA = window(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))
	weekB = window(time.Date(2025, 3, 17, 0, 0, 0, 0, time.UTC))
)

func seedItem(store, sku string, w domain.WeekWindow) domain.ReportItem {
	item := domain.ReportItem{Store: store, SKU: sku, StoreOrder: 10, Delivered: 8}
	item.SetWindow(w)
	return domain.Recompute(item)
}

func TestLoadAllGroupsByStoreAndDiscovers(t *testing.T) {
	gw := newFakeGateway()
	gw.add(seedItem("North", "BRD-001", weekA))
	gw.add(seedItem("South", "BRD-001", weekA))
	gw.add(seedItem("North", "CAKE-2", weekB))

	s := NewReportStore(gw)
	require.NoError(t, s.LoadAll(context.Background()))

	assert.Equal(t, []string{"North", "South"}, s.Stores())

	s.SetWindow(weekA)
	assert.Len(t, s.Windowed("North"), 1)
	assert.Len(t, s.Windowed("South"), 1)

	s.SetWindow(weekB)
	assert.Len(t, s.Windowed("North"), 1)
	assert.Empty(t, s.Windowed("South"))
}

func TestLoadAllFailureLeavesCacheIntact(t *testing.T) {
	gw := newFakeGateway()
	gw.add(seedItem("North", "BRD-001", weekA))

	s := NewReportStore(gw)
	require.NoError(t, s.LoadAll(context.Background()))
	s.SetWindow(weekA)

	gw.failSelect = true
	err := s.LoadAll(context.Background())
	var connErr *domain.ConnectivityError
	require.ErrorAs(t, err, &connErr)

	assert.Equal(t, []string{"North"}, s.Stores())
	assert.Len(t, s.Windowed("North"), 1)
}

func TestUpsertInsertAssignsIDAndCaches(t *testing.T) {
	gw := newFakeGateway()
	s := NewReportStore(gw)
	require.NoError(t, s.LoadAll(context.Background()))
	s.SetWindow(weekA)

	saved, err := s.Upsert(context.Background(), seedItem("North", "BRD-001", weekA))
	require.NoError(t, err)
	assert.NotZero(t, saved.ID)

	assert.Equal(t, []string{"North"}, s.Stores())
	windowed := s.Windowed("North")
	require.Len(t, windowed, 1)
	assert.Equal(t, saved.ID, windowed[0].ID)
}

func TestUpsertOutsideActiveWindowSkipsWindowedCache(t *testing.T) {
	gw := newFakeGateway()
	s := NewReportStore(gw)
	require.NoError(t, s.LoadAll(context.Background()))
	s.SetWindow(weekA)

	_, err := s.Upsert(context.Background(), seedItem("North", "BRD-001", weekB))
	require.NoError(t, err)

	assert.Empty(t, s.Windowed("North"))
	assert.Len(t, s.ItemsFor("North", weekB), 1)
}

func TestUpsertUpdateReplacesCanonicalRow(t *testing.T) {
	gw := newFakeGateway()
	seeded := gw.add(seedItem("North", "BRD-001", weekA))

	s := NewReportStore(gw)
	require.NoError(t, s.LoadAll(context.Background()))
	s.SetWindow(weekA)

	edited := seeded
	edited.Delivered = 10
	edited = domain.Recompute(edited)

	saved, err := s.Upsert(context.Background(), edited)
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, saved.ID)
	assert.Equal(t, 100, saved.FillRate)

	windowed := s.Windowed("North")
	require.Len(t, windowed, 1)
	assert.Equal(t, 100, windowed[0].FillRate)
}

func TestUpsertFailureLeavesCachesUnchanged(t *testing.T) {
	gw := newFakeGateway()
	gw.add(seedItem("North", "BRD-001", weekA))

	s := NewReportStore(gw)
	require.NoError(t, s.LoadAll(context.Background()))
	s.SetWindow(weekA)

	gw.failWrite = true
	_, err := s.Upsert(context.Background(), seedItem("North", "CAKE-2", weekA))
	require.Error(t, err)

	assert.Len(t, s.Windowed("North"), 1)
}

func TestUpsertConflictSurfaced(t *testing.T) {
	gw := newFakeGateway()
	gw.add(seedItem("North", "BRD-001", weekA))

	s := NewReportStore(gw)
	require.NoError(t, s.LoadAll(context.Background()))
	s.SetWindow(weekA)

	_, err := s.Upsert(context.Background(), seedItem("North", "BRD-001", weekA))
	var conflictErr *domain.ConflictError
	require.ErrorAs(t, err, &conflictErr)
	assert.Equal(t, "BRD-001", conflictErr.SKU)

	assert.Len(t, s.Windowed("North"), 1)
}

func TestRemoveDropsFromBothCaches(t *testing.T) {
	gw := newFakeGateway()
	seeded := gw.add(seedItem("North", "BRD-001", weekA))

	s := NewReportStore(gw)
	require.NoError(t, s.LoadAll(context.Background()))
	s.SetWindow(weekA)

	require.NoError(t, s.Remove(context.Background(), seeded.ID, "North"))

	assert.Empty(t, s.Windowed("North"))
	assert.Empty(t, s.ItemsFor("North", weekA))
}

func TestRemoveMissingItem(t *testing.T) {
	gw := newFakeGateway()
	s := NewReportStore(gw)
	require.NoError(t, s.LoadAll(context.Background()))

	err := s.Remove(context.Background(), 42, "North")
	var notFoundErr *domain.NotFoundError
	require.ErrorAs(t, err, &notFoundErr)
}

func TestDropWindowAll(t *testing.T) {
	gw := newFakeGateway()
	gw.add(seedItem("North", "BRD-001", weekA))
	gw.add(seedItem("South", "BRD-001", weekA))
	gw.add(seedItem("North", "CAKE-2", weekB))

	s := NewReportStore(gw)
	require.NoError(t, s.LoadAll(context.Background()))
	s.SetWindow(weekA)

	s.DropWindowAll(weekA)

	assert.Empty(t, s.Windowed("North"))
	assert.Empty(t, s.Windowed("South"))
	assert.Len(t, s.ItemsFor("North", weekB), 1)
}

func TestAllWindowedSnapshot(t *testing.T) {
	gw := newFakeGateway()
	gw.add(seedItem("North", "BRD-001", weekA))
	gw.add(seedItem("South", "CAKE-2", weekA))

	s := NewReportStore(gw)
	require.NoError(t, s.LoadAll(context.Background()))
	s.SetWindow(weekA)

	stores, windowed := s.AllWindowed()
	assert.Equal(t, []string{"North", "South"}, stores)
	assert.Len(t, windowed["North"], 1)
	assert.Len(t, windowed["South"], 1)

	// Mutating the snapshot must not leak into the store's caches.
	windowed["North"][0].Delivered = 0
	assert.Equal(t, 8.0, s.Windowed("North")[0].Delivered)
}
