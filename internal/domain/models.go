// internal/domain/models.go
package domain

import "time"

// ItemType categorizes a SKU in the production catalog.
type ItemType string

const (
	TypeFinishedGoods ItemType = "Finished Goods"
	TypeRawMaterials  ItemType = "Raw Materials"
	TypePackaging     ItemType = "Packaging"
	TypeSemiFinished  ItemType = "Semi-Finished"
	TypeOthers        ItemType = "Others"
)

// WeekWindow is a Monday-to-Sunday date range plus its ordinal week number.
// Windows are value objects: computing the window for the same calendar date
// must always yield an identical window.
type WeekWindow struct {
	WeekStartDate time.Time `json:"week_start_date" db:"week_start_date"`
	WeekEndDate   time.Time `json:"week_end_date" db:"week_end_date"`
	WeekNumber    int       `json:"week_number" db:"week_number"`
	Year          int       `json:"year" db:"year"`
}

// Equal reports whether two windows cover the same dates.
func (w WeekWindow) Equal(other WeekWindow) bool {
	return w.WeekStartDate.Equal(other.WeekStartDate) && w.WeekEndDate.Equal(other.WeekEndDate)
}

// ReportItem is one location's performance record for one SKU in one week.
// ID is zero until the persistent store assigns one.
type ReportItem struct {
	ID            int64     `json:"id" db:"id"`
	Store         string    `json:"store" db:"store"`
	SKU           string    `json:"sku" db:"sku"`
	Description   string    `json:"description" db:"description"`
	Type          ItemType  `json:"type" db:"type"`
	UM            string    `json:"um" db:"um"`
	Price         float64   `json:"price" db:"price"`
	StoreOrder    float64   `json:"store_order" db:"store_order"`
	Delivered     float64   `json:"delivered" db:"delivered"`
	Undelivered   float64   `json:"undelivered" db:"undelivered"`
	FillRate      int       `json:"fill_rate" db:"fill_rate"`
	Remarks       string    `json:"remarks" db:"remarks"`
	WeekStartDate time.Time `json:"week_start_date" db:"week_start_date"`
	WeekEndDate   time.Time `json:"week_end_date" db:"week_end_date"`
	WeekNumber    int       `json:"week_number" db:"week_number"`
	Year          int       `json:"year" db:"year"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// Window returns the item's week window.
func (r ReportItem) Window() WeekWindow {
	return WeekWindow{
		WeekStartDate: r.WeekStartDate,
		WeekEndDate:   r.WeekEndDate,
		WeekNumber:    r.WeekNumber,
		Year:          r.Year,
	}
}

// SetWindow stamps the window's dates onto the item.
func (r *ReportItem) SetWindow(w WeekWindow) {
	r.WeekStartDate = w.WeekStartDate
	r.WeekEndDate = w.WeekEndDate
	r.WeekNumber = w.WeekNumber
	r.Year = w.Year
}

// InWindow reports whether the item belongs to the given window.
func (r ReportItem) InWindow(w WeekWindow) bool {
	return r.WeekStartDate.Equal(w.WeekStartDate) && r.WeekEndDate.Equal(w.WeekEndDate)
}

// AggregatedItem is the cross-location rollup of all ReportItems sharing a SKU
// within one week window. It is derived on demand and never persisted.
type AggregatedItem struct {
	SKU              string     `json:"sku"`
	Description      string     `json:"description"`
	Type             ItemType   `json:"type"`
	UM               string     `json:"um"`
	Price            float64    `json:"price"`
	TotalStoreOrder  float64    `json:"total_store_order"`
	TotalDelivered   float64    `json:"total_delivered"`
	TotalUndelivered float64    `json:"total_undelivered"`
	FillRate         int        `json:"fill_rate"`
	StoreCount       int        `json:"store_count"`
	Stores           []string   `json:"stores"`
	Remarks          string     `json:"remarks"`
	Window           WeekWindow `json:"window"`
}

// CatalogEntry is one row of the read-only SKU reference list used to seed a
// week's report items.
type CatalogEntry struct {
	SKU         string   `json:"sku" db:"sku"`
	Description string   `json:"description" db:"description"`
	UM          string   `json:"um" db:"um"`
	Price       float64  `json:"price" db:"price"`
	Type        ItemType `json:"type" db:"type"`
}
