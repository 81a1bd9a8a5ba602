package view

import (
	"time"

	"github.com/MrSnakeDoc/buckets/internal/domain"
	"github.com/MrSnakeDoc/buckets/internal/forms"
)

// Page carries what the layout needs.
type Page struct {
	Title string
	Nav   []domain.BucketRef
}

// ItemRow is an incomplete item as listed on a bucket page.
type ItemRow struct {
	ID       uint
	Title    string
	DueHuman string
	Overdue  bool
	Flagged  bool
}

// BucketPage is the data of PageBucket.
type BucketPage struct {
	Page
	Bucket *domain.Bucket
	Items  []ItemRow
	Form   *forms.QuickItemForm
}

// BucketFormPage is the data of PageUpdateBucket.
type BucketFormPage struct {
	Page
	Action string
	Form   *forms.BucketForm
}

// ItemFormPage is the data of PageUpdateItem. CreatedAgo is empty on the
// create form.
type ItemFormPage struct {
	Page
	Action     string
	Bucket     *domain.Bucket
	Form       *forms.ItemForm
	CreatedAgo string // ex: "3 hours ago"
}

// ItemRows derives the display rows of items relative to today.
func ItemRows(items []domain.Item, today time.Time) []ItemRow {
	rows := make([]ItemRow, 0, len(items))
	for i := range items {
		it := &items[i]
		rows = append(rows, ItemRow{
			ID:       it.ID,
			Title:    it.Title,
			DueHuman: domain.HumanDueDate(it.DueDate, today),
			Overdue:  domain.IsOverdue(it.DueDate, today),
			Flagged:  it.Flagged,
		})
	}
	return rows
}
