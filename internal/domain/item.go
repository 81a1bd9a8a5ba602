package domain

import "time"

// ItemTitleMaxLen is the maximum item title length in characters.
const ItemTitleMaxLen = 128

// Item is a task belonging to exactly one bucket.
type Item struct {
	// ─────────────────────────────
	// Identity
	// ─────────────────────────────

	ID uint `gorm:"primaryKey"`

	// BucketID references the owning bucket. Items never move.
	BucketID uint `gorm:"not null;index"`

	// Bucket only declares the foreign key for migrations. It is never loaded.
	Bucket *Bucket `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`

	// ─────────────────────────────
	// Content
	// ─────────────────────────────

	Title string `gorm:"size:128;not null"`

	// Description is nil when empty, never a pointer to "".
	Description *string `gorm:"type:text"`

	// ─────────────────────────────
	// Scheduling & state
	// ─────────────────────────────

	// CreatedTime is written on insert only.
	CreatedTime time.Time `gorm:"not null;<-:create"`

	// DueDate holds a calendar date at midnight UTC.
	DueDate *time.Time `gorm:"type:date"`

	// CompletedTime is nil while the item is incomplete.
	CompletedTime *time.Time

	Flagged bool `gorm:"not null"`
}

// TableName keeps the singular table names of the existing schema.
func (Item) TableName() string { return "item" }

// NewItem returns an incomplete, unflagged item created at now.
func NewItem(bucketID uint, title string, now time.Time) Item {
	return Item{
		BucketID:    bucketID,
		Title:       title,
		CreatedTime: now.UTC(),
	}
}

// IsComplete reports whether the item has been completed.
func (i *Item) IsComplete() bool {
	return i.CompletedTime != nil
}

// Complete stamps the completion time. Completing twice refreshes it.
func (i *Item) Complete(now time.Time) {
	t := now.UTC()
	i.CompletedTime = &t
}

// SetFlagged sets the flag unconditionally.
func (i *Item) SetFlagged(flagged bool) {
	i.Flagged = flagged
}

// BumpDueDate moves the due date one day forward, starting from today
// when no due date is set.
func (i *Item) BumpDueDate(today time.Time) {
	next := PlusOneDay(i.DueDate, today)
	i.DueDate = &next
}

// NormalizeDescription maps the empty string to nil.
func NormalizeDescription(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// DescriptionText returns the description or "" when unset.
func (i *Item) DescriptionText() string {
	if i.Description == nil {
		return ""
	}
	return *i.Description
}
