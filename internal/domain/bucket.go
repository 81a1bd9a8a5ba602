package domain

import "time"

const (
	// InboxTitle is the title of the default bucket shown at "/".
	InboxTitle = "Inbox"

	// BucketTitleMaxLen is the maximum bucket title length in characters.
	BucketTitleMaxLen = 32
)

// Bucket is a named, described collection of items.
//
// Titles are unique across all buckets (exact, case-sensitive match).
type Bucket struct {
	ID          uint   `gorm:"primaryKey"`
	Title       string `gorm:"size:32;not null;uniqueIndex"`
	Description string `gorm:"type:text;not null"`

	// CanDeactivate and DeactivatedTime are persisted for schema
	// compatibility only. Nothing deactivates a bucket yet.
	CanDeactivate   bool `gorm:"not null"`
	DeactivatedTime *time.Time
}

// TableName keeps the singular table names of the existing schema.
func (Bucket) TableName() string { return "bucket" }

// NewBucket returns a bucket with the defaults of a user-created bucket.
func NewBucket(title, description string) Bucket {
	return Bucket{
		Title:         title,
		Description:   description,
		CanDeactivate: true,
	}
}

// BucketRef is the minimal projection used for navigation lists.
type BucketRef struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
}
