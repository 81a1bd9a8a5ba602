package store

import (
	"fmt"

	"github.com/MrSnakeDoc/buckets/internal/domain"
)

// FindBucket loads a bucket by id.
func (tx *Tx) FindBucket(id uint) (*domain.Bucket, error) {
	var b domain.Bucket
	if err := tx.db.First(&b, id).Error; err != nil {
		return nil, lookupErr(fmt.Sprintf("bucket %d", id), err)
	}
	return &b, nil
}

// FindBucketByTitle loads the bucket with exactly this title.
func (tx *Tx) FindBucketByTitle(title string) (*domain.Bucket, error) {
	var b domain.Bucket
	if err := tx.db.Where("title = ?", title).First(&b).Error; err != nil {
		return nil, lookupErr(fmt.Sprintf("bucket %q", title), err)
	}
	return &b, nil
}

// ListBuckets returns every bucket, ordered by id.
func (tx *Tx) ListBuckets() ([]domain.BucketRef, error) {
	var refs []domain.BucketRef
	err := tx.db.Model(&domain.Bucket{}).
		Select("id", "title").
		Order("id").
		Scan(&refs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list buckets: %w", err)
	}
	return refs, nil
}

// CreateBucket inserts b and sets its id.
func (tx *Tx) CreateBucket(b *domain.Bucket) error {
	if err := tx.db.Create(b).Error; err != nil {
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	return nil
}

// UpdateBucket writes the title and description of b.
func (tx *Tx) UpdateBucket(b *domain.Bucket) error {
	res := tx.db.Model(b).Select("title", "description").Updates(b)
	if res.Error != nil {
		return fmt.Errorf("failed to update bucket %d: %w", b.ID, res.Error)
	}
	return nil
}

// IsTitleUnique reports whether no bucket other than excludingID carries
// candidate as its title. excludingID 0 compares against every bucket.
func (tx *Tx) IsTitleUnique(candidate string, excludingID uint) (bool, error) {
	q := tx.db.Model(&domain.Bucket{}).Where("title = ?", candidate)
	if excludingID != 0 {
		q = q.Where("id <> ?", excludingID)
	}

	var n int64
	if err := q.Count(&n).Error; err != nil {
		return false, fmt.Errorf("failed to check bucket title: %w", err)
	}
	return n == 0, nil
}
