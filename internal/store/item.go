package store

import (
	"fmt"

	"github.com/MrSnakeDoc/buckets/internal/domain"
)

// FindItem loads an item by id.
func (tx *Tx) FindItem(id uint) (*domain.Item, error) {
	var item domain.Item
	if err := tx.db.First(&item, id).Error; err != nil {
		return nil, lookupErr(fmt.Sprintf("item %d", id), err)
	}
	return &item, nil
}

// IncompleteItems lists the items of a bucket without a completion time,
// in insertion order.
func (tx *Tx) IncompleteItems(bucketID uint) ([]domain.Item, error) {
	var items []domain.Item
	err := tx.db.
		Where("bucket_id = ? AND completed_time IS NULL", bucketID).
		Order("id").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list items of bucket %d: %w", bucketID, err)
	}
	return items, nil
}

// CreateItem inserts item and sets its id.
func (tx *Tx) CreateItem(item *domain.Item) error {
	if err := tx.db.Omit("Bucket").Create(item).Error; err != nil {
		return fmt.Errorf("failed to create item: %w", err)
	}
	return nil
}

// UpdateItem writes every mutable column of item. created_time and
// bucket_id are left untouched.
func (tx *Tx) UpdateItem(item *domain.Item) error {
	res := tx.db.Model(item).
		Select("title", "description", "due_date", "completed_time", "flagged").
		Updates(item)
	if res.Error != nil {
		return fmt.Errorf("failed to update item %d: %w", item.ID, res.Error)
	}
	return nil
}

// DeleteItem removes an item permanently.
func (tx *Tx) DeleteItem(id uint) error {
	res := tx.db.Delete(&domain.Item{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete item %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("item %d: %w", id, ErrNotFound)
	}
	return nil
}
