// Package seed fills a database with the data the application needs to
// run and with demonstration data.
package seed

import (
	"context"
	"errors"
	"time"

	"github.com/MrSnakeDoc/buckets/internal/domain"
	"github.com/MrSnakeDoc/buckets/internal/store"
)

// InboxDescription is the description of the required Inbox bucket.
const InboxDescription = "Collection of items without a bucket"

// Result counts what a seeding run inserted.
type Result struct {
	Buckets int
	Items   int
	Skipped int
}

// RequiredData ensures the Inbox bucket exists. It is idempotent.
func RequiredData(ctx context.Context, st *store.Store) (Result, error) {
	var res Result
	err := st.Tx(ctx, func(tx *store.Tx) error {
		created, err := ensureInbox(tx)
		if created {
			res.Buckets++
		} else if err == nil {
			res.Skipped++
		}
		return err
	})
	return res, err
}

// SampleData runs RequiredData and then inserts every fixture bucket whose
// title does not exist yet, with its items. Items are created at now.
func SampleData(ctx context.Context, st *store.Store, fx *Fixture, now time.Time) (Result, error) {
	var res Result
	err := st.Tx(ctx, func(tx *store.Tx) error {
		created, err := ensureInbox(tx)
		if err != nil {
			return err
		}
		if created {
			res.Buckets++
		}

		for _, bf := range fx.Buckets {
			_, err := tx.FindBucketByTitle(bf.Title)
			if err == nil {
				res.Skipped++
				continue
			}
			if !errors.Is(err, store.ErrNotFound) {
				return err
			}

			b := domain.NewBucket(bf.Title, bf.Description)
			if err := tx.CreateBucket(&b); err != nil {
				return err
			}
			res.Buckets++

			for _, itf := range bf.Items {
				item := itf.toItem(b.ID, now)
				if err := tx.CreateItem(&item); err != nil {
					return err
				}
				res.Items++
			}
		}
		return nil
	})
	return res, err
}

func ensureInbox(tx *store.Tx) (bool, error) {
	_, err := tx.FindBucketByTitle(domain.InboxTitle)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return false, err
	}

	inbox := domain.NewBucket(domain.InboxTitle, InboxDescription)
	inbox.CanDeactivate = false
	if err := tx.CreateBucket(&inbox); err != nil {
		return false, err
	}
	return true, nil
}

func (f ItemFixture) toItem(bucketID uint, now time.Time) domain.Item {
	item := domain.NewItem(bucketID, f.Title, now)
	item.Description = domain.NormalizeDescription(f.Description)
	item.Flagged = f.Flagged
	if f.DueDate != nil {
		due := domain.AsDate(*f.DueDate)
		item.DueDate = &due
	}
	if f.CompletedTime != nil {
		done := f.CompletedTime.UTC()
		item.CompletedTime = &done
	}
	return item
}
