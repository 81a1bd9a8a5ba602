package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/MrSnakeDoc/buckets/internal/domain"
	"github.com/MrSnakeDoc/buckets/internal/forms"
	"github.com/MrSnakeDoc/buckets/internal/httpserver/deps"
	"github.com/MrSnakeDoc/buckets/internal/logger"
	"github.com/MrSnakeDoc/buckets/internal/store"
	"github.com/MrSnakeDoc/buckets/internal/view"
)

// CreateItem shows and handles the full new item form.
func CreateItem(d deps.Deps) http.HandlerFunc {
	return itemForm(d, forms.Create)
}

// UpdateItem shows and handles the edit item form.
func UpdateItem(d deps.Deps) http.HandlerFunc {
	return itemForm(d, forms.Update)
}

func itemForm(d deps.Deps, mode forms.Mode) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bucketID, err := pathID(r, ParamBucketID)
		if err != nil {
			fail(d, w, r, err)
			return
		}
		var itemID uint
		if mode == forms.Update {
			if itemID, err = pathID(r, ParamItemID); err != nil {
				fail(d, w, r, err)
				return
			}
		}
		submitted := r.Method == http.MethodPost
		if submitted {
			if err := r.ParseForm(); err != nil {
				badRequest(d, w, r, err)
				return
			}
		}

		now := d.Now()
		var (
			page  view.ItemFormPage
			saved bool
		)
		err = d.Store.Tx(r.Context(), func(tx *store.Tx) error {
			b, err := tx.FindBucket(bucketID)
			if err != nil {
				return err
			}
			var item *domain.Item
			if mode == forms.Update {
				if item, err = tx.FindItem(itemID); err != nil {
					return err
				}
			}

			form := forms.ItemForm{Errors: forms.Errors{}}
			switch {
			case submitted:
				form = forms.ItemFromValues(r.PostForm)
			case item != nil:
				form = forms.ItemFromEntity(item)
			}

			if submitted && form.Validate() {
				if item == nil {
					created := domain.NewItem(b.ID, "", now)
					item = &created
				}
				form.Apply(item)
				if err := saveItem(tx, mode, item); err != nil {
					return err
				}
				saved = true
				d.Logger.Info("item saved",
					logger.String("mode", mode.String()),
					logger.Uint("bucket_id", b.ID),
					logger.Uint("item_id", item.ID))
				return nil
			}

			nav, err := loadNav(r.Context(), d, tx)
			if err != nil {
				return err
			}
			page = view.ItemFormPage{
				Page:   view.Page{Title: itemFormTitle(mode, b), Nav: nav},
				Action: itemFormAction(mode, bucketID, itemID),
				Bucket: b,
				Form:   &form,
			}
			if item != nil {
				page.CreatedAgo = humanize.RelTime(item.CreatedTime, now, "ago", "from now")
			}
			return nil
		})
		if err != nil {
			fail(d, w, r, err)
			return
		}

		if saved {
			redirectToBucket(w, r, bucketID)
			return
		}
		render(d, w, r, http.StatusOK, view.PageUpdateItem, page)
	}
}

func saveItem(tx *store.Tx, mode forms.Mode, item *domain.Item) error {
	if mode == forms.Create {
		return tx.CreateItem(item)
	}
	return tx.UpdateItem(item)
}

func itemFormTitle(mode forms.Mode, b *domain.Bucket) string {
	if mode == forms.Update {
		return "Update item in " + b.Title
	}
	return "Create new item in " + b.Title
}

func itemFormAction(mode forms.Mode, bucketID, itemID uint) string {
	if mode == forms.Update {
		return fmt.Sprintf("/bucket/%d/item/%d/update/", bucketID, itemID)
	}
	return fmt.Sprintf("/bucket/%d/item/create/", bucketID)
}

// itemAction resolves the bucket and the item, runs apply and redirects
// to the bucket page.
func itemAction(d deps.Deps, action string, apply func(tx *store.Tx, item *domain.Item, now time.Time) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bucketID, err := pathID(r, ParamBucketID)
		if err != nil {
			fail(d, w, r, err)
			return
		}
		itemID, err := pathID(r, ParamItemID)
		if err != nil {
			fail(d, w, r, err)
			return
		}

		now := d.Now()
		err = d.Store.Tx(r.Context(), func(tx *store.Tx) error {
			if _, err := tx.FindBucket(bucketID); err != nil {
				return err
			}
			item, err := tx.FindItem(itemID)
			if err != nil {
				return err
			}
			return apply(tx, item, now)
		})
		if err != nil {
			fail(d, w, r, err)
			return
		}

		d.Logger.Info("item "+action, logger.Uint("bucket_id", bucketID), logger.Uint("item_id", itemID))
		redirectToBucket(w, r, bucketID)
	}
}

// CompleteItem stamps the completion time.
func CompleteItem(d deps.Deps) http.HandlerFunc {
	return itemAction(d, "completed", func(tx *store.Tx, item *domain.Item, now time.Time) error {
		item.Complete(now)
		return tx.UpdateItem(item)
	})
}

// DueDatePlusOneDay moves the due date one day forward.
func DueDatePlusOneDay(d deps.Deps) http.HandlerFunc {
	return itemAction(d, "due date bumped", func(tx *store.Tx, item *domain.Item, now time.Time) error {
		item.BumpDueDate(domain.Today(now))
		return tx.UpdateItem(item)
	})
}

// FlagItem sets the flag.
func FlagItem(d deps.Deps) http.HandlerFunc {
	return setFlag(d, true)
}

// UnflagItem clears the flag.
func UnflagItem(d deps.Deps) http.HandlerFunc {
	return setFlag(d, false)
}

func setFlag(d deps.Deps, flagged bool) http.HandlerFunc {
	action := "unflagged"
	if flagged {
		action = "flagged"
	}
	return itemAction(d, action, func(tx *store.Tx, item *domain.Item, _ time.Time) error {
		item.SetFlagged(flagged)
		return tx.UpdateItem(item)
	})
}

// DeleteItem removes the item.
func DeleteItem(d deps.Deps) http.HandlerFunc {
	return itemAction(d, "deleted", func(tx *store.Tx, item *domain.Item, _ time.Time) error {
		return tx.DeleteItem(item.ID)
	})
}
