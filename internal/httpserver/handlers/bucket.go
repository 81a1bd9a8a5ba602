package handlers

import (
	"fmt"
	"net/http"

	"github.com/MrSnakeDoc/buckets/internal/domain"
	"github.com/MrSnakeDoc/buckets/internal/forms"
	"github.com/MrSnakeDoc/buckets/internal/httpserver/deps"
	"github.com/MrSnakeDoc/buckets/internal/logger"
	"github.com/MrSnakeDoc/buckets/internal/store"
	"github.com/MrSnakeDoc/buckets/internal/view"
)

// Bucket shows a bucket page. A POST quick-creates an item and renders the
// page again.
func Bucket(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bucketID, err := pathID(r, ParamBucketID)
		if err != nil {
			fail(d, w, r, err)
			return
		}
		if r.Method == http.MethodPost {
			if err := r.ParseForm(); err != nil {
				badRequest(d, w, r, err)
				return
			}
		}

		now := d.Now()
		var page view.BucketPage
		err = d.Store.Tx(r.Context(), func(tx *store.Tx) error {
			b, err := tx.FindBucket(bucketID)
			if err != nil {
				return err
			}

			form := forms.QuickItemForm{Errors: forms.Errors{}}
			if r.Method == http.MethodPost {
				form = forms.QuickItemFromValues(r.PostForm)
				if form.Validate() {
					item := domain.NewItem(b.ID, form.Title, now)
					if err := tx.CreateItem(&item); err != nil {
						return err
					}
					d.Logger.Info("item created", logger.Uint("bucket_id", b.ID), logger.Uint("item_id", item.ID))
					form = forms.QuickItemForm{Errors: forms.Errors{}}
				}
			}

			items, err := tx.IncompleteItems(b.ID)
			if err != nil {
				return err
			}
			nav, err := loadNav(r.Context(), d, tx)
			if err != nil {
				return err
			}

			page = view.BucketPage{
				Page:   view.Page{Title: b.Title, Nav: nav},
				Bucket: b,
				Items:  view.ItemRows(items, domain.Today(now)),
				Form:   &form,
			}
			return nil
		})
		if err != nil {
			fail(d, w, r, err)
			return
		}
		render(d, w, r, http.StatusOK, view.PageBucket, page)
	}
}

// CreateBucket shows and handles the new bucket form.
func CreateBucket(d deps.Deps) http.HandlerFunc {
	return bucketForm(d, forms.Create)
}

// UpdateBucket shows and handles the edit bucket form.
func UpdateBucket(d deps.Deps) http.HandlerFunc {
	return bucketForm(d, forms.Update)
}

func bucketForm(d deps.Deps, mode forms.Mode) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var bucketID uint
		if mode == forms.Update {
			id, err := pathID(r, ParamBucketID)
			if err != nil {
				fail(d, w, r, err)
				return
			}
			bucketID = id
		}
		if r.Method == http.MethodPost {
			if err := r.ParseForm(); err != nil {
				badRequest(d, w, r, err)
				return
			}
		}

		var (
			page      view.BucketFormPage
			savedID   uint
			submitted = r.Method == http.MethodPost
		)
		err := d.Store.Tx(r.Context(), func(tx *store.Tx) error {
			var b *domain.Bucket
			if mode == forms.Update {
				found, err := tx.FindBucket(bucketID)
				if err != nil {
					return err
				}
				b = found
			}

			form := forms.BucketForm{Errors: forms.Errors{}}
			switch {
			case submitted:
				form = forms.BucketFromValues(r.PostForm)
			case b != nil:
				form = forms.BucketFromEntity(b)
			}

			if submitted {
				ok, err := form.Validate(mode, bucketID, tx.IsTitleUnique)
				if err != nil {
					return err
				}
				if ok {
					if b == nil {
						created := domain.NewBucket("", "")
						b = &created
					}
					form.Apply(b)
					if err := saveBucket(tx, mode, b); err != nil {
						return err
					}
					savedID = b.ID
					d.Logger.Info("bucket saved", logger.String("mode", mode.String()), logger.Uint("bucket_id", b.ID))
					return nil
				}
			}

			nav, err := loadNav(r.Context(), d, tx)
			if err != nil {
				return err
			}
			page = view.BucketFormPage{
				Page:   view.Page{Title: bucketFormTitle(mode, b), Nav: nav},
				Action: bucketFormAction(mode, bucketID),
				Form:   &form,
			}
			return nil
		})
		if err != nil {
			fail(d, w, r, err)
			return
		}

		if savedID != 0 {
			invalidateNav(r.Context(), d)
			redirectToBucket(w, r, savedID)
			return
		}
		render(d, w, r, http.StatusOK, view.PageUpdateBucket, page)
	}
}

func saveBucket(tx *store.Tx, mode forms.Mode, b *domain.Bucket) error {
	if mode == forms.Create {
		return tx.CreateBucket(b)
	}
	return tx.UpdateBucket(b)
}

func bucketFormTitle(mode forms.Mode, b *domain.Bucket) string {
	if mode == forms.Update && b != nil {
		return "Update " + b.Title
	}
	return "Create new bucket"
}

func bucketFormAction(mode forms.Mode, bucketID uint) string {
	if mode == forms.Update {
		return fmt.Sprintf("/bucket/%d/update/", bucketID)
	}
	return "/bucket/create/"
}
