package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/buckets/internal/domain"
	"github.com/MrSnakeDoc/buckets/internal/httpserver/deps"
	"github.com/MrSnakeDoc/buckets/internal/store"
)

// Home redirects to the Inbox bucket page.
func Home(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var inboxID uint
		err := d.Store.Tx(r.Context(), func(tx *store.Tx) error {
			inbox, err := tx.FindBucketByTitle(domain.InboxTitle)
			if err != nil {
				return err
			}
			inboxID = inbox.ID
			return nil
		})
		if err != nil {
			fail(d, w, r, err)
			return
		}
		redirectToBucket(w, r, inboxID)
	}
}
