package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MrSnakeDoc/buckets/internal/domain"
	"github.com/MrSnakeDoc/buckets/internal/httpserver/deps"
	"github.com/MrSnakeDoc/buckets/internal/logger"
	"github.com/MrSnakeDoc/buckets/internal/store"
	"github.com/MrSnakeDoc/buckets/internal/view"
)

// Path parameters used by the routes.
const (
	ParamBucketID = "bucketID"
	ParamItemID   = "itemID"
)

var errBadPathID = errors.New("invalid path id")

// pathID parses a numeric path parameter. Anything else is reported as
// store.ErrNotFound so it ends in a 404.
func pathID(r *http.Request, key string) (uint, error) {
	raw := chi.URLParam(r, key)
	id, err := strconv.ParseUint(raw, 10, 0)
	if err != nil {
		return 0, fmt.Errorf("%w %s=%q: %w", errBadPathID, key, raw, store.ErrNotFound)
	}
	return uint(id), nil
}

func bucketURL(id uint) string {
	return fmt.Sprintf("/bucket/%d/", id)
}

func redirectToBucket(w http.ResponseWriter, r *http.Request, id uint) {
	http.Redirect(w, r, bucketURL(id), http.StatusSeeOther)
}

// fail answers a failed unit of work: 404 for a missing entity, 500 for
// everything else.
func fail(d deps.Deps, w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, store.ErrNotFound) {
		d.Logger.Debug("not found", logger.String("path", r.URL.Path), logger.Error(err))
		renderStatus(d, w, r, http.StatusNotFound, view.PageNotFound, "Not Found")
		return
	}
	d.Logger.Error("request failed",
		logger.String("method", r.Method),
		logger.String("path", r.URL.Path),
		logger.String("request_id", middleware.GetReqID(r.Context())),
		logger.Error(err))
	renderStatus(d, w, r, http.StatusInternalServerError, view.PageError, "Error")
}

func badRequest(d deps.Deps, w http.ResponseWriter, r *http.Request, err error) {
	d.Logger.Debug("bad request", logger.String("path", r.URL.Path), logger.Error(err))
	http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
}

func renderStatus(d deps.Deps, w http.ResponseWriter, r *http.Request, status int, page, title string) {
	render(d, w, r, status, page, view.Page{Title: title})
}

func render(d deps.Deps, w http.ResponseWriter, r *http.Request, status int, page string, data any) {
	if err := d.Renderer.Render(w, status, page, data); err != nil {
		d.Logger.Error("render failed", logger.String("page", page), logger.String("path", r.URL.Path), logger.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// loadNav returns the navigation list, from the cache when possible.
func loadNav(ctx context.Context, d deps.Deps, tx *store.Tx) ([]domain.BucketRef, error) {
	if d.NavCache != nil {
		refs, ok, err := d.NavCache.GetBucketNav(ctx)
		if err != nil {
			d.Logger.Warn("nav cache read failed", logger.Error(err))
		} else if ok {
			return refs, nil
		}
	}

	refs, err := tx.ListBuckets()
	if err != nil {
		return nil, err
	}

	if d.NavCache != nil {
		if err := d.NavCache.SaveBucketNav(ctx, refs); err != nil {
			d.Logger.Warn("nav cache write failed", logger.Error(err))
		}
	}
	return refs, nil
}

// invalidateNav drops the cached navigation list after a bucket write.
func invalidateNav(ctx context.Context, d deps.Deps) {
	if d.NavCache == nil {
		return
	}
	if err := d.NavCache.InvalidateBucketNav(ctx); err != nil {
		d.Logger.Warn("nav cache invalidation failed", logger.Error(err))
	}
}

// NotFound renders the 404 page for unmatched routes.
func NotFound(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		renderStatus(d, w, r, http.StatusNotFound, view.PageNotFound, "Not Found")
	}
}
