package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/buckets/internal/httpserver/deps"
	"github.com/MrSnakeDoc/buckets/internal/httpserver/handlers"
)

func init() { Register(registerBuckets) }

func registerBuckets(r chi.Router, d deps.Deps) {
	getPost(r, "/bucket/create/", handlers.CreateBucket(d))
	getPost(r, "/bucket/{bucketID}/", handlers.Bucket(d))
	getPost(r, "/bucket/{bucketID}/update/", handlers.UpdateBucket(d))
}

// getPost mounts h for GET and POST on pattern.
func getPost(r chi.Router, pattern string, h http.HandlerFunc) {
	r.Get(pattern, h)
	r.Post(pattern, h)
}
