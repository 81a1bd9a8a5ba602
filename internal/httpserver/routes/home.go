package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/buckets/internal/httpserver/deps"
	"github.com/MrSnakeDoc/buckets/internal/httpserver/handlers"
)

func init() { Register(registerHome) }

func registerHome(r chi.Router, d deps.Deps) {
	r.Get("/", handlers.Home(d))
}
