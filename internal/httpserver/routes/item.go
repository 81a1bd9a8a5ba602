package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/buckets/internal/httpserver/deps"
	"github.com/MrSnakeDoc/buckets/internal/httpserver/handlers"
)

func init() { Register(registerItems) }

func registerItems(r chi.Router, d deps.Deps) {
	const item = "/bucket/{bucketID}/item/{itemID}"

	getPost(r, "/bucket/{bucketID}/item/create/", handlers.CreateItem(d))
	getPost(r, item+"/update/", handlers.UpdateItem(d))
	r.Get(item+"/complete/", handlers.CompleteItem(d))
	r.Get(item+"/due_date_plus_one_day/", handlers.DueDatePlusOneDay(d))
	r.Get(item+"/flag/", handlers.FlagItem(d))
	r.Get(item+"/unflag/", handlers.UnflagItem(d))
	r.Get(item+"/delete/", handlers.DeleteItem(d))
}
