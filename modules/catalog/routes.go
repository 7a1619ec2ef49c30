package catalog

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/idevelopit/website/handler"
)

// Routes serves the catalog as JSON.
//
//	r.Mount("/api/services", catalog.Routes(catalog.Default()))
func Routes(c *Catalog) chi.Router {
	r := chi.NewRouter()

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		_ = handler.JSONError("Method not allowed",
			handler.WithJSONStatus(http.StatusMethodNotAllowed),
			handler.WithJSONHeader("Allow", http.MethodGet),
		).Render(w, r)
	})

	r.Get("/", handler.Wrap(handler.HandlerFunc[handler.Context, struct{}](
		func(handler.Context, struct{}) handler.Response {
			return handler.JSON(c, handler.WithJSONHeader("Cache-Control", "public, max-age=300"))
		},
	)))

	return r
}
