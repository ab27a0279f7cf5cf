package books

import (
	"net/http"

	"github.com/5w1tchy/bookshelf-api/internal/repo/booksrepo"
	"github.com/5w1tchy/bookshelf-api/internal/validate"
)

// Handler serves the /books resource.
type Handler struct {
	store     *booksrepo.Store
	validator *validate.Validator
}

func NewHandler(store *booksrepo.Store, v *validate.Validator) *Handler {
	return &Handler{store: store, validator: v}
}

// Mount registers the book routes. guard wraps the mutating routes; pass nil
// to leave them open.
func (h *Handler) Mount(mux *http.ServeMux, guard func(http.Handler) http.Handler) {
	if guard == nil {
		guard = func(next http.Handler) http.Handler { return next }
	}

	mux.HandleFunc("GET /books", h.list)
	mux.HandleFunc("GET /books/{isbn}", h.get)
	mux.Handle("POST /books", guard(http.HandlerFunc(h.create)))
	mux.Handle("PUT /books/{isbn}", guard(http.HandlerFunc(h.put)))
	mux.Handle("DELETE /books/{isbn}", guard(http.HandlerFunc(h.del)))

	// Keep trailing-slash collection URLs working
	mux.HandleFunc("GET /books/{$}", func(w http.ResponseWriter, r *http.Request) {
		target := "/books"
		if r.URL.RawQuery != "" {
			target += "?" + r.URL.RawQuery
		}
		http.Redirect(w, r, target, http.StatusMovedPermanently)
	})
}
