package router

import (
	"net/http"

	"github.com/5w1tchy/bookshelf-api/internal/api/handlers"
	"github.com/5w1tchy/bookshelf-api/internal/api/handlers/books"
	"github.com/5w1tchy/bookshelf-api/internal/repo/booksrepo"
	"github.com/5w1tchy/bookshelf-api/internal/store/dbx"
	"github.com/5w1tchy/bookshelf-api/internal/validate"
)

// Options tune the routes. The zero value leaves every route open.
type Options struct {
	// WriteGuard wraps POST/PUT/DELETE /books when set.
	WriteGuard func(http.Handler) http.Handler
}

func Router(db dbx.DB, v *validate.Validator, opts Options) http.Handler {
	mux := http.NewServeMux()

	store := booksrepo.New(db)

	mux.HandleFunc("GET /healthz", handlers.Health(store))

	books.NewHandler(store, v).Mount(mux, opts.WriteGuard)

	// Everything else
	mux.HandleFunc("/", handlers.NotFound)

	return mux
}
