package books

import (
	"net/http"

	"github.com/5w1tchy/bookshelf-api/internal/api/apperr"
	"github.com/5w1tchy/bookshelf-api/internal/api/httpx"
	"github.com/5w1tchy/bookshelf-api/internal/repo/booksrepo"
	"github.com/5w1tchy/bookshelf-api/internal/validate"
)

const maxPageSize = 100

func filterFromQuery(r *http.Request) booksrepo.Filter {
	q := r.URL.Query()
	limit, offset := validate.OptionalPaging(q.Get("limit"), q.Get("offset"), maxPageSize)
	return booksrepo.Filter{
		Title:     q.Get("title"),
		Author:    q.Get("author"),
		Publisher: q.Get("publisher"),
		Language:  q.Get("language"),
		Year:      validate.OptionalInt(q.Get("year")),
		Limit:     limit,
		Offset:    offset,
	}
}

// GET /books => {books: [book, ...]}
func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	books, err := h.store.FindAll(r.Context(), filterFromQuery(r))
	if err != nil {
		apperr.Respond(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, booksResponse{Books: books})
}
