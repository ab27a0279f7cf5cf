package books

import (
	"net/http"

	"github.com/5w1tchy/bookshelf-api/internal/api/apperr"
	"github.com/5w1tchy/bookshelf-api/internal/api/httpx"
)

// GET /books/{isbn} => {book: book}
func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	isbn := pathISBN(r)

	book, err := h.store.FindOne(r.Context(), isbn)
	if err != nil {
		apperr.Respond(w, r, storeErr(err, isbn))
		return
	}
	httpx.WriteJSON(w, http.StatusOK, bookResponse{Book: book})
}
