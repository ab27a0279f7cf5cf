package books

import (
	"net/http"

	"github.com/5w1tchy/bookshelf-api/internal/api/apperr"
	"github.com/5w1tchy/bookshelf-api/internal/api/httpx"
	"github.com/5w1tchy/bookshelf-api/internal/validate"
)

func rejectISBN(obj map[string]any) error {
	if _, ok := obj["isbn"]; ok {
		return apperr.Validation("Not allowed to change the isbn number")
	}
	return nil
}

// PUT /books/{isbn} bookData => {book: updatedBook}
func (h *Handler) put(w http.ResponseWriter, r *http.Request) {
	isbn := pathISBN(r)

	in, err := h.decodeBook(r, validate.UpdateBookSchemaID, rejectISBN)
	if err != nil {
		apperr.Respond(w, r, err)
		return
	}

	book, err := h.store.Update(r.Context(), isbn, in)
	if err != nil {
		apperr.Respond(w, r, storeErr(err, isbn))
		return
	}
	httpx.WriteJSON(w, http.StatusOK, bookResponse{Book: book})
}
