package books

import (
	"net/http"

	"github.com/5w1tchy/bookshelf-api/internal/api/apperr"
	"github.com/5w1tchy/bookshelf-api/internal/api/httpx"
	"github.com/5w1tchy/bookshelf-api/internal/logger"
	"github.com/5w1tchy/bookshelf-api/internal/validate"
)

// POST /books bookData => {book: newBook}
func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	in, err := h.decodeBook(r, validate.NewBookSchemaID, nil)
	if err != nil {
		apperr.Respond(w, r, err)
		return
	}

	book, err := h.store.Create(r.Context(), in)
	if err != nil {
		apperr.Respond(w, r, err)
		return
	}

	logger.FromContext(r.Context()).WithField("isbn", book.ISBN).Info("book created")
	httpx.WriteJSON(w, http.StatusCreated, bookResponse{Book: book})
}
