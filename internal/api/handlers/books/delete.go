package books

import (
	"net/http"

	"github.com/5w1tchy/bookshelf-api/internal/api/apperr"
	"github.com/5w1tchy/bookshelf-api/internal/api/httpx"
	"github.com/5w1tchy/bookshelf-api/internal/logger"
)

// DELETE /books/{isbn} => {message: "Book deleted"}
func (h *Handler) del(w http.ResponseWriter, r *http.Request) {
	isbn := pathISBN(r)

	if err := h.store.Remove(r.Context(), isbn); err != nil {
		apperr.Respond(w, r, storeErr(err, isbn))
		return
	}

	logger.FromContext(r.Context()).WithField("isbn", isbn).Info("book deleted")
	httpx.WriteJSON(w, http.StatusOK, messageResponse{Message: "Book deleted"})
}
