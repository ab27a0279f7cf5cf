package books

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/5w1tchy/bookshelf-api/internal/api/apperr"
	"github.com/5w1tchy/bookshelf-api/internal/api/httpx"
	"github.com/5w1tchy/bookshelf-api/internal/models"
	"github.com/5w1tchy/bookshelf-api/internal/repo/booksrepo"
)

// storeErr turns model sentinels into client-facing errors.
func storeErr(err error, isbn string) error {
	if errors.Is(err, booksrepo.ErrNotFound) {
		return apperr.NotFound(fmt.Sprintf("There is no book with an isbn '%s'", isbn))
	}
	return err
}

// pathISBN is the {isbn} segment in the form books are stored under.
func pathISBN(r *http.Request) string {
	return booksrepo.Normalize(r.PathValue("isbn"))
}

// normalizeObject applies the store's text normalisation to every string
// value so the schema sees what would be persisted.
func normalizeObject(obj map[string]any) {
	for k, v := range obj {
		s, ok := v.(string)
		if !ok {
			continue
		}
		if k == "amazon_url" {
			obj[k] = strings.TrimSpace(s)
		} else {
			obj[k] = booksrepo.Normalize(s)
		}
	}
}

// decodeBook reads the body, runs check on the decoded object, validates the
// normalised object against schemaID and only then builds the typed book.
func (h *Handler) decodeBook(r *http.Request, schemaID string, check func(map[string]any) error) (models.Book, error) {
	obj, _, err := httpx.DecodeObject(r)
	if err != nil {
		return models.Book{}, err
	}
	if check != nil {
		if err := check(obj); err != nil {
			return models.Book{}, err
		}
	}
	normalizeObject(obj)
	if err := h.validator.Validate(schemaID, obj); err != nil {
		return models.Book{}, err
	}

	raw, err := json.Marshal(obj)
	if err != nil {
		return models.Book{}, err
	}
	var b models.Book
	if err := json.Unmarshal(raw, &b); err != nil {
		return models.Book{}, apperr.Validation("request body does not describe a book")
	}
	return b, nil
}
