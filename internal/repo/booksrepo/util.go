package booksrepo

import (
	"strings"

	"github.com/5w1tchy/bookshelf-api/internal/models"
	"golang.org/x/text/unicode/norm"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Normalize trims s and puts it in NFC so composed and decomposed input
// compare and store the same.
func Normalize(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

func normalizeBook(b models.Book) models.Book {
	b.ISBN = Normalize(b.ISBN)
	b.AmazonURL = strings.TrimSpace(b.AmazonURL)
	b.Author = Normalize(b.Author)
	b.Language = Normalize(b.Language)
	b.Publisher = Normalize(b.Publisher)
	b.Title = Normalize(b.Title)
	return b
}

func escapeLike(s string) string { return likeEscaper.Replace(s) }
