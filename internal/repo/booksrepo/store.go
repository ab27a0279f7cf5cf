package booksrepo

import (
	"github.com/5w1tchy/bookshelf-api/internal/models"
	"github.com/5w1tchy/bookshelf-api/internal/store/dbx"
)

const bookColumns = `isbn, amazon_url, author, language, pages, publisher, title, year`

// Store runs the book statements against an explicit database handle.
type Store struct {
	db dbx.DB
}

func New(db dbx.DB) *Store { return &Store{db: db} }

func scanBook(s dbx.Scanner) (models.Book, error) {
	var b models.Book
	err := s.Scan(&b.ISBN, &b.AmazonURL, &b.Author, &b.Language, &b.Pages, &b.Publisher, &b.Title, &b.Year)
	return b, err
}
