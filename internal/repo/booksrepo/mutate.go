package booksrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/5w1tchy/bookshelf-api/internal/models"
)

// Create inserts b with its caller-supplied isbn. A duplicate isbn surfaces
// as the driver's unique-violation error.
func (s *Store) Create(ctx context.Context, b models.Book) (models.Book, error) {
	b = normalizeBook(b)
	row := s.db.QueryRowContext(ctx,
		`INSERT INTO books (`+bookColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING `+bookColumns,
		b.ISBN, b.AmazonURL, b.Author, b.Language, b.Pages, b.Publisher, b.Title, b.Year,
	)
	created, err := scanBook(row)
	if err != nil {
		return models.Book{}, fmt.Errorf("insert book %s: %w", b.ISBN, err)
	}
	return created, nil
}

// Update replaces every column except isbn. b.ISBN is ignored.
func (s *Store) Update(ctx context.Context, isbn string, b models.Book) (models.Book, error) {
	b = normalizeBook(b)
	isbn = Normalize(isbn)
	row := s.db.QueryRowContext(ctx,
		`UPDATE books SET amazon_url = $1, author = $2, language = $3, pages = $4, publisher = $5, title = $6, year = $7 WHERE isbn = $8 RETURNING `+bookColumns,
		b.AmazonURL, b.Author, b.Language, b.Pages, b.Publisher, b.Title, b.Year, isbn,
	)
	updated, err := scanBook(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Book{}, ErrNotFound
	}
	if err != nil {
		return models.Book{}, fmt.Errorf("update book %s: %w", isbn, err)
	}
	return updated, nil
}

// Remove deletes the book or returns ErrNotFound.
func (s *Store) Remove(ctx context.Context, isbn string) error {
	isbn = Normalize(isbn)
	res, err := s.db.ExecContext(ctx, `DELETE FROM books WHERE isbn = $1`, isbn)
	if err != nil {
		return fmt.Errorf("delete book %s: %w", isbn, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete book %s: %w", isbn, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// PingContext checks the database is reachable.
func (s *Store) PingContext(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
