package booksrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/5w1tchy/bookshelf-api/internal/models"
)

// Filter narrows FindAll. Zero values mean "no constraint".
type Filter struct {
	Title     string // case-insensitive substring
	Author    string // case-insensitive substring
	Publisher string // case-insensitive equality
	Language  string // case-insensitive equality
	Year      int
	Limit     int
	Offset    int
}

func (f Filter) where() (string, []any) {
	var conds []string
	var args []any
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, strings.ReplaceAll(cond, "?", "$"+strconv.Itoa(len(args))))
	}

	if s := Normalize(f.Title); s != "" {
		add("title ILIKE ?", "%"+escapeLike(s)+"%")
	}
	if s := Normalize(f.Author); s != "" {
		add("author ILIKE ?", "%"+escapeLike(s)+"%")
	}
	if s := Normalize(f.Publisher); s != "" {
		add("lower(publisher) = lower(?)", s)
	}
	if s := Normalize(f.Language); s != "" {
		add("lower(language) = lower(?)", s)
	}
	if f.Year > 0 {
		add("year = ?", f.Year)
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// FindAll returns the matching books ordered by title. The result is never nil.
func (s *Store) FindAll(ctx context.Context, f Filter) ([]models.Book, error) {
	where, args := f.where()
	q := `SELECT ` + bookColumns + ` FROM books` + where + ` ORDER BY title, isbn`
	if f.Limit > 0 {
		args = append(args, f.Limit)
		q += ` LIMIT $` + strconv.Itoa(len(args))
	}
	if f.Offset > 0 {
		args = append(args, f.Offset)
		q += ` OFFSET $` + strconv.Itoa(len(args))
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	defer rows.Close()

	books := make([]models.Book, 0)
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return books, nil
}

// FindOne returns the book with the given isbn or ErrNotFound.
func (s *Store) FindOne(ctx context.Context, isbn string) (models.Book, error) {
	isbn = Normalize(isbn)
	row := s.db.QueryRowContext(ctx, `SELECT `+bookColumns+` FROM books WHERE isbn = $1`, isbn)
	b, err := scanBook(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Book{}, ErrNotFound
	}
	if err != nil {
		return models.Book{}, fmt.Errorf("get book %s: %w", isbn, err)
	}
	return b, nil
}
