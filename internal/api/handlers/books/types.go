package books

import "github.com/5w1tchy/bookshelf-api/internal/models"

type bookResponse struct {
	Book models.Book `json:"book"`
}

type booksResponse struct {
	Books []models.Book `json:"books"`
}

type messageResponse struct {
	Message string `json:"message"`
}
