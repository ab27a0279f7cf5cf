package validate

const (
	NewBookSchemaID    = "https://bookshelf-api/schemas/new-book.json"
	UpdateBookSchemaID = "https://bookshelf-api/schemas/update-book.json"
)

func intp(n int) *int { return &n }

func bookFields(maxYear int, isbn Field) []Field {
	return []Field{
		isbn,
		{Name: "amazon_url", Type: TypeString, Required: true, Format: "uri"},
		{Name: "author", Type: TypeString, Required: true, MinLength: 1},
		{Name: "language", Type: TypeString, Required: true, MinLength: 1},
		{Name: "pages", Type: TypeInteger, Required: true, Minimum: intp(1)},
		{Name: "publisher", Type: TypeString, Required: true, MinLength: 1},
		{Name: "title", Type: TypeString, Required: true, MinLength: 1},
		{Name: "year", Type: TypeInteger, Required: true, Maximum: intp(maxYear)},
	}
}

// NewBookSchema requires every book field, isbn included.
func NewBookSchema(maxYear int) Schema {
	return Schema{
		ID:     NewBookSchemaID,
		Title:  "new book",
		Fields: bookFields(maxYear, Field{Name: "isbn", Type: TypeString, Required: true, MinLength: 1}),
	}
}

// UpdateBookSchema requires every field except isbn, which is rejected.
func UpdateBookSchema(maxYear int) Schema {
	return Schema{
		ID:     UpdateBookSchemaID,
		Title:  "update book",
		Fields: bookFields(maxYear, Field{Name: "isbn", Forbidden: true}),
	}
}

// BookValidator compiles both book schemas with the given year bound.
func BookValidator(maxYear int) (*Validator, error) {
	return NewValidator(NewBookSchema(maxYear), UpdateBookSchema(maxYear))
}
