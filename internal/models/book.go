package models

// Book is a row of the books table. ISBN is the caller-supplied primary key
// and never changes after creation.
type Book struct {
	ISBN      string `json:"isbn"`
	AmazonURL string `json:"amazon_url"`
	Author    string `json:"author"`
	Language  string `json:"language"`
	Pages     int    `json:"pages"`
	Publisher string `json:"publisher"`
	Title     string `json:"title"`
	Year      int    `json:"year"`
}
