package kobo

import (
	"fmt"
	"strconv"

	"github.com/mrlokans/kobo-export/internal/entities"
)

// IndexedBook pairs a book with its stable 1-based index. The index is the
// "book id" shown by the list output and accepted by the bookid filter.
type IndexedBook struct {
	Index int `json:"id"`
	entities.Book
}

// Catalog holds every book with annotations or highlights for one
// extraction run. It is loaded once and read-only afterwards, so the
// viewer may serve it concurrently without locking.
type Catalog struct {
	// Books maps volume id to book.
	Books map[string]entities.Book
	// Ordered lists the books title-ascending with 1-based indices.
	Ordered []IndexedBook
}

// LoadCatalog reads the books query and builds the index <-> volume id
// mapping used by the filters and by the viewer.
func LoadCatalog(repo *Repository) (*Catalog, error) {
	rows, err := repo.Books()
	if err != nil {
		return nil, err
	}

	catalog := &Catalog{
		Books:   make(map[string]entities.Book, len(rows)),
		Ordered: make([]IndexedBook, 0, len(rows)),
	}
	for i, row := range rows {
		book := entities.Book{
			VolumeID:  row.VolumeID,
			Title:     row.Title,
			Author:    row.Author,
			ItemCount: row.ItemCount,
		}
		catalog.Books[book.VolumeID] = book
		catalog.Ordered = append(catalog.Ordered, IndexedBook{Index: i + 1, Book: book})
	}
	return catalog, nil
}

// Len returns the number of books in the catalog.
func (c *Catalog) Len() int { return len(c.Ordered) }

// BookByIndex returns the book with the given 1-based index, or ErrNotFound
// when the index is out of range.
func (c *Catalog) BookByIndex(index int) (entities.Book, error) {
	if index < 1 || index > len(c.Ordered) {
		return entities.Book{}, ErrNotFound
	}
	return c.Ordered[index-1].Book, nil
}

// VolumeIDFromIndex resolves a 1-based index to its volume id.
func (c *Catalog) VolumeIDFromIndex(index int) (string, error) {
	book, err := c.BookByIndex(index)
	if err != nil {
		return "", err
	}
	return book.VolumeID, nil
}

// VolumeIDFromBookID resolves the bookid value given on the command line.
// A non-numeric or out-of-range value is a user error, not a crash.
func (c *Catalog) VolumeIDFromBookID(bookID string) (string, error) {
	index, err := strconv.Atoi(bookID)
	if err != nil {
		return "", c.bookIDRangeError()
	}
	volumeID, err := c.VolumeIDFromIndex(index)
	if err != nil {
		return "", c.bookIDRangeError()
	}
	return volumeID, nil
}

// BookByTitle returns the first book whose title matches exactly.
func (c *Catalog) BookByTitle(title string) (entities.Book, bool) {
	for _, indexed := range c.Ordered {
		if indexed.Title == title {
			return indexed.Book, true
		}
	}
	return entities.Book{}, false
}

func (c *Catalog) bookIDRangeError() error {
	return &UsageError{
		Message: fmt.Sprintf("the bookid value must be an integer between 1 and %d", c.Len()),
	}
}
