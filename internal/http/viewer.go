package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/kobo-export/internal/entities"
	"github.com/mrlokans/kobo-export/internal/kobo"
)

// ViewerController serves read-only pages over the catalog and item list
// materialized before the server started. Neither structure is mutated
// afterwards, so concurrent requests need no synchronization.
type ViewerController struct {
	catalog *kobo.Catalog
	items   []entities.Item
}

func NewViewerController(catalog *kobo.Catalog, items []entities.Item) *ViewerController {
	return &ViewerController{
		catalog: catalog,
		items:   items,
	}
}

// BooksPage renders the list of books with annotations or highlights.
func (controller *ViewerController) BooksPage(c *gin.Context) {
	c.HTML(http.StatusOK, "books", gin.H{
		"Books":      controller.catalog.Ordered,
		"TotalBooks": controller.catalog.Len(),
		"TotalItems": len(controller.items),
	})
}

// BookPage renders one book, by its 1-based index, together with its items.
func (controller *ViewerController) BookPage(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.String(http.StatusBadRequest, "Invalid book ID")
		return
	}

	book, err := controller.catalog.BookByIndex(index)
	if err != nil {
		c.String(http.StatusNotFound, "Book not found")
		return
	}

	c.HTML(http.StatusOK, "book", gin.H{
		"Index": index,
		"Book":  book,
		"Items": controller.itemsForVolume(book.VolumeID),
	})
}

// ListBooks returns all books as JSON.
func (controller *ViewerController) ListBooks(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, gin.H{
		"books": controller.catalog.Ordered,
		"count": controller.catalog.Len(),
	})
}

// GetBook returns one book, by its 1-based index, with its items as JSON.
func (controller *ViewerController) GetBook(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": "invalid book ID"})
		return
	}

	book, err := controller.catalog.BookByIndex(index)
	if err != nil {
		c.IndentedJSON(http.StatusNotFound, gin.H{"error": "book not found"})
		return
	}

	c.IndentedJSON(http.StatusOK, gin.H{
		"id":    index,
		"book":  book,
		"items": controller.itemsForVolume(book.VolumeID),
	})
}

func (controller *ViewerController) itemsForVolume(volumeID string) []entities.Item {
	items := make([]entities.Item, 0)
	for _, item := range controller.items {
		if item.VolumeID == volumeID {
			items = append(items, item)
		}
	}
	return items
}
