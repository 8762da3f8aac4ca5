package exporters

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/mrlokans/kobo-export/internal/kobo"
)

// bookListHeader is the literal header row of the CSV book list.
var bookListHeader = []string{"ID", "AUTHOR", "TITLE"}

// RenderBookList renders the catalog's ordered book list. Only CSV and
// JSON have dedicated list layouts; every other format falls back to the
// tab-separated text table.
func RenderBookList(format Format, books []kobo.IndexedBook) (string, error) {
	switch format {
	case FormatJSON:
		return RenderBookListJSON(books)
	case FormatCSV:
		return RenderBookListCSV(books)
	default:
		return RenderBookListText(books), nil
	}
}

// RenderBookListText renders "id<TAB>author<TAB>title" lines with the
// author column padded to 30 characters, header row included.
func RenderBookListText(books []kobo.IndexedBook) string {
	lines := make([]string, 0, len(books)+1)
	lines = append(lines, fmt.Sprintf("%s\t%-30s\t%s",
		bookListHeader[0], bookListHeader[1], bookListHeader[2]))
	for _, book := range books {
		lines = append(lines, fmt.Sprintf("%d\t%-30s\t%s",
			book.Index, book.Author, book.Title))
	}
	return strings.Join(lines, "\n")
}

// RenderBookListCSV renders the list with the literal ID/AUTHOR/TITLE
// header row.
func RenderBookListCSV(books []kobo.IndexedBook) (string, error) {
	var buf strings.Builder
	w := csv.NewWriter(&buf)
	if err := w.Write(bookListHeader); err != nil {
		return "", err
	}
	for _, book := range books {
		record := []string{strconv.Itoa(book.Index), book.Author, book.Title}
		if err := w.Write(record); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderBookListJSON renders the indexed books as a pretty-printed array.
func RenderBookListJSON(books []kobo.IndexedBook) (string, error) {
	out, err := json.MarshalIndent(books, "", "  ")
	if err != nil {
		return "", err
	}
	return string(out), nil
}
