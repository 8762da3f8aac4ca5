package entities

import "strings"

// Kind tags an extracted item as one of the three bookmark row flavours
// found on the device.
type Kind string

const (
	KindAnnotation Kind = "annotation"
	KindBookmark   Kind = "bookmark"
	KindHighlight  Kind = "highlight"
)

// EpochSentinel replaces NULL timestamps from the device database.
const EpochSentinel = "1970-01-01T00:00:00.000"

// Book is one volume on the device that carries at least one bookmark row.
// Books are loaded once per run by the catalog and never mutated afterwards.
type Book struct {
	VolumeID  string `json:"volume_id"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	ItemCount int    `json:"item_count"`
}

// Item is a single annotation, highlight, or bookmark. BookTitle and Author
// are resolved from the owning Book at construction time, not taken from the
// raw row, which may carry a stale or cross-joined value.
type Item struct {
	VolumeID     string `json:"volume_id"`
	Kind         Kind   `json:"kind"`
	Text         string `json:"text"`
	Annotation   string `json:"annotation"`
	DateCreated  string `json:"date_created"`
	DateModified string `json:"date_modified"`
	BookTitle    string `json:"book_title"`
	Author       string `json:"author"`
	Chapter      string `json:"chapter"`
}

// ClassifyKind derives an item's kind from its text and annotation fields.
// The annotation check runs before the plain highlight check: an item with
// text but no annotation is a highlight, never a bookmark.
func ClassifyKind(text, annotation string) Kind {
	switch {
	case text == "":
		return KindBookmark
	case annotation != "":
		return KindAnnotation
	default:
		return KindHighlight
	}
}

// NewItem builds an Item from a raw bookmark row and its owning book.
// The kind is computed here, once, and never re-derived.
func NewItem(volumeID, text, annotation, dateCreated, dateModified, chapter string, book Book) Item {
	text = strings.TrimSpace(text)
	return Item{
		VolumeID:     volumeID,
		Kind:         ClassifyKind(text, annotation),
		Text:         text,
		Annotation:   annotation,
		DateCreated:  orEpoch(dateCreated),
		DateModified: orEpoch(dateModified),
		BookTitle:    book.Title,
		Author:       book.Author,
		Chapter:      chapter,
	}
}

func orEpoch(date string) string {
	if date == "" {
		return EpochSentinel
	}
	return date
}

// CSVRecord returns the item as a CSV row:
// kind, title, author, chapter, created, modified, annotation, text.
func (i Item) CSVRecord() []string {
	return []string{
		string(i.Kind),
		i.BookTitle,
		i.Author,
		i.Chapter,
		i.DateCreated,
		i.DateModified,
		i.Annotation,
		i.Text,
	}
}

// FormattedDateCreated renders the creation date for human-readable output.
func (i Item) FormattedDateCreated() string {
	return FormatDate(i.DateCreated)
}
