package kobo

import "github.com/mrlokans/kobo-export/internal/entities"

// Filters selects which extracted items are kept. The zero value keeps
// everything. BookID and BookTitle are mutually exclusive; HighlightsOnly
// and AnnotationsOnly may be combined, in which case the intersection is
// taken — no item is both, so the result is empty rather than an error.
type Filters struct {
	BookID          string // 1-based book index, as typed on the command line
	BookTitle       string // exact title match
	HighlightsOnly  bool
	AnnotationsOnly bool
}

// Validate rejects conflicting selection parameters. It runs before any
// row is read, so the conflict is reported even against an empty database.
func (f Filters) Validate() error {
	if f.BookID != "" && f.BookTitle != "" {
		return &UsageError{Message: "you cannot specify both -book and -bookid"}
	}
	return nil
}

// ExtractItems runs the version-appropriate query, joins each raw row to
// its owning book, constructs the items, and applies the filter pipeline.
// It is a pure function of its inputs: callers decide what to retain.
func ExtractItems(repo *Repository, catalog *Catalog, filters Filters) ([]entities.Item, error) {
	if err := filters.Validate(); err != nil {
		return nil, err
	}

	version, err := repo.SchemaVersion()
	if err != nil {
		return nil, err
	}
	rows, err := repo.Items(version)
	if err != nil {
		return nil, err
	}

	items := make([]entities.Item, 0, len(rows))
	for _, row := range rows {
		// A row whose volume id has no catalog book cannot resolve a
		// title or author; it is dropped.
		book, ok := catalog.Books[row.VolumeID]
		if !ok {
			continue
		}
		items = append(items, entities.NewItem(
			row.VolumeID,
			row.Text,
			row.Annotation,
			row.DateCreated,
			row.DateModified,
			row.Chapter,
			book,
		))
	}

	if len(items) == 0 {
		return items, nil
	}
	return applyFilters(catalog, items, filters)
}

// applyFilters runs the pipeline in its fixed order: book id, book title,
// highlights-only, annotations-only. The filters are set intersections and
// commute; the order is kept for byte-compatibility of error reporting.
func applyFilters(catalog *Catalog, items []entities.Item, filters Filters) ([]entities.Item, error) {
	if filters.BookID != "" {
		volumeID, err := catalog.VolumeIDFromBookID(filters.BookID)
		if err != nil {
			return nil, err
		}
		items = keepItems(items, func(i entities.Item) bool { return i.VolumeID == volumeID })
	}
	if filters.BookTitle != "" {
		items = keepItems(items, func(i entities.Item) bool { return i.BookTitle == filters.BookTitle })
	}
	if filters.HighlightsOnly {
		items = keepItems(items, func(i entities.Item) bool { return i.Kind == entities.KindHighlight })
	}
	if filters.AnnotationsOnly {
		items = keepItems(items, func(i entities.Item) bool { return i.Kind == entities.KindAnnotation })
	}
	return items, nil
}

func keepItems(items []entities.Item, keep func(entities.Item) bool) []entities.Item {
	kept := make([]entities.Item, 0, len(items))
	for _, item := range items {
		if keep(item) {
			kept = append(kept, item)
		}
	}
	return kept
}
