package kobo

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/kobo-export/internal/entities"
)

func extractFrom(t *testing.T, path string, filters Filters) []entities.Item {
	t.Helper()
	repo := NewRepository(path)
	catalog, err := LoadCatalog(repo)
	require.NoError(t, err)
	items, err := ExtractItems(repo, catalog, filters)
	require.NoError(t, err)
	return items
}

func TestExtractItems(t *testing.T) {
	path, db := createDeviceDB(t, 100)
	seedTwoBooks(t, db)

	items := extractFrom(t, path, Filters{})
	require.Len(t, items, 4)

	// Reading order, with kind and book metadata resolved per item.
	assert.Equal(t, entities.KindHighlight, items[0].Kind)
	assert.Equal(t, "a quoted passage", items[0].Text)
	assert.Equal(t, "Alpha Book", items[0].BookTitle)
	assert.Equal(t, "Anna Author", items[0].Author)
	assert.Equal(t, "Ch1", items[0].Chapter)

	assert.Equal(t, entities.KindAnnotation, items[1].Kind)
	assert.Equal(t, "my note", items[1].Annotation)

	assert.Equal(t, entities.KindHighlight, items[2].Kind)
	assert.Equal(t, "Beta Book", items[2].BookTitle)

	assert.Equal(t, entities.KindBookmark, items[3].Kind)
	assert.Equal(t, "", items[3].Text)
}

func TestExtractItems_Version175UsesBookIDJoin(t *testing.T) {
	path, db := createDeviceDB(t, 175)

	// The bookmark's ContentID points nowhere; only the BookID join
	// resolves a chapter row. Pre-175 layouts would find no items here.
	addContent(t, db, "vol-a", "", "A Book", "A Book", "An Author")
	addContent(t, db, "vol-a!1", "vol-a", "A Book", "Ch1", "An Author")
	addBookmark(t, db, "b1", "vol-a", "stale!ref", "passage", "", "2014-12-19T19:54:11.000", 0.1)

	items := extractFrom(t, path, Filters{})
	require.Len(t, items, 1)
	assert.Equal(t, "passage", items[0].Text)
	assert.Equal(t, "Ch1", items[0].Chapter)
}

func TestExtractItems_NonSpecialVersionUsesContentIDJoin(t *testing.T) {
	path, db := createDeviceDB(t, 176)

	addContent(t, db, "vol-a", "", "A Book", "A Book", "An Author")
	addContent(t, db, "vol-a!1", "vol-a", "A Book", "Ch1", "An Author")
	addBookmark(t, db, "b1", "vol-a", "stale!ref", "passage", "", "2014-12-19T19:54:11.000", 0.1)

	items := extractFrom(t, path, Filters{})
	assert.Empty(t, items, "only version 175 falls back to the BookID join")
}

func TestExtractItems_DuplicateDatesCollapse(t *testing.T) {
	path, db := createDeviceDB(t, 100)
	addContent(t, db, "vol-a", "", "A Book", "A Book", "An Author")
	addContent(t, db, "vol-a!1", "vol-a", "A Book", "Ch1", "An Author")
	addBookmark(t, db, "b1", "vol-a", "vol-a!1", "first", "", "2014-12-19T19:54:11.000", 0.1)
	addBookmark(t, db, "b2", "vol-a", "vol-a!1", "second", "", "2014-12-19T19:54:11.000", 0.2)

	items := extractFrom(t, path, Filters{})
	assert.Len(t, items, 1, "rows sharing a creation date are treated as one item")
}

func TestExtractItems_UnknownVolumeRowsAreDropped(t *testing.T) {
	path, db := createDeviceDB(t, 100)
	seedTwoBooks(t, db)
	// A chapter row with no owning book row: the item query finds it, but
	// the catalog cannot resolve its book.
	addContent(t, db, "vol-ghost!1", "vol-ghost", "Ghost", "Ch1", "")
	addBookmark(t, db, "b9", "vol-ghost", "vol-ghost!1", "orphan", "", "2016-01-01T00:00:00.000", 0.9)

	items := extractFrom(t, path, Filters{})
	require.Len(t, items, 4)
	for _, item := range items {
		assert.NotEqual(t, "vol-ghost", item.VolumeID)
	}
}

func TestExtractItems_ConflictingBookFiltersFailBeforeReading(t *testing.T) {
	// The path does not exist: the conflict must be reported before any
	// database access is attempted.
	repo := NewRepository(filepath.Join(t.TempDir(), "missing.sqlite"))
	catalog := &Catalog{Books: map[string]entities.Book{}}

	_, err := ExtractItems(repo, catalog, Filters{BookID: "1", BookTitle: "Alpha Book"})
	require.Error(t, err)

	var usageErr *UsageError
	require.True(t, errors.As(err, &usageErr))
	assert.Equal(t, "you cannot specify both -book and -bookid", usageErr.Message)
}

func TestExtractItems_EmptyDatabaseSkipsFilters(t *testing.T) {
	path, _ := createDeviceDB(t, 100)

	// With no items there is nothing to filter: even an out-of-range
	// bookid does not surface an error.
	items := extractFrom(t, path, Filters{BookID: "5"})
	assert.Empty(t, items)
}

func TestExtractItems_Filters(t *testing.T) {
	path, db := createDeviceDB(t, 100)
	seedTwoBooks(t, db)

	t.Run("by book id", func(t *testing.T) {
		items := extractFrom(t, path, Filters{BookID: "2"})
		require.Len(t, items, 1)
		assert.Equal(t, "Beta Book", items[0].BookTitle)
	})

	t.Run("by book title", func(t *testing.T) {
		items := extractFrom(t, path, Filters{BookTitle: "Alpha Book"})
		require.Len(t, items, 3)
		for _, item := range items {
			assert.Equal(t, "vol-alpha", item.VolumeID)
		}
	})

	t.Run("highlights only", func(t *testing.T) {
		items := extractFrom(t, path, Filters{HighlightsOnly: true})
		require.Len(t, items, 2)
		for _, item := range items {
			assert.Equal(t, entities.KindHighlight, item.Kind)
		}
	})

	t.Run("annotations only", func(t *testing.T) {
		items := extractFrom(t, path, Filters{AnnotationsOnly: true})
		require.Len(t, items, 1)
		assert.Equal(t, "my note", items[0].Annotation)
	})

	t.Run("both kind filters intersect to nothing", func(t *testing.T) {
		items := extractFrom(t, path, Filters{HighlightsOnly: true, AnnotationsOnly: true})
		assert.Empty(t, items)
	})

	t.Run("book and kind filters combine", func(t *testing.T) {
		items := extractFrom(t, path, Filters{BookTitle: "Alpha Book", HighlightsOnly: true})
		require.Len(t, items, 1)
		assert.Equal(t, "a quoted passage", items[0].Text)
	})

	t.Run("invalid book id", func(t *testing.T) {
		repo := NewRepository(path)
		catalog, err := LoadCatalog(repo)
		require.NoError(t, err)

		_, err = ExtractItems(repo, catalog, Filters{BookID: "abc"})
		require.Error(t, err)
		var usageErr *UsageError
		assert.True(t, errors.As(err, &usageErr))
	})
}

func TestApplyFilters_Commute(t *testing.T) {
	path, db := createDeviceDB(t, 100)
	seedTwoBooks(t, db)

	repo := NewRepository(path)
	catalog, err := LoadCatalog(repo)
	require.NoError(t, err)
	items, err := ExtractItems(repo, catalog, Filters{})
	require.NoError(t, err)

	bookFirst, err := applyFilters(catalog, items, Filters{BookTitle: "Alpha Book"})
	require.NoError(t, err)
	bookFirst, err = applyFilters(catalog, bookFirst, Filters{HighlightsOnly: true})
	require.NoError(t, err)

	kindFirst, err := applyFilters(catalog, items, Filters{HighlightsOnly: true})
	require.NoError(t, err)
	kindFirst, err = applyFilters(catalog, kindFirst, Filters{BookTitle: "Alpha Book"})
	require.NoError(t, err)

	assert.Equal(t, bookFirst, kindFirst, "filter application order must not matter")
}
