package kobo

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_SchemaVersion(t *testing.T) {
	path, _ := createDeviceDB(t, 142)

	version, err := NewRepository(path).SchemaVersion()
	require.NoError(t, err)
	assert.Equal(t, 142, version)
}

func TestRepository_SchemaVersion_MissingFile(t *testing.T) {
	repo := NewRepository(filepath.Join(t.TempDir(), "does-not-exist.sqlite"))

	_, err := repo.SchemaVersion()
	require.Error(t, err)

	var dsErr *DataSourceError
	assert.True(t, errors.As(err, &dsErr), "expected a DataSourceError, got %T", err)
	assert.Contains(t, err.Error(), "check that the path is correct")
}

func TestRepository_SchemaVersion_ForeignSchema(t *testing.T) {
	// A valid but empty SQLite file: no DbVersion table to probe.
	path := filepath.Join(t.TempDir(), "empty.sqlite")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	_, err := NewRepository(path).SchemaVersion()
	require.Error(t, err)

	var dsErr *DataSourceError
	assert.True(t, errors.As(err, &dsErr))
}

func TestRepository_Books(t *testing.T) {
	path, db := createDeviceDB(t, 100)
	seedTwoBooks(t, db)

	books, err := NewRepository(path).Books()
	require.NoError(t, err)
	require.Len(t, books, 2)

	assert.Equal(t, "Alpha Book", books[0].Title, "books are ordered title-ascending")
	assert.Equal(t, "vol-alpha", books[0].VolumeID)
	assert.Equal(t, "Anna Author", books[0].Author)
	assert.Equal(t, 3, books[0].ItemCount)

	assert.Equal(t, "Beta Book", books[1].Title)
	assert.Equal(t, 1, books[1].ItemCount)
}

func TestRepository_Items_ReadingOrder(t *testing.T) {
	path, db := createDeviceDB(t, 100)
	seedTwoBooks(t, db)

	rows, err := NewRepository(path).Items(100)
	require.NoError(t, err)
	require.Len(t, rows, 4)

	// Chapter progress ascending, then creation date ascending.
	assert.Equal(t, "b1", rows[0].BookmarkID)
	assert.Equal(t, "b2", rows[1].BookmarkID)
	assert.Equal(t, "b4", rows[2].BookmarkID)
	assert.Equal(t, "b3", rows[3].BookmarkID)

	assert.Equal(t, "a quoted passage", rows[0].Text)
	assert.Equal(t, "my note", rows[1].Annotation)
	assert.Equal(t, "Ch1", rows[0].Chapter, "chapter title comes from the joined content row")
	assert.Equal(t, "Alpha Book", rows[0].BookTitle)
	assert.InDelta(t, 0.1, rows[0].ChapterProgress, 1e-9)
}

func TestRepository_Items_NullColumnsMapToEmptyStrings(t *testing.T) {
	path, db := createDeviceDB(t, 100)
	addContent(t, db, "vol-a", "", "A", "A", "")
	addContent(t, db, "vol-a!1", "vol-a", "A", "Ch1", "")
	_, err := db.Exec(
		`INSERT INTO Bookmark (BookmarkID, VolumeID, ContentID, Text, Annotation, DateCreated, DateModified, ChapterProgress)
		 VALUES ('b1', 'vol-a', 'vol-a!1', NULL, NULL, NULL, NULL, NULL)`)
	require.NoError(t, err)

	rows, err := NewRepository(path).Items(100)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, "", rows[0].Text)
	assert.Equal(t, "", rows[0].Annotation)
	assert.Equal(t, "", rows[0].DateCreated)
	assert.Equal(t, float64(0), rows[0].ChapterProgress)
}
