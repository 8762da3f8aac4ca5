package kobo

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
)

var deviceSchema = []string{
	`CREATE TABLE DbVersion (version INTEGER);`,
	`CREATE TABLE content (
		ContentID TEXT,
		BookID TEXT,
		BookTitle TEXT,
		Title TEXT,
		Attribution TEXT
	);`,
	`CREATE TABLE Bookmark (
		BookmarkID TEXT,
		VolumeID TEXT,
		ContentID TEXT,
		Text TEXT,
		Annotation TEXT,
		DateCreated TEXT,
		DateModified TEXT,
		ChapterProgress REAL
	);`,
}

// createDeviceDB builds an empty device database reporting the given
// schema version and returns its path together with a writable handle for
// seeding fixture rows.
func createDeviceDB(t *testing.T, version int) (string, *sql.DB) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "KoboReader.sqlite")
	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	for _, stmt := range deviceSchema {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}
	_, err = db.Exec(`INSERT INTO DbVersion (version) VALUES (?)`, version)
	require.NoError(t, err)

	return path, db
}

func addContent(t *testing.T, db *sql.DB, contentID, bookID, bookTitle, title, attribution string) {
	t.Helper()
	_, err := db.Exec(
		`INSERT INTO content (ContentID, BookID, BookTitle, Title, Attribution) VALUES (?, ?, ?, ?, ?)`,
		contentID, bookID, bookTitle, title, attribution)
	require.NoError(t, err)
}

func addBookmark(t *testing.T, db *sql.DB, bookmarkID, volumeID, contentID, text, annotation, created string, progress float64) {
	t.Helper()
	_, err := db.Exec(
		`INSERT INTO Bookmark (BookmarkID, VolumeID, ContentID, Text, Annotation, DateCreated, DateModified, ChapterProgress)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		bookmarkID, volumeID, contentID, text, annotation, created, created, progress)
	require.NoError(t, err)
}

// seedTwoBooks populates the standard fixture: two books, four bookmark
// rows, all joined through ContentID (pre-175 layout).
//
// Reading order of the items (chapter progress, then date):
//  1. vol-alpha "a quoted passage"          highlight   Ch1
//  2. vol-alpha "another passage" + note    annotation  Ch1
//  3. vol-beta  "beta passage"              highlight   Intro
//  4. vol-alpha bare bookmark               bookmark    Ch2
func seedTwoBooks(t *testing.T, db *sql.DB) {
	t.Helper()

	addContent(t, db, "vol-alpha", "", "Alpha Book", "Alpha Book", "Anna Author")
	addContent(t, db, "vol-alpha!1", "vol-alpha", "Alpha Book", "Ch1", "Anna Author")
	addContent(t, db, "vol-alpha!2", "vol-alpha", "Alpha Book", "Ch2", "Anna Author")
	addContent(t, db, "vol-beta", "", "Beta Book", "Beta Book", "Bob Writer")
	addContent(t, db, "vol-beta!1", "vol-beta", "Beta Book", "Intro", "Bob Writer")

	addBookmark(t, db, "b1", "vol-alpha", "vol-alpha!1", "a quoted passage", "", "2014-12-19T19:54:11.000", 0.1)
	addBookmark(t, db, "b2", "vol-alpha", "vol-alpha!1", "another passage", "my note", "2014-12-19T20:02:45.000", 0.2)
	addBookmark(t, db, "b4", "vol-beta", "vol-beta!1", "beta passage", "", "2015-01-01T08:00:00.000", 0.3)
	addBookmark(t, db, "b3", "vol-alpha", "vol-alpha!2", "", "", "2014-12-20T10:00:00.000", 0.5)
}
