package kobo

import (
	"database/sql"
	"os"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// BookRow is one row of the books query, mapped to named fields at the
// repository boundary.
type BookRow struct {
	VolumeID  string
	Title     string
	Author    string
	ItemCount int
}

// ItemRow is one row of the items query, mapped to named fields at the
// repository boundary. Both query variants map into this same shape; the
// variant difference stays confined to the query text.
type ItemRow struct {
	VolumeID        string
	Text            string
	Annotation      string
	DateCreated     string
	DateModified    string
	ChapterProgress float64
	BookTitle       string
	Chapter         string
	Author          string
	BookmarkID      string
}

// Repository executes read-only queries against a KoboReader.sqlite file.
// The connection is opened, used, and closed within each call: this is a
// single-shot short-lived process, not a pooled service.
type Repository struct {
	path string
}

// NewRepository creates a repository for the database file at the given path.
func NewRepository(path string) *Repository {
	return &Repository{path: path}
}

// Path returns the device database path.
func (r *Repository) Path() string { return r.path }

func (r *Repository) open() (*sql.DB, error) {
	if _, err := os.Stat(r.path); err != nil {
		return nil, &DataSourceError{Path: r.path, Err: err}
	}
	db, err := sql.Open("sqlite3", "file:"+r.path+"?mode=ro")
	if err != nil {
		return nil, &DataSourceError{Path: r.path, Err: err}
	}
	return db, nil
}

// SchemaVersion probes the database's schema generation. It is read once
// per run, before any item query, and selects the item query variant.
func (r *Repository) SchemaVersion() (int, error) {
	db, err := r.open()
	if err != nil {
		return 0, err
	}
	defer db.Close()

	var version int
	if err := db.QueryRow(versionQuery).Scan(&version); err != nil {
		return 0, &DataSourceError{Path: r.path, Err: err}
	}
	return version, nil
}

// Books returns one row per volume carrying bookmark rows, title-ascending.
func (r *Repository) Books() ([]BookRow, error) {
	db, err := r.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.Query(booksQuery)
	if err != nil {
		return nil, &DataSourceError{Path: r.path, Err: err}
	}
	defer rows.Close()

	var books []BookRow
	for rows.Next() {
		var row BookRow
		var title, author sql.NullString
		if err := rows.Scan(&row.VolumeID, &title, &author, &row.ItemCount); err != nil {
			return nil, &DataSourceError{Path: r.path, Err: err}
		}
		row.Title = title.String
		row.Author = author.String
		books = append(books, row)
	}
	if err := rows.Err(); err != nil {
		return nil, &DataSourceError{Path: r.path, Err: err}
	}
	return books, nil
}

// Items runs the version-appropriate items query and returns the raw rows
// in reading order (chapter progress, then creation date).
func (r *Repository) Items(version int) ([]ItemRow, error) {
	db, err := r.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.Query(itemsQueryForVersion(version))
	if err != nil {
		return nil, &DataSourceError{Path: r.path, Err: err}
	}
	defer rows.Close()

	var items []ItemRow
	for rows.Next() {
		var row ItemRow
		var text, annotation, created, modified sql.NullString
		var bookTitle, chapter, author, bookmarkID sql.NullString
		var progress sql.NullFloat64
		err := rows.Scan(
			&row.VolumeID,
			&text,
			&annotation,
			&created,
			&modified,
			&progress,
			&bookTitle,
			&chapter,
			&author,
			&bookmarkID,
		)
		if err != nil {
			return nil, &DataSourceError{Path: r.path, Err: err}
		}
		row.Text = text.String
		row.Annotation = annotation.String
		row.DateCreated = created.String
		row.DateModified = modified.String
		row.ChapterProgress = progress.Float64
		row.BookTitle = bookTitle.String
		row.Chapter = chapter.String
		row.Author = author.String
		row.BookmarkID = bookmarkID.String
		items = append(items, row)
	}
	if err := rows.Err(); err != nil {
		return nil, &DataSourceError{Path: r.path, Err: err}
	}
	return items, nil
}
