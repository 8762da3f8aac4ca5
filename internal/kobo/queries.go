package kobo

// bookIDJoinVersion is the schema generation in which content.ContentID
// stopped matching Bookmark.VolumeID, so items have to be joined to their
// book through content.BookID instead.
const bookIDJoinVersion = 175

// versionQuery reads the single-row schema version table.
const versionQuery = `SELECT version FROM DbVersion;`

// booksQuery lists every volume carrying at least one bookmark row,
// title-ascending. The catalog's 1-based book ids follow this order.
const booksQuery = `
SELECT
    Bookmark.VolumeID,
    content.Title,
    content.Attribution,
    COUNT(Bookmark.BookmarkID) AS NumItems
FROM Bookmark
INNER JOIN content ON Bookmark.VolumeID = content.ContentID
GROUP BY Bookmark.VolumeID
ORDER BY content.Title ASC;`

// Both item query variants return the same column set and the same order:
// chapter progress ascending, then creation date ascending, so that the
// Markdown chapter scan sees items in reading order. The GROUP BY on
// DateCreated collapses duplicate joins against the content table; this is
// a deliberate dedup-by-timestamp policy and can coalesce two distinct
// same-instant edits.

// itemsQueryByContentID joins each bookmark row to the chapter content row
// via ContentID. Valid for every schema generation except bookIDJoinVersion.
const itemsQueryByContentID = `
SELECT
    Bookmark.VolumeID,
    Bookmark.Text,
    Bookmark.Annotation,
    Bookmark.DateCreated,
    Bookmark.DateModified,
    Bookmark.ChapterProgress,
    content.BookTitle,
    content.Title,
    content.Attribution,
    Bookmark.BookmarkID
FROM Bookmark
INNER JOIN content ON Bookmark.ContentID = content.ContentID
GROUP BY Bookmark.DateCreated
ORDER BY Bookmark.ChapterProgress ASC, Bookmark.DateCreated ASC;`

// itemsQueryByBookID is the bookIDJoinVersion variant: the chapter rows are
// found through content.BookID, which multiplies each bookmark row by the
// number of chapters and relies on the DateCreated grouping to collapse
// the duplicates again.
const itemsQueryByBookID = `
SELECT
    Bookmark.VolumeID,
    Bookmark.Text,
    Bookmark.Annotation,
    Bookmark.DateCreated,
    Bookmark.DateModified,
    Bookmark.ChapterProgress,
    content.BookTitle,
    content.Title,
    content.Attribution,
    Bookmark.BookmarkID
FROM Bookmark
INNER JOIN content ON Bookmark.VolumeID = content.BookID
GROUP BY Bookmark.DateCreated
ORDER BY Bookmark.ChapterProgress ASC, Bookmark.DateCreated ASC;`

// itemsQueryForVersion selects the query variant for the given schema
// version.
func itemsQueryForVersion(version int) string {
	if version == bookIDJoinVersion {
		return itemsQueryByBookID
	}
	return itemsQueryByContentID
}
