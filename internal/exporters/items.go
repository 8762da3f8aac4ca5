package exporters

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mrlokans/kobo-export/internal/entities"
	"github.com/mrlokans/kobo-export/internal/kobo"
)

// Options tunes the renderers that need more than the item sequence.
type Options struct {
	// ChapterHeadings inserts "### <chapter>" headings into the Markdown
	// output whenever an item's chapter differs from the previous item's.
	ChapterHeadings bool
	// VolumeID, when set, renders the Markdown output for that single book
	// without the per-book loop.
	VolumeID string
}

// RenderItems renders the ordered item sequence in the given format. Every
// renderer is a pure function: extraction state is never mutated.
func RenderItems(format Format, items []entities.Item, catalog *kobo.Catalog, opts Options) (string, error) {
	switch format {
	case FormatClippings:
		return RenderClippings(items), nil
	case FormatJSON:
		return RenderJSON(items)
	case FormatCSV:
		return RenderCSV(items)
	case FormatMarkdown:
		return RenderMarkdown(items, catalog, opts), nil
	case FormatRaw:
		return RenderRaw(items), nil
	default:
		return RenderText(items), nil
	}
}

const (
	textSeparator       = "\n=== === ===\n"
	annotationSeparator = "\n### ### ###\n"
	clippingsSeparator  = "=========="
)

// RenderText renders each item as a labeled human-readable block. Bookmark
// items have no text or annotation and contribute an empty block.
func RenderText(items []entities.Item) string {
	blocks := make([]string, 0, len(items))
	for _, item := range items {
		blocks = append(blocks, textBlock(item)+"\n")
	}
	return strings.Join(blocks, "\n")
}

func textBlock(item entities.Item) string {
	if item.Kind == entities.KindBookmark {
		return ""
	}
	acc := []string{
		fmt.Sprintf("Type:           %s", item.Kind),
		fmt.Sprintf("Title:          %s", item.BookTitle),
		fmt.Sprintf("Author:         %s", item.Author),
		fmt.Sprintf("Chapter:        %s", item.Chapter),
		fmt.Sprintf("Date created:   %s", item.FormattedDateCreated()),
	}
	if item.Kind == entities.KindAnnotation {
		acc = append(acc, fmt.Sprintf("Annotation:     %s%s%s",
			annotationSeparator, item.Annotation, annotationSeparator))
	}
	acc = append(acc, fmt.Sprintf("Reference text: %s%s%s",
		textSeparator, item.Text, textSeparator))
	return strings.Join(acc, "\n")
}

// RenderCSV renders one row per item:
// (kind, title, author, chapter, created, modified, annotation, text).
func RenderCSV(items []entities.Item) (string, error) {
	var buf strings.Builder
	w := csv.NewWriter(&buf)
	for _, item := range items {
		if err := w.Write(item.CSVRecord()); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderJSON renders the full item set as a pretty-printed array of
// objects with all public attributes.
func RenderJSON(items []entities.Item) (string, error) {
	out, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// RenderMarkdown renders items grouped by book: a heading block per book,
// then its items as list entries. With opts.VolumeID set only that book is
// rendered, without the per-book loop.
func RenderMarkdown(items []entities.Item, catalog *kobo.Catalog, opts Options) string {
	var b strings.Builder
	if opts.VolumeID != "" {
		book, ok := catalog.Books[opts.VolumeID]
		if !ok {
			return ""
		}
		writeBookHeading(&b, book)
		writeMarkdownItems(&b, items, opts.ChapterHeadings)
		return b.String()
	}
	for _, indexed := range catalog.Ordered {
		bookItems := itemsForVolume(items, indexed.VolumeID)
		if len(bookItems) == 0 {
			continue
		}
		writeBookHeading(&b, indexed.Book)
		writeMarkdownItems(&b, bookItems, opts.ChapterHeadings)
	}
	return b.String()
}

func writeBookHeading(b *strings.Builder, book entities.Book) {
	fmt.Fprintf(b, "# %s\n\n", book.Title)
	fmt.Fprintf(b, "## by %s\n\n", book.Author)
	b.WriteString("---\n")
}

// writeMarkdownItems is the single stateful scan in the renderer set: one
// look-back slot comparing each item's chapter to the previous item's, so a
// heading appears only before the first item of each new chapter.
func writeMarkdownItems(b *strings.Builder, items []entities.Item, chapterHeadings bool) {
	prevChapter := ""
	for _, item := range items {
		if chapterHeadings && item.Chapter != prevChapter {
			fmt.Fprintf(b, "\n### %s\n", item.Chapter)
		}
		prevChapter = item.Chapter
		fmt.Fprintf(b, "\n- %s\n", item.Text)
		if item.Annotation != "" {
			fmt.Fprintf(b, "  *%s*\n", item.Annotation)
		}
	}
	b.WriteString("\n")
}

func itemsForVolume(items []entities.Item, volumeID string) []entities.Item {
	kept := make([]entities.Item, 0, len(items))
	for _, item := range items {
		if item.VolumeID == volumeID {
			kept = append(kept, item)
		}
	}
	return kept
}

// RenderClippings renders the items in the Kindle "My Clippings.txt"
// stanza format. The device does not track pages or locations, so both are
// always the literal 1.
func RenderClippings(items []entities.Item) string {
	blocks := make([]string, 0, len(items))
	for _, item := range items {
		blocks = append(blocks, clippingsBlock(item))
	}
	return strings.Join(blocks, "\n")
}

func clippingsBlock(item entities.Item) string {
	date := item.FormattedDateCreated()
	acc := []string{fmt.Sprintf("%s (%s)", item.BookTitle, item.Author)}
	switch item.Kind {
	case entities.KindAnnotation:
		acc = append(acc,
			fmt.Sprintf("- Your Note on page 1 | location 1 | Added on %s", date),
			"",
			item.Annotation)
	case entities.KindHighlight:
		acc = append(acc,
			fmt.Sprintf("- Your Highlight on page 1 | location 1 | Added on %s", date),
			"",
			item.Text)
	default:
		acc = append(acc,
			fmt.Sprintf("- Your Bookmark on page 1 | location 1 | Added on %s", date),
			"")
	}
	acc = append(acc, clippingsSeparator)
	return strings.Join(acc, "\n")
}

// RenderRaw renders the bare reference text of each item, one per line,
// with a trailing blank line per item.
func RenderRaw(items []entities.Item) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, item.Text+"\n")
	}
	return strings.Join(lines, "\n")
}
