package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/mrlokans/kobo-export/internal/entities"
	"github.com/mrlokans/kobo-export/internal/exporters"
	"github.com/mrlokans/kobo-export/internal/kobo"
)

// ExportCommand extracts annotations, highlights, and bookmarks from a
// KoboReader.sqlite file and renders them in the selected format.
type ExportCommand struct {
	DatabasePath    string
	OutputPath      string
	CSV             bool
	JSON            bool
	Kindle          bool
	Markdown        bool
	Chapters        bool
	Raw             bool
	List            bool
	BookTitle       string
	BookID          string
	AnnotationsOnly bool
	HighlightsOnly  bool
	Info            bool
}

func NewExportCommand() *ExportCommand {
	return &ExportCommand{}
}

// ParseFlags parses command line flags
func (cmd *ExportCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)

	fs.StringVar(&cmd.DatabasePath, "db", "", "Path to the KoboReader.sqlite file (required)")
	fs.StringVar(&cmd.OutputPath, "output", "", "Write output to the given file instead of the standard output")
	fs.BoolVar(&cmd.CSV, "csv", false, "Output in CSV format instead of the human-readable format")
	fs.BoolVar(&cmd.JSON, "json", false, "Output in JSON format instead of the human-readable format")
	fs.BoolVar(&cmd.Kindle, "kindle", false, "Output in Kindle 'My Clippings.txt' format instead of the human-readable format")
	fs.BoolVar(&cmd.Markdown, "markdown", false, "Output in Markdown, grouped by book")
	fs.BoolVar(&cmd.Chapters, "chapters", false, "Insert chapter headings into the Markdown output")
	fs.BoolVar(&cmd.Raw, "raw", false, "Output the bare highlighted text instead of the human-readable format")
	fs.BoolVar(&cmd.List, "list", false, "List the books with annotations or highlights instead of the items")
	fs.StringVar(&cmd.BookTitle, "book", "", "Output items only from the book with the given title")
	fs.StringVar(&cmd.BookID, "bookid", "", "Output items only from the book with the given ID (see -list)")
	fs.BoolVar(&cmd.AnnotationsOnly, "annotations-only", false, "Output annotations only, excluding highlights")
	fs.BoolVar(&cmd.HighlightsOnly, "highlights-only", false, "Output highlights only, excluding annotations")
	fs.BoolVar(&cmd.Info, "info", false, "Print the number of books and items after the output")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s export -db <path> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Export annotations, highlights, and bookmarks from a Kobo device database.\n\n")
		fmt.Fprintf(os.Stderr, "The database is typically found on a mounted device at:\n")
		fmt.Fprintf(os.Stderr, "  /media/<user>/KOBOeReader/.kobo/KoboReader.sqlite\n\n")
		fmt.Fprintf(os.Stderr, "If several format flags are set, the precedence is:\n")
		fmt.Fprintf(os.Stderr, "  -kindle > -json > -csv > -markdown > -raw > human-readable\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s export -db KoboReader.sqlite\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s export -db KoboReader.sqlite -list\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s export -db KoboReader.sqlite -bookid 3 -markdown -chapters\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s export -db KoboReader.sqlite -highlights-only -csv -output highlights.csv\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.DatabasePath == "" {
		return fmt.Errorf("required flag -db not provided")
	}

	return nil
}

// Run executes the export command.
func (cmd *ExportCommand) Run() error {
	repo := kobo.NewRepository(cmd.DatabasePath)
	catalog, err := kobo.LoadCatalog(repo)
	if err != nil {
		return err
	}

	format := exporters.ResolveFormat(exporters.FormatFlags{
		Clippings: cmd.Kindle,
		JSON:      cmd.JSON,
		CSV:       cmd.CSV,
		Markdown:  cmd.Markdown,
		Raw:       cmd.Raw,
	})

	var payload string
	var items []entities.Item
	if cmd.List {
		payload, err = exporters.RenderBookList(format, catalog.Ordered)
	} else {
		items, err = kobo.ExtractItems(repo, catalog, kobo.Filters{
			BookID:          cmd.BookID,
			BookTitle:       cmd.BookTitle,
			HighlightsOnly:  cmd.HighlightsOnly,
			AnnotationsOnly: cmd.AnnotationsOnly,
		})
		if err != nil {
			return err
		}

		opts := exporters.Options{ChapterHeadings: cmd.Chapters}
		if opts.VolumeID, err = cmd.selectedVolumeID(catalog); err != nil {
			return err
		}
		payload, err = exporters.RenderItems(format, items, catalog, opts)
	}
	if err != nil {
		return err
	}

	if cmd.OutputPath != "" {
		if err := os.WriteFile(cmd.OutputPath, []byte(payload), 0644); err != nil {
			return &kobo.OutputWriteError{Path: cmd.OutputPath, Err: err}
		}
	} else {
		fmt.Println(payload)
	}

	if cmd.Info {
		fmt.Println()
		fmt.Printf("Books with annotations or highlights: %d\n", catalog.Len())
		if !cmd.List {
			fmt.Printf("Total annotations and/or highlights:  %d\n", len(items))
		}
	}

	return nil
}

// selectedVolumeID resolves the -book/-bookid selection to a volume id so
// the Markdown renderer can skip the per-book loop.
func (cmd *ExportCommand) selectedVolumeID(catalog *kobo.Catalog) (string, error) {
	if cmd.BookID != "" {
		return catalog.VolumeIDFromBookID(cmd.BookID)
	}
	if cmd.BookTitle != "" {
		if book, ok := catalog.BookByTitle(cmd.BookTitle); ok {
			return book.VolumeID, nil
		}
	}
	return "", nil
}
