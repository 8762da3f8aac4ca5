package exporters

// Format identifies one of the output renderers.
type Format string

const (
	FormatText      Format = "text"
	FormatCSV       Format = "csv"
	FormatJSON      Format = "json"
	FormatMarkdown  Format = "markdown"
	FormatClippings Format = "clippings"
	FormatRaw       Format = "raw"
)

// FormatFlags mirrors the command-line format switches. More than one may
// be set; the flags are informative, not mutually exclusive.
type FormatFlags struct {
	Clippings bool
	JSON      bool
	CSV       bool
	Markdown  bool
	Raw       bool
}

// ResolveFormat picks the output format once, from the flag set, instead of
// encoding precedence in flag-check order. Precedence, highest first:
// clippings, JSON, CSV, Markdown, raw; plain text is the default.
func ResolveFormat(flags FormatFlags) Format {
	switch {
	case flags.Clippings:
		return FormatClippings
	case flags.JSON:
		return FormatJSON
	case flags.CSV:
		return FormatCSV
	case flags.Markdown:
		return FormatMarkdown
	case flags.Raw:
		return FormatRaw
	default:
		return FormatText
	}
}
