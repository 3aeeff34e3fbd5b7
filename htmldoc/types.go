package htmldoc

// blockKind identifies what a parsed block contributes to the book.
type blockKind int

const (
	blockParagraph blockKind = iota
	blockPageBreak
)

// block is one unit of body content in document order.
type block struct {
	kind blockKind
	text string
}

// NavigationExclusionMode controls how navigation, headers, and footers are filtered.
type NavigationExclusionMode int

const (
	// NavigationExclusionNone includes all content without filtering.
	NavigationExclusionNone NavigationExclusionMode = iota

	// NavigationExclusionExplicit skips only explicit semantic HTML5 elements:
	// <nav>, <aside>, and ARIA roles (role="navigation", role="complementary").
	// <header> and <footer> are only skipped when they are direct children of <body>
	// or a single top-level wrapper element.
	NavigationExclusionExplicit

	// NavigationExclusionStandard (default) also skips elements whose class or
	// id looks like navigation or boilerplate, such as "navbar", "menu",
	// "footer" or "sidebar".
	NavigationExclusionStandard
)

// Options controls how a page is read.
type Options struct {
	Navigation NavigationExclusionMode
}

// DefaultOptions returns the options used by Open and OpenReader.
func DefaultOptions() Options {
	return Options{Navigation: NavigationExclusionStandard}
}
