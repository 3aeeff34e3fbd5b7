package ghostwriter

import (
	"github.com/tsawler/ghostwriter/ghb"
	"github.com/tsawler/ghostwriter/htmldoc"
	"github.com/tsawler/ghostwriter/layout"
)

// LoadOptions holds configuration for loading a book.
type LoadOptions struct {
	// Total page cap across the whole book; <= 0 means no limit
	maxPages int

	// Line wrapping
	metrics   layout.Metrics
	lineWidth int

	// Per-page limits
	maxChars int
	maxLines int

	// Detect the format from the contents when the extension is unknown
	sniff bool

	navigation htmldoc.NavigationExclusionMode
}

// defaultOptions returns the default load options.
func defaultOptions() LoadOptions {
	return LoadOptions{
		maxPages:   layout.DefaultMaxPages,
		metrics:    layout.MinecraftMetrics{},
		lineWidth:  layout.DefaultLineWidth,
		maxChars:   layout.DefaultMaxChars,
		maxLines:   layout.DefaultMaxLines,
		sniff:      false,
		navigation: htmldoc.NavigationExclusionStandard,
	}
}

// clone creates a copy of LoadOptions. Metrics implementations are values
// or shared read-only faces, so a shallow copy suffices.
func (o LoadOptions) clone() LoadOptions {
	return o
}

func (o LoadOptions) splitter() layout.LineSplitter {
	return layout.LineSplitter{
		Metrics:  o.metrics,
		MaxWidth: o.lineWidth,
	}
}

// paginator builds the paginator the decoders fit text with.
func (o LoadOptions) paginator() layout.Paginator {
	return layout.Paginator{
		Splitter: o.splitter(),
		MaxChars: o.maxChars,
		MaxLines: o.maxLines,
		MaxPages: o.maxPages,
	}
}

// encoder builds a GHB encoder that wraps lines the way loading does.
func (o LoadOptions) encoder() *ghb.Encoder {
	return &ghb.Encoder{Splitter: o.splitter()}
}
