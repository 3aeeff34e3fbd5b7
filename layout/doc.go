// Package layout fits book text to the page: it measures glyphs, wraps text
// to the pixel width of a book line and packs lines into pages.
//
// # Metrics
//
// The [Metrics] interface reports glyph advances. [MinecraftMetrics] is the
// proportional book font; [FaceMetrics] adapts any golang.org/x/image font
// face, for example:
//
//	m, err := layout.GoRegular(8)
//	splitter := layout.LineSplitter{Metrics: m, MaxWidth: 116}
//
// Formatting codes (a § followed by one code rune) take no space, and bold
// text (§l up to §r) is one pixel wider per glyph.
//
// # Line Splitting
//
// [LineSplitter.Split] wraps text at spaces so that no line is wider than
// MaxWidth pixels. Explicit newlines always break.
//
// # Pagination
//
// [Paginator.Paginate] wraps text and packs the lines into pages holding at
// most MaxLines lines and MaxChars characters, returning at most MaxPages
// pages:
//
//	pages := layout.NewPaginator().Paginate(text)
//
// # Truncation
//
// [Truncate] shortens titles to a fixed number of characters with an
// ellipsis marker.
package layout
