// Package ghb reads and writes GHB book markup.
//
// # Format
//
// A GHB file is plain text:
//
//	//Book saved in GHB format at 2014-05-28T101500Z
//	title:Kicking Over Sandcastles
//	author:HCF_Kids   /* comments may start anywhere */
//	This is the first page.##
//	This is going to be on a new line!
//	>>>>
//	This is the second page.
//
// Ordinary line breaks in the file carry no meaning. A linebreak token (##)
// ends a line inside a page and a pagebreak token (>>>>) ends a page.
// Whitespace immediately before either token is ignored. A backslash written
// directly before a token makes it literal (\## and \>>>>). Comments use //
// and /* */ and may span lines.
//
// The first title: and author: lines (matched case-insensitively) set the
// header; any later directive lines are ordinary text.
//
// # Decoding
//
// [Decoder.Decode] runs a fixed sequence of passes, each exported so it can
// be used and tested on its own: [ExtractHeader], [MarkEscapes],
// [StripComments], [TrimBeforeTokens], [CollapseNewlines],
// [SubstituteLinebreaks] and [SplitPages]. Escapes are marked before any
// other pass touches the body, so later passes cannot make or break one.
// The resulting page texts are fitted to book pages by a layout.Paginator;
// a chunk made only of linebreaks becomes a blank page.
//
// # Encoding
//
// [Encoder.Encode] writes a header and wraps every page to the pixel width of
// a book line, ending each wrapped line with ## and separating pages with
// >>>>. Literal tokens in the text are escaped, and a line that ends in a
// backslash gets a space before its ## so the break is not escaped.
package ghb
