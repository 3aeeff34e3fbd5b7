// Package htmldoc reads HTML pages as book text.
//
// Block elements become paragraphs, <br> becomes a line break and <hr>
// starts a new page. Scripts, styles and (by default) navigation are
// skipped. The <title> and the author meta tag supply the book's title and
// author.
package htmldoc

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// ErrParse is returned when the HTML cannot be read.
var ErrParse = errors.New("htmldoc: parse failed")

// Reader provides access to HTML document content.
type Reader struct {
	title    string
	metadata map[string]string
	blocks   []block
}

// Open opens an HTML file for reading.
func Open(filename string) (*Reader, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	return OpenReader(f)
}

// OpenReader parses HTML from an io.Reader with the default options.
func OpenReader(r io.Reader) (*Reader, error) {
	return OpenReaderWithOptions(r, DefaultOptions())
}

// OpenReaderWithOptions parses HTML from an io.Reader.
func OpenReaderWithOptions(r io.Reader, opts Options) (*Reader, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	reader := &Reader{metadata: make(map[string]string)}
	reader.extractHead(doc)
	reader.extractBody(doc, opts)
	return reader, nil
}

// Title returns the contents of the <title> element.
func (r *Reader) Title() string {
	return r.title
}

// Author returns the author meta tag.
func (r *Reader) Author() string {
	return r.metadata["author"]
}

// Meta returns the content of the named meta tag.
func (r *Reader) Meta(name string) string {
	return r.metadata[strings.ToLower(name)]
}

// Sections returns the paragraphs of the body grouped by the horizontal rules
// separating them. Sections without paragraphs are omitted.
func (r *Reader) Sections() [][]string {
	var (
		sections [][]string
		current  []string
	)
	for _, b := range r.blocks {
		switch b.kind {
		case blockPageBreak:
			if len(current) > 0 {
				sections = append(sections, current)
				current = nil
			}
		default:
			current = append(current, b.text)
		}
	}
	if len(current) > 0 {
		sections = append(sections, current)
	}
	return sections
}

// Text returns every paragraph separated by a blank line.
func (r *Reader) Text() string {
	var parts []string
	for _, s := range r.Sections() {
		parts = append(parts, s...)
	}
	return strings.Join(parts, "\n\n")
}

// extractHead extracts title and meta tags from the head element.
func (r *Reader) extractHead(n *html.Node) {
	if n.Type == html.ElementNode && n.Data == "head" {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			switch c.Data {
			case "title":
				r.title = inlineText([]*html.Node{c}, nil)
			case "meta":
				name, content := "", ""
				for _, attr := range c.Attr {
					switch attr.Key {
					case "name", "property":
						name = strings.ToLower(attr.Val)
					case "content":
						content = strings.TrimSpace(attr.Val)
					}
				}
				if name != "" && content != "" {
					r.metadata[name] = content
				}
			}
		}
		return
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		r.extractHead(c)
	}
}

// parseContext tracks the current parsing state.
type parseContext struct {
	checker *exclusionChecker
	lists   []listState
}

type listState struct {
	ordered bool
	next    int
}

// extractBody extracts content from the body element.
func (r *Reader) extractBody(n *html.Node, opts Options) {
	body := findElement(n, "body")
	if body == nil {
		body = n
	}
	ctx := &parseContext{checker: newExclusionChecker(opts.Navigation, body)}
	r.walkContainer(body, ctx)
}

// walkContainer emits the children of n. Runs of inline content between
// block children form their own paragraphs.
func (r *Reader) walkContainer(n *html.Node, ctx *parseContext) {
	var run []*html.Node
	flush := func() {
		if text := inlineText(run, ctx.checker); text != "" {
			r.blocks = append(r.blocks, block{kind: blockParagraph, text: text})
		}
		run = nil
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && isBlockElement(c.Data) {
			flush()
			r.traverseNode(c, ctx)
			continue
		}
		run = append(run, c)
	}
	flush()
}

// traverseNode processes a block element.
func (r *Reader) traverseNode(n *html.Node, ctx *parseContext) {
	if shouldSkipElement(n.Data) || ctx.checker.shouldExclude(n) {
		return
	}

	switch n.Data {
	case "hr":
		r.blocks = append(r.blocks, block{kind: blockPageBreak})

	case "pre":
		if text := strings.Trim(rawText(n), "\r\n"); text != "" {
			r.blocks = append(r.blocks, block{kind: blockParagraph, text: text})
		}

	case "ul", "ol":
		ctx.lists = append(ctx.lists, listState{ordered: n.Data == "ol", next: 1})
		r.walkContainer(n, ctx)
		ctx.lists = ctx.lists[:len(ctx.lists)-1]

	case "li":
		marker, depth := "- ", 0
		if len(ctx.lists) > 0 {
			top := &ctx.lists[len(ctx.lists)-1]
			if top.ordered {
				marker = strconv.Itoa(top.next) + ". "
				top.next++
			}
			depth = len(ctx.lists) - 1
		}
		mark := len(r.blocks)
		r.walkContainer(n, ctx)
		if mark < len(r.blocks) && r.blocks[mark].kind == blockParagraph {
			r.blocks[mark].text = strings.Repeat("  ", depth) + marker + r.blocks[mark].text
		}

	case "blockquote":
		mark := len(r.blocks)
		r.walkContainer(n, ctx)
		for i := mark; i < len(r.blocks); i++ {
			if r.blocks[i].kind == blockParagraph {
				r.blocks[i].text = indent(r.blocks[i].text, "  ")
			}
		}

	case "tr":
		var cells []string
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && (c.Data == "td" || c.Data == "th") {
				if text := inlineText([]*html.Node{c}, ctx.checker); text != "" {
					cells = append(cells, text)
				}
			}
		}
		if len(cells) > 0 {
			r.blocks = append(r.blocks, block{kind: blockParagraph, text: strings.Join(cells, " | ")})
		}

	default:
		r.walkContainer(n, ctx)
	}
}

// inlineText renders nodes as text. Source whitespace collapses to single
// spaces, <br> produces a newline and each line is trimmed.
func inlineText(nodes []*html.Node, checker *exclusionChecker) string {
	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			b.WriteString(strings.Map(sourceSpace, n.Data))
			return
		case html.ElementNode:
			if shouldSkipElement(n.Data) || (checker != nil && checker.shouldExclude(n)) {
				return
			}
			if n.Data == "br" {
				b.WriteString("\n")
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		// Cells and block children of an inline run still need separating.
		if n.Type == html.ElementNode && isBlockElement(n.Data) {
			b.WriteString(" ")
		}
	}
	for _, n := range nodes {
		walk(n)
	}

	lines := strings.Split(b.String(), "\n")
	for i, line := range lines {
		lines[i] = strings.Join(strings.Fields(line), " ")
	}
	return strings.Trim(strings.Join(lines, "\n"), "\n")
}

// sourceSpace maps layout whitespace in source text to a plain space.
func sourceSpace(r rune) rune {
	switch r {
	case '\n', '\r', '\t', '\f':
		return ' '
	}
	return r
}

// rawText concatenates text nodes verbatim, as inside <pre>.
func rawText(n *html.Node) string {
	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch {
		case n.Type == html.TextNode:
			b.WriteString(n.Data)
		case n.Type == html.ElementNode && n.Data == "br":
			b.WriteString("\n")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func indent(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}

// shouldSkipElement returns true if the element should be skipped during content extraction.
func shouldSkipElement(tagName string) bool {
	switch tagName {
	case "script", "style", "noscript", "template", "svg", "math", "iframe", "object", "embed", "head":
		return true
	}
	return false
}

// isBlockElement reports whether tagName starts a new paragraph.
func isBlockElement(tagName string) bool {
	switch tagName {
	case "address", "article", "aside", "blockquote", "details", "dialog", "dd", "div", "dl", "dt",
		"fieldset", "figcaption", "figure", "footer", "form", "h1", "h2", "h3", "h4", "h5", "h6",
		"header", "hgroup", "hr", "li", "main", "nav", "ol", "p", "pre", "section", "table",
		"thead", "tbody", "tfoot", "tr", "caption", "ul":
		return true
	}
	return shouldSkipElement(tagName)
}

// findElement finds the first element with the given tag name.
func findElement(n *html.Node, tagName string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tagName {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if result := findElement(c, tagName); result != nil {
			return result
		}
	}
	return nil
}
