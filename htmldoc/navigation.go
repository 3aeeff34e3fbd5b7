package htmldoc

import (
	"regexp"

	"golang.org/x/net/html"
)

// boilerplatePattern matches class and id values of navigation and page
// furniture.
var boilerplatePattern = regexp.MustCompile(
	`(?i)(^|[^a-z])(nav|navbar|navigation|menu|topnav|sidenav|breadcrumbs?|` +
		`site-header|page-header|masthead|banner|` +
		`footer|site-footer|page-footer|colophon|` +
		`sidebar|widget-area|widget)([^a-z]|$)`)

// exclusionChecker decides which elements are left out of the book.
type exclusionChecker struct {
	mode            NavigationExclusionMode
	bodyNode        *html.Node
	topLevelWrapper *html.Node // single wrapper div/main if present
}

func newExclusionChecker(mode NavigationExclusionMode, body *html.Node) *exclusionChecker {
	return &exclusionChecker{
		mode:            mode,
		bodyNode:        body,
		topLevelWrapper: detectTopLevelWrapper(body),
	}
}

// detectTopLevelWrapper finds the <div id="wrapper"> of a
// <body><div id="wrapper">...</div></body> layout.
func detectTopLevelWrapper(body *html.Node) *html.Node {
	var wrapper *html.Node
	for c := body.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.Data {
		case "div", "main":
			if wrapper != nil {
				return nil
			}
			wrapper = c
		case "script", "style", "noscript", "template":
		default:
			return nil
		}
	}
	return wrapper
}

func (ec *exclusionChecker) shouldExclude(n *html.Node) bool {
	if n.Type != html.ElementNode || ec.mode == NavigationExclusionNone {
		return false
	}

	switch n.Data {
	case "nav", "aside":
		return true
	case "header", "footer":
		if ec.isTopLevel(n) {
			return true
		}
	}
	switch getAttr(n, "role") {
	case "navigation", "complementary":
		return true
	case "banner", "contentinfo":
		if ec.isTopLevel(n) {
			return true
		}
	}

	if ec.mode >= NavigationExclusionStandard {
		for _, key := range []string{"class", "id"} {
			if v := getAttr(n, key); v != "" && boilerplatePattern.MatchString(v) {
				return true
			}
		}
	}
	return false
}

// isTopLevel reports whether n is a direct child of body or of the single
// top-level wrapper.
func (ec *exclusionChecker) isTopLevel(n *html.Node) bool {
	p := n.Parent
	return p != nil && (p == ec.bodyNode || (ec.topLevelWrapper != nil && p == ec.topLevelWrapper))
}

// getAttr returns the value of an attribute on a node, or empty string if not found.
func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}
