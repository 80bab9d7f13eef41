package util

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// FirstTextMentioning returns the first text node under sel, in document
// order, that mentions one of the cities. The node text is trimmed but
// otherwise kept as written.
func FirstTextMentioning(sel *goquery.Selection, cities []string) string {
	for _, n := range sel.Nodes {
		if t := firstText(n, cities); t != "" {
			return t
		}
	}
	return ""
}

func firstText(n *html.Node, cities []string) string {
	if n.Type == html.TextNode {
		if ContainsAny(n.Data, cities) {
			return strings.TrimSpace(n.Data)
		}
		return ""
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if t := firstText(c, cities); t != "" {
			return t
		}
	}
	return ""
}
