package parse

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Document parses raw HTML text into a traversable goquery document.
// The underlying parser is best-effort: malformed markup yields a partial
// tree rather than an error, which is what the storefront pages require.
func Document(text string) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(text))
}

// FindByExactText returns the first element that directly contains a text
// node whose trimmed content equals text. Returns nil when no such element
// exists, so callers can distinguish "landmark missing" from an empty match.
func FindByExactText(doc *goquery.Document, text string) *goquery.Selection {
	var found *goquery.Selection
	doc.Find("*").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		for _, n := range s.Contents().Nodes {
			if n.Type == html.TextNode && strings.TrimSpace(n.Data) == text {
				found = s
				return false
			}
		}
		return true
	})
	return found
}

// TextLines collects the immediate child text nodes of s, trimmed, skipping
// embedded markup nodes and whitespace-only runs. Source order is preserved.
func TextLines(s *goquery.Selection) []string {
	if s == nil {
		return nil
	}
	var lines []string
	for _, n := range s.Contents().Nodes {
		if n.Type != html.TextNode {
			continue
		}
		if line := strings.TrimSpace(n.Data); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
