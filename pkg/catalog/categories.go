package catalog

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/tuonglequoc/crawl-product-data/pkg/parse"
	"github.com/tuonglequoc/crawl-product-data/pkg/utils"
)

// categoryLabel is the literal heading of the category section on the storefront homepage.
const categoryLabel = "カテゴリでさがす"

// Category is one entry of the storefront's category menu.
type Category struct {
	Name string // Display name, also stored as the product's category label
	Path string // Relative href of the category landing page
}

// CategoryIterator walks the category menu entries one at a time, in source
// order. It is forward-only; re-enumerating requires re-parsing the homepage.
type CategoryIterator struct {
	entries *goquery.Selection
	idx     int
}

// Categories locates the category section on the parsed homepage and returns
// an iterator over its entries. A missing section label means the page layout
// changed and yields an error wrapping utils.ErrPageStructure, so callers can
// tell "no categories" apart from a broken parse.
func Categories(doc *goquery.Document) (*CategoryIterator, error) {
	label := parse.FindByExactText(doc, categoryLabel)
	if label == nil {
		return nil, fmt.Errorf("%w: category section label %q not found on homepage", utils.ErrPageStructure, categoryLabel)
	}
	return &CategoryIterator{entries: label.Next().Children()}, nil
}

// Next returns the next category entry. Menu children without an anchor
// element are skipped. The second return value is false once the menu is
// exhausted.
func (it *CategoryIterator) Next() (Category, bool) {
	for it.idx < it.entries.Length() {
		entry := it.entries.Eq(it.idx)
		it.idx++

		anchor := entry.Find("a").First()
		if anchor.Length() == 0 {
			continue
		}
		href, _ := anchor.Attr("href")
		return Category{
			Name: strings.TrimSpace(anchor.Text()),
			Path: href,
		}, true
	}
	return Category{}, false
}
