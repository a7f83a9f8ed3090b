package catalog

import (
	"context"
	"fmt"
	"net/url"

	"github.com/sirupsen/logrus"

	"github.com/tuonglequoc/crawl-product-data/pkg/fetch"
	"github.com/tuonglequoc/crawl-product-data/pkg/utils"
)

const (
	// searchPath is the storefront's listing endpoint, relative to the base URL.
	searchPath = "/store/api/search/next"
	// searchQuery is the value of the endpoint's single "query" parameter.
	searchQuery = "po[]=%s&o=%d&limit=%d&sort=id"
)

// Paginator walks one category's listing pages at increasing offsets.
// Pages are fetched lazily, one per Next call. The sequence is forward-only
// and not restartable; a fresh Paginator starts back at offset 0.
type Paginator struct {
	fetcher  *fetch.Fetcher
	baseURL  string
	category string
	limit    int
	offset   int
	done     bool
	log      *logrus.Entry
}

// NewPaginator creates a Paginator for the named category.
func NewPaginator(fetcher *fetch.Fetcher, baseURL, category string, limit int, log *logrus.Logger) *Paginator {
	return &Paginator{
		fetcher:  fetcher,
		baseURL:  baseURL,
		category: category,
		limit:    limit,
		log:      log.WithField("category", category),
	}
}

// Next fetches and decodes the listing page at the current offset, advancing
// the offset by the configured limit on success. A decode failure at any
// offset is the normal end-of-listing signal: the paginator flips into its
// terminal state instead of surfacing an error. A fetch failure also ends
// the sequence, with a warning, since offset N+1 is meaningless without
// having decoded offset N.
func (p *Paginator) Next(ctx context.Context) ([]Item, bool) {
	if p.done {
		return nil, false
	}

	query := url.Values{}
	query.Set("query", fmt.Sprintf(searchQuery, p.category, p.offset, p.limit))

	body, err := p.fetcher.Get(ctx, p.baseURL+searchPath, query)
	if err != nil {
		p.log.WithFields(logrus.Fields{
			"offset":         p.offset,
			"error_category": utils.CategorizeError(err),
		}).Warnf("Listing page fetch failed, ending category: %v", err)
		p.done = true
		return nil, false
	}

	items, err := ImpressionsFromEnvelope(body)
	if err != nil {
		p.log.WithField("offset", p.offset).Debugf("End of listing: %v", err)
		p.done = true
		return nil, false
	}

	p.offset += p.limit
	return items, true
}
