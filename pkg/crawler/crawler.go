package crawler

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/semaphore"

	"github.com/tuonglequoc/crawl-product-data/pkg/catalog"
	"github.com/tuonglequoc/crawl-product-data/pkg/config"
	"github.com/tuonglequoc/crawl-product-data/pkg/extract"
	"github.com/tuonglequoc/crawl-product-data/pkg/fetch"
	"github.com/tuonglequoc/crawl-product-data/pkg/parse"
	"github.com/tuonglequoc/crawl-product-data/pkg/storage"
	"github.com/tuonglequoc/crawl-product-data/pkg/utils"
)

// homePath is the storefront homepage, relative to the base URL.
const homePath = "/store/online"

// Stats accumulates per-run counters across categories.
type Stats struct {
	Categories int
	Pages      int
	Inserted   int
	Duplicates int
	Skipped    int
}

func (s *Stats) add(other Stats) {
	s.Categories += other.Categories
	s.Pages += other.Pages
	s.Inserted += other.Inserted
	s.Duplicates += other.Duplicates
	s.Skipped += other.Skipped
}

// outcome tells the category loop what to do after one item.
type outcome int

const (
	outcomeContinue outcome = iota
	outcomeStopCategory
)

// Crawler drives the category → page → item traversal and applies the
// per-item recovery policy. A single bad product never ends the run; only a
// homepage, category-discovery, or storage-connection failure does.
type Crawler struct {
	cfg       *config.AppConfig
	fetcher   *fetch.Fetcher
	extractor *extract.Extractor
	store     storage.ProductStore
	log       *logrus.Logger
}

// New creates a Crawler wired to the given fetcher and product store.
func New(cfg *config.AppConfig, fetcher *fetch.Fetcher, store storage.ProductStore, log *logrus.Logger) *Crawler {
	return &Crawler{
		cfg:       cfg,
		fetcher:   fetcher,
		extractor: extract.NewExtractor(fetcher, cfg, log),
		store:     store,
		log:       log,
	}
}

// Run crawls every category discovered on the homepage once. Categories are
// traversed concurrently up to cfg.Workers (1 keeps the whole run
// sequential); page order within a category is always strictly sequential
// since each offset depends on the previous one having decoded.
func (c *Crawler) Run(ctx context.Context) (*Stats, error) {
	body, err := c.fetcher.Get(ctx, c.cfg.BaseURL+homePath, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch homepage: %w", err)
	}
	doc, err := parse.Document(body)
	if err != nil {
		return nil, fmt.Errorf("parse homepage: %w", err)
	}

	categories, err := catalog.Categories(doc)
	if err != nil {
		return nil, err
	}

	stats := &Stats{}
	var statsMu sync.Mutex
	var wg sync.WaitGroup
	sem := semaphore.NewWeighted(int64(c.cfg.Workers))

	for cat, ok := categories.Next(); ok; cat, ok = categories.Next() {
		if err := sem.Acquire(ctx, 1); err != nil {
			break // context cancelled
		}
		wg.Add(1)
		go func(cat catalog.Category) {
			defer wg.Done()
			defer sem.Release(1)
			catStats := c.crawlCategory(ctx, cat)
			statsMu.Lock()
			stats.add(catStats)
			statsMu.Unlock()
		}(cat)
	}
	wg.Wait()

	c.log.WithFields(logrus.Fields{
		"categories": stats.Categories,
		"pages":      stats.Pages,
		"inserted":   stats.Inserted,
		"duplicates": stats.Duplicates,
		"skipped":    stats.Skipped,
	}).Info("Crawl complete")

	return stats, ctx.Err()
}

// crawlCategory walks one category's listing pages until the paginator is
// exhausted or a duplicate barcode shows the remainder was already ingested
// in a prior run.
func (c *Crawler) crawlCategory(ctx context.Context, cat catalog.Category) Stats {
	catLog := c.log.WithField("category", cat.Name)
	catLog.Info("Crawling category")

	stats := Stats{Categories: 1}
	pages := catalog.NewPaginator(c.fetcher, c.cfg.BaseURL, cat.Name, c.cfg.Limit, c.log)

pageLoop:
	for batch, ok := pages.Next(ctx); ok; batch, ok = pages.Next(ctx) {
		stats.Pages++
		for _, item := range batch {
			if ctx.Err() != nil {
				break pageLoop
			}
			if c.processItem(ctx, item, cat.Name, &stats, catLog) == outcomeStopCategory {
				break pageLoop
			}
		}
	}

	catLog.WithFields(logrus.Fields{
		"pages":    stats.Pages,
		"inserted": stats.Inserted,
	}).Info("Got all products in category")
	return stats
}

// processItem extracts and ingests a single listing item. Extraction and
// non-duplicate storage failures skip the item; a duplicate barcode stops
// the category, since listings are assumed ordered so that everything past
// a known barcode was ingested in a prior run.
func (c *Crawler) processItem(ctx context.Context, item catalog.Item, categoryName string, stats *Stats, catLog *logrus.Entry) outcome {
	itemLog := catLog.WithField("product_id", item.ID)

	product, err := c.extractor.Extract(ctx, item, categoryName)
	if err != nil {
		stats.Skipped++
		itemLog.WithField("error_category", utils.CategorizeError(err)).Warnf("Skipping product: %v", err)
		return outcomeContinue
	}

	if err := c.store.Insert(ctx, product); err != nil {
		if errors.Is(err, utils.ErrDuplicateProduct) {
			stats.Duplicates++
			itemLog.WithField("barcode", product.Barcode).Info("Product already ingested, skipping rest of category")
			return outcomeStopCategory
		}
		stats.Skipped++
		itemLog.WithField("error_category", utils.CategorizeError(err)).Warnf("Insert failed: %v", err)
		return outcomeContinue
	}

	stats.Inserted++
	itemLog.Infof("Inserted product %d from category %s", product.Barcode, categoryName)
	return outcomeContinue
}
