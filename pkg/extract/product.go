package extract

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/tuonglequoc/crawl-product-data/pkg/catalog"
	"github.com/tuonglequoc/crawl-product-data/pkg/config"
	"github.com/tuonglequoc/crawl-product-data/pkg/fetch"
	"github.com/tuonglequoc/crawl-product-data/pkg/models"
	"github.com/tuonglequoc/crawl-product-data/pkg/parse"
	"github.com/tuonglequoc/crawl-product-data/pkg/utils"
)

const (
	// detailPathPrefix plus the product id gives the detail page URL.
	detailPathPrefix = "/store/online/p/"
	// detailsLabel is the literal heading preceding the description block.
	detailsLabel = "商品詳細"
)

// Extractor turns listing items into finished product records by fetching
// and picking apart their detail pages.
type Extractor struct {
	fetcher         *fetch.Fetcher
	baseURL         string
	countryOfOrigin string
	remarks         string
	log             *logrus.Logger
}

// NewExtractor creates an Extractor using the fixed record fields from cfg.
func NewExtractor(fetcher *fetch.Fetcher, cfg *config.AppConfig, log *logrus.Logger) *Extractor {
	return &Extractor{
		fetcher:         fetcher,
		baseURL:         cfg.BaseURL,
		countryOfOrigin: cfg.CountryOfOrigin,
		remarks:         cfg.Remarks,
		log:             log,
	}
}

// Extract fetches the detail page for item and maps its fragments into a
// Product, merging in the category name and the fixed config fields. Any
// missing landmark or non-numeric id/price yields an error wrapping
// utils.ErrFieldMissing that names the field which failed; callers skip the
// item and keep the run alive.
func (e *Extractor) Extract(ctx context.Context, item catalog.Item, categoryName string) (*models.Product, error) {
	barcode, err := strconv.ParseInt(item.ID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: barcode: product id %q is not numeric", utils.ErrFieldMissing, item.ID)
	}
	price, err := item.Price.Int64()
	if err != nil {
		return nil, fmt.Errorf("%w: price: %q is not numeric", utils.ErrFieldMissing, item.Price.String())
	}

	link := e.baseURL + detailPathPrefix + item.ID
	body, err := e.fetcher.Get(ctx, link, nil)
	if err != nil {
		return nil, err
	}
	doc, err := parse.Document(body)
	if err != nil {
		return nil, fmt.Errorf("parse detail page %s: %w", link, err)
	}

	name := strings.TrimSpace(doc.Find(".goodsBox h3").First().Text())
	if name == "" {
		return nil, fmt.Errorf("%w: product_name: goodsBox heading not found on %s", utils.ErrFieldMissing, link)
	}

	imgSrc, ok := doc.Find(".popBxslider img").First().Attr("src")
	if !ok {
		return nil, fmt.Errorf("%w: thumbnail: popBxslider image not found on %s", utils.ErrFieldMissing, link)
	}

	detailsHeading := parse.FindByExactText(doc, detailsLabel)
	if detailsHeading == nil {
		return nil, fmt.Errorf("%w: description: %q label not found on %s", utils.ErrFieldMissing, detailsLabel, link)
	}
	description := strings.Join(parse.TextLines(detailsHeading.Next()), "\n")

	return &models.Product{
		Barcode:         barcode,
		ProductName:     name,
		Category:        categoryName,
		CountryOfOrigin: e.countryOfOrigin,
		Link:            link,
		Thumbnail:       e.baseURL + imgSrc,
		Price:           price,
		Status:          true,
		Description:     description,
		Remarks:         e.remarks,
	}, nil
}
