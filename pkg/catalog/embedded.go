package catalog

import (
	"encoding/json"
	"fmt"

	"github.com/PuerkitoBio/goquery"

	"github.com/tuonglequoc/crawl-product-data/pkg/utils"
)

// viewParamsID is the node carrying the embedded listing JSON, both as a DOM
// element (category landing pages) and as a field of the search API envelope.
const viewParamsID = "extecViewParams"

// Item is one product entry of a listing page. Only the identifier and the
// price survive to extraction; every other impression field is ignored.
type Item struct {
	ID    string      `json:"id"`    // Numeric-looking external product identifier
	Price json.Number `json:"price"` // Minor currency units
}

// listingPayload mirrors the analytics structure the storefront embeds in
// its pages and search responses.
type listingPayload struct {
	Ecommerce struct {
		Impressions []Item `json:"impressions"`
	} `json:"ecommerce"`
}

// ImpressionsFromEnvelope decodes a search API response. The payload is
// double-encoded: the outer JSON object carries the listing as a JSON string
// that needs a second decode before the impressions path can be reached.
// Every failure mode (malformed envelope, missing field, empty result) wraps
// utils.ErrListingDecode; the paginator treats that as end of listing.
func ImpressionsFromEnvelope(raw string) ([]Item, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &envelope); err != nil {
		return nil, fmt.Errorf("%w: envelope: %v", utils.ErrListingDecode, err)
	}

	var inner string
	if err := json.Unmarshal(envelope[viewParamsID], &inner); err != nil {
		return nil, fmt.Errorf("%w: envelope field %q: %v", utils.ErrListingDecode, viewParamsID, err)
	}

	return impressions([]byte(inner))
}

// ImpressionsFromDocument reads the listing JSON carried in the value
// attribute of the #extecViewParams node of a parsed category page.
func ImpressionsFromDocument(doc *goquery.Document) ([]Item, error) {
	value, ok := doc.Find("#" + viewParamsID).Attr("value")
	if !ok {
		return nil, fmt.Errorf("%w: #%s node not found", utils.ErrListingDecode, viewParamsID)
	}
	return impressions([]byte(value))
}

func impressions(data []byte) ([]Item, error) {
	var payload listingPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("%w: listing payload: %v", utils.ErrListingDecode, err)
	}
	if len(payload.Ecommerce.Impressions) == 0 {
		return nil, fmt.Errorf("%w: no impressions in payload", utils.ErrListingDecode)
	}
	return payload.Ecommerce.Impressions, nil
}
