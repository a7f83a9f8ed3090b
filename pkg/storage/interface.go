package storage

import (
	"context"

	"github.com/tuonglequoc/crawl-product-data/pkg/models"
)

// ProductStore is the single insert contract the pipeline needs from storage.
type ProductStore interface {
	// Insert persists a product record. A primary-key conflict on barcode
	// yields an error wrapping utils.ErrDuplicateProduct; any other failure
	// wraps utils.ErrStorage.
	Insert(ctx context.Context, p *models.Product) error

	// Close releases the underlying connections.
	Close()
}
