package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/tuonglequoc/crawl-product-data/pkg/models"
	"github.com/tuonglequoc/crawl-product-data/pkg/utils"
)

// uniqueViolation is the SQLSTATE for a unique constraint conflict.
const uniqueViolation = "23505"

const insertProduct = `
	INSERT INTO product (
		barcode, product_name, category, country_of_origin, link,
		thumbnail, price, status, description, remarks
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
`

// PostgresStore persists product records in the barcode-keyed product table.
type PostgresStore struct {
	pool *pgxpool.Pool
	log  *logrus.Logger
}

// NewPostgresStore opens a connection pool against dsn and verifies it with
// a ping. A connection-level failure here is fatal to the run.
func NewPostgresStore(ctx context.Context, dsn string, log *logrus.Logger) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: connect: %v", utils.ErrStorage, err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%w: ping: %v", utils.ErrStorage, err)
	}

	log.Debug("Product store connected")
	return &PostgresStore{pool: pool, log: log}, nil
}

// Insert writes one product record. The table's primary key enforces the
// barcode uniqueness invariant; a conflict maps to utils.ErrDuplicateProduct
// so the driver can short-circuit the category.
func (s *PostgresStore) Insert(ctx context.Context, p *models.Product) error {
	_, err := s.pool.Exec(ctx, insertProduct,
		p.Barcode,
		p.ProductName,
		p.Category,
		p.CountryOfOrigin,
		p.Link,
		p.Thumbnail,
		p.Price,
		p.Status,
		p.Description,
		p.Remarks,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: barcode %d", utils.ErrDuplicateProduct, p.Barcode)
		}
		return fmt.Errorf("%w: insert barcode %d: %v", utils.ErrStorage, p.Barcode, err)
	}
	return nil
}

// Close releases the connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
