package storage

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"UniqueViolation", &pgconn.PgError{Code: "23505"}, true},
		{"WrappedUniqueViolation", fmt.Errorf("exec: %w", &pgconn.PgError{Code: "23505"}), true},
		{"ForeignKeyViolation", &pgconn.PgError{Code: "23503"}, false},
		{"PlainError", errors.New("connection reset"), false},
		{"Nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, isUniqueViolation(tt.err))
		})
	}
}
