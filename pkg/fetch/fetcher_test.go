package fetch

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tuonglequoc/crawl-product-data/pkg/utils"
)

// testLogger returns a logger that discards output
func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// testClient returns an http.Client suitable for testing
func testClient() *http.Client {
	return &http.Client{Timeout: 30 * time.Second}
}

func TestGet_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>ok</html>"))
	}))
	t.Cleanup(server.Close)

	fetcher := NewFetcher(testClient(), testLogger())
	body, err := fetcher.Get(context.Background(), server.URL, nil)

	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if body != "<html>ok</html>" {
		t.Errorf("unexpected body: %q", body)
	}
}

func TestGet_QueryParameters(t *testing.T) {
	var gotQuery url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
	}))
	t.Cleanup(server.Close)

	fetcher := NewFetcher(testClient(), testLogger())
	query := url.Values{}
	query.Set("query", "po[]=スキンケア&o=0&limit=24&sort=id")

	if _, err := fetcher.Get(context.Background(), server.URL, query); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if got := gotQuery.Get("query"); got != "po[]=スキンケア&o=0&limit=24&sort=id" {
		t.Errorf("query parameter not passed through, got %q", got)
	}
}

func TestGet_NonOKStatus(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		body       string
	}{
		{"404 Not Found", http.StatusNotFound, "no such page"},
		{"500 Internal Server Error", http.StatusInternalServerError, "boom"},
		{"301 Redirect-like", http.StatusTeapot, "nope"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
				w.Write([]byte(tt.body))
			}))
			t.Cleanup(server.Close)

			fetcher := NewFetcher(testClient(), testLogger())
			_, err := fetcher.Get(context.Background(), server.URL, nil)

			if err == nil {
				t.Fatal("expected error for non-200 status, got nil")
			}
			if !errors.Is(err, utils.ErrHTTPStatus) {
				t.Errorf("expected ErrHTTPStatus, got: %v", err)
			}
			if !strings.Contains(err.Error(), tt.body) {
				t.Errorf("expected error to carry response body %q, got: %v", tt.body, err)
			}
		})
	}
}

func TestGet_ErrorBodyTruncated(t *testing.T) {
	long := strings.Repeat("x", maxErrorBodyBytes*4)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(long))
	}))
	t.Cleanup(server.Close)

	fetcher := NewFetcher(testClient(), testLogger())
	_, err := fetcher.Get(context.Background(), server.URL, nil)

	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if len(err.Error()) > maxErrorBodyBytes+128 {
		t.Errorf("error message not truncated, length %d", len(err.Error()))
	}
}

func TestGet_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	t.Cleanup(server.Close)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fetcher := NewFetcher(testClient(), testLogger())
	_, err := fetcher.Get(ctx, server.URL, nil)

	if err == nil {
		t.Fatal("expected error for cancelled context, got nil")
	}
}
