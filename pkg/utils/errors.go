package utils

import (
	"errors"
	"strings"
)

// --- Sentinel Errors for Categorization ---
var (
	ErrHTTPStatus       = errors.New("unexpected HTTP status")         // Non-200 response; wraps status and body excerpt
	ErrPageStructure    = errors.New("expected page landmark missing") // Homepage layout changed
	ErrListingDecode    = errors.New("listing payload decode failed")  // End-of-listing signal, consumed by the paginator
	ErrFieldMissing     = errors.New("required product field missing") // Wraps the field name that failed extraction
	ErrDuplicateProduct = errors.New("product already ingested")       // Primary-key conflict on insert
	ErrStorage          = errors.New("storage error")                  // Wraps non-duplicate database errors
	ErrRequestCreation  = errors.New("failed to create HTTP request")
	ErrConfigValidation = errors.New("configuration validation error")
)

// CategorizeError maps an error to a predefined category string for logging/metrics.
func CategorizeError(err error) string {
	if err == nil {
		return "None"
	}

	// Check against sentinel errors first
	switch {
	case errors.Is(err, ErrHTTPStatus):
		errMsg := err.Error()
		if strings.Contains(errMsg, "status 404") {
			return "HTTP_404"
		}
		if strings.Contains(errMsg, "status 403") {
			return "HTTP_403"
		}
		if strings.Contains(errMsg, "status 5") {
			return "HTTP_5xx"
		}
		return "HTTP_Other"
	case errors.Is(err, ErrPageStructure):
		return "Content_StructureChanged"
	case errors.Is(err, ErrListingDecode):
		return "Content_ListingDecode"
	case errors.Is(err, ErrFieldMissing):
		return "Content_FieldMissing"
	case errors.Is(err, ErrDuplicateProduct):
		return "Database_Duplicate"
	case errors.Is(err, ErrStorage):
		return "Database_Other"
	case errors.Is(err, ErrRequestCreation):
		return "Internal_RequestCreation"
	case errors.Is(err, ErrConfigValidation):
		return "Config_Validation"
	}

	// --- Fallback checks for common underlying error strings ---
	lowerErrMsg := strings.ToLower(err.Error())
	if strings.Contains(lowerErrMsg, "timeout") || strings.Contains(lowerErrMsg, "deadline exceeded") {
		return "Network_Timeout"
	}
	if strings.Contains(lowerErrMsg, "connection refused") {
		return "Network_ConnectionRefused"
	}
	if strings.Contains(lowerErrMsg, "no such host") {
		return "Network_DNSLookup"
	}

	return "Unknown"
}
