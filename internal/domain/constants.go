package domain

import "time"

// File permissions constants
const (
	// DirectoryPermissions is the default permission for directories (rwxr-xr-x)
	DirectoryPermissions = 0o755
	// SecureFilePermissions is the permission for sensitive files (rw-------)
	SecureFilePermissions = 0o600
	// DataFilePermissions is the permission for history and cache files
	DataFilePermissions = 0o644
)

// Timeout and duration constants
const (
	// DefaultHTTPClientTimeout is the timeout for HTTP client requests
	DefaultHTTPClientTimeout = 60 * time.Second
	// DefaultDoctorProbeTimeout bounds each endpoint reachability check
	DefaultDoctorProbeTimeout = 5 * time.Second
	// DefaultKeepAliveInterval is how often the keep-alive poller fires
	DefaultKeepAliveInterval = 5 * time.Minute
)

// Search constants
const (
	// DefaultSearchResultCount is the number of organic results requested
	DefaultSearchResultCount = 5
	// DefaultSearchRegion is the gl parameter sent to the search API
	DefaultSearchRegion = "us"
	// DefaultSearchLanguage is the hl parameter sent to the search API
	DefaultSearchLanguage = "en"
	// MaxRelatedSearches caps the related-search lines in formatted output
	MaxRelatedSearches = 5
)

// History constants
const (
	// DefaultHistoryLimit is the default number of history entries to display
	DefaultHistoryLimit = 20
)

// Time formats
const (
	// TimestampFormat is the standard timestamp format
	TimestampFormat = time.RFC3339
)
