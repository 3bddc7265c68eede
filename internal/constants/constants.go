package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600

	// DownloadFilePerm is the permission for downloaded documents.
	DownloadFilePerm = 0640
)

// HTTP timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// DownloadHTTPTimeout is used for PDF and export downloads.
	DownloadHTTPTimeout = 120 * time.Second
)

// Header names and values.
const (
	HeaderAuthorization = "Authorization"
	HeaderAccept        = "Accept"
	HeaderContentType   = "Content-Type"
	HeaderUserAgent     = "User-Agent"

	ContentTypeJSON = "application/json"
	ContentTypeForm = "application/x-www-form-urlencoded"

	// AuthorizationScheme prefixes the Authorization header value.
	AuthorizationScheme = "SFAPI"

	// FormDataPrefix precedes the JSON payload of legacy form endpoints.
	FormDataPrefix = "data="

	// DefaultUserAgent is sent when Config.UserAgent is empty.
	DefaultUserAgent = "sfapi-go"
)

// Rate limit headers. Each prefix is followed by Limit, Remaining and Reset.
const (
	RateLimitDaily   = "X-RateLimit-Daily"
	RateLimitMonthly = "X-RateLimit-Monthly"

	// RateLimitResetFormat is the layout of the Reset headers.
	RateLimitResetFormat = "02.01.2006 15:04:05"

	// ServiceTimeZone is the zone Reset headers are expressed in.
	ServiceTimeZone = "Europe/Bratislava"
)

// Library identification.
const (
	// ModulePath is looked up in the build info to report the library version.
	ModulePath = "github.com/fivetwenty-io/sfapi"

	// UnknownVersion is reported when the build info is unavailable.
	UnknownVersion = "unknown"
)

// Credential environment keys read from .env files.
const (
	EnvEmail     = "SFAPI_EMAIL"
	EnvKey       = "SFAPI_KEY"
	EnvCompanyID = "SFAPI_COMPANY_ID"
	EnvModule    = "SFAPI_MODULE"
	EnvAppTitle  = "SFAPI_APP_TITLE"
	EnvBaseURL   = "SFAPI_BASE_URL"
)

// Telemetry.
const (
	// RateLimitSubject is the default NATS subject for rate limit snapshots.
	RateLimitSubject = "sfapi.ratelimit"

	// NATSConnectTimeout bounds the initial NATS connection.
	NATSConnectTimeout = 5 * time.Second
)

// CLI output.
const (
	// TableTruncateLength shortens long cells in table output.
	TableTruncateLength = 40
)
