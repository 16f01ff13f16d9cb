// Package constants provides shared constant values used throughout the application.
//
// The defaults.go file defines default values and limits used throughout the application.
// These constants provide fallbacks for configuration settings and establish
// boundaries for resource usage.
package constants

// Default Pagination Values define the parameters used for paginated responses.
const (
	// DefaultPage is the default page number for paginated results when not specified.
	DefaultPage = 1

	// DefaultPageSize is the default number of items per page when not specified.
	// It matches the default history capacity so one page shows the whole history.
	DefaultPageSize = 50

	// MaxPageSize is the maximum allowable page size to prevent excessive resource usage.
	MaxPageSize = 100

	// MinPageSize is the minimum allowable page size.
	MinPageSize = 1
)

// Default Configuration Values define fallback settings when not specified in configuration.
const (
	// DefaultAppName is the service name reported in logs and /version.
	DefaultAppName = "productforge-api"

	// DefaultServerPort is the default HTTP server port.
	DefaultServerPort = 8080

	// DefaultDBMaxConnections is the default maximum number of database connections.
	DefaultDBMaxConnections = 20

	// DefaultDBMinConnections is the default minimum number of database connections.
	DefaultDBMinConnections = 5

	// DefaultDBDriver is the database driver used when none is configured.
	DefaultDBDriver = DriverSQLite

	// DefaultLogLevel is the default logging verbosity level.
	DefaultLogLevel = "info"

	// DefaultLogFormat is the default logging output format.
	DefaultLogFormat = "json"

	// DefaultHistoryBackend keeps export history in the configured database.
	DefaultHistoryBackend = HistoryBackendDatabase

	// DefaultHistoryCapacity is the number of export attempts kept per owner.
	DefaultHistoryCapacity = 50

	// DefaultHumanizeProfile is used when a humanize request names no profile and no options.
	DefaultHumanizeProfile = "moderate"
)

// Environment Types define the recognized application running environments.
const (
	// EnvDevelopment identifies a development environment with debugging features enabled.
	EnvDevelopment = "development"

	// EnvTesting identifies a testing environment for automated tests.
	EnvTesting = "testing"

	// EnvProduction identifies a production environment with optimized settings.
	EnvProduction = "production"
)

// Size Limits define the maximum allowed sizes for request payloads.
const (
	// MaxRequestBodySize is the maximum size in bytes for HTTP request bodies.
	// Project content is sent inline, so this is larger than a typical JSON API.
	MaxRequestBodySize = 5 * 1048576 // 5MB in bytes
)

// Auth Constants define values related to bearer token handling.
const (
	// DefaultJWTIssuer is the expected issuer claim when none is configured.
	// An empty issuer disables the check.
	DefaultJWTIssuer = ""

	// BearerTokenPrefix is the prefix for Authorization header bearer tokens.
	BearerTokenPrefix = "Bearer "
)

// Rate Limiting Defaults apply to the export endpoint.
const (
	// DefaultExportRateLimit is the number of export requests allowed per client per second.
	DefaultExportRateLimit = 5.0

	// DefaultExportRateBurst is the number of export requests allowed in a burst.
	DefaultExportRateBurst = 10
)
