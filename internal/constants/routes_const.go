package constants

// Base Routes
const (
	APIBasePath = "/api"
	HealthPath  = "/health"
	VersionPath = "/version"
	RoutesPath  = "/api/routes"
)

// Humanizer Routes
const (
	HumanizeBasePath     = "/api/humanize"
	HumanizeProfilesPath = "/api/humanize/profiles"
)

// Export Routes
const (
	ExportBasePath         = "/api/export"
	ExportFormatsPath      = "/api/export/formats"
	ExportHistoryPath      = "/api/export/history"
	ExportHistoryStatsPath = "/api/export/history/stats"
)

// Query Parameters
const (
	QueryParamPage     = "page"
	QueryParamPageSize = "page_size"
)

// Rate Limit Categories
const (
	RateCategoryExport = "export"
)
