package config

import "grantcli/pkg/contracts"

// Application constants
const (
	AppName    = "grantcli"
	AppVersion = contracts.Version

	// EnvPrefix namespaces every environment variable (GRANTS_LOGGING_LEVEL, ...)
	EnvPrefix = "GRANTS"

	// Intake defaults
	DefaultSheetName = "Support_Application_Data"
	DefaultZipFile   = "uszips.csv"

	// Output naming
	CleanedSuffix  = "_CLEANED.csv"
	ManifestSuffix = "_MANIFEST.json"

	DateLayout = "2006-01-02"

	// API
	APIBasePath     = "/api"
	HealthEndpoint  = "/api/health"
	MetricsEndpoint = "/metrics"
)
