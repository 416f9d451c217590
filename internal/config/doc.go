// Package config provides configuration for the grant cleaner and its
// dashboard. Values come from three layers, later layers winning:
//
//	1. Default() values
//	2. An optional YAML file (GRANTS_CONFIG, ./config.yaml or ./configs/config.yaml)
//	3. GRANTS_* environment variables
//
// Environment variables follow the section layout:
//
//	GRANTS_LOGGING_LEVEL=debug
//	GRANTS_PIPELINE_SHEET_NAME=Support_Application_Data
//	GRANTS_PIPELINE_TODAY=2024-06-15
//	GRANTS_GEOCODE_REFERENCE_FILE=uszips.csv
//	GRANTS_SERVER_PORT=8050
//	GRANTS_TELEMETRY_TRACE_EXPORTER=stdout
//
// The merged configuration is validated with struct tags; failures are
// returned as CONFIG application errors.
//
// The package also owns output naming: CleanedPath maps an intake file to its
// <basename>_CLEANED.csv and ManifestPath to the JSON run manifest beside it.
package config
