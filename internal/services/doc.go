// Package services implements the business logic layer between the command
// line and HTTP handlers on one side and the cleaning and analytics packages
// on the other.
//
// # Available Services
//
//	- CleaningService: runs one intake file through load, transform,
//	  validation and write, and records a run manifest
//	- DashboardService: loads every cleaned file in a directory once and
//	  answers the read-only dashboard views
//	- HealthService: liveness, readiness and version information
//
// # Error Handling
//
// Services return internal/errors AppErrors so handlers and commands can map
// them to HTTP problem details or exit codes:
//
//	- USAGE for bad arguments
//	- NOT_FOUND for missing files
//	- PARSING for unreadable input
//	- VALIDATION for values outside a column vocabulary
//	- STORAGE for write failures
//
// # Testing
//
// Services are tested against fixture files written to t.TempDir():
//
//	svc := NewCleaningService(cfg, zips, nil, logger)
//	result, err := svc.Clean(ctx, path)
package services
