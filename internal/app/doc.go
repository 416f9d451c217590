// Package app wires the dashboard server: configuration, logging,
// OpenTelemetry, the dashboard service and the chi router.
//
// # Initialization Flow
//
//	1. Load configuration from config.yaml and GRANTS_* environment
//	2. Initialize logging and observability
//	3. Create the dashboard and health services
//	4. Set up middleware, handlers and the HTTP server
//	5. Load the cleaned files, serve, shut down on SIGINT/SIGTERM
//
// # Usage
//
//	application, err := app.NewApplication(cfg, logger)
//	if err != nil {
//	    return err
//	}
//	return application.Run()
package app
