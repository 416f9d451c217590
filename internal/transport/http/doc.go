// Package http implements the dashboard's HTTP handlers. Handlers parse and
// validate the request, call a service and render JSON; they hold no
// business logic.
//
// # Routes
//
// Everything below is mounted under /api:
//
//	GET /health, /health/ready, /health/live, /version
//	GET /status                   loaded files and row count
//	GET /review?signature=        pending applications (All, Signed, Not Signed, Missing)
//	GET /support                  groupable dimensions
//	GET /support/{dimension}      grant totals per dimension value
//	GET /map                      zip map points
//	GET /response-time            days-to-support summary
//	GET /utilization              remaining balance view
//	GET /impact                   all-time impact summary
//
// /metrics sits outside /api and serves the Prometheus exporter.
//
// # Error Handling
//
// Errors are RFC 7807 problem details written by errors.ErrorHandler:
//
//	{
//	    "type": "/errors/validation",
//	    "title": "Bad Request",
//	    "status": 400,
//	    "detail": "invalid dimension \"shoe_size\"",
//	    "instance": "/api/support/shoe_size",
//	    "trace_id": "..."
//	}
//
// Views requested before the cleaned files are loaded answer 404 with
// error_code DATA_NOT_FOUND.
package http
