package middleware

import (
	"encoding/json"
	"net/http"

	apperrors "grantcli/internal/errors"
)

// writeProblem writes an RFC 7807 response carrying the request ID as
// trace_id
func writeProblem(w http.ResponseWriter, r *http.Request, status int, problemType, detail string) {
	problem := apperrors.NewProblemDetails(status, problemType, http.StatusText(status), detail, r.URL.Path).
		WithExtension("trace_id", GetRequestID(r.Context()))

	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(problem)
}
