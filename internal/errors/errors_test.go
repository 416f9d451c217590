package errors

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIError(t *testing.T) {
	err := New(http.StatusBadRequest, CodeValidation, "bad")
	assert.Equal(t, "bad", err.Error())
	assert.Nil(t, err.Details)

	detailed := InvalidParameter("dimension", "shoe_size", []string{"gender", "race"})
	assert.Equal(t, http.StatusBadRequest, detailed.StatusCode)
	assert.Equal(t, `invalid dimension "shoe_size"`, detailed.Message)
	details, ok := detailed.Details.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, []string{"gender", "race"}, details["allowed"])

	v := ErrValidation("signature", "unknown filter")
	assert.Equal(t, ValidationError{Field: "signature", Message: "unknown filter"}, v.Details)

	assert.Equal(t, CodeDataNotFound, ErrDataNotFound.ErrorCode)

	nf := NotFoundError("dimension")
	assert.Equal(t, http.StatusNotFound, nf.StatusCode)
	assert.Equal(t, "dimension not found", nf.Message)
}

func TestProblemDetails_MarshalJSON(t *testing.T) {
	problem := NewProblemDetails(http.StatusNotFound, TypeNotFound, "Not Found", "", "/api/map").
		WithExtension("trace_id", "abc")

	raw, err := json.Marshal(problem)
	require.NoError(t, err)

	var data map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &data))
	assert.Equal(t, TypeNotFound, data["type"])
	assert.Equal(t, float64(http.StatusNotFound), data["status"])
	assert.Equal(t, "abc", data["trace_id"])
	assert.Equal(t, "/api/map", data["instance"])
	_, hasDetail := data["detail"]
	assert.False(t, hasDetail)
}
