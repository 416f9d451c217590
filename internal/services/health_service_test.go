package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeDataset struct {
	status DatasetStatus
}

func (f fakeDataset) Status() DatasetStatus { return f.status }

func TestHealthService_HealthCheck(t *testing.T) {
	hs := NewHealthService("1.2.3", "", nil, nil)

	status := hs.HealthCheck(context.Background())
	assert.Equal(t, "ok", status.Status)
	assert.Equal(t, "1.2.3", status.Version)
	assert.False(t, status.Timestamp.IsZero())
}

func TestHealthService_ReadinessCheck(t *testing.T) {
	tests := []struct {
		name    string
		dataset DatasetReporter
		want    string
	}{
		{"no dataset", nil, "not_ready"},
		{"not loaded", fakeDataset{DatasetStatus{Dir: "data"}}, "not_ready"},
		{"loaded", fakeDataset{DatasetStatus{
			Dir: "data", Loaded: true, Files: []string{"a_CLEANED.csv"}, Records: 12, LoadedAt: time.Now(),
		}}, "ready"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hs := NewHealthService("dev", "", tt.dataset, nil)
			status := hs.ReadinessCheck(context.Background())
			assert.Equal(t, tt.want, status.Status)
			assert.Equal(t, tt.want, status.Services["data"].Status)
		})
	}

	hs := NewHealthService("dev", "", fakeDataset{DatasetStatus{
		Loaded: true, Files: []string{"a", "b"}, Records: 12, LoadedAt: time.Now(),
	}}, nil)
	assert.Equal(t, "12 records from 2 files", hs.ReadinessCheck(context.Background()).Services["data"].Message)
}

func TestHealthService_Liveness(t *testing.T) {
	hs := NewHealthService("dev", "2026-01-01", nil, nil)

	status := hs.LivenessCheck(context.Background())
	assert.Equal(t, "alive", status.Status)
	assert.Contains(t, status.Runtime, "goroutines")

	version := hs.Version()
	assert.Equal(t, "dev", version["version"])
	assert.Equal(t, "2026-01-01", version["build_time"])
	assert.Equal(t, "v1", version["data_format"])
}
