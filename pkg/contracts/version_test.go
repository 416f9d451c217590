package contracts

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetVersionInfo(t *testing.T) {
	info := GetVersionInfo()

	assert.Equal(t, Version, info.Version)
	assert.Equal(t, DataFormatVersion, info.DataFormat)
	assert.Equal(t, APIVersion, info.APIVersion)
	assert.Equal(t, runtime.GOOS, info.OS)
	assert.Equal(t, runtime.Version(), info.GoVersion)
}

func TestGetFullVersionString(t *testing.T) {
	tests := []struct {
		name      string
		buildTime string
		want      string
	}{
		{name: "unset build time", buildTime: "", want: "built: unknown"},
		{name: "stamped build time", buildTime: "2024-06-01T10:00:00Z", want: "built: 2024-06-01T10:00:00Z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			saved := BuildTime
			BuildTime = tt.buildTime
			t.Cleanup(func() { BuildTime = saved })

			s := GetFullVersionString()
			assert.Contains(t, s, "grantcli v"+Version)
			assert.Contains(t, s, tt.want)
		})
	}
}
