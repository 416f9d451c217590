package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "grantcli/internal/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadFile(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		file        string
		wantErr     bool
		validateCfg func(*testing.T, *Config)
	}{
		{
			name: "defaults without file or env",
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "info", cfg.Logging.Level)
				assert.Equal(t, "json", cfg.Logging.Format)
				assert.Equal(t, "console", cfg.Logging.Output)
				assert.Equal(t, DefaultSheetName, cfg.Pipeline.SheetName)
				assert.Equal(t, DefaultZipFile, cfg.Geocode.Path)
				assert.False(t, cfg.Pipeline.BOM)
				assert.False(t, cfg.Pipeline.WriteManifest)
				assert.Equal(t, 8050, cfg.Server.Port)
				assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
				assert.True(t, cfg.Security.RateLimit.Enabled)
				assert.Equal(t, "none", cfg.Telemetry.TraceExporter)
				assert.Equal(t, "prometheus", cfg.Telemetry.MetricsExporter)
			},
		},
		{
			name: "file overrides defaults",
			file: `
logging:
  level: DEBUG
pipeline:
  sheet_name: Intake
  bom: true
  today: "2024-06-15"
server:
  read_timeout: 5s
`,
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "debug", cfg.Logging.Level)
				assert.Equal(t, "Intake", cfg.Pipeline.SheetName)
				assert.True(t, cfg.Pipeline.BOM)
				assert.Equal(t, "2024-06-15", cfg.Pipeline.Today)
				assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
				assert.Equal(t, 15*time.Second, cfg.Server.WriteTimeout, "untouched keys keep defaults")
			},
		},
		{
			name: "env wins over file",
			file: "pipeline:\n  sheet_name: FromFile\n",
			env: map[string]string{
				"GRANTS_PIPELINE_SHEET_NAME":            "FromEnv",
				"GRANTS_PIPELINE_WRITE_MANIFEST":        "true",
				"GRANTS_SECURITY_ALLOWED_ORIGINS":       "http://a.test,http://b.test",
				"GRANTS_GEOCODE_REFERENCE_FILE":         "ref/zips.xlsx",
				"GRANTS_TELEMETRY_TRACE_EXPORTER":       "stdout",
				"GRANTS_SERVER_REQUEST_TIMEOUT":         "2s",
				"GRANTS_PIPELINE_ALLOW_MISSING_COLUMNS": "true",
			},
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "FromEnv", cfg.Pipeline.SheetName)
				assert.True(t, cfg.Pipeline.WriteManifest)
				assert.True(t, cfg.Pipeline.AllowMissingColumns)
				assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Security.AllowedOrigins)
				assert.Equal(t, "ref/zips.xlsx", cfg.Geocode.Path)
				assert.Equal(t, "stdout", cfg.Telemetry.TraceExporter)
				assert.Equal(t, 2*time.Second, cfg.Server.RequestTimeout)
			},
		},
		{
			name:    "invalid log level",
			env:     map[string]string{"GRANTS_LOGGING_LEVEL": "verbose"},
			wantErr: true,
		},
		{
			name:    "invalid today",
			file:    "pipeline:\n  today: 06/15/2024\n",
			wantErr: true,
		},
		{
			name:    "port out of range",
			env:     map[string]string{"GRANTS_SERVER_PORT": "70000"},
			wantErr: true,
		},
		{
			name:    "malformed yaml",
			file:    "logging: [",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := ""
			if tt.file != "" {
				path = writeConfig(t, tt.file)
			}

			cfg, err := LoadFile(path)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperrors.IsType(err, apperrors.ErrTypeConfig))
				return
			}
			require.NoError(t, err)
			if tt.validateCfg != nil {
				tt.validateCfg(t, cfg)
			}
		})
	}
}

func TestLoadFile_MissingFile(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeConfig))
}

func TestConfigFilePath_Env(t *testing.T) {
	t.Setenv("GRANTS_CONFIG", "/etc/grantcli.yaml")
	assert.Equal(t, "/etc/grantcli.yaml", ConfigFilePath())
}

func TestTodayFunc(t *testing.T) {
	cfg := Default()
	assert.WithinDuration(t, time.Now(), cfg.TodayFunc()(), time.Minute)

	cfg.Pipeline.Today = "2024-06-15"
	got := cfg.TodayFunc()()
	assert.Equal(t, time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC), got)
}

func TestDefault_Validates(t *testing.T) {
	assert.NoError(t, Default().Validate())
}
