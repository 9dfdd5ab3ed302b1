package config_test

import (
	"bytes"
	"io"
	"os"
	"testing"
	"time"

	"github.com/cooptask/cooptask/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		content     string
		expected    config.Config
		expectError bool
	}{
		{
			name: "Valid YAML config",
			content: `
logging:
  level: "debug"
  output: "/tmp/cooptask_test.log"
runtime:
  poll_interval: 5ms
workload:
  bcrypt_cost: 4
  max_payload: "8KB"
  compression: "gzip"
`,
			expected: config.Config{
				Logging: &config.LoggingConfig{
					Level:  "debug",
					Output: "/tmp/cooptask_test.log",
				},
				Runtime: &config.RuntimeConfig{
					PollInterval: 5 * time.Millisecond,
				},
				Workload: &config.WorkloadConfig{
					BcryptCost:  4,
					MaxPayload:  "8KB",
					Compression: "gzip",
				},
			},
		},
		{
			name: "Invalid YAML config (bad poll interval)",
			content: `
runtime:
  poll_interval: "not-a-duration"
`,
			expectError: true,
		},
		{
			name: "Valid JSON config",
			content: `{
				"logging": {
					"level": "warn",
					"output": "/tmp/cooptask_test.log"
				},
				"runtime": {
					"poll_interval": "250ms"
				},
				"workload": {
					"bcrypt_cost": 6,
					"max_payload": "1KB",
					"compression": "flate"
				}
			}`,
			expected: config.Config{
				Logging: &config.LoggingConfig{
					Level:  "warn",
					Output: "/tmp/cooptask_test.log",
				},
				Runtime: &config.RuntimeConfig{
					PollInterval: 250 * time.Millisecond,
				},
				Workload: &config.WorkloadConfig{
					BcryptCost:  6,
					MaxPayload:  "1KB",
					Compression: "flate",
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mockReader := bytes.NewReader([]byte(tt.content))
			cfg, err := config.ParseConfig(io.NopCloser(mockReader))
			if tt.expectError {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected.Logging.Level, cfg.Logging.Level)
			assert.Equal(t, tt.expected.Logging.Output, cfg.Logging.Output)
			assert.Equal(t, tt.expected.Runtime.PollInterval, cfg.Runtime.PollInterval)
			assert.Equal(t, tt.expected.Workload.BcryptCost, cfg.Workload.BcryptCost)
			assert.Equal(t, tt.expected.Workload.MaxPayload, cfg.Workload.MaxPayload)
			assert.Equal(t, tt.expected.Workload.Compression, cfg.Workload.Compression)
		})
	}
}

func TestParseConfig_OmittedSectionsAreFilled(t *testing.T) {
	t.Parallel()

	content := "logging:\n  level: debug\n"
	cfg, err := config.ParseConfig(io.NopCloser(bytes.NewReader([]byte(content))))
	require.NoError(t, err)

	require.NotNil(t, cfg.Runtime)
	require.NotNil(t, cfg.Workload)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Zero(t, cfg.Runtime.PollInterval)
}

func TestGetConfig_DefaultConfig(t *testing.T) {
	t.Parallel()

	cfg, err := config.GetConfig("/path/to/nonexistent/file.yaml")
	require.NoError(t, err)

	require.NotNil(t, cfg.Logging)
	require.NotNil(t, cfg.Runtime)
	require.NotNil(t, cfg.Workload)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "cooptask.log", cfg.Logging.Output)
	assert.Equal(t, time.Millisecond, cfg.Runtime.PollInterval)
	assert.Equal(t, 10, cfg.Workload.BcryptCost)
	assert.Equal(t, "4KB", cfg.Workload.MaxPayload)
	assert.Equal(t, "zstd", cfg.Workload.Compression)
}

func TestGetConfig_InvalidFileContent(t *testing.T) {
	t.Parallel()

	content := `{"logging": [this is not valid`
	tmpFile, err := os.CreateTemp("", "config-*.yaml")
	require.NoError(t, err)
	defer os.Remove(tmpFile.Name())

	_, err = tmpFile.WriteString(content)
	require.NoError(t, err)
	require.NoError(t, tmpFile.Close())

	_, err = config.GetConfig(tmpFile.Name())
	assert.Error(t, err)
}
