package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "127.0.0.1", cfg.OSC.Host)
	assert.Equal(t, 11000, cfg.OSC.SendPort)
	assert.Equal(t, 11001, cfg.OSC.ReceivePort)
	assert.Equal(t, 5*time.Second, cfg.OSC.Timeout)
	require.NoError(t, cfg.Validate())
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := `
osc:
  host: 192.168.1.20
  send_port: 9000
  receive_port: 9001
  timeout: 2s
logging:
  verbose: true
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "192.168.1.20", cfg.OSC.Host)
	assert.Equal(t, 9000, cfg.OSC.SendPort)
	assert.Equal(t, 9001, cfg.OSC.ReceivePort)
	assert.Equal(t, 2*time.Second, cfg.OSC.Timeout)
	assert.True(t, cfg.Logging.Verbose)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("ABLETON_OSC_HOST", "10.0.0.5")
	t.Setenv("ABLETON_OSC_SEND_PORT", "12000")
	t.Setenv("ABLETON_OSC_RECEIVE_PORT", "12001")
	t.Setenv("ABLETON_OSC_TIMEOUT", "750ms")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.5", cfg.OSC.Host)
	assert.Equal(t, 12000, cfg.OSC.SendPort)
	assert.Equal(t, 12001, cfg.OSC.ReceivePort)
	assert.Equal(t, 750*time.Millisecond, cfg.OSC.Timeout)
}

func TestEnvOverrideBadPort(t *testing.T) {
	t.Setenv("ABLETON_OSC_SEND_PORT", "not-a-port")
	_, err := Load("")
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty host", func(c *Config) { c.OSC.Host = "" }},
		{"send port zero", func(c *Config) { c.OSC.SendPort = 0 }},
		{"receive port too large", func(c *Config) { c.OSC.ReceivePort = 70000 }},
		{"same ports", func(c *Config) { c.OSC.ReceivePort = c.OSC.SendPort }},
		{"zero timeout", func(c *Config) { c.OSC.Timeout = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
