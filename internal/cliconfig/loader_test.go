package cliconfig

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tomcatctl.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
servers:
  prod:
    url: https://tomcat.example.com/manager
    user: admin
    cacert: /etc/ssl/corp-ca.pem
    timeout: 15
  dev:
    url: http://localhost:8080/manager
    user: ace
    insecure: true
`)

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	prod, ok := cfg.Lookup("prod")
	require.True(t, ok)
	assert.Equal(t, "https://tomcat.example.com/manager", prod.URL)
	assert.Equal(t, "admin", prod.User)
	assert.Equal(t, "/etc/ssl/corp-ca.pem", prod.CACert)
	assert.Equal(t, 15*time.Second, prod.TimeoutDuration())

	dev, ok := cfg.Lookup("dev")
	require.True(t, ok)
	assert.True(t, dev.Insecure)
	assert.Zero(t, dev.Timeout)
}

func TestLoadFile_Missing(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Empty(t, cfg.Servers)
}

func TestLoadFile_Malformed(t *testing.T) {
	path := writeConfig(t, "servers: [not a map")
	_, err := LoadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
}

func TestLookup_Unknown(t *testing.T) {
	cfg := &Config{}
	_, ok := cfg.Lookup("missing")
	assert.False(t, ok)
}

func TestPath_EnvOverride(t *testing.T) {
	t.Setenv(EnvConfig, "/tmp/custom.yaml")
	path, err := Path()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom.yaml", path)
}

func TestTimeoutDuration_Fractional(t *testing.T) {
	s := Server{Timeout: 0.5}
	assert.Equal(t, 500*time.Millisecond, s.TimeoutDuration())
}
