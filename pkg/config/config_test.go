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
	assert.Equal(t, "http://localhost:8080", cfg.WebServiceURL)
	assert.NotEmpty(t, cfg.ConnectorID)
	assert.Empty(t, cfg.NamespaceDelimiterRewrite)
	assert.Equal(t, uint64(3), cfg.MaxRetries)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pulsarsql.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
webServiceURL: http://broker:8080
connectorID: pulsar-prod
namespaceDelimiterRewrite: "&"
httpTimeout: 10s
maxRetries: 5
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://broker:8080", cfg.WebServiceURL)
	assert.Equal(t, "pulsar-prod", cfg.ConnectorID)
	assert.Equal(t, "&", cfg.NamespaceDelimiterRewrite)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, uint64(5), cfg.MaxRetries)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", cfg.WebServiceURL)
}
