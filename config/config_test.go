package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	assert := assert.New(t)
	dir := t.TempDir()
	env := filepath.Join(dir, ".env")
	assert.Nil(os.WriteFile(env, []byte("HOMES_HTTP_PORT=7100\nHOMES_LATENCY_SCALE=0.5\n"), 0644))
	t.Setenv("HOMES_ENVIRONMENT", "test")
	t.Setenv("PROPERTIES_FIXTURE", "/tmp/properties.json")

	Load(env, filepath.Join(dir, "missing.env"))
	assert.Equal("test", Environment)
	assert.Equal(7100, HTTPListenPort)
	assert.Equal(0.5, LatencyScale)
	assert.Equal("/tmp/properties.json", PropertiesFixture)
	assert.False(HTTPLogRequestBody)

	os.Unsetenv("HOMES_HTTP_PORT")
	os.Unsetenv("HOMES_LATENCY_SCALE")
	t.Setenv("HOMES_HTTP_LOG_BODY", "bogus")
	assert.Panics(func() { Load() })
}
