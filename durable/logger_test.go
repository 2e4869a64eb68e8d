package durable

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoggerWithoutCloud(t *testing.T) {
	assert := assert.New(t)
	client, err := NewLoggerClient("", false)
	assert.Nil(err)
	assert.Nil(client.Close())

	r := httptest.NewRequest("GET", "/properties", nil)
	r.Header.Set("X-Request-Id", "REQ")
	logger := BuildLogger(client, "http", r)
	assert.True(logger.debug)
	assert.Nil(logger.logger)
	assert.Equal("REQ", logger.requestId)
	logger.FillResponse(200, 12, time.Millisecond)
	assert.Equal(200, logger.status)
	logger.Infof("%s", "ok")
	logger.Debug("debug")

	var nilClient *LoggerClient
	assert.Nil(nilClient.Close())
	assert.True(BuildLogger(nil, "listing", nil).debug)
}
