package durable

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"cloud.google.com/go/logging"
)

type LoggerClient struct {
	client *logging.Client
	debug  bool
}

// NewLoggerClient writes to Cloud Logging when project is set. Without a
// project, or in debug mode, entries are also printed locally.
func NewLoggerClient(project string, debug bool) (*LoggerClient, error) {
	lc := &LoggerClient{debug: debug}
	if project == "" {
		return lc, nil
	}
	client, err := logging.NewClient(context.Background(), project)
	if err != nil {
		return nil, err
	}
	lc.client = client
	return lc, nil
}

func (lc *LoggerClient) Close() error {
	if lc == nil || lc.client == nil {
		return nil
	}
	return lc.client.Close()
}

type Logger struct {
	logger    *logging.Logger
	debug     bool
	service   string
	requestId string
	request   *http.Request
	status    int
	size      int64
	latency   time.Duration
}

func BuildLogger(client *LoggerClient, service string, r *http.Request) *Logger {
	logger := &Logger{service: service, request: r, debug: true}
	if r != nil {
		logger.requestId = r.Header.Get("X-Request-Id")
	}
	if client != nil {
		logger.debug = client.debug || client.client == nil
		if client.client != nil {
			logger.logger = client.client.Logger(service)
		}
	}
	return logger
}

func (logger *Logger) FillResponse(status int, size int64, latency time.Duration) {
	logger.status = status
	logger.size = size
	logger.latency = latency
}

func (logger *Logger) Debug(v ...interface{}) {
	if logger.debug {
		logger.write(logging.Debug, fmt.Sprint(v...))
	}
}

func (logger *Logger) Debugf(format string, v ...interface{}) {
	if logger.debug {
		logger.write(logging.Debug, fmt.Sprintf(format, v...))
	}
}

func (logger *Logger) Info(v ...interface{}) {
	logger.write(logging.Info, fmt.Sprint(v...))
}

func (logger *Logger) Infof(format string, v ...interface{}) {
	logger.write(logging.Info, fmt.Sprintf(format, v...))
}

func (logger *Logger) Error(v ...interface{}) {
	logger.write(logging.Error, fmt.Sprint(v...))
}

func (logger *Logger) Errorf(format string, v ...interface{}) {
	logger.write(logging.Error, fmt.Sprintf(format, v...))
}

func (logger *Logger) write(severity logging.Severity, payload string) {
	if logger.debug {
		log.Printf("[%s] %s %s %s\n", severity, logger.service, logger.requestId, payload)
	}
	if logger.logger == nil {
		return
	}

	entry := logging.Entry{
		Severity: severity,
		Payload:  payload,
		Labels:   map[string]string{"service": logger.service},
	}
	if logger.requestId != "" {
		entry.Labels["request_id"] = logger.requestId
	}
	if logger.request != nil && logger.status > 0 {
		entry.HTTPRequest = &logging.HTTPRequest{
			Request:      logger.request,
			Status:       logger.status,
			ResponseSize: logger.size,
			Latency:      logger.latency,
		}
	}
	logger.logger.Log(entry)
}
