package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	Name         = "homes.one"
	BuildVersion = "BUILD_VERSION"
)

var (
	Environment        = "development"
	HTTPListenPort     = 7000
	HTTPLogRequestBody = false

	GoogleCloudProject = ""
	BugsnagAPIKey      = ""

	RedisRateLimiterAddress  = ""
	RedisRateLimiterDatabase = 0

	LatencyScale = 1.0

	PropertiesFixture      = ""
	SavedPropertiesFixture = ""

	NotificationRegisterWait = 10 * time.Second
)

// Load reads an optional .env file and overrides the defaults from the
// environment. Unparsable numbers are fatal.
func Load(files ...string) {
	if err := godotenv.Load(files...); err != nil && !os.IsNotExist(err) {
		log.Println("config .env", err)
	}

	Environment = stringEnv("HOMES_ENVIRONMENT", Environment)
	HTTPListenPort = intEnv("HOMES_HTTP_PORT", HTTPListenPort)
	HTTPLogRequestBody = boolEnv("HOMES_HTTP_LOG_BODY", HTTPLogRequestBody)
	GoogleCloudProject = stringEnv("HOMES_GOOGLE_CLOUD_PROJECT", GoogleCloudProject)
	BugsnagAPIKey = stringEnv("HOMES_BUGSNAG_API_KEY", BugsnagAPIKey)
	RedisRateLimiterAddress = stringEnv("HOMES_REDIS_LIMITER_ADDRESS", RedisRateLimiterAddress)
	RedisRateLimiterDatabase = intEnv("HOMES_REDIS_LIMITER_DATABASE", RedisRateLimiterDatabase)
	LatencyScale = floatEnv("HOMES_LATENCY_SCALE", LatencyScale)
	PropertiesFixture = stringEnv("PROPERTIES_FIXTURE", PropertiesFixture)
	SavedPropertiesFixture = stringEnv("SAVED_PROPERTIES_FIXTURE", SavedPropertiesFixture)
}

func stringEnv(key, def string) string {
	if v, found := os.LookupEnv(key); found {
		return v
	}
	return def
}

func intEnv(key string, def int) int {
	v, found := os.LookupEnv(key)
	if !found || v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Panicln(key, v, err)
	}
	return n
}

func floatEnv(key string, def float64) float64 {
	v, found := os.LookupEnv(key)
	if !found || v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < 0 {
		log.Panicln(key, v, err)
	}
	return f
}

func boolEnv(key string, def bool) bool {
	v, found := os.LookupEnv(key)
	if !found || v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Panicln(key, v, err)
	}
	return b
}
