package config

import (
	"os"
	"strconv"
	"time"
)

// Config is everything main needs to wire the server, read from the environment.
type Config struct {
	Port          string
	GoEnv         string
	MongoURI      string
	MongoDatabase string

	RedisAddress  string
	RedisPassword string
	// IssueDailyLimit caps issues per citizen per 24h; 0 disables the limiter.
	IssueDailyLimit  int
	IssueLimitPrefix string
	RealtimeFanout   bool

	IdentityJWTSecret       string
	FirebaseCredentialsPath string
	SuperAdminSubject       string
	SuperAdminEmail         string

	MeiliURL       string
	MeiliMasterKey string

	CORSOrigin     string
	RequestTimeout time.Duration
}

// Load reads the environment. godotenv.Load should run first so .env values are visible.
func Load() Config {
	return Config{
		Port:          getenv("PORT", "5000"),
		GoEnv:         getenv("GO_ENV", "development"),
		MongoURI:      os.Getenv("MONGODB_URI"),
		MongoDatabase: getenv("MONGODB_DATABASE", "cityfix"),

		RedisAddress:     os.Getenv("REDIS_ADDRESS"),
		RedisPassword:    os.Getenv("REDIS_PASSWORD"),
		IssueDailyLimit:  getenvInt("ISSUE_DAILY_LIMIT", 10),
		IssueLimitPrefix: getenv("REDIS_QUEUE_FOR_ISSUE_LIMIT", "issue_limit"),
		RealtimeFanout:   os.Getenv("REALTIME_REDIS_FANOUT") == "true",

		IdentityJWTSecret:       os.Getenv("IDENTITY_JWT_SECRET"),
		FirebaseCredentialsPath: os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH"),
		SuperAdminSubject:       os.Getenv("SUPER_ADMIN_SUBJECT"),
		SuperAdminEmail:         os.Getenv("SUPER_ADMIN_EMAIL"),

		MeiliURL:       os.Getenv("MEILI_URL"),
		MeiliMasterKey: os.Getenv("MEILI_MASTER_KEY"),

		CORSOrigin:     getenv("CORS_ORIGIN", "*"),
		RequestTimeout: time.Duration(getenvInt("REQUEST_TIMEOUT_SECONDS", 10)) * time.Second,
	}
}

// UseRedis reports whether a Redis address was configured.
func (c Config) UseRedis() bool { return c.RedisAddress != "" }

func (c Config) IsProduction() bool { return c.GoEnv == "production" }

func getenv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getenvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
