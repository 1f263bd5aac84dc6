package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// Store drivers select the persistence surface behind the datastore.
const (
	StoreMemory = "memory"
	StoreFS     = "fs"
	StoreSQL    = "sql"
)

type Config struct {
	Mode     Mode
	HTTPAddr string

	StoreDriver string // memory|fs|sql
	StorePath   string // fs base directory

	DBDriver string // sqlite|postgres
	DBDSN    string

	AuthHMACSecret string
	TokenTTL       time.Duration
	AuthRatePerSec float64
	AuthRateBurst  int

	CORSOrigins []string

	LogLevel string
	LogFile  string // empty: console only

	CourseCapacity         int
	EnforceSessionCapacity bool
	UniqueSubmissions      bool

	EventLog bool // mirror change events into event_log (needs a SQL database)
	Banner   bool
}

// Load reads path into the environment when it exists, without overriding
// variables already set, and then calls FromEnv.
func Load(path string) (Config, error) {
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err != nil {
				return Config{}, err
			}
		}
	}
	return FromEnv(), nil
}

func FromEnv() Config {
	mode := Mode(os.Getenv("MODE"))
	if mode == "" {
		mode = ModeOffline
	}
	defOrigins := "http://localhost:3000,http://localhost:9002"
	if mode == ModeOnline {
		defOrigins = "https://howacademia.example.com"
	}
	return Config{
		Mode:     mode,
		HTTPAddr: envOr("HTTP_ADDR", ":8080"),

		StoreDriver: envOr("STORE_DRIVER", StoreFS),
		StorePath:   envOr("STORE_PATH", "./data"),

		DBDriver: envOr("DB_DRIVER", "sqlite"),
		DBDSN:    envOr("DB_DSN", ""),

		AuthHMACSecret: envOr("AUTH_HMAC_SECRET", "supersecret-dev-key"),
		TokenTTL:       envDuration("TOKEN_TTL", 8*time.Hour),
		AuthRatePerSec: envFloat("AUTH_RATE_PER_SEC", 5),
		AuthRateBurst:  envInt("AUTH_RATE_BURST", 10),

		CORSOrigins: csvOr("CORS_ORIGINS", defOrigins),

		LogLevel: envOr("LOG_LEVEL", "info"),
		LogFile:  os.Getenv("LOG_FILE"),

		CourseCapacity:         envInt("COURSE_CAPACITY", 0),
		EnforceSessionCapacity: envBool("ENFORCE_SESSION_CAPACITY", false),
		UniqueSubmissions:      envBool("UNIQUE_SUBMISSIONS", false),

		EventLog: envBool("EVENT_LOG", false),
		Banner:   envBool("BANNER", mode == ModeOffline),
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func envBool(k string, def bool) bool {
	switch os.Getenv(k) {
	case "1", "true", "TRUE", "yes", "YES":
		return true
	case "0", "false", "FALSE", "no", "NO":
		return false
	default:
		return def
	}
}

func envInt(k string, def int) int {
	n, err := strconv.Atoi(os.Getenv(k))
	if err != nil {
		return def
	}
	return n
}

func envFloat(k string, def float64) float64 {
	f, err := strconv.ParseFloat(os.Getenv(k), 64)
	if err != nil {
		return def
	}
	return f
}

func envDuration(k string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(k))
	if err != nil {
		return def
	}
	return d
}

func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
