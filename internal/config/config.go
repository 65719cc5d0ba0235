package config

import (
	"errors"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"taskly/internal/logger"

	"github.com/joho/godotenv"
)

const defaultDBHost = "cluster0.k9pcb.mongodb.net"

type Config struct {
	AppPort string

	MongoURI       string
	DBName         string
	CollectionName string
	ConnectTimeout time.Duration
	OpTimeout      time.Duration

	LogLevel string
	LogJSON  bool

	// Rate limiting is disabled when RedisAddr is empty
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	APIRateLimit    int
	APIRateWindow   time.Duration
	CORSAllowedOrig []string
}

// Load reads .env (if present) and the process environment. Missing
// database credentials are fatal.
func Load() *Config {
	_ = godotenv.Load()

	cfg, err := Parse(os.Getenv)
	if err != nil {
		logger.Fatal("invalid configuration", "error", err)
	}
	return cfg
}

// Parse builds a Config from getenv.
func Parse(getenv func(string) string) (*Config, error) {
	mongoURI, err := mongoURI(getenv)
	if err != nil {
		return nil, err
	}

	port := getenv("PORT")
	if port == "" {
		port = "3000"
	}

	dbName := getenv("DB_NAME")
	if dbName == "" {
		dbName = "taskly"
	}

	collection := getenv("DB_COLLECTION")
	if collection == "" {
		collection = "tasks"
	}

	redisDB := 0
	if v := getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			redisDB = n
		}
	}

	var origins []string
	if v := getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	}

	return &Config{
		AppPort:         port,
		MongoURI:        mongoURI,
		DBName:          dbName,
		CollectionName:  collection,
		ConnectTimeout:  seconds(getenv("MONGO_CONNECT_TIMEOUT"), 10),
		OpTimeout:       seconds(getenv("MONGO_OP_TIMEOUT"), 10),
		LogLevel:        getenv("LOG_LEVEL"),
		LogJSON:         strings.EqualFold(getenv("LOG_FORMAT"), "json"),
		RedisAddr:       getenv("REDIS_ADDR"),
		RedisPassword:   getenv("REDIS_PASSWORD"),
		RedisDB:         redisDB,
		APIRateLimit:    positiveInt(getenv("API_RATE_LIMIT"), 60),
		APIRateWindow:   seconds(getenv("API_RATE_WINDOW_SECONDS"), 60),
		CORSAllowedOrig: origins,
	}, nil
}

// mongoURI prefers MONGODB_URI and otherwise builds an Atlas SRV URI from
// DB_USER, DB_PASSWORD and DB_HOST.
func mongoURI(getenv func(string) string) (string, error) {
	if uri := getenv("MONGODB_URI"); uri != "" {
		return uri, nil
	}

	user := getenv("DB_USER")
	password := getenv("DB_PASSWORD")
	if user == "" || password == "" {
		return "", errors.New("MONGODB_URI or DB_USER and DB_PASSWORD must be set")
	}

	host := getenv("DB_HOST")
	if host == "" {
		host = defaultDBHost
	}

	u := url.URL{
		Scheme:   "mongodb+srv",
		User:     url.UserPassword(user, password),
		Host:     host,
		Path:     "/",
		RawQuery: "retryWrites=true&w=majority&appName=Cluster0",
	}
	return u.String(), nil
}

func positiveInt(v string, def int) int {
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func seconds(v string, def int) time.Duration {
	return time.Duration(positiveInt(v, def)) * time.Second
}
