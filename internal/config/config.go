package config

import (
	"os"
	"strconv"
	"strings"

	"adclick_webapp/internal/logger"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort       string
	DatabaseURL   string
	JWTSecret     string
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// admin user ids, comma separated in env
	AdminUserIDs []int64

	// Click flow
	MinDwellSeconds int

	// Rate limits
	APIRateLimit           int
	APIRateWindowSeconds   int
	AuthRateLimit          int
	AuthRateWindowSeconds  int
	ClickRateLimit         int
	ClickRateWindowSeconds int
}

// Load reads configuration from the environment (.env honored). Missing
// secrets are fatal; tunables fall back to defaults.
func Load() *Config {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		logger.Fatal("DATABASE_URL is not set")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logger.Fatal("JWT_SECRET is not set")
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	var adminIDs []int64
	if s := os.Getenv("ADMIN_USER_IDS"); s != "" {
		for _, idStr := range strings.Split(s, ",") {
			idStr = strings.TrimSpace(idStr)
			if id, err := strconv.ParseInt(idStr, 10, 64); err == nil {
				adminIDs = append(adminIDs, id)
			}
		}
	}

	redisDB := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			redisDB = n
		}
	}

	return &Config{
		AppPort:       port,
		DatabaseURL:   dbURL,
		JWTSecret:     jwtSecret,
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       redisDB,
		AdminUserIDs:  adminIDs,

		MinDwellSeconds: envInt("MIN_DWELL_SECONDS", 5),

		APIRateLimit:           envInt("API_RATE_LIMIT", 60),
		APIRateWindowSeconds:   envInt("API_RATE_WINDOW_SECONDS", 60),
		AuthRateLimit:          envInt("AUTH_RATE_LIMIT", 5),
		AuthRateWindowSeconds:  envInt("AUTH_RATE_WINDOW_SECONDS", 60),
		ClickRateLimit:         envInt("CLICK_RATE_LIMIT", 30),
		ClickRateWindowSeconds: envInt("CLICK_RATE_WINDOW_SECONDS", 60),
	}
}

func envInt(name string, def int) int {
	if v := os.Getenv(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}
