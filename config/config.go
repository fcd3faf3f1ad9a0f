package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// This function will Load the ENVIORNMENT VARIABLES from .env if GO_ENV variable is not set
func LoadENV() error {
	goEnv := os.Getenv("GO_ENV")

	if goEnv == "" || goEnv == "development" {
		err := godotenv.Load()
		if err != nil {
			return err
		}
	}

	return nil
}

type EnviornmentVariable struct {
	// All variables
	GO_ENV       string
	DB_USER_NAME string
	DB_PASSWORD  string
	DB_NAME      string
	DB_HOST      string
	DB_PORT      string
	DB_SSL_MODE  string
	DB_DRIVER    string // pgx (default) or pq
	PORT         int
	// JWT Configuration
	JWT_SECRET string
	JWT_ISSUER string
	// Redis Configuration
	REDIS_URL      string
	REDIS_PASSWORD string
	REDIS_DB       string
	// Object storage (any S3-compatible endpoint)
	STORAGE_ACCESS_KEY string
	STORAGE_SECRET_KEY string
	STORAGE_BUCKET     string
	STORAGE_REGION     string
	STORAGE_ENDPOINT   string
	// HTTP
	ALLOWED_ORIGINS    string
	RATE_LIMIT_MAX     int
	RATE_LIMIT_WINDOW  time.Duration
	MAX_UPLOAD_SIZE_MB int
}

func Get() (*EnviornmentVariable, error) {

	port, err := strconv.Atoi(os.Getenv("PORT"))
	if err != nil {
		port = 8080
	}

	// Database defaults
	dbHost := os.Getenv("DB_HOST")
	if dbHost == "" {
		dbHost = "localhost"
	}

	dbPort := os.Getenv("DB_PORT")
	if dbPort == "" {
		dbPort = "5432"
	}

	dbDriver := strings.ToLower(os.Getenv("DB_DRIVER"))
	if dbDriver != "pq" {
		dbDriver = "pgx"
	}

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		allowedOrigins = "http://localhost:3000"
	}

	storageRegion := os.Getenv("STORAGE_REGION")
	if storageRegion == "" {
		storageRegion = "us-east-1"
	}

	envVariables := &EnviornmentVariable{
		GO_ENV:       os.Getenv("GO_ENV"),
		DB_USER_NAME: os.Getenv("DB_USER_NAME"),
		DB_PASSWORD:  os.Getenv("DB_PASSWORD"),
		DB_NAME:      os.Getenv("DB_NAME"),
		DB_HOST:      dbHost,
		DB_PORT:      dbPort,
		DB_SSL_MODE:  os.Getenv("DB_SSL_MODE"),
		DB_DRIVER:    dbDriver,
		PORT:         port,
		// JWT
		JWT_SECRET: os.Getenv("JWT_SECRET"),
		JWT_ISSUER: os.Getenv("JWT_ISSUER"),
		// Redis
		REDIS_URL:      os.Getenv("REDIS_URL"),
		REDIS_PASSWORD: os.Getenv("REDIS_PASSWORD"),
		REDIS_DB:       os.Getenv("REDIS_DB"),
		// Object storage
		STORAGE_ACCESS_KEY: os.Getenv("STORAGE_ACCESS_KEY"),
		STORAGE_SECRET_KEY: os.Getenv("STORAGE_SECRET_KEY"),
		STORAGE_BUCKET:     os.Getenv("STORAGE_BUCKET"),
		STORAGE_REGION:     storageRegion,
		STORAGE_ENDPOINT:   os.Getenv("STORAGE_ENDPOINT"),
		// HTTP
		ALLOWED_ORIGINS:    allowedOrigins,
		RATE_LIMIT_MAX:     intOr("RATE_LIMIT_MAX", 100),
		RATE_LIMIT_WINDOW:  time.Duration(intOr("RATE_LIMIT_WINDOW_SECONDS", 60)) * time.Second,
		MAX_UPLOAD_SIZE_MB: intOr("MAX_UPLOAD_SIZE_MB", 20),
	}

	return envVariables, nil
}

// DSN builds the PostgreSQL connection string understood by both pgx and lib/pq.
func (e *EnviornmentVariable) DSN() string {
	sslMode := e.DB_SSL_MODE
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		e.DB_HOST, e.DB_PORT, e.DB_USER_NAME, e.DB_PASSWORD, e.DB_NAME, sslMode)
}

// StorageConfigured reports whether attachment uploads can be enabled.
func (e *EnviornmentVariable) StorageConfigured() bool {
	return e.STORAGE_ACCESS_KEY != "" && e.STORAGE_SECRET_KEY != "" && e.STORAGE_BUCKET != ""
}

// Origins returns ALLOWED_ORIGINS as a list
func (e *EnviornmentVariable) Origins() []string {
	var out []string
	for _, o := range strings.Split(e.ALLOWED_ORIGINS, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func intOr(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
