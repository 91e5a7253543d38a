package config

import (
	"errors"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	StorageMemory = "memory"
	StorageMongo  = "mongo"
)

// Config holds the application's configuration values.
type Config struct {
	HostIP           string // Host IP for the server
	RESTPort         int    // Port for the REST API
	GinMode          string // Mode for the Gin framework (e.g., release, debug, test)
	Storage          string // Maze repository backend: memory or mongo
	DBHost           string // Hostname or IP address for the database
	DBPort           int    // Port number for the database
	DBUser           string // Username for the database
	DBPassword       string // Password for the database
	DBName           string // Name of the database
	RedisAddr        string // Redis address for the maze cache; empty disables caching
	RedisPassword    string // Password for Redis
	CacheTTLSeconds  int    // Lifetime of cached mazes
	JWTSecret        string // Secret key for JWT signing
	JWTIssuer        string // Issuer claim for JWTs
	MaxMazeDimension int    // Largest width or height accepted by the service
	LogLevel         string // debug, info, warn or error
}

// Envs holds the application's configuration loaded from environment variables.
var Envs = initConfig()

// initConfig initializes and returns the application configuration.
// It loads environment variables from a .env file.
func initConfig() Config {
	// Load .env file if available
	if err := godotenv.Load(); err != nil {
		log.Printf("[APP] [INFO] .env file not found or could not be loaded: %v", err)
	}

	return Config{
		HostIP:           getEnvWithDefault("HOST_IP", "0.0.0.0"),
		RESTPort:         getEnvAsIntWithDefault("REST_PORT", 8080),
		GinMode:          getEnvWithDefault("GIN_MODE", "release"),
		Storage:          getEnvWithDefault("STORAGE", StorageMemory),
		DBHost:           getEnvWithDefault("DB_HOST", "localhost"),
		DBPort:           getEnvAsIntWithDefault("DB_PORT", 27017),
		DBUser:           getEnvWithDefault("DB_USER", ""),
		DBPassword:       getEnvWithDefault("DB_PASS", ""),
		DBName:           getEnvWithDefault("DB_NAME", "vinom_maze"),
		RedisAddr:        getEnvWithDefault("REDIS_ADDR", ""),
		RedisPassword:    getEnvWithDefault("REDIS_PASS", ""),
		CacheTTLSeconds:  getEnvAsIntWithDefault("CACHE_TTL", 3600),
		JWTSecret:        getEnvWithDefault("JWT_SECRET", ""),
		JWTIssuer:        getEnvWithDefault("JWT_ISSUER", "vinom-maze"),
		MaxMazeDimension: getEnvAsIntWithDefault("MAX_MAZE_DIMENSION", 200),
		LogLevel:         getEnvWithDefault("LOG_LEVEL", "info"),
	}
}

// Validate checks the values the HTTP server cannot run without.
func (c Config) Validate() error {
	var errs []error
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is not set"))
	}
	if c.RESTPort <= 0 {
		errs = append(errs, errors.New("REST_PORT must be positive"))
	}
	if c.MaxMazeDimension <= 0 {
		errs = append(errs, errors.New("MAX_MAZE_DIMENSION must be positive"))
	}
	switch c.GinMode {
	case "", "debug", "release", "test":
	default:
		errs = append(errs, errors.New("GIN_MODE must be debug, release or test"))
	}
	if c.Storage != StorageMemory && c.Storage != StorageMongo {
		errs = append(errs, errors.New("STORAGE must be memory or mongo"))
	}
	return errors.Join(errs...)
}

// getEnvWithDefault retrieves the value of an environment variable or returns a default value if not set.
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsIntWithDefault retrieves the value of an environment variable as an integer.
// A value that cannot be parsed is logged and replaced by the default.
func getEnvAsIntWithDefault(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("[APP] [WARNING] Environment variable %s must be an integer: %v", key, err)
		return defaultValue
	}
	return value
}
