package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the application's configuration values.
type Config struct {
	HostIP          string   // Host IP for the server
	RESTPort        int      // Port for the REST API
	GinMode         string   // Mode for the Gin framework (e.g., release, debug, test)
	DBHost          string   // Hostname or IP address for the database
	DBPort          int      // Port number for the database
	DBUser          string   // Username for the database
	DBPassword      string   // Password for the database
	DBName          string   // Name of the database
	RedisAddr       string   // Address of the Redis server backing the job queue
	RedisPassword   string   // Password for Redis
	QueueTTLSeconds int      // Lifetime of an idle generation queue
	QueueBatchSize  int      // Jobs popped per queue drain
	JWTSecret       string   // Secret key for JWT signing
	JWTIssuer       string   // Issuer claim for JWTs
	MazeWidth       int      // Default number of maze columns
	MazeHeight      int      // Default number of maze rows
	MaxMazeSize     int      // Largest accepted width or height
	RoomXSize       float64  // Default room spacing along x
	RoomZSize       float64  // Default room spacing along the second grid axis
	EntryPrefabs    []string // Prefabs for the entry room
	ExitPrefabs     []string // Prefabs for the exit room
	CornerPrefabs   []string // Prefabs for corner rooms
	BorderPrefabs   []string // Prefabs for border rooms
	InteriorPrefabs []string // Prefabs for interior rooms
	RoomPrefabs     []string // Undifferentiated room prefabs
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
		HostIP:          getEnvWithDefault("HOST_IP", "0.0.0.0"),
		RESTPort:        getEnvAsIntWithDefault("REST_PORT", 8080),
		GinMode:         getEnvWithDefault("GIN_MODE", "release"),
		DBHost:          getEnvWithDefault("DB_HOST", "localhost"),
		DBPort:          getEnvAsIntWithDefault("DB_PORT", 27017),
		DBUser:          getEnvWithDefault("DB_USER", ""),
		DBPassword:      getEnvWithDefault("DB_PASS", ""),
		DBName:          getEnvWithDefault("DB_NAME", "backrooms"),
		RedisAddr:       getEnvWithDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   getEnvWithDefault("REDIS_PASS", ""),
		QueueTTLSeconds: getEnvAsIntWithDefault("QUEUE_TTL_SECONDS", 300),
		QueueBatchSize:  getEnvAsIntWithDefault("QUEUE_BATCH_SIZE", 4),
		JWTSecret:       getEnvWithDefault("JWT_SECRET", ""),
		JWTIssuer:       getEnvWithDefault("JWT_ISSUER", "backrooms"),
		MazeWidth:       getEnvAsIntWithDefault("MAZE_WIDTH", 10),
		MazeHeight:      getEnvAsIntWithDefault("MAZE_HEIGHT", 10),
		MaxMazeSize:     getEnvAsIntWithDefault("MAX_MAZE_DIMENSION", 64),
		RoomXSize:       getEnvAsFloatWithDefault("ROOM_X_SIZE", 600),
		RoomZSize:       getEnvAsFloatWithDefault("ROOM_Z_SIZE", 600),
		EntryPrefabs:    getEnvAsListWithDefault("ENTRY_PREFABS", []string{"BP_Room_Entry"}),
		ExitPrefabs:     getEnvAsListWithDefault("EXIT_PREFABS", []string{"BP_Room_Exit"}),
		CornerPrefabs:   getEnvAsListWithDefault("CORNER_PREFABS", []string{"BP_Room_Corner"}),
		BorderPrefabs:   getEnvAsListWithDefault("BORDER_PREFABS", []string{"BP_Room_Border"}),
		InteriorPrefabs: getEnvAsListWithDefault("INTERIOR_PREFABS", []string{"BP_Room_Interior"}),
		RoomPrefabs:     getEnvAsListWithDefault("ROOM_PREFABS", nil),
	}
}

// MustJWTSecret returns the JWT secret or logs a fatal error if it is not set.
func (c Config) MustJWTSecret() string {
	if c.JWTSecret == "" {
		return mustGetEnv("JWT_SECRET")
	}
	return c.JWTSecret
}

// mustGetEnv retrieves the value of an environment variable or logs a fatal error if not set.
func mustGetEnv(key string) string {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		log.Fatalf("[APP] [FATAL] Environment variable %s is not set", key)
	}
	return value
}

// getEnvWithDefault retrieves the value of an environment variable or returns a default value if not set.
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsIntWithDefault retrieves an integer environment variable or logs a fatal error if it cannot be parsed.
func getEnvAsIntWithDefault(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Fatalf("[APP] [FATAL] Environment variable %s must be an integer: %v", key, err)
	}
	return value
}

// getEnvAsFloatWithDefault retrieves a float environment variable or logs a fatal error if it cannot be parsed.
func getEnvAsFloatWithDefault(key string, defaultValue float64) float64 {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Fatalf("[APP] [FATAL] Environment variable %s must be a number: %v", key, err)
	}
	return value
}

// getEnvAsListWithDefault splits a comma separated environment variable, dropping blanks.
func getEnvAsListWithDefault(key string, defaultValue []string) []string {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	return splitList(valueStr)
}

func splitList(s string) []string {
	var items []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
