package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// Store backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

type Config struct {
	ServerPort int
	Store      StoreConfig

	// CORSOrigins is the list of allowed origins. Defaults to "*"
	// (development posture).
	CORSOrigins []string

	// BcryptCost is the work factor for password hashing.
	BcryptCost int
}

type StoreConfig struct {
	// Backend selects the record store: "file" (JSON-array files)
	// or "sqlite".
	Backend string

	// DataDir holds the collection files, the schema document and
	// the SQLite database.
	DataDir string

	// SchemaPath is the JSON Schema consumed by the validation gate.
	SchemaPath string

	// SQLitePath is the database file for the sqlite backend.
	SQLitePath string
}

func LoadConfig() Config {
	if os.Getenv("ENV") == "dev" {
		godotenv.Load()
	}

	dataDir := getEnv("DATA_DIR", "data")

	storeConfig := StoreConfig{
		Backend:    getEnv("STORE_BACKEND", BackendFile),
		DataDir:    dataDir,
		SchemaPath: getEnv("SCHEMA_PATH", filepath.Join(dataDir, "site-config.schema.json")),
		SQLitePath: getEnv("SQLITE_PATH", filepath.Join(dataDir, "siteforge.db")),
	}

	return Config{
		ServerPort:  getEnvInt("SERVER_PORT", 8080),
		Store:       storeConfig,
		CORSOrigins: getEnvList("CORS_ORIGINS", []string{"*"}),
		BcryptCost:  getEnvInt("BCRYPT_COST", 10),
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if valueStr, exists := os.LookupEnv(key); exists {
		var value int
		fmt.Sscanf(valueStr, "%d", &value)
		return value
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	var values []string
	for _, part := range strings.Split(valueStr, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	if len(values) == 0 {
		return defaultValue
	}
	return values
}
