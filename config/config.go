package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	StoreBackendFile     = "file"
	StoreBackendPostgres = "postgres"
)

type Config struct {
	ServerAddr   string
	StoreBackend string
	FileStore    FileStoreConfig
	Database     DatabaseConfig
	Redis        RedisConfig
}

type FileStoreConfig struct {
	ShowsPath   string
	TicketsPath string
	UsersPath   string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	DB       int
}

var AppConfig *Config

func LoadConfig() *Config {
	// .env 不存在時沿用環境變數即可
	_ = godotenv.Load()

	AppConfig = &Config{
		ServerAddr:   getEnv("SERVER_ADDR", ":8080"),
		StoreBackend: getEnv("STORE_BACKEND", StoreBackendFile),
		FileStore:    GetFileStoreConfig(),
		Database:     GetDatabaseConfig(),
		Redis:        GetRedisConfig(),
	}

	return AppConfig
}

func GetFileStoreConfig() FileStoreConfig {
	dataDir := getEnv("DATA_DIR", "data")
	return FileStoreConfig{
		ShowsPath:   filepath.Join(dataDir, getEnv("SHOWS_FILE", "shows.txt")),
		TicketsPath: filepath.Join(dataDir, getEnv("TICKETS_FILE", "tickets.txt")),
		UsersPath:   filepath.Join(dataDir, getEnv("USERS_FILE", "users.txt")),
	}
}

func GetDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", "postgres"),
		DBName:   getEnv("DB_NAME", "postgres"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}
}

func GetRedisConfig() RedisConfig {
	db, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		panic(err)
	}

	return RedisConfig{
		Enabled:  getEnv("REDIS_ENABLED", "false") == "true",
		Host:     getEnv("REDIS_HOST", "localhost"),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       db,
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
