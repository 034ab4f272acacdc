package configs

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

func init() {
	// .env is optional; real deployments inject the environment directly.
	_ = godotenv.Load()
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func EnvMongoURI() string {
	return getEnv("MONGOURI", "mongodb://localhost:27017")
}

func EnvDBName() string {
	return getEnv("DB_NAME", "tienda-plantas")
}

func EnvPort() string {
	return getEnv("PORT", "3000")
}

func EnvAppEnv() string {
	return getEnv("APP_ENV", "development")
}

func EnvAdminUsername() string {
	return os.Getenv("ADMIN_USERNAME")
}

func EnvAdminPassword() string {
	return os.Getenv("ADMIN_PASSWORD")
}

func EnvSessionTTLHours() int {
	n, err := strconv.Atoi(getEnv("SESSION_TTL_HOURS", "24"))
	if err != nil || n <= 0 {
		return 24
	}
	return n
}

func EnvCloudinaryCloudName() string {
	return os.Getenv("CLOUDINARY_CLOUD_NAME")
}

func EnvCloudinaryAPIKey() string {
	return os.Getenv("CLOUDINARY_API_KEY")
}

func EnvCloudinaryAPISecret() string {
	return os.Getenv("CLOUDINARY_API_SECRET")
}
