package config

import (
	"sync"
	"time"

	"coachfit_server/structs"
)

var (
	configInstance *structs.Config
	configOnce     sync.Once
)

func GetConfig() *structs.Config {
	configOnce.Do(func() {
		configInstance = &structs.Config{
			Server: &structs.ServerConfig{
				AppName:        getEnvAsString("APP_NAME", "CoachFit_no_env"),
				Environment:    getEnvAsString("APP_ENV", "development"),
				Port:           getEnvAsString("APP_PORT", ":8084"),
				ReadTimeout:    getEnvAsSeconds("SERVER_READ_TIME_OUT", 15*time.Second),
				WriteTimeout:   getEnvAsSeconds("SERVER_WRITE_TIME_OUT", 15*time.Second),
				IdleTimeout:    getEnvAsSeconds("SERVER_IDLE_TIME_OUT", 60*time.Second),
				MaxHeaderBytes: getEnvAsInt("SERVER_MAX_HEADER_BYTES", 1<<20), // 1 MB
			},
			Cors: &structs.CorsConfig{
				AllowedOrigins:   getEnvAsSlice("CORS_ALLOW_ORIGINS", []string{"http://localhost:3000"}),
				AllowedMethods:   getEnvAsSlice("CORS_ALLOW_METHODS", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
				AllowedHeaders:   getEnvAsSlice("CORS_ALLOW_HEADERS", []string{"Origin", "Content-Type", "Accept", "Authorization"}),
				ExposedHeaders:   getEnvAsSlice("CORS_EXPOSED_HEADERS", []string{"Content-Length"}),
				AllowCredentials: getEnvAsBool("CORS_ALLOW_CREDENTIALS", true),
				MaxAge:           getEnvAsInt("CORS_MAX_AGE", 300),
			},
			Database: &structs.DatabaseConfig{
				Host:         getEnvAsString("DB_HOST", "localhost"),
				Port:         getEnvAsInt("DB_PORT", 5432),
				User:         getEnvAsString("DB_USER", "postgres"),
				Password:     getEnvAsString("DB_PASSWORD", "password"),
				Name:         getEnvAsString("DB_NAME", "coachfit_db"),
				MaxConns:     getEnvAsInt("DB_MAX_CONNS", 10),
				MinConns:     getEnvAsInt("DB_MIN_CONNS", 2),
				MaxLifetime:  getEnvAsSeconds("DB_MAX_LIFETIME", 30*time.Minute),
				MaxIdleTime:  getEnvAsSeconds("DB_MAX_IDLE_TIME", 5*time.Minute),
				ReadTimeout:  getEnvAsSeconds("DB_READ_TIMEOUT", 5*time.Second),
				WriteTimeout: getEnvAsSeconds("DB_WRITE_TIMEOUT", 5*time.Second),
			},
			Cache: &structs.CacheConfig{
				Address:         getEnvAsString("REDIS_ADDRESS", "localhost:6379"),
				Username:        getEnvAsString("REDIS_USERNAME", ""),
				Password:        getEnvAsString("REDIS_PASSWORD", ""),
				DB:              getEnvAsInt("REDIS_DB", 0),
				PoolSize:        getEnvAsInt("REDIS_POOL_SIZE", 10),
				MinIdleConns:    getEnvAsInt("REDIS_MIN_IDLE_CONNS", 2),
				MaxIdleConns:    getEnvAsInt("REDIS_MAX_IDLE_CONNS", 5),
				PoolTimeout:     getEnvAsSeconds("REDIS_POOL_TIMEOUT", 30*time.Second),
				IdleTimeout:     getEnvAsSeconds("REDIS_IDLE_TIMEOUT", 5*time.Minute),
				DialTimeout:     getEnvAsSeconds("REDIS_DIAL_TIMEOUT", 5*time.Second),
				ReadTimeout:     getEnvAsSeconds("REDIS_READ_TIMEOUT", 3*time.Second),
				WriteTimeout:    getEnvAsSeconds("REDIS_WRITE_TIMEOUT", 3*time.Second),
				MaxRetries:      getEnvAsInt("REDIS_MAX_RETRIES", 3),
				MinRetryBackoff: getEnvAsSeconds("REDIS_MIN_RETRY_BACKOFF", 1*time.Second),
				MaxRetryBackoff: getEnvAsSeconds("REDIS_MAX_RETRY_BACKOFF", 3*time.Second),
				ProductViewTTL:  getEnvAsSeconds("CACHE_PRODUCT_VIEW_TTL", 5*time.Minute),
			},
			Auth: &structs.AuthConfig{
				AccessTokenSecret: getEnvAsString("AUTH_ACCESS_TOKEN_SECRET", "default_access_secret"),
				AccessTokenExpiry: getEnvAsSeconds("AUTH_ACCESS_TOKEN_EXPIRY", 15*time.Minute),
			},
			Storage: &structs.StorageConfig{
				Endpoint:            getEnvAsString("OSS_ENDPOINT", "oss-eu-central-1.aliyuncs.com"),
				AccessKeyID:         getEnvAsString("OSS_ACCESS_KEY_ID", ""),
				AccessKeySecret:     getEnvAsString("OSS_ACCESS_KEY_SECRET", ""),
				Bucket:              getEnvAsString("OSS_BUCKET", "coachfit-media"),
				PublicBaseURL:       getEnvAsString("OSS_PUBLIC_BASE_URL", ""),
				PlaceholderImageURL: getEnvAsString("OSS_PLACEHOLDER_IMAGE_URL", "https://coachfit-media.oss-eu-central-1.aliyuncs.com/defaults/product-placeholder.webp"),
			},
			Email: &structs.EmailConfig{
				ApiKey: getEnvAsString("RESEND_API_KEY", ""),
				From:   getEnvAsString("EMAIL_FROM", "CoachFit <no-reply@coachfit.app>"),
			},
			RateLimit: &structs.RateLimitConfig{
				Enabled:       getEnvAsBool("RATE_LIMIT_ENABLED", true),
				AuthLimit:     getEnvAsInt("RATE_LIMIT_AUTH_LIMIT", 10),
				AuthWindow:    getEnvAsSeconds("RATE_LIMIT_AUTH_WINDOW", 1*time.Minute),
				WriteLimit:    getEnvAsInt("RATE_LIMIT_WRITE_LIMIT", 30),
				WriteWindow:   getEnvAsSeconds("RATE_LIMIT_WRITE_WINDOW", 1*time.Minute),
				GeneralLimit:  getEnvAsInt("RATE_LIMIT_GENERAL_LIMIT", 120),
				GeneralWindow: getEnvAsSeconds("RATE_LIMIT_GENERAL_WINDOW", 1*time.Minute),
			},
		}
	})
	return configInstance
}

func GetLogLevel() string {
	if GetConfig().Server.Environment == "production" {
		return "info"
	}
	return "debug"
}

func IsProduction() bool {
	return GetConfig().Server.Environment == "production"
}
