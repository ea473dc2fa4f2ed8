package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server ServerConfig
	Mongo  MongoConfig
	Auth   AuthConfig
	Redis  RedisConfig
	Kafka  KafkaConfig
}

type ServerConfig struct {
	Address      string
	WriteTimeout time.Duration
	ReadTimeout  time.Duration
	IdleTimeout  time.Duration
}

type MongoConfig struct {
	URI      string
	Database string
}

type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

// RedisConfig is optional; an empty Addr disables the flight cache.
type RedisConfig struct {
	Addr       string
	Password   string
	DB         int
	FlightsTTL time.Duration
}

// KafkaConfig is optional; no brokers disables booking events.
type KafkaConfig struct {
	Brokers      []string
	BookingTopic string
}

func (r RedisConfig) Enabled() bool {
	return r.Addr != ""
}

func (k KafkaConfig) Enabled() bool {
	return len(k.Brokers) > 0
}

func NewConfig() (*Config, error) {
	serverCfg, err := newServerConfig()
	if err != nil {
		return nil, fmt.Errorf("server config error: %w", err)
	}

	authCfg, err := newAuthConfig()
	if err != nil {
		return nil, fmt.Errorf("auth config error: %w", err)
	}

	redisCfg, err := newRedisConfig()
	if err != nil {
		return nil, fmt.Errorf("redis config error: %w", err)
	}

	return &Config{
		Server: serverCfg,
		Mongo: MongoConfig{
			URI:      getEnvOrDefault("MONGO_URI", "mongodb://localhost:27017"),
			Database: getEnvOrDefault("MONGO_DB", "seatwise"),
		},
		Auth:  authCfg,
		Redis: redisCfg,
		Kafka: newKafkaConfig(),
	}, nil
}

func newServerConfig() (ServerConfig, error) {
	writeTimeout, err := getDurationFromEnv("SERVER_WRITE_TIMEOUT", "15s")
	if err != nil {
		return ServerConfig{}, fmt.Errorf("write timeout parse error: %w", err)
	}

	readTimeout, err := getDurationFromEnv("SERVER_READ_TIMEOUT", "15s")
	if err != nil {
		return ServerConfig{}, fmt.Errorf("read timeout parse error: %w", err)
	}

	idleTimeout, err := getDurationFromEnv("SERVER_IDLE_TIMEOUT", "30s")
	if err != nil {
		return ServerConfig{}, fmt.Errorf("idle timeout parse error: %w", err)
	}

	return ServerConfig{
		Address:      getEnvOrDefault("SERVER_ADDRESS", ":5000"),
		WriteTimeout: writeTimeout,
		ReadTimeout:  readTimeout,
		IdleTimeout:  idleTimeout,
	}, nil
}

func newAuthConfig() (AuthConfig, error) {
	tokenTTL, err := getDurationFromEnv("TOKEN_TTL", "1h")
	if err != nil {
		return AuthConfig{}, fmt.Errorf("token ttl parse error: %w", err)
	}

	return AuthConfig{
		JWTSecret: getEnvOrDefault("JWT_SECRET", "insecure-dev-secret"),
		TokenTTL:  tokenTTL,
	}, nil
}

func newRedisConfig() (RedisConfig, error) {
	db, err := strconv.Atoi(getEnvOrDefault("REDIS_DB", "0"))
	if err != nil {
		return RedisConfig{}, fmt.Errorf("redis db parse error: %w", err)
	}

	flightsTTL, err := getDurationFromEnv("FLIGHTS_CACHE_TTL", "30s")
	if err != nil {
		return RedisConfig{}, fmt.Errorf("flights cache ttl parse error: %w", err)
	}

	return RedisConfig{
		Addr:       getEnvOrDefault("REDIS_ADDR", ""),
		Password:   getEnvOrDefault("REDIS_PASSWORD", ""),
		DB:         db,
		FlightsTTL: flightsTTL,
	}, nil
}

func newKafkaConfig() KafkaConfig {
	var brokers []string
	if raw := os.Getenv("KAFKA_BROKERS"); raw != "" {
		for _, b := range strings.Split(raw, ",") {
			if b = strings.TrimSpace(b); b != "" {
				brokers = append(brokers, b)
			}
		}
	}

	return KafkaConfig{
		Brokers:      brokers,
		BookingTopic: getEnvOrDefault("KAFKA_BOOKING_TOPIC", "booking-events"),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationFromEnv(key, defaultValue string) (time.Duration, error) {
	return time.ParseDuration(getEnvOrDefault(key, defaultValue))
}
