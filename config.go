package main

import (
	"fmt"
	"os"
	"strings"
)

// Config holds all environment variables for the catalog service.
type Config struct {
	Env  string // Runtime environment ("production" enables JSON logging)
	Port string // Service port (default: 5502)

	MongoURL string // MongoDB connection string
	DBName   string // MongoDB database name (default: catalog)

	KafkaBrokers []string // Kafka broker addresses

	JWKSURI string // JWKS endpoint of the identity provider

	S3Bucket   string // Bucket holding catalog image assets
	S3Region   string // Bucket region (default: us-east-1)
	S3Endpoint string // Optional custom endpoint (LocalStack / MinIO)

	RedisURL string // Optional; listing cache disabled when empty
}

// LoadConfig loads environment variables into a Config struct and validates
// the fields the service cannot run without.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Env:        os.Getenv("ENV"),
		Port:       os.Getenv("PORT"),
		MongoURL:   os.Getenv("MONGO_URL"),
		DBName:     os.Getenv("MONGO_DB_NAME"),
		JWKSURI:    os.Getenv("JWKS_URI"),
		S3Bucket:   os.Getenv("AWS_S3_BUCKET"),
		S3Region:   os.Getenv("AWS_REGION"),
		S3Endpoint: os.Getenv("AWS_S3_ENDPOINT"),
		RedisURL:   os.Getenv("REDIS_URL"),
	}

	if cfg.Port == "" {
		cfg.Port = "5502"
	}
	if cfg.DBName == "" {
		cfg.DBName = "catalog"
	}
	if cfg.S3Region == "" {
		cfg.S3Region = "us-east-1"
	}

	brokers := os.Getenv("KAFKA_BROKERS")
	if brokers == "" {
		brokers = "localhost:9092"
	}
	for _, b := range strings.Split(brokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
		}
	}

	if cfg.MongoURL == "" {
		return nil, fmt.Errorf("MONGO_URL is required")
	}
	if cfg.JWKSURI == "" {
		return nil, fmt.Errorf("JWKS_URI is required")
	}
	if cfg.S3Bucket == "" {
		return nil, fmt.Errorf("AWS_S3_BUCKET is required")
	}

	return cfg, nil
}
