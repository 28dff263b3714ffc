package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Sequence stores for journal entry numbers
const (
	SequenceStoreSQLite   = "sqlite"
	SequenceStoreDynamoDB = "dynamodb"
)

// Config represents the application configuration
// This struct contains all configuration parameters for the application
type Config struct {
	// AWS-specific configuration
	AWSRegion         string
	DynamoDBTableName string

	// Environment info
	Environment string

	// Ledger database
	DBPath string

	// Where journal entry numbers are allocated
	SequenceStore string

	// Day window for reconciliation candidates that need manual review
	ReconcileWindowDays int

	// Read the actor from a bearer token already verified by the gateway
	TrustForwardedJWT bool

	// Listen address of the local HTTP server
	HTTPAddr string

	// Lambda detection flag (cached)
	isLambda bool
}

// LoadDotEnv loads variables from the given .env files into the process
// environment without overriding values already set. Missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}

// LoadFromEnv loads the configuration from environment variables
func LoadFromEnv() (*Config, error) {
	cfg := &Config{}

	cfg.Environment = os.Getenv("ENVIRONMENT")
	if cfg.Environment == "" {
		cfg.Environment = "dev" // Default to dev environment
	}

	cfg.AWSRegion = os.Getenv("AWS_REGION")
	if cfg.AWSRegion == "" {
		cfg.AWSRegion = "ap-northeast-1"
	}

	// Check if running in Lambda
	cfg.isLambda = os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != ""

	cfg.DBPath = os.Getenv("LEDGER_DB_PATH")
	if cfg.DBPath == "" {
		if cfg.isLambda {
			cfg.DBPath = "/mnt/efs/ledger/ledger.db" // EFS mount point
		} else {
			cfg.DBPath = "./data/ledger.db" // Local development path
		}
	}

	cfg.SequenceStore = os.Getenv("SEQUENCE_STORE")
	if cfg.SequenceStore == "" {
		cfg.SequenceStore = SequenceStoreSQLite
	}
	switch cfg.SequenceStore {
	case SequenceStoreSQLite:
	case SequenceStoreDynamoDB:
		cfg.DynamoDBTableName = os.Getenv("DYNAMODB_TABLE_NAME")
		if cfg.DynamoDBTableName == "" {
			return nil, errors.New("DYNAMODB_TABLE_NAME environment variable is required when SEQUENCE_STORE=dynamodb")
		}
	default:
		return nil, fmt.Errorf("unsupported SEQUENCE_STORE %q", cfg.SequenceStore)
	}

	cfg.ReconcileWindowDays = 3
	if v := os.Getenv("RECONCILE_WINDOW_DAYS"); v != "" {
		days, err := strconv.Atoi(v)
		if err != nil || days < 0 {
			return nil, fmt.Errorf("RECONCILE_WINDOW_DAYS must be a non-negative integer, got %q", v)
		}
		cfg.ReconcileWindowDays = days
	}

	if v := os.Getenv("TRUST_FORWARDED_JWT"); v != "" {
		trust, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("TRUST_FORWARDED_JWT must be a boolean, got %q", v)
		}
		cfg.TrustForwardedJWT = trust
	}

	cfg.HTTPAddr = os.Getenv("HTTP_ADDR")
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8080"
	}

	return cfg, nil
}

func (c *Config) IsProd() bool {
	return c.Environment == "prod"
}

// IsLambda returns true if the application is running in AWS Lambda
func (c *Config) IsLambda() bool {
	return c.isLambda
}
