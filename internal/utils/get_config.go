package utils

import (
	"log"
	"os"

	"gopkg.in/yaml.v2"
)

type Config struct {
	// Database configuration
	DBUser     string `yaml:"DB_USER"`
	DBName     string `yaml:"DB_NAME"`
	DBPassword string `yaml:"DB_PASSWORD"`
	DBPort     string `yaml:"DB_PORT"`
	DBHost     string `yaml:"DB_HOST"`

	// Server
	ServerPort string `yaml:"SERVER_PORT"`
	LogLevel   string `yaml:"LOG_LEVEL"`

	// Pipeline configuration
	StoreName         string `yaml:"STORE_NAME"`
	ImportBatchSize   string `yaml:"IMPORT_BATCH_SIZE"`
	SearchWorkers     string `yaml:"SEARCH_WORKERS"`
	SearchMinRecipes  string `yaml:"SEARCH_MIN_RECIPES"`
	SearchProviderURL string `yaml:"SEARCH_PROVIDER_URL"`
	SearchProviderKey string `yaml:"SEARCH_PROVIDER_KEY"`
	ResolverURL       string `yaml:"RESOLVER_URL"`

	// AWS S3 configuration
	AWSS3Bucket  string `yaml:"AWS_S3_BUCKET"`
	AWSS3Region  string `yaml:"AWS_S3_REGION"`
	AWSAccessKey string `yaml:"AWS_ACCESS_KEY"`
	AWSSecretKey string `yaml:"AWS_SECRET_KEY"`
}

var config Config

func LoadConfig() {
	file, err := os.ReadFile("config.yaml")
	if err != nil {
		log.Printf("Error reading YAML file: %s\n", err)
		return
	}

	err = yaml.Unmarshal(file, &config)
	if err != nil {
		log.Printf("Error parsing YAML file: %s\n", err)
		return
	}

	// Keys the AWS SDK reads from the environment
	os.Setenv("AWS_S3_BUCKET", config.AWSS3Bucket)
	os.Setenv("AWS_S3_REGION", config.AWSS3Region)
	os.Setenv("AWS_ACCESS_KEY", config.AWSAccessKey)
	os.Setenv("AWS_SECRET_KEY", config.AWSSecretKey)
}

func GetConfig(key string) string {
	switch key {
	case "DB_USER":
		return config.DBUser
	case "DB_NAME":
		return config.DBName
	case "DB_PASSWORD":
		return config.DBPassword
	case "DB_PORT":
		return config.DBPort
	case "DB_HOST":
		return config.DBHost
	case "SERVER_PORT":
		return config.ServerPort
	case "LOG_LEVEL":
		return config.LogLevel
	case "STORE_NAME":
		return config.StoreName
	case "IMPORT_BATCH_SIZE":
		return config.ImportBatchSize
	case "SEARCH_WORKERS":
		return config.SearchWorkers
	case "SEARCH_MIN_RECIPES":
		return config.SearchMinRecipes
	case "SEARCH_PROVIDER_URL":
		return config.SearchProviderURL
	case "SEARCH_PROVIDER_KEY":
		return config.SearchProviderKey
	case "RESOLVER_URL":
		return config.ResolverURL
	case "AWS_S3_BUCKET":
		return config.AWSS3Bucket
	case "AWS_S3_REGION":
		return config.AWSS3Region
	case "AWS_ACCESS_KEY":
		return config.AWSAccessKey
	case "AWS_SECRET_KEY":
		return config.AWSSecretKey
	default:
		return ""
	}
}
