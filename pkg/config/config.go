package config

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port             string `envconfig:"PORT" default:"8080"`
	AWSRegion        string `envconfig:"AWS_REGION" default:"ap-southeast-1"`
	TableName        string `envconfig:"TABLE_NAME" default:"storefront"`
	KafkaBrokers     string `envconfig:"KAFKA_BROKERS" default:""`
	JWTSecret        string `envconfig:"JWT_SECRET" default:"dev-secret"`
	LogLevel         string `envconfig:"LOG_LEVEL" default:"info"`
	DynamoDBEndpoint string `envconfig:"DYNAMODB_ENDPOINT" default:""` // DynamoDB Local 엔드포인트
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
