package config

import (
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	AWS      AWSConfig
	DynamoDB DynamoDBConfig
	Redis    RedisConfig
	NATS     NATSConfig
	Media    MediaConfig
	Auth     AuthConfig
}

type ServerConfig struct {
	HTTPPort    int
	Environment string
	LogLevel    string
}

type AWSConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string
}

type DynamoDBConfig struct {
	TableName        string
	MaxRetries       int
	UseLocalEndpoint bool
}

type RedisConfig struct {
	Address  string
	Password string
}

type NATSConfig struct {
	URL                  string
	MaxReconnect         int
	ReconnectWaitSeconds int
	TimeoutSeconds       int
}

type MediaConfig struct {
	Bucket        string
	PublicBaseURL string
	MaxUploadSize int64
}

type AuthConfig struct {
	JWTSecret         string
	TokenTTLMinutes   int
	AdminUsername     string
	AdminPasswordHash string
}

func Load(configPath string) (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	if configPath != "" {
		viper.AddConfigPath(configPath)
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("CLUBHUB")
	// Nested keys map to env vars with dots flattened, so
	// server.httpport reads CLUBHUB_SERVER_HTTPPORT.
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// Config file is optional when everything comes from the environment.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("server.httpport", 8080)
	viper.SetDefault("server.environment", "development")
	viper.SetDefault("server.loglevel", "info")
	viper.SetDefault("dynamodb.maxretries", 3)
	viper.SetDefault("nats.maxreconnect", 5)
	viper.SetDefault("nats.reconnectwaitseconds", 2)
	viper.SetDefault("nats.timeoutseconds", 5)
	// 5 MB evidence image cap, matching what the submission form enforces.
	viper.SetDefault("media.maxuploadsize", 5*1024*1024)
	viper.SetDefault("auth.tokenttlminutes", 720)
}
