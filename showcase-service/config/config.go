package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	EventsMemory = "memory"
	EventsAWS    = "aws"
)

type Config struct {
	ServiceName string    `mapstructure:"service_name"`
	Env         string    `mapstructure:"env"`
	Port        string    `mapstructure:"port"`
	Database    Database  `mapstructure:"database"`
	Events      Events    `mapstructure:"events"`
	AWS         AWS       `mapstructure:"aws"`
	Telemetry   Telemetry `mapstructure:"telemetry"`
	Log         Log       `mapstructure:"log"`
	Delay       Delay     `mapstructure:"delay"`
}

type Database struct {
	Driver   string `mapstructure:"driver"`
	URL      string `mapstructure:"url"`
	Path     string `mapstructure:"path"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Database string `mapstructure:"database"`
	SSLMode  string `mapstructure:"ssl_mode"`
}

type Events struct {
	Driver     string `mapstructure:"driver"`
	BufferSize int    `mapstructure:"buffer_size"`
}

type AWS struct {
	Region      string `mapstructure:"region"`
	EndpointSNS string `mapstructure:"endpoint_sns"`
	EndpointSQS string `mapstructure:"endpoint_sqs"`
	SNSTopicArn string `mapstructure:"sns_topic_arn"`
	SQSQueueURL string `mapstructure:"sqs_queue_url"`
}

type Telemetry struct {
	Enabled      bool   `mapstructure:"enabled"`
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`
}

type Log struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

type Delay struct {
	BaseURL string `mapstructure:"base_url"`
	Seconds int    `mapstructure:"seconds"`
}

// ReadConfig loads the config file that lives next to this package
func ReadConfig() (*Config, error) {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return nil, fmt.Errorf("unable to get current file")
	}
	return Load(filepath.Dir(filename))
}

// Load reads {ENVIRONMENT}.json from configDir (or the working directory) and
// applies SHOWCASE_* environment overrides, e.g. SHOWCASE_DATABASE_DRIVER.
// A missing file is not an error; defaults apply.
func Load(configDir string) (*Config, error) {
	v := viper.New()
	v.SetConfigName(getConfigName())
	v.SetConfigType("json")
	v.AddConfigPath(configDir)
	v.AddConfigPath(".")

	v.SetEnvPrefix("SHOWCASE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "error reading config file")
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrap(err, "error unmarshaling config")
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func getConfigName() string {
	env := os.Getenv("ENVIRONMENT")
	if env == "" {
		return "local"
	}
	return env
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("service_name", "showcase-service")
	v.SetDefault("env", "local")
	v.SetDefault("port", "8080")

	v.SetDefault("database.driver", DriverSQLite)
	v.SetDefault("database.url", "")
	v.SetDefault("database.path", "showcase.db")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "password")
	v.SetDefault("database.database", "showcase")
	v.SetDefault("database.ssl_mode", "disable")

	v.SetDefault("events.driver", EventsMemory)
	v.SetDefault("events.buffer_size", 128)

	v.SetDefault("aws.region", "us-east-1")
	v.SetDefault("aws.endpoint_sns", "")
	v.SetDefault("aws.endpoint_sqs", "")
	v.SetDefault("aws.sns_topic_arn", "arn:aws:sns:us-east-1:000000000000:showcase-events")
	v.SetDefault("aws.sqs_queue_url", "http://localhost:4566/000000000000/showcase-events")

	v.SetDefault("telemetry.enabled", true)
	v.SetDefault("telemetry.otlp_endpoint", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)

	v.SetDefault("delay.base_url", "http://httpbin.org")
	v.SetDefault("delay.seconds", 5)
}

// Validate rejects unknown drivers
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return errors.Errorf("unsupported database driver: %q", c.Database.Driver)
	}

	switch c.Events.Driver {
	case EventsMemory, EventsAWS:
	default:
		return errors.Errorf("unsupported events driver: %q", c.Events.Driver)
	}
	return nil
}

// GetDatabaseURL returns the data source name for the configured driver
func (c *Config) GetDatabaseURL() string {
	if c.Database.URL != "" {
		return c.Database.URL
	}

	if c.Database.Driver == DriverSQLite {
		return c.Database.Path
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Database,
		c.Database.SSLMode,
	)
}
