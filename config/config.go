package config

import (
	"fmt"
	"time"

	"github.com/beetracked/fleet-ops/pkg/configparser"
)

// Config contains all configuration variables of the application
type (
	Config struct {
		Server   ServerConfig
		Log      LogConfig
		Session  SessionConfig
		Google   GoogleConfig
		AWS      AWSConfig
		Cognito  CognitoConfig
		Auth     AuthConfig
		RabbitMQ RabbitMQConfig
		Database DatabaseConfig
		Store    StoreConfig
	}

	ServerConfig struct {
		Port        string `env:"PORT" default:"3001"`
		FrontendURL string `env:"FRONTEND_URL"`
	}

	LogConfig struct {
		Level string `env:"LOG_LEVEL" default:"DEBUG"`
	}

	SessionConfig struct {
		InactivityTimeout time.Duration `env:"SESSION_INACTIVITY_TIMEOUT" default:"10m"`
		SweepInterval     time.Duration `env:"SESSION_SWEEP_INTERVAL" default:"5m"`
	}

	GoogleConfig struct {
		// SheetID is the main spreadsheet with the BeeZero and
		// Ecodelivery shift tabs.
		SheetID         string `env:"GOOGLE_SHEET_ID"`
		CredentialsFile string `env:"GOOGLE_APPLICATION_CREDENTIALS"`
		CredentialsJSON string `env:"GOOGLE_CREDENTIALS_JSON"`

		// Per-person tab spreadsheets for deliveries and rides.
		BikersSheetID  string `env:"CARRERAS_BIKERS_SHEET_ID"`
		DriversSheetID string `env:"CARRERAS_DRIVERS_SHEET_ID"`
	}

	AWSConfig struct {
		Bucket          string `env:"AWS_S3_BUCKET"`
		Region          string `env:"AWS_REGION" default:"us-east-1"`
		AccessKeyID     string `env:"AWS_ACCESS_KEY_ID"`
		SecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY"`

		// Set by the Lambda runtime. Its presence means the execution
		// role provides credentials.
		LambdaFunction string `env:"AWS_LAMBDA_FUNCTION_NAME"`
	}

	CognitoConfig struct {
		Region     string `env:"COGNITO_REGION" default:"us-east-1"`
		UserPoolID string `env:"COGNITO_USER_POOL_ID"`
	}

	AuthConfig struct {
		// CredentialsFile is the CSV with the Ecodelivery biker logins.
		CredentialsFile string `env:"CREDENTIALS_FILE" default:"credentials.csv"`
	}

	RabbitMQConfig struct {
		Enabled  bool   `env:"RABBITMQ_ENABLED" default:"false"`
		Host     string `env:"RABBITMQ_HOST" default:"localhost"`
		Port     string `env:"RABBITMQ_PORT" default:"5672"`
		User     string `env:"RABBITMQ_USER" default:"guest"`
		Password string `env:"RABBITMQ_PASSWORD" default:"guest"`
	}

	DatabaseConfig struct {
		Host     string `env:"DATABASE_HOST" default:"localhost"`
		Port     string `env:"DATABASE_PORT" default:"5432"`
		User     string `env:"DATABASE_USER" default:"fleetops_user"`
		Password string `env:"DATABASE_PASSWORD" default:"fleetops_pass"`
		Database string `env:"DATABASE_DATABASE" default:"fleetops_db"`

		MaxConns        int32         `env:"DATABASE_MAXCONNS" default:"20"`
		MinConns        int32         `env:"DATABASE_MINCONNS" default:"2"`
		MaxConnLifetime time.Duration `env:"DATABASE_MAXCONNLIFETIME" default:"30m"`
		MaxConnIdleTime time.Duration `env:"DATABASE_MAXCONNIDLETIME" default:"5m"`
	}

	StoreConfig struct {
		// Backend selects the row store: sheets, postgres or memory.
		Backend string `env:"STORE_BACKEND" default:"sheets"`
	}
)

func (c DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
	)
}

func (c RabbitMQConfig) GetDSN() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%s/",
		c.User,
		c.Password,
		c.Host,
		c.Port,
	)
}

// OnIAMRole reports whether the process runs under an AWS execution role.
func (c AWSConfig) OnIAMRole() bool {
	return c.LambdaFunction != ""
}

// RidesSheetID resolves the spreadsheet for BeeZero rides, which shares
// the bikers spreadsheet when no dedicated one is configured.
func (c GoogleConfig) RidesSheetID() string {
	if c.DriversSheetID != "" {
		return c.DriversSheetID
	}
	return c.BikersSheetID
}

func NewConfig(filepath string) (*Config, error) {
	cfg := &Config{}

	// Loading enviromental variables and parsing to config struct.
	if err := configparser.LoadAndParseYaml(filepath, cfg); err != nil {
		return nil, fmt.Errorf("failed to load and parse config: %w", err)
	}

	return cfg, nil
}
