package config

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env        string           `yaml:"env" env-default:"development"` // environment
	HTTPServer HTTPServerConfig `yaml:"http_server"`
	Database   DatabaseConfig   `yaml:"database"`
	Product    ProductConfig    `yaml:"product"`
	StatusLog  StatusLogConfig  `yaml:"status_log"`
	Uploads    UploadsConfig    `yaml:"uploads"`
	Payment    PaymentConfig    `yaml:"payment"`
	Operator   OperatorConfig   `yaml:"operator"`
	Migrations MigrationsConfig `yaml:"migrations"`
}

// HTTPServerConfig holds the listener settings
type HTTPServerConfig struct {
	Address     string        `yaml:"address" env-default:"localhost:8080"`
	Timeout     time.Duration `yaml:"timeout" env-default:"4s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// DatabaseConfig holds the connection settings for the order ledger
type DatabaseConfig struct {
	Host     string `yaml:"host" env-default:"localhost"`
	Port     int    `yaml:"port" env-default:"5432"`
	User     string `yaml:"user" env-required:"true"`
	Password string `yaml:"-" env:"DB_PASSWORD" env-required:"true"`
	Name     string `yaml:"name" env-required:"true"`
}

// ProductConfig names the single product the store sells
type ProductConfig struct {
	Name string `yaml:"name" env-default:"Aarvel Ghee"`
}

// StatusLogConfig points at the flat file where payment callbacks land
type StatusLogConfig struct {
	Path string `yaml:"path" env-default:"./upi_status.log"`
}

// UploadsConfig points at the directory for manual-payment screenshots
type UploadsConfig struct {
	Dir string `yaml:"dir" env-default:"./uploads"`
}

// PaymentConfig carries the expected transaction id for the placeholder
// verifier; a real gateway integration would replace this section.
// The server checks it is set at startup; the migrator does not need it.
type PaymentConfig struct {
	ExpectedTxnID string `yaml:"-" env:"EXPECTED_TXN_ID" env-default:""`
}

// OperatorConfig is the single store-operator credential. The bcrypt hash
// and JWT secret live only in the environment. The server checks the hash
// is set at startup; the migrator does not need it.
type OperatorConfig struct {
	Username     string `yaml:"username" env-default:"operator"`
	PasswordHash string `yaml:"-" env:"OPERATOR_PASSWORD_HASH" env-default:""`
	TokenTTL     int    `yaml:"token_ttl" env-default:"60"`
}

type MigrationsConfig struct {
	Path string `yaml:"path" env-default:"./migrations"`
}

// MustLoad panics when no usable config can be found
func MustLoad() *Config {
	configPath := fetchConfigPath()
	if configPath == "" {
		log.Fatal("CONFIG_PATH not exists")
	}
	return MustLoadByPath(configPath)
}

func fetchConfigPath() string {
	var path string

	flag.StringVar(&path, "config", "", "path to config file")
	flag.Parse()

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	return path
}

func MustLoadByPath(configPath string) *Config {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file not found: " + configPath)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("can't read config file %s", configPath)
	}

	return &cfg
}
