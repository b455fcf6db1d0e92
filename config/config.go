// Package config reads the gpl settings from the environment, optionally
// populated from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/etnz/gplocal"
	"github.com/etnz/gplocal/kv"
	"github.com/joho/godotenv"
)

// DefaultEnvFile is the env file read when none is given.
const DefaultEnvFile = ".env"

// Environment variables read by Load. They are also passed to gpl extensions.
const (
	EnvStoreDriver = "GPL_STORE_DRIVER"
	EnvStorePath   = "GPL_STORE_PATH"
	EnvDatabaseURL = "GPL_DATABASE_URL"
	EnvCurrency    = "GPL_CURRENCY"
	EnvMetricsFile = "GPL_METRICS_FILE"
	EnvVerbose     = "GPL_VERBOSE"
)

// Config holds the settings of the gpl command.
type Config struct {
	Store       kv.Config
	Currency    string // ISO 4217 code used to format amounts
	MetricsFile string // when set, metrics are written there on exit
	Verbose     bool
}

// LoadEnvFile sets the variables of an env file that are not already set in
// the environment. A missing file is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		path = DefaultEnvFile
	}
	err := godotenv.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	driver, err := kv.ParseDriver(getEnv(EnvStoreDriver, string(kv.DriverFS)))
	if err != nil {
		return Config{}, err
	}
	redisDB, err := strconv.Atoi(getEnv("GPL_REDIS_DB", "0"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid GPL_REDIS_DB: %w", err)
	}
	currency := strings.ToUpper(getEnv(EnvCurrency, gplocal.DefaultCurrency))
	if money.GetCurrency(currency) == nil {
		return Config{}, fmt.Errorf("invalid GPL_CURRENCY: unknown currency %q", currency)
	}

	cfg := Config{
		Store: kv.Config{
			Driver:        driver,
			Path:          os.Getenv(EnvStorePath),
			DatabaseURL:   os.Getenv(EnvDatabaseURL),
			RedisAddr:     os.Getenv("GPL_REDIS_ADDR"),
			RedisPassword: os.Getenv("GPL_REDIS_PASSWORD"),
			RedisDB:       redisDB,
			S3: kv.S3Config{
				Bucket:          os.Getenv("GPL_S3_BUCKET"),
				Region:          os.Getenv("GPL_S3_REGION"),
				Endpoint:        os.Getenv("GPL_S3_ENDPOINT"),
				PathStyle:       getBool("GPL_S3_PATH_STYLE"),
				AccessKeyID:     os.Getenv("GPL_S3_ACCESS_KEY_ID"),
				SecretAccessKey: os.Getenv("GPL_S3_SECRET_ACCESS_KEY"),
				Prefix:          os.Getenv("GPL_S3_PREFIX"),
			},
		},
		Currency:    currency,
		MetricsFile: os.Getenv(EnvMetricsFile),
		Verbose:     getBool(EnvVerbose),
	}
	return cfg, nil
}

func getEnv(key string, fallback string) string {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return fallback
	}
	return val
}

// getBool reads a boolean variable, false when unset or invalid.
func getBool(key string) bool {
	b, _ := strconv.ParseBool(strings.TrimSpace(os.Getenv(key)))
	return b
}
