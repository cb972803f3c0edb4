// Package config contains code to set the default values and read
// config files to be used throughout the whole application
package config

import (
	"errors"
	"fmt"
	"slices"

	"github.com/spf13/pflag"
	v "github.com/spf13/viper"
)

var validLogLevels = []string{"debug", "info", "warn", "error", "fatal"}
var validStorageTypes = []string{"s3", "local"}
var validDatabaseTypes = []string{"sqlite", "postgres"}

// Setup prepares everything config-related so that the app can
// start working. Function will return an error if something
// is critically wrong and the application can't run because of
// that.
func Setup() error {
	pflag.Parse()
	v.BindPFlags(pflag.CommandLine)

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")

	v.AutomaticEnv()

	//
	// ENVS
	//
	v.BindEnv("app.log_level", "app_log_level")

	v.BindEnv("host.port", "host_port")
	v.BindEnv("host.public_url", "host_public_url")

	v.BindEnv("database.type", "database_type")
	v.BindEnv("database.path", "database_path")
	v.BindEnv("database.dsn", "database_dsn")

	v.BindEnv("storage.type", "storage_type")
	v.BindEnv("storage.local.path", "storage_local_path")
	v.BindEnv("storage.max_usage", "storage_max_usage")

	v.BindEnv("aws.region", "aws_region")
	v.BindEnv("aws.bucket", "aws_bucket")
	v.BindEnv("aws.access_key", "aws_access_key")
	v.BindEnv("aws.secret_access_key", "aws_secret_access_key")

	v.BindEnv("catalog.url", "catalog_url")
	v.BindEnv("catalog.timeout", "catalog_timeout")

	v.BindEnv("upload.max_size", "upload_max_size")
	v.BindEnv("upload.allowed_types", "upload_allowed_types")

	//
	// Defaults
	//
	v.SetDefault("app.log_level", "info")

	v.SetDefault("host.port", 8080)
	v.SetDefault("host.public_url", "http://localhost:8080")

	v.SetDefault("database.type", "sqlite")
	v.SetDefault("database.path", "database.db")

	v.SetDefault("storage.type", "local")
	v.SetDefault("storage.local.path", "data")

	v.SetDefault("catalog.timeout", 30)

	// In megabytes, converted below
	v.SetDefault("upload.max_size", 8192)
	v.SetDefault("upload.allowed_types", []string{"video/mp4", "video/webm"})

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(v.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config file, %w", err)
		}
	}

	if !slices.Contains(validLogLevels, v.GetString("app.log_level")) {
		return errors.New("invalid log level provided")
	}

	if v.GetInt("host.port") <= 0 {
		return errors.New("invalid port provided")
	}

	if v.GetString("host.public_url") == "" {
		return errors.New("public url can't be empty")
	}

	switch v.GetString("database.type") {
	case "sqlite":
		if v.GetString("database.path") == "" {
			return errors.New("sqlite database path can't be empty")
		}
	case "postgres":
		if v.GetString("database.dsn") == "" {
			return errors.New("postgres dsn can't be empty")
		}
	default:
		return errors.New("invalid database type provided")
	}

	switch v.GetString("storage.type") {
	case "s3":
		{
			if v.GetString("aws.region") == "" {
				return errors.New("aws region can't be empty")
			}
			if v.GetString("aws.bucket") == "" {
				return errors.New("bucket can't be empty")
			}
			if v.GetString("aws.access_key") == "" {
				return errors.New("access key can't be empty")
			}
			if v.GetString("aws.secret_access_key") == "" {
				return errors.New("secret access key can't be empty")
			}
		}
	case "local":
		{
			if v.GetString("storage.local.path") == "" {
				return errors.New("local storage path can't be empty")
			}
		}
	default:
		return errors.New("invalid storage type provided")
	}

	if v.GetString("catalog.url") == "" {
		return errors.New("catalog url can't be empty")
	}

	if v.GetInt("catalog.timeout") <= 0 {
		return errors.New("catalog timeout must be bigger than 0")
	}

	if v.GetInt64("storage.max_usage") <= 0 {
		return errors.New("max usage must be bigger than 0")
	}

	if v.GetInt64("upload.max_size") <= 0 {
		return errors.New("max upload size must be bigger than 0")
	}

	if len(v.GetStringSlice("upload.allowed_types")) == 0 {
		fmt.Println("[WARNING]: No upload.allowed_types specified, any video type will be accepted")
	}

	v.Set("upload.max_size", v.GetInt64("upload.max_size")<<20)
	v.Set("storage.max_usage", v.GetInt64("storage.max_usage")<<20)

	return nil
}
