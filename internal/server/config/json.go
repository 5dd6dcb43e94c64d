package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/securepass/internal/flagx"
	"github.com/dmitrijs2005/securepass/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON
// unmarshalling. It uses timex.Duration for interval fields, which allows
// parsing both string values such as "30m" and integer nanoseconds.
//
// This struct is an intermediate DTO used only for reading JSON
// configuration files; after unmarshalling, its non-zero fields are copied
// into the runtime Config struct which uses time.Duration.
type JsonConfig struct {
	EndpointAddr                string         `json:"endpoint_addr"`
	BaseURL                     string         `json:"base_url"`
	DatabaseDSN                 string         `json:"database_dsn"`
	SecretKey                   string         `json:"secret_key"`
	AccessTokenValidityDuration timex.Duration `json:"access_token_validity_duration"`
	SecretStoreType             string         `json:"secret_store_type"`
	RedisAddr                   string         `json:"redis_addr"`
	RedisPassword               string         `json:"redis_password"`
	RedisDB                     int            `json:"redis_db"`
	SweepInterval               timex.Duration `json:"sweep_interval"`
	S3RootUser                  string         `json:"s3_root_user"`
	S3RootPassword              string         `json:"s3_root_password"`
	S3Bucket                    string         `json:"s3_bucket"`
	S3Region                    string         `json:"s3_region"`
	S3BaseEndpoint              string         `json:"s3_base_endpoint"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance. The file path comes from the -c or -config command-line
// flags; if neither is set, no JSON file is loaded. If the file cannot be
// read or contains invalid JSON, the function panics.
func parseJson(config *Config) {

	jsonConfigFile := flagx.ConfigFileFlags()

	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	// Only fields actually present in the file override the defaults.
	setIfNotZero(&config.EndpointAddr, c.EndpointAddr)
	setIfNotZero(&config.BaseURL, c.BaseURL)
	setIfNotZero(&config.DatabaseDSN, c.DatabaseDSN)
	setIfNotZero(&config.SecretKey, c.SecretKey)
	setIfNotZero(&config.AccessTokenValidityDuration, time.Duration(c.AccessTokenValidityDuration.Duration))
	setIfNotZero(&config.SecretStoreType, c.SecretStoreType)
	setIfNotZero(&config.RedisAddr, c.RedisAddr)
	setIfNotZero(&config.RedisPassword, c.RedisPassword)
	setIfNotZero(&config.RedisDB, c.RedisDB)
	setIfNotZero(&config.SweepInterval, time.Duration(c.SweepInterval.Duration))
	setIfNotZero(&config.S3RootUser, c.S3RootUser)
	setIfNotZero(&config.S3RootPassword, c.S3RootPassword)
	setIfNotZero(&config.S3Bucket, c.S3Bucket)
	setIfNotZero(&config.S3Region, c.S3Region)
	setIfNotZero(&config.S3BaseEndpoint, c.S3BaseEndpoint)
}

func setIfNotZero[T comparable](dst *T, v T) {
	var zero T
	if v != zero {
		*dst = v
	}
}
