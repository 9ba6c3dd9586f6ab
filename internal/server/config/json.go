package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/memberhub/internal/flagx"
	"github.com/dmitrijs2005/memberhub/internal/timex"
)

// JsonConfig is the DTO used for reading JSON configuration files. Interval
// fields use timex.Duration, which accepts both duration strings ("15m")
// and integer nanoseconds. After unmarshalling, values are copied into the
// runtime Config.
type JsonConfig struct {
	EndpointAddr                 string         `json:"endpoint_addr"`
	DatabaseDSN                  string         `json:"database_dsn"`
	SecretKey                    string         `json:"secret_key"`
	AccessTokenValidityDuration  timex.Duration `json:"access_token_validity_duration"`
	RefreshTokenValidityDuration timex.Duration `json:"refresh_token_validity_duration"`
	DemoPassword                 string         `json:"demo_password"`
	StorageBackend               string         `json:"storage_backend"`
	MaxUploadSize                int64          `json:"max_upload_size"`
	UploadTickInterval           timex.Duration `json:"upload_tick_interval"`
	UploadFailCheckDelay         timex.Duration `json:"upload_fail_check_delay"`
	UploadFailureRate            float64        `json:"upload_failure_rate"`
	S3RootUser                   string         `json:"s3_root_user"`
	S3RootPassword               string         `json:"s3_root_password"`
	S3Bucket                     string         `json:"s3_bucket"`
	S3Region                     string         `json:"s3_region"`
	S3BaseEndpoint               string         `json:"s3_base_endpoint"`
}

// parseJson loads configuration values from the JSON file named by the
// -c/-config flags into the provided Config. If neither flag is set nothing
// is loaded; an unreadable or malformed file panics, since the server cannot
// start with a half-applied configuration.
func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
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

	config.EndpointAddr = c.EndpointAddr
	config.DatabaseDSN = c.DatabaseDSN
	config.SecretKey = c.SecretKey
	config.AccessTokenValidityDuration = time.Duration(c.AccessTokenValidityDuration.Duration)
	config.RefreshTokenValidityDuration = time.Duration(c.RefreshTokenValidityDuration.Duration)
	config.DemoPassword = c.DemoPassword
	config.StorageBackend = c.StorageBackend
	config.MaxUploadSize = c.MaxUploadSize
	config.UploadTickInterval = time.Duration(c.UploadTickInterval.Duration)
	config.UploadFailCheckDelay = time.Duration(c.UploadFailCheckDelay.Duration)
	config.UploadFailureRate = c.UploadFailureRate
	config.S3RootUser = c.S3RootUser
	config.S3RootPassword = c.S3RootPassword
	config.S3Bucket = c.S3Bucket
	config.S3Region = c.S3Region
	config.S3BaseEndpoint = c.S3BaseEndpoint
}
