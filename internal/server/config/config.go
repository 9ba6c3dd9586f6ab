// Package config handles configuration for the server component,
// including defaults, JSON overlay, and command-line flags.
package config

import "time"

// Storage backend selectors.
const (
	StorageMemory = "memory"
	StorageS3     = "s3"
)

// Config holds runtime settings for the memberhub server.
//
// Fields:
//   - EndpointAddr: bind address for the public HTTP endpoint.
//   - DatabaseDSN: PostgreSQL DSN (pgx). Empty selects the in-memory mock
//     backend seeded with the demo dataset.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Do not use test defaults in prod.
//   - AccessTokenValidityDuration / RefreshTokenValidityDuration: token lifetimes.
//   - DemoPassword: password assigned to the seeded demo accounts (in-memory backend only).
//   - StorageBackend: blob storage selector, "memory" or "s3".
//   - MaxUploadSize: per-file upload limit in bytes.
//   - UploadTickInterval: progress tick period of the transfer pipeline.
//   - UploadFailCheckDelay: when the independent transient-failure check fires.
//   - UploadFailureRate: probability [0,1) that the check fails an upload.
//   - S3RootUser / S3RootPassword / S3Bucket / S3Region / S3BaseEndpoint: object storage settings.
type Config struct {
	EndpointAddr                 string
	DatabaseDSN                  string
	SecretKey                    string
	AccessTokenValidityDuration  time.Duration
	RefreshTokenValidityDuration time.Duration
	DemoPassword                 string
	StorageBackend               string
	MaxUploadSize                int64
	UploadTickInterval           time.Duration
	UploadFailCheckDelay         time.Duration
	UploadFailureRate            float64
	S3RootUser                   string
	S3RootPassword               string
	S3Bucket                     string
	S3Region                     string
	S3BaseEndpoint               string
}

// LoadDefaults populates Config with sensible development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.EndpointAddr = ":8080"
	c.DatabaseDSN = ""
	c.SecretKey = "secretKey"
	c.AccessTokenValidityDuration = 15 * time.Minute
	c.RefreshTokenValidityDuration = 24 * time.Hour
	c.DemoPassword = "password123"
	c.StorageBackend = StorageMemory
	c.MaxUploadSize = 5 * 1024 * 1024
	c.UploadTickInterval = 200 * time.Millisecond
	c.UploadFailCheckDelay = 1 * time.Second
	c.UploadFailureRate = 0.05
	c.S3RootUser = "admin"
	c.S3RootPassword = "secretpassword"
	c.S3Bucket = "documents"
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = "http://127.0.0.1:9000/"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
