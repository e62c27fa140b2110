// Package publish uploads finished renders to S3-compatible storage.
package publish

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables read by LoadConfig.
const (
	EnvAccessKey = "PRISM_S3_ACCESS_KEY"
	EnvSecretKey = "PRISM_S3_SECRET_KEY"
	EnvEndpoint  = "PRISM_S3_ENDPOINT"
	EnvRegion    = "PRISM_S3_REGION"
	EnvBucket    = "PRISM_S3_BUCKET"
	EnvPrefix    = "PRISM_S3_PREFIX"
	EnvACL       = "PRISM_S3_ACL"
	EnvCDNURL    = "PRISM_CDN_URL"
)

// Config holds the storage credentials and naming used by a Publisher.
type Config struct {
	AccessKey string
	SecretKey string
	Endpoint  string // empty for AWS itself
	Region    string
	Bucket    string
	Prefix    string // prepended to every object key
	ACL       string
	CDNURL    string // public base URL; defaults to the endpoint
}

// LoadConfig reads the environment after loading envFile, if it exists.
// Variables already set in the environment win over the file.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	cfg := Config{
		AccessKey: os.Getenv(EnvAccessKey),
		SecretKey: os.Getenv(EnvSecretKey),
		Endpoint:  os.Getenv(EnvEndpoint),
		Region:    getEnv(EnvRegion, "us-east-1"),
		Bucket:    os.Getenv(EnvBucket),
		Prefix:    strings.Trim(os.Getenv(EnvPrefix), "/"),
		ACL:       getEnv(EnvACL, "public-read"),
		CDNURL:    strings.TrimRight(os.Getenv(EnvCDNURL), "/"),
	}
	return cfg, cfg.Validate()
}

// Validate reports the first missing required setting.
func (c Config) Validate() error {
	switch {
	case c.Bucket == "":
		return fmt.Errorf("%s is not set", EnvBucket)
	case c.AccessKey == "":
		return fmt.Errorf("%s is not set", EnvAccessKey)
	case c.SecretKey == "":
		return fmt.Errorf("%s is not set", EnvSecretKey)
	}
	return nil
}

// Key returns the object key for name under the configured prefix.
func (c Config) Key(name string) string {
	name = strings.TrimLeft(name, "/")
	if c.Prefix == "" {
		return name
	}
	return c.Prefix + "/" + name
}

// URL returns the public address of an object key.
func (c Config) URL(key string) string {
	if c.CDNURL != "" {
		return c.CDNURL + "/" + key
	}
	if c.Endpoint != "" {
		return strings.TrimRight(c.Endpoint, "/") + "/" + c.Bucket + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", c.Bucket, c.Region, key)
}

// Helper to get environment variables with a default value.
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
