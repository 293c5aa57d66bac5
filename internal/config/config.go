package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Keys read by hotdogd.
const (
	KeyListenAddr       = "listenAddr"
	KeyMaxDimension     = "maxDimension"
	KeyResampler        = "resampler"
	KeyJPEGQuality      = "jpegQuality"
	KeyMaxPixels        = "maxPixels"
	KeyMaxUploadBytes   = "maxUploadBytes"
	KeyRequestTimeout   = "requestTimeout"
	KeyCacheSize        = "cacheSize"
	KeyVisionAPIKey     = "visionAPIKey"
	KeyVisionCredFile   = "visionCredentialsFile"
	KeyVisionEndpoint   = "visionEndpoint"
	KeyVisionMaxResults = "visionMaxResults"
	KeyLogLevel         = "logLevel"
)

// Environment variables that override file values.
const (
	EnvPort         = "PORT"
	EnvVisionAPIKey = "HOTDOG_VISION_API_KEY"
)

type Config struct {
	values map[string]any
}

// LoadConfig reads a YAML file of parameters. A missing file yields an empty
// config so every getter falls back to its default. Environment overrides
// are applied on top.
func LoadConfig(path string) (*Config, error) {
	values := make(map[string]any)
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, err
		default:
			if err := yaml.Unmarshal(data, &values); err != nil {
				return nil, err
			}
			if values == nil {
				values = make(map[string]any)
			}
		}
	}
	c := &Config{values: values}
	c.applyEnv()
	return c, nil
}

// FromMap wraps already parsed values. Used by tests and embedders.
func FromMap(values map[string]any) *Config {
	if values == nil {
		values = make(map[string]any)
	}
	return &Config{values: values}
}

func (c *Config) applyEnv() {
	if port := os.Getenv(EnvPort); port != "" {
		c.values[KeyListenAddr] = ":" + port
	}
	if key := os.Getenv(EnvVisionAPIKey); key != "" {
		c.values[KeyVisionAPIKey] = key
	}
}

// GetString returns a string-typed parameter. If nothing is found, or if the value cannot be parsed as a string,
// returns an empty value.
func (c *Config) GetString(key string) string {
	value, ok := c.values[key]
	if !ok {
		return ""
	}
	str, ok := value.(string)
	if !ok {
		return ""
	}
	return str
}

// GetStringOrDefault returns a string-typed parameter, or `defaultValue` if it is missing or empty.
func (c *Config) GetStringOrDefault(key, defaultValue string) string {
	value := c.GetString(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// GetIntOrDefault returns an integer-typed parameter. If nothing is found, or if the value cannot be parsed as an integer,
// returns `defaultValue`.
func (c *Config) GetIntOrDefault(key string, defaultValue int) int {
	value, ok := c.values[key]
	if !ok {
		return defaultValue
	}
	intValue, ok := value.(int)
	if !ok {
		return defaultValue
	}
	return intValue
}

// GetFloatOrDefault returns a float-typed parameter. YAML integers are accepted too ("400" and "400.0" are
// both valid). Anything else returns `defaultValue`.
func (c *Config) GetFloatOrDefault(key string, defaultValue float64) float64 {
	value, ok := c.values[key]
	if !ok {
		return defaultValue
	}
	switch v := value.(type) {
	case float64:
		return v
	case int:
		return float64(v)
	default:
		return defaultValue
	}
}

// GetDurationOrDefault returns a duration-typed parameter (an integer which specifies milliseconds).
// Missing or negative values return `defaultValue`.
func (c *Config) GetDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	intValue := c.GetIntOrDefault(key, -1)
	if intValue < 0 {
		return defaultValue
	}
	return time.Duration(intValue) * time.Millisecond
}
