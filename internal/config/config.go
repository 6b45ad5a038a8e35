package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds every runtime setting. Values come from an optional TOML
// file layered under environment variables; the environment always wins.
type Config struct {
	DataDir string // data_dir / EASEL_DATA_DIR (default: <user-config-dir>/easel)
	NATSURL string // nats_url / EASEL_NATS_URL (optional, empty = no events)

	// Backup settings
	BackupInterval   time.Duration // backup.interval / EASEL_BACKUP_INTERVAL (0 = one-shot only)
	BackupFile       string        // backup.file / EASEL_BACKUP_FILE (local destination path)
	BackupS3Bucket   string        // backup.s3_bucket / EASEL_BACKUP_S3_BUCKET (enables S3 when set)
	BackupS3Key      string        // backup.s3_key / EASEL_BACKUP_S3_KEY (default "easel/backup.jsonl")
	BackupS3Region   string        // backup.s3_region / EASEL_BACKUP_S3_REGION (default "us-east-1")
	BackupS3Endpoint string        // backup.s3_endpoint / EASEL_BACKUP_S3_ENDPOINT (custom endpoint for MinIO)

	// Fetch settings
	FetchTimeout   time.Duration // fetch.timeout / EASEL_FETCH_TIMEOUT (default 30s)
	FetchUserAgent string        // fetch.user_agent / EASEL_FETCH_USER_AGENT
}

// fileConfig mirrors the on-disk TOML shape. Durations are strings there
// ("30s", "10m") and parsed during Load.
type fileConfig struct {
	DataDir string `toml:"data_dir"`
	NATSURL string `toml:"nats_url"`
	Backup  struct {
		Interval   string `toml:"interval"`
		File       string `toml:"file"`
		S3Bucket   string `toml:"s3_bucket"`
		S3Key      string `toml:"s3_key"`
		S3Region   string `toml:"s3_region"`
		S3Endpoint string `toml:"s3_endpoint"`
	} `toml:"backup"`
	Fetch struct {
		Timeout   string `toml:"timeout"`
		UserAgent string `toml:"user_agent"`
	} `toml:"fetch"`
}

// DefaultPath returns the default config file location
// (<user-config-dir>/easel/config.toml), or "" when no user config dir
// can be resolved.
func DefaultPath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(base, "easel", "config.toml")
}

// Load builds the effective configuration. path selects the TOML file; an
// empty path falls back to EASEL_CONFIG, then to DefaultPath. A missing
// file is fine, a malformed one is an error.
func Load(path string) (*Config, error) {
	c := &Config{
		BackupS3Key:    "easel/backup.jsonl",
		BackupS3Region: "us-east-1",
		FetchTimeout:   30 * time.Second,
		FetchUserAgent: "easel/1.0",
	}
	if base, err := os.UserConfigDir(); err == nil {
		c.DataDir = filepath.Join(base, "easel")
	}

	if path == "" {
		path = os.Getenv("EASEL_CONFIG")
	}
	if path == "" {
		path = DefaultPath()
	}
	if path != "" {
		if err := c.applyFile(path); err != nil {
			return nil, err
		}
	}
	if err := c.applyEnv(); err != nil {
		return nil, err
	}

	if c.DataDir == "" {
		return nil, fmt.Errorf("no data directory: set EASEL_DATA_DIR or data_dir in %s", path)
	}
	return c, nil
}

func (c *Config) applyFile(path string) error {
	var fc fileConfig
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("config file %s: %w", path, err)
	}

	if fc.DataDir != "" {
		c.DataDir = fc.DataDir
	}
	if fc.NATSURL != "" {
		c.NATSURL = fc.NATSURL
	}
	if fc.Backup.Interval != "" {
		d, err := time.ParseDuration(fc.Backup.Interval)
		if err != nil {
			return fmt.Errorf("config backup.interval: %w", err)
		}
		c.BackupInterval = d
	}
	if fc.Backup.File != "" {
		c.BackupFile = fc.Backup.File
	}
	if fc.Backup.S3Bucket != "" {
		c.BackupS3Bucket = fc.Backup.S3Bucket
	}
	if fc.Backup.S3Key != "" {
		c.BackupS3Key = fc.Backup.S3Key
	}
	if fc.Backup.S3Region != "" {
		c.BackupS3Region = fc.Backup.S3Region
	}
	if fc.Backup.S3Endpoint != "" {
		c.BackupS3Endpoint = fc.Backup.S3Endpoint
	}
	if fc.Fetch.Timeout != "" {
		d, err := time.ParseDuration(fc.Fetch.Timeout)
		if err != nil {
			return fmt.Errorf("config fetch.timeout: %w", err)
		}
		c.FetchTimeout = d
	}
	if fc.Fetch.UserAgent != "" {
		c.FetchUserAgent = fc.Fetch.UserAgent
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("EASEL_DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv("EASEL_NATS_URL"); v != "" {
		c.NATSURL = v
	}
	if v := os.Getenv("EASEL_BACKUP_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("EASEL_BACKUP_INTERVAL: %w", err)
		}
		c.BackupInterval = d
	}
	if v := os.Getenv("EASEL_BACKUP_FILE"); v != "" {
		c.BackupFile = v
	}
	if v := os.Getenv("EASEL_BACKUP_S3_BUCKET"); v != "" {
		c.BackupS3Bucket = v
	}
	if v := os.Getenv("EASEL_BACKUP_S3_KEY"); v != "" {
		c.BackupS3Key = v
	}
	if v := os.Getenv("EASEL_BACKUP_S3_REGION"); v != "" {
		c.BackupS3Region = v
	}
	if v := os.Getenv("EASEL_BACKUP_S3_ENDPOINT"); v != "" {
		c.BackupS3Endpoint = v
	}
	if v := os.Getenv("EASEL_FETCH_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("EASEL_FETCH_TIMEOUT: %w", err)
		}
		c.FetchTimeout = d
	}
	if v := os.Getenv("EASEL_FETCH_USER_AGENT"); v != "" {
		c.FetchUserAgent = v
	}
	return nil
}
