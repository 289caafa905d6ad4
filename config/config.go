package config

import (
	"fmt"
	"gopkg.in/yaml.v3"
	"os"
	"time"
)

var GConfig *Config

func Init(filePath string) {
	config, err := os.ReadFile(filePath)
	if err != nil {
		panic(err)
	}
	initFromYaml(config)
	err = GConfig.Verify()
	if err != nil {
		panic(err)
	}
}

func initFromYaml(config []byte) {
	err := yaml.Unmarshal(config, &GConfig)
	if err != nil {
		panic(err)
	}
}

type Config struct {
	LogLevel      string `yaml:"log_level"`
	LogFile       string `yaml:"log_file"`
	LogMaxSize    int    `yaml:"log_max_size"`
	LogMaxBackups int    `yaml:"log_max_backups"`
	LogMaxAge     int    `yaml:"log_max_age"`

	StorageEnabled  bool   `yaml:"storage_enabled"`
	StorageSupplier string `yaml:"storage_supplier"`
	URLExpires      string `yaml:"url_expires"`

	Fetcher `yaml:"fetcher"`
	AliOss  `yaml:"ali_oss"`
	MySQL   `yaml:"mysql"`
}

func (c *Config) Verify() error {
	if c.Fetcher.SaveDir == "" {
		return fmt.Errorf("fetcher.save_dir must be set")
	}
	if c.Fetcher.Timeout != "" {
		if _, err := time.ParseDuration(c.Fetcher.Timeout); err != nil {
			return err
		}
	}
	if c.StorageEnabled {
		if c.StorageSupplier != "ali_oss" {
			return fmt.Errorf("storage_supplier must be ali_oss")
		}
		if c.URLExpires != "" {
			if _, err := time.ParseDuration(c.URLExpires); err != nil {
				return err
			}
		}
	}
	return nil
}

type Fetcher struct {
	// TargetSize is the output edge length of the square crop. Zero or
	// negative disables resizing entirely.
	TargetSize int    `yaml:"target_size"`
	SaveDir    string `yaml:"save_dir"`
	Timeout    string `yaml:"timeout"`
	UserAgent  string `yaml:"user_agent"`
}

func (f Fetcher) FetchTimeout() time.Duration {
	if f.Timeout == "" {
		return 0
	}
	d, err := time.ParseDuration(f.Timeout)
	if err != nil {
		return 0
	}
	return d
}

type AliOss struct {
	AccessKeyId     string `yaml:"access_key_id"`
	AccessKeySecret string `yaml:"access_key_secret"`
	Endpoint        string `yaml:"endpoint"`
	Region          string `yaml:"region"`
	Bucket          string `yaml:"bucket"`
	Directory       string `yaml:"directory"`
}

type MySQL struct {
	Host         string `yaml:"host"`
	Port         int    `yaml:"port"`
	Username     string `yaml:"username"`
	Password     string `yaml:"password"`
	Database     string `yaml:"database"`
	Charset      string `yaml:"charset"`
	MaxIdleConns int    `yaml:"max_idle_conns"`
	MaxOpenConns int    `yaml:"max_open_conns"`
}
