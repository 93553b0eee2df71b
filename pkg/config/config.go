// Package config loads the YAML configuration file.
package config

import (
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v2"
)

// Default values applied when the configuration file omits them.
const (
	DefaultInterval   = 60
	DefaultURLExpiry  = 3600
	DefaultDataDir    = "data"
	DefaultListenAddr = ":8081"
)

// Config is the struct for the configuration
type Config struct {
	S3endpoint    string `yaml:"s3endpoint"`
	S3AccessKey   string `yaml:"accesskey"`
	S3SecretKey   string `yaml:"secretkey"`
	S3Region      string `yaml:"s3region"`
	SsoAwsProfile string `yaml:"ssoawsprofile"`
	Bucket        string `yaml:"bucket"`
	Prefix        string `yaml:"prefix"`
	LogLevel      string `yaml:"loglevel"`
	DataDir       string `yaml:"datadir"`
	// Interval is the number of seconds between poll-cycle starts.
	Interval int `yaml:"interval"`
	// URLExpiry is the lifetime in seconds of presigned download URLs.
	URLExpiry  int    `yaml:"urlexpiry"`
	ListenAddr string `yaml:"listenaddr"`
}

// ReadYamlCnxFile reads a yaml file and returns a Config struct
func ReadYamlCnxFile(filename string) (Config, error) {
	var config Config

	yamlFile, err := os.ReadFile(filename)
	if err != nil {
		return config, fmt.Errorf("error reading YAML file: %w", err)
	}

	err = yaml.Unmarshal(yamlFile, &config)
	if err != nil {
		return config, fmt.Errorf("error parsing YAML file: %w", err)
	}
	config.applyDefaults()
	return config, nil
}

func (c *Config) applyDefaults() {
	if c.Interval <= 0 {
		c.Interval = DefaultInterval
	}
	if c.URLExpiry <= 0 {
		c.URLExpiry = DefaultURLExpiry
	}
	if c.DataDir == "" {
		c.DataDir = DefaultDataDir
	}
	if c.ListenAddr == "" {
		c.ListenAddr = DefaultListenAddr
	}
}
