package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
)

// ErrNoAwsConfig is returned when no credential method is configured.
var ErrNoAwsConfig = errors.New("no method to initialize aws.Config")

// GetAwsConfig returns an aws.Config
func (s *App) GetAwsConfig() (aws.Config, error) {
	if s.cfg.S3AccessKey != "" && s.cfg.S3SecretKey != "" {
		s.log.Debug("using static credentials")
		return aws.Config{
			Region:      s.cfg.S3Region,
			Credentials: credentials.NewStaticCredentialsProvider(s.cfg.S3AccessKey, s.cfg.S3SecretKey, ""),
		}, nil
	}

	if s.cfg.SsoAwsProfile != "" {
		s.log.Debug("using SSO profile")
		cfg, err := awsconfig.LoadDefaultConfig(
			context.TODO(),
			awsconfig.WithSharedConfigProfile(s.cfg.SsoAwsProfile),
		)
		if err != nil {
			return cfg, fmt.Errorf("error loading SSO profile: %w", err)
		}
		return cfg, nil
	}

	if s.cfg.S3Region != "" {
		cfg, err := awsconfig.LoadDefaultConfig(context.TODO(), awsconfig.WithRegion(s.cfg.S3Region))
		if err != nil {
			return cfg, fmt.Errorf("error loading default config: %w", err)
		}
		return cfg, nil
	}
	return aws.Config{}, ErrNoAwsConfig
}
