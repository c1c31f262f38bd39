package s3client

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/credentials/stscreds"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// ClientSettings describes how to reach S3. Static keys take precedence over the default
// credential chain; a RoleARN assumes that role through STS on top of either.
type ClientSettings struct {
	Region         string
	Endpoint       string
	ForcePathStyle bool
	AccessKey      string
	SecretKey      string
	SessionToken   string
	RoleARN        string
	SessionName    string
	ExternalID     string
	Duration       time.Duration
}

// NewClient builds an *s3.Client from settings.
func NewClient(ctx context.Context, cfg ClientSettings) (*s3.Client, error) {
	if cfg.Region == "" {
		cfg.Region = "us-east-1"
	}
	if (cfg.AccessKey == "") != (cfg.SecretKey == "") {
		return nil, fmt.Errorf("s3client: access key and secret key must be set together")
	}

	loaders := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" {
		loaders = append(loaders, config.WithCredentialsProvider(
			aws.NewCredentialsCache(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, cfg.SessionToken)),
		))
	}
	baseCfg, err := config.LoadDefaultConfig(ctx, loaders...)
	if err != nil {
		return nil, err
	}

	if cfg.RoleARN != "" {
		stsClient := sts.NewFromConfig(baseCfg, func(o *sts.Options) {
			if cfg.Endpoint != "" {
				o.BaseEndpoint = aws.String(cfg.Endpoint)
			}
		})
		provider := stscreds.NewAssumeRoleProvider(stsClient, cfg.RoleARN, func(o *stscreds.AssumeRoleOptions) {
			o.RoleSessionName = "npulse"
			if cfg.SessionName != "" {
				o.RoleSessionName = cfg.SessionName
			}
			if cfg.Duration > 0 {
				o.Duration = cfg.Duration
			}
			if cfg.ExternalID != "" {
				o.ExternalID = aws.String(cfg.ExternalID)
			}
		})
		baseCfg.Credentials = aws.NewCredentialsCache(provider)
	}

	return s3.NewFromConfig(baseCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.ForcePathStyle
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	}), nil
}
