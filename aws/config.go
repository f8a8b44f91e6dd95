// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package aws

import (
	"context"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"

	"github.com/tfctl/awsmcp/internal/log"
)

// DefaultRegion is used when neither an option nor the SDK chain yields one.
const DefaultRegion = "us-east-1"

// options holds optional overrides for AWS config loading.
type options struct {
	accessKeyID     string
	maxAttempts     int
	profile         string
	region          string
	retryer         func() awsv2.Retryer
	secretAccessKey string
}

// Option customizes how AWS config is loaded.
// Default behavior (no options) inherits the shell environment and shared
// config chain (AWS_PROFILE, ~/.aws/config, ~/.aws/credentials, IMDS, etc.).
type Option func(*options)

// LoadAWSConfig loads AWS SDK v2 config. Static keys win over a profile when
// both halves of the key pair are present. A profile wins over the default
// chain. The region is applied in every case.
func LoadAWSConfig(ctx context.Context, opts ...Option) (awsv2.Config, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	log.Debugf("opts applied: profile=%s, region=%s, static=%v", o.profile, o.region, o.hasStaticKeys())

	var loadOpts []func(*config.LoadOptions) error
	switch {
	case o.hasStaticKeys():
		provider := credentials.NewStaticCredentialsProvider(o.accessKeyID, o.secretAccessKey, "")
		loadOpts = append(loadOpts, config.WithCredentialsProvider(provider))
	case o.profile != "":
		loadOpts = append(loadOpts, config.WithSharedConfigProfile(o.profile))
	}
	if o.region != "" {
		loadOpts = append(loadOpts, config.WithRegion(o.region))
	}
	if o.retryer != nil {
		loadOpts = append(loadOpts, config.WithRetryer(o.retryer))
	}
	if o.maxAttempts > 0 {
		loadOpts = append(loadOpts, config.WithRetryMaxAttempts(o.maxAttempts))
	}
	log.Debugf("loadOpts built: len=%d", len(loadOpts))

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		log.Debugf("config load err: err=%v", err)
		return awsv2.Config{}, err
	}

	if cfg.Region == "" {
		cfg.Region = DefaultRegion
	}
	log.Debugf("config loaded: region=%s", cfg.Region)
	return cfg, nil
}

func (o options) hasStaticKeys() bool {
	return o.accessKeyID != "" && o.secretAccessKey != ""
}

// WithProfile sets the shared config profile. Defaults to AWS_PROFILE/env chain.
func WithProfile(profile string) Option {
	return func(o *options) { o.profile = profile }
}

// WithRegion sets the region override. Defaults to env/profile/metadata chain.
func WithRegion(region string) Option {
	return func(o *options) { o.region = region }
}

// WithStaticCredentials pins an access key pair. It is ignored unless both
// values are non-empty.
func WithStaticCredentials(accessKeyID, secretAccessKey string) Option {
	return func(o *options) {
		o.accessKeyID = accessKeyID
		o.secretAccessKey = secretAccessKey
	}
}

// WithRetryer injects a custom retryer; if not set, SDK defaults are used.
func WithRetryer(newRetryer func() awsv2.Retryer) Option {
	return func(o *options) { o.retryer = newRetryer }
}

// WithMaxAttempts caps retry attempts for every service client.
func WithMaxAttempts(n int) Option {
	return func(o *options) { o.maxAttempts = n }
}
