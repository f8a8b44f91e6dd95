// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package aws

import (
	"context"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ecr"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/route53"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/tfctl/awsmcp/internal/log"
)

// Client holds one SDK client per supported service. All of them share the
// same config and therefore the same credentials and region.
type Client struct {
	cfg awsv2.Config

	cloudformation *cloudformation.Client
	cloudwatchlogs *cloudwatchlogs.Client
	ec2            *ec2.Client
	ecr            *ecr.Client
	lambda         *lambda.Client
	route53        *route53.Client
	s3             *s3.Client
	secretsmanager *secretsmanager.Client
	sts            *sts.Client
}

var _ Services = &Client{}

// NewClient loads config with opts and builds every service client.
func NewClient(ctx context.Context, opts ...Option) (*Client, error) {
	cfg, err := LoadAWSConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return NewFromConfig(cfg), nil
}

// NewFromConfig builds every service client from an already loaded config.
func NewFromConfig(cfg awsv2.Config) *Client {
	c := &Client{
		cfg:            cfg,
		cloudformation: cloudformation.NewFromConfig(cfg),
		cloudwatchlogs: cloudwatchlogs.NewFromConfig(cfg),
		ec2:            ec2.NewFromConfig(cfg),
		ecr:            ecr.NewFromConfig(cfg),
		lambda:         lambda.NewFromConfig(cfg),
		route53:        route53.NewFromConfig(cfg),
		s3:             s3.NewFromConfig(cfg),
		secretsmanager: secretsmanager.NewFromConfig(cfg),
		sts:            sts.NewFromConfig(cfg),
	}
	log.Debugf("clients created: region=%s", cfg.Region)
	return c
}

// Config returns the config the clients were built from.
func (c *Client) Config() awsv2.Config { return c.cfg }

// Region returns the region the clients are bound to.
func (c *Client) Region() string { return c.cfg.Region }

// WithRegion returns a Client sharing credentials with c but bound to region.
func (c *Client) WithRegion(region string) Services {
	if region == "" || region == c.cfg.Region {
		return c
	}
	cfg := c.cfg.Copy()
	cfg.Region = region
	return NewFromConfig(cfg)
}

func (c *Client) CloudFormation() CloudFormationAPI { return c.cloudformation }
func (c *Client) CloudWatchLogs() CloudWatchLogsAPI { return c.cloudwatchlogs }
func (c *Client) EC2() EC2API                       { return c.ec2 }
func (c *Client) ECR() ECRAPI                       { return c.ecr }
func (c *Client) Lambda() LambdaAPI                 { return c.lambda }
func (c *Client) Route53() Route53API               { return c.route53 }
func (c *Client) S3() S3API                         { return c.s3 }
func (c *Client) SecretsManager() SecretsManagerAPI { return c.secretsmanager }
func (c *Client) STS() STSAPI                       { return c.sts }
