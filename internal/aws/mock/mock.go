// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package mock provides testify doubles for the service interfaces in
// github.com/tfctl/awsmcp/aws.
package mock

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ecr"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/route53"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/stretchr/testify/mock"

	awsx "github.com/tfctl/awsmcp/aws"
)

// CloudFormationAPI is a mock implementation of [awsx.CloudFormationAPI]
type CloudFormationAPI struct {
	mock.Mock
}

var _ awsx.CloudFormationAPI = &CloudFormationAPI{}

func (m *CloudFormationAPI) ListStacks(ctx context.Context, params *cloudformation.ListStacksInput, optFns ...func(*cloudformation.Options)) (*cloudformation.ListStacksOutput, error) {
	args := m.Called(ctx, params, optFns)
	out, _ := args.Get(0).(*cloudformation.ListStacksOutput)
	return out, args.Error(1)
}

// CloudWatchLogsAPI is a mock implementation of [awsx.CloudWatchLogsAPI]
type CloudWatchLogsAPI struct {
	mock.Mock
}

var _ awsx.CloudWatchLogsAPI = &CloudWatchLogsAPI{}

func (m *CloudWatchLogsAPI) DescribeLogGroups(ctx context.Context, params *cloudwatchlogs.DescribeLogGroupsInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.DescribeLogGroupsOutput, error) {
	args := m.Called(ctx, params, optFns)
	out, _ := args.Get(0).(*cloudwatchlogs.DescribeLogGroupsOutput)
	return out, args.Error(1)
}

func (m *CloudWatchLogsAPI) DescribeLogStreams(ctx context.Context, params *cloudwatchlogs.DescribeLogStreamsInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.DescribeLogStreamsOutput, error) {
	args := m.Called(ctx, params, optFns)
	out, _ := args.Get(0).(*cloudwatchlogs.DescribeLogStreamsOutput)
	return out, args.Error(1)
}

func (m *CloudWatchLogsAPI) GetLogEvents(ctx context.Context, params *cloudwatchlogs.GetLogEventsInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.GetLogEventsOutput, error) {
	args := m.Called(ctx, params, optFns)
	out, _ := args.Get(0).(*cloudwatchlogs.GetLogEventsOutput)
	return out, args.Error(1)
}

// EC2API is a mock implementation of [awsx.EC2API]
type EC2API struct {
	mock.Mock
}

var _ awsx.EC2API = &EC2API{}

func (m *EC2API) DescribeInstances(ctx context.Context, params *ec2.DescribeInstancesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeInstancesOutput, error) {
	args := m.Called(ctx, params, optFns)
	out, _ := args.Get(0).(*ec2.DescribeInstancesOutput)
	return out, args.Error(1)
}

func (m *EC2API) StartInstances(ctx context.Context, params *ec2.StartInstancesInput, optFns ...func(*ec2.Options)) (*ec2.StartInstancesOutput, error) {
	args := m.Called(ctx, params, optFns)
	out, _ := args.Get(0).(*ec2.StartInstancesOutput)
	return out, args.Error(1)
}

func (m *EC2API) StopInstances(ctx context.Context, params *ec2.StopInstancesInput, optFns ...func(*ec2.Options)) (*ec2.StopInstancesOutput, error) {
	args := m.Called(ctx, params, optFns)
	out, _ := args.Get(0).(*ec2.StopInstancesOutput)
	return out, args.Error(1)
}

// ECRAPI is a mock implementation of [awsx.ECRAPI]
type ECRAPI struct {
	mock.Mock
}

var _ awsx.ECRAPI = &ECRAPI{}

func (m *ECRAPI) DescribeRepositories(ctx context.Context, params *ecr.DescribeRepositoriesInput, optFns ...func(*ecr.Options)) (*ecr.DescribeRepositoriesOutput, error) {
	args := m.Called(ctx, params, optFns)
	out, _ := args.Get(0).(*ecr.DescribeRepositoriesOutput)
	return out, args.Error(1)
}

// LambdaAPI is a mock implementation of [awsx.LambdaAPI]
type LambdaAPI struct {
	mock.Mock
}

var _ awsx.LambdaAPI = &LambdaAPI{}

func (m *LambdaAPI) ListFunctions(ctx context.Context, params *lambda.ListFunctionsInput, optFns ...func(*lambda.Options)) (*lambda.ListFunctionsOutput, error) {
	args := m.Called(ctx, params, optFns)
	out, _ := args.Get(0).(*lambda.ListFunctionsOutput)
	return out, args.Error(1)
}

func (m *LambdaAPI) Invoke(ctx context.Context, params *lambda.InvokeInput, optFns ...func(*lambda.Options)) (*lambda.InvokeOutput, error) {
	args := m.Called(ctx, params, optFns)
	out, _ := args.Get(0).(*lambda.InvokeOutput)
	return out, args.Error(1)
}

// Route53API is a mock implementation of [awsx.Route53API]
type Route53API struct {
	mock.Mock
}

var _ awsx.Route53API = &Route53API{}

func (m *Route53API) ListHostedZones(ctx context.Context, params *route53.ListHostedZonesInput, optFns ...func(*route53.Options)) (*route53.ListHostedZonesOutput, error) {
	args := m.Called(ctx, params, optFns)
	out, _ := args.Get(0).(*route53.ListHostedZonesOutput)
	return out, args.Error(1)
}

// S3API is a mock implementation of [awsx.S3API]
type S3API struct {
	mock.Mock
}

var _ awsx.S3API = &S3API{}

func (m *S3API) ListBuckets(ctx context.Context, params *s3.ListBucketsInput, optFns ...func(*s3.Options)) (*s3.ListBucketsOutput, error) {
	args := m.Called(ctx, params, optFns)
	out, _ := args.Get(0).(*s3.ListBucketsOutput)
	return out, args.Error(1)
}

func (m *S3API) ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	args := m.Called(ctx, params, optFns)
	out, _ := args.Get(0).(*s3.ListObjectsV2Output)
	return out, args.Error(1)
}

func (m *S3API) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	args := m.Called(ctx, params, optFns)
	out, _ := args.Get(0).(*s3.GetObjectOutput)
	return out, args.Error(1)
}

func (m *S3API) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, params, optFns)
	out, _ := args.Get(0).(*s3.PutObjectOutput)
	return out, args.Error(1)
}

// SecretsManagerAPI is a mock implementation of [awsx.SecretsManagerAPI]
type SecretsManagerAPI struct {
	mock.Mock
}

var _ awsx.SecretsManagerAPI = &SecretsManagerAPI{}

func (m *SecretsManagerAPI) ListSecrets(ctx context.Context, params *secretsmanager.ListSecretsInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.ListSecretsOutput, error) {
	args := m.Called(ctx, params, optFns)
	out, _ := args.Get(0).(*secretsmanager.ListSecretsOutput)
	return out, args.Error(1)
}

func (m *SecretsManagerAPI) GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
	args := m.Called(ctx, params, optFns)
	out, _ := args.Get(0).(*secretsmanager.GetSecretValueOutput)
	return out, args.Error(1)
}

func (m *SecretsManagerAPI) CreateSecret(ctx context.Context, params *secretsmanager.CreateSecretInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.CreateSecretOutput, error) {
	args := m.Called(ctx, params, optFns)
	out, _ := args.Get(0).(*secretsmanager.CreateSecretOutput)
	return out, args.Error(1)
}

// STSAPI is a mock implementation of [awsx.STSAPI]
type STSAPI struct {
	mock.Mock
}

var _ awsx.STSAPI = &STSAPI{}

func (m *STSAPI) GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error) {
	args := m.Called(ctx, params, optFns)
	out, _ := args.Get(0).(*sts.GetCallerIdentityOutput)
	return out, args.Error(1)
}
