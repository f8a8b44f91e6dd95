// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	awsx "github.com/tfctl/awsmcp/aws"
	"github.com/tfctl/awsmcp/operations"
	"github.com/tfctl/awsmcp/toolkit"
)

type tool struct {
	definition mcp.Tool
	handler    server.ToolHandlerFunc
}

func (s *Server) registry() []tool {
	return []tool{
		{ec2ListInstances, s.ec2ListInstances},
		{ec2StartInstance, s.ec2StartInstance},
		{ec2StopInstance, s.ec2StopInstance},
		{ec2DescribeInstance, s.ec2DescribeInstance},
		{s3ListBuckets, s.s3ListBuckets},
		{s3ListObjects, s.s3ListObjects},
		{s3GetObject, s.s3GetObject},
		{s3PutObject, s.s3PutObject},
		{secretsList, s.secretsList},
		{secretsGet, s.secretsGet},
		{secretsCreate, s.secretsCreate},
		{lambdaListFunctions, s.lambdaListFunctions},
		{lambdaInvoke, s.lambdaInvoke},
		{cloudwatchListLogGroups, s.cloudwatchListLogGroups},
		{cloudwatchGetLogs, s.cloudwatchGetLogs},
		{awsStatus, s.awsStatus},
	}
}

// EC2

var (
	ec2ListInstances = mcp.NewTool("ec2_list_instances",
		mcp.WithDescription("List EC2 instances with their status, type, and IPs."),
		mcp.WithArray("filters",
			mcp.Description("Optional filters (e.g., [{'Name': 'instance-state-name', 'Values': ['running']}])"),
			mcp.Items(map[string]any{
				"type": "object",
				"properties": map[string]any{
					"Name":   map[string]any{"type": "string"},
					"Values": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
				},
				"required": []string{"Name", "Values"},
			}),
		),
		mcp.WithReadOnlyHintAnnotation(true),
	)
	ec2StartInstance = mcp.NewTool("ec2_start_instance",
		mcp.WithDescription("Start an EC2 instance."),
		mcp.WithString("instance_id", mcp.Required(), mcp.Description("EC2 instance ID (e.g., i-1234567890abcdef0)")),
		mcp.WithReadOnlyHintAnnotation(false),
	)
	ec2StopInstance = mcp.NewTool("ec2_stop_instance",
		mcp.WithDescription("Stop an EC2 instance."),
		mcp.WithString("instance_id", mcp.Required(), mcp.Description("EC2 instance ID")),
		mcp.WithReadOnlyHintAnnotation(false),
	)
	ec2DescribeInstance = mcp.NewTool("ec2_describe_instance",
		mcp.WithDescription("Get detailed information about a specific EC2 instance."),
		mcp.WithString("instance_id", mcp.Required(), mcp.Description("EC2 instance ID")),
		mcp.WithReadOnlyHintAnnotation(true),
	)
)

func (s *Server) ec2ListInstances(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var filters []operations.Filter
	if err := bind(req, "filters", &filters); err != nil {
		return toolResult("", err)
	}
	return jsonResult(operations.ListInstances(ctx, s.svc.EC2(), filters))
}

func (s *Server) ec2StartInstance(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return toolResult(operations.StartInstance(ctx, s.svc.EC2(), req.GetString("instance_id", "")))
}

func (s *Server) ec2StopInstance(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return toolResult(operations.StopInstance(ctx, s.svc.EC2(), req.GetString("instance_id", "")))
}

func (s *Server) ec2DescribeInstance(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(operations.DescribeInstance(ctx, s.svc.EC2(), req.GetString("instance_id", "")))
}

// S3

var (
	s3ListBuckets = mcp.NewTool("s3_list_buckets",
		mcp.WithDescription("List all S3 buckets in the account."),
		mcp.WithReadOnlyHintAnnotation(true),
	)
	s3ListObjects = mcp.NewTool("s3_list_objects",
		mcp.WithDescription("List objects in an S3 bucket."),
		mcp.WithString("bucket", mcp.Required(), mcp.Description("S3 bucket name")),
		mcp.WithString("prefix", mcp.Description("Optional prefix to filter objects")),
		mcp.WithNumber("max_keys", mcp.DefaultNumber(operations.DefaultMaxKeys), mcp.Description("Maximum number of keys to return (default 100)")),
		mcp.WithReadOnlyHintAnnotation(true),
	)
	s3GetObject = mcp.NewTool("s3_get_object",
		mcp.WithDescription("Get the contents of an S3 object (text files only)."),
		mcp.WithString("bucket", mcp.Required(), mcp.Description("S3 bucket name")),
		mcp.WithString("key", mcp.Required(), mcp.Description("Object key (path)")),
		mcp.WithReadOnlyHintAnnotation(true),
	)
	s3PutObject = mcp.NewTool("s3_put_object",
		mcp.WithDescription("Upload content to an S3 object."),
		mcp.WithString("bucket", mcp.Required(), mcp.Description("S3 bucket name")),
		mcp.WithString("key", mcp.Required(), mcp.Description("Object key (path)")),
		mcp.WithString("content", mcp.Required(), mcp.Description("Content to upload")),
		mcp.WithReadOnlyHintAnnotation(false),
	)
)

func (s *Server) s3ListBuckets(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(operations.ListBuckets(ctx, s.svc.S3()))
}

func (s *Server) s3ListObjects(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(operations.ListObjects(ctx, s.svc.S3(),
		req.GetString("bucket", ""),
		req.GetString("prefix", ""),
		req.GetInt("max_keys", operations.DefaultMaxKeys),
	))
}

func (s *Server) s3GetObject(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return toolResult(operations.GetObject(ctx, s.svc.S3(), req.GetString("bucket", ""), req.GetString("key", "")))
}

func (s *Server) s3PutObject(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return toolResult(operations.PutObject(ctx, s.svc.S3(),
		req.GetString("bucket", ""),
		req.GetString("key", ""),
		req.GetString("content", ""),
	))
}

// Secrets Manager

var (
	secretsList = mcp.NewTool("secrets_list",
		mcp.WithDescription("List secrets in AWS Secrets Manager."),
		mcp.WithNumber("max_results", mcp.DefaultNumber(operations.DefaultMaxSecrets), mcp.Description("Maximum number of results (default 100)")),
		mcp.WithReadOnlyHintAnnotation(true),
	)
	secretsGet = mcp.NewTool("secrets_get",
		mcp.WithDescription("Get a secret value from AWS Secrets Manager."),
		mcp.WithString("secret_id", mcp.Required(), mcp.Description("Secret name or ARN")),
		mcp.WithReadOnlyHintAnnotation(true),
	)
	secretsCreate = mcp.NewTool("secrets_create",
		mcp.WithDescription("Create a new secret in AWS Secrets Manager."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Name of the secret (e.g., 'prod/myapp/api-key')")),
		mcp.WithString("secret_value", mcp.Required(), mcp.Description("The secret value (string or JSON string)")),
		mcp.WithString("description", mcp.Description("Optional description for the secret")),
		mcp.WithReadOnlyHintAnnotation(false),
	)
)

func (s *Server) secretsList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(operations.ListSecrets(ctx, s.svc.SecretsManager(), req.GetInt("max_results", operations.DefaultMaxSecrets)))
}

func (s *Server) secretsGet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return toolResult(operations.GetSecret(ctx, s.svc.SecretsManager(), req.GetString("secret_id", "")))
}

func (s *Server) secretsCreate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(operations.CreateSecret(ctx, s.svc.SecretsManager(),
		req.GetString("name", ""),
		req.GetString("secret_value", ""),
		req.GetString("description", ""),
	))
}

// Lambda

var (
	lambdaListFunctions = mcp.NewTool("lambda_list_functions",
		mcp.WithDescription("List Lambda functions."),
		mcp.WithReadOnlyHintAnnotation(true),
	)
	lambdaInvoke = mcp.NewTool("lambda_invoke",
		mcp.WithDescription("Invoke a Lambda function."),
		mcp.WithString("function_name", mcp.Required(), mcp.Description("Lambda function name")),
		mcp.WithObject("payload", mcp.Description("JSON payload to send to the function")),
		mcp.WithReadOnlyHintAnnotation(false),
	)
)

func (s *Server) lambdaListFunctions(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(operations.ListFunctions(ctx, s.svc.Lambda()))
}

// lambdaInvoke also accepts the payload as a JSON encoded string, which some
// clients send for object arguments.
func (s *Server) lambdaInvoke(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var payload any
	if err := bind(req, "payload", &payload); err != nil {
		return toolResult("", err)
	}
	if raw, ok := payload.(string); ok {
		if err := json.Unmarshal([]byte(raw), &payload); err != nil {
			return toolResult("", fmt.Errorf("%w: payload is not valid JSON: %v", toolkit.ErrInvalidArgument, err))
		}
	}
	return toolResult(operations.Invoke(ctx, s.svc.Lambda(), req.GetString("function_name", ""), payload))
}

// CloudWatch Logs

var (
	cloudwatchListLogGroups = mcp.NewTool("cloudwatch_list_log_groups",
		mcp.WithDescription("List CloudWatch log groups."),
		mcp.WithString("prefix", mcp.Description("Optional prefix to filter log groups")),
		mcp.WithReadOnlyHintAnnotation(true),
	)
	cloudwatchGetLogs = mcp.NewTool("cloudwatch_get_logs",
		mcp.WithDescription("Get recent log events from a CloudWatch log group."),
		mcp.WithString("log_group", mcp.Required(), mcp.Description("CloudWatch log group name")),
		mcp.WithString("log_stream", mcp.Description("Optional log stream name")),
		mcp.WithNumber("limit", mcp.DefaultNumber(operations.DefaultLogLimit), mcp.Description("Maximum number of events (default 50)")),
		mcp.WithReadOnlyHintAnnotation(true),
	)
)

func (s *Server) cloudwatchListLogGroups(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(operations.ListLogGroups(ctx, s.svc.CloudWatchLogs(), req.GetString("prefix", "")))
}

func (s *Server) cloudwatchGetLogs(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(operations.GetLogs(ctx, s.svc.CloudWatchLogs(),
		req.GetString("log_group", ""),
		req.GetString("log_stream", ""),
		req.GetInt("limit", operations.DefaultLogLimit),
	))
}

// Status

var awsStatus = mcp.NewTool("aws_status",
	mcp.WithDescription("Check AWS connection status and configured region."),
	mcp.WithReadOnlyHintAnnotation(true),
)

// awsStatus reports problems as plain text without the usual prefixes.
func (s *Server) awsStatus(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	identity, err := operations.GetCallerIdentity(ctx, s.svc.STS(), s.svc.Region())
	switch {
	case err == nil:
		return jsonResult(toolkit.Status{Status: "connected", Identity: *identity}, nil)
	case awsx.IsCredentialsError(err):
		return nil, &reportedError{text: noCredentials}
	default:
		return nil, &reportedError{text: "Connection error: " + awsx.ErrorMessage(err)}
	}
}
