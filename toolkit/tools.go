// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package toolkit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	awsx "github.com/tfctl/awsmcp/aws"
	"github.com/tfctl/awsmcp/operations"
)

// registry builds the tools in the order they are listed.
func registry() []Tool {
	return []Tool{
		// EC2
		{ec2List, handleEC2List},
		{ec2Status, handleEC2Status},
		{ec2Start, handleEC2Start},
		{ec2Stop, handleEC2Stop},
		// S3
		{s3List, handleS3List},
		{s3ListBuckets, handleS3ListBuckets},
		{s3Get, handleS3Get},
		{s3Put, handleS3Put},
		// Secrets Manager
		{secretsGet, handleSecretsGet},
		{secretsList, handleSecretsList},
		{secretsCreate, handleSecretsCreate},
		// CloudWatch Logs
		{logsTail, handleLogsTail},
		// Lambda
		{lambdaList, handleLambdaList},
		{lambdaInvoke, handleLambdaInvoke},
		// IAM/STS
		{iamWhoami, handleIAMWhoami},
		{status, handleStatus},
		// ECR
		{ecrList, handleECRList},
		// Route53
		{route53List, handleRoute53List},
		// CloudFormation
		{cloudformationList, handleCloudFormationList},
	}
}

var regionArg = mcp.WithString("region", mcp.Description("AWS region"))

var (
	ec2List = mcp.NewTool("aws_ec2_list",
		mcp.WithDescription("List EC2 instances with ID, type, state, and name."),
		regionArg,
		mcp.WithString("state", mcp.Description("Filter by state: running, stopped, etc.")),
		mcp.WithReadOnlyHintAnnotation(true),
	)
	ec2Status = mcp.NewTool("aws_ec2_status",
		mcp.WithDescription("Get detailed information about a specific EC2 instance."),
		mcp.WithString("instance_id", mcp.Required(), mcp.Description("EC2 instance ID")),
		mcp.WithReadOnlyHintAnnotation(true),
	)
	ec2Start = mcp.NewTool("aws_ec2_start",
		mcp.WithDescription("Start an EC2 instance."),
		mcp.WithString("instance_id", mcp.Required(), mcp.Description("EC2 instance ID (e.g., i-1234567890abcdef0)")),
		mcp.WithReadOnlyHintAnnotation(false),
	)
	ec2Stop = mcp.NewTool("aws_ec2_stop",
		mcp.WithDescription("Stop an EC2 instance."),
		mcp.WithString("instance_id", mcp.Required(), mcp.Description("EC2 instance ID")),
		mcp.WithReadOnlyHintAnnotation(false),
	)
)

func handleEC2List(ctx context.Context, svc awsx.Services, req mcp.CallToolRequest) (string, error) {
	var filters []operations.Filter
	if state := strings.TrimSpace(req.GetString("state", "")); state != "" {
		filters = append(filters, operations.Filter{Name: "instance-state-name", Values: []string{state}})
	}
	return jsonText(operations.ListInstances(ctx, regional(svc, req).EC2(), filters))
}

func handleEC2Status(ctx context.Context, svc awsx.Services, req mcp.CallToolRequest) (string, error) {
	id, err := requireString(req, "instance_id")
	if err != nil {
		return "", err
	}
	return jsonText(operations.DescribeInstance(ctx, svc.EC2(), id))
}

func handleEC2Start(ctx context.Context, svc awsx.Services, req mcp.CallToolRequest) (string, error) {
	id, err := requireString(req, "instance_id")
	if err != nil {
		return "", err
	}
	return operations.StartInstance(ctx, svc.EC2(), id)
}

func handleEC2Stop(ctx context.Context, svc awsx.Services, req mcp.CallToolRequest) (string, error) {
	id, err := requireString(req, "instance_id")
	if err != nil {
		return "", err
	}
	return operations.StopInstance(ctx, svc.EC2(), id)
}

var (
	s3List = mcp.NewTool("aws_s3_list",
		mcp.WithDescription("List objects in an S3 bucket."),
		mcp.WithString("bucket", mcp.Required(), mcp.Description("S3 bucket name")),
		mcp.WithString("prefix", mcp.DefaultString(""), mcp.Description("Key prefix to filter objects")),
		mcp.WithNumber("max_items", mcp.DefaultNumber(100), mcp.Description("Maximum items to return")),
		mcp.WithReadOnlyHintAnnotation(true),
	)
	s3ListBuckets = mcp.NewTool("aws_s3_list_buckets",
		mcp.WithDescription("List all S3 buckets in the account."),
		mcp.WithReadOnlyHintAnnotation(true),
	)
	s3Get = mcp.NewTool("aws_s3_get",
		mcp.WithDescription("Read a text object from S3."),
		mcp.WithString("bucket", mcp.Required(), mcp.Description("S3 bucket name")),
		mcp.WithString("key", mcp.Required(), mcp.Description("Object key (path)")),
		mcp.WithReadOnlyHintAnnotation(true),
	)
	s3Put = mcp.NewTool("aws_s3_put",
		mcp.WithDescription("Upload text content to S3."),
		mcp.WithString("bucket", mcp.Required(), mcp.Description("S3 bucket name")),
		mcp.WithString("key", mcp.Required(), mcp.Description("Object key (destination path)")),
		mcp.WithString("content", mcp.Required(), mcp.Description("Content to upload")),
		mcp.WithReadOnlyHintAnnotation(false),
	)
)

func handleS3List(ctx context.Context, svc awsx.Services, req mcp.CallToolRequest) (string, error) {
	bucket, err := requireString(req, "bucket")
	if err != nil {
		return "", err
	}
	prefix := req.GetString("prefix", "")
	maxItems := req.GetInt("max_items", operations.DefaultMaxKeys)
	return jsonText(operations.ListObjects(ctx, svc.S3(), bucket, prefix, maxItems))
}

func handleS3ListBuckets(ctx context.Context, svc awsx.Services, _ mcp.CallToolRequest) (string, error) {
	return jsonText(operations.ListBuckets(ctx, svc.S3()))
}

func handleS3Get(ctx context.Context, svc awsx.Services, req mcp.CallToolRequest) (string, error) {
	bucket, err := requireString(req, "bucket")
	if err != nil {
		return "", err
	}
	key, err := requireString(req, "key")
	if err != nil {
		return "", err
	}
	return operations.GetObject(ctx, svc.S3(), bucket, key)
}

func handleS3Put(ctx context.Context, svc awsx.Services, req mcp.CallToolRequest) (string, error) {
	bucket, err := requireString(req, "bucket")
	if err != nil {
		return "", err
	}
	key, err := requireString(req, "key")
	if err != nil {
		return "", err
	}
	content, err := req.RequireString("content")
	if err != nil {
		return "", fmt.Errorf("%w: content", operations.ErrMissingArgument)
	}
	return operations.PutObject(ctx, svc.S3(), bucket, key, content)
}

var (
	secretsGet = mcp.NewTool("aws_secrets_get",
		mcp.WithDescription("Get a secret from AWS Secrets Manager. Returns the secret value. If JSON, returns it pretty-printed."),
		mcp.WithString("secret_name", mcp.Required(), mcp.Description("Secret name or ARN")),
		mcp.WithReadOnlyHintAnnotation(true),
	)
	secretsList = mcp.NewTool("aws_secrets_list",
		mcp.WithDescription("List secrets in AWS Secrets Manager."),
		mcp.WithString("filter_name", mcp.Description("Filter by name prefix")),
		mcp.WithNumber("max_results", mcp.DefaultNumber(50), mcp.Description("Maximum results")),
		mcp.WithReadOnlyHintAnnotation(true),
	)
	secretsCreate = mcp.NewTool("aws_secrets_create",
		mcp.WithDescription("Create a new secret in AWS Secrets Manager."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Secret name")),
		mcp.WithString("value", mcp.Required(), mcp.Description("Secret value (string or JSON)")),
		mcp.WithString("description", mcp.DefaultString(""), mcp.Description("Description")),
		mcp.WithReadOnlyHintAnnotation(false),
	)
)

func handleSecretsGet(ctx context.Context, svc awsx.Services, req mcp.CallToolRequest) (string, error) {
	name, err := requireString(req, "secret_name")
	if err != nil {
		return "", err
	}
	value, err := operations.GetSecret(ctx, svc.SecretsManager(), name)
	if err != nil {
		return "", err
	}
	return prettyJSON(value), nil
}

func handleSecretsList(ctx context.Context, svc awsx.Services, req mcp.CallToolRequest) (string, error) {
	secrets, err := operations.ListSecrets(ctx, svc.SecretsManager(), req.GetInt("max_results", 50))
	if err != nil {
		return "", err
	}
	if prefix := req.GetString("filter_name", ""); prefix != "" {
		filtered := make([]operations.Secret, 0, len(secrets))
		for _, s := range secrets {
			if strings.HasPrefix(s.Name, prefix) {
				filtered = append(filtered, s)
			}
		}
		secrets = filtered
	}
	return operations.ToJSON(secrets)
}

func handleSecretsCreate(ctx context.Context, svc awsx.Services, req mcp.CallToolRequest) (string, error) {
	name, err := requireString(req, "name")
	if err != nil {
		return "", err
	}
	value, err := requireValue(req, "value")
	if err != nil {
		return "", err
	}
	description := req.GetString("description", "")
	return jsonText(operations.CreateSecret(ctx, svc.SecretsManager(), name, value, description))
}

var logsTail = mcp.NewTool("aws_logs_tail",
	mcp.WithDescription("Get recent CloudWatch log events."),
	mcp.WithString("log_group", mcp.Required(), mcp.Description("CloudWatch log group name")),
	mcp.WithString("log_stream", mcp.Description("Specific log stream name")),
	mcp.WithNumber("limit", mcp.DefaultNumber(50), mcp.Description("Maximum events to return")),
	mcp.WithReadOnlyHintAnnotation(true),
)

func handleLogsTail(ctx context.Context, svc awsx.Services, req mcp.CallToolRequest) (string, error) {
	group, err := requireString(req, "log_group")
	if err != nil {
		return "", err
	}
	stream := req.GetString("log_stream", "")
	limit := req.GetInt("limit", operations.DefaultLogLimit)
	return jsonText(operations.GetLogs(ctx, svc.CloudWatchLogs(), group, stream, limit))
}

var (
	lambdaList = mcp.NewTool("aws_lambda_list",
		mcp.WithDescription("List Lambda functions."),
		regionArg,
		mcp.WithReadOnlyHintAnnotation(true),
	)
	lambdaInvoke = mcp.NewTool("aws_lambda_invoke",
		mcp.WithDescription("Invoke a Lambda function."),
		mcp.WithString("function_name", mcp.Required(), mcp.Description("Lambda function name or ARN")),
		mcp.WithString("payload", mcp.DefaultString("{}"), mcp.Description("JSON payload to pass to the function")),
		mcp.WithReadOnlyHintAnnotation(false),
	)
)

func handleLambdaList(ctx context.Context, svc awsx.Services, req mcp.CallToolRequest) (string, error) {
	return jsonText(operations.ListFunctions(ctx, regional(svc, req).Lambda()))
}

func handleLambdaInvoke(ctx context.Context, svc awsx.Services, req mcp.CallToolRequest) (string, error) {
	name, err := requireString(req, "function_name")
	if err != nil {
		return "", err
	}

	var payload any
	if raw := strings.TrimSpace(req.GetString("payload", "{}")); raw != "" {
		if err := json.Unmarshal([]byte(raw), &payload); err != nil {
			return "", fmt.Errorf("%w: payload is not valid JSON: %v", ErrInvalidArgument, err)
		}
	}
	return operations.Invoke(ctx, svc.Lambda(), name, payload)
}

var (
	iamWhoami = mcp.NewTool("aws_iam_whoami",
		mcp.WithDescription("Get the current AWS caller identity (who am I)."),
		mcp.WithReadOnlyHintAnnotation(true),
	)
	status = mcp.NewTool("aws_status",
		mcp.WithDescription("Check AWS connection status, region, account, and ARN."),
		mcp.WithReadOnlyHintAnnotation(true),
	)
)

// Status is the aws_status result.
type Status struct {
	Status string `json:"status"`
	operations.Identity
}

func handleIAMWhoami(ctx context.Context, svc awsx.Services, _ mcp.CallToolRequest) (string, error) {
	return jsonText(operations.GetCallerIdentity(ctx, svc.STS(), svc.Region()))
}

// handleStatus never fails; connection problems are reported as text.
func handleStatus(ctx context.Context, svc awsx.Services, _ mcp.CallToolRequest) (string, error) {
	identity, err := operations.GetCallerIdentity(ctx, svc.STS(), svc.Region())
	if err != nil {
		return "Connection error: " + awsx.ErrorMessage(err), nil
	}
	return operations.ToJSON(Status{Status: "connected", Identity: *identity})
}

var ecrList = mcp.NewTool("aws_ecr_list",
	mcp.WithDescription("List ECR repositories."),
	mcp.WithReadOnlyHintAnnotation(true),
)

func handleECRList(ctx context.Context, svc awsx.Services, _ mcp.CallToolRequest) (string, error) {
	return jsonText(operations.ListRepositories(ctx, svc.ECR()))
}

var route53List = mcp.NewTool("aws_route53_list",
	mcp.WithDescription("List Route53 hosted zones."),
	mcp.WithReadOnlyHintAnnotation(true),
)

func handleRoute53List(ctx context.Context, svc awsx.Services, _ mcp.CallToolRequest) (string, error) {
	return jsonText(operations.ListHostedZones(ctx, svc.Route53()))
}

var cloudformationList = mcp.NewTool("aws_cloudformation_list",
	mcp.WithDescription("List CloudFormation stacks."),
	mcp.WithString("status", mcp.Description("Filter by status (e.g. CREATE_COMPLETE, UPDATE_COMPLETE)")),
	mcp.WithReadOnlyHintAnnotation(true),
)

func handleCloudFormationList(ctx context.Context, svc awsx.Services, req mcp.CallToolRequest) (string, error) {
	var statusFilter []string
	if s := strings.TrimSpace(req.GetString("status", "")); s != "" {
		statusFilter = []string{s}
	}
	return jsonText(operations.ListStacks(ctx, svc.CloudFormation(), statusFilter))
}

// prettyJSON re-indents value when it is a JSON document and returns it
// unchanged otherwise. Key order is preserved.
func prettyJSON(value string) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(strings.TrimSpace(value)), "", "  "); err != nil {
		return value
	}
	return buf.String()
}
