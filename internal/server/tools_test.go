// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package server

import (
	"context"
	"errors"
	"testing"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/aws/smithy-go"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	awsx "github.com/tfctl/awsmcp/aws"
	awsmock "github.com/tfctl/awsmcp/internal/aws/mock"
)

func request(name string, args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

// call runs the registered handler for name and returns its text.
func call(t *testing.T, s *Server, name string, args map[string]any) (string, bool) {
	t.Helper()
	h, ok := s.handlers[name]
	require.True(t, ok, "no handler for %s", name)

	res, err := h(context.Background(), request(name, args))
	require.NoError(t, err)
	require.NotNil(t, res)
	require.Len(t, res.Content, 1)

	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text, res.IsError
}

func newServer(t *testing.T, svc *awsmock.Services, opts ...Option) *Server {
	t.Helper()
	s, err := New(svc, opts...)
	require.NoError(t, err)
	return s
}

func TestEC2ListInstances_Filters(t *testing.T) {
	svc := awsmock.NewServices("us-east-1")
	svc.EC2API.On("DescribeInstances", mock.Anything, &ec2.DescribeInstancesInput{
		Filters: []ec2types.Filter{{Name: awsv2.String("instance-state-name"), Values: []string{"running"}}},
	}, mock.Anything).Return(&ec2.DescribeInstancesOutput{}, nil)

	text, isErr := call(t, newServer(t, svc), "ec2_list_instances", map[string]any{
		"filters": []any{map[string]any{"Name": "instance-state-name", "Values": []any{"running"}}},
	})
	assert.False(t, isErr)
	assert.Equal(t, "[]", text)
	svc.AssertExpectations(t)
}

func TestEC2ListInstances_BadFilters(t *testing.T) {
	svc := awsmock.NewServices("us-east-1")
	text, isErr := call(t, newServer(t, svc), "ec2_list_instances", map[string]any{"filters": "running"})
	assert.True(t, isErr)
	assert.Contains(t, text, "invalid argument: filters")
}

func TestEC2StartInstance(t *testing.T) {
	svc := awsmock.NewServices("us-east-1")
	svc.EC2API.On("StartInstances", mock.Anything, mock.Anything, mock.Anything).Return(&ec2.StartInstancesOutput{
		StartingInstances: []ec2types.InstanceStateChange{{
			InstanceId:   awsv2.String("i-1"),
			CurrentState: &ec2types.InstanceState{Name: ec2types.InstanceStateNamePending},
		}},
	}, nil)

	text, isErr := call(t, newServer(t, svc), "ec2_start_instance", map[string]any{"instance_id": "i-1"})
	assert.False(t, isErr)
	assert.Equal(t, "Instance i-1 is now pending", text)
}

func TestToolErrors(t *testing.T) {
	apiErr := &smithy.GenericAPIError{Code: "NoSuchBucket", Message: "The specified bucket does not exist"}

	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "api error", err: apiErr, want: "AWS Error: The specified bucket does not exist"},
		{name: "credentials", err: awsx.ErrNoCredentials, want: "Error: No AWS credentials configured"},
		{name: "other", err: errors.New("dial tcp: timeout"), want: "Error: failed to list buckets: dial tcp: timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := awsmock.NewServices("us-east-1")
			svc.S3API.On("ListBuckets", mock.Anything, mock.Anything, mock.Anything).Return(nil, tt.err)

			text, isErr := call(t, newServer(t, svc), "s3_list_buckets", nil)
			assert.False(t, isErr)
			assert.Equal(t, tt.want, text)
		})
	}
}

func TestMissingArguments(t *testing.T) {
	tests := []struct {
		tool string
		args map[string]any
		want string
	}{
		{tool: "ec2_stop_instance", args: nil, want: "missing required argument: instance_id"},
		{tool: "ec2_describe_instance", args: map[string]any{"instance_id": " "}, want: "missing required argument: instance_id"},
		{tool: "s3_list_objects", args: nil, want: "missing required argument: bucket"},
		{tool: "secrets_get", args: nil, want: "missing required argument: secret_id"},
		{tool: "secrets_create", args: map[string]any{"name": "a"}, want: "missing required argument: secret_value"},
		{tool: "lambda_invoke", args: nil, want: "missing required argument: function_name"},
		{tool: "cloudwatch_get_logs", args: nil, want: "missing required argument: log_group"},
	}

	for _, tt := range tests {
		t.Run(tt.tool, func(t *testing.T) {
			svc := awsmock.NewServices("us-east-1")
			text, isErr := call(t, newServer(t, svc), tt.tool, tt.args)
			assert.True(t, isErr)
			assert.Equal(t, tt.want, text)
			svc.AssertExpectations(t)
		})
	}
}

func TestS3ListObjects_MaxKeys(t *testing.T) {
	svc := awsmock.NewServices("us-east-1")
	svc.S3API.On("ListObjectsV2", mock.Anything, &s3.ListObjectsV2Input{
		Bucket:  awsv2.String("b"),
		MaxKeys: awsv2.Int32(7),
	}, mock.Anything).Return(&s3.ListObjectsV2Output{}, nil)

	_, isErr := call(t, newServer(t, svc), "s3_list_objects", map[string]any{"bucket": "b", "max_keys": float64(7)})
	assert.False(t, isErr)
	svc.AssertExpectations(t)
}

func TestSecretsGet_Verbatim(t *testing.T) {
	svc := awsmock.NewServices("us-east-1")
	svc.SecretsManagerAPI.On("GetSecretValue", mock.Anything, mock.Anything, mock.Anything).
		Return(&secretsmanager.GetSecretValueOutput{SecretString: awsv2.String(`{"a":1}`)}, nil)

	text, isErr := call(t, newServer(t, svc), "secrets_get", map[string]any{"secret_id": "s"})
	assert.False(t, isErr)
	assert.Equal(t, `{"a":1}`, text)
}

func TestLambdaInvoke_Payload(t *testing.T) {
	tests := []struct {
		name    string
		payload any
		want    string
	}{
		{name: "absent", payload: nil, want: `{}`},
		{name: "object", payload: map[string]any{"k": "v"}, want: `{"k":"v"}`},
		{name: "encoded string", payload: `{"k":"v"}`, want: `{"k":"v"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := awsmock.NewServices("us-east-1")
			svc.LambdaAPI.On("Invoke", mock.Anything, mock.MatchedBy(func(in *lambda.InvokeInput) bool {
				return string(in.Payload) == tt.want
			}), mock.Anything).Return(&lambda.InvokeOutput{Payload: []byte(`{"ok":true}`)}, nil)

			args := map[string]any{"function_name": "fn"}
			if tt.payload != nil {
				args["payload"] = tt.payload
			}
			text, isErr := call(t, newServer(t, svc), "lambda_invoke", args)
			assert.False(t, isErr)
			assert.Equal(t, `{"ok":true}`, text)
			svc.AssertExpectations(t)
		})
	}
}

func TestLambdaInvoke_BadPayload(t *testing.T) {
	svc := awsmock.NewServices("us-east-1")
	text, isErr := call(t, newServer(t, svc), "lambda_invoke", map[string]any{"function_name": "fn", "payload": "{"})
	assert.True(t, isErr)
	assert.Contains(t, text, "payload is not valid JSON")
}

func TestAWSStatus(t *testing.T) {
	tests := []struct {
		name   string
		out    *sts.GetCallerIdentityOutput
		err    error
		want   string
		isJSON bool
	}{
		{
			name: "connected",
			out: &sts.GetCallerIdentityOutput{
				Account: awsv2.String("123456789012"),
				Arn:     awsv2.String("arn:aws:iam::123456789012:user/dev"),
				UserId:  awsv2.String("AIDA"),
			},
			want:   `{"status":"connected","region":"eu-central-1","account":"123456789012","arn":"arn:aws:iam::123456789012:user/dev","user_id":"AIDA"}`,
			isJSON: true,
		},
		{name: "no credentials", err: awsx.ErrNoCredentials, want: "No AWS credentials configured"},
		{name: "api error", err: &smithy.GenericAPIError{Code: "ExpiredToken", Message: "token expired"}, want: "Connection error: token expired"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := awsmock.NewServices("eu-central-1")
			svc.STSAPI.On("GetCallerIdentity", mock.Anything, mock.Anything, mock.Anything).Return(tt.out, tt.err)

			text, isErr := call(t, newServer(t, svc), "aws_status", nil)
			assert.False(t, isErr)
			if tt.isJSON {
				assert.JSONEq(t, tt.want, text)
			} else {
				assert.Equal(t, tt.want, text)
			}
		})
	}
}

func TestAgentToolset(t *testing.T) {
	svc := awsmock.NewServices("us-east-1")
	svc.S3API.On("ListBuckets", mock.Anything, mock.Anything, mock.Anything).Return(&s3.ListBucketsOutput{}, nil)
	s := newServer(t, svc, WithToolset(ToolsetAgent))

	text, isErr := call(t, s, "aws_s3_list_buckets", nil)
	assert.False(t, isErr)
	assert.Equal(t, "[]", text)

	text, isErr = call(t, s, "aws_s3_get", map[string]any{"bucket": "b"})
	assert.True(t, isErr)
	assert.Equal(t, "missing required argument: key", text)
}
