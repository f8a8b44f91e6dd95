// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package operations

import (
	"context"
	"encoding/json"
	"fmt"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lambda"

	awsx "github.com/tfctl/awsmcp/aws"
	"github.com/tfctl/awsmcp/internal/log"
)

// Function is one row of ListFunctions.
type Function struct {
	Name    string `json:"Name"`
	Runtime string `json:"Runtime"`
	Memory  int32  `json:"Memory"`
	Timeout int32  `json:"Timeout"`
}

// ListFunctions lists Lambda functions. Container image functions have no
// runtime and report N/A.
func ListFunctions(ctx context.Context, client awsx.LambdaAPI) ([]Function, error) {
	out, err := client.ListFunctions(ctx, &lambda.ListFunctionsInput{})
	if err != nil {
		return nil, fmt.Errorf("failed to list functions: %w", err)
	}

	functions := make([]Function, 0, len(out.Functions))
	for _, f := range out.Functions {
		runtime := string(f.Runtime)
		if runtime == "" {
			runtime = notAvailable
		}
		functions = append(functions, Function{
			Name:    awsv2.ToString(f.FunctionName),
			Runtime: runtime,
			Memory:  awsv2.ToInt32(f.MemorySize),
			Timeout: awsv2.ToInt32(f.Timeout),
		})
	}
	return functions, nil
}

// Invoke calls a function synchronously with payload encoded as JSON. A nil
// payload is sent as {}. The response payload is returned verbatim.
func Invoke(ctx context.Context, client awsx.LambdaAPI, functionName string, payload any) (string, error) {
	if err := requireArgs("function_name", functionName); err != nil {
		return "", err
	}
	if payload == nil {
		payload = map[string]any{}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode payload: %w", err)
	}

	out, err := client.Invoke(ctx, &lambda.InvokeInput{
		FunctionName: awsv2.String(functionName),
		Payload:      body,
	})
	if err != nil {
		return "", fmt.Errorf("failed to invoke %s: %w", functionName, err)
	}
	if out.FunctionError != nil {
		log.Warnf("function error: name=%s, error=%s", functionName, *out.FunctionError)
	}
	return string(out.Payload), nil
}
