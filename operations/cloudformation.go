// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package operations

import (
	"context"
	"fmt"
	"strings"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	cftypes "github.com/aws/aws-sdk-go-v2/service/cloudformation/types"

	awsx "github.com/tfctl/awsmcp/aws"
)

// Stack is one row of ListStacks.
type Stack struct {
	Name    string `json:"name"`
	Status  string `json:"status"`
	Created string `json:"created"`
}

// ListStacks lists stacks, optionally narrowed to the given statuses such as
// CREATE_COMPLETE. Status values are upper-cased before use.
func ListStacks(ctx context.Context, client awsx.CloudFormationAPI, statusFilter []string) ([]Stack, error) {
	input := &cloudformation.ListStacksInput{}
	for _, s := range statusFilter {
		if s = strings.ToUpper(strings.TrimSpace(s)); s != "" {
			input.StackStatusFilter = append(input.StackStatusFilter, cftypes.StackStatus(s))
		}
	}

	out, err := client.ListStacks(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to list stacks: %w", err)
	}

	stacks := make([]Stack, 0, len(out.StackSummaries))
	for _, s := range out.StackSummaries {
		stacks = append(stacks, Stack{
			Name:    awsv2.ToString(s.StackName),
			Status:  string(s.StackStatus),
			Created: formatTime(s.CreationTime),
		})
	}
	return stacks, nil
}
