// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package operations

import (
	"context"
	"fmt"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	awsx "github.com/tfctl/awsmcp/aws"
)

// Identity describes the caller along with the region the client is bound to.
type Identity struct {
	Region  string `json:"region"`
	Account string `json:"account"`
	ARN     string `json:"arn"`
	UserID  string `json:"user_id"`
}

// GetCallerIdentity asks STS who the configured credentials belong to.
func GetCallerIdentity(ctx context.Context, client awsx.STSAPI, region string) (*Identity, error) {
	out, err := client.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return nil, fmt.Errorf("failed to get caller identity: %w", err)
	}
	return &Identity{
		Region:  region,
		Account: awsv2.ToString(out.Account),
		ARN:     awsv2.ToString(out.Arn),
		UserID:  awsv2.ToString(out.UserId),
	}, nil
}
