// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package operations

import (
	"context"
	"fmt"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/route53"

	awsx "github.com/tfctl/awsmcp/aws"
)

// HostedZone is one row of ListHostedZones.
type HostedZone struct {
	Name        string `json:"name"`
	ID          string `json:"id"`
	RecordCount int64  `json:"record_count"`
}

// ListHostedZones lists the account's Route 53 hosted zones.
func ListHostedZones(ctx context.Context, client awsx.Route53API) ([]HostedZone, error) {
	out, err := client.ListHostedZones(ctx, &route53.ListHostedZonesInput{})
	if err != nil {
		return nil, fmt.Errorf("failed to list hosted zones: %w", err)
	}

	zones := make([]HostedZone, 0, len(out.HostedZones))
	for _, z := range out.HostedZones {
		zones = append(zones, HostedZone{
			Name:        awsv2.ToString(z.Name),
			ID:          awsv2.ToString(z.Id),
			RecordCount: awsv2.ToInt64(z.ResourceRecordSetCount),
		})
	}
	return zones, nil
}
