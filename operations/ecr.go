// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package operations

import (
	"context"
	"fmt"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ecr"

	awsx "github.com/tfctl/awsmcp/aws"
)

// Repository is one row of ListRepositories.
type Repository struct {
	Name    string `json:"name"`
	URI     string `json:"uri"`
	Created string `json:"created"`
}

// ListRepositories lists the caller's ECR repositories.
func ListRepositories(ctx context.Context, client awsx.ECRAPI) ([]Repository, error) {
	out, err := client.DescribeRepositories(ctx, &ecr.DescribeRepositoriesInput{})
	if err != nil {
		return nil, fmt.Errorf("failed to describe repositories: %w", err)
	}

	repos := make([]Repository, 0, len(out.Repositories))
	for _, r := range out.Repositories {
		repos = append(repos, Repository{
			Name:    awsv2.ToString(r.RepositoryName),
			URI:     awsv2.ToString(r.RepositoryUri),
			Created: formatTime(r.CreatedAt),
		})
	}
	return repos, nil
}
