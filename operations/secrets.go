// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package operations

import (
	"context"
	"fmt"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"

	awsx "github.com/tfctl/awsmcp/aws"
)

// DefaultMaxSecrets caps ListSecrets when no positive limit is given.
const DefaultMaxSecrets = 100

const maxSecretsPage = 100

// Secret is one row of ListSecrets.
type Secret struct {
	Name string `json:"Name"`
	ARN  string `json:"ARN"`
}

// CreatedSecret is the result of CreateSecret.
type CreatedSecret struct {
	Status string `json:"status"`
	Name   string `json:"name"`
	ARN    string `json:"arn"`
}

// ListSecrets lists secret names and ARNs. Values are never fetched.
func ListSecrets(ctx context.Context, client awsx.SecretsManagerAPI, maxResults int) ([]Secret, error) {
	if maxResults <= 0 {
		maxResults = DefaultMaxSecrets
	}

	out, err := client.ListSecrets(ctx, &secretsmanager.ListSecretsInput{
		MaxResults: awsv2.Int32(clampInt32(maxResults, maxSecretsPage)),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list secrets: %w", err)
	}

	secrets := make([]Secret, 0, len(out.SecretList))
	for _, s := range out.SecretList {
		secrets = append(secrets, Secret{
			Name: awsv2.ToString(s.Name),
			ARN:  awsv2.ToString(s.ARN),
		})
	}
	return secrets, nil
}

// GetSecret returns the string value of a secret. Binary secrets are returned
// as their raw bytes; a secret with neither yields "".
func GetSecret(ctx context.Context, client awsx.SecretsManagerAPI, secretID string) (string, error) {
	if err := requireArgs("secret_id", secretID); err != nil {
		return "", err
	}

	out, err := client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: awsv2.String(secretID),
	})
	if err != nil {
		return "", fmt.Errorf("failed to get secret %s: %w", secretID, err)
	}

	switch {
	case out.SecretString != nil:
		return *out.SecretString, nil
	case out.SecretBinary != nil:
		return string(out.SecretBinary), nil
	}
	return "", nil
}

// CreateSecret stores a new string secret. An empty description is omitted.
func CreateSecret(ctx context.Context, client awsx.SecretsManagerAPI, name, value, description string) (*CreatedSecret, error) {
	if err := requireArgs("name", name); err != nil {
		return nil, err
	}
	if err := requireValue("secret_value", value); err != nil {
		return nil, err
	}

	input := &secretsmanager.CreateSecretInput{
		Name:         awsv2.String(name),
		SecretString: awsv2.String(value),
	}
	if description != "" {
		input.Description = awsv2.String(description)
	}

	out, err := client.CreateSecret(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to create secret %s: %w", name, err)
	}
	return &CreatedSecret{
		Status: "created",
		Name:   awsv2.ToString(out.Name),
		ARN:    awsv2.ToString(out.ARN),
	}, nil
}
