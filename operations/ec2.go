// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package operations

import (
	"context"
	"fmt"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"

	awsx "github.com/tfctl/awsmcp/aws"
	"github.com/tfctl/awsmcp/internal/log"
)

// Filter narrows DescribeInstances, e.g.
// {Name: "instance-state-name", Values: ["running"]}.
type Filter struct {
	Name   string   `json:"Name"`
	Values []string `json:"Values"`
}

// Instance is the summary row produced by ListInstances.
type Instance struct {
	InstanceID string `json:"InstanceId"`
	Name       string `json:"Name"`
	State      string `json:"State"`
	Type       string `json:"Type"`
	PrivateIP  string `json:"PrivateIp"`
	PublicIP   string `json:"PublicIp"`
}

// ListInstances describes instances matching filters and flattens the
// reservations into one list.
func ListInstances(ctx context.Context, client awsx.EC2API, filters []Filter) ([]Instance, error) {
	input := &ec2.DescribeInstancesInput{}
	for _, f := range filters {
		input.Filters = append(input.Filters, ec2types.Filter{
			Name:   awsv2.String(f.Name),
			Values: f.Values,
		})
	}

	out, err := client.DescribeInstances(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to describe instances: %w", err)
	}

	instances := make([]Instance, 0)
	for _, r := range out.Reservations {
		for _, i := range r.Instances {
			instances = append(instances, Instance{
				InstanceID: awsv2.ToString(i.InstanceId),
				Name:       nameTag(i.Tags),
				State:      stateName(i.State),
				Type:       string(i.InstanceType),
				PrivateIP:  orNA(i.PrivateIpAddress),
				PublicIP:   orNA(i.PublicIpAddress),
			})
		}
	}
	log.Debugf("instances listed: filters=%d, count=%d", len(filters), len(instances))
	return instances, nil
}

// StartInstance starts one instance and reports the state it moved to.
func StartInstance(ctx context.Context, client awsx.EC2API, instanceID string) (string, error) {
	if err := requireArgs("instance_id", instanceID); err != nil {
		return "", err
	}

	out, err := client.StartInstances(ctx, &ec2.StartInstancesInput{
		InstanceIds: []string{instanceID},
	})
	if err != nil {
		return "", fmt.Errorf("failed to start instance %s: %w", instanceID, err)
	}
	return stateChange(instanceID, out.StartingInstances)
}

// StopInstance stops one instance and reports the state it moved to.
func StopInstance(ctx context.Context, client awsx.EC2API, instanceID string) (string, error) {
	if err := requireArgs("instance_id", instanceID); err != nil {
		return "", err
	}

	out, err := client.StopInstances(ctx, &ec2.StopInstancesInput{
		InstanceIds: []string{instanceID},
	})
	if err != nil {
		return "", fmt.Errorf("failed to stop instance %s: %w", instanceID, err)
	}
	return stateChange(instanceID, out.StoppingInstances)
}

// DescribeInstance returns the full SDK description of one instance.
func DescribeInstance(ctx context.Context, client awsx.EC2API, instanceID string) (*ec2types.Instance, error) {
	if err := requireArgs("instance_id", instanceID); err != nil {
		return nil, err
	}

	out, err := client.DescribeInstances(ctx, &ec2.DescribeInstancesInput{
		InstanceIds: []string{instanceID},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to describe instance %s: %w", instanceID, err)
	}
	if len(out.Reservations) == 0 || len(out.Reservations[0].Instances) == 0 {
		return nil, fmt.Errorf("instance %s: %w", instanceID, ErrNotFound)
	}
	return &out.Reservations[0].Instances[0], nil
}

func stateChange(instanceID string, changes []ec2types.InstanceStateChange) (string, error) {
	if len(changes) == 0 {
		return "", fmt.Errorf("instance %s: %w", instanceID, ErrNotFound)
	}
	return fmt.Sprintf("Instance %s is now %s", instanceID, stateName(changes[0].CurrentState)), nil
}

func nameTag(tags []ec2types.Tag) string {
	for _, t := range tags {
		if awsv2.ToString(t.Key) == "Name" {
			return awsv2.ToString(t.Value)
		}
	}
	return notAvailable
}

func stateName(s *ec2types.InstanceState) string {
	if s == nil {
		return ""
	}
	return string(s.Name)
}
