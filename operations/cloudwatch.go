// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package operations

import (
	"context"
	"fmt"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	cwltypes "github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs/types"

	awsx "github.com/tfctl/awsmcp/aws"
	"github.com/tfctl/awsmcp/internal/log"
)

// DefaultLogLimit caps GetLogs when no positive limit is given.
const DefaultLogLimit = 50

const maxLogEventsPage = 10000

// LogGroup is one row of ListLogGroups.
type LogGroup struct {
	Name        string `json:"name"`
	StoredBytes int64  `json:"storedBytes"`
}

// LogEvent is one row of GetLogs. Timestamp is epoch milliseconds.
type LogEvent struct {
	Timestamp int64  `json:"timestamp"`
	Message   string `json:"message"`
}

// ListLogGroups lists log groups whose name starts with prefix.
func ListLogGroups(ctx context.Context, client awsx.CloudWatchLogsAPI, prefix string) ([]LogGroup, error) {
	input := &cloudwatchlogs.DescribeLogGroupsInput{}
	if prefix != "" {
		input.LogGroupNamePrefix = awsv2.String(prefix)
	}

	out, err := client.DescribeLogGroups(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to describe log groups: %w", err)
	}

	groups := make([]LogGroup, 0, len(out.LogGroups))
	for _, g := range out.LogGroups {
		groups = append(groups, LogGroup{
			Name:        awsv2.ToString(g.LogGroupName),
			StoredBytes: awsv2.ToInt64(g.StoredBytes),
		})
	}
	return groups, nil
}

// GetLogs returns up to limit events from stream. Without a stream the group's
// most recently written stream is used; a group with no streams yields no
// events.
func GetLogs(ctx context.Context, client awsx.CloudWatchLogsAPI, group, stream string, limit int) ([]LogEvent, error) {
	if err := requireArgs("log_group", group); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultLogLimit
	}

	events := make([]LogEvent, 0)
	if stream == "" {
		latest, err := latestStream(ctx, client, group)
		if err != nil {
			return nil, err
		}
		if latest == "" {
			log.Debugf("no streams: group=%s", group)
			return events, nil
		}
		stream = latest
	}

	out, err := client.GetLogEvents(ctx, &cloudwatchlogs.GetLogEventsInput{
		LogGroupName:  awsv2.String(group),
		LogStreamName: awsv2.String(stream),
		Limit:         awsv2.Int32(clampInt32(limit, maxLogEventsPage)),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get log events from %s/%s: %w", group, stream, err)
	}

	for _, e := range out.Events {
		events = append(events, LogEvent{
			Timestamp: awsv2.ToInt64(e.Timestamp),
			Message:   awsv2.ToString(e.Message),
		})
	}
	log.Debugf("events fetched: group=%s, stream=%s, count=%d", group, stream, len(events))
	return events, nil
}

func latestStream(ctx context.Context, client awsx.CloudWatchLogsAPI, group string) (string, error) {
	out, err := client.DescribeLogStreams(ctx, &cloudwatchlogs.DescribeLogStreamsInput{
		LogGroupName: awsv2.String(group),
		OrderBy:      cwltypes.OrderByLastEventTime,
		Descending:   awsv2.Bool(true),
		Limit:        awsv2.Int32(1),
	})
	if err != nil {
		return "", fmt.Errorf("failed to describe log streams in %s: %w", group, err)
	}
	if len(out.LogStreams) == 0 {
		return "", nil
	}
	return awsv2.ToString(out.LogStreams[0].LogStreamName), nil
}
