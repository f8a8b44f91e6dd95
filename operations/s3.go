// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package operations

import (
	"context"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	awsx "github.com/tfctl/awsmcp/aws"
	"github.com/tfctl/awsmcp/internal/log"
)

// DefaultMaxKeys caps ListObjects when no positive limit is given.
const DefaultMaxKeys = 100

const maxKeysPage = 1000

// Bucket is one row of ListBuckets.
type Bucket struct {
	Name    string `json:"Name"`
	Created string `json:"Created"`
}

// Object is one row of ListObjects.
type Object struct {
	Key      string `json:"Key"`
	Size     int64  `json:"Size"`
	Modified string `json:"Modified"`
}

// ListBuckets lists every bucket owned by the caller.
func ListBuckets(ctx context.Context, client awsx.S3API) ([]Bucket, error) {
	out, err := client.ListBuckets(ctx, &s3.ListBucketsInput{})
	if err != nil {
		return nil, fmt.Errorf("failed to list buckets: %w", err)
	}

	buckets := make([]Bucket, 0, len(out.Buckets))
	for _, b := range out.Buckets {
		buckets = append(buckets, Bucket{
			Name:    awsv2.ToString(b.Name),
			Created: formatTime(b.CreationDate),
		})
	}
	return buckets, nil
}

// ListObjects lists up to maxKeys objects under prefix. An empty prefix lists
// from the bucket root.
func ListObjects(ctx context.Context, client awsx.S3API, bucket, prefix string, maxKeys int) ([]Object, error) {
	if err := requireArgs("bucket", bucket); err != nil {
		return nil, err
	}
	if maxKeys <= 0 {
		maxKeys = DefaultMaxKeys
	}

	input := &s3.ListObjectsV2Input{
		Bucket:  awsv2.String(bucket),
		MaxKeys: awsv2.Int32(clampInt32(maxKeys, maxKeysPage)),
	}
	if prefix != "" {
		input.Prefix = awsv2.String(prefix)
	}

	out, err := client.ListObjectsV2(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to list objects in %s: %w", bucket, err)
	}

	objects := make([]Object, 0, len(out.Contents))
	for _, o := range out.Contents {
		objects = append(objects, Object{
			Key:      awsv2.ToString(o.Key),
			Size:     awsv2.ToInt64(o.Size),
			Modified: formatTime(o.LastModified),
		})
	}
	log.Debugf("objects listed: bucket=%s, prefix=%s, count=%d", bucket, prefix, len(objects))
	return objects, nil
}

// GetObject reads an object and returns its content as text.
func GetObject(ctx context.Context, client awsx.S3API, bucket, key string) (string, error) {
	if err := requireArgs("bucket", bucket, "key", key); err != nil {
		return "", err
	}

	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: awsv2.String(bucket),
		Key:    awsv2.String(key),
	})
	if err != nil {
		return "", fmt.Errorf("failed to get s3://%s/%s: %w", bucket, key, err)
	}
	defer out.Body.Close()

	body, err := io.ReadAll(out.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read s3://%s/%s: %w", bucket, key, err)
	}
	if !utf8.Valid(body) {
		return "", fmt.Errorf("s3://%s/%s: %w", bucket, key, ErrNotText)
	}
	return string(body), nil
}

// PutObject uploads content as the body of bucket/key.
func PutObject(ctx context.Context, client awsx.S3API, bucket, key, content string) (string, error) {
	if err := requireArgs("bucket", bucket, "key", key); err != nil {
		return "", err
	}

	_, err := client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: awsv2.String(bucket),
		Key:    awsv2.String(key),
		Body:   strings.NewReader(content),
	})
	if err != nil {
		return "", fmt.Errorf("failed to put s3://%s/%s: %w", bucket, key, err)
	}
	return fmt.Sprintf("Successfully uploaded to s3://%s/%s", bucket, key), nil
}
