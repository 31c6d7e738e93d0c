package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// api is the slice of the S3 API the client uses. Satisfied by
// *s3.Client; replaced with fakes in tests.
type api interface {
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Client copies object trees out of an S3-compatible store.
type Client struct {
	s3 api
}

// NewClient creates a storage client against the given endpoint.
// Credentials are taken from the default SDK chain; for the GCS
// interoperability endpoint these are HMAC keys provisioned by the
// build workflow.
func NewClient(ctx context.Context, endpoint, region string) (*Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(region),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load storage config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
	})

	return &Client{s3: client}, nil
}

// Download recursively copies every object under the source URI
// (gs://bucket/prefix or s3://bucket/prefix) into dir, preserving the
// key structure below the prefix.
func (c *Client) Download(ctx context.Context, source, dir string) error {
	bucket, prefix, err := ParseURI(source)
	if err != nil {
		return err
	}

	keys, err := c.listAll(ctx, bucket, prefix)
	if err != nil {
		if isNoSuchBucket(err) {
			return fmt.Errorf("bucket %s does not exist: %w", bucket, err)
		}
		return fmt.Errorf("failed to list objects under %s: %w", source, err)
	}
	if len(keys) == 0 {
		return fmt.Errorf("no objects found under %s", source)
	}

	for _, key := range keys {
		if err := c.downloadObject(ctx, bucket, prefix, key, dir); err != nil {
			return err
		}
	}

	return nil
}

// listAll walks ListObjectsV2 pages and returns every key under prefix.
func (c *Client) listAll(ctx context.Context, bucket, prefix string) ([]string, error) {
	input := &s3.ListObjectsV2Input{
		Bucket: aws.String(bucket),
	}
	if prefix != "" {
		input.Prefix = aws.String(prefix + "/")
	}

	var keys []string
	for {
		out, err := c.s3.ListObjectsV2(ctx, input)
		if err != nil {
			return nil, err
		}
		for _, obj := range out.Contents {
			if obj.Key == nil || strings.HasSuffix(*obj.Key, "/") {
				continue
			}
			keys = append(keys, *obj.Key)
		}
		if out.IsTruncated == nil || !*out.IsTruncated {
			break
		}
		input.ContinuationToken = out.NextContinuationToken
	}

	return keys, nil
}

// downloadObject fetches one key into dir, keeping the path relative
// to the prefix.
func (c *Client) downloadObject(ctx context.Context, bucket, prefix, key, dir string) error {
	out, err := c.s3.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to get object %s from bucket %s: %w", key, bucket, err)
	}
	defer out.Body.Close()

	rel := strings.TrimPrefix(key, prefix)
	rel = strings.TrimPrefix(rel, "/")
	dest := filepath.Join(dir, filepath.FromSlash(rel))

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(dest), err)
	}

	f, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dest, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, out.Body); err != nil {
		return fmt.Errorf("failed to write %s: %w", dest, err)
	}

	return nil
}
