package backup

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// snapshotContentType matches the JSONL stream ExportJSONL produces.
const snapshotContentType = "application/x-ndjson"

// S3Options configures an S3Destination. The fields mirror the backup.s3_*
// config keys. A non-empty Endpoint switches the client to path-style
// addressing, for MinIO and other S3-compatible stores.
type S3Options struct {
	Bucket   string
	Key      string
	Region   string
	Endpoint string
}

// S3Destination uploads each snapshot to a single bucket object, overwriting
// the previous one. Credentials come from the standard AWS chain (env,
// shared config, instance role).
type S3Destination struct {
	client *s3.Client
	opts   S3Options
}

func NewS3Destination(ctx context.Context, opts S3Options) (*S3Destination, error) {
	if opts.Bucket == "" || opts.Key == "" {
		return nil, fmt.Errorf("s3 backup destination needs both bucket and key")
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(opts.Region))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	var s3opts []func(*s3.Options)
	if opts.Endpoint != "" {
		s3opts = append(s3opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		})
	}

	return &S3Destination{
		client: s3.NewFromConfig(cfg, s3opts...),
		opts:   opts,
	}, nil
}

// Write uploads the snapshot to the configured object key.
func (d *S3Destination) Write(ctx context.Context, data []byte) error {
	_, err := d.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(d.opts.Bucket),
		Key:         aws.String(d.opts.Key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(snapshotContentType),
	})
	if err != nil {
		return fmt.Errorf("uploading snapshot to s3://%s/%s: %w", d.opts.Bucket, d.opts.Key, err)
	}
	return nil
}
