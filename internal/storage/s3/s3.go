package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/thebluefowl/spacesync/internal/storage"
)

// Compile-time check to ensure Client implements the storage interfaces
var (
	_ storage.Store  = (*Client)(nil)
	_ storage.Lister = (*Client)(nil)
)

// Client encapsulates an S3-compatible client (DigitalOcean Spaces,
// Backblaze B2, AWS S3) bound to one bucket.
type Client struct {
	client      *s3.Client
	bucket      string
	partSizeMB  int64
	concurrency int
}

// Opts holds options to initialize the client.
type Opts struct {
	Bucket      string
	Region      string
	Endpoint    string
	AccessKey   string
	SecretKey   string
	PartSizeMB  int64 // default 16
	Concurrency int   // default 4
}

// New builds a new client for an S3-compatible endpoint.
func New(ctx context.Context, opts *Opts) (*Client, error) {
	if opts.PartSizeMB <= 0 {
		opts.PartSizeMB = 16
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = 4
	}
	// region means nothing for most S3-compatible providers but the SDK
	// refuses to sign without one
	if opts.Region == "" {
		opts.Region = "us-east-1"
	}

	loadOpts := []func(*config.LoadOptions) error{
		config.WithRegion(opts.Region),
	}
	if opts.Endpoint != "" {
		loadOpts = append(loadOpts, config.WithBaseEndpoint(opts.Endpoint))
	}
	if opts.AccessKey != "" && opts.SecretKey != "" {
		loadOpts = append(loadOpts,
			config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, "")))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) { o.UsePathStyle = true })

	return &Client{
		client:      client,
		bucket:      opts.Bucket,
		partSizeMB:  opts.PartSizeMB,
		concurrency: opts.Concurrency,
	}, nil
}

// Exists checks for an object with a HEAD request.
func (c *Client) Exists(ctx context.Context, key string) (bool, error) {
	key = storage.NormalizeKey(key)
	_, err := c.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err == nil {
		return true, nil
	}
	if isNotFound(err) {
		return false, nil
	}
	return false, c.wrap("head", key, err)
}

// Write uploads data from a reader to the specified key.
func (c *Client) Write(ctx context.Context, key string, body io.Reader, opts storage.WriteOptions) error {
	key = storage.NormalizeKey(key)

	uploader := manager.NewUploader(c.client, func(m *manager.Uploader) {
		m.PartSize = c.partSizeMB * 1024 * 1024
		m.Concurrency = c.concurrency
	})

	input := &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(storage.ContentType(key, opts.ContentType)),
		ACL:         cannedACL(opts.Visibility),
	}

	if _, err := uploader.Upload(ctx, input); err != nil {
		return c.wrap("upload", key, err)
	}
	return nil
}

// Read retrieves an object and writes it to the provided writer.
func (c *Client) Read(ctx context.Context, key string, w io.Writer) error {
	key = storage.NormalizeKey(key)
	result, err := c.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return c.wrap("get", key, storage.ErrNotFound)
		}
		return c.wrap("get", key, err)
	}
	defer result.Body.Close()

	if _, err := io.Copy(w, result.Body); err != nil {
		return fmt.Errorf("copy object data: %w", err)
	}
	return nil
}

// Delete removes an object. S3 itself reports success for missing keys, so
// existence is checked first to surface ErrNotFound.
func (c *Client) Delete(ctx context.Context, key string) error {
	key = storage.NormalizeKey(key)
	ok, err := c.Exists(ctx, key)
	if err != nil {
		return err
	}
	if !ok {
		return c.wrap("delete", key, storage.ErrNotFound)
	}

	_, err = c.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return c.wrap("delete", key, err)
	}
	return nil
}

// List lists all objects in the bucket with optional prefix filtering.
// It automatically handles pagination to retrieve all objects.
func (c *Client) List(ctx context.Context, prefix string) ([]storage.ObjectInfo, error) {
	var objects []storage.ObjectInfo

	input := &s3.ListObjectsV2Input{
		Bucket: aws.String(c.bucket),
	}
	if prefix = storage.NormalizeKey(prefix); prefix != "" {
		input.Prefix = aws.String(prefix)
	}

	paginator := s3.NewListObjectsV2Paginator(c.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, c.wrap("list", prefix, err)
		}

		for _, obj := range page.Contents {
			lastMod := ""
			if obj.LastModified != nil {
				lastMod = obj.LastModified.String()
			}
			objects = append(objects, storage.ObjectInfo{
				Key:          aws.ToString(obj.Key),
				Size:         aws.ToInt64(obj.Size),
				LastModified: lastMod,
				ETag:         aws.ToString(obj.ETag),
			})
		}
	}

	return objects, nil
}

// Bucket returns the configured bucket name.
func (c *Client) Bucket() string {
	return c.bucket
}

func (c *Client) wrap(op, key string, err error) error {
	return &storage.Error{
		Op:   op,
		Key:  c.bucket + "/" + key,
		Code: errorCode(err),
		Err:  err,
	}
}

func cannedACL(v storage.Visibility) types.ObjectCannedACL {
	if v == storage.VisibilityPublic {
		return types.ObjectCannedACLPublicRead
	}
	return types.ObjectCannedACLPrivate
}

func errorCode(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode()
	}
	return ""
}

func isNotFound(err error) bool {
	var nf *types.NotFound
	var nsk *types.NoSuchKey
	if errors.As(err, &nf) || errors.As(err, &nsk) {
		return true
	}
	switch errorCode(err) {
	case "NotFound", "NoSuchKey":
		return true
	}
	var respErr *awshttp.ResponseError
	return errors.As(err, &respErr) && respErr.HTTPStatusCode() == http.StatusNotFound
}
