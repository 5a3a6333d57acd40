package minio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/thebluefowl/spacesync/internal/storage"
)

var (
	_ storage.Store  = (*Client)(nil)
	_ storage.Lister = (*Client)(nil)
)

// Client is a storage.Store backed by minio-go.
type Client struct {
	client *minio.Client
	bucket string
}

// Opts holds options to initialize the client.
type Opts struct {
	Bucket    string
	Region    string
	Endpoint  string // host[:port] or a full URL; the scheme selects TLS
	AccessKey string
	SecretKey string
}

// New creates a minio client for the configured endpoint.
func New(opts *Opts) (*Client, error) {
	host, secure, err := splitEndpoint(opts.Endpoint)
	if err != nil {
		return nil, err
	}

	client, err := minio.New(host, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: secure,
		Region: opts.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	return &Client{client: client, bucket: opts.Bucket}, nil
}

// Exists stats the object.
func (c *Client) Exists(ctx context.Context, key string) (bool, error) {
	key = storage.NormalizeKey(key)
	_, err := c.client.StatObject(ctx, c.bucket, key, minio.StatObjectOptions{})
	if err == nil {
		return true, nil
	}
	if isNotFound(err) {
		return false, nil
	}
	return false, c.wrap("stat", key, err)
}

// Write streams body to the bucket. Public objects get the public-read ACL.
func (c *Client) Write(ctx context.Context, key string, body io.Reader, opts storage.WriteOptions) error {
	key = storage.NormalizeKey(key)
	putOpts := minio.PutObjectOptions{
		ContentType: storage.ContentType(key, opts.ContentType),
	}
	if opts.Visibility == storage.VisibilityPublic {
		putOpts.UserMetadata = map[string]string{"x-amz-acl": "public-read"}
	}

	if _, err := c.client.PutObject(ctx, c.bucket, key, body, -1, putOpts); err != nil {
		return c.wrap("put", key, err)
	}
	return nil
}

// Read copies the object into w.
func (c *Client) Read(ctx context.Context, key string, w io.Writer) error {
	key = storage.NormalizeKey(key)
	obj, err := c.client.GetObject(ctx, c.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return c.wrap("get", key, err)
	}
	defer obj.Close()

	if _, err := io.Copy(w, obj); err != nil {
		if isNotFound(err) {
			return c.wrap("get", key, storage.ErrNotFound)
		}
		return c.wrap("get", key, err)
	}
	return nil
}

// Delete removes the object, reporting ErrNotFound for missing keys.
func (c *Client) Delete(ctx context.Context, key string) error {
	key = storage.NormalizeKey(key)
	ok, err := c.Exists(ctx, key)
	if err != nil {
		return err
	}
	if !ok {
		return c.wrap("delete", key, storage.ErrNotFound)
	}
	if err := c.client.RemoveObject(ctx, c.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return c.wrap("delete", key, err)
	}
	return nil
}

// List returns every object under prefix.
func (c *Client) List(ctx context.Context, prefix string) ([]storage.ObjectInfo, error) {
	var objects []storage.ObjectInfo
	for obj := range c.client.ListObjects(ctx, c.bucket, minio.ListObjectsOptions{
		Prefix:    storage.NormalizeKey(prefix),
		Recursive: true,
	}) {
		if obj.Err != nil {
			return nil, c.wrap("list", prefix, obj.Err)
		}
		objects = append(objects, storage.ObjectInfo{
			Key:          obj.Key,
			Size:         obj.Size,
			LastModified: obj.LastModified.String(),
			ETag:         obj.ETag,
		})
	}
	return objects, nil
}

func (c *Client) wrap(op, key string, err error) error {
	code := minio.ToErrorResponse(err).Code
	return &storage.Error{Op: op, Key: c.bucket + "/" + key, Code: code, Err: err}
}

func isNotFound(err error) bool {
	if errors.Is(err, storage.ErrNotFound) {
		return true
	}
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey", "NotFound":
		return true
	}
	return false
}

// splitEndpoint accepts "https://nyc3.digitaloceanspaces.com" or a bare
// host. Bare hosts default to TLS.
func splitEndpoint(endpoint string) (host string, secure bool, err error) {
	if endpoint == "" {
		return "", false, errors.New("minio: endpoint required")
	}
	if !strings.Contains(endpoint, "://") {
		return endpoint, true, nil
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", false, fmt.Errorf("minio: parse endpoint: %w", err)
	}
	switch u.Scheme {
	case "https":
		secure = true
	case "http":
	default:
		return "", false, fmt.Errorf("minio: unsupported scheme %q", u.Scheme)
	}
	return u.Host, secure, nil
}
