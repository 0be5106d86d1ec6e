package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"go.uber.org/zap"

	"github.com/supanut9/store-it/config"
	"github.com/supanut9/store-it/internal/domain/storage"
	"github.com/supanut9/store-it/pkg/filetype"
)

const (
	sniffLen    = 512
	metaName    = "filename"
	defaultMIME = "application/octet-stream"
)

// API is the part of *s3.Client the store calls.
type API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	HeadObject(ctx context.Context, in *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

var newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) API {
	return s3.NewFromConfig(cfg, optFns...)
}

type Client struct {
	logger   *zap.Logger
	api      API
	endpoint string
	project  string
	bucket   string
}

func New(
	ctx context.Context,
	logger *zap.Logger,
	cfg config.S3,
	backend config.Backend,
) (*Client, error) {
	loadOpts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	api := newS3ClientFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	return NewWithAPI(logger, api, backend), nil
}

func NewWithAPI(logger *zap.Logger, api API, backend config.Backend) *Client {
	return &Client{
		logger:   logger,
		api:      api,
		endpoint: strings.TrimRight(backend.Endpoint, "/"),
		project:  backend.ProjectID,
		bucket:   backend.BucketID,
	}
}

// GetPublicURL is the view URL of a file stored in the default bucket.
func (c *Client) GetPublicURL(fileID string) string {
	return fmt.Sprintf(
		"%s/storage/buckets/%s/files/%s/view?project=%s",
		c.endpoint,
		url.PathEscape(c.bucket),
		url.PathEscape(fileID),
		url.QueryEscape(c.project),
	)
}

func (c *Client) GetBucket() string { return c.bucket }

func (c *Client) objectKey(fileID string) string {
	return c.project + "/" + fileID
}

func (c *Client) CreateFile(ctx context.Context, bucketID, fileID string, in storage.InputFile) (*storage.Object, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	key := c.objectKey(fileID)

	var sniff [sniffLen]byte
	n, readErr := io.ReadFull(in.Reader, sniff[:])
	if readErr != nil && readErr != io.EOF && readErr != io.ErrUnexpectedEOF {
		return nil, fmt.Errorf("read sniff: %w", readErr)
	}
	mimeType := filetype.DetectMIME(sniff[:n])

	// a seekable payload is rewound and handed over as is so the SDK can retry it
	var (
		body    io.Reader
		counter *countingReader
	)
	if rs, ok := in.Reader.(io.ReadSeeker); ok {
		if _, err := rs.Seek(0, io.SeekStart); err != nil {
			return nil, fmt.Errorf("rewind payload: %w", err)
		}
		body = rs
	} else {
		counter = &countingReader{r: io.MultiReader(bytes.NewReader(sniff[:n]), in.Reader)}
		body = counter
	}

	input := &s3.PutObjectInput{
		Bucket:             aws.String(bucketID),
		Key:                aws.String(key),
		Body:               body,
		ContentType:        aws.String(mimeType),
		ContentDisposition: aws.String(fmt.Sprintf("inline; filename=%q", sanitizeFileName(in.Name))),
		Metadata:           map[string]string{metaName: url.QueryEscape(in.Name)},
	}
	if in.Size > 0 {
		input.ContentLength = aws.Int64(in.Size)
	}

	if _, err := c.api.PutObject(ctx, input); err != nil {
		return nil, fmt.Errorf("s3 put object bucket=%s key=%s: %w", bucketID, key, err)
	}

	obj := &storage.Object{
		ID:           fileID,
		BucketID:     bucketID,
		Name:         in.Name,
		SizeOriginal: in.Size,
		MimeType:     mimeType,
	}
	if counter != nil {
		obj.SizeOriginal = counter.n
	}

	head, err := c.api.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(bucketID),
		Key:    aws.String(key),
	})
	if err != nil {
		// the object is written; keep what was counted locally
		c.logger.Warn("s3 head after put failed",
			zap.String("bucket", bucketID), zap.String("key", key), zap.Error(err))
		return obj, nil
	}
	if head.ContentLength != nil {
		obj.SizeOriginal = aws.ToInt64(head.ContentLength)
	}
	if head.ContentType != nil {
		obj.MimeType = aws.ToString(head.ContentType)
	}

	return obj, nil
}

func (c *Client) DeleteFile(ctx context.Context, bucketID, fileID string) error {
	key := c.objectKey(fileID)
	if _, err := c.api.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucketID),
		Key:    aws.String(key),
	}); err != nil {
		return fmt.Errorf("s3 delete object bucket=%s key=%s: %w", bucketID, key, err)
	}
	return nil
}

// GetFileView opens the object for reading. The caller closes the body.
func (c *Client) GetFileView(ctx context.Context, bucketID, fileID string) (io.ReadCloser, *storage.Object, error) {
	key := c.objectKey(fileID)
	out, err := c.api.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucketID),
		Key:    aws.String(key),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, nil, fmt.Errorf("object %s: %w", key, storage.ErrObjectNotFound)
		}
		return nil, nil, fmt.Errorf("s3 get object bucket=%s key=%s: %w", bucketID, key, err)
	}

	obj := &storage.Object{
		ID:           fileID,
		BucketID:     bucketID,
		Name:         originalName(out.Metadata, fileID),
		SizeOriginal: aws.ToInt64(out.ContentLength),
		MimeType:     aws.ToString(out.ContentType),
	}
	if obj.MimeType == "" {
		obj.MimeType = defaultMIME
	}

	return out.Body, obj, nil
}

func (c *Client) FileExists(ctx context.Context, bucketID, fileID string) (bool, error) {
	key := c.objectKey(fileID)
	_, err := c.api.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(bucketID),
		Key:    aws.String(key),
	})
	if err != nil {
		var notFound *types.NotFound
		if errors.As(err, &notFound) {
			return false, nil
		}
		return false, fmt.Errorf("s3 head object bucket=%s key=%s: %w", bucketID, key, err)
	}
	return true, nil
}

func originalName(meta map[string]string, fallback string) string {
	raw, ok := meta[metaName]
	if !ok {
		return fallback
	}
	name, err := url.QueryUnescape(raw)
	if err != nil {
		return raw
	}
	return name
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

var _ storage.Store = (*Client)(nil)
