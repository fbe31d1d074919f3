package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"wp-lite/pkg/config"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

var ErrMissingCredentials = errors.New("storage credentials are not configured")

type Client struct {
	s3Client      *s3.S3
	bucket        string
	endpoint      string
	region        string
	useSSL        bool
	publicBaseURL string
}

// NewClient builds a client without touching the network.
func NewClient(creds config.StorageCredentials) (*Client, error) {
	if !creds.Complete() {
		return nil, ErrMissingCredentials
	}

	awsConfig := &aws.Config{
		Region: aws.String(creds.Region),
		Credentials: credentials.NewStaticCredentials(
			creds.AccessKeyID,
			creds.SecretAccessKey,
			"",
		),
	}

	useSSL := creds.UseSSL != "false"

	// Support MinIO and other S3-compatible stores
	if creds.Endpoint != "" {
		awsConfig.Endpoint = aws.String(creds.Endpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
		if !useSSL {
			awsConfig.DisableSSL = aws.Bool(true)
		}
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return &Client{
		s3Client:      s3.New(sess),
		bucket:        creds.Bucket,
		endpoint:      creds.Endpoint,
		region:        creds.Region,
		useSSL:        useSSL,
		publicBaseURL: strings.TrimSuffix(creds.PublicBaseURL, "/"),
	}, nil
}

// EnsureBucket creates the bucket when it does not exist yet (local MinIO).
func (c *Client) EnsureBucket(ctx context.Context) error {
	_, err := c.s3Client.HeadBucketWithContext(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(c.bucket),
	})
	if err == nil {
		return nil
	}

	_, err = c.s3Client.CreateBucketWithContext(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(c.bucket),
	})
	if err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", c.bucket, err)
	}
	return nil
}

func (c *Client) Upload(ctx context.Context, key string, body io.Reader, contentType string) error {
	seeker, ok := body.(io.ReadSeeker)
	if !ok {
		buf := bytes.NewBuffer(nil)
		if _, err := io.Copy(buf, body); err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}
		seeker = bytes.NewReader(buf.Bytes())
	}

	_, err := c.s3Client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		Body:        seeker,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("failed to upload file to S3: %w", err)
	}
	return nil
}

// PublicURL is the address the stored object can be fetched from anonymously.
func (c *Client) PublicURL(key string) string {
	if c.publicBaseURL != "" {
		return fmt.Sprintf("%s/%s", c.publicBaseURL, key)
	}

	if c.endpoint != "" && !strings.Contains(c.endpoint, "amazonaws.com") {
		protocol := "https"
		if !c.useSSL {
			protocol = "http"
		}
		host := strings.TrimPrefix(c.endpoint, "http://")
		host = strings.TrimPrefix(host, "https://")
		return fmt.Sprintf("%s://%s/%s/%s", protocol, host, c.bucket, key)
	}

	region := c.region
	if region == "" {
		region = "us-east-1"
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", c.bucket, region, key)
}
