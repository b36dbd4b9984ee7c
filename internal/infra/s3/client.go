package s3

import (
	"time"

	"imagehub/internal/config"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

// Client represents the S3 client wrapper
type Client struct {
	bucketName    string
	presignExpiry time.Duration
	svc           *s3.S3
}

// NewClient creates a new S3 client instance
func NewClient(cfg *config.Config) (*Client, error) {
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(cfg.AWS.Region),
		Credentials: credentials.NewStaticCredentials(
			cfg.AWS.AccessKeyID,
			cfg.AWS.SecretAccessKey,
			"",
		),
	})

	if err != nil {
		return nil, err
	}

	svc := s3.New(sess)

	return &Client{
		bucketName:    cfg.AWS.Bucket,
		presignExpiry: cfg.App.PresignedURLExpiry,
		svc:           svc,
	}, nil
}
