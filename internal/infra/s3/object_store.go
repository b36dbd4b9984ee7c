package s3

import (
	"fmt"
	"io"
	"time"

	"imagehub/internal/infra/cache"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"
)

const (
	errFailedUploadObjectFmt    = "failed to upload object: %w"
	errFailedPresignDownloadFmt = "failed to generate presigned download URL: %w"
	errFailedDeleteObjectFmt    = "failed to delete object: %w"
)

// Upload stores an object under the given key with its content type. The
// stored content type is replayed on download so browsers render the image
// instead of saving it.
func (c *Client) Upload(src io.Reader, objectKey, contentType string) error {
	_, err := c.svc.PutObject(&s3.PutObjectInput{
		Bucket:      aws.String(c.bucketName),
		Key:         aws.String(objectKey),
		Body:        aws.ReadSeekCloser(src),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf(errFailedUploadObjectFmt, err)
	}

	return nil
}

// PresignDownload generates a presigned download URL for the object, serving
// from the cache when a usable URL is already out there.
func (c *Client) PresignDownload(objectKey, contentType string, urlCache *cache.URLCache) (string, error) {
	if url, found := urlCache.Get(objectKey); found {
		return url, nil
	}

	req, _ := c.svc.GetObjectRequest(&s3.GetObjectInput{
		Bucket:              aws.String(c.bucketName),
		Key:                 aws.String(objectKey),
		ResponseContentType: aws.String(contentType),
	})

	downloadURL, err := req.Presign(c.presignExpiry)
	if err != nil {
		return "", fmt.Errorf(errFailedPresignDownloadFmt, err)
	}

	urlCache.Set(objectKey, downloadURL, time.Now().Add(c.presignExpiry))

	return downloadURL, nil
}

// Delete removes an object and evicts any cached URL for it
func (c *Client) Delete(objectKey string, urlCache *cache.URLCache) error {
	_, err := c.svc.DeleteObject(&s3.DeleteObjectInput{
		Bucket: aws.String(c.bucketName),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		return fmt.Errorf(errFailedDeleteObjectFmt, err)
	}

	urlCache.Invalidate(objectKey)

	return nil
}
