package backup

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	appcfg "github.com/visapath/core/internal/config"
)

const s3KeyTemplate = "backups/{Y}/{m}/{filename}"

func newS3Client(opts *appcfg.S3Options) *s3.Client {
	region := strings.TrimSpace(opts.Region)
	if region == "" {
		region = "us-east-1"
	}
	clientOpts := s3.Options{
		Region: region,
		Credentials: aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, "")),
		UsePathStyle: opts.PathStyleAccess,
	}
	if endpoint := strings.TrimSpace(opts.Endpoint); endpoint != "" {
		clientOpts.BaseEndpoint = aws.String(strings.TrimRight(endpoint, "/"))
	}
	return s3.New(clientOpts)
}

func s3ObjectKey(filename string, now time.Time) string {
	key := s3KeyTemplate
	key = strings.ReplaceAll(key, "{Y}", now.Format("2006"))
	key = strings.ReplaceAll(key, "{m}", now.Format("01"))
	return strings.ReplaceAll(key, "{filename}", filename)
}

func uploadToS3(ctx context.Context, opts *appcfg.S3Options, fullPath, filename string, now time.Time) error {
	if strings.TrimSpace(opts.Bucket) == "" {
		return fmt.Errorf("s3 bucket is not configured")
	}

	f, err := os.Open(fullPath)
	if err != nil {
		return err
	}
	defer f.Close()

	client := newS3Client(opts)
	_, err = client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(opts.Bucket),
		Key:         aws.String(s3ObjectKey(filename, now)),
		Body:        f,
		ContentType: aws.String("application/zip"),
	})
	if err != nil {
		return fmt.Errorf("put object: %w", err)
	}
	return nil
}
