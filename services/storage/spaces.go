package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

// SpacesConfig selects the bucket resolucion attachments go to.
type SpacesConfig struct {
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	Endpoint  string // e.g. nyc3.digitaloceanspaces.com
	CDNURL    string
}

// SpacesStorage keeps media in an S3 compatible bucket (DigitalOcean
// Spaces in production). Objects are public so adjunto URLs work without
// going through the API.
type SpacesStorage struct {
	client   *s3.S3
	uploader *s3manager.Uploader
	bucket   string
	baseURL  string
}

func NewSpacesStorage(cfg SpacesConfig) (*SpacesStorage, error) {
	if cfg.Bucket == "" || cfg.Endpoint == "" {
		return nil, errors.New("spaces storage needs DO_SPACES_BUCKET and DO_SPACES_ENDPOINT")
	}
	host := strings.TrimPrefix(strings.TrimPrefix(cfg.Endpoint, "https://"), "http://")

	sess, err := session.NewSession(&aws.Config{
		Credentials: credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, ""),
		Endpoint:    aws.String("https://" + host),
		Region:      aws.String(cfg.Region),
	})
	if err != nil {
		return nil, fmt.Errorf("spaces session: %w", err)
	}

	base := fmt.Sprintf("https://%s.%s/", cfg.Bucket, host)
	if cfg.CDNURL != "" {
		base = strings.TrimSuffix(cfg.CDNURL, "/") + "/"
	}
	return &SpacesStorage{
		client:   s3.New(sess),
		uploader: s3manager.NewUploader(sess),
		bucket:   cfg.Bucket,
		baseURL:  base,
	}, nil
}

func (s *SpacesStorage) object(key string) (*string, error) {
	key, err := cleanKey(key)
	if err != nil {
		return nil, err
	}
	return aws.String(key), nil
}

func (s *SpacesStorage) Save(ctx context.Context, key string, r io.Reader, contentType string) (string, error) {
	obj, err := s.object(key)
	if err != nil {
		return "", err
	}
	_, err = s.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:      aws.String(s.bucket),
		Key:         obj,
		Body:        r,
		ACL:         aws.String(s3.ObjectCannedACLPublicRead),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", *obj, err)
	}
	return s.URL(*obj), nil
}

func (s *SpacesStorage) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	obj, err := s.object(key)
	if err != nil {
		return nil, err
	}
	out, err := s.client.GetObjectWithContext(ctx, &s3.GetObjectInput{Bucket: aws.String(s.bucket), Key: obj})
	if err != nil {
		var aerr awserr.Error
		if errors.As(err, &aerr) && aerr.Code() == s3.ErrCodeNoSuchKey {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("download %s: %w", *obj, err)
	}
	return out.Body, nil
}

// Delete succeeds for missing objects; S3 DeleteObject already behaves so.
func (s *SpacesStorage) Delete(ctx context.Context, key string) error {
	obj, err := s.object(key)
	if err != nil {
		return err
	}
	if _, err := s.client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{Bucket: aws.String(s.bucket), Key: obj}); err != nil {
		return fmt.Errorf("delete %s: %w", *obj, err)
	}
	return nil
}

func (s *SpacesStorage) URL(key string) string {
	return s.baseURL + strings.TrimPrefix(key, "/")
}

func (s *SpacesStorage) KeyFromURL(url string) (string, bool) {
	if !strings.HasPrefix(url, s.baseURL) {
		return "", false
	}
	return strings.TrimPrefix(url, s.baseURL), true
}
