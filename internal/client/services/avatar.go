package services

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	cc "github.com/dmitrijs2005/gymtracker/internal/client/config"
)

// ErrAvatarStorageDisabled is returned when the object store is not
// configured; avatar uploads are an optional feature.
var ErrAvatarStorageDisabled = errors.New("avatar storage is not configured")

// objectPutter is the slice of the S3 client the avatar service needs.
type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// AvatarService uploads profile pictures to an S3-compatible object store
// and hands back the public URL to keep in the profile.
type AvatarService struct {
	config    *cc.Config
	newClient func(ctx context.Context) (objectPutter, error)
}

func NewAvatarService(config *cc.Config) *AvatarService {
	s := &AvatarService{config: config}
	s.newClient = s.getS3Client
	return s
}

func (s *AvatarService) getS3Client(ctx context.Context) (objectPutter, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(s.config.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3AccessKey,
			s.config.S3SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("error loading S3 config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if s.config.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(s.config.S3Endpoint)
			o.UsePathStyle = true // MinIO-style endpoints
		}
	})
	return client, nil
}

// avatarKey places each upload under the user's prefix with a random name,
// so a re-upload never overwrites the previous object.
func avatarKey(userID, ext string) string {
	return fmt.Sprintf("avatars/%s/%s%s", userID, uuid.New(), ext)
}

func avatarContentType(ext string) (string, error) {
	ct := mime.TypeByExtension(ext)
	if !strings.HasPrefix(ct, "image/") {
		return "", fmt.Errorf("unsupported avatar format %q", ext)
	}
	return ct, nil
}

// publicURL derives the browsable URL of an uploaded object. A configured
// public base URL (CDN or MinIO endpoint) wins over the AWS convention.
func (s *AvatarService) publicURL(key string) string {
	if base := s.config.S3PublicBaseURL; base != "" {
		return strings.TrimSuffix(base, "/") + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.config.S3Bucket, s.config.S3Region, key)
}

// Upload sends the image at path to the object store and returns its public
// URL. Fails with ErrAvatarStorageDisabled when the store is not configured.
func (s *AvatarService) Upload(ctx context.Context, userID, path string) (string, error) {
	if !s.config.S3Configured() {
		return "", ErrAvatarStorageDisabled
	}

	ext := strings.ToLower(filepath.Ext(path))
	contentType, err := avatarContentType(ext)
	if err != nil {
		return "", err
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("error opening avatar file: %w", err)
	}
	defer f.Close()

	client, err := s.newClient(ctx)
	if err != nil {
		return "", err
	}

	key := avatarKey(userID, ext)
	_, err = client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.config.S3Bucket),
		Key:         aws.String(key),
		Body:        f,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("error uploading avatar: %w", err)
	}

	return s.publicURL(key), nil
}
