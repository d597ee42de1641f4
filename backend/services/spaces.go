package services

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

var imageSlugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// SpacesService stores card art on S3-compatible DigitalOcean Spaces.
type SpacesService struct {
	client   *s3.Client
	bucket   string
	region   string
	CardRoot string
}

func NewSpacesService(spacesKey, spacesSecret, region, bucket, cardRoot string) *SpacesService {
	resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		return aws.Endpoint{
			URL: fmt.Sprintf("https://%s.digitaloceanspaces.com", region),
		}, nil
	})

	cfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithEndpointResolverWithOptions(resolver),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(spacesKey, spacesSecret, "")),
		awsconfig.WithRegion(region),
	)
	if err != nil {
		panic(fmt.Sprintf("Unable to load Spaces config: %v", err))
	}

	client := s3.NewFromConfig(cfg)

	return &SpacesService{
		client:   client,
		bucket:   bucket,
		region:   region,
		CardRoot: strings.TrimPrefix(cardRoot, "/"),
	}
}

// UploadCardImage stores a card image under the card root and returns its
// public URL.
func (s *SpacesService) UploadCardImage(ctx context.Context, cardID int64, cardName string, body io.Reader, contentType string) (string, error) {
	key := s.cardImageKey(cardID, cardName, contentType)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &s.bucket,
		Key:         &key,
		Body:        body,
		ContentType: &contentType,
		ACL:         types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload card image: %w", err)
	}

	return s.PublicURL(key), nil
}

// DeleteCardImage removes a previously uploaded card image given its public
// URL. Unknown URLs are ignored.
func (s *SpacesService) DeleteCardImage(ctx context.Context, imageURL string) error {
	key, ok := s.keyFromURL(imageURL)
	if !ok {
		return nil
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: &s.bucket,
		Key:    &key,
	})
	if err != nil {
		return fmt.Errorf("failed to delete card image %s: %w", key, err)
	}
	return nil
}

// PublicURL builds the CDN-facing URL for an object key.
func (s *SpacesService) PublicURL(key string) string {
	return fmt.Sprintf("https://%s.%s.digitaloceanspaces.com/%s", s.bucket, s.region, key)
}

func (s *SpacesService) cardImageKey(cardID int64, cardName, contentType string) string {
	slug := imageSlugPattern.ReplaceAllString(strings.ToLower(cardName), "-")
	slug = strings.Trim(slug, "-")

	ext := ".jpg"
	switch contentType {
	case "image/png":
		ext = ".png"
	case "image/gif":
		ext = ".gif"
	case "image/webp":
		ext = ".webp"
	}

	return fmt.Sprintf("%s/%d_%s%s", s.CardRoot, cardID, slug, ext)
}

func (s *SpacesService) keyFromURL(imageURL string) (string, bool) {
	prefix := fmt.Sprintf("https://%s.%s.digitaloceanspaces.com/", s.bucket, s.region)
	if !strings.HasPrefix(imageURL, prefix) {
		return "", false
	}
	return strings.TrimPrefix(imageURL, prefix), true
}

func (s *SpacesService) GetBucket() string {
	return s.bucket
}

func (s *SpacesService) GetRegion() string {
	return s.region
}
