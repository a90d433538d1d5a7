package services

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// presignTTL is how long an avatar upload URL stays valid
const presignTTL = 5 * time.Minute

// MediaService handles avatar storage in S3
type MediaService struct {
	s3Client *s3.Client
	s3Bucket string
	region   string
}

// NewMediaService creates a media service backed by S3. Static
// credentials are used when provided, the default chain otherwise.
func NewMediaService(ctx context.Context, region, bucket, accessKey, secretKey string) (*MediaService, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(region),
	}
	if accessKey != "" && secretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &MediaService{
		s3Client: s3.NewFromConfig(cfg),
		s3Bucket: bucket,
		region:   region,
	}, nil
}

// AvatarUploadResponse carries a pre-signed upload URL for an avatar
type AvatarUploadResponse struct {
	UploadURL string `json:"upload_url"`
	AvatarURL string `json:"avatar_url"`
	ExpiresIn int    `json:"expires_in"`
}

// PresignAvatarUpload generates a pre-signed PUT URL for the account's
// profile avatar, plus the public URL the avatar will live at.
func (s *MediaService) PresignAvatarUpload(ctx context.Context, accountID, contentType string) (*AvatarUploadResponse, error) {
	s3Key := fmt.Sprintf("avatars/%s.jpg", accountID)

	presignClient := s3.NewPresignClient(s.s3Client)
	request, err := presignClient.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Bucket),
		Key:         aws.String(s3Key),
		ContentType: aws.String(contentType),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = presignTTL
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate pre-signed URL: %w", err)
	}

	return &AvatarUploadResponse{
		UploadURL: request.URL,
		AvatarURL: fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.s3Bucket, s.region, s3Key),
		ExpiresIn: int(presignTTL.Seconds()),
	}, nil
}
