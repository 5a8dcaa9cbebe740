package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"mime"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	rektypes "github.com/aws/aws-sdk-go-v2/service/rekognition/types"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"backend/utils"
)

type StorageService struct {
	s3     *s3.Client
	rek    *rekognition.Client
	bucket string
	cdnURL string
}

func NewStorageService() (*StorageService, error) {
	region := os.Getenv("S3_REGION")
	if region == "" {
		region = os.Getenv("AWS_REGION")
	}
	cfg, err := config.LoadDefaultConfig(context.TODO(), config.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return &StorageService{
		s3:     s3.NewFromConfig(cfg),
		rek:    rekognition.NewFromConfig(cfg),
		bucket: os.Getenv("S3_BUCKET"),
		cdnURL: os.Getenv("CLOUDFRONT_URL"),
	}, nil
}

func decodeDataURI(dataURI string) (data []byte, contentType string, err error) {
	parts := strings.Split(dataURI, ",")
	if len(parts) != 2 || !strings.HasPrefix(parts[0], "data:") {
		return nil, "", fmt.Errorf("invalid base64 image")
	}
	mediaType := strings.SplitN(parts[0], ":", 2)[1]  // "image/jpeg;base64"
	contentType = strings.SplitN(mediaType, ";", 2)[0] // "image/jpeg"

	data, err = base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image: %v", err)
	}
	return data, contentType, nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/jpeg", "image/jpg":
		return ".jpg"
	}
	if exts, _ := mime.ExtensionsByType(contentType); len(exts) > 0 {
		return exts[0]
	}
	if parts := strings.SplitN(contentType, "/", 2); len(parts) == 2 {
		return "." + parts[1]
	}
	return ""
}

// moderate runs the image through Rekognition. Unsafe content rejects the
// upload; a moderation service failure does not (checked best effort).
func (s *StorageService) moderate(data []byte) error {
	out, err := s.rek.DetectModerationLabels(context.TODO(), &rekognition.DetectModerationLabelsInput{
		Image:         &rektypes.Image{Bytes: data},
		MinConfidence: aws.Float32(80),
	})
	if err != nil {
		log.Printf("moderation check unavailable: %v", err)
		return nil
	}
	if len(out.ModerationLabels) > 0 {
		return utils.NewAppError(utils.ErrOperationDenied)
	}
	return nil
}

// UploadProfileImage stores a base64 data-URI image under the user's
// profile-pictures prefix and returns the public URL.
func (s *StorageService) UploadProfileImage(dataURI, uid string) (string, error) {
	data, contentType, err := decodeDataURI(dataURI)
	if err != nil {
		return "", err
	}

	if err := s.moderate(data); err != nil {
		return "", err
	}

	key := fmt.Sprintf("profile-pictures/%s-%d%s", uid, time.Now().UnixNano(), extensionFor(contentType))

	_, err = s.s3.PutObject(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
		ACL:         s3types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %v", err)
	}

	return fmt.Sprintf("%s/%s", s.cdnURL, key), nil
}
