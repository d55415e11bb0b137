package controllers

import (
	"bytes"
	"fmt"
	"net/http"
	"os"
	"strings"

	"Quill/utils/fileformat"
	"Quill/utils/logger"

	aws2 "github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
)

const (
	postImagePrefix = "PostImages/"
	maxImageBytes   = 512_000
)

// uploadPostImage stores an optional multipart "image" file in S3 and
// returns the object key. An absent file is not an error; the returned
// key is empty and the post is saved without an image.
func uploadPostImage(c *gin.Context) (string, error) {
	file, err := c.FormFile("image")
	if err != nil {
		if err == http.ErrMissingFile {
			return "", nil
		}
		return "", fmt.Errorf("invalid file: %w", err)
	}

	f, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("cannot open file: %w", err)
	}
	defer f.Close()

	size := file.Size
	if size > maxImageBytes {
		return "", fmt.Errorf("file too large (<500KB)")
	}

	buf := make([]byte, size)
	if _, err := f.Read(buf); err != nil {
		return "", fmt.Errorf("could not read file: %w", err)
	}
	fileType := http.DetectContentType(buf)
	if !strings.HasPrefix(fileType, "image/") {
		return "", fmt.Errorf("not an image")
	}

	key := postImagePrefix + fileformat.UniqueFormat(file.Filename)

	// Bucket name may carry an accidental path suffix; keep the host part.
	rawBucket := os.Getenv("S3_BUCKET")
	bucketName := strings.SplitN(rawBucket, "/", 2)[0]
	if bucketName == "" {
		logger.Sugar.Errorw("S3_BUCKET env var is empty or invalid", "raw", rawBucket)
		return "", fmt.Errorf("server configuration error")
	}

	region := os.Getenv("AWS_REGION")
	cfg, err := awsconfig.LoadDefaultConfig(c.Request.Context(),
		awsconfig.WithRegion(region),
	)
	if err != nil {
		logger.Sugar.Errorw("AWS config load error", "err", err)
		return "", fmt.Errorf("AWS configuration error")
	}

	s3Client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = true
	})

	_, err = s3Client.PutObject(c.Request.Context(), &s3.PutObjectInput{
		Bucket:        aws2.String(bucketName),
		Key:           aws2.String(key),
		Body:          bytes.NewReader(buf),
		ContentLength: aws2.Int64(size),
		ContentType:   aws2.String(fileType),
	})
	if err != nil {
		logger.Sugar.Errorw("S3 upload failed", "err", err)
		return "", fmt.Errorf("failed to upload image")
	}

	return key, nil
}

// imageURL expands a stored S3 object key into a public virtual-host URL.
// Keys saved before the URL scheme changed may already be absolute.
func imageURL(key string) string {
	if key == "" {
		return ""
	}
	if strings.HasPrefix(key, "http://") || strings.HasPrefix(key, "https://") {
		return key
	}
	bucketName := strings.SplitN(os.Getenv("S3_BUCKET"), "/", 2)[0]
	region := os.Getenv("AWS_REGION")
	if bucketName == "" || region == "" {
		return key
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", bucketName, region, key)
}
