package controllers

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/nfnt/resize"
)

const (
	maxFileSize       = 5 * 1024 * 1024
	compressThreshold = 100 * 1024
	previewSize       = 300
)

var (
	s3Client *minio.Client
	s3Bucket string
	s3CDN    string
	s3Once   sync.Once
	s3Err    error
)

func storageClient() (*minio.Client, error) {
	s3Once.Do(func() {
		endpoint := os.Getenv("S3_ENDPOINT")
		accessKey := os.Getenv("S3_ACCESS_KEY")
		secretKey := os.Getenv("S3_SECRET_KEY")
		s3Bucket = os.Getenv("S3_BUCKET")
		s3CDN = os.Getenv("S3_CDN_DOMAIN")
		if s3CDN == "" {
			s3CDN = endpoint
		}
		if endpoint == "" || accessKey == "" || secretKey == "" || s3Bucket == "" {
			s3Err = fmt.Errorf("S3 storage is not configured")
			return
		}
		s3Client, s3Err = minio.New(endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
			Secure: true,
		})
	})
	return s3Client, s3Err
}

// SaveTestimonialPhotoToS3 uploads a customer photo plus a small preview
// and returns the object key and public URL. Images over the compression
// threshold are resized to 800px width first.
func SaveTestimonialPhotoToS3(file *multipart.FileHeader, testimonialID string) (string, string, error) {
	client, err := storageClient()
	if err != nil {
		return "", "", err
	}

	if file.Size > maxFileSize {
		return "", "", fmt.Errorf("file size exceeds the 5MB limit")
	}

	contentType := file.Header.Get("Content-Type")
	if contentType != "image/jpeg" && contentType != "image/png" {
		return "", "", fmt.Errorf("unsupported file format: %s", contentType)
	}

	fileExt := strings.ToLower(filepath.Ext(file.Filename))
	objectKey := fmt.Sprintf("testimonials/%s_%d%s", testimonialID, time.Now().Unix(), fileExt)
	previewKey := fmt.Sprintf("testimonials/%s_%d_preview%s", testimonialID, time.Now().Unix(), fileExt)

	srcFile, err := file.Open()
	if err != nil {
		return "", "", fmt.Errorf("failed to open uploaded file: %v", err)
	}
	defer srcFile.Close()

	originalData, err := io.ReadAll(srcFile)
	if err != nil {
		return "", "", fmt.Errorf("failed to read image data: %v", err)
	}

	var img image.Image
	if contentType == "image/png" {
		img, err = png.Decode(bytes.NewReader(originalData))
	} else {
		img, err = jpeg.Decode(bytes.NewReader(originalData))
	}
	if err != nil {
		return "", "", fmt.Errorf("failed to decode image: %v", err)
	}

	var bufMain bytes.Buffer
	if file.Size >= compressThreshold {
		resized := resize.Resize(800, 0, img, resize.Lanczos3)
		if err := jpeg.Encode(&bufMain, resized, &jpeg.Options{Quality: 80}); err != nil {
			return "", "", fmt.Errorf("failed to encode resized image: %v", err)
		}
	} else {
		bufMain.Write(originalData)
	}

	_, err = client.PutObject(context.Background(), s3Bucket, objectKey, &bufMain, int64(bufMain.Len()), minio.PutObjectOptions{
		ContentType: "image/jpeg",
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to upload image to S3: %v", err)
	}

	previewImg := resize.Thumbnail(previewSize, previewSize, img, resize.Lanczos3)
	var bufPreview bytes.Buffer
	if err := jpeg.Encode(&bufPreview, previewImg, &jpeg.Options{Quality: 75}); err != nil {
		return "", "", fmt.Errorf("failed to encode preview image: %v", err)
	}
	_, err = client.PutObject(context.Background(), s3Bucket, previewKey, &bufPreview, int64(bufPreview.Len()), minio.PutObjectOptions{
		ContentType: "image/jpeg",
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to upload preview image to S3: %v", err)
	}

	return objectKey, fmt.Sprintf("https://%s/%s", s3CDN, objectKey), nil
}

// DeleteTestimonialPhoto removes an uploaded object. Missing objects are
// not an error.
func DeleteTestimonialPhoto(objectKey string) error {
	if objectKey == "" {
		return nil
	}
	client, err := storageClient()
	if err != nil {
		return err
	}
	return client.RemoveObject(context.Background(), s3Bucket, objectKey, minio.RemoveObjectOptions{})
}
