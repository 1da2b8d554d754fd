package logos

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Storage signs uploads into an object storage bucket and knows where the
// object will be publicly readable afterwards.
type Storage interface {
	CreateSignedUploadURL(ctx context.Context, bucket, path string) (string, error)
	PublicURL(bucket, path string) string
}

// SupabaseStorage is a Storage backed by the Supabase storage HTTP API.
type SupabaseStorage struct {
	BaseURL   string
	SecretKey string
	Client    *http.Client
}

type signedUploadResponse struct {
	SignedURL      string `json:"signedUrl"`
	SignedURLSnake string `json:"signed_url"`
	URL            string `json:"url"` // relative, includes the token
}

func (s *SupabaseStorage) PublicURL(bucket, path string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", strings.TrimRight(s.BaseURL, "/"), bucket, path)
}

func (s *SupabaseStorage) CreateSignedUploadURL(ctx context.Context, bucket, path string) (string, error) {
	if s.BaseURL == "" || s.SecretKey == "" {
		return "", fmt.Errorf("supabase storage: SUPABASE_URL and SUPABASE_SECRET_KEY are required")
	}
	client := s.Client
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	base := strings.TrimRight(s.BaseURL, "/")
	endpoint := fmt.Sprintf("%s/storage/v1/object/upload/sign/%s/%s", base, bucket, path)

	body, _ := json.Marshal(map[string]interface{}{"expiresIn": int(SignedURLTTL.Seconds()), "upsert": false})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("apikey", s.SecretKey)
	req.Header.Set("Authorization", "Bearer "+s.SecretKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("supabase storage request: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("supabase storage: status %d body: %s", resp.StatusCode, respBody)
	}

	var data signedUploadResponse
	if err := json.Unmarshal(respBody, &data); err != nil {
		return "", fmt.Errorf("supabase storage response decode: %w", err)
	}
	switch {
	case data.SignedURL != "":
		return data.SignedURL, nil
	case data.SignedURLSnake != "":
		return data.SignedURLSnake, nil
	case data.URL != "":
		u := data.URL
		if !strings.HasPrefix(u, "/") {
			u = "/" + u
		}
		if !strings.HasPrefix(u, "/storage/v1") {
			u = "/storage/v1" + u
		}
		return base + u, nil
	}
	return "", fmt.Errorf("supabase storage returned no signed URL, body: %s", respBody)
}

// MinioStorage presigns PUT uploads against any S3 compatible endpoint.
type MinioStorage struct {
	Client *minio.Client
}

// NewMinioStorage builds the client. Region is required so that presigning
// never has to look the bucket location up over the network.
func NewMinioStorage(endpoint, accessKey, secretKey, region string, useSSL bool) (*MinioStorage, error) {
	if region == "" {
		region = "us-east-1"
	}
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
		Region: region,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client for %s: %w", endpoint, err)
	}
	return &MinioStorage{Client: client}, nil
}

func (s *MinioStorage) CreateSignedUploadURL(ctx context.Context, bucket, path string) (string, error) {
	u, err := s.Client.PresignedPutObject(ctx, bucket, path, SignedURLTTL)
	if err != nil {
		return "", fmt.Errorf("minio presign: %w", err)
	}
	return u.String(), nil
}

func (s *MinioStorage) PublicURL(bucket, path string) string {
	return fmt.Sprintf("%s/%s/%s", s.Client.EndpointURL().String(), bucket, path)
}
