// Package logos hands out signed upload URLs for vibe logos. The client uploads
// the image directly to storage and submits the public URL as logo_url.
package logos

import (
	"context"
	"errors"
	"fmt"
	"path"
	"regexp"
	"strings"
	"time"

	"vibemarket-backend/internal/application/access"

	"github.com/google/uuid"
)

const (
	DefaultBucket = "vibe-logos"
	SignedURLTTL  = time.Hour
	maxNameLen    = 80
)

var (
	ErrUnauthorized    = errors.New("unauthorized")
	ErrInvalidFileName = errors.New("file_name must be a png, jpg, jpeg, webp, gif or svg image")
)

var allowedExt = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".webp": true, ".gif": true, ".svg": true,
}

var unsafeChars = regexp.MustCompile(`[^a-z0-9._-]+`)

type Service struct {
	Storage Storage
	Bucket  string
}

// Upload is returned to the client.
type Upload struct {
	UploadURL string    `json:"upload_url"`
	PublicURL string    `json:"public_url"`
	Path      string    `json:"path"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Sign reserves a unique object path under the caller's folder and signs an upload for it.
func (s *Service) Sign(ctx context.Context, caller *access.Identity, fileName string) (*Upload, error) {
	if caller == nil || caller.ID == "" {
		return nil, ErrUnauthorized
	}
	name, err := cleanFileName(fileName)
	if err != nil {
		return nil, err
	}
	bucket := s.bucket()
	objectPath := fmt.Sprintf("%s/%s-%s", unsafeChars.ReplaceAllString(strings.ToLower(caller.ID), "-"), uuid.NewString(), name)

	signed, err := s.Storage.CreateSignedUploadURL(ctx, bucket, objectPath)
	if err != nil {
		return nil, err
	}
	return &Upload{
		UploadURL: signed,
		PublicURL: s.Storage.PublicURL(bucket, objectPath),
		Path:      objectPath,
		ExpiresAt: time.Now().UTC().Add(SignedURLTTL),
	}, nil
}

func (s *Service) bucket() string {
	if s.Bucket == "" {
		return DefaultBucket
	}
	return s.Bucket
}

// cleanFileName lowercases the base name, replaces unsafe runs with "-" and checks the extension.
func cleanFileName(fileName string) (string, error) {
	base := strings.ToLower(path.Base(strings.ReplaceAll(strings.TrimSpace(fileName), "\\", "/")))
	ext := path.Ext(base)
	if !allowedExt[ext] {
		return "", ErrInvalidFileName
	}
	stem := strings.Trim(unsafeChars.ReplaceAllString(strings.TrimSuffix(base, ext), "-"), "-.")
	if stem == "" {
		stem = "logo"
	}
	if len(stem) > maxNameLen {
		stem = stem[:maxNameLen]
	}
	return stem + ext, nil
}
