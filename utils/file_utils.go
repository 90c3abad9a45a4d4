package utils

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

const (
	// Base directory for storing uploaded files
	uploadBaseDir = "uploads"
	// Subdirectory for employee profile images
	profileImageDir = "profileImages"
	// Base URL for serving files
	baseURL = "/uploads"
	// Maximum profile image size (5MB)
	maxProfileImageSize = 5 * 1024 * 1024
	// Stored profile images are downscaled to this width
	maxProfileImageWidth = 512
)

// InitializeStorage creates necessary directories for file storage
func InitializeStorage() error {
	dirs := []string{
		uploadBaseDir,
		filepath.Join(uploadBaseDir, profileImageDir),
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %v", dir, err)
		}
	}

	return nil
}

// SaveProfileImage validates and stores an uploaded profile image, returning
// the relative URL path persisted on the user document. Oversized images are
// rejected; large-but-valid ones are downscaled before writing.
func SaveProfileImage(fh *multipart.FileHeader) (string, error) {
	if fh.Size > maxProfileImageSize {
		return "", fmt.Errorf("file too large. Maximum size is %d bytes", maxProfileImageSize)
	}

	if !IsValidImageFile(fh) {
		return "", fmt.Errorf("unsupported image format. Allowed formats: jpg, jpeg, png, gif, webp")
	}

	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, maxProfileImageSize+1))
	if err != nil {
		return "", err
	}
	if len(data) > maxProfileImageSize {
		return "", fmt.Errorf("file too large. Maximum size is %d bytes", maxProfileImageSize)
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	filename := uuid.New().String() + ext

	dir := filepath.Join(uploadBaseDir, profileImageDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %v", err)
	}
	fullPath := filepath.Join(dir, filename)

	// Downscale decodable images wider than the cap; anything imaging cannot
	// decode (e.g. webp) is stored as-is.
	if img, decErr := imaging.Decode(bytes.NewReader(data)); decErr == nil && img.Bounds().Dx() > maxProfileImageWidth {
		resized := imaging.Resize(img, maxProfileImageWidth, 0, imaging.Lanczos)
		if err := imaging.Save(resized, fullPath); err != nil {
			return "", fmt.Errorf("failed to write file: %v", err)
		}
	} else {
		if err := os.WriteFile(fullPath, data, 0644); err != nil {
			return "", fmt.Errorf("failed to write file: %v", err)
		}
	}

	return fmt.Sprintf("%s/%s/%s", baseURL, profileImageDir, filename), nil
}
