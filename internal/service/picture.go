package service

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"image/color"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/dstrand/accountd/internal/storage"
)

var (
	ErrMissingExtension  = errors.New("filename has no extension")
	ErrUnsupportedFormat = errors.New("unsupported image format")
	ErrInvalidImage      = errors.New("could not decode image")
	ErrPictureStorage    = errors.New("failed to store thumbnail")
)

// PictureService turns uploaded images into stored thumbnails. Stored files
// are named by a fresh 16-hex-character random token plus the upload's
// extension, so concurrent uploads cannot collide in practice.
type PictureService struct {
	storage     storage.Storage
	maxDim      int
	allowedExts map[string]bool
	defaultFile string
}

func NewPictureService(st storage.Storage, maxDim int, allowedExts []string, defaultFile string) *PictureService {
	exts := make(map[string]bool, len(allowedExts))
	for _, ext := range allowedExts {
		exts[strings.ToLower(ext)] = true
	}
	return &PictureService{
		storage:     st,
		maxDim:      maxDim,
		allowedExts: exts,
		defaultFile: defaultFile,
	}
}

// Store validates and ingests an uploaded image and returns the stored
// filename (not a path). The thumbnail keeps the input's aspect ratio and
// both dimensions end up within the configured maximum; images already small
// enough are not upscaled.
func (s *PictureService) Store(originalName string, file io.Reader) (string, error) {
	ext := filepath.Ext(originalName)
	if ext == "" {
		return "", ErrMissingExtension
	}
	if !s.allowedExts[strings.ToLower(ext)] {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}

	format, err := imaging.FormatFromExtension(ext)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}

	img, err := imaging.Decode(file)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	thumb := imaging.Fit(img, s.maxDim, s.maxDim, imaging.Lanczos)

	name, err := randomFilename(ext)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	err = imaging.Encode(&buf, thumb, format)
	if err != nil {
		return "", fmt.Errorf("failed to encode thumbnail: %w", err)
	}

	err = s.storage.Save(name, &buf)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPictureStorage, err)
	}

	return name, nil
}

// Remove deletes a stored thumbnail. The shared default image is never
// removed. Errors are logged only; orphan cleanup is best-effort.
func (s *PictureService) Remove(name string) {
	if name == "" || name == s.defaultFile {
		return
	}
	err := s.storage.Delete(name)
	if err != nil {
		slog.Warn("failed to delete thumbnail", "file", name, "error", err)
	}
}

// URL returns the public URL for a stored thumbnail.
func (s *PictureService) URL(name string) string {
	return s.storage.URL(name)
}

// DefaultFile is the sentinel filename for users without an uploaded picture.
func (s *PictureService) DefaultFile() string {
	return s.defaultFile
}

// EnsureDefault generates the shared default image if it is not present yet.
func (s *PictureService) EnsureDefault() error {
	local, ok := s.storage.(*storage.LocalStorage)
	if ok && local.Exists(s.defaultFile) {
		return nil
	}

	format, err := imaging.FormatFromExtension(filepath.Ext(s.defaultFile))
	if err != nil {
		return fmt.Errorf("invalid default image filename: %w", err)
	}

	img := imaging.New(s.maxDim, s.maxDim, color.NRGBA{R: 0xdd, G: 0xdd, B: 0xdd, A: 0xff})

	var buf bytes.Buffer
	err = imaging.Encode(&buf, img, format)
	if err != nil {
		return fmt.Errorf("failed to encode default image: %w", err)
	}

	err = s.storage.Save(s.defaultFile, &buf)
	if err != nil {
		return fmt.Errorf("failed to store default image: %w", err)
	}

	slog.Info("default profile image created", "file", s.defaultFile)
	return nil
}

func randomFilename(ext string) (string, error) {
	token := make([]byte, 8)
	_, err := rand.Read(token)
	if err != nil {
		return "", fmt.Errorf("failed to generate filename: %w", err)
	}
	return hex.EncodeToString(token) + ext, nil
}
