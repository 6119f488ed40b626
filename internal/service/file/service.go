package file

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // PNG decoding
	"io"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"golang.org/x/image/draw"

	"github.com/redeposto/ponto-backend-go/internal/pkg/storage"
)

var ErrInvalidImageType = errors.New("invalid file type: only jpg, jpeg, png allowed")

var allowedImageExts = []string{".jpg", ".jpeg", ".png"}

const (
	// Longest edge of a stored punch photo.
	maxPhotoEdge = 1280
	// Stored photos are re-encoded until they fit this size.
	maxPhotoBytes = 200 * 1024
	minQuality    = 40
)

type PhotoService interface {
	// UploadPunchPhoto re-encodes the image as JPEG and stores it under
	// punches/{local date}/{employeeID}-{unix}.jpg
	UploadPunchPhoto(ctx context.Context, employeeID string, punchedAt time.Time, file io.Reader, filename string) (string, error)

	Open(ctx context.Context, path string) (io.ReadCloser, error)
	Delete(ctx context.Context, path string) error
	URL(path string) string
}

type photoServiceImpl struct {
	storage storage.FileStorage
	loc     *time.Location
}

func NewPhotoService(storage storage.FileStorage, loc *time.Location) PhotoService {
	if loc == nil {
		loc = time.UTC
	}
	return &photoServiceImpl{
		storage: storage,
		loc:     loc,
	}
}

// UploadPunchPhoto implements PhotoService.
func (s *photoServiceImpl) UploadPunchPhoto(ctx context.Context, employeeID string, punchedAt time.Time, file io.Reader, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !slices.Contains(allowedImageExts, ext) {
		return "", ErrInvalidImageType
	}

	buffer, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}

	compressed, err := compressImage(buffer, maxPhotoEdge, maxPhotoBytes)
	if err != nil {
		return "", fmt.Errorf("failed to compress image: %w", err)
	}

	local := punchedAt.In(s.loc)
	path := fmt.Sprintf("punches/%s/%s-%d.jpg", local.Format("2006-01-02"), employeeID, punchedAt.Unix())

	uploaded, err := s.storage.Upload(ctx, bytes.NewReader(compressed), path, "image/jpeg")
	if err != nil {
		return "", fmt.Errorf("failed to upload punch photo: %w", err)
	}
	return uploaded, nil
}

// Open implements PhotoService.
func (s *photoServiceImpl) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	return s.storage.Open(ctx, path)
}

// Delete implements PhotoService.
func (s *photoServiceImpl) Delete(ctx context.Context, path string) error {
	return s.storage.Delete(ctx, path)
}

// URL implements PhotoService.
func (s *photoServiceImpl) URL(path string) string {
	return s.storage.URL(path)
}

// compressImage scales the image so its longest edge is at most maxEdge and
// lowers JPEG quality until the output fits maxBytes or minQuality is reached.
func compressImage(buffer []byte, maxEdge int, maxBytes int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(buffer))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	b := img.Bounds()
	if w, h := b.Dx(), b.Dy(); w > maxEdge || h > maxEdge {
		if w >= h {
			h = h * maxEdge / w
			w = maxEdge
		} else {
			w = w * maxEdge / h
			h = maxEdge
		}
		img = resizeImage(img, max(w, 1), max(h, 1))
	}

	var out []byte
	for quality := 85; quality >= minQuality; quality -= 10 {
		buf := new(bytes.Buffer)
		if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: quality}); err != nil {
			return nil, fmt.Errorf("failed to encode JPEG: %w", err)
		}
		out = buf.Bytes()
		if len(out) <= maxBytes {
			break
		}
	}
	return out, nil
}

func resizeImage(src image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst
}
