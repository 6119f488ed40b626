package file

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redeposto/ponto-backend-go/internal/pkg/storage"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	buf := new(bytes.Buffer)
	require.NoError(t, png.Encode(buf, img))
	return buf.Bytes()
}

func TestPhotoService_UploadPunchPhoto(t *testing.T) {
	ctx := context.Background()
	store, err := storage.NewLocalStorage(t.TempDir(), "http://localhost/uploads")
	require.NoError(t, err)

	brt := time.FixedZone("BRT", -3*60*60)
	svc := NewPhotoService(store, brt)

	// 01:30 UTC is still the previous local day.
	punchedAt := time.Date(2025, 3, 11, 1, 30, 0, 0, time.UTC)
	key, err := svc.UploadPunchPhoto(ctx, "emp-1", punchedAt, bytes.NewReader(pngBytes(t, 2000, 1000)), "selfie.PNG")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "punches/2025-03-10/emp-1-"), key)
	assert.True(t, strings.HasSuffix(key, ".jpg"), key)

	rc, err := svc.Open(ctx, key)
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)

	cfg, err := jpeg.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, maxPhotoEdge, cfg.Width)
	assert.Equal(t, 640, cfg.Height)

	assert.Equal(t, "http://localhost/uploads/"+key, svc.URL(key))
	require.NoError(t, svc.Delete(ctx, key))
}

func TestPhotoService_RejectsUnknownExtension(t *testing.T) {
	store, err := storage.NewLocalStorage(t.TempDir(), "http://localhost")
	require.NoError(t, err)

	_, err = NewPhotoService(store, nil).UploadPunchPhoto(context.Background(), "emp-1", time.Now(), strings.NewReader("x"), "doc.pdf")
	assert.ErrorIs(t, err, ErrInvalidImageType)
}

func TestCompressImage_RejectsGarbage(t *testing.T) {
	_, err := compressImage([]byte("not an image"), maxPhotoEdge, maxPhotoBytes)
	assert.Error(t, err)
}
