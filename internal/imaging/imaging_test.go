package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solid(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func encodeJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, solid(w, h, color.RGBA{255, 0, 0, 255}), &jpeg.Options{Quality: 90}))
	return buf.Bytes()
}

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, solid(w, h, color.RGBA{0, 0, 255, 255})))
	return buf.Bytes()
}

func TestPrepareScreenshotPNG(t *testing.T) {
	photo, err := Prepare(bytes.NewReader(encodePNG(t, 120, 80)))
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", photo.MIME)
	assert.NotEmpty(t, photo.Data)
	assert.Equal(t, 120, photo.Width)
	assert.Equal(t, 80, photo.Height)
}

func TestPrepareDownscalesLandscape(t *testing.T) {
	photo, err := Prepare(bytes.NewReader(encodeJPEG(t, 2048, 1024)))
	require.NoError(t, err)
	assert.Equal(t, MaxDimension, photo.Width)
	assert.Equal(t, MaxDimension/2, photo.Height)

	img, _, err := image.Decode(bytes.NewReader(photo.Data))
	require.NoError(t, err)
	assert.Equal(t, MaxDimension, img.Bounds().Dx())
}

func TestPrepareDownscalesPortrait(t *testing.T) {
	photo, err := Prepare(bytes.NewReader(encodeJPEG(t, 600, 1800)))
	require.NoError(t, err)
	assert.Equal(t, 341, photo.Width)
	assert.Equal(t, MaxDimension, photo.Height)
}

func TestPrepareSmallPhotoNotUpscaled(t *testing.T) {
	photo, err := Prepare(bytes.NewReader(encodeJPEG(t, 50, 50)))
	require.NoError(t, err)
	assert.Equal(t, 50, photo.Width)
	assert.Equal(t, 50, photo.Height)
}

func TestPrepareRejectsOtherFormats(t *testing.T) {
	for _, data := range [][]byte{
		[]byte("not an image"),
		[]byte("GIF89a..."),
	} {
		_, err := Prepare(bytes.NewReader(data))
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
	}
}

func TestPrepareRejectsOversized(t *testing.T) {
	_, err := Prepare(bytes.NewReader(make([]byte, MaxUploadBytes+10)))
	assert.ErrorIs(t, err, ErrTooLarge)
}
