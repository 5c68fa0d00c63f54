package utils

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{uint8(x % 256), uint8(y % 256), 0, 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return buf.Bytes()
}

func decodeDims(t *testing.T, b []byte) (int, int) {
	t.Helper()
	cfg, format, err := image.DecodeConfig(bytes.NewReader(b))
	require.NoError(t, err)
	require.Equal(t, "jpeg", format)
	return cfg.Width, cfg.Height
}

func TestNormalizeToJPG_ScalesDownWideImages(t *testing.T) {
	out, err := NormalizeToJPG(makeJPEG(t, 3200, 1600), 1600, 85)
	require.NoError(t, err)

	w, h := decodeDims(t, out)
	assert.Equal(t, 1600, w)
	assert.Equal(t, 800, h, "aspect ratio must be kept")
}

func TestNormalizeToJPG_KeepsSmallImages(t *testing.T) {
	out, err := NormalizeToJPG(makeJPEG(t, 640, 480), 1600, 85)
	require.NoError(t, err)

	w, h := decodeDims(t, out)
	assert.Equal(t, 640, w)
	assert.Equal(t, 480, h)
}

func TestNormalizeToJPG_ReencodesPNG(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 100, 50))
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	out, err := NormalizeToJPG(buf.Bytes(), 1600, 85)
	require.NoError(t, err)

	w, h := decodeDims(t, out)
	assert.Equal(t, 100, w)
	assert.Equal(t, 50, h)
}

func TestOrientationTransforms_NonZeroOrigin(t *testing.T) {
	// a SubImage keeps its parent's coordinates, so bounds start at (4,4)
	base := image.NewRGBA(image.Rect(0, 0, 12, 12))
	for y := 0; y < 12; y++ {
		for x := 0; x < 12; x++ {
			base.Set(x, y, color.RGBA{uint8(x * 10), uint8(y * 10), 0, 255})
		}
	}
	sub := base.SubImage(image.Rect(4, 4, 8, 8))
	require.Equal(t, image.Pt(4, 4), sub.Bounds().Min)

	at := func(img image.Image, x, y int) color.RGBA {
		r, g, b, a := img.At(x, y).RGBA()
		return color.RGBA{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(a >> 8)}
	}
	topLeft := at(sub, 4, 4)     // {40 40 0 255}
	topRight := at(sub, 7, 4)    // {70 40 0 255}
	bottomRight := at(sub, 7, 7) // {70 70 0 255}

	r180 := rotate180(sub)
	assert.Equal(t, image.Rect(0, 0, 4, 4), r180.Bounds())
	assert.Equal(t, topLeft, at(r180, 3, 3))
	assert.Equal(t, bottomRight, at(r180, 0, 0))

	r90 := rotate90(sub)
	assert.Equal(t, topLeft, at(r90, 3, 0))
	assert.Equal(t, topRight, at(r90, 3, 3))

	r270 := rotate270(sub)
	assert.Equal(t, topLeft, at(r270, 0, 3))

	fh := flipH(sub)
	assert.Equal(t, topLeft, at(fh, 3, 0))
	assert.Equal(t, topRight, at(fh, 0, 0))

	fv := flipV(sub)
	assert.Equal(t, topLeft, at(fv, 0, 3))
}

func TestOrientationTransforms_RoundTrip(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 8, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 8; x++ {
			src.Set(x, y, color.RGBA{uint8(x * 30), uint8(y * 60), 7, 255})
		}
	}

	twice := rotate180(rotate180(src)).(*image.RGBA)
	require.Equal(t, src.Bounds(), twice.Bounds())
	assert.Equal(t, src.Pix, twice.Pix)

	flipped := flipH(flipH(src)).(*image.RGBA)
	assert.Equal(t, src.Pix, flipped.Pix)
}

func TestNormalizeToJPG_RejectsGarbage(t *testing.T) {
	_, err := NormalizeToJPG([]byte("not an image"), 1600, 85)
	assert.Error(t, err)
}

func TestReadAllLimit(t *testing.T) {
	b, err := ReadAllLimit(strings.NewReader("hello"), 10)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(b))

	_, err = ReadAllLimit(strings.NewReader("hello world"), 5)
	assert.Error(t, err)
}
