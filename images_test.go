package notes

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func encodeJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h)), nil))
	return buf.Bytes()
}

func TestProcessImages(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()
	require.NoError(t, WriteFile(filepath.Join(src, "wide.jpg"), encodeJPEG(t, 400, 200)))
	require.NoError(t, WriteFile(filepath.Join(src, "nested", "small.png"), encodePNG(t, 50, 50)))
	require.NoError(t, WriteFile(filepath.Join(src, "wide.png"), encodePNG(t, 300, 30)))
	require.NoError(t, WriteFile(filepath.Join(src, "logo.svg"), []byte("<svg/>")))

	stats, err := ProcessImages(context.Background(), ImagesConfig{Dir: src, Prefix: "img", MaxWidth: 100, Quality: 82}, out)
	require.NoError(t, err)
	require.Equal(t, ImageStats{Resized: 2, Copied: 2}, stats)

	f, err := os.Open(filepath.Join(out, "img", "wide.jpg"))
	require.NoError(t, err)
	defer f.Close()
	cfg, format, err := image.DecodeConfig(f)
	require.NoError(t, err)
	require.Equal(t, "jpeg", format)
	require.Equal(t, 100, cfg.Width)
	require.Equal(t, 50, cfg.Height)

	data, err := os.ReadFile(filepath.Join(out, "img", "wide.png"))
	require.NoError(t, err)
	cfg, format, err = image.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, "png", format)
	require.Equal(t, 10, cfg.Height)

	svg, err := os.ReadFile(filepath.Join(out, "img", "logo.svg"))
	require.NoError(t, err)
	require.Equal(t, "<svg/>", string(svg))
	require.FileExists(t, filepath.Join(out, "img", "nested", "small.png"))
}

func TestProcessImages_CorruptImageFails(t *testing.T) {
	src := t.TempDir()
	require.NoError(t, WriteFile(filepath.Join(src, "broken.jpg"), []byte("not an image")))
	_, err := ProcessImages(context.Background(), ImagesConfig{Dir: src, Prefix: "img", MaxWidth: 100, Quality: 82}, t.TempDir())
	require.Error(t, err)
}
