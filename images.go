package notes

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"
)

// ImageStats counts what the images stage did.
type ImageStats struct {
	Resized int
	Copied  int
}

// ProcessImages mirrors cfg.Dir into <outDir>/<cfg.Prefix>. JPEG and PNG
// files wider than cfg.MaxWidth are downscaled, keeping their format and
// aspect ratio; every other file is copied unchanged.
func ProcessImages(ctx context.Context, cfg ImagesConfig, outDir string) (ImageStats, error) {
	var stats ImageStats
	dest := filepath.Join(outDir, filepath.FromSlash(cfg.Prefix))
	err := filepath.WalkDir(cfg.Dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(cfg.Dir, path)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		out, resized, err := processImage(data, filepath.Ext(path), cfg.MaxWidth, cfg.Quality)
		if err != nil {
			return fmt.Errorf("%s: %w", rel, err)
		}
		if err := WriteFile(filepath.Join(dest, rel), out); err != nil {
			return err
		}
		if resized {
			stats.Resized++
		} else {
			stats.Copied++
		}
		return nil
	})
	return stats, err
}

// processImage returns data downscaled to maxWidth when it is a JPEG or PNG
// wider than that, or data unchanged otherwise.
func processImage(data []byte, ext string, maxWidth, quality int) ([]byte, bool, error) {
	ext = strings.ToLower(ext)
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
		return data, false, nil
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, false, fmt.Errorf("decode image: %w", err)
	}
	if cfg.Width <= maxWidth {
		return data, false, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, false, fmt.Errorf("decode image: %w", err)
	}
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	newH := max(1, h*maxWidth/w)
	dst := image.NewRGBA(image.Rect(0, 0, maxWidth, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if ext == ".png" {
		err = png.Encode(&buf, dst)
	} else {
		err = jpeg.Encode(&buf, dst, &jpeg.Options{Quality: quality})
	}
	if err != nil {
		return nil, false, fmt.Errorf("encode image: %w", err)
	}
	return buf.Bytes(), true, nil
}
