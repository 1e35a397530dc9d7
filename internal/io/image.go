package ioutils

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"strings"
)

// Compression levels accepted by NewImageService.
const (
	DefaultCompression = png.DefaultCompression
	NoCompression      = png.NoCompression
	BestSpeed          = png.BestSpeed
	BestCompression    = png.BestCompression
)

// ParseCompression maps a settings value to a PNG compression level.
//
// Accepted values: "default" (or empty), "none", "speed", "best".
func ParseCompression(s string) (png.CompressionLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "default":
		return DefaultCompression, nil
	case "none":
		return NoCompression, nil
	case "speed":
		return BestSpeed, nil
	case "best":
		return BestCompression, nil
	default:
		return DefaultCompression, fmt.Errorf("unknown png compression %q", s)
	}
}

// ImageService encodes decoded frames into still-image files.
//
// Example usage:
//
//	svc := NewImageService(BestCompression)
//	data, err := svc.EncodePNG(ctx, frame.Image)
//	err = WriteFile(ctx, path, data)
type ImageService struct {
	encoder *png.Encoder
}

// NewImageService creates a new ImageService using the given compression level.
func NewImageService(level png.CompressionLevel) *ImageService {
	return &ImageService{
		encoder: &png.Encoder{
			CompressionLevel: level,
			BufferPool:       &bufferPool{},
		},
	}
}

// EncodePNG returns img encoded as a standalone PNG file.
func (s *ImageService) EncodePNG(ctx context.Context, img image.Image) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if img == nil {
		return nil, fmt.Errorf("nil image")
	}

	var buf bytes.Buffer
	if err := s.encoder.Encode(&buf, img); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
