package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

// Vision payload defaults: fit within 1024x1024 and re-encode at quality 85.
// Vision models downscale anyway; shipping full-resolution uploads only
// burns bandwidth and tokens.
const (
	VisionMaxDimension = 1024
	VisionQuality      = 85
)

// PayloadFormat selects the re-encoding used for the vision payload.
type PayloadFormat string

const (
	PayloadJPEG PayloadFormat = "jpeg"
	PayloadWebP PayloadFormat = "webp"
)

// VisionPayload is the resized, re-encoded copy of an upload that is sent to
// the vision model alongside the feature-report context text.
type VisionPayload struct {
	// Base64 is the encoded image bytes, standard encoding, no data-URI
	// prefix. Providers add their own framing.
	Base64 string `json:"base64"`

	// MimeType is "image/jpeg" or "image/webp".
	MimeType string `json:"mime_type"`

	// Width and Height are the dimensions after fitting.
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Bytes returns the raw (non-base64) encoded image bytes.
func (p *VisionPayload) Bytes() ([]byte, error) {
	return base64.StdEncoding.DecodeString(p.Base64)
}

// DataURI returns the payload as a data URI, the framing the OpenAI
// multimodal API expects.
func (p *VisionPayload) DataURI() string {
	return fmt.Sprintf("data:%s;base64,%s", p.MimeType, p.Base64)
}

// PrepareForVision produces the vision payload for a decoded image.
//
// The image is fitted within VisionMaxDimension on both axes using Lanczos
// resampling, preserving aspect ratio and never upscaling, then re-encoded
// in the requested format at VisionQuality. An unknown format falls back to
// JPEG.
func PrepareForVision(img image.Image, format PayloadFormat) (*VisionPayload, error) {
	bounds := img.Bounds()
	fitted := img
	if bounds.Dx() > VisionMaxDimension || bounds.Dy() > VisionMaxDimension {
		fitted = imaging.Fit(img, VisionMaxDimension, VisionMaxDimension, imaging.Lanczos)
	}

	var buf bytes.Buffer
	mime := "image/jpeg"

	switch format {
	case PayloadWebP:
		mime = "image/webp"
		if err := webp.Encode(&buf, fitted, &webp.Options{Quality: VisionQuality}); err != nil {
			return nil, fmt.Errorf("encode webp payload: %w", err)
		}
	default:
		if err := imaging.Encode(&buf, fitted, imaging.JPEG, imaging.JPEGQuality(VisionQuality)); err != nil {
			return nil, fmt.Errorf("encode jpeg payload: %w", err)
		}
	}

	return &VisionPayload{
		Base64:   base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType: mime,
		Width:    fitted.Bounds().Dx(),
		Height:   fitted.Bounds().Dy(),
	}, nil
}
