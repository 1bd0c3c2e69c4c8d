package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder

	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// Decoding limits. Images outside these bounds are rejected before feature
// extraction; tiny images carry no usable statistics and enormous ones are
// a resource hazard on a shared server.
const (
	MinDimension = 32
	MaxDimension = 8192
)

// DecodeError reports an image that could not be decoded or that violates
// the dimension limits. It always indicates a problem with the uploaded
// bytes, not with the server; callers should map it to a client error and
// must not retry.
type DecodeError struct {
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decode image: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("decode image: %s", e.Reason)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// allowedFormats is the set of container formats accepted from uploads.
// The format string is whatever image.Decode reports for the registered
// decoder ("jpeg", "png", "gif", "webp").
var allowedFormats = map[string]bool{
	"jpeg": true,
	"png":  true,
	"gif":  true,
	"webp": true,
}

// Decode parses raw upload bytes into an image.
//
// Returns the decoded image and the detected format name. Failures are
// always *DecodeError: undecodable bytes, a format outside the allowlist,
// or dimensions outside [MinDimension, MaxDimension].
func Decode(data []byte) (image.Image, string, error) {
	if len(data) == 0 {
		return nil, "", &DecodeError{Reason: "empty input"}
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", &DecodeError{Reason: "unrecognized image data", Err: err}
	}

	if !allowedFormats[format] {
		return nil, "", &DecodeError{Reason: fmt.Sprintf("unsupported format %q", format)}
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w < MinDimension || h < MinDimension {
		return nil, "", &DecodeError{Reason: fmt.Sprintf("image too small: %dx%d (minimum %d)", w, h, MinDimension)}
	}
	if w > MaxDimension || h > MaxDimension {
		return nil, "", &DecodeError{Reason: fmt.Sprintf("image too large: %dx%d (maximum %d)", w, h, MaxDimension)}
	}

	return img, format, nil
}
