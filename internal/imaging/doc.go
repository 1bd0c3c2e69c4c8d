// Package imaging handles the image I/O boundary around feature extraction.
//
// It decodes raw upload bytes into image.Image values, enforcing the format
// allowlist and dimension limits before any analysis runs, and prepares the
// resized, re-encoded, base64 copy of the image that travels to the vision
// model together with the feature report.
//
// # Supported Formats
//
// JPEG, PNG, GIF, and WebP are accepted on input. Vision payloads are
// re-encoded as JPEG by default; WebP output can be selected for smaller
// payloads.
//
// # Error Handling
//
// Decode failures are reported as *DecodeError so callers can distinguish a
// bad upload (a per-request client error, never retried) from internal
// failures. Dimension violations are also DecodeErrors: the bytes decoded,
// but the image is unusable for analysis.
package imaging
