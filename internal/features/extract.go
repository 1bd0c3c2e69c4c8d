package features

import (
	"errors"
	"image"
)

// ErrEmptyImage is returned when the input image has no pixels.
var ErrEmptyImage = errors.New("features: image has no pixels")

// Extract runs the full feature-extraction pipeline on a decoded image and
// returns its FeatureReport.
//
// Extract is a pure function: the same image always produces an identical
// report, field for field, including the dominant-color palette (the
// clustering is seeded deterministically from the pixel data, see
// dominantColors). It never modifies the input image and keeps no state
// between calls, so it is safe to invoke concurrently for independent images.
//
// Degenerate inputs are handled without error: a uniform image yields zero
// variances, zero spots, and a single dominant color. Only an image with no
// pixels fails, with ErrEmptyImage.
func Extract(img image.Image) (*FeatureReport, error) {
	if img == nil {
		return nil, ErrEmptyImage
	}
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width == 0 || height == 0 {
		return nil, ErrEmptyImage
	}

	gray := grayscale(img)

	colorStats, brownYellowPct := colorStatistics(img)
	brightness, contrast, darkPct := lumaStatistics(gray)
	spotCount, meanSpotSize := detectSpots(gray)
	sharpness := laplacianVariance(gray)
	texture := localVariance(gray)
	palette := dominantColors(img, DominantColorCount)

	return &FeatureReport{
		Dimensions: Dimensions{
			Width:       width,
			Height:      height,
			TotalPixels: width * height,
		},
		Color: colorStats,
		Health: HealthIndicators{
			SpotCount:             spotCount,
			AverageSpotSize:       meanSpotSize,
			BrownYellowPercentage: brownYellowPct,
			DarkPercentage:        darkPct,
		},
		Texture: TextureMetrics{
			Sharpness:       sharpness,
			TextureVariance: texture,
		},
		Quality: QualityMetrics{
			Brightness: brightness,
			Contrast:   contrast,
		},
		Dominant: palette,
	}, nil
}
