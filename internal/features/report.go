package features

import (
	"fmt"
	"strings"
)

// Dimensions describes the size of the analyzed image.
type Dimensions struct {
	Width       int `json:"width"`
	Height      int `json:"height"`
	TotalPixels int `json:"total_pixels"`
}

// ChannelStats holds per-channel mean and standard deviation in RGB
// (8-bit scale, 0-255).
type ChannelStats struct {
	MeanR float64 `json:"mean_r"`
	MeanG float64 `json:"mean_g"`
	MeanB float64 `json:"mean_b"`
	StdR  float64 `json:"std_r"`
	StdG  float64 `json:"std_g"`
	StdB  float64 `json:"std_b"`
}

// ColorStats summarizes the image in RGB, HSV, and Lab color spaces.
//
// HSV means use hue in degrees (0-360) and saturation/value on the 0-255
// scale. Lab lightness is on the 0-100 scale; A and B means are the raw
// opponent-axis values from the Lab conversion.
type ColorStats struct {
	RGB ChannelStats `json:"rgb"`

	HueMean        float64 `json:"hue_mean"`
	SaturationMean float64 `json:"saturation_mean"`
	ValueMean      float64 `json:"value_mean"`

	LightnessMean float64 `json:"lightness_mean"`
	LightnessStd  float64 `json:"lightness_std"`
	AMean         float64 `json:"a_mean"`
	BMean         float64 `json:"b_mean"`

	// GreenPercentage is the fraction of pixels (0-100) whose green
	// channel dominates red and blue — the chlorophyll proxy.
	GreenPercentage float64 `json:"green_percentage"`
}

// HealthIndicators holds the lesion- and discoloration-related measurements.
type HealthIndicators struct {
	// SpotCount is the number of outer contours classified as spots.
	SpotCount int `json:"potential_spots_count"`

	// AverageSpotSize is the mean bounding-box area (square pixels) of
	// the detected spots; 0 when no spots were found.
	AverageSpotSize float64 `json:"average_spot_size"`

	// BrownYellowPercentage is the fraction of pixels (0-100) in the
	// brown/yellow hue band with sufficient saturation and value.
	BrownYellowPercentage float64 `json:"brown_yellow_percentage"`

	// DarkPercentage is the fraction of pixels (0-100) darker than the
	// necrosis luma cutoff.
	DarkPercentage float64 `json:"dark_spots_percentage"`
}

// TextureMetrics holds sharpness and texture measurements.
type TextureMetrics struct {
	// Sharpness is the variance of the Laplacian response over the
	// grayscale image. Higher means crisper detail.
	Sharpness float64 `json:"sharpness_score"`

	// TextureVariance is the mean of per-window grayscale variances.
	TextureVariance float64 `json:"texture_variance"`
}

// QualityMetrics holds overall exposure measurements on the luma channel.
type QualityMetrics struct {
	Brightness float64 `json:"brightness"` // mean luma, 0-255
	Contrast   float64 `json:"contrast"`   // std of luma
}

// DominantColor is one cluster centroid from the palette extraction,
// with its share of the image's pixels.
type DominantColor struct {
	Hex    string  `json:"hex"`
	R      uint8   `json:"r"`
	G      uint8   `json:"g"`
	B      uint8   `json:"b"`
	Weight float64 `json:"weight"` // pixel fraction, 0-100
}

// FeatureReport is the structured numeric summary of a crop image.
//
// Every field is derived deterministically from the input image alone; the
// report is immutable once produced. It is serialized with ContextText and
// handed, together with a resized copy of the image, to the vision model.
type FeatureReport struct {
	Dimensions Dimensions       `json:"image_dimensions"`
	Color      ColorStats       `json:"color_statistics"`
	Health     HealthIndicators `json:"health_indicators"`
	Texture    TextureMetrics   `json:"texture_metrics"`
	Quality    QualityMetrics   `json:"quality_metrics"`
	Dominant   []DominantColor  `json:"dominant_colors"`
}

// BrightnessQualifier labels overall brightness as "good" or "poor" for the
// serialized report.
func (r *FeatureReport) BrightnessQualifier() string {
	if r.Quality.Brightness > brightnessGoodLow && r.Quality.Brightness < brightnessGoodHigh {
		return "good"
	}
	return "poor"
}

// RichnessQualifier labels color richness as "good" or "low" based on mean
// saturation.
func (r *FeatureReport) RichnessQualifier() string {
	if r.Color.SaturationMean > saturationRichMin {
		return "good"
	}
	return "low"
}

// ContextText renders the report as the fixed text block consumed by the
// vision model prompt.
//
// Field order, labels, and units are stable across runs so that outputs stay
// comparable between images. Callers must not reorder or relabel sections;
// the template is part of the external contract with the vision collaborator.
func (r *FeatureReport) ContextText() string {
	var b strings.Builder

	b.WriteString("Image Analysis Context:\n")
	fmt.Fprintf(&b, "- Image size: %dx%d pixels\n", r.Dimensions.Width, r.Dimensions.Height)
	fmt.Fprintf(&b, "- Green content: %.1f%% (chlorophyll indicator)\n", r.Color.GreenPercentage)
	fmt.Fprintf(&b, "- Brightness: %.1f/255 (%s)\n", r.Quality.Brightness, r.BrightnessQualifier())
	fmt.Fprintf(&b, "- Contrast: %.1f\n", r.Quality.Contrast)
	fmt.Fprintf(&b, "- Sharpness: %.1f\n", r.Texture.Sharpness)
	b.WriteString("\n")

	b.WriteString("Health Indicators:\n")
	fmt.Fprintf(&b, "- Potential spots detected: %d\n", r.Health.SpotCount)
	fmt.Fprintf(&b, "- Average spot size: %.1f pixels\n", r.Health.AverageSpotSize)
	fmt.Fprintf(&b, "- Brown/yellow areas: %.1f%% (possible disease/stress)\n", r.Health.BrownYellowPercentage)
	fmt.Fprintf(&b, "- Dark spots: %.1f%% (possible necrosis)\n", r.Health.DarkPercentage)
	b.WriteString("\n")

	b.WriteString("Color Analysis:\n")
	fmt.Fprintf(&b, "- Saturation: %.1f/255 (%s)\n", r.Color.SaturationMean, r.RichnessQualifier())
	fmt.Fprintf(&b, "- Hue mean: %.1f\n", r.Color.HueMean)

	if len(r.Dominant) > 0 {
		b.WriteString("- Dominant colors: ")
		for i, c := range r.Dominant {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%s (%.1f%%)", c.Hex, c.Weight)
		}
		b.WriteString("\n")
	}

	b.WriteString("\nBased on these technical measurements, please analyze the crop health, identify any diseases or issues, and provide recommendations.\n")

	return b.String()
}
