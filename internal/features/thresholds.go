package features

// Fixed tuning constants for the extraction pipeline. They are deliberately
// grouped here so the detector bodies stay free of magic numbers and the
// values can be adjusted without touching algorithm code. None of them are
// derived from the input image, which keeps results reproducible across runs.
const (
	// GreenDominanceMargin is how far (in 8-bit channel units) the green
	// channel must exceed both red and blue for a pixel to count as
	// chlorophyll-bearing.
	GreenDominanceMargin = 10

	// GreenFloor is the minimum green channel value for a pixel to count
	// as green at all. Keeps near-black pixels out of the ratio.
	GreenFloor = 40

	// EdgeThresholdLow and EdgeThresholdHigh are the hysteresis thresholds
	// (0-255 gradient scale) for the Canny edge detector feeding spot
	// detection.
	EdgeThresholdLow  = 50
	EdgeThresholdHigh = 150

	// MinContourPixels is the minimum number of connected edge pixels for
	// a contour to be considered at all; smaller components are noise.
	MinContourPixels = 10

	// MinSpotArea is the minimum bounding-box area (square pixels) for a
	// retained contour to be classified as a spot.
	MinSpotArea = 10

	// BrownYellowHueMin and BrownYellowHueMax bound the hue band (degrees)
	// treated as brown/yellow discoloration.
	BrownYellowHueMin = 20.0
	BrownYellowHueMax = 80.0

	// BrownYellowSatFloor and BrownYellowValFloor are the minimum HSV
	// saturation and value (0-1) for a pixel to count as discolored;
	// below these the hue is too washed out to be meaningful.
	BrownYellowSatFloor = 50.0 / 255.0
	BrownYellowValFloor = 50.0 / 255.0

	// DarkLumaCutoff is the luma (0-255) below which a pixel counts as
	// dark/necrotic.
	DarkLumaCutoff = 80.0

	// TextureWindow is the side length (pixels) of the windows used for
	// the local-variance texture measure.
	TextureWindow = 16

	// DominantColorCount is K: the maximum number of dominant colors
	// reported.
	DominantColorCount = 5

	// ClusterPixelBudget caps the number of pixels fed to the clustering
	// step; larger images are downsampled to roughly this many pixels.
	ClusterPixelBudget = 128 * 128

	// ClusterMaxIterations bounds the centroid-refinement loop.
	ClusterMaxIterations = 20

	// ClusterConvergence is the maximum centroid movement (8-bit channel
	// units) at which refinement is considered converged.
	ClusterConvergence = 1.0

	// QuantizeStep is the per-channel bucket width used when seeding the
	// cluster centroids from the color histogram.
	QuantizeStep = 16
)

// Brightness and saturation bands used by the serialized report qualifiers.
const (
	brightnessGoodLow  = 50.0
	brightnessGoodHigh = 200.0
	saturationRichMin  = 50.0
)
