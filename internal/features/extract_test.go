package features

import (
	"image"
	"image/color"
	"math"
	"reflect"
	"testing"
)

// createUniformImage returns a solid-color RGBA image for testing.
func createUniformImage(width, height int, c color.RGBA) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestExtract_AllBlack(t *testing.T) {
	img := createUniformImage(100, 100, color.RGBA{0, 0, 0, 255})

	report, err := Extract(img)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if report.Quality.Brightness > 1.0 {
		t.Errorf("brightness: got %.2f, want ~0", report.Quality.Brightness)
	}
	if report.Quality.Contrast > 1.0 {
		t.Errorf("contrast: got %.2f, want ~0", report.Quality.Contrast)
	}
	if report.Color.GreenPercentage > 0.1 {
		t.Errorf("green percentage: got %.2f, want ~0", report.Color.GreenPercentage)
	}
	if report.Health.DarkPercentage < 99.9 {
		t.Errorf("dark percentage: got %.2f, want ~100", report.Health.DarkPercentage)
	}
}

func TestExtract_AllGreen(t *testing.T) {
	img := createUniformImage(100, 100, color.RGBA{0, 200, 0, 255})

	report, err := Extract(img)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if report.Color.GreenPercentage < 99.9 {
		t.Errorf("green percentage: got %.2f, want ~100", report.Color.GreenPercentage)
	}
	if report.Health.SpotCount != 0 {
		t.Errorf("spot count: got %d, want 0", report.Health.SpotCount)
	}
	if report.Texture.TextureVariance > 0.01 {
		t.Errorf("texture variance: got %.4f, want ~0", report.Texture.TextureVariance)
	}
	if report.Texture.Sharpness > 0.01 {
		t.Errorf("sharpness: got %.4f, want ~0", report.Texture.Sharpness)
	}
}

func TestExtract_Dimensions(t *testing.T) {
	img := createUniformImage(64, 48, color.RGBA{120, 130, 140, 255})

	report, err := Extract(img)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if report.Dimensions.Width != 64 || report.Dimensions.Height != 48 {
		t.Errorf("dimensions: got %dx%d, want 64x48",
			report.Dimensions.Width, report.Dimensions.Height)
	}
	if report.Dimensions.TotalPixels != 64*48 {
		t.Errorf("total pixels: got %d, want %d", report.Dimensions.TotalPixels, 64*48)
	}
}

func TestExtract_UniformColorStats(t *testing.T) {
	img := createUniformImage(50, 50, color.RGBA{10, 180, 30, 255})

	report, err := Extract(img)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	rgb := report.Color.RGB
	if math.Abs(rgb.MeanR-10) > 0.5 || math.Abs(rgb.MeanG-180) > 0.5 || math.Abs(rgb.MeanB-30) > 0.5 {
		t.Errorf("RGB means: got (%.1f, %.1f, %.1f), want (10, 180, 30)",
			rgb.MeanR, rgb.MeanG, rgb.MeanB)
	}
	if rgb.StdR > 0.01 || rgb.StdG > 0.01 || rgb.StdB > 0.01 {
		t.Errorf("RGB stds should be 0 for uniform image, got (%.3f, %.3f, %.3f)",
			rgb.StdR, rgb.StdG, rgb.StdB)
	}
	if report.Color.LightnessStd > 0.01 {
		t.Errorf("lightness std should be 0 for uniform image, got %.3f",
			report.Color.LightnessStd)
	}
}

func TestExtract_BrownYellowDetection(t *testing.T) {
	// A saturated orange-brown: hue ~30°, well inside the 20-80° band.
	brown := createUniformImage(50, 50, color.RGBA{180, 110, 30, 255})

	report, err := Extract(brown)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if report.Health.BrownYellowPercentage < 99.9 {
		t.Errorf("brown/yellow percentage: got %.2f, want ~100",
			report.Health.BrownYellowPercentage)
	}

	// Pure blue is far outside the band.
	blue := createUniformImage(50, 50, color.RGBA{20, 30, 200, 255})
	report, err = Extract(blue)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if report.Health.BrownYellowPercentage > 0.1 {
		t.Errorf("brown/yellow percentage for blue image: got %.2f, want 0",
			report.Health.BrownYellowPercentage)
	}
}

func TestExtract_Idempotent(t *testing.T) {
	// A non-trivial image: gradient plus a dark block.
	img := image.NewRGBA(image.Rect(0, 0, 80, 80))
	for y := 0; y < 80; y++ {
		for x := 0; x < 80; x++ {
			if x > 20 && x < 40 && y > 20 && y < 40 {
				img.Set(x, y, color.RGBA{30, 20, 10, 255})
			} else {
				img.Set(x, y, color.RGBA{uint8(x * 3), uint8(180 - y), uint8(y), 255})
			}
		}
	}

	first, err := Extract(img)
	if err != nil {
		t.Fatalf("first Extract failed: %v", err)
	}
	second, err := Extract(img)
	if err != nil {
		t.Fatalf("second Extract failed: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("Extract is not deterministic: two runs on the same image differ")
	}
}

func TestExtract_EmptyImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 0, 0))

	if _, err := Extract(img); err == nil {
		t.Error("expected error for empty image, got nil")
	}

	if _, err := Extract(nil); err == nil {
		t.Error("expected error for nil image, got nil")
	}
}

func TestExtract_SharpnessOrdering(t *testing.T) {
	// A checkerboard has far more second-derivative energy than a smooth
	// gradient; sharpness must reflect that.
	checker := image.NewRGBA(image.Rect(0, 0, 64, 64))
	gradient := image.NewRGBA(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			if (x/4+y/4)%2 == 0 {
				checker.Set(x, y, color.RGBA{255, 255, 255, 255})
			} else {
				checker.Set(x, y, color.RGBA{0, 0, 0, 255})
			}
			gradient.Set(x, y, color.RGBA{uint8(x * 2), uint8(x * 2), uint8(x * 2), 255})
		}
	}

	sharp, err := Extract(checker)
	if err != nil {
		t.Fatalf("Extract(checker) failed: %v", err)
	}
	smooth, err := Extract(gradient)
	if err != nil {
		t.Fatalf("Extract(gradient) failed: %v", err)
	}

	if sharp.Texture.Sharpness <= smooth.Texture.Sharpness {
		t.Errorf("sharpness ordering: checkerboard %.2f should exceed gradient %.2f",
			sharp.Texture.Sharpness, smooth.Texture.Sharpness)
	}
}
