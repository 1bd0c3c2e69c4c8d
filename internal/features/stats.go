package features

import (
	"image"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// colorStatistics computes the RGB/HSV/Lab statistics plus the pixel-fraction
// health ratios (green content in the returned stats, brown/yellow
// discoloration as the second return) in one pass.
//
// HSV and Lab conversions go through go-colorful. Hue is averaged
// arithmetically in degrees; fully desaturated pixels contribute hue 0.
// Variances use the population formula and are guarded against negative
// rounding residue before the square root.
func colorStatistics(img image.Image) (ColorStats, float64) {
	bounds := img.Bounds()
	total := bounds.Dx() * bounds.Dy()
	if total == 0 {
		return ColorStats{}, 0
	}

	var (
		sumR, sumG, sumB    float64
		sumR2, sumG2, sumB2 float64
		sumH, sumS, sumV    float64
		sumL, sumL2         float64
		sumA, sumBB         float64
		greenCount          int
		brownYellowCount    int
	)

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			r8 := float64(r >> 8)
			g8 := float64(g >> 8)
			b8 := float64(b >> 8)

			sumR += r8
			sumG += g8
			sumB += b8
			sumR2 += r8 * r8
			sumG2 += g8 * g8
			sumB2 += b8 * b8

			if g8 > r8+GreenDominanceMargin && g8 > b8+GreenDominanceMargin && g8 > GreenFloor {
				greenCount++
			}

			c := colorful.Color{R: r8 / 255.0, G: g8 / 255.0, B: b8 / 255.0}

			h, s, v := c.Hsv()
			sumH += h
			sumS += s
			sumV += v
			if h >= BrownYellowHueMin && h <= BrownYellowHueMax &&
				s >= BrownYellowSatFloor && v >= BrownYellowValFloor {
				brownYellowCount++
			}

			l, a, bb := c.Lab()
			sumL += l
			sumL2 += l * l
			sumA += a
			sumBB += bb
		}
	}

	n := float64(total)

	stats := ColorStats{
		RGB: ChannelStats{
			MeanR: sumR / n,
			MeanG: sumG / n,
			MeanB: sumB / n,
			StdR:  stdFromSums(sumR, sumR2, n),
			StdG:  stdFromSums(sumG, sumG2, n),
			StdB:  stdFromSums(sumB, sumB2, n),
		},
		HueMean:        sumH / n,
		SaturationMean: sumS / n * 255.0,
		ValueMean:      sumV / n * 255.0,
		LightnessMean:  sumL / n * 100.0,
		LightnessStd:   stdFromSums(sumL, sumL2, n) * 100.0,
		AMean:          sumA / n,
		BMean:          sumBB / n,

		GreenPercentage: float64(greenCount) / n * 100.0,
	}

	return stats, float64(brownYellowCount) / n * 100.0
}

// stdFromSums computes a population standard deviation from a running sum and
// sum of squares.
func stdFromSums(sum, sumSq, n float64) float64 {
	variance := sumSq/n - (sum/n)*(sum/n)
	if variance < 0 {
		variance = 0
	}
	return math.Sqrt(variance)
}

// lumaStatistics computes brightness (mean), contrast (std), and the dark
// pixel fraction from a precomputed luma plane (0-255).
func lumaStatistics(gray [][]float64) (brightness, contrast, darkPct float64) {
	var sum, sumSq float64
	var darkCount, total int

	for _, row := range gray {
		for _, v := range row {
			sum += v
			sumSq += v * v
			if v < DarkLumaCutoff {
				darkCount++
			}
			total++
		}
	}
	if total == 0 {
		return 0, 0, 0
	}

	n := float64(total)
	return sum / n, stdFromSums(sum, sumSq, n), float64(darkCount) / n * 100.0
}
