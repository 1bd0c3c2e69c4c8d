package features

import (
	"fmt"
	"image"
	"math"
	"sort"

	"github.com/anthonynsimon/bild/transform"
)

// dominantColors extracts up to k representative colors from an image using
// histogram-seeded k-means clustering in RGB space.
//
// # Determinism
//
// The clustering uses no randomness. Initial centroids are the k most
// populous buckets of a quantized color histogram (per-channel bucket width
// QuantizeStep), ordered by count descending with the bucket key as the
// tie-break, so the seed order is a pure function of the pixel data. Lloyd
// iterations then refine the centroids until movement falls below
// ClusterConvergence or ClusterMaxIterations is reached. The same image
// always yields the same palette.
//
// # Edge Cases
//
// Images with fewer distinct histogram buckets than k seed fewer centroids;
// the result simply has fewer entries. Clusters that end up with no members
// are dropped from the output. Results are ordered by weight descending, with
// weight ties resolved by seed order.
//
// # Downsampling
//
// Images larger than ClusterPixelBudget pixels are downsampled with
// nearest-neighbor resampling before clustering to bound cost. Nearest
// neighbor keeps original pixel values, so the palette is not polluted by
// interpolated colors.
func dominantColors(img image.Image, k int) []DominantColor {
	bounds := img.Bounds()
	total := bounds.Dx() * bounds.Dy()
	if total == 0 || k <= 0 {
		return nil
	}

	if total > ClusterPixelBudget {
		scale := math.Sqrt(float64(ClusterPixelBudget) / float64(total))
		w := int(float64(bounds.Dx()) * scale)
		h := int(float64(bounds.Dy()) * scale)
		if w < 1 {
			w = 1
		}
		if h < 1 {
			h = 1
		}
		img = transform.Resize(img, w, h, transform.NearestNeighbor)
		bounds = img.Bounds()
	}

	// Flatten pixels to 8-bit RGB triplets.
	pixels := make([][3]float64, 0, bounds.Dx()*bounds.Dy())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			pixels = append(pixels, [3]float64{
				float64(r >> 8),
				float64(g >> 8),
				float64(b >> 8),
			})
		}
	}

	centroids := seedCentroids(pixels, k)
	if len(centroids) == 0 {
		return nil
	}

	assignments := make([]int, len(pixels))

	for iter := 0; iter < ClusterMaxIterations; iter++ {
		// Assignment step.
		for i, p := range pixels {
			best := 0
			bestDist := math.MaxFloat64
			for c, ctr := range centroids {
				d := sqDist(p, ctr)
				if d < bestDist {
					bestDist = d
					best = c
				}
			}
			assignments[i] = best
		}

		// Update step.
		sums := make([][3]float64, len(centroids))
		counts := make([]int, len(centroids))
		for i, p := range pixels {
			c := assignments[i]
			sums[c][0] += p[0]
			sums[c][1] += p[1]
			sums[c][2] += p[2]
			counts[c]++
		}

		maxShift := 0.0
		for c := range centroids {
			if counts[c] == 0 {
				continue // keep the previous centroid
			}
			n := float64(counts[c])
			next := [3]float64{sums[c][0] / n, sums[c][1] / n, sums[c][2] / n}
			shift := math.Sqrt(sqDist(centroids[c], next))
			if shift > maxShift {
				maxShift = shift
			}
			centroids[c] = next
		}

		if maxShift < ClusterConvergence {
			break
		}
	}

	// Final membership counts for weights.
	counts := make([]int, len(centroids))
	for i, p := range pixels {
		best := 0
		bestDist := math.MaxFloat64
		for c, ctr := range centroids {
			d := sqDist(p, ctr)
			if d < bestDist {
				bestDist = d
				best = c
			}
		}
		assignments[i] = best
		counts[best]++
	}

	type weighted struct {
		color DominantColor
		seed  int
	}

	result := make([]weighted, 0, len(centroids))
	n := float64(len(pixels))
	for c, ctr := range centroids {
		if counts[c] == 0 {
			continue
		}
		r8 := uint8(math.Round(ctr[0]))
		g8 := uint8(math.Round(ctr[1]))
		b8 := uint8(math.Round(ctr[2]))
		result = append(result, weighted{
			color: DominantColor{
				Hex:    fmt.Sprintf("#%02X%02X%02X", r8, g8, b8),
				R:      r8,
				G:      g8,
				B:      b8,
				Weight: float64(counts[c]) / n * 100.0,
			},
			seed: c,
		})
	}

	// Weight descending; stable sort keeps seed order for exact ties.
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].color.Weight > result[j].color.Weight
	})

	out := make([]DominantColor, len(result))
	for i, w := range result {
		out[i] = w.color
	}
	return out
}

// seedCentroids picks up to k initial centroids from a quantized color
// histogram, most populous buckets first. Bucket keys break count ties so the
// seed order never depends on map iteration order.
func seedCentroids(pixels [][3]float64, k int) [][3]float64 {
	histogram := make(map[uint32]int)
	for _, p := range pixels {
		r := uint32(p[0]) / QuantizeStep * QuantizeStep
		g := uint32(p[1]) / QuantizeStep * QuantizeStep
		b := uint32(p[2]) / QuantizeStep * QuantizeStep
		histogram[r<<16|g<<8|b]++
	}

	type bucket struct {
		key   uint32
		count int
	}
	buckets := make([]bucket, 0, len(histogram))
	for key, count := range histogram {
		buckets = append(buckets, bucket{key: key, count: count})
	}
	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].count != buckets[j].count {
			return buckets[i].count > buckets[j].count
		}
		return buckets[i].key < buckets[j].key
	})

	if len(buckets) > k {
		buckets = buckets[:k]
	}

	centroids := make([][3]float64, len(buckets))
	for i, b := range buckets {
		// Seed at the bucket center so refinement starts inside the
		// bucket rather than at its lower corner.
		centroids[i] = [3]float64{
			float64(b.key>>16&0xFF) + QuantizeStep/2,
			float64(b.key>>8&0xFF) + QuantizeStep/2,
			float64(b.key&0xFF) + QuantizeStep/2,
		}
	}
	return centroids
}

// sqDist is the squared Euclidean distance between two RGB triplets.
func sqDist(a, b [3]float64) float64 {
	dr := a[0] - b[0]
	dg := a[1] - b[1]
	db := a[2] - b[2]
	return dr*dr + dg*dg + db*db
}
