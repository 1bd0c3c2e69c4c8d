package features

// laplacianVariance applies a 3x3 Laplacian filter to a luma plane and
// returns the variance of the response. This is the standard blur measure:
// the second derivative responds strongly to fine detail, so a crisp image
// has a high variance and a blurred or uniform one approaches zero.
//
// Kernel:
//
//	0  1  0
//	1 -4  1
//	0  1  0
//
// Border pixels use clamped (replicated) edge values.
func laplacianVariance(gray [][]float64) float64 {
	height := len(gray)
	if height == 0 {
		return 0
	}
	width := len(gray[0])
	n := float64(width * height)
	if n == 0 {
		return 0
	}

	var sum, sumSq float64
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			up := gray[clamp(y-1, 0, height-1)][x]
			down := gray[clamp(y+1, 0, height-1)][x]
			left := gray[y][clamp(x-1, 0, width-1)]
			right := gray[y][clamp(x+1, 0, width-1)]

			v := up + down + left + right - 4*gray[y][x]
			sum += v
			sumSq += v * v
		}
	}

	return sumSq/n - (sum/n)*(sum/n)
}

// localVariance computes the texture measure: the luma plane is tiled into
// TextureWindow-sized windows, the grayscale variance is computed per window,
// and the mean of those variances is returned. Partial windows at the right
// and bottom edges are included with their own pixel counts.
//
// A uniform image scores 0; strongly textured foliage scores high even when
// the global contrast is moderate.
func localVariance(gray [][]float64) float64 {
	height := len(gray)
	if height == 0 {
		return 0
	}
	width := len(gray[0])
	if width == 0 {
		return 0
	}

	var total float64
	var windows int

	for wy := 0; wy < height; wy += TextureWindow {
		for wx := 0; wx < width; wx += TextureWindow {
			var sum, sumSq float64
			var count int

			for y := wy; y < wy+TextureWindow && y < height; y++ {
				for x := wx; x < wx+TextureWindow && x < width; x++ {
					v := gray[y][x]
					sum += v
					sumSq += v * v
					count++
				}
			}

			if count > 0 {
				n := float64(count)
				variance := sumSq/n - (sum/n)*(sum/n)
				if variance < 0 {
					variance = 0
				}
				total += variance
				windows++
			}
		}
	}

	if windows == 0 {
		return 0
	}
	return total / float64(windows)
}
