package features

// point is a pixel coordinate in the edge map.
type point struct {
	X, Y int
}

// contour is a connected component of edge pixels together with its
// bounding box.
type contour struct {
	pixels                 int
	minX, minY, maxX, maxY int
}

// area returns the bounding-box area of the contour in square pixels.
func (c contour) area() int {
	return (c.maxX - c.minX + 1) * (c.maxY - c.minY + 1)
}

// contains reports whether the other contour's bounding box lies strictly
// inside this contour's bounding box.
func (c contour) contains(o contour) bool {
	return o.minX > c.minX && o.minY > c.minY && o.maxX < c.maxX && o.maxY < c.maxY
}

// findContours groups connected edge pixels into contours using iterative
// flood-fill with 8-connectivity. Components smaller than MinContourPixels
// are discarded as noise.
func findContours(edges [][]bool) []contour {
	height := len(edges)
	if height == 0 {
		return nil
	}
	width := len(edges[0])

	visited := make([][]bool, height)
	for y := 0; y < height; y++ {
		visited[y] = make([]bool, width)
	}

	var contours []contour

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if edges[y][x] && !visited[y][x] {
				c := floodFill(edges, visited, x, y, width, height)
				if c.pixels >= MinContourPixels {
					contours = append(contours, c)
				}
			}
		}
	}

	return contours
}

// floodFill traces one connected component from a starting pixel.
//
// Uses a stack-based approach (not recursive) to avoid stack overflow on
// large components. Tracks the pixel count and bounding box as it goes.
func floodFill(edges, visited [][]bool, startX, startY, width, height int) contour {
	c := contour{minX: startX, minY: startY, maxX: startX, maxY: startY}
	stack := []point{{X: startX, Y: startY}}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if p.X < 0 || p.X >= width || p.Y < 0 || p.Y >= height {
			continue
		}
		if visited[p.Y][p.X] || !edges[p.Y][p.X] {
			continue
		}

		visited[p.Y][p.X] = true
		c.pixels++
		if p.X < c.minX {
			c.minX = p.X
		}
		if p.X > c.maxX {
			c.maxX = p.X
		}
		if p.Y < c.minY {
			c.minY = p.Y
		}
		if p.Y > c.maxY {
			c.maxY = p.Y
		}

		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				stack = append(stack, point{X: p.X + dx, Y: p.Y + dy})
			}
		}
	}

	return c
}

// outerContours drops every contour whose bounding box lies strictly inside
// another contour's bounding box, keeping only outer boundaries. A ring shape
// therefore counts once: its inner contour is discarded.
func outerContours(contours []contour) []contour {
	outer := make([]contour, 0, len(contours))
	for i, c := range contours {
		nested := false
		for j, o := range contours {
			if i != j && o.contains(c) {
				nested = true
				break
			}
		}
		if !nested {
			outer = append(outer, c)
		}
	}
	return outer
}

// detectSpots runs the full spot-detection chain on a luma plane: Canny edge
// map, contour extraction, outer-boundary retention, and the minimum-area
// filter. It returns the spot count and the mean bounding-box area of the
// retained spots (0 when none were found).
func detectSpots(gray [][]float64) (count int, meanArea float64) {
	edges := cannyEdges(gray, EdgeThresholdLow, EdgeThresholdHigh)
	contours := outerContours(findContours(edges))

	var totalArea int
	for _, c := range contours {
		if a := c.area(); a > MinSpotArea {
			count++
			totalArea += a
		}
	}
	if count > 0 {
		meanArea = float64(totalArea) / float64(count)
	}
	return count, meanArea
}
