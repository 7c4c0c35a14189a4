package geometry

// The polygon corner stream marks the last corner of every polygon by
// storing the bitwise complement of the real control-point index, so a
// quad over control points 0,1,2,3 is written [0, 1, 2, -4].

// decodeCorner strips the terminal-sign convention from one stream entry.
func decodeCorner(v int32) int32 {
	if v < 0 {
		return -v - 1
	}
	return v
}

// Triangulate converts the raw polygon corner stream into a flat triangle
// list by fan triangulation anchored at each polygon's first corner, so an
// n-sided polygon yields n-2 triangles.
//
// It returns the triangle corners (decoded control-point indices, three
// per triangle), a parallel back-map from each triangle corner to the
// stream position it came from, and the decoded corner stream with the
// sign convention stripped. The input is left untouched.
func Triangulate(raw []int32) (triangles, toOld, loops []int32) {
	loops = make([]int32, len(raw))
	for i, v := range raw {
		loops[i] = decodeCorner(v)
	}

	inPolygon := 0
	for i := range raw {
		if inPolygon <= 2 {
			triangles = append(triangles, loops[i])
			toOld = append(toOld, int32(i))
		} else {
			start := i - inPolygon
			triangles = append(triangles, loops[start], loops[i-1], loops[i])
			toOld = append(toOld, int32(start), int32(i-1), int32(i))
		}
		inPolygon++
		if raw[i] < 0 {
			inPolygon = 0
		}
	}
	return triangles, toOld, loops
}

// PolygonTriangleCount counts the corners of the polygon starting at
// stream position start, terminal entry included, and reports how many
// triangles it yields along with the position of the next polygon's first
// corner. Polygons with fewer than three corners yield zero triangles.
func PolygonTriangleCount(raw []int32, start int) (triangles, next int) {
	corners := 0
	i := start
	for i < len(raw) {
		corners++
		i++
		if raw[i-1] < 0 {
			break
		}
	}
	if corners < 3 {
		return 0, i
	}
	return corners - 2, i
}
