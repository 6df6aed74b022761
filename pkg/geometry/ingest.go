// Package geometry normalizes heterogeneous planar input (line strings and
// polygon boundaries) into the flat segment lists the network builder
// consumes, and provides the small amount of 2D math the rest of the
// pipeline needs. All operations are pure transforms over value types.
package geometry

// ExtractSegments decomposes every feature in the collection into straight
// segments: consecutive coordinate pairs for lines, boundary rings (shell
// and holes) for polygons. Features that fail validation are skipped and
// reported in the returned FeatureError slice; they never abort ingestion.
//
// Segment order is deterministic: all lines in input order, then all
// polygons in input order, each feature's segments in coordinate order.
func ExtractSegments(c Collection) ([]Segment, []*FeatureError) {
	segments := make([]Segment, 0, estimateSegments(c))
	var skipped []*FeatureError

	for i, line := range c.Lines {
		if err := validateLine(i, line); err != nil {
			skipped = append(skipped, err)
			continue
		}
		segments = appendRun(segments, line.Coords, false)
	}

	for i, poly := range c.Polygons {
		if err := validatePolygon(i, poly); err != nil {
			skipped = append(skipped, err)
			continue
		}
		segments = appendRun(segments, poly.Shell, true)
		for _, hole := range poly.Holes {
			segments = appendRun(segments, hole, true)
		}
	}

	return segments, skipped
}

func estimateSegments(c Collection) int {
	n := 0
	for _, l := range c.Lines {
		n += len(l.Coords)
	}
	for _, p := range c.Polygons {
		n += len(p.Shell)
		for _, h := range p.Holes {
			n += len(h)
		}
	}
	return n
}

// appendRun emits segments for consecutive distinct coordinates. Repeated
// coordinates are collapsed rather than emitted as zero-length segments.
// When closed, a final segment back to the first coordinate is added unless
// the run already closes itself.
func appendRun(dst []Segment, coords []Point, closed bool) []Segment {
	if len(coords) < 2 {
		return dst
	}
	prev := coords[0]
	for _, p := range coords[1:] {
		if p == prev {
			continue
		}
		dst = append(dst, Segment{A: prev, B: p})
		prev = p
	}
	if closed && prev != coords[0] {
		dst = append(dst, Segment{A: prev, B: coords[0]})
	}
	return dst
}

func validateLine(index int, line LineString) *FeatureError {
	if len(line.Coords) == 0 {
		return invalidFeature("line", index, "empty geometry")
	}
	if countDistinct(line.Coords) < 2 {
		return invalidFeature("line", index, "fewer than 2 distinct coordinates")
	}
	return nil
}

func validatePolygon(index int, poly Polygon) *FeatureError {
	if len(poly.Shell) == 0 {
		return invalidFeature("polygon", index, "empty geometry")
	}
	if countDistinct(poly.Shell) < 3 {
		return invalidFeature("polygon", index, "shell has fewer than 3 distinct coordinates")
	}
	if ringSelfIntersects(poly.Shell) {
		return invalidFeature("polygon", index, "self-intersecting shell")
	}
	return nil
}

func countDistinct(coords []Point) int {
	seen := make(map[Point]struct{}, len(coords))
	for _, p := range coords {
		seen[p] = struct{}{}
	}
	return len(seen)
}

// ringSelfIntersects reports whether any two non-adjacent boundary segments
// of the ring cross. Quadratic over the ring's own segments, which is
// acceptable for validation of individual features.
func ringSelfIntersects(ring []Point) bool {
	segs := appendRun(nil, ring, true)
	n := len(segs)
	for i := 0; i < n; i++ {
		for j := i + 2; j < n; j++ {
			// Skip the adjacency wrap between the last and first segment.
			if i == 0 && j == n-1 {
				continue
			}
			if _, ok := segs[i].Intersection(segs[j]); ok {
				return true
			}
		}
	}
	return false
}
