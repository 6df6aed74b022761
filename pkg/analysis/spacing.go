package analysis

import (
	"sort"

	"github.com/dkelsey/fracmosaic/pkg/geometry"
	"github.com/dkelsey/fracmosaic/pkg/network"
)

// crossingStations returns the positions, as distance along the transect,
// where the transect crosses graph edges. Coincident crossings (a transect
// passing through a shared vertex hits both incident edges) collapse to one
// station.
func crossingStations(g *network.Graph, transect []geometry.Point) []float64 {
	var stations []float64
	walked := 0.0

	for i := 0; i+1 < len(transect); i++ {
		leg := geometry.Segment{A: transect[i], B: transect[i+1]}
		legLen := leg.Length()
		for _, e := range g.Edges() {
			p, ok := leg.Intersection(g.Segment(e.ID))
			if !ok {
				continue
			}
			stations = append(stations, walked+leg.ParamAlong(p)*legLen)
		}
		walked += legLen
	}

	sort.Float64s(stations)

	const coincident = 1e-9
	deduped := stations[:0]
	for _, s := range stations {
		if len(deduped) > 0 && s-deduped[len(deduped)-1] <= coincident {
			continue
		}
		deduped = append(deduped, s)
	}
	return deduped
}

// transectSpacing computes mean and median nearest-neighbor distance between
// consecutive crossing stations along the transect. Fewer than two stations
// leave both stats uncomputed.
func transectSpacing(g *network.Graph, transect []geometry.Point) (mean, median Stat) {
	if len(transect) < 2 {
		return NotComputed, NotComputed
	}

	stations := crossingStations(g, transect)
	if len(stations) < 2 {
		return NotComputed, NotComputed
	}

	gaps := make([]float64, len(stations)-1)
	for i := 1; i < len(stations); i++ {
		gaps[i-1] = stations[i] - stations[i-1]
	}
	return Computed(Mean(gaps)), Computed(Median(gaps))
}
