package domain

import "sort"

// Default map framing for an empty selection: roughly the centroid of the
// Philippine archipelago at country-level zoom.
const (
	defaultMapLat  = 12.8
	defaultMapLon  = 121.7
	zoomCountry    = 5
	zoomProvince   = 9
	percentFactor  = 100.0
	overloadCutoff = 100.0
)

// Filter narrows a facility collection for the dashboard controls. An empty
// Province means all provinces; an empty Types set means all types.
type Filter struct {
	Province string
	Types    []string
}

// Apply returns the facilities matching the filter, preserving order.
func (f Filter) Apply(facilities []Facility) []Facility {
	out := make([]Facility, 0, len(facilities))
	typeSet := make(map[string]bool, len(f.Types))
	for _, t := range f.Types {
		typeSet[t] = true
	}
	for _, facility := range facilities {
		if f.Province != "" && facility.Province != f.Province {
			continue
		}
		if len(typeSet) > 0 && !typeSet[facility.Type] {
			continue
		}
		out = append(out, facility)
	}
	return out
}

// Provinces lists the distinct provinces in the collection, sorted.
func Provinces(facilities []Facility) []string {
	return distinct(facilities, func(f Facility) string { return f.Province })
}

// FacilityTypes lists the distinct facility types in the collection, sorted.
// Pass a pre-filtered collection to get the cascading behavior where the type
// options track the selected province.
func FacilityTypes(facilities []Facility) []string {
	return distinct(facilities, func(f Facility) string { return f.Type })
}

func distinct(facilities []Facility, key func(Facility) string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, f := range facilities {
		k := key(f)
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

// Summary holds the headline metrics for a selection.
type Summary struct {
	Facilities       int     `json:"facilities"`
	TotalCapacity    int     `json:"total_capacity"`
	TotalOccupancy   int     `json:"total_occupancy"`
	OccupancyRatePct float64 `json:"occupancy_rate_pct"`
	OverCapacity     bool    `json:"over_capacity"`
}

// Summarize computes the headline metrics over a selection. The occupancy
// rate is 0 when the selection has no capacity.
func Summarize(facilities []Facility) Summary {
	s := Summary{Facilities: len(facilities)}
	for _, f := range facilities {
		s.TotalCapacity += f.Capacity
		s.TotalOccupancy += f.CurrentOccupancy
	}
	if s.TotalCapacity > 0 {
		s.OccupancyRatePct = float64(s.TotalOccupancy) / float64(s.TotalCapacity) * percentFactor
	}
	s.OverCapacity = s.OccupancyRatePct > overloadCutoff
	return s
}

// MapView is the center point and zoom level for rendering a selection.
type MapView struct {
	Center Geo `json:"center"`
	Zoom   int `json:"zoom"`
}

// MapViewFor frames a selection: mean coordinate of the facilities, zoomed in
// when a single province is selected. An empty selection falls back to the
// country-level default frame.
func MapViewFor(facilities []Facility, provinceSelected bool) MapView {
	if len(facilities) == 0 {
		return MapView{Center: Geo{Lat: defaultMapLat, Lon: defaultMapLon}, Zoom: zoomCountry}
	}
	var sumLat, sumLon float64
	for _, f := range facilities {
		sumLat += f.Geo.Lat
		sumLon += f.Geo.Lon
	}
	n := float64(len(facilities))
	view := MapView{Center: Geo{Lat: sumLat / n, Lon: sumLon / n}, Zoom: zoomCountry}
	if provinceSelected {
		view.Zoom = zoomProvince
	}
	return view
}

// TypeRollup sums capacity against simulated load for one facility type.
type TypeRollup struct {
	Type      string `json:"type"`
	Capacity  int    `json:"capacity"`
	Occupancy int    `json:"occupancy"`
}

// RollupByType aggregates capacity vs occupancy per facility type, sorted by
// type name.
func RollupByType(facilities []Facility) []TypeRollup {
	byType := make(map[string]*TypeRollup)
	for _, f := range facilities {
		r, ok := byType[f.Type]
		if !ok {
			r = &TypeRollup{Type: f.Type}
			byType[f.Type] = r
		}
		r.Capacity += f.Capacity
		r.Occupancy += f.CurrentOccupancy
	}
	out := make([]TypeRollup, 0, len(byType))
	for _, r := range byType {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Type < out[j].Type })
	return out
}

// StatusCount is the number of facilities in one risk tier, labeled under a
// particular scheme.
type StatusCount struct {
	Status string `json:"status"`
	Color  string `json:"color"`
	Count  int    `json:"count"`
}

// CountByStatus tallies facilities per tier and labels the tiers under the
// given scheme, ordered from nominal to exceeded.
func CountByStatus(facilities []Facility, scheme Scheme) []StatusCount {
	var counts [3]int
	for _, f := range facilities {
		counts[f.Tier]++
	}
	out := make([]StatusCount, 0, len(counts))
	for tier := TierNominal; tier <= TierExceeded; tier++ {
		label := LabelFor(scheme, tier)
		out = append(out, StatusCount{Status: label.Label, Color: label.Color, Count: counts[tier]})
	}
	return out
}
