package domain

import (
	"sort"
	"time"
)

// SourceGeoJSON tags facilities originating from the geographic feed.
const SourceGeoJSON = "geojson"

// AssemblyStats aggregates the anomalies absorbed while building a
// collection. Individual anomalies are never surfaced; only these counts are.
type AssemblyStats struct {
	// Dropped counts features whose geometry produced no coordinate.
	Dropped int
	// CapacityFallbacks counts facilities that received DefaultCapacity
	// because their capacity field was missing or unparseable.
	CapacityFallbacks int
}

// AssembleFacilities builds one normalized facility per raw feature, drops
// features without a resolvable coordinate, and returns the collection sorted
// by province ascending. The sort is stable, so features within a province
// keep their input order.
func AssembleFacilities(features []RawFeature, sampler Sampler) ([]Facility, AssemblyStats) {
	var stats AssemblyStats
	out := make([]Facility, 0, len(features))

	for _, feature := range features {
		facility, ok := assembleOne(feature, sampler, &stats)
		if !ok {
			stats.Dropped++
			continue
		}
		out = append(out, facility)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Province < out[j].Province
	})
	return out, stats
}

func assembleOne(feature RawFeature, sampler Sampler, stats *AssemblyStats) (Facility, bool) {
	geo, ok := ResolveCoordinate(feature.Geometry)
	if !ok {
		return Facility{}, false
	}

	capacity := parseCapacity(feature.Properties["capacity"])
	if capacity.fallback {
		stats.CapacityFallbacks++
	}

	occupancy := SimulateOccupancy(capacity.value, sampler)
	tier := ClassifyOccupancy(occupancy, capacity.value)

	return Facility{
		Name:             propOrDefault(feature.Properties, "name", DefaultName),
		Type:             propOrDefault(feature.Properties, "type", DefaultType),
		Province:         propOrDefault(feature.Properties, "province", DefaultProvince),
		Capacity:         capacity.value,
		CurrentOccupancy: occupancy,
		StatusLogistics:  logisticsLabels[tier].Label,
		StatusHealth:     healthLabels[tier].Label,
		LastUpdate:       syntheticDate(sampler, 3),
		Geo:              geo,
		Source:           SourceGeoJSON,
		Tier:             tier,
	}, true
}

// syntheticDate returns midnight UTC of a day 0..maxDaysAgo-1 days before now.
func syntheticDate(sampler Sampler, maxDaysAgo int) time.Time {
	now := clock.Now().UTC()
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return day.AddDate(0, 0, -sampler.IntN(maxDaysAgo))
}

func propOrDefault(props map[string]string, key, fallback string) string {
	if v := props[key]; v != "" {
		return v
	}
	return fallback
}
