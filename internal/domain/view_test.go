package domain

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func testFacilities() []Facility {
	return []Facility{
		{Name: "a", Province: "Albay", Type: "School", Capacity: 100, CurrentOccupancy: 50, Tier: TierNominal, Geo: Geo{Lat: 13.1, Lon: 123.7}},
		{Name: "b", Province: "Albay", Type: "Gym", Capacity: 200, CurrentOccupancy: 190, Tier: TierElevated, Geo: Geo{Lat: 13.2, Lon: 123.8}},
		{Name: "c", Province: "Cebu", Type: "School", Capacity: 100, CurrentOccupancy: 150, Tier: TierExceeded, Geo: Geo{Lat: 10.3, Lon: 123.9}},
	}
}

func TestFilter_Apply(t *testing.T) {
	facilities := testFacilities()

	tests := []struct {
		name     string
		filter   Filter
		expected []string
	}{
		{"no filter keeps everything", Filter{}, []string{"a", "b", "c"}},
		{"province filter", Filter{Province: "Albay"}, []string{"a", "b"}},
		{"type filter", Filter{Types: []string{"School"}}, []string{"a", "c"}},
		{"province and type", Filter{Province: "Albay", Types: []string{"Gym"}}, []string{"b"}},
		{"no matches", Filter{Province: "Palawan"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.filter.Apply(facilities)
			names := make([]string, 0, len(got))
			for _, f := range got {
				names = append(names, f.Name)
			}
			assert.Equal(t, tt.expected, names)
		})
	}
}

func TestProvincesAndTypes(t *testing.T) {
	facilities := testFacilities()

	assert.Equal(t, []string{"Albay", "Cebu"}, Provinces(facilities))
	assert.Equal(t, []string{"Gym", "School"}, FacilityTypes(facilities))

	// Cascading: type options follow the province selection.
	albay := Filter{Province: "Albay"}.Apply(facilities)
	assert.Equal(t, []string{"Gym", "School"}, FacilityTypes(albay))
	cebu := Filter{Province: "Cebu"}.Apply(facilities)
	assert.Equal(t, []string{"School"}, FacilityTypes(cebu))
}

func TestSummarize(t *testing.T) {
	t.Run("totals and rate", func(t *testing.T) {
		summary := Summarize(testFacilities())
		expected := Summary{
			Facilities:       3,
			TotalCapacity:    400,
			TotalOccupancy:   390,
			OccupancyRatePct: 97.5,
			OverCapacity:     false,
		}
		if diff := cmp.Diff(expected, summary); diff != "" {
			t.Fatalf("summary mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("over capacity flag", func(t *testing.T) {
		summary := Summarize([]Facility{{Capacity: 100, CurrentOccupancy: 130}})
		assert.True(t, summary.OverCapacity)
		assert.Equal(t, 130.0, summary.OccupancyRatePct)
	})

	t.Run("empty selection", func(t *testing.T) {
		summary := Summarize(nil)
		assert.Equal(t, 0.0, summary.OccupancyRatePct)
		assert.False(t, summary.OverCapacity)
	})
}

func TestMapViewFor(t *testing.T) {
	t.Run("mean coordinate of the selection", func(t *testing.T) {
		view := MapViewFor(testFacilities()[:2], false)
		assert.InDelta(t, 13.15, view.Center.Lat, 1e-9)
		assert.InDelta(t, 123.75, view.Center.Lon, 1e-9)
		assert.Equal(t, 5, view.Zoom)
	})

	t.Run("province selection zooms in", func(t *testing.T) {
		view := MapViewFor(testFacilities()[:1], true)
		assert.Equal(t, 9, view.Zoom)
	})

	t.Run("empty selection falls back to country frame", func(t *testing.T) {
		view := MapViewFor(nil, true)
		assert.Equal(t, Geo{Lat: 12.8, Lon: 121.7}, view.Center)
		assert.Equal(t, 5, view.Zoom)
	})
}

func TestRollupByType(t *testing.T) {
	rollup := RollupByType(testFacilities())
	expected := []TypeRollup{
		{Type: "Gym", Capacity: 200, Occupancy: 190},
		{Type: "School", Capacity: 200, Occupancy: 200},
	}
	if diff := cmp.Diff(expected, rollup); diff != "" {
		t.Fatalf("rollup mismatch (-want +got):\n%s", diff)
	}
}

func TestCountByStatus(t *testing.T) {
	counts := CountByStatus(testFacilities(), SchemeHealth)
	expected := []StatusCount{
		{Status: "Safe", Color: "#008000", Count: 1},
		{Status: "Warning", Color: "#FFA500", Count: 1},
		{Status: "Critical", Color: "#FF0000", Count: 1},
	}
	if diff := cmp.Diff(expected, counts); diff != "" {
		t.Fatalf("status counts mismatch (-want +got):\n%s", diff)
	}
}
