package domain

import (
	"time"

	"github.com/paulmach/orb"
)

// Default values substituted for missing or unusable facility properties.
const (
	DefaultName     = "Unnamed Facility"
	DefaultType     = "Unknown"
	DefaultProvince = "Unspecified"
	DefaultCapacity = 100
)

// RawFeature is one entry of the geographic feature collection as handed over
// by the source adapter: a geometry plus free-form string properties.
// All properties are optional.
type RawFeature struct {
	Geometry   orb.Geometry
	Properties map[string]string
}

// Geo represents a WGS-84 latitude/longitude coordinate pair.
type Geo struct {
	Lat float64 `json:"latitude"`
	Lon float64 `json:"longitude"`
}

// Facility is the normalized record produced per raw feature. Each value is
// built once per pipeline run; no identity persists across runs.
type Facility struct {
	Name             string    `json:"name"`
	Type             string    `json:"facility_type"`
	Province         string    `json:"province"`
	Capacity         int       `json:"capacity"`
	CurrentOccupancy int       `json:"current_occupancy"`
	StatusLogistics  string    `json:"status_logistics"`
	StatusHealth     string    `json:"status_health"`
	LastUpdate       time.Time `json:"last_update"`
	Geo              Geo       `json:"geo"`
	Source           string    `json:"source"`

	// Tier is the ordinal risk bucket both status labels derive from.
	Tier Tier `json:"-"`
}
