// Command genmock generates mock data fixtures for local development: a
// facility GeoJSON file and an administrative registry workbook shaped like
// the real source exports, including the messy capacity encodings and the
// pre-rename official count header the normalizer has to handle.
//
// Usage:
//
//	go run ./cmd/genmock \
//	  -geojson-out data/ph_evacs_cleaned.geojson \
//	  -xlsx-out data/evaccenter.xlsx \
//	  -per-province 8
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/paulmach/orb"
	orbgeojson "github.com/paulmach/orb/geojson"
	"github.com/xuri/excelize/v2"

	"github.com/Charles-Vizcarra/Evacuation-center-dashboard/internal/domain"
)

// provinceDef anchors generated facilities around a real provincial capital.
type provinceDef struct {
	name         string
	region       string
	municipality string
	lat, lon     float64
}

var provinces = []provinceDef{
	{name: "Albay", region: "V", municipality: "Legazpi City", lat: 13.14, lon: 123.74},
	{name: "Cebu", region: "VII", municipality: "Cebu City", lat: 10.32, lon: 123.90},
	{name: "Leyte", region: "VIII", municipality: "Tacloban City", lat: 11.24, lon: 125.00},
	{name: "Pampanga", region: "III", municipality: "San Fernando", lat: 15.03, lon: 120.69},
	{name: "Rizal", region: "IV-A", municipality: "Antipolo City", lat: 14.59, lon: 121.18},
}

var facilityTypes = []string{"School", "Gymnasium", "Barangay Hall", "Covered Court", "Church"}

// capacityEncodings cycles through the raw forms seen in the source export.
var capacityEncodings = []string{"250", "50-150", "100 - 300", ">500", "80", "unknown", ""}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	geoOut := flag.String("geojson-out", "", "output path for the facility GeoJSON fixture")
	xlsxOut := flag.String("xlsx-out", "", "output path for the registry xlsx fixture")
	perProvince := flag.Int("per-province", 8, "facilities to generate per province")
	seed := flag.Uint64("seed", 1, "sampler seed, zero for entropy")
	flag.Parse()

	if *geoOut == "" || *xlsxOut == "" {
		flag.Usage()
		return fmt.Errorf("missing required flags: -geojson-out, -xlsx-out")
	}

	sampler := domain.NewSampler(*seed)

	fc := buildFeatureCollection(sampler, *perProvince)
	if err := writeGeoJSON(*geoOut, fc); err != nil {
		return fmt.Errorf("writing geojson fixture: %w", err)
	}
	log.Printf("wrote geojson fixture: %s (%d features)", *geoOut, len(fc.Features))

	if err := writeWorkbook(*xlsxOut, sampler); err != nil {
		return fmt.Errorf("writing xlsx fixture: %w", err)
	}
	log.Printf("wrote xlsx fixture: %s (%d rows)", *xlsxOut, len(provinces))

	return nil
}

func buildFeatureCollection(sampler domain.Sampler, perProvince int) *orbgeojson.FeatureCollection {
	fc := orbgeojson.NewFeatureCollection()

	n := 0
	for _, prov := range provinces {
		for i := 0; i < perProvince; i++ {
			lat := prov.lat + jitter(sampler)
			lon := prov.lon + jitter(sampler)

			feature := makeFeature(n, lat, lon)
			feature.Properties["name"] = fmt.Sprintf("%s Evacuation Center %d", prov.municipality, i+1)
			feature.Properties["type"] = facilityTypes[sampler.IntN(len(facilityTypes))]
			feature.Properties["province"] = prov.name
			feature.Properties["capacity"] = capacityEncodings[n%len(capacityEncodings)]
			fc.Append(feature)
			n++
		}
	}

	// A few degenerate features so the drop and default paths stay exercised.
	line := orbgeojson.NewFeature(orb.LineString{{121.0, 14.0}, {121.1, 14.1}})
	line.Properties["name"] = "Road Segment"
	fc.Append(line)

	anon := orbgeojson.NewFeature(orb.Point{120.98, 14.60})
	anon.Properties["capacity"] = "120"
	fc.Append(anon)

	return fc
}

// makeFeature rotates through the geometry kinds the resolver supports.
func makeFeature(n int, lat, lon float64) *orbgeojson.Feature {
	const d = 0.002
	switch n % 3 {
	case 1:
		ring := orb.Ring{
			{lon - d, lat - d}, {lon + d, lat - d}, {lon + d, lat + d}, {lon - d, lat + d}, {lon - d, lat - d},
		}
		return orbgeojson.NewFeature(orb.Polygon{ring})
	case 2:
		ring := orb.Ring{
			{lon - d, lat - d}, {lon + d, lat - d}, {lon + d, lat + d}, {lon - d, lat + d}, {lon - d, lat - d},
		}
		return orbgeojson.NewFeature(orb.MultiPolygon{{ring}})
	default:
		return orbgeojson.NewFeature(orb.Point{lon, lat})
	}
}

// jitter spreads facilities within roughly five kilometers of the anchor.
func jitter(sampler domain.Sampler) float64 {
	return float64(sampler.IntN(100)-50) / 1000.0
}

func writeGeoJSON(path string, fc *orbgeojson.FeatureCollection) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(fc, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}

func writeWorkbook(path string, sampler domain.Sampler) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close() //nolint:errcheck // best-effort cleanup

	sheet := f.GetSheetName(0)

	// The raw export header, before normalization renames the count column.
	header := []any{"Municipality_City", "Province", "Region", "Number of Evacuation Center"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	for i, prov := range provinces {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{prov.municipality, prov.name, prov.region, fmt.Sprintf("%d", 5+sampler.IntN(40))}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}

	return f.SaveAs(path)
}
