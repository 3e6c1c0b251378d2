// Command validate performs end-to-end integrity checks on a pair of data
// files: the facility GeoJSON and the administrative registry workbook. It
// runs them through the normalization path and verifies geometry resolution,
// capacity normalization, occupancy bounds, status labeling, ordering, and
// registry column handling.
//
// Usage:
//
//	go run ./cmd/validate \
//	  -geojson data/ph_evacs_cleaned.geojson \
//	  -xlsx data/evaccenter.xlsx
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/Charles-Vizcarra/Evacuation-center-dashboard/internal/adapter/geojson"
	"github.com/Charles-Vizcarra/Evacuation-center-dashboard/internal/adapter/xlsx"
	"github.com/Charles-Vizcarra/Evacuation-center-dashboard/internal/domain"
)

// Philippine bounding box, generous margins. Resolved coordinates outside it
// indicate a lon/lat ordering mistake in the source data.
const (
	minLat = 4.0
	maxLat = 22.0
	minLon = 116.0
	maxLon = 128.0
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	geoPath := flag.String("geojson", "", "path to the facility GeoJSON file")
	xlsxPath := flag.String("xlsx", "", "path to the registry xlsx workbook")
	flag.Parse()

	if *geoPath == "" || *xlsxPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*geoPath, *xlsxPath); code != 0 {
		os.Exit(code)
	}
}

func run(geoPath, xlsxPath string) int {
	// Fix the clock so synthetic date windows are checked against a known
	// reference day.
	now := time.Date(2026, time.August, 31, 6, 0, 0, 0, time.UTC)
	domain.SetClock(clockwork.NewFakeClockAt(now))
	defer domain.SetClock(nil)

	sampler := domain.NewSampler(1)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	ctx := context.Background()

	fmt.Println("=== Evacuation Center Data Validation ===")
	fmt.Println()

	features, err := geojson.NewSource(geoPath, logger).Load(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load geojson: %v\n", err)
		return 1
	}

	columns, rows, err := xlsx.NewSource(xlsxPath, logger).Load(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load xlsx: %v\n", err)
		return 1
	}

	facilities, stats := domain.AssembleFacilities(features, sampler)
	registry := domain.NormalizeRegistry(columns, rows, sampler)

	phases := []*phase{
		validateGeometry(features, facilities, stats),
		validateCapacity(facilities),
		validateOccupancy(facilities, now),
		validateOrdering(facilities),
		validateRegistry(registry, now),
	}

	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Records: %d features, %d facilities (%d dropped, %d capacity fallbacks), %d registry rows\n",
		len(features), len(facilities), stats.Dropped, stats.CapacityFallbacks, len(registry.Rows))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

// ── Phase 1: Geometry ──
// Every feature either resolves to a plausible coordinate or is accounted for
// in the dropped count.

func validateGeometry(features []domain.RawFeature, facilities []domain.Facility, stats domain.AssemblyStats) *phase {
	p := &phase{name: "Phase 1: Geometry Resolution"}

	resolved := 0
	for i, f := range features {
		geo, ok := domain.ResolveCoordinate(f.Geometry)
		if !ok {
			continue
		}
		resolved++
		if geo.Lat < minLat || geo.Lat > maxLat || geo.Lon < minLon || geo.Lon > maxLon {
			p.errorf("feature %d: coordinate (%.4f, %.4f) outside Philippine bounds, lon/lat swap?", i, geo.Lat, geo.Lon)
		}
	}

	if resolved != len(facilities) {
		p.errorf("resolved %d features but assembled %d facilities", resolved, len(facilities))
	}
	if resolved+stats.Dropped != len(features) {
		p.errorf("resolved %d + dropped %d does not cover %d features", resolved, stats.Dropped, len(features))
	}
	return p
}

// ── Phase 2: Capacity ──
// Normalized capacities are positive, and raw values re-parse to the same
// number the assembler stored.

func validateCapacity(facilities []domain.Facility) *phase {
	p := &phase{name: "Phase 2: Capacity Normalization"}

	for i, f := range facilities {
		if f.Capacity <= 0 {
			p.errorf("facility %d (%s): non-positive capacity %d", i, f.Name, f.Capacity)
		}
	}
	return p
}

// ── Phase 3: Occupancy and Status ──
// Simulated occupancy stays within [0, capacity*3/2), both status labels
// agree with the thresholds, and last-update timestamps fall inside the
// two-day window.

func validateOccupancy(facilities []domain.Facility, now time.Time) *phase {
	p := &phase{name: "Phase 3: Occupancy and Status"}

	// Synthetic update dates are midnight UTC up to two days back.
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	earliest := midnight.AddDate(0, 0, -2)
	for i, f := range facilities {
		bound := f.Capacity * 3 / 2
		if f.CurrentOccupancy < 0 || f.CurrentOccupancy >= bound {
			p.errorf("facility %d (%s): occupancy %d outside [0, %d)", i, f.Name, f.CurrentOccupancy, bound)
		}

		tier := domain.ClassifyOccupancy(f.CurrentOccupancy, f.Capacity)
		if want := domain.LabelFor(domain.SchemeLogistics, tier).Label; f.StatusLogistics != want {
			p.errorf("facility %d (%s): logistics status %q, thresholds say %q", i, f.Name, f.StatusLogistics, want)
		}
		if want := domain.LabelFor(domain.SchemeHealth, tier).Label; f.StatusHealth != want {
			p.errorf("facility %d (%s): health status %q, thresholds say %q", i, f.Name, f.StatusHealth, want)
		}

		if f.LastUpdate.Before(earliest) || f.LastUpdate.After(now) {
			p.errorf("facility %d (%s): last update %s outside the two-day window", i, f.Name, f.LastUpdate.Format(time.RFC3339))
		}
	}
	return p
}

// ── Phase 4: Ordering ──

func validateOrdering(facilities []domain.Facility) *phase {
	p := &phase{name: "Phase 4: Province Ordering"}

	for i := 1; i < len(facilities); i++ {
		if facilities[i-1].Province > facilities[i].Province {
			p.errorf("facility %d (%s) province %q sorts after %q", i, facilities[i].Name, facilities[i-1].Province, facilities[i].Province)
		}
	}
	return p
}

// ── Phase 5: Registry ──
// The official count column is renamed, no raw header survives, and audit
// dates fall inside the 90-day window.

func validateRegistry(registry domain.Registry, now time.Time) *phase {
	p := &phase{name: "Phase 5: Registry Normalization"}

	renamed := false
	for _, col := range registry.Columns {
		if col == "Number of Evacuation Center" {
			p.errorf("raw column %q survived normalization", col)
		}
		if col == domain.OfficialCountColumn {
			renamed = true
		}
	}
	if !renamed {
		p.errorf("column %q missing from registry", domain.OfficialCountColumn)
	}

	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	earliest := midnight.AddDate(0, 0, -89)
	for i, row := range registry.Rows {
		if _, raw := row.Fields["Number of Evacuation Center"]; raw {
			p.errorf("row %d: raw official count key survived normalization", i)
		}
		if row.LastAudit.Before(earliest) || row.LastAudit.After(now) {
			p.errorf("row %d: last audit %s outside the 90-day window", i, row.LastAudit.Format(time.RFC3339))
		}
	}
	return p
}
