// Package domain normalizes Philippine evacuation center data for the
// dashboard.
//
// # Data Sources
//
// Facilities come from the community-maintained GeoJSON extract of Philippine
// evacuation centers (OpenStreetMap via Kaggle). The administrative registry
// comes from the DILG pre-disaster indicators workbook published on the
// Humanitarian Data Exchange. Both files are read by source adapters; this
// package only sees already-parsed features and rows.
//
// # Geometry Conventions
//
// Facilities are drawn as map markers, so every geometry is reduced to one
// coordinate pair:
//
//	Point        → the point itself
//	Polygon      → mean of the outer ring's vertices
//	MultiPolygon → mean of the first polygon's outer ring
//
// Other geometry kinds and empty coordinate arrays resolve to nothing; those
// features are dropped during assembly (only the aggregate count is reported).
//
// # Capacity Encoding
//
// The upstream capacity tag is free text. Observed shapes and their
// normalization:
//
//	"250"     → 250        (pure digits)
//	"50-150"  → 100        (range, integer-truncated midpoint)
//	">500"    → 600        (open-ended marker, fixed value)
//	missing or anything else → 100
//
// Parse failures are silent. A bad capacity tag must never take down the
// dashboard, so the parser always returns a usable integer.
//
// # Simulated Fields
//
// There is no live sensor feed. Occupancy is drawn uniformly from
// [0, floor(capacity*1.5)) per run — the overshoot keeps overcrowding states
// reachable. last_update is 0–2 days before now, last_audit 0–89 days before
// now. All randomness flows through the injectable [Sampler]; time flows
// through the clockwork clock set via [SetClock].
//
// # Risk Tiers
//
// One ratio, one threshold set (0.8, 1.0), two vocabularies:
//
//	ratio > 1.0        → Overcrowded / Critical ("high infection risk")
//	0.8 ≤ ratio ≤ 1.0  → NearFull / Warning ("elevated density")
//	ratio < 0.8        → Available / Safe ("distancing possible")
//
// The logistics and health schemes are label tables over the same ordinal
// [Tier], so they can never disagree. See [ClassifyOccupancy] and [LabelFor].
package domain
