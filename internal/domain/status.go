package domain

// Tier is the ordinal risk bucket derived from the occupancy/capacity ratio.
// Both labeling schemes map from the same tier; only the vocabulary differs.
type Tier int

const (
	// TierNominal: occupancy below 80% of capacity.
	TierNominal Tier = iota
	// TierElevated: occupancy at 80–100% of capacity.
	TierElevated
	// TierExceeded: occupancy above capacity.
	TierExceeded
)

// Scheme selects which vocabulary the presentation layer wants.
type Scheme string

const (
	SchemeLogistics Scheme = "logistics"
	SchemeHealth    Scheme = "health"
)

// StatusLabel is one tier's presentation entry under a given scheme.
type StatusLabel struct {
	Label  string
	Detail string
	Color  string
}

var logisticsLabels = [3]StatusLabel{
	{Label: "Available", Color: "#008000"},
	{Label: "NearFull", Color: "#FFA500"},
	{Label: "Overcrowded", Color: "#FF0000"},
}

var healthLabels = [3]StatusLabel{
	{Label: "Safe", Detail: "distancing possible", Color: "#008000"},
	{Label: "Warning", Detail: "elevated density", Color: "#FFA500"},
	{Label: "Critical", Detail: "high infection risk", Color: "#FF0000"},
}

// ClassifyOccupancy maps an occupancy/capacity ratio to its tier:
// ratio > 1.0 exceeded, ratio >= 0.8 elevated, otherwise nominal.
// A non-positive capacity classifies as nominal since no ratio exists.
func ClassifyOccupancy(occupancy, capacity int) Tier {
	if capacity <= 0 {
		return TierNominal
	}
	ratio := float64(occupancy) / float64(capacity)
	switch {
	case ratio > 1.0:
		return TierExceeded
	case ratio >= 0.8:
		return TierElevated
	default:
		return TierNominal
	}
}

// LabelFor returns the presentation entry for a tier under the given scheme.
// Unknown schemes fall back to logistics. Out-of-range tiers are clamped.
func LabelFor(scheme Scheme, tier Tier) StatusLabel {
	if tier < TierNominal {
		tier = TierNominal
	}
	if tier > TierExceeded {
		tier = TierExceeded
	}
	if scheme == SchemeHealth {
		return healthLabels[tier]
	}
	return logisticsLabels[tier]
}
