package domain

// SimulateOccupancy produces a synthetic current-occupancy count for a
// facility, standing in for a live sensor feed. The result is uniform in
// [0, floor(capacity*1.5)); the upper bound deliberately exceeds capacity by
// up to 50% so overcrowding states actually occur.
func SimulateOccupancy(capacity int, sampler Sampler) int {
	bound := capacity * 3 / 2
	if bound <= 0 {
		return 0
	}
	return sampler.IntN(bound)
}
