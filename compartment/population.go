// SPDX-License-Identifier: MIT
// Package: epiagents/compartment

package compartment

// TotalPopulation sums every compartment in s, skipping keys listed in
// ignore. An empty snapshot yields 0; callers dividing by the result must
// guard against zero (see RequirePopulation).
//
// Complexity: O(len(s) * len(ignore)).
func TotalPopulation(s Snapshot, ignore ...string) float64 {
	var total float64
	for _, k := range s.Keys() { // fixed order keeps float sums reproducible
		if contains(ignore, k) {
			continue
		}
		total += s[k]
	}
	return total
}

// RequirePopulation returns TotalPopulation(s) or ErrZeroPopulation when it
// is not strictly positive.
func RequirePopulation(s Snapshot) (float64, error) {
	n := TotalPopulation(s)
	if !(n > 0) {
		return 0, compartmentErrorf("RequirePopulation", ErrZeroPopulation, "N=%v", n)
	}
	return n, nil
}

func contains(xs []string, x string) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}
