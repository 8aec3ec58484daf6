// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Averages holds the global mean score per capability over every stored
// assessment. With zero assessments every mean is 0.
type Averages struct {
	// Values maps a capability key to its mean score.
	Values map[string]float64

	// Count is the number of assessments the means were computed over.
	Count int64
}

// Ordered returns the means following the order of [Capabilities].
func (a Averages) Ordered() []float64 {
	values := make([]float64, len(Capabilities))
	for i, c := range Capabilities {
		values[i] = a.Values[c.Key]
	}
	return values
}

// AdminReport bundles everything the admin dashboard shows.
type AdminReport struct {
	// Recent holds the newest assessments across all users.
	Recent []AssessmentWithUser

	// Averages holds the global per-capability means.
	Averages Averages

	// RadarPNG is the radar chart of Averages encoded as PNG.
	RadarPNG []byte
}
