// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

const (
	// UserHistoryLimit caps how many assessments a user sees in their history.
	UserHistoryLimit = 10
	// AdminListingLimit caps how many assessments the admin table shows.
	AdminListingLimit = 100
)

// Scores maps a capability key to its rating. A key absent from the map
// means the score was not provided.
type Scores map[string]int

// Ordered returns the scores following the order of [Capabilities].
// Missing scores are reported as 0.
func (s Scores) Ordered() []int {
	values := make([]int, len(Capabilities))
	for i, c := range Capabilities {
		values[i] = s[c.Key]
	}
	return values
}

// Assessment is one immutable self-evaluation submitted by a user.
type Assessment struct {
	// ID is the database-generated identifier.
	ID int64 `json:"id"`

	// UserID references the owner of the assessment.
	UserID int64 `json:"user_id"`

	// Scores holds one rating in [MinScore, MaxScore] per capability.
	Scores Scores `json:"scores"`

	// Notes is optional free text; empty when nothing was entered.
	Notes string `json:"notes,omitempty"`

	// CreatedAt is the submission time in UTC.
	CreatedAt time.Time `json:"created_at"`
}

// AssessmentWithUser is an assessment joined with the owner's username,
// used by the admin listing.
type AssessmentWithUser struct {
	Assessment
	Username string `json:"username"`
}

// AssessmentSubmission carries a not yet validated assessment coming from
// the assessment form.
type AssessmentSubmission struct {
	UserID int64
	Scores Scores
	Notes  string
}
