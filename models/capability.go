// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

const (
	// MinScore is the lowest score a capability can be rated with.
	MinScore = 1
	// MaxScore is the highest score a capability can be rated with.
	MaxScore = 10
)

// Capability is one of the fixed dimensions rated in every assessment.
// Key doubles as the column name in the assessments table.
type Capability struct {
	Key   string
	Label string
}

// Capabilities is the ordered list of rated dimensions. The order defines
// table columns, form fields and radar chart axes.
var Capabilities = []Capability{
	{Key: "technical_skill", Label: "Technical skill"},
	{Key: "problem_solving", Label: "Problem solving"},
	{Key: "communication", Label: "Communication"},
	{Key: "teamwork", Label: "Teamwork"},
	{Key: "adaptability", Label: "Adaptability"},
	{Key: "initiative", Label: "Initiative"},
	{Key: "reliability", Label: "Reliability"},
	{Key: "time_management", Label: "Time management"},
	{Key: "leadership", Label: "Leadership"},
	{Key: "learning_agility", Label: "Learning agility"},
	{Key: "safety_awareness", Label: "Safety awareness"},
	{Key: "attention_to_detail", Label: "Attention to detail"},
}

// CapabilityKeys returns the capability keys in their canonical order.
func CapabilityKeys() []string {
	keys := make([]string, len(Capabilities))
	for i, c := range Capabilities {
		keys[i] = c.Key
	}
	return keys
}
