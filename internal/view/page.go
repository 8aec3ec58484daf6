// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package view

import (
	"errors"
	"html/template"
	"net/http"

	"github.com/MKhiriev/capability-assessment/internal/chart"
	"github.com/MKhiriev/capability-assessment/internal/validators"
	"github.com/MKhiriev/capability-assessment/models"
)

var ErrUnknownPage = errors.New("unknown page")

// Flash categories, used as CSS classes.
const (
	FlashSuccess = "success"
	FlashError   = "error"
	FlashInfo    = "info"
)

// Flash is a one-shot message shown on the next rendered page.
type Flash struct {
	Category string
	Message  string
}

// Page is the data every template receives.
type Page struct {
	Title string

	// User is nil for anonymous visitors.
	User *models.User

	Flashes      []Flash
	Capabilities []models.Capability
	BuildInfo    models.AppBuildInfo

	// Data is the page specific payload: one of the *Data types below.
	Data any
}

// FormData backs the login and register forms.
type FormData struct {
	Username  string
	FormError string
	Errors    map[string]string
}

// AssessData backs the assessment form together with the user's history.
// Values and Notes echo a rejected submission.
type AssessData struct {
	Values   map[string]int
	Notes    string
	Errors   map[string]string
	MaxNotes int
	History  []models.Assessment
}

func NewAssessData(history []models.Assessment) AssessData {
	return AssessData{MaxNotes: validators.MaxNotesLength, History: history}
}

type HistoryData struct {
	History []models.Assessment
}

// AverageRow is one line of the averages table.
type AverageRow struct {
	Label string
	Value float64
}

type AdminData struct {
	Recent      []models.AssessmentWithUser
	Averages    models.Averages
	AverageRows []AverageRow

	// ChartURI is the radar PNG as a data URI. Typed so html/template keeps
	// the data: scheme in the src attribute.
	ChartURI template.URL
}

func NewAdminData(report models.AdminReport) AdminData {
	ordered := report.Averages.Ordered()
	rows := make([]AverageRow, len(models.Capabilities))
	for i, c := range models.Capabilities {
		rows[i] = AverageRow{Label: c.Label, Value: ordered[i]}
	}

	return AdminData{
		Recent:      report.Recent,
		Averages:    report.Averages,
		AverageRows: rows,
		ChartURI:    template.URL(chart.DataURI(report.RadarPNG)),
	}
}

type ErrorData struct {
	Status  int
	Message string
}

func (e ErrorData) StatusText() string {
	return http.StatusText(e.Status)
}
