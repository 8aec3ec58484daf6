// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package view renders the HTML pages. Templates are embedded in the binary
// and parsed once at startup; every page is executed inside the shared
// layout.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/MKhiriev/capability-assessment/models"
)

//go:embed templates/*.html
var templateFS embed.FS

const layoutFile = "templates/layout.html"

// Page names accepted by [Renderer.Render].
const (
	PageLogin    = "login"
	PageRegister = "register"
	PageAssess   = "assess"
	PageHistory  = "history"
	PageAdmin    = "admin"
	PageError    = "error"
)

var pages = []string{PageLogin, PageRegister, PageAssess, PageHistory, PageAdmin, PageError}

// Renderer executes the parsed page templates. It is safe for concurrent
// use.
type Renderer struct {
	pages     map[string]*template.Template
	buildInfo models.AppBuildInfo
}

// NewRenderer parses every page together with the layout.
func NewRenderer(buildInfo models.AppBuildInfo) (*Renderer, error) {
	return newRenderer(templateFS, buildInfo)
}

func newRenderer(fsys fs.FS, buildInfo models.AppBuildInfo) (*Renderer, error) {
	r := &Renderer{
		pages:     make(map[string]*template.Template, len(pages)),
		buildInfo: buildInfo,
	}

	for _, page := range pages {
		tmpl, err := template.New(page).Funcs(funcs).ParseFS(fsys, layoutFile, "templates/"+page+".html")
		if err != nil {
			return nil, fmt.Errorf("error parsing %s template: %w", page, err)
		}
		r.pages[page] = tmpl
	}

	return r, nil
}

// Render executes page into a buffer and writes it with status only when
// execution succeeded, so a failing template never leaves a half-written
// response.
func (r *Renderer) Render(w http.ResponseWriter, status int, page string, p Page) error {
	tmpl, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownPage, page)
	}

	if p.Capabilities == nil {
		p.Capabilities = models.Capabilities
	}
	p.BuildInfo = r.buildInfo

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", p); err != nil {
		return fmt.Errorf("error executing %s template: %w", page, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

var funcs = template.FuncMap{
	"formatTime": func(t time.Time) string {
		return t.UTC().Format("2006-01-02 15:04")
	},
	"scoreRange": func() []int {
		scores := make([]int, 0, models.MaxScore-models.MinScore+1)
		for s := models.MinScore; s <= models.MaxScore; s++ {
			scores = append(scores, s)
		}
		return scores
	},
	"minScore":     func() int { return models.MinScore },
	"maxScore":     func() int { return models.MaxScore },
	"historyLimit": func() int { return models.UserHistoryLimit },
	"adminLimit":   func() int { return models.AdminListingLimit },
	"historyTable": func(capabilities []models.Capability, rows []models.Assessment) scoresTable {
		return scoresTable{
			Capabilities: capabilities,
			Rows:         rows,
			Colspan:      len(capabilities) + 2,
			Empty:        "No assessments yet.",
		}
	},
	"adminTable": func(capabilities []models.Capability, rows []models.AssessmentWithUser) scoresTable {
		return scoresTable{
			Capabilities: capabilities,
			Rows:         rows,
			WithUser:     true,
			Colspan:      len(capabilities) + 3,
			Empty:        "No data.",
		}
	},
}

type scoresTable struct {
	Capabilities []models.Capability
	Rows         any
	WithUser     bool
	Colspan      int
	Empty        string
}
