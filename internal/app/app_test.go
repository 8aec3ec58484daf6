// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package app

import (
	"context"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/MKhiriev/capability-assessment/internal/config"
	"github.com/MKhiriev/capability-assessment/internal/logger"
	"github.com/MKhiriev/capability-assessment/models"
)

func testConfig(t *testing.T) *config.StructuredConfig {
	t.Helper()
	return &config.StructuredConfig{
		App: config.App{
			SessionSignKey:  "e2e-sign-key",
			SessionIssuer:   "capassess",
			SessionDuration: time.Hour,
			AdminUsername:   "root",
			AdminPassword:   "rootpass",
			BcryptCost:      bcrypt.MinCost,
		},
		Storage: config.Storage{DB: config.DB{DSN: filepath.Join(t.TempDir(), "capassess.db")}},
		Server:  config.Server{HTTPAddress: "127.0.0.1:0"},
	}
}

func newTestApp(t *testing.T, cfg *config.StructuredConfig) *httptest.Server {
	t.Helper()

	a, err := NewApp(context.Background(), cfg, models.NewAppBuildInfo("e2e", "", ""), logger.Nop())
	require.NoError(t, err)

	ts := httptest.NewServer(a.Router())
	t.Cleanup(func() {
		ts.Close()
		assert.NoError(t, a.Close())
	})
	return ts
}

// newBrowser returns a client that keeps cookies and follows redirects.
func newBrowser(t *testing.T, baseURL string) *resty.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return resty.New().SetBaseURL(baseURL).SetCookieJar(jar).SetTimeout(10 * time.Second)
}

func scoresForm(score int) map[string]string {
	form := make(map[string]string, len(models.Capabilities)+1)
	for _, c := range models.Capabilities {
		form[c.Key] = strconv.Itoa(score)
	}
	return form
}

func finalPath(resp *resty.Response) string {
	return resp.RawResponse.Request.URL.Path
}

func login(t *testing.T, c *resty.Client, username, password string) *resty.Response {
	t.Helper()
	resp, err := c.R().SetFormData(map[string]string{"username": username, "password": password}).Post("/login")
	require.NoError(t, err)
	return resp
}

func TestEndToEnd(t *testing.T) {
	ts := newTestApp(t, testConfig(t))
	alice := newBrowser(t, ts.URL)

	// register, then log in
	resp, err := alice.R().SetFormData(map[string]string{"username": "alice", "password": "secret"}).Post("/register")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Equal(t, "/login", finalPath(resp))
	assert.Contains(t, resp.String(), "Account created.")

	resp, err = alice.R().SetFormData(map[string]string{"username": "alice", "password": "other"}).Post("/register")
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, resp.StatusCode())

	resp = login(t, alice, "alice", "wrong")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode())
	resp = login(t, alice, "nobody", "secret")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode())

	resp = login(t, alice, "alice", "secret")
	require.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Equal(t, "/assess", finalPath(resp))
	assert.Contains(t, resp.String(), "Welcome back, alice.")

	// submit twice, one rejected
	form := scoresForm(5)
	form["notes"] = "first week"
	resp, err = alice.R().SetFormData(form).Post("/assess")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Contains(t, resp.String(), "Assessment saved.")

	bad := scoresForm(5)
	bad["teamwork"] = "11"
	resp, err = alice.R().SetFormData(bad).Post("/assess")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode())
	assert.Contains(t, resp.String(), "Teamwork must be between 1 and 10")

	resp, err = alice.R().Get("/history")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Contains(t, resp.String(), "first week")

	// regular users cannot see the dashboard
	resp, err = alice.R().Get("/admin")
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode())

	// the bootstrapped administrator can
	root := newBrowser(t, ts.URL)
	login(t, root, "root", "rootpass")
	resp, err = root.R().SetFormData(scoresForm(7)).Post("/assess")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode())

	resp, err = root.R().Get("/admin")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode())
	body := resp.String()
	assert.Contains(t, body, "data:image/png;base64,")
	assert.Contains(t, body, "6.00")
	assert.Contains(t, body, "Computed over 2 assessment(s).")

	resp, err = root.R().Get("/admin/chart.png")
	require.NoError(t, err)
	assert.Equal(t, "image/png", resp.Header().Get("Content-Type"))
	assert.Equal(t, []byte("\x89PNG"), resp.Body()[:4])

	// logging out ends the session
	resp, err = alice.R().Post("/logout")
	require.NoError(t, err)
	assert.Equal(t, "/login", finalPath(resp))
	assert.Contains(t, resp.String(), "You have been logged out.")

	resp, err = alice.R().Get("/assess")
	require.NoError(t, err)
	assert.Equal(t, "/login", finalPath(resp))

	resp, err = alice.R().Get("/healthz")
	require.NoError(t, err)
	assert.Equal(t, "ok\n", string(resp.Body()))

	resp, err = alice.R().Get("/version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(resp.String(), "version "), resp.String())
}

func TestAdminBootstrapIsIdempotent(t *testing.T) {
	cfg := testConfig(t)

	first, err := NewApp(context.Background(), cfg, models.AppBuildInfo{}, logger.Nop())
	require.NoError(t, err)
	require.NoError(t, first.SetAdmin(context.Background(), "root", false))
	require.NoError(t, first.Close())

	// the existing account keeps its revoked flag and password
	cfg.App.AdminPassword = "changed"
	ts := newTestApp(t, cfg)
	root := newBrowser(t, ts.URL)

	resp := login(t, root, "root", "changed")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode())

	resp = login(t, root, "root", "rootpass")
	require.Equal(t, "/assess", finalPath(resp))

	resp, err = root.R().Get("/admin")
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode())
}

func TestMigrate(t *testing.T) {
	cfg := testConfig(t)

	version, err := Migrate(context.Background(), cfg, logger.Nop())
	require.NoError(t, err)
	assert.Positive(t, version)

	again, err := Migrate(context.Background(), cfg, logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, version, again)
}

func TestNewApp_NilConfig(t *testing.T) {
	_, err := NewApp(context.Background(), nil, models.AppBuildInfo{}, logger.Nop())
	assert.ErrorIs(t, err, ErrNilConfig)

	_, err = Migrate(context.Background(), nil, logger.Nop())
	assert.ErrorIs(t, err, ErrNilConfig)
}
