// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/capability-assessment/internal/config"
	"github.com/MKhiriev/capability-assessment/internal/logger"
	"github.com/MKhiriev/capability-assessment/internal/service"
	"github.com/MKhiriev/capability-assessment/internal/store"
	"github.com/MKhiriev/capability-assessment/internal/validators"
	"github.com/MKhiriev/capability-assessment/internal/view"
	"github.com/MKhiriev/capability-assessment/models"
)

// ---------------------------------------------------------------------------
// Fakes
// ---------------------------------------------------------------------------

type authServiceFake struct {
	registerFunc     func(ctx context.Context, username, password string) (models.User, error)
	authenticateFunc func(ctx context.Context, username, password string) (models.User, error)
	userByIDFunc     func(ctx context.Context, userID int64) (models.User, error)
}

func (f *authServiceFake) Register(ctx context.Context, username, password string) (models.User, error) {
	return f.registerFunc(ctx, username, password)
}

func (f *authServiceFake) Authenticate(ctx context.Context, username, password string) (models.User, error) {
	return f.authenticateFunc(ctx, username, password)
}

func (f *authServiceFake) UserByID(ctx context.Context, userID int64) (models.User, error) {
	return f.userByIDFunc(ctx, userID)
}

func (f *authServiceFake) EnsureAdmin(context.Context, string, string) (bool, error) {
	return false, nil
}

func (f *authServiceFake) SetAdmin(context.Context, string, bool) error {
	return nil
}

type assessmentServiceFake struct {
	submitFunc        func(ctx context.Context, s models.AssessmentSubmission) (models.Assessment, error)
	recentForUserFunc func(ctx context.Context, userID int64, limit int) ([]models.Assessment, error)
	recentAllFunc     func(ctx context.Context, limit int) ([]models.AssessmentWithUser, error)
}

func (f *assessmentServiceFake) Submit(ctx context.Context, s models.AssessmentSubmission) (models.Assessment, error) {
	return f.submitFunc(ctx, s)
}

func (f *assessmentServiceFake) RecentForUser(ctx context.Context, userID int64, limit int) ([]models.Assessment, error) {
	if f.recentForUserFunc == nil {
		return nil, nil
	}
	return f.recentForUserFunc(ctx, userID, limit)
}

func (f *assessmentServiceFake) RecentAll(ctx context.Context, limit int) ([]models.AssessmentWithUser, error) {
	return f.recentAllFunc(ctx, limit)
}

type reportServiceFake struct {
	radarChartFunc  func(ctx context.Context) ([]byte, error)
	adminReportFunc func(ctx context.Context) (models.AdminReport, error)
}

func (f *reportServiceFake) GlobalAverages(context.Context) (models.Averages, error) {
	return models.Averages{}, nil
}

func (f *reportServiceFake) RadarChart(ctx context.Context) ([]byte, error) {
	return f.radarChartFunc(ctx)
}

func (f *reportServiceFake) AdminReport(ctx context.Context) (models.AdminReport, error) {
	return f.adminReportFunc(ctx)
}

type pingerFake struct {
	err error
}

func (p pingerFake) Ping(context.Context) error {
	return p.err
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var (
	alice = models.User{UserID: 1, Username: "alice"}
	root  = models.User{UserID: 2, Username: "root", IsAdmin: true}

	errBoom = errors.New("boom")
)

type testEnv struct {
	router      *chi.Mux
	auth        *authServiceFake
	assessments *assessmentServiceFake
	reports     *reportServiceFake
	sessions    service.SessionService
	pinger      *pingerFake
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	users := map[int64]models.User{alice.UserID: alice, root.UserID: root}

	env := &testEnv{
		auth: &authServiceFake{
			userByIDFunc: func(_ context.Context, id int64) (models.User, error) {
				u, ok := users[id]
				if !ok {
					return models.User{}, service.ErrUserNotFound
				}
				return u, nil
			},
		},
		assessments: &assessmentServiceFake{},
		reports:     &reportServiceFake{},
		sessions: service.NewSessionService(config.App{
			SessionSignKey:  "handler-test-key",
			SessionIssuer:   "capassess-test",
			SessionDuration: time.Hour,
		}, logger.Nop()),
		pinger: &pingerFake{},
	}

	renderer, err := view.NewRenderer(models.NewAppBuildInfo("test", "", ""))
	require.NoError(t, err)

	services := &service.Services{
		AuthService:       env.auth,
		SessionService:    env.sessions,
		AssessmentService: env.assessments,
		ReportService:     env.reports,
		AppInfoService:    service.NewAppInfoService(models.NewAppBuildInfo("test", "", "")),
	}
	env.router = NewHandler(services, renderer, env.pinger, config.Server{}, logger.Nop()).Init()
	return env
}

func (e *testEnv) sessionCookie(t *testing.T, user models.User) *http.Cookie {
	t.Helper()
	session, err := e.sessions.Issue(context.Background(), user)
	require.NoError(t, err)
	return &http.Cookie{Name: sessionCookieName, Value: session.Token}
}

func (e *testEnv) do(req *http.Request, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

func (e *testEnv) get(path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	return e.do(httptest.NewRequest(http.MethodGet, path, nil), cookies...)
}

func (e *testEnv) post(path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return e.do(req, cookies...)
}

func responseCookie(rr *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rr.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func flashesOf(t *testing.T, rr *httptest.ResponseRecorder) []view.Flash {
	t.Helper()
	c := responseCookie(rr, flashCookieName)
	require.NotNil(t, c, "flash cookie not set")
	flashes, err := decodeFlashes(c.Value)
	require.NoError(t, err)
	return flashes
}

func assessForm(score int) url.Values {
	form := url.Values{}
	for _, c := range models.Capabilities {
		form.Set(c.Key, strconv.Itoa(score))
	}
	return form
}

// ---------------------------------------------------------------------------
// Index
// ---------------------------------------------------------------------------

func TestIndex(t *testing.T) {
	env := newTestEnv(t)

	rr := env.get("/")
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/login", rr.Header().Get("Location"))

	rr = env.get("/", env.sessionCookie(t, alice))
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/assess", rr.Header().Get("Location"))
}

// ---------------------------------------------------------------------------
// Register
// ---------------------------------------------------------------------------

func TestRegister(t *testing.T) {
	validationErr := func() error {
		verr := &validators.ValidationError{}
		verr.Add(validators.FieldPassword, "Password is required")
		return fmt.Errorf("%w: %w", service.ErrValidation, verr)
	}

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   []string
	}{
		{name: "success", wantStatus: http.StatusSeeOther},
		{name: "validation", err: validationErr(), wantStatus: http.StatusUnprocessableEntity, wantBody: []string{"Password is required", `value="bob"`}},
		{name: "duplicate", err: fmt.Errorf("%w: taken", service.ErrDuplicateUsername), wantStatus: http.StatusConflict, wantBody: []string{MsgUsernameTaken}},
		{name: "storage failure", err: errBoom, wantStatus: http.StatusInternalServerError, wantBody: []string{MsgInternalServerError}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)

			var gotUsername, gotPassword string
			env.auth.registerFunc = func(_ context.Context, username, password string) (models.User, error) {
				gotUsername, gotPassword = username, password
				if tt.err != nil {
					return models.User{}, tt.err
				}
				return models.User{UserID: 3, Username: username}, nil
			}

			rr := env.post("/register", url.Values{"username": {"  bob "}, "password": {"pw"}})

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, "bob", gotUsername)
			assert.Equal(t, "pw", gotPassword)
			for _, want := range tt.wantBody {
				assert.Contains(t, rr.Body.String(), want)
			}

			if tt.err == nil {
				assert.Equal(t, "/login", rr.Header().Get("Location"))
				assert.Equal(t, []view.Flash{{Category: view.FlashSuccess, Message: MsgAccountCreated}}, flashesOf(t, rr))
				assert.Nil(t, responseCookie(rr, sessionCookieName), "registration does not log in")
			}
		})
	}
}

func TestRegisterForm(t *testing.T) {
	rr := newTestEnv(t).get("/register")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `action="/register"`)
	assert.Equal(t, "text/html; charset=utf-8", rr.Header().Get("Content-Type"))
}

// ---------------------------------------------------------------------------
// Login / logout
// ---------------------------------------------------------------------------

func TestLogin_Success(t *testing.T) {
	env := newTestEnv(t)
	env.auth.authenticateFunc = func(_ context.Context, username, password string) (models.User, error) {
		return alice, nil
	}

	rr := env.post("/login", url.Values{"username": {"alice"}, "password": {"secret"}})

	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/assess", rr.Header().Get("Location"))

	cookie := responseCookie(rr, sessionCookieName)
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.Equal(t, "/", cookie.Path)
	assert.Positive(t, cookie.MaxAge)

	userID, err := env.sessions.Parse(context.Background(), cookie.Value)
	require.NoError(t, err)
	assert.Equal(t, alice.UserID, userID)

	assert.Equal(t, "Welcome back, alice.", flashesOf(t, rr)[0].Message)
}

func TestLogin_FailuresAreIndistinguishable(t *testing.T) {
	env := newTestEnv(t)
	env.auth.authenticateFunc = func(_ context.Context, username, password string) (models.User, error) {
		return models.User{}, service.ErrInvalidCredentials
	}

	unknown := env.post("/login", url.Values{"username": {"nobody"}, "password": {"x"}})
	wrong := env.post("/login", url.Values{"username": {"alice"}, "password": {"wrong"}})

	for _, rr := range []*httptest.ResponseRecorder{unknown, wrong} {
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Contains(t, rr.Body.String(), MsgInvalidLogin)
		assert.Nil(t, responseCookie(rr, sessionCookieName))
	}
	assert.Equal(t,
		strings.Replace(unknown.Body.String(), `value="nobody"`, "", 1),
		strings.Replace(wrong.Body.String(), `value="alice"`, "", 1),
	)
}

func TestLogin_StorageFailure(t *testing.T) {
	env := newTestEnv(t)
	env.auth.authenticateFunc = func(context.Context, string, string) (models.User, error) {
		return models.User{}, errBoom
	}

	rr := env.post("/login", url.Values{"username": {"alice"}, "password": {"x"}})
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.NotContains(t, rr.Body.String(), "boom")
}

func TestLoginForm_LoggedInRedirects(t *testing.T) {
	env := newTestEnv(t)

	assert.Equal(t, http.StatusOK, env.get("/login").Code)

	rr := env.get("/login", env.sessionCookie(t, alice))
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/assess", rr.Header().Get("Location"))
}

func TestLogout(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(httptest.NewRequest(http.MethodPost, "/logout", nil), env.sessionCookie(t, alice))

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/login", rr.Header().Get("Location"))

	cookie := responseCookie(rr, sessionCookieName)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Negative(t, cookie.MaxAge)

	assert.Equal(t, MsgLoggedOut, flashesOf(t, rr)[0].Message)
}

func TestLogout_GetKeepsSession(t *testing.T) {
	env := newTestEnv(t)

	rr := env.get("/logout", env.sessionCookie(t, alice))

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/", rr.Header().Get("Location"))
	assert.Nil(t, responseCookie(rr, sessionCookieName))
	assert.Nil(t, responseCookie(rr, flashCookieName))
}

// ---------------------------------------------------------------------------
// Session handling
// ---------------------------------------------------------------------------

func TestSession_InvalidCookieIsCleared(t *testing.T) {
	env := newTestEnv(t)

	rr := env.get("/assess", &http.Cookie{Name: sessionCookieName, Value: "forged"})

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/login", rr.Header().Get("Location"))
	cookie := responseCookie(rr, sessionCookieName)
	require.NotNil(t, cookie)
	assert.Negative(t, cookie.MaxAge)
}

func TestSession_DeletedUserIsAnonymous(t *testing.T) {
	env := newTestEnv(t)

	rr := env.get("/assess", env.sessionCookie(t, models.User{UserID: 99}))

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	require.NotNil(t, responseCookie(rr, sessionCookieName))
}

func TestSession_LookupFailure(t *testing.T) {
	env := newTestEnv(t)
	env.auth.userByIDFunc = func(context.Context, int64) (models.User, error) {
		return models.User{}, errBoom
	}

	rr := env.get("/assess", env.sessionCookie(t, alice))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

// ---------------------------------------------------------------------------
// Assessment
// ---------------------------------------------------------------------------

func TestAssess_RequiresLogin(t *testing.T) {
	env := newTestEnv(t)

	for _, rr := range []*httptest.ResponseRecorder{env.get("/assess"), env.post("/assess", assessForm(5)), env.get("/history")} {
		assert.Equal(t, http.StatusSeeOther, rr.Code)
		assert.Equal(t, "/login", rr.Header().Get("Location"))
	}
}

func TestAssessForm_ShowsHistory(t *testing.T) {
	env := newTestEnv(t)

	var gotLimit int
	env.assessments.recentForUserFunc = func(_ context.Context, userID int64, limit int) ([]models.Assessment, error) {
		assert.Equal(t, alice.UserID, userID)
		gotLimit = limit
		return []models.Assessment{{ID: 7, UserID: userID, Scores: models.Scores{"teamwork": 9}, Notes: "<b>sprint</b>", CreatedAt: time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC)}}, nil
	}

	rr := env.get("/assess", env.sessionCookie(t, alice))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, models.UserHistoryLimit, gotLimit)
	body := rr.Body.String()
	assert.Contains(t, body, "2026-03-01 12:30")
	assert.Contains(t, body, "&lt;b&gt;sprint&lt;/b&gt;")
	assert.Contains(t, body, "Signed in as <strong>alice</strong>")
}

func TestSubmitAssessment_Success(t *testing.T) {
	env := newTestEnv(t)

	var got models.AssessmentSubmission
	env.assessments.submitFunc = func(_ context.Context, s models.AssessmentSubmission) (models.Assessment, error) {
		got = s
		return models.Assessment{ID: 1, UserID: s.UserID, Scores: s.Scores}, nil
	}

	form := assessForm(7)
	form.Set("notes", "  good week  ")
	rr := env.post("/assess", form, env.sessionCookie(t, alice))

	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/assess", rr.Header().Get("Location"))
	assert.Equal(t, alice.UserID, got.UserID)
	assert.Equal(t, "good week", got.Notes)
	assert.Len(t, got.Scores, len(models.Capabilities))
	assert.Equal(t, 7, got.Scores["leadership"])
	assert.Equal(t, MsgAssessmentSaved, flashesOf(t, rr)[0].Message)
}

func TestSubmitAssessment_ValidationRerendersForm(t *testing.T) {
	env := newTestEnv(t)

	var got models.AssessmentSubmission
	env.assessments.submitFunc = func(_ context.Context, s models.AssessmentSubmission) (models.Assessment, error) {
		got = s
		verr := &validators.ValidationError{}
		verr.Add("teamwork", "Teamwork must be between 1 and 10")
		verr.Add("leadership", "Leadership is required")
		return models.Assessment{}, fmt.Errorf("%w: %w", service.ErrValidation, verr)
	}

	form := assessForm(4)
	form.Set("teamwork", "eleven")
	form.Set("leadership", "")
	form.Set("notes", "kept")
	rr := env.post("/assess", form, env.sessionCookie(t, alice))

	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Equal(t, 0, got.Scores["teamwork"])
	assert.NotContains(t, got.Scores, "leadership")

	body := rr.Body.String()
	assert.Contains(t, body, "Teamwork must be between 1 and 10")
	assert.Contains(t, body, "Leadership is required")
	assert.Contains(t, body, `<option value="4" selected>4</option>`)
	assert.Contains(t, body, ">kept</textarea>")
	assert.Nil(t, responseCookie(rr, flashCookieName))
}

func TestSubmitAssessment_StorageFailure(t *testing.T) {
	env := newTestEnv(t)
	env.assessments.submitFunc = func(context.Context, models.AssessmentSubmission) (models.Assessment, error) {
		return models.Assessment{}, errBoom
	}

	rr := env.post("/assess", assessForm(5), env.sessionCookie(t, alice))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestHistory(t *testing.T) {
	env := newTestEnv(t)
	env.assessments.recentForUserFunc = func(context.Context, int64, int) ([]models.Assessment, error) {
		return nil, nil
	}

	rr := env.get("/history", env.sessionCookie(t, alice))
	assert.Equal(t, http.StatusOK, rr.Code)

	env.assessments.recentForUserFunc = func(context.Context, int64, int) ([]models.Assessment, error) {
		return nil, errBoom
	}
	rr = env.get("/history", env.sessionCookie(t, alice))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

// ---------------------------------------------------------------------------
// Admin
// ---------------------------------------------------------------------------

func TestAdmin_Access(t *testing.T) {
	env := newTestEnv(t)
	env.reports.adminReportFunc = func(context.Context) (models.AdminReport, error) {
		return models.AdminReport{
			Recent:   []models.AssessmentWithUser{{Assessment: models.Assessment{ID: 1, Scores: models.Scores{"teamwork": 6}}, Username: "alice"}},
			Averages: models.Averages{Values: map[string]float64{"teamwork": 6}, Count: 1},
			RadarPNG: []byte{0x89, 'P', 'N', 'G'},
		}, nil
	}
	env.reports.radarChartFunc = func(context.Context) ([]byte, error) {
		return []byte{0x89, 'P', 'N', 'G'}, nil
	}

	t.Run("anonymous is redirected", func(t *testing.T) {
		for _, path := range []string{"/admin", "/admin/chart.png"} {
			rr := env.get(path)
			assert.Equal(t, http.StatusSeeOther, rr.Code)
			assert.Equal(t, "/login", rr.Header().Get("Location"))
		}
	})

	t.Run("non-admin is forbidden", func(t *testing.T) {
		for _, path := range []string{"/admin", "/admin/chart.png"} {
			rr := env.get(path, env.sessionCookie(t, alice))
			assert.Equal(t, http.StatusForbidden, rr.Code)
			assert.Contains(t, rr.Body.String(), MsgForbidden)
		}
	})

	t.Run("admin sees dashboard", func(t *testing.T) {
		rr := env.get("/admin", env.sessionCookie(t, root))
		require.Equal(t, http.StatusOK, rr.Code)
		body := rr.Body.String()
		assert.Contains(t, body, `src="data:image/png;base64,iVBORw=="`)
		assert.Contains(t, body, "6.00")
		assert.Contains(t, body, "Computed over 1 assessment(s).")
		assert.Contains(t, body, "<td>alice</td>")
	})

	t.Run("admin gets chart", func(t *testing.T) {
		rr := env.get("/admin/chart.png", env.sessionCookie(t, root))
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "image/png", rr.Header().Get("Content-Type"))
		assert.Equal(t, "no-store", rr.Header().Get("Cache-Control"))
		assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, rr.Body.Bytes())
	})
}

func TestAdmin_ReportFailure(t *testing.T) {
	env := newTestEnv(t)
	env.reports.adminReportFunc = func(context.Context) (models.AdminReport, error) {
		return models.AdminReport{}, errBoom
	}

	rr := env.get("/admin", env.sessionCookie(t, root))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, rr.Body.String(), MsgInternalServerError)
}

// ---------------------------------------------------------------------------
// Routing and infrastructure
// ---------------------------------------------------------------------------

func TestHealthz(t *testing.T) {
	env := newTestEnv(t)

	rr := env.get("/healthz")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ok\n", rr.Body.String())

	env.pinger.err = errBoom
	rr = env.get("/healthz")
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestVersion(t *testing.T) {
	env := newTestEnv(t)

	rr := env.get("/version")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/plain; charset=utf-8", rr.Header().Get("Content-Type"))
	assert.Equal(t, "version test (commit N/A, built N/A)\n", rr.Body.String())
}

func TestUnsupportedMethodIsNotFound(t *testing.T) {
	env := newTestEnv(t)

	for _, tc := range []struct{ method, path string }{
		{http.MethodDelete, "/assess"},
		{http.MethodPut, "/login"},
		{http.MethodPost, "/history"},
		{http.MethodPost, "/admin"},
		{http.MethodGet, "/no-such-page"},
	} {
		rr := env.do(httptest.NewRequest(tc.method, tc.path, nil))
		assert.Equal(t, http.StatusNotFound, rr.Code, "%s %s", tc.method, tc.path)
	}
}

func TestBodyLimit(t *testing.T) {
	env := newTestEnv(t)
	env.auth.authenticateFunc = func(context.Context, string, string) (models.User, error) {
		t.Fatal("oversized form must not reach the service")
		return models.User{}, nil
	}

	form := url.Values{"username": {"alice"}, "password": {strings.Repeat("p", maxFormBytes)}}
	rr := env.post("/login", form)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
	assert.Contains(t, rr.Body.String(), MsgRequestTooLarge)
}

func TestTraceIDOnEveryResponse(t *testing.T) {
	env := newTestEnv(t)
	for _, path := range []string{"/", "/login", "/healthz", "/missing"} {
		assert.NotEmpty(t, env.get(path).Header().Get(traceIDHeader), path)
	}
}

// ---------------------------------------------------------------------------
// Flash messages
// ---------------------------------------------------------------------------

func TestFlash_ShownOnceThenCleared(t *testing.T) {
	env := newTestEnv(t)

	value := encodeFlashes([]view.Flash{{Category: view.FlashSuccess, Message: "Account <created>"}})
	rr := env.get("/login", &http.Cookie{Name: flashCookieName, Value: value})

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `<div class="alert success">Account &lt;created&gt;</div>`)

	cleared := responseCookie(rr, flashCookieName)
	require.NotNil(t, cleared)
	assert.Negative(t, cleared.MaxAge)
}

func TestFlash_InvalidCookieIgnored(t *testing.T) {
	env := newTestEnv(t)

	for _, value := range []string{"%%%", encodeFlashes([]view.Flash{{Category: "evil", Message: "x"}})} {
		rr := env.get("/login", &http.Cookie{Name: flashCookieName, Value: value})
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.NotContains(t, rr.Body.String(), "alert evil")
	}
}

func TestFlash_Codec(t *testing.T) {
	flashes := []view.Flash{
		{Category: view.FlashSuccess, Message: "saved | twice"},
		{Category: view.FlashInfo, Message: "multi\nline"},
	}

	got, err := decodeFlashes(encodeFlashes(flashes))
	require.NoError(t, err)
	assert.Equal(t, []view.Flash{
		{Category: view.FlashSuccess, Message: "saved | twice"},
		{Category: view.FlashInfo, Message: "multi line"},
	}, got)

	_, err = decodeFlashes("bm8tc2VwYXJhdG9y")
	assert.ErrorIs(t, err, ErrInvalidFlashCookie)
}

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("%w: x", service.ErrValidation), http.StatusUnprocessableEntity},
		{fmt.Errorf("%w: x", service.ErrDuplicateUsername), http.StatusConflict},
		{service.ErrInvalidCredentials, http.StatusUnauthorized},
		{fmt.Errorf("%w: x", service.ErrSessionInvalid), http.StatusUnauthorized},
		{fmt.Errorf("wrapped: %w", service.ErrUserNotFound), http.StatusNotFound},
		{errBoom, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, statusFromError(tt.err), tt.err.Error())
	}
}

func TestStatusFromError_FirstListedSentinelWins(t *testing.T) {
	err := fmt.Errorf("%w: %w", service.ErrValidation, validators.ErrInvalidUserID)

	for i := 0; i < 50; i++ {
		require.Equal(t, http.StatusBadRequest, statusFromError(err))
	}

	err = fmt.Errorf("%w: %w", service.ErrDuplicateUsername, store.ErrNoUserWasFound)
	for i := 0; i < 50; i++ {
		require.Equal(t, http.StatusConflict, statusFromError(err))
	}
}
