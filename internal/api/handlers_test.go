// ContentROI - Content Attribution and Lifetime-Value Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/contentroi

package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/contentroi/internal/analysis"
	"github.com/tomtom215/contentroi/internal/database"
	"github.com/tomtom215/contentroi/internal/dataset"
	"github.com/tomtom215/contentroi/internal/financials"
	"github.com/tomtom215/contentroi/internal/models"
)

func day(s string) time.Time {
	t, err := time.Parse(models.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

// envelope mirrors models.APIResponse with the payload left raw.
type envelope struct {
	Status   string          `json:"status"`
	Data     json.RawMessage `json:"data"`
	Metadata models.Metadata `json:"metadata"`
	Error    *models.APIError `json:"error"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}
	return env
}

func testDataset(t *testing.T) *dataset.Dataset {
	t.Helper()
	catalog := []models.ContentItem{
		{ID: "S1", Title: "Orbit", Genre: "Sci-Fi", ReleaseTime: day("2024-01-01"), ProductionCost: 1000},
		{ID: "S2", Title: "Laughs", Genre: "Comedy", ReleaseTime: day("2024-02-01"), ProductionCost: 200},
		{ID: "S3", Title: "Free Doc", Genre: "Drama", ReleaseTime: day("2024-03-01"), ProductionCost: 0},
	}
	ledger := []models.UserRecord{
		{ID: "U1", SignupTime: day("2024-01-03"), LastActiveTime: day("2024-01-03"), MonthlyRevenue: 10},
		{ID: "U2", SignupTime: day("2024-02-11"), LastActiveTime: day("2024-04-11"), MonthlyRevenue: 20},
		{ID: "U3", SignupTime: day("2023-06-01"), LastActiveTime: day("2024-12-01"), MonthlyRevenue: 5},
		{ID: "U4", SignupTime: day("2023-07-01"), LastActiveTime: day("2023-08-01"), MonthlyRevenue: 7, AttributedContentID: "GONE"},
		{ID: "U5", SignupTime: day("2024-03-02"), LastActiveTime: day("2024-03-02"), MonthlyRevenue: 3},
	}
	d, err := dataset.New(catalog, ledger, dataset.SourceGenerated, dataset.LoadOptions{})
	if err != nil {
		t.Fatalf("dataset.New() error = %v", err)
	}
	return d
}

func testHandlerConfig() HandlerConfig {
	return HandlerConfig{
		Version:           "test",
		DefaultWindowDays: 7,
		SweepWindows:      []int{3, 7, 14},
		SweepGenres:       []string{"Sci-Fi", "Comedy"},
		TopN:              5,
	}
}

func newTestEngine(t *testing.T, d *dataset.Dataset) *analysis.Engine {
	t.Helper()
	e := analysis.New(d, analysis.Options{
		Churn:    financials.ChurnPolicy{AsOf: day("2025-01-15"), InactiveDays: 30},
		CacheTTL: time.Minute,
	})
	t.Cleanup(e.Close)
	return e
}

// setupTestRouter builds the full router over the test dataset.
func setupTestRouter(t *testing.T, store RunStore, mwCfg *ChiMiddlewareConfig) http.Handler {
	t.Helper()
	h := NewHandler(newTestEngine(t, testDataset(t)), testHandlerConfig())
	if store != nil {
		h.SetRunStore(store)
	}
	if mwCfg == nil {
		mwCfg = DefaultChiMiddlewareConfig()
		mwCfg.RateLimitDisabled = true
	}
	return NewRouter(h, NewChiMiddleware(mwCfg)).SetupChi()
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// fakeRunStore serves canned runs.
type fakeRunStore struct {
	runs    []models.AnalysisRun
	sweeps  map[string][]models.SweepRow
	pingErr error
	listErr error
}

func (s *fakeRunStore) Ping(context.Context) error { return s.pingErr }

func (s *fakeRunStore) LatestRuns(_ context.Context, limit int) ([]models.AnalysisRun, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	if limit < len(s.runs) {
		return s.runs[:limit], nil
	}
	return s.runs, nil
}

func (s *fakeRunStore) GetRun(_ context.Context, id string) (*models.AnalysisRun, error) {
	for i := range s.runs {
		if s.runs[i].RunID == id {
			return &s.runs[i], nil
		}
	}
	return nil, database.ErrRunNotFound
}

func (s *fakeRunStore) LoadSweep(_ context.Context, id string) ([]models.SweepRow, error) {
	return s.sweeps[id], nil
}

func TestHealth(t *testing.T) {
	t.Parallel()

	router := setupTestRouter(t, &fakeRunStore{}, nil)
	rec := get(t, router, "/api/v1/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	env := decode(t, rec)
	var health models.HealthStatus
	if err := json.Unmarshal(env.Data, &health); err != nil {
		t.Fatalf("failed to decode health: %v", err)
	}
	if health.Status != "healthy" || !health.DatabaseReady || health.Version != "test" {
		t.Errorf("health = %+v", health)
	}
	if health.Dataset.ContentItems != 3 || health.Dataset.Users != 5 || health.Dataset.Version != 1 {
		t.Errorf("dataset stats = %+v", health.Dataset)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("response should carry X-Request-ID")
	}
}

func TestHealth_DegradedAndUnavailable(t *testing.T) {
	t.Parallel()

	router := setupTestRouter(t, &fakeRunStore{pingErr: errors.New("closed")}, nil)
	var health models.HealthStatus
	if err := json.Unmarshal(decode(t, get(t, router, "/api/v1/health")).Data, &health); err != nil {
		t.Fatal(err)
	}
	if health.Status != "degraded" {
		t.Errorf("status = %q, want degraded", health.Status)
	}

	empty := NewRouter(NewHandler(newTestEngine(t, nil), testHandlerConfig()), nil).SetupChi()
	if err := json.Unmarshal(decode(t, get(t, empty, "/api/v1/health")).Data, &health); err != nil {
		t.Fatal(err)
	}
	if health.Status != "unavailable" {
		t.Errorf("status = %q, want unavailable", health.Status)
	}
	if rec := get(t, empty, "/api/v1/health/ready"); rec.Code != http.StatusServiceUnavailable {
		t.Errorf("ready status = %d, want 503", rec.Code)
	}
	if rec := get(t, empty, "/api/v1/analysis/shows"); rec.Code != http.StatusServiceUnavailable {
		t.Errorf("shows without dataset status = %d, want 503", rec.Code)
	}
}

func TestHealthProbes(t *testing.T) {
	t.Parallel()

	router := setupTestRouter(t, nil, nil)
	for _, path := range []string{"/api/v1/health/live", "/api/v1/health/ready"} {
		if rec := get(t, router, path); rec.Code != http.StatusOK {
			t.Errorf("%s status = %d, want 200", path, rec.Code)
		}
	}
}

func TestAnalysisShows(t *testing.T) {
	t.Parallel()

	router := setupTestRouter(t, nil, nil)
	rec := get(t, router, "/api/v1/analysis/shows")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	env := decode(t, rec)
	if env.Status != "success" || env.Metadata.RunID == "" {
		t.Errorf("envelope = %+v", env)
	}
	if env.Metadata.WindowDays == nil || *env.Metadata.WindowDays != 7 {
		t.Errorf("window_days = %v, want 7", env.Metadata.WindowDays)
	}

	var shows []struct {
		ShowID string   `json:"show_id"`
		ROI    *float64 `json:"roi"`
	}
	if err := json.Unmarshal(env.Data, &shows); err != nil {
		t.Fatalf("failed to decode shows: %v", err)
	}
	if len(shows) != 2 {
		t.Fatalf("got %d shows, want 2", len(shows))
	}
	// Defined ROI ranks ahead of undefined.
	if shows[0].ShowID != "S1" || shows[0].ROI == nil || *shows[0].ROI != -0.99 {
		t.Errorf("shows[0] = %+v", shows[0])
	}
	if shows[1].ShowID != "S3" || shows[1].ROI != nil {
		t.Errorf("zero-cost show should have null roi, got %+v", shows[1])
	}
	if !strings.Contains(rec.Body.String(), `"roi":null`) {
		t.Error("undefined ROI should serialize as null")
	}
}

func TestAnalysisShows_Cached(t *testing.T) {
	t.Parallel()

	router := setupTestRouter(t, nil, nil)
	first := decode(t, get(t, router, "/api/v1/analysis/shows?window=14"))
	second := decode(t, get(t, router, "/api/v1/analysis/genres?window=14"))
	if first.Metadata.Cached || !second.Metadata.Cached {
		t.Errorf("cached flags = %v, %v; want false, true", first.Metadata.Cached, second.Metadata.Cached)
	}
	if first.Metadata.RunID != second.Metadata.RunID {
		t.Error("endpoints sharing a window should share a run")
	}
}

func TestAnalysisShows_Params(t *testing.T) {
	t.Parallel()

	router := setupTestRouter(t, nil, nil)

	tests := []struct {
		name       string
		query      string
		wantStatus int
		wantCount  int
	}{
		{"limit one", "?limit=1", http.StatusOK, 1},
		{"limit zero returns all", "?limit=0&window=14", http.StatusOK, 3},
		{"by users", "?sort=users&window=14", http.StatusOK, 3},
		{"genre filter", "?genre=Sci-Fi", http.StatusOK, 1},
		{"unknown genre", "?genre=Western", http.StatusOK, 0},
		{"negative window", "?window=-1", http.StatusBadRequest, 0},
		{"window too large", "?window=3651", http.StatusBadRequest, 0},
		{"window not a number", "?window=seven", http.StatusBadRequest, 0},
		{"bad sort", "?sort=profit", http.StatusBadRequest, 0},
		{"negative limit", "?limit=-5", http.StatusBadRequest, 0},
		{"organic genre", "?genre=organic", http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := get(t, router, "/api/v1/analysis/shows"+tt.query)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			env := decode(t, rec)
			if tt.wantStatus != http.StatusOK {
				if env.Error == nil || env.Error.Code != ErrCodeValidation {
					t.Errorf("error = %+v, want VALIDATION_ERROR", env.Error)
				}
				return
			}
			var shows []models.ShowFinancials
			if err := json.Unmarshal(env.Data, &shows); err != nil {
				t.Fatal(err)
			}
			if len(shows) != tt.wantCount {
				t.Errorf("got %d shows, want %d", len(shows), tt.wantCount)
			}
		})
	}
}

func TestAnalysisGenres(t *testing.T) {
	t.Parallel()

	router := setupTestRouter(t, nil, nil)
	env := decode(t, get(t, router, "/api/v1/analysis/genres"))

	var genres []struct {
		Genre    string   `json:"genre"`
		CAC      *float64 `json:"cac_per_user"`
		LTVToCAC *float64 `json:"ltv_to_cac"`
	}
	if err := json.Unmarshal(env.Data, &genres); err != nil {
		t.Fatal(err)
	}
	if len(genres) != 2 || genres[0].Genre != "Drama" || genres[1].Genre != "Sci-Fi" {
		t.Fatalf("genres = %+v", genres)
	}
	if genres[0].CAC == nil || *genres[0].CAC != 0 || genres[0].LTVToCAC != nil {
		t.Errorf("Drama with zero cost should have CAC 0 and null LTV:CAC, got %+v", genres[0])
	}
	if genres[1].LTVToCAC == nil || *genres[1].LTVToCAC != 0.01 {
		t.Errorf("Sci-Fi LTV:CAC = %v, want 0.01", genres[1].LTVToCAC)
	}
}

func TestAnalysisGenreLTV(t *testing.T) {
	t.Parallel()

	router := setupTestRouter(t, nil, nil)
	env := decode(t, get(t, router, "/api/v1/analysis/genres/ltv?window=14"))

	var rows []models.GenreLTV
	if err := json.Unmarshal(env.Data, &rows); err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d genres, want 3", len(rows))
	}
	if rows[0].Genre != "Comedy" || rows[0].AvgLTV != 40 {
		t.Errorf("highest average LTV = %+v, want Comedy at 40", rows[0])
	}
	for _, row := range rows {
		if row.Genre == models.OrganicGenre {
			t.Error("organic users should be excluded from genre LTV")
		}
	}
}

func TestAnalysisSummary(t *testing.T) {
	t.Parallel()

	router := setupTestRouter(t, nil, nil)

	var all models.Summary
	allEnv := decode(t, get(t, router, "/api/v1/analysis/summary"))
	if err := json.Unmarshal(allEnv.Data, &all); err != nil {
		t.Fatal(err)
	}
	if all.Users != 5 || all.AttributedUsers != 2 || all.OrganicUsers != 3 || all.TotalRevenue != 150 {
		t.Errorf("summary = %+v", all)
	}
	if !all.AvgLTV.Valid || all.AvgLTV.Value != 30 {
		t.Errorf("summary avg LTV = %+v, want 30", all.AvgLTV)
	}

	rec := get(t, router, "/api/v1/analysis/summary?genre=Sci-Fi")
	var scifi struct {
		Genre           string   `json:"genre"`
		AttributedUsers int      `json:"attributed_users"`
		AvgLTV          *float64 `json:"avg_ltv"`
	}
	if err := json.Unmarshal(decode(t, rec).Data, &scifi); err != nil {
		t.Fatal(err)
	}
	if scifi.Genre != "Sci-Fi" || scifi.AttributedUsers != 1 || scifi.AvgLTV == nil || *scifi.AvgLTV != 10 {
		t.Errorf("Sci-Fi summary = %+v", scifi)
	}

	var none struct {
		AvgLTV *float64 `json:"avg_ltv"`
	}
	if err := json.Unmarshal(decode(t, get(t, router, "/api/v1/analysis/summary?genre=Western")).Data, &none); err != nil {
		t.Fatal(err)
	}
	if none.AvgLTV != nil {
		t.Error("average LTV over no users should be null")
	}

	var organic models.Summary
	if err := json.Unmarshal(decode(t, get(t, router, "/api/v1/analysis/summary?genre=Organic")).Data, &organic); err != nil {
		t.Fatal(err)
	}
	if organic.Users != 3 || organic.OrganicUsers != 3 || organic.AttributedUsers != 0 || organic.TotalRevenue != 137 {
		t.Errorf("Organic summary = %+v", organic)
	}
}

func TestAnalysisUsers_Pagination(t *testing.T) {
	t.Parallel()

	router := setupTestRouter(t, nil, nil)

	env := decode(t, get(t, router, "/api/v1/analysis/users?limit=2&offset=1"))
	var users []models.EnrichedUser
	if err := json.Unmarshal(env.Data, &users); err != nil {
		t.Fatal(err)
	}
	if len(users) != 2 || users[0].UserID != "U2" || users[1].UserID != "U3" {
		t.Errorf("page = %+v", users)
	}
	p := env.Metadata.Pagination
	if p == nil || p.TotalCount != 5 || !p.HasMore || p.Limit != 2 || p.Offset != 1 {
		t.Errorf("pagination = %+v", p)
	}

	env = decode(t, get(t, router, "/api/v1/analysis/users?offset=10"))
	if err := json.Unmarshal(env.Data, &users); err != nil {
		t.Fatal(err)
	}
	if len(users) != 0 || env.Metadata.Pagination.HasMore {
		t.Errorf("offset past the end should return an empty last page, got %d users", len(users))
	}

	env = decode(t, get(t, router, "/api/v1/analysis/users?genre=Organic"))
	if err := json.Unmarshal(env.Data, &users); err != nil {
		t.Fatal(err)
	}
	if len(users) != 3 {
		t.Errorf("organic filter returned %d users, want 3", len(users))
	}

	for _, q := range []string{"?limit=0", "?limit=1001", "?offset=-1", "?offset=x"} {
		if rec := get(t, router, "/api/v1/analysis/users"+q); rec.Code != http.StatusBadRequest {
			t.Errorf("users%s status = %d, want 400", q, rec.Code)
		}
	}
}

func TestAnalysisUsersExport(t *testing.T) {
	t.Parallel()

	router := setupTestRouter(t, nil, nil)
	rec := get(t, router, "/api/v1/analysis/users/export?window=7")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("Content-Type = %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "users_window_7.csv") {
		t.Errorf("Content-Disposition = %q", cd)
	}

	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	if len(lines) != 6 {
		t.Fatalf("got %d CSV lines, want header + 5", len(lines))
	}
	if !strings.HasPrefix(lines[0], "user_id,") || !strings.HasSuffix(strings.TrimSpace(lines[0]), "ltv") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "U1,") || !strings.Contains(lines[1], ",S1,") {
		t.Errorf("first row = %q, want U1 attributed to S1", lines[1])
	}
}

func TestAnalysisSweep(t *testing.T) {
	t.Parallel()

	router := setupTestRouter(t, nil, nil)

	env := decode(t, get(t, router, "/api/v1/analysis/sweep"))
	var res analysis.SweepResult
	if err := json.Unmarshal(env.Data, &res); err != nil {
		t.Fatal(err)
	}
	if len(res.Rows) != 6 || res.SweepID == "" {
		t.Fatalf("default sweep = %+v", res)
	}

	env = decode(t, get(t, router, "/api/v1/analysis/sweep?windows=14,3,14&genres=Comedy"))
	if err := json.Unmarshal(env.Data, &res); err != nil {
		t.Fatal(err)
	}
	if len(res.Rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(res.Rows))
	}
	if res.Rows[0].WindowDays != 3 || res.Rows[0].LTVToCAC.Valid {
		t.Errorf("Comedy at 3 days = %+v, want undefined", res.Rows[0])
	}
	if res.Rows[1].WindowDays != 14 || !res.Rows[1].LTVToCAC.Valid || res.Rows[1].LTVToCAC.Value != 0.2 {
		t.Errorf("Comedy at 14 days = %+v, want 0.2", res.Rows[1])
	}

	env = decode(t, get(t, router, "/api/v1/analysis/sweep?windows=7&genres=all"))
	if err := json.Unmarshal(env.Data, &res); err != nil {
		t.Fatal(err)
	}
	if len(res.Genres) != 3 {
		t.Errorf("genres=all selected %v, want every catalog genre", res.Genres)
	}

	for _, q := range []string{"?windows=3,x", "?windows=-1", "?genres=Organic", "?windows=,"} {
		if rec := get(t, router, "/api/v1/analysis/sweep"+q); rec.Code != http.StatusBadRequest {
			t.Errorf("sweep%s status = %d, want 400", q, rec.Code)
		}
	}
}

func TestRuns(t *testing.T) {
	t.Parallel()

	store := &fakeRunStore{
		runs: []models.AnalysisRun{
			{RunID: "r2", WindowDays: 14},
			{RunID: "r1", WindowDays: 7, Shows: []models.ShowFinancials{{ContentID: "S1", ROI: models.Undefined()}}},
		},
		sweeps: map[string][]models.SweepRow{
			"sw": {{WindowDays: 3, Genre: "Comedy", LTVToCAC: models.Defined(1)}},
		},
	}
	router := setupTestRouter(t, store, nil)

	env := decode(t, get(t, router, "/api/v1/runs?limit=1"))
	var runs []models.AnalysisRun
	if err := json.Unmarshal(env.Data, &runs); err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 || runs[0].RunID != "r2" {
		t.Errorf("runs = %+v", runs)
	}

	rec := get(t, router, "/api/v1/runs/r1")
	if rec.Code != http.StatusOK {
		t.Fatalf("run status = %d", rec.Code)
	}
	if env := decode(t, rec); env.Metadata.RunID != "r1" {
		t.Errorf("run metadata = %+v", env.Metadata)
	}

	if rec := get(t, router, "/api/v1/runs/missing"); rec.Code != http.StatusNotFound {
		t.Errorf("missing run status = %d, want 404", rec.Code)
	}
	if rec := get(t, router, "/api/v1/runs?limit=0"); rec.Code != http.StatusBadRequest {
		t.Errorf("limit=0 status = %d, want 400", rec.Code)
	}
	if rec := get(t, router, "/api/v1/sweeps/sw"); rec.Code != http.StatusOK {
		t.Errorf("sweep status = %d, want 200", rec.Code)
	}
	if rec := get(t, router, "/api/v1/sweeps/none"); rec.Code != http.StatusNotFound {
		t.Errorf("missing sweep status = %d, want 404", rec.Code)
	}
}

func TestRuns_Errors(t *testing.T) {
	t.Parallel()

	disabled := setupTestRouter(t, nil, nil)
	for _, path := range []string{"/api/v1/runs", "/api/v1/runs/x", "/api/v1/sweeps/x"} {
		rec := get(t, disabled, path)
		if rec.Code != http.StatusServiceUnavailable {
			t.Errorf("%s without store status = %d, want 503", path, rec.Code)
		}
	}

	failing := setupTestRouter(t, &fakeRunStore{listErr: errors.New("io error")}, nil)
	rec := get(t, failing, "/api/v1/runs")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if env := decode(t, rec); env.Error == nil || env.Error.Code != ErrCodeDatabaseError {
		t.Errorf("error = %+v, want DATABASE_ERROR", env.Error)
	}
}
