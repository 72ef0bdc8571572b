package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YeongsHub/complain-finder/internal/analyzer"
	"github.com/YeongsHub/complain-finder/internal/core/domain"
	"github.com/YeongsHub/complain-finder/internal/discovery"
	"github.com/YeongsHub/complain-finder/internal/ideas"
	"github.com/YeongsHub/complain-finder/internal/pipeline"
	"github.com/YeongsHub/complain-finder/internal/storage"
)

type stubSource struct {
	Posts []domain.Post
}

func (s *stubSource) Fetch(_ context.Context, _ string, _ []string, limit int) ([]domain.Post, error) {
	if limit < len(s.Posts) {
		return s.Posts[:limit], nil
	}
	return s.Posts, nil
}

type testServer struct {
	*Server
	store  *storage.JSONStorage
	router *gin.Engine
	pool   *pipeline.Pool
}

func newTestServer(t *testing.T, posts []domain.Post) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := storage.NewJSONStorage("")
	require.NoError(t, err)

	source := &stubSource{Posts: posts}
	pool := pipeline.NewPool(context.Background(), 2)
	orchestrator := pipeline.NewOrchestrator(
		source,
		analyzer.NewComplaintAnalyzer(analyzer.SubstituteComplaintClassifier{}, store),
		ideas.NewSynthesizer(ideas.SubstituteIdeaGenerator{}, store),
		store,
		pool,
	)
	registry := discovery.NewRegistry()
	appIdeas := analyzer.NewAppIdeaAnalyzer(source, analyzer.SubstituteAppIdeaClassifier{}, store)
	scheduler := discovery.NewScheduler(registry, appIdeas, pool)

	srv := NewServer(store, orchestrator, scheduler, registry, appIdeas)
	return &testServer{Server: srv, store: store, router: srv.Router(), pool: pool}
}

func (ts *testServer) do(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, nil)
	w := ts.do(http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestStartAnalysis(t *testing.T) {
	posts := []domain.Post{
		{ID: "p1", Source: "golang", Title: "This is so expensive"},
		{ID: "p2", Source: "golang", Title: "Worst bug ever"},
	}
	ts := newTestServer(t, posts)

	w := ts.do(http.MethodPost, "/api/analyze", `{"source": "golang", "limit": 10}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		SessionID string `json:"sessionId"`
		Status    string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.SessionID)
	assert.Equal(t, "PENDING", resp.Status)

	ts.pool.Wait()

	status := ts.do(http.MethodGet, "/api/analyze/"+resp.SessionID+"/status", "")
	require.Equal(t, http.StatusOK, status.Code)
	assert.Contains(t, status.Body.String(), `"status":"COMPLETED"`)
	assert.Contains(t, status.Body.String(), `"totalPosts":2`)
}

func TestStartAnalysisAppliesDefaultLimit(t *testing.T) {
	posts := []domain.Post{
		{ID: "p1", Source: "golang", Title: "This is so expensive"},
		{ID: "p2", Source: "golang", Title: "Worst bug ever"},
	}
	ts := newTestServer(t, posts)
	ts.DefaultLimit = 1

	w := ts.do(http.MethodPost, "/api/analyze", `{"source": "golang"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		SessionID string `json:"sessionId"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	ts.pool.Wait()

	status := ts.do(http.MethodGet, "/api/analyze/"+resp.SessionID+"/status", "")
	assert.Contains(t, status.Body.String(), `"totalPosts":1`)
}

func TestStartAnalysisRequiresSource(t *testing.T) {
	ts := newTestServer(t, nil)
	w := ts.do(http.MethodPost, "/api/analyze", `{"limit": 10}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnalysisStatusNotFound(t *testing.T) {
	ts := newTestServer(t, nil)
	w := ts.do(http.MethodGet, "/api/analyze/unknown/status", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestComplaintEndpoints(t *testing.T) {
	ts := newTestServer(t, nil)
	ctx := context.Background()

	complaint := domain.Complaint{
		ID: "c1", PostID: "p1", Source: "golang",
		Title: "Too expensive", Category: domain.CategoryPrice,
		AnalyzedAt: time.Now(),
	}
	require.NoError(t, ts.store.SaveComplaint(ctx, &complaint))

	list := ts.do(http.MethodGet, "/api/complaints?source=golang", "")
	require.Equal(t, http.StatusOK, list.Code)
	assert.Contains(t, list.Body.String(), `"id":"c1"`)

	empty := ts.do(http.MethodGet, "/api/complaints?category=bug", "")
	require.Equal(t, http.StatusOK, empty.Code)

	sources := ts.do(http.MethodGet, "/api/complaints/sources", "")
	require.Equal(t, http.StatusOK, sources.Code)
	assert.JSONEq(t, `["golang"]`, sources.Body.String())

	get := ts.do(http.MethodGet, "/api/complaints/c1", "")
	assert.Equal(t, http.StatusOK, get.Code)

	del := ts.do(http.MethodDelete, "/api/complaints/c1", "")
	assert.Equal(t, http.StatusNoContent, del.Code)

	gone := ts.do(http.MethodGet, "/api/complaints/c1", "")
	assert.Equal(t, http.StatusNotFound, gone.Code)
}

func TestIdeaEndpoints(t *testing.T) {
	ts := newTestServer(t, nil)
	ctx := context.Background()

	for i, potential := range []int{4, 9, 7} {
		require.NoError(t, ts.store.SaveIdea(ctx, &domain.BusinessIdea{
			ID:             fmt.Sprintf("b%d", i+1),
			Title:          fmt.Sprintf("Idea %d", i+1),
			Difficulty:     domain.DifficultyEasy,
			PotentialScore: potential,
			CreatedAt:      time.Now().Add(time.Duration(i) * time.Minute),
		}))
	}

	list := ts.do(http.MethodGet, "/api/ideas?difficulty=easy", "")
	require.Equal(t, http.StatusOK, list.Code)

	top := ts.do(http.MethodGet, "/api/ideas/top", "")
	require.Equal(t, http.StatusOK, top.Code)
	var topIdeas []domain.BusinessIdea
	require.NoError(t, json.Unmarshal(top.Body.Bytes(), &topIdeas))
	require.Len(t, topIdeas, 3)
	assert.Equal(t, "b2", topIdeas[0].ID)

	del := ts.do(http.MethodDelete, "/api/ideas/b1", "")
	assert.Equal(t, http.StatusNoContent, del.Code)

	missing := ts.do(http.MethodDelete, "/api/ideas/b1", "")
	assert.Equal(t, http.StatusNotFound, missing.Code)
}

func TestAppIdeaEndpoints(t *testing.T) {
	ts := newTestServer(t, nil)
	ctx := context.Background()

	require.NoError(t, ts.store.SaveAppIdea(ctx, &domain.AppIdea{
		ID: "a1", PostID: "p1", AppName: "FocusTimer",
		ViabilityScore: 8, AnalyzedAt: time.Now(),
	}))

	list := ts.do(http.MethodGet, "/api/app-ideas", "")
	require.Equal(t, http.StatusOK, list.Code)
	assert.Contains(t, list.Body.String(), "FocusTimer")

	toggle := ts.do(http.MethodPost, "/api/app-ideas/a1/bookmark", "")
	require.Equal(t, http.StatusOK, toggle.Code)
	assert.Contains(t, toggle.Body.String(), `"bookmarked":true`)

	bookmarked := ts.do(http.MethodGet, "/api/app-ideas/bookmarked", "")
	require.Equal(t, http.StatusOK, bookmarked.Code)
	assert.Contains(t, bookmarked.Body.String(), `"id":"a1"`)

	toggleBack := ts.do(http.MethodPost, "/api/app-ideas/a1/bookmark", "")
	require.Equal(t, http.StatusOK, toggleBack.Code)
	assert.Contains(t, toggleBack.Body.String(), `"bookmarked":false`)

	missing := ts.do(http.MethodPost, "/api/app-ideas/nope/bookmark", "")
	assert.Equal(t, http.StatusNotFound, missing.Code)
}

func TestAnalyzeSourceEndpoint(t *testing.T) {
	ts := newTestServer(t, []domain.Post{
		{ID: "p1", Title: "I wish there was an app for this"},
		{ID: "p2", Title: "Nice weather today"},
	})

	w := ts.do(http.MethodPost, "/api/app-ideas/analyze/AppIdeas", "")
	require.Equal(t, http.StatusOK, w.Code)

	var found []domain.AppIdea
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &found))
	require.Len(t, found, 1)
	assert.Equal(t, "AppIdeas", found[0].Source)
}

func TestTriggerDiscoveryIsAsync(t *testing.T) {
	ts := newTestServer(t, nil)
	w := ts.do(http.MethodPost, "/api/app-ideas/discover", "")
	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Contains(t, w.Body.String(), "Discovery started")
}

func TestSourceEndpoints(t *testing.T) {
	ts := newTestServer(t, nil)

	list := ts.do(http.MethodGet, "/api/app-ideas/sources", "")
	require.Equal(t, http.StatusOK, list.Code)
	assert.Contains(t, list.Body.String(), "SomebodyMakeThis")

	add := ts.do(http.MethodPost, "/api/app-ideas/sources", `{"source": "golang"}`)
	require.Equal(t, http.StatusOK, add.Code)
	assert.Contains(t, add.Body.String(), "Added r/golang")

	dup := ts.do(http.MethodPost, "/api/app-ideas/sources", `{"source": "appideas"}`)
	assert.Equal(t, http.StatusBadRequest, dup.Code)

	remove := ts.do(http.MethodDelete, "/api/app-ideas/sources/golang", "")
	assert.Equal(t, http.StatusOK, remove.Code)

	removeDefault := ts.do(http.MethodDelete, "/api/app-ideas/sources/startups", "")
	assert.Equal(t, http.StatusBadRequest, removeDefault.Code)
}

func TestDashboardStats(t *testing.T) {
	ts := newTestServer(t, nil)
	ctx := context.Background()
	now := time.Now()

	for i := 0; i < 7; i++ {
		require.NoError(t, ts.store.SaveComplaint(ctx, &domain.Complaint{
			ID:         fmt.Sprintf("c%d", i),
			PostID:     fmt.Sprintf("p%d", i),
			Source:     "golang",
			Title:      strings.Repeat("long title ", 10),
			Category:   domain.CategoryBug,
			AnalyzedAt: now.Add(time.Duration(i) * time.Minute),
		}))
	}
	require.NoError(t, ts.store.SaveIdea(ctx, &domain.BusinessIdea{
		ID: "b1", Title: "Reliable golang alternative", CreatedAt: now,
	}))

	w := ts.do(http.MethodGet, "/api/dashboard/stats", "")
	require.Equal(t, http.StatusOK, w.Code)

	var stats DashboardStats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, 7, stats.TotalComplaints)
	assert.Equal(t, 1, stats.TotalIdeas)
	assert.Equal(t, 1, stats.TotalSources)
	assert.Equal(t, map[string]int{domain.CategoryBug: 7}, stats.CategoryDistribution)

	// Five most recent complaints plus the idea.
	require.Len(t, stats.RecentActivities, 6)
	for _, activity := range stats.RecentActivities {
		if activity.Type == "complaint" {
			assert.Contains(t, activity.Description, "...", "long titles are shortened")
		}
	}
}

func TestShorten(t *testing.T) {
	assert.Equal(t, "short", shorten("short", 50))
	long := strings.Repeat("x", 60)
	assert.Equal(t, strings.Repeat("x", 50)+"...", shorten(long, 50))

	// Character count, not bytes: 40 three-byte runes stay whole.
	korean := strings.Repeat("한", 40)
	assert.Equal(t, korean, shorten(korean, 50))

	longKorean := strings.Repeat("한", 60)
	got := shorten(longKorean, 50)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, strings.Repeat("한", 50)+"...", got)
}
