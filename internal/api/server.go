package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/YeongsHub/complain-finder/internal/analyzer"
	"github.com/YeongsHub/complain-finder/internal/core/domain"
	"github.com/YeongsHub/complain-finder/internal/core/ports"
	"github.com/YeongsHub/complain-finder/internal/discovery"
	"github.com/YeongsHub/complain-finder/internal/pipeline"
	"github.com/YeongsHub/complain-finder/internal/storage"
)

// Server wires the HTTP surface to the core components.
type Server struct {
	Store     ports.Storage
	Pipeline  *pipeline.Orchestrator
	Scheduler *discovery.Scheduler
	Registry  *discovery.Registry
	AppIdeas  *analyzer.AppIdeaAnalyzer

	// DefaultLimit is the post batch size used when an analyze request
	// does not name one.
	DefaultLimit int
}

func NewServer(store ports.Storage, pl *pipeline.Orchestrator, sched *discovery.Scheduler, reg *discovery.Registry, appIdeas *analyzer.AppIdeaAnalyzer) *Server {
	return &Server{
		Store:        store,
		Pipeline:     pl,
		Scheduler:    sched,
		Registry:     reg,
		AppIdeas:     appIdeas,
		DefaultLimit: 25,
	}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	router := gin.Default()

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now()})
	})

	apiGroup := router.Group("/api")
	{
		apiGroup.POST("/analyze", s.startAnalysis)
		apiGroup.GET("/analyze/:id/status", s.analysisStatus)

		apiGroup.GET("/complaints", s.listComplaints)
		apiGroup.GET("/complaints/sources", s.complaintSources)
		apiGroup.GET("/complaints/:id", s.getComplaint)
		apiGroup.DELETE("/complaints/:id", s.deleteComplaint)

		apiGroup.GET("/ideas", s.listIdeas)
		apiGroup.GET("/ideas/top", s.topIdeas)
		apiGroup.GET("/ideas/:id", s.getIdea)
		apiGroup.DELETE("/ideas/:id", s.deleteIdea)

		appIdeas := apiGroup.Group("/app-ideas")
		{
			appIdeas.GET("", s.listAppIdeas)
			appIdeas.GET("/top", s.topAppIdeas)
			appIdeas.GET("/bookmarked", s.bookmarkedAppIdeas)
			appIdeas.POST("/:id/bookmark", s.toggleBookmark)
			appIdeas.POST("/discover", s.triggerDiscovery)
			appIdeas.POST("/analyze/:source", s.analyzeSource)
			appIdeas.GET("/sources", s.listSources)
			appIdeas.POST("/sources", s.addSource)
			appIdeas.DELETE("/sources/:name", s.removeSource)
		}

		apiGroup.GET("/dashboard/stats", s.dashboardStats)
	}

	return router
}

type analyzeRequest struct {
	Source   string   `json:"source" binding:"required"`
	Keywords []string `json:"keywords"`
	Limit    int      `json:"limit"`
}

func (s *Server) startAnalysis(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Limit <= 0 {
		req.Limit = s.DefaultLimit
	}

	session, err := s.Pipeline.Start(c.Request.Context(), req.Source, req.Keywords, req.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sessionId": session.ID,
		"source":    session.Source,
		"status":    session.Status,
		"message":   "Analysis started",
	})
}

func (s *Server) analysisStatus(c *gin.Context) {
	session, err := s.Pipeline.Status(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sessionId":       session.ID,
		"source":          session.Source,
		"status":          session.Status,
		"totalPosts":      session.TotalPosts,
		"totalComplaints": session.TotalComplaints,
		"message":         statusMessage(session),
	})
}

func statusMessage(session *domain.AnalysisSession) string {
	switch session.Status {
	case domain.StatusPending:
		return "Waiting to start..."
	case domain.StatusCollecting:
		return "Collecting posts..."
	case domain.StatusAnalyzing:
		return "Analyzing complaints..."
	case domain.StatusGeneratingIdeas:
		return "Generating business ideas..."
	case domain.StatusCompleted:
		return "Completed! Found " + strconv.Itoa(session.TotalComplaints) +
			" complaints from " + strconv.Itoa(session.TotalPosts) + " posts"
	default:
		return "Analysis failed"
	}
}

func (s *Server) listComplaints(c *gin.Context) {
	complaints, err := s.Store.ListComplaints(c.Request.Context(), c.Query("source"), c.Query("category"))
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, complaints)
}

func (s *Server) complaintSources(c *gin.Context) {
	sources, err := s.Store.DistinctSources(c.Request.Context())
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, sources)
}

func (s *Server) getComplaint(c *gin.Context) {
	complaint, err := s.Store.GetComplaint(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, complaint)
}

func (s *Server) deleteComplaint(c *gin.Context) {
	if err := s.Store.DeleteComplaint(c.Request.Context(), c.Param("id")); err != nil {
		s.renderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) listIdeas(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	ideas, err := s.Store.ListIdeas(c.Request.Context(), c.Query("difficulty"), limit)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, ideas)
}

func (s *Server) topIdeas(c *gin.Context) {
	ideas, err := s.Store.TopIdeas(c.Request.Context(), 10)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, ideas)
}

func (s *Server) getIdea(c *gin.Context) {
	idea, err := s.Store.GetIdea(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, idea)
}

func (s *Server) deleteIdea(c *gin.Context) {
	if err := s.Store.DeleteIdea(c.Request.Context(), c.Param("id")); err != nil {
		s.renderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) listAppIdeas(c *gin.Context) {
	ideas, err := s.Store.ListAppIdeas(c.Request.Context())
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, ideas)
}

func (s *Server) topAppIdeas(c *gin.Context) {
	ideas, err := s.Store.TopAppIdeas(c.Request.Context(), 10)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, ideas)
}

func (s *Server) bookmarkedAppIdeas(c *gin.Context) {
	ideas, err := s.Store.BookmarkedAppIdeas(c.Request.Context())
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, ideas)
}

func (s *Server) toggleBookmark(c *gin.Context) {
	idea, err := s.Store.ToggleBookmark(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, idea)
}

func (s *Server) triggerDiscovery(c *gin.Context) {
	s.Scheduler.TriggerNow()
	c.JSON(http.StatusAccepted, gin.H{
		"message":        "Discovery started",
		"sourcesScanned": s.Registry.All(),
	})
}

func (s *Server) analyzeSource(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	ideas, err := s.AppIdeas.AnalyzeSource(c.Request.Context(), c.Param("source"), limit)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, ideas)
}

func (s *Server) listSources(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"defaults": s.Registry.Defaults(),
		"custom":   s.Registry.Custom(),
		"all":      s.Registry.All(),
	})
}

func (s *Server) addSource(c *gin.Context) {
	var body struct {
		Source string `json:"source"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	added, err := s.Registry.Add(body.Source)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":  "Added r/" + added,
		"defaults": s.Registry.Defaults(),
		"custom":   s.Registry.Custom(),
		"all":      s.Registry.All(),
	})
}

func (s *Server) removeSource(c *gin.Context) {
	name := c.Param("name")
	if err := s.Registry.Remove(name); err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":  "Removed r/" + name,
		"defaults": s.Registry.Defaults(),
		"custom":   s.Registry.Custom(),
		"all":      s.Registry.All(),
	})
}

// renderError maps the two caller-visible error classes to status codes;
// everything else is a 500.
func (s *Server) renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, discovery.ErrInvalidSource):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
