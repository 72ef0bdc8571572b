package api

import (
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
)

// DashboardStats summarizes everything mined so far.
type DashboardStats struct {
	TotalComplaints      int              `json:"totalComplaints"`
	TotalIdeas           int              `json:"totalIdeas"`
	TotalSources         int              `json:"totalSources"`
	CategoryDistribution map[string]int   `json:"categoryDistribution"`
	RecentActivities     []RecentActivity `json:"recentActivities"`
}

type RecentActivity struct {
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
}

func (s *Server) dashboardStats(c *gin.Context) {
	ctx := c.Request.Context()

	complaints, err := s.Store.ListComplaints(ctx, "", "")
	if err != nil {
		s.renderError(c, err)
		return
	}
	ideas, err := s.Store.ListIdeas(ctx, "", 0)
	if err != nil {
		s.renderError(c, err)
		return
	}
	sources, err := s.Store.DistinctSources(ctx)
	if err != nil {
		s.renderError(c, err)
		return
	}

	distribution := make(map[string]int)
	for _, complaint := range complaints {
		if complaint.Category != "" {
			distribution[complaint.Category]++
		}
	}

	var activities []RecentActivity
	for i, complaint := range complaints {
		if i >= 5 {
			break
		}
		activities = append(activities, RecentActivity{
			Type:        "complaint",
			Description: "New complaint from r/" + complaint.Source + ": " + shorten(complaint.Title, 50),
			Timestamp:   complaint.AnalyzedAt,
		})
	}
	for i, idea := range ideas {
		if i >= 5 {
			break
		}
		activities = append(activities, RecentActivity{
			Type:        "idea",
			Description: "New idea generated: " + shorten(idea.Title, 50),
			Timestamp:   idea.CreatedAt,
		})
	}
	sort.Slice(activities, func(i, j int) bool {
		return activities[i].Timestamp.After(activities[j].Timestamp)
	})
	if len(activities) > 10 {
		activities = activities[:10]
	}

	c.JSON(http.StatusOK, DashboardStats{
		TotalComplaints:      len(complaints),
		TotalIdeas:           len(ideas),
		TotalSources:         len(sources),
		CategoryDistribution: distribution,
		RecentActivities:     activities,
	})
}

// shorten limits text to max characters, never cutting inside a rune.
func shorten(text string, max int) string {
	r := []rune(text)
	if len(r) > max {
		return string(r[:max]) + "..."
	}
	return text
}
