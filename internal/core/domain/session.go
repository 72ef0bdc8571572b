package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SessionStatus is the stage an analysis session is currently in.
type SessionStatus string

const (
	StatusPending         SessionStatus = "PENDING"
	StatusCollecting      SessionStatus = "COLLECTING"
	StatusAnalyzing       SessionStatus = "ANALYZING"
	StatusGeneratingIdeas SessionStatus = "GENERATING_IDEAS"
	StatusCompleted       SessionStatus = "COMPLETED"
	StatusFailed          SessionStatus = "FAILED"
)

// statusRank orders the forward path. COMPLETED and FAILED share the final
// rank: both are terminal.
var statusRank = map[SessionStatus]int{
	StatusPending:         0,
	StatusCollecting:      1,
	StatusAnalyzing:       2,
	StatusGeneratingIdeas: 3,
	StatusCompleted:       4,
	StatusFailed:          4,
}

// Terminal reports whether no further transition may leave this status.
func (s SessionStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// AnalysisSession tracks one end-to-end pipeline run. It is the only
// long-lived mutable entity; only the pipeline orchestrator mutates it.
type AnalysisSession struct {
	ID              string        `json:"id"`
	Source          string        `json:"source"`
	Keywords        []string      `json:"keywords,omitempty"`
	TotalPosts      int           `json:"totalPosts"`
	TotalComplaints int           `json:"totalComplaints"`
	Status          SessionStatus `json:"status"`
	StartedAt       time.Time     `json:"startedAt"`
	CompletedAt     *time.Time    `json:"completedAt,omitempty"`
}

// NewSession creates a PENDING session for the given source.
func NewSession(source string, keywords []string) *AnalysisSession {
	return &AnalysisSession{
		ID:        uuid.NewString(),
		Source:    source,
		Keywords:  keywords,
		Status:    StatusPending,
		StartedAt: time.Now(),
	}
}

// Transition moves the session to the next status. The status never
// regresses, FAILED is only reachable from the three middle stages, and
// CompletedAt is set exactly once, on entry to a terminal status.
func (s *AnalysisSession) Transition(next SessionStatus) error {
	if s.Status.Terminal() {
		return fmt.Errorf("session %s is already %s", s.ID, s.Status)
	}
	if next == StatusFailed {
		if s.Status == StatusPending {
			return fmt.Errorf("session %s cannot fail before collecting", s.ID)
		}
	} else if statusRank[next] != statusRank[s.Status]+1 {
		return fmt.Errorf("session %s cannot go from %s to %s", s.ID, s.Status, next)
	}
	s.Status = next
	if next.Terminal() {
		now := time.Now()
		s.CompletedAt = &now
	}
	return nil
}
