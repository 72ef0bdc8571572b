package pipeline

import (
	"context"
	"fmt"
	"log"

	"github.com/YeongsHub/complain-finder/internal/analyzer"
	"github.com/YeongsHub/complain-finder/internal/core/domain"
	"github.com/YeongsHub/complain-finder/internal/core/ports"
	"github.com/YeongsHub/complain-finder/internal/ideas"
)

// Orchestrator drives one analysis session through
// collect -> analyze -> generate ideas, persisting the session after every
// transition so status polls always see the latest committed stage.
type Orchestrator struct {
	Source      ports.Source
	Complaints  *analyzer.ComplaintAnalyzer
	Synthesizer *ideas.Synthesizer
	Store       ports.Storage
	Pool        *Pool
}

func NewOrchestrator(source ports.Source, complaints *analyzer.ComplaintAnalyzer, synthesizer *ideas.Synthesizer, store ports.Storage, pool *Pool) *Orchestrator {
	return &Orchestrator{
		Source:      source,
		Complaints:  complaints,
		Synthesizer: synthesizer,
		Store:       store,
		Pool:        pool,
	}
}

// Start creates a PENDING session, hands the run to the worker pool and
// returns the session id immediately.
func (o *Orchestrator) Start(ctx context.Context, source string, keywords []string, limit int) (*domain.AnalysisSession, error) {
	session := domain.NewSession(source, keywords)
	if err := o.Store.SaveSession(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	log.Printf("[pipeline] created session %s for r/%s", session.ID, source)

	id := session.ID
	o.Pool.Submit(func(ctx context.Context) {
		o.run(ctx, id, source, keywords, limit)
	})

	return session, nil
}

// Status returns the current session snapshot.
func (o *Orchestrator) Status(ctx context.Context, sessionID string) (*domain.AnalysisSession, error) {
	return o.Store.GetSession(ctx, sessionID)
}

// run executes the stages and isolates any failure to the FAILED state.
// Already-persisted complaints and ideas are never rolled back.
func (o *Orchestrator) run(ctx context.Context, sessionID, source string, keywords []string, limit int) {
	session, err := o.Store.GetSession(ctx, sessionID)
	if err != nil {
		log.Printf("[pipeline] session %s vanished before run: %v", sessionID, err)
		return
	}

	if err := o.runStages(ctx, session, source, keywords, limit); err != nil {
		log.Printf("[pipeline] session %s failed: %v", sessionID, err)
		if terr := o.transition(ctx, session, domain.StatusFailed); terr != nil {
			log.Printf("[pipeline] session %s could not be marked failed: %v", sessionID, terr)
		}
	}
}

func (o *Orchestrator) runStages(ctx context.Context, session *domain.AnalysisSession, source string, keywords []string, limit int) error {
	if err := o.transition(ctx, session, domain.StatusCollecting); err != nil {
		return err
	}
	posts, err := o.Source.Fetch(ctx, source, keywords, limit)
	if err != nil {
		return fmt.Errorf("collect: %w", err)
	}
	session.TotalPosts = len(posts)
	if err := o.Store.SaveSession(ctx, session); err != nil {
		return err
	}

	if err := o.transition(ctx, session, domain.StatusAnalyzing); err != nil {
		return err
	}
	complaints, err := o.Complaints.AnalyzeAndSave(ctx, posts)
	if err != nil {
		return fmt.Errorf("analyze: %w", err)
	}
	session.TotalComplaints = len(complaints)
	if err := o.Store.SaveSession(ctx, session); err != nil {
		return err
	}

	if err := o.transition(ctx, session, domain.StatusGeneratingIdeas); err != nil {
		return err
	}
	generated, err := o.Synthesizer.Synthesize(ctx, complaints, source)
	if err != nil {
		return fmt.Errorf("generate ideas: %w", err)
	}

	if err := o.transition(ctx, session, domain.StatusCompleted); err != nil {
		return err
	}
	log.Printf("[pipeline] session %s completed: %d posts, %d complaints, %d ideas",
		session.ID, session.TotalPosts, session.TotalComplaints, len(generated))
	return nil
}

// transition advances the session and persists it immediately.
func (o *Orchestrator) transition(ctx context.Context, session *domain.AnalysisSession, next domain.SessionStatus) error {
	if err := session.Transition(next); err != nil {
		return err
	}
	if err := o.Store.SaveSession(ctx, session); err != nil {
		return fmt.Errorf("persist %s transition: %w", next, err)
	}
	log.Printf("[pipeline] session %s -> %s", session.ID, next)
	return nil
}
