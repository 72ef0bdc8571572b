package discovery

import (
	"context"
	"log"
	"time"

	"golang.org/x/time/rate"

	"github.com/YeongsHub/complain-finder/internal/analyzer"
	"github.com/YeongsHub/complain-finder/internal/pipeline"
)

const (
	// Pacing between consecutive sources in a sweep, to respect the
	// upstream API's rate limits.
	sourceInterval = 2 * time.Second

	// Batch sizes for the time-driven and manual triggers.
	dailyBatch  = 25
	manualBatch = 20

	// Local hour the daily sweep fires at.
	dailyHour = 9
)

// Scheduler runs recurring app-idea discovery sweeps over the combined
// source registry.
type Scheduler struct {
	Registry *Registry
	Analyzer *analyzer.AppIdeaAnalyzer
	Pool     *pipeline.Pool

	limiter *rate.Limiter
	trigger chan struct{}
}

func NewScheduler(registry *Registry, appIdeas *analyzer.AppIdeaAnalyzer, pool *pipeline.Pool) *Scheduler {
	return &Scheduler{
		Registry: registry,
		Analyzer: appIdeas,
		Pool:     pool,
		limiter:  rate.NewLimiter(rate.Every(sourceInterval), 1),
		trigger:  make(chan struct{}, 1),
	}
}

// RunDiscovery sweeps every registered source once, pacing sources two
// seconds apart. A single source failing is logged and skipped; the sweep
// carries on. Returns the total number of newly persisted app ideas.
func (s *Scheduler) RunDiscovery(ctx context.Context, postsPerSource int) int {
	total := 0
	for _, source := range s.Registry.All() {
		if err := s.limiter.Wait(ctx); err != nil {
			break
		}
		log.Printf("[discovery] scanning r/%s for app ideas...", source)
		ideas, err := s.Analyzer.AnalyzeSource(ctx, source, postsPerSource)
		if err != nil {
			log.Printf("[discovery] failed to analyze r/%s: %v", source, err)
			continue
		}
		total += len(ideas)
	}
	log.Printf("[discovery] sweep completed, %d new ideas", total)
	return total
}

// TriggerNow requests a manual sweep and returns immediately. A request
// arriving while one is already queued is coalesced.
func (s *Scheduler) TriggerNow() {
	select {
	case s.trigger <- struct{}{}:
	default:
	}
}

// Run loops until the context is cancelled, firing the daily sweep at the
// scheduled hour and draining manual triggers in between. Sweeps execute on
// the worker pool, off this loop.
func (s *Scheduler) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-time.After(untilNextDaily(time.Now())):
			log.Printf("[discovery] starting daily idea discovery")
			s.Pool.Submit(func(ctx context.Context) {
				s.RunDiscovery(ctx, dailyBatch)
			})
		case <-s.trigger:
			log.Printf("[discovery] manual discovery triggered")
			s.Pool.Submit(func(ctx context.Context) {
				s.RunDiscovery(ctx, manualBatch)
			})
		}
	}
}

// untilNextDaily returns the wait until the next occurrence of the daily
// hour, local time.
func untilNextDaily(now time.Time) time.Duration {
	next := time.Date(now.Year(), now.Month(), now.Day(), dailyHour, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next.Sub(now)
}
