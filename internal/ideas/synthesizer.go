package ideas

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/YeongsHub/complain-finder/internal/core/domain"
	"github.com/YeongsHub/complain-finder/internal/core/ports"
)

// Clusters below this size never produce an idea.
const minClusterSize = 2

// Synthesizer clusters complaints by category and turns each large-enough
// cluster into one persisted business idea.
type Synthesizer struct {
	Generator ports.IdeaGenerator
	Store     ports.Storage
}

func NewSynthesizer(generator ports.IdeaGenerator, store ports.Storage) *Synthesizer {
	return &Synthesizer{Generator: generator, Store: store}
}

// Synthesize produces at most one BusinessIdea per category cluster of size
// >= 2. Smaller clusters are silently skipped; empty input returns an empty
// result without invoking generation. Inter-cluster order is unspecified.
func (s *Synthesizer) Synthesize(ctx context.Context, complaints []domain.Complaint, source string) ([]domain.BusinessIdea, error) {
	clusters := clusterByCategory(complaints)

	var ideas []domain.BusinessIdea
	for category, cluster := range clusters {
		if len(cluster) < minClusterSize {
			continue
		}

		draft, err := s.Generator.Generate(ctx, cluster, source, category)
		if err != nil {
			return nil, fmt.Errorf("generate idea for category %s: %w", category, err)
		}

		idea := domain.BusinessIdea{
			ID:               uuid.NewString(),
			Title:            draft.Title,
			ProblemStatement: draft.Problem,
			Solution:         draft.Solution,
			TargetMarket:     draft.TargetMarket,
			Difficulty:       draft.Difficulty,
			PotentialScore:   draft.Potential,
			SourceComplaints: complaintIDs(cluster),
			CreatedAt:        time.Now(),
		}
		if err := s.Store.SaveIdea(ctx, &idea); err != nil {
			return nil, fmt.Errorf("save idea for category %s: %w", category, err)
		}
		log.Printf("[ideas] generated idea: %s", idea.Title)
		ideas = append(ideas, idea)
	}

	log.Printf("[ideas] generated %d ideas from %d complaints", len(ideas), len(complaints))
	return ideas, nil
}

// clusterByCategory groups complaints by category, dropping records without
// one.
func clusterByCategory(complaints []domain.Complaint) map[string][]domain.Complaint {
	clusters := make(map[string][]domain.Complaint)
	for _, c := range complaints {
		if c.Category == "" {
			continue
		}
		clusters[c.Category] = append(clusters[c.Category], c)
	}
	return clusters
}

func complaintIDs(cluster []domain.Complaint) []string {
	ids := make([]string, len(cluster))
	for i, c := range cluster {
		ids[i] = c.ID
	}
	return ids
}
