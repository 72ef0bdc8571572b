package analyzer

import (
	"context"
	"hash/fnv"
	"math/rand"
	"strings"

	"github.com/YeongsHub/complain-finder/internal/core/domain"
	"github.com/YeongsHub/complain-finder/internal/core/ports"
)

// seededRand returns a generator seeded from the post id, so substitute
// verdicts are stable for a given post across repeated calls.
func seededRand(postID string) *rand.Rand {
	h := fnv.New64a()
	h.Write([]byte(postID))
	return rand.New(rand.NewSource(int64(h.Sum64())))
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// truncate limits s to max characters, never cutting inside a rune.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) > max {
		return string(r[:max])
	}
	return s
}

// Negative-sentiment lexicon. Any hit marks the post as a complaint without
// consuming randomness.
var complaintTriggers = []string{
	"frustrat", "hate", "terrible", "worst", "broken", "expensive", "useless", "bug",
}

// Need/desire lexicon for the app-idea heuristic.
var appIdeaTriggers = []string{
	"app", "wish", "need", "want", "idea", "someone make", "would pay",
}

// SubstituteComplaintClassifier is the deterministic heuristic standing in
// for the live model.
type SubstituteComplaintClassifier struct{}

var _ ports.ComplaintClassifier = SubstituteComplaintClassifier{}

func (SubstituteComplaintClassifier) Classify(_ context.Context, post domain.Post) (ports.ComplaintVerdict, error) {
	rng := seededRand(post.ID)
	content := strings.ToLower(post.Title + " " + post.Body)

	// Lexicon first; otherwise a ~70% true-biased coin.
	isComplaint := containsAny(content, complaintTriggers...) || rng.Float64() > 0.3
	if !isComplaint {
		return ports.ComplaintVerdict{}, nil
	}

	var category string
	switch {
	case containsAny(content, "price", "expensive", "cost"):
		category = domain.CategoryPrice
	case containsAny(content, "ux", "ui", "design", "find"):
		category = domain.CategoryUX
	case containsAny(content, "feature", "missing"):
		category = domain.CategoryMissingFeature
	case containsAny(content, "bug", "crash", "broken"):
		category = domain.CategoryBug
	case containsAny(content, "support", "customer"):
		category = domain.CategoryService
	default:
		category = domain.Categories[rng.Intn(len(domain.Categories))]
	}

	return ports.ComplaintVerdict{
		IsComplaint: true,
		Category:    category,
		PainLevel:   3 + rng.Intn(3),
		CoreProblem: truncate(post.Title, 100),
		Keywords:    []string{post.Source, category},
	}, nil
}

// SubstituteAppIdeaClassifier marks a post viable when the need/desire
// lexicon appears in title+body and emits a fixed-template verdict.
type SubstituteAppIdeaClassifier struct{}

var _ ports.AppIdeaClassifier = SubstituteAppIdeaClassifier{}

func (SubstituteAppIdeaClassifier) Classify(_ context.Context, post domain.Post) (ports.AppIdeaVerdict, error) {
	content := strings.ToLower(post.Title + " " + post.Body)
	if !containsAny(content, appIdeaTriggers...) {
		return ports.AppIdeaVerdict{}, nil
	}

	return ports.AppIdeaVerdict{
		Viable:           true,
		AppName:          "Mock App for: " + truncate(post.Title, 30),
		ProblemSummary:   "Summary of the problem users are facing",
		ProposedSolution: "How an app could solve this",
		TargetUsers:      "General users",
		KeyFeatures:      "Feature 1, Feature 2, Feature 3",
		TechStack:        "Flutter, Firebase",
		Difficulty:       domain.DifficultyMedium,
		ViabilityScore:   6,
		Reasoning:        "Substitute analysis - live model not available",
	}, nil
}
