package ports

import (
	"context"

	"github.com/YeongsHub/complain-finder/internal/core/domain"
)

// Source fetches a bounded batch of posts for a named source community.
// Implementations must never surface transport or parse failures; they fall
// back to deterministic substitute data instead.
type Source interface {
	Fetch(ctx context.Context, source string, keywords []string, limit int) ([]domain.Post, error)
}

// Brain is a single synchronous generative-model call. The returned text is
// expected to contain one JSON object, possibly wrapped in prose or fences.
type Brain interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ComplaintVerdict is the structured output of the complaint classifier for
// one post. Field tags match the strict-JSON contract of the live prompt.
type ComplaintVerdict struct {
	IsComplaint bool     `json:"isComplaint"`
	Category    string   `json:"category"`
	PainLevel   int      `json:"painLevel"`
	CoreProblem string   `json:"coreProblem"`
	Keywords    []string `json:"keywords"`
}

// AppIdeaVerdict is the structured output of the app-idea classifier.
type AppIdeaVerdict struct {
	Viable           bool   `json:"isViable"`
	AppName          string `json:"appName"`
	ProblemSummary   string `json:"problemSummary"`
	ProposedSolution string `json:"proposedSolution"`
	TargetUsers      string `json:"targetUsers"`
	KeyFeatures      string `json:"keyFeatures"`
	TechStack        string `json:"techStack"`
	Difficulty       string `json:"difficulty"`
	ViabilityScore   int    `json:"viabilityScore"`
	Reasoning        string `json:"reasoning"`
}

// IdeaDraft is one synthesized business idea before it is persisted.
type IdeaDraft struct {
	Title        string `json:"title"`
	Problem      string `json:"problem"`
	Solution     string `json:"solution"`
	TargetMarket string `json:"targetMarket"`
	Difficulty   string `json:"difficulty"`
	Potential    int    `json:"potential"`
	Reasoning    string `json:"reasoning"`
}

// ComplaintClassifier decides whether one post expresses a genuine user
// complaint. Live and substitute variants implement the same interface; the
// caller never knows which is active.
type ComplaintClassifier interface {
	Classify(ctx context.Context, post domain.Post) (ComplaintVerdict, error)
}

// AppIdeaClassifier decides whether one post describes a viable app idea.
type AppIdeaClassifier interface {
	Classify(ctx context.Context, post domain.Post) (AppIdeaVerdict, error)
}

// IdeaGenerator produces one business idea from a cluster of complaints
// sharing a category.
type IdeaGenerator interface {
	Generate(ctx context.Context, cluster []domain.Complaint, source, category string) (IdeaDraft, error)
}

// Storage is the durable keyed record store for all entity types.
type Storage interface {
	// Sessions
	SaveSession(ctx context.Context, s *domain.AnalysisSession) error
	GetSession(ctx context.Context, id string) (*domain.AnalysisSession, error)

	// Complaints
	SaveComplaint(ctx context.Context, c *domain.Complaint) error
	ComplaintExists(ctx context.Context, postID string) (bool, error)
	GetComplaint(ctx context.Context, id string) (*domain.Complaint, error)
	ListComplaints(ctx context.Context, source, category string) ([]domain.Complaint, error)
	DeleteComplaint(ctx context.Context, id string) error
	DistinctSources(ctx context.Context) ([]string, error)

	// App ideas
	SaveAppIdea(ctx context.Context, a *domain.AppIdea) error
	AppIdeaExists(ctx context.Context, postID string) (bool, error)
	ListAppIdeas(ctx context.Context) ([]domain.AppIdea, error)
	TopAppIdeas(ctx context.Context, limit int) ([]domain.AppIdea, error)
	BookmarkedAppIdeas(ctx context.Context) ([]domain.AppIdea, error)
	ToggleBookmark(ctx context.Context, id string) (*domain.AppIdea, error)

	// Business ideas
	SaveIdea(ctx context.Context, i *domain.BusinessIdea) error
	GetIdea(ctx context.Context, id string) (*domain.BusinessIdea, error)
	ListIdeas(ctx context.Context, difficulty string, limit int) ([]domain.BusinessIdea, error)
	TopIdeas(ctx context.Context, limit int) ([]domain.BusinessIdea, error)
	DeleteIdea(ctx context.Context, id string) error

	Close()
}
