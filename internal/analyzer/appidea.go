package analyzer

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/YeongsHub/complain-finder/internal/brain"
	"github.com/YeongsHub/complain-finder/internal/core/domain"
	"github.com/YeongsHub/complain-finder/internal/core/ports"
)

// Records are persisted only when the verdict is viable AND the score clears
// this threshold. Hard business rule, not configuration.
const viabilityThreshold = 5

const appIdeaPromptFormat = `You are an expert startup advisor and app developer. Analyze this post to see if it contains a viable app idea.

Title: %s
Content: %s
Community: %s

Evaluate if this post describes:
1. A real problem people face
2. Something that could be solved with an app/software
3. Has potential market demand

Respond ONLY with valid JSON (no markdown):
{
  "isViable": true,
  "appName": "Suggested App Name",
  "problemSummary": "Clear description of the problem",
  "proposedSolution": "How an app could solve this",
  "targetUsers": "Who would use this app",
  "keyFeatures": "3-5 key features separated by comma",
  "techStack": "Recommended tech stack (e.g., Flutter, React Native, etc.)",
  "difficulty": "easy/medium/hard",
  "viabilityScore": 7,
  "reasoning": "Why this is a good app idea"
}

If NOT viable, return:
{"isViable":false,"appName":"","problemSummary":"","proposedSolution":"","targetUsers":"","keyFeatures":"","techStack":"","difficulty":"","viabilityScore":0,"reasoning":"Not viable because..."}

Be strict: only mark as viable if it's a REAL app idea with clear problem and solution.
viabilityScore should be 1-10 (10 being most viable)`

// LiveAppIdeaClassifier renders the app-idea prompt through a generative
// model, falling back to the substitute on any failure for that post.
type LiveAppIdeaClassifier struct {
	Brain      ports.Brain
	substitute SubstituteAppIdeaClassifier
}

var _ ports.AppIdeaClassifier = (*LiveAppIdeaClassifier)(nil)

func NewLiveAppIdeaClassifier(b ports.Brain) *LiveAppIdeaClassifier {
	return &LiveAppIdeaClassifier{Brain: b}
}

func (c *LiveAppIdeaClassifier) Classify(ctx context.Context, post domain.Post) (ports.AppIdeaVerdict, error) {
	prompt := fmt.Sprintf(appIdeaPromptFormat, post.Title, truncate(post.Body, 1000), post.Source)

	response, err := c.Brain.Generate(ctx, prompt)
	if err != nil {
		log.Printf("[analyzer] app-idea model call failed for %s, using substitute: %v", post.ID, err)
		return c.substitute.Classify(ctx, post)
	}

	var verdict ports.AppIdeaVerdict
	if err := json.Unmarshal([]byte(brain.ExtractJSON(response)), &verdict); err != nil {
		log.Printf("[analyzer] app-idea response unparseable for %s, using substitute: %v", post.ID, err)
		return c.substitute.Classify(ctx, post)
	}
	return verdict, nil
}

// AppIdeaAnalyzer sweeps one source for app ideas: fetch, dedup by post id,
// classify, persist verdicts that clear the viability gate.
type AppIdeaAnalyzer struct {
	Source     ports.Source
	Classifier ports.AppIdeaClassifier
	Store      ports.Storage
}

func NewAppIdeaAnalyzer(source ports.Source, classifier ports.AppIdeaClassifier, store ports.Storage) *AppIdeaAnalyzer {
	return &AppIdeaAnalyzer{Source: source, Classifier: classifier, Store: store}
}

// AnalyzeSource fetches up to limit posts from the source and returns the app
// ideas persisted by this call.
func (a *AppIdeaAnalyzer) AnalyzeSource(ctx context.Context, source string, limit int) ([]domain.AppIdea, error) {
	posts, err := a.Source.Fetch(ctx, source, nil, limit)
	if err != nil {
		return nil, fmt.Errorf("fetch r/%s: %w", source, err)
	}

	var ideas []domain.AppIdea
	for _, post := range posts {
		exists, err := a.Store.AppIdeaExists(ctx, post.ID)
		if err != nil {
			return nil, fmt.Errorf("dedup check for %s: %w", post.ID, err)
		}
		if exists {
			continue
		}

		verdict, err := a.Classifier.Classify(ctx, post)
		if err != nil {
			return nil, fmt.Errorf("classify %s: %w", post.ID, err)
		}
		if !verdict.Viable || verdict.ViabilityScore < viabilityThreshold {
			continue
		}

		idea := domain.AppIdea{
			ID:               uuid.NewString(),
			PostID:           post.ID,
			Source:           source,
			OriginalTitle:    post.Title,
			OriginalBody:     post.Body,
			Author:           post.Author,
			Score:            post.Score,
			AppName:          verdict.AppName,
			ProblemSummary:   verdict.ProblemSummary,
			ProposedSolution: verdict.ProposedSolution,
			TargetUsers:      verdict.TargetUsers,
			KeyFeatures:      verdict.KeyFeatures,
			TechStack:        verdict.TechStack,
			Difficulty:       verdict.Difficulty,
			ViabilityScore:   verdict.ViabilityScore,
			Reasoning:        verdict.Reasoning,
			PostCreatedAt:    post.CreatedAt,
			AnalyzedAt:       time.Now(),
		}
		if err := a.Store.SaveAppIdea(ctx, &idea); err != nil {
			return nil, fmt.Errorf("save app idea for %s: %w", post.ID, err)
		}
		log.Printf("[analyzer] saved app idea %q (score %d)", idea.AppName, idea.ViabilityScore)
		ideas = append(ideas, idea)
	}

	log.Printf("[analyzer] found %d viable app ideas from r/%s", len(ideas), source)
	return ideas, nil
}
