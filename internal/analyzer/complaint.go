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

const complaintPromptFormat = `Analyze the following post for a genuine user complaint.

Title: %s
Body: %s

Respond ONLY with a single JSON object (no other text):
{
  "isComplaint": true or false,
  "category": "price" or "ux" or "missing-feature" or "bug" or "service" or "other",
  "painLevel": a number from 1 to 5,
  "coreProblem": "one-sentence summary of the core problem",
  "keywords": ["related", "keywords"]
}`

// LiveComplaintClassifier renders the complaint prompt through a generative
// model. Any transport or parse failure falls back to the substitute verdict
// for that single post; the error is never surfaced.
type LiveComplaintClassifier struct {
	Brain      ports.Brain
	substitute SubstituteComplaintClassifier
}

var _ ports.ComplaintClassifier = (*LiveComplaintClassifier)(nil)

func NewLiveComplaintClassifier(b ports.Brain) *LiveComplaintClassifier {
	return &LiveComplaintClassifier{Brain: b}
}

func (c *LiveComplaintClassifier) Classify(ctx context.Context, post domain.Post) (ports.ComplaintVerdict, error) {
	prompt := fmt.Sprintf(complaintPromptFormat, post.Title, post.Body)

	response, err := c.Brain.Generate(ctx, prompt)
	if err != nil {
		log.Printf("[analyzer] complaint model call failed for %s, using substitute: %v", post.ID, err)
		return c.substitute.Classify(ctx, post)
	}

	var verdict ports.ComplaintVerdict
	if err := json.Unmarshal([]byte(brain.ExtractJSON(response)), &verdict); err != nil {
		log.Printf("[analyzer] complaint response unparseable for %s, using substitute: %v", post.ID, err)
		return c.substitute.Classify(ctx, post)
	}
	return verdict, nil
}

// ComplaintAnalyzer runs the complaint classifier over fetched posts,
// deduplicating by post id and persisting one Complaint per positive verdict.
type ComplaintAnalyzer struct {
	Classifier ports.ComplaintClassifier
	Store      ports.Storage
}

func NewComplaintAnalyzer(classifier ports.ComplaintClassifier, store ports.Storage) *ComplaintAnalyzer {
	return &ComplaintAnalyzer{Classifier: classifier, Store: store}
}

// AnalyzeAndSave classifies every post that has no complaint record yet and
// returns the complaints persisted by this call.
func (a *ComplaintAnalyzer) AnalyzeAndSave(ctx context.Context, posts []domain.Post) ([]domain.Complaint, error) {
	var complaints []domain.Complaint

	for _, post := range posts {
		exists, err := a.Store.ComplaintExists(ctx, post.ID)
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
		if !verdict.IsComplaint {
			continue
		}

		complaint := domain.Complaint{
			ID:               uuid.NewString(),
			PostID:           post.ID,
			Source:           post.Source,
			Title:            post.Title,
			Body:             post.Body,
			Author:           post.Author,
			Score:            post.Score,
			CreatedAt:        post.CreatedAt,
			Category:         verdict.Category,
			PainLevel:        verdict.PainLevel,
			ExtractedProblem: verdict.CoreProblem,
			AnalyzedAt:       time.Now(),
		}
		if err := a.Store.SaveComplaint(ctx, &complaint); err != nil {
			return nil, fmt.Errorf("save complaint for %s: %w", post.ID, err)
		}
		complaints = append(complaints, complaint)
	}

	log.Printf("[analyzer] analyzed %d posts, found %d complaints", len(posts), len(complaints))
	return complaints, nil
}
