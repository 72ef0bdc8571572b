package ideas

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/YeongsHub/complain-finder/internal/brain"
	"github.com/YeongsHub/complain-finder/internal/core/domain"
	"github.com/YeongsHub/complain-finder/internal/core/ports"
)

const ideaPromptFormat = `These are the main complaints in the '%s' category found in r/%s:

%s

Propose a business idea that could solve these complaints.

Respond ONLY with a single JSON object (no other text):
{
  "title": "idea title",
  "problem": "the problem being solved",
  "solution": "the proposed solution",
  "targetMarket": "target customer segment",
  "difficulty": "easy" or "medium" or "hard",
  "potential": a number from 1 to 10,
  "reasoning": "why this idea is promising"
}`

// SubstituteIdeaGenerator fills a category template with the source name and
// reports the cluster size in its reasoning.
type SubstituteIdeaGenerator struct{}

var _ ports.IdeaGenerator = SubstituteIdeaGenerator{}

func (SubstituteIdeaGenerator) Generate(_ context.Context, cluster []domain.Complaint, source, category string) (ports.IdeaDraft, error) {
	tmpl, ok := ideaTemplates[category]
	if !ok {
		tmpl = ideaTemplates[domain.CategoryOther]
	}

	return ports.IdeaDraft{
		Title:        fmt.Sprintf(tmpl.Title, source),
		Problem:      tmpl.Problem,
		Solution:     tmpl.Solution,
		TargetMarket: tmpl.TargetMarket,
		Difficulty:   tmpl.Difficulty,
		Potential:    tmpl.Potential,
		Reasoning: fmt.Sprintf("%d complaints in the %q category found in r/%s indicate confirmed demand",
			len(cluster), category, source),
	}, nil
}

// LiveIdeaGenerator prompts a generative model with each cluster member's
// extracted problem; a malformed response falls back to the substitute for
// that cluster.
type LiveIdeaGenerator struct {
	Brain      ports.Brain
	substitute SubstituteIdeaGenerator
}

var _ ports.IdeaGenerator = (*LiveIdeaGenerator)(nil)

func NewLiveIdeaGenerator(b ports.Brain) *LiveIdeaGenerator {
	return &LiveIdeaGenerator{Brain: b}
}

func (g *LiveIdeaGenerator) Generate(ctx context.Context, cluster []domain.Complaint, source, category string) (ports.IdeaDraft, error) {
	var problems strings.Builder
	for _, c := range cluster {
		problems.WriteString("- ")
		problems.WriteString(c.ExtractedProblem)
		problems.WriteString("\n")
	}
	prompt := fmt.Sprintf(ideaPromptFormat, category, source, problems.String())

	response, err := g.Brain.Generate(ctx, prompt)
	if err != nil {
		log.Printf("[ideas] model call failed for category %s, using substitute: %v", category, err)
		return g.substitute.Generate(ctx, cluster, source, category)
	}

	var draft ports.IdeaDraft
	if err := json.Unmarshal([]byte(brain.ExtractJSON(response)), &draft); err != nil {
		log.Printf("[ideas] response unparseable for category %s, using substitute: %v", category, err)
		return g.substitute.Generate(ctx, cluster, source, category)
	}
	return draft, nil
}
