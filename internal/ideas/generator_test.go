package ideas

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YeongsHub/complain-finder/internal/core/domain"
)

type stubBrain struct {
	Response string
	Err      error
	Prompt   string
}

func (b *stubBrain) Generate(_ context.Context, prompt string) (string, error) {
	b.Prompt = prompt
	if b.Err != nil {
		return "", b.Err
	}
	return b.Response, nil
}

func cluster(category string, n int) []domain.Complaint {
	out := make([]domain.Complaint, n)
	for i := range out {
		out[i] = domain.Complaint{
			ID:               fmt.Sprintf("%s-%d", category, i),
			Category:         category,
			ExtractedProblem: fmt.Sprintf("problem %d", i),
		}
	}
	return out
}

func TestSubstituteGeneratorFillsTemplate(t *testing.T) {
	g := SubstituteIdeaGenerator{}

	draft, err := g.Generate(context.Background(), cluster(domain.CategoryPrice, 3), "golang", domain.CategoryPrice)
	require.NoError(t, err)
	assert.Equal(t, "Affordable golang alternative", draft.Title)
	assert.Equal(t, domain.DifficultyMedium, draft.Difficulty)
	assert.Equal(t, 7, draft.Potential)
	assert.Equal(t, `3 complaints in the "price" category found in r/golang indicate confirmed demand`, draft.Reasoning)
}

func TestSubstituteGeneratorPerCategory(t *testing.T) {
	g := SubstituteIdeaGenerator{}
	for _, category := range domain.Categories {
		draft, err := g.Generate(context.Background(), cluster(category, 2), "startups", category)
		require.NoError(t, err)
		assert.NotEmpty(t, draft.Title, "category %s", category)
		assert.NotContains(t, draft.Title, "%s")
		assert.Contains(t, []string{domain.DifficultyEasy, domain.DifficultyMedium, domain.DifficultyHard}, draft.Difficulty)
		assert.Greater(t, draft.Potential, 0)
	}
}

func TestSubstituteGeneratorUnknownCategoryFallsBack(t *testing.T) {
	g := SubstituteIdeaGenerator{}
	draft, err := g.Generate(context.Background(), cluster("misc", 2), "golang", "misc")
	require.NoError(t, err)

	other := ideaTemplates[domain.CategoryOther]
	assert.Equal(t, "golang improvement solution", draft.Title)
	assert.Equal(t, other.Potential, draft.Potential)
}

func TestLiveGeneratorParsesResponse(t *testing.T) {
	b := &stubBrain{Response: `{"title": "CompileCache", "problem": "Slow builds", "solution": "Shared build cache", "targetMarket": "Go teams", "difficulty": "medium", "potential": 8, "reasoning": "Recurring complaint"}`}
	g := NewLiveIdeaGenerator(b)

	draft, err := g.Generate(context.Background(), cluster(domain.CategoryBug, 2), "golang", domain.CategoryBug)
	require.NoError(t, err)
	assert.Equal(t, "CompileCache", draft.Title)
	assert.Equal(t, 8, draft.Potential)

	// The prompt carries every cluster member's extracted problem.
	assert.Contains(t, b.Prompt, "- problem 0")
	assert.Contains(t, b.Prompt, "- problem 1")
	assert.Contains(t, b.Prompt, "r/golang")
}

func TestLiveGeneratorFallsBack(t *testing.T) {
	members := cluster(domain.CategoryService, 4)

	for name, b := range map[string]*stubBrain{
		"model error":    {Err: errors.New("all models exhausted")},
		"malformed json": {Response: "sorry, no"},
	} {
		t.Run(name, func(t *testing.T) {
			g := NewLiveIdeaGenerator(b)
			draft, err := g.Generate(context.Background(), members, "golang", domain.CategoryService)
			require.NoError(t, err)

			want, _ := SubstituteIdeaGenerator{}.Generate(context.Background(), members, "golang", domain.CategoryService)
			assert.Equal(t, want, draft)
		})
	}
}
