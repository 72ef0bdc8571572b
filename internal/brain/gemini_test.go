package brain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"google.golang.org/genai"
)

func newBudgetBrain() *GeminiBrain {
	return &GeminiBrain{
		dailyCount:   make(map[string]int),
		minuteCount:  make(map[string]int),
		lastResetDay: time.Now(),
		lastResetMin: time.Now(),
	}
}

func TestModelBudgets(t *testing.T) {
	b := newBudgetBrain()
	cfg := modelConfig{Name: "gemini-2.5-flash", RPM: 2, RPD: 3}

	assert.True(t, b.canUseModel(cfg))
	b.recordUsage(cfg)
	assert.True(t, b.canUseModel(cfg))
	b.recordUsage(cfg)

	// Minute budget exhausted.
	assert.False(t, b.canUseModel(cfg))

	// A new minute clears the minute budget but not the daily one.
	b.lastResetMin = time.Now().Add(-2 * time.Minute)
	assert.True(t, b.canUseModel(cfg))
	b.recordUsage(cfg)

	b.lastResetMin = time.Now().Add(-2 * time.Minute)
	assert.False(t, b.canUseModel(cfg), "daily budget of 3 is spent")
}

func TestCandidateText(t *testing.T) {
	text, ok := candidateText(&genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{{Text: "{\"ok\":true}"}}},
		}},
	})
	assert.True(t, ok)
	assert.Equal(t, `{"ok":true}`, text)

	_, ok = candidateText(nil)
	assert.False(t, ok)

	_, ok = candidateText(&genai.GenerateContentResponse{})
	assert.False(t, ok)

	// A safety-blocked response has a candidate but no content.
	_, ok = candidateText(&genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{FinishReason: "SAFETY"}},
	})
	assert.False(t, ok)

	_, ok = candidateText(&genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: &genai.Content{}}},
	})
	assert.False(t, ok)
}

func TestModelBudgetsPerModel(t *testing.T) {
	b := newBudgetBrain()
	flash := modelConfig{Name: "gemini-2.5-flash", RPM: 1, RPD: 10}
	lite := modelConfig{Name: "gemini-2.5-flash-lite", RPM: 1, RPD: 10}

	b.recordUsage(flash)
	assert.False(t, b.canUseModel(flash))
	assert.True(t, b.canUseModel(lite), "budgets are tracked per model")
}
