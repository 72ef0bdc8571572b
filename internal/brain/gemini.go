package brain

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"google.golang.org/genai"

	"github.com/YeongsHub/complain-finder/internal/core/ports"
)

type modelConfig struct {
	Name string
	RPM  int
	RPD  int
}

// GeminiBrain implements ports.Brain on top of the Gemini API. It walks a
// model fallback chain and keeps per-model minute/day budgets so a discovery
// sweep cannot burn through the free quota.
type GeminiBrain struct {
	Client *genai.Client
	Models []modelConfig

	dailyCount   map[string]int
	minuteCount  map[string]int
	lastResetDay time.Time
	lastResetMin time.Time
	mu           sync.Mutex
}

// NewGeminiBrain builds a live brain. The preferred model, when set, is tried
// before the built-in fallback chain.
func NewGeminiBrain(ctx context.Context, apiKey, preferredModel string) (*GeminiBrain, error) {
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, err
	}

	models := []modelConfig{
		{Name: "gemini-2.5-flash", RPM: 10, RPD: 250},
		{Name: "gemini-2.5-flash-lite", RPM: 15, RPD: 1000},
	}
	if preferredModel != "" && preferredModel != models[0].Name {
		models = append([]modelConfig{{Name: preferredModel, RPM: 10, RPD: 250}}, models...)
	}

	return &GeminiBrain{
		Client:       client,
		Models:       models,
		dailyCount:   make(map[string]int),
		minuteCount:  make(map[string]int),
		lastResetDay: time.Now(),
		lastResetMin: time.Now(),
	}, nil
}

var _ ports.Brain = (*GeminiBrain)(nil)

// Generate runs one prompt through the first model with remaining budget.
// Rate-limit and not-found errors move on to the next model; anything else
// is returned as-is.
func (b *GeminiBrain) Generate(ctx context.Context, prompt string) (string, error) {
	var lastErr error

	for _, cfg := range b.Models {
		if !b.canUseModel(cfg) {
			continue
		}

		result, err := b.Client.Models.GenerateContent(ctx, cfg.Name, genai.Text(prompt), nil)
		if err != nil {
			errStr := strings.ToLower(err.Error())
			if strings.Contains(errStr, "429") || strings.Contains(errStr, "rate limit") || strings.Contains(errStr, "exhausted") || strings.Contains(errStr, "404") || strings.Contains(errStr, "not found") {
				lastErr = err
				continue
			}
			return "", err
		}

		if text, ok := candidateText(result); ok {
			b.recordUsage(cfg)
			return text, nil
		}
	}

	return "", fmt.Errorf("all models unavailable: %v", lastErr)
}

// candidateText pulls the first candidate's text out of a response.
// Safety-blocked responses carry a candidate with nil Content.
func candidateText(result *genai.GenerateContentResponse) (string, bool) {
	if result == nil || len(result.Candidates) == 0 {
		return "", false
	}
	content := result.Candidates[0].Content
	if content == nil || len(content.Parts) == 0 {
		return "", false
	}
	return content.Parts[0].Text, true
}

func (b *GeminiBrain) canUseModel(cfg modelConfig) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	now := time.Now()
	if now.YearDay() != b.lastResetDay.YearDay() {
		b.dailyCount = make(map[string]int)
		b.lastResetDay = now
	}
	if now.Sub(b.lastResetMin) >= time.Minute {
		b.minuteCount = make(map[string]int)
		b.lastResetMin = now
	}
	if b.dailyCount[cfg.Name] >= cfg.RPD {
		return false
	}
	if b.minuteCount[cfg.Name] >= cfg.RPM {
		return false
	}
	return true
}

func (b *GeminiBrain) recordUsage(cfg modelConfig) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.dailyCount[cfg.Name]++
	b.minuteCount[cfg.Name]++
}
