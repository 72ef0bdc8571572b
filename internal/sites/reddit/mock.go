package reddit

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"github.com/YeongsHub/complain-finder/internal/core/domain"
)

// Fixed template bank for substitute posts. Bodies read like the complaints
// the classifiers are tuned for, so a substitute-mode run still produces
// meaningful downstream records.
var mockBodies = []string{
	"I'm so frustrated with this product. The price keeps going up but the quality is getting worse!",
	"Why is the UX so terrible? I can't find anything in this app.",
	"This feature has been broken for months and they still haven't fixed it.",
	"Customer support is absolutely useless. Waited 3 hours just to get a generic response.",
	"The new update completely ruined the app. Why do companies always change things that work?",
	"Overpriced garbage. There are free alternatives that work better.",
	"I've been a loyal customer for years and this is how they treat us?",
	"The subscription model is ridiculous. I just want to pay once.",
	"Performance issues make this unusable. Crashes every 5 minutes.",
	"Missing basic features that competitors have had for years.",
	"The learning curve is insane. No documentation, no tutorials.",
	"Privacy concerns are completely ignored by this company.",
	"Ads everywhere! Can't even use the free version anymore.",
	"Auto-renewal without warning drained my bank account.",
	"Integration with other tools is non-existent.",
}

var mockTitles = []string{
	"Why is %s so expensive now?",
	"Frustrated with %s's customer service",
	"The latest update ruined everything",
	"Anyone else having issues with %s?",
	"Thinking of switching from %s",
	"Major bug in %s - still not fixed!",
	"The UX of %s needs a complete overhaul",
	"Missing feature request: still waiting after 2 years",
	"Subscription fatigue with %s",
	"Performance problems getting worse",
}

// MockPosts deterministically synthesizes up to limit posts from the template
// bank. IDs are unique per call; scores land in [10,510) and ages in the last
// 30 days.
func MockPosts(source string, limit int) []domain.Post {
	n := limit
	if n > len(mockBodies) {
		n = len(mockBodies)
	}

	now := time.Now()
	posts := make([]domain.Post, 0, n)
	for i := 0; i < n; i++ {
		title := mockTitles[i%len(mockTitles)]
		if strings.Contains(title, "%s") {
			title = fmt.Sprintf(title, source)
		}
		posts = append(posts, domain.Post{
			ID:        fmt.Sprintf("mock_%d_%d", i, now.UnixMilli()),
			Source:    source,
			Title:     title,
			Body:      mockBodies[i],
			Author:    fmt.Sprintf("user_%d", rand.Intn(10000)),
			Score:     10 + rand.Intn(500),
			CreatedAt: now.Add(-time.Duration(rand.Intn(30*24*3600)) * time.Second),
		})
	}

	log.Printf("[reddit] generated %d mock posts for r/%s", len(posts), source)
	return posts
}
