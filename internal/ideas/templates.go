package ideas

import "github.com/YeongsHub/complain-finder/internal/core/domain"

type ideaTemplate struct {
	Title        string // format string, %s is the source name
	Problem      string
	Solution     string
	TargetMarket string
	Difficulty   string
	Potential    int
}

// One fixed template per category. Unknown categories land on "other".
var ideaTemplates = map[string]ideaTemplate{
	domain.CategoryPrice: {
		Title:        "Affordable %s alternative",
		Problem:      "Users are unhappy with the rising price of the current service.",
		Solution:     "Build an alternative with a free tier and a fairly priced premium plan.",
		TargetMarket: "Price-sensitive individuals and small teams",
		Difficulty:   domain.DifficultyMedium,
		Potential:    7,
	},
	domain.CategoryUX: {
		Title:        "Intuitive %s interface tool",
		Problem:      "Users struggle with a confusing, overloaded interface.",
		Solution:     "Ship a wrapper or plugin with AI-guided onboarding and a simplified interface.",
		TargetMarket: "Non-technical and first-time users",
		Difficulty:   domain.DifficultyHard,
		Potential:    6,
	},
	domain.CategoryMissingFeature: {
		Title:        "%s feature extension plugin",
		Problem:      "Core features users depend on are simply not there.",
		Solution:     "Build a third-party extension delivering the most requested features.",
		TargetMarket: "Power users and professionals",
		Difficulty:   domain.DifficultyMedium,
		Potential:    8,
	},
	domain.CategoryBug: {
		Title:        "Reliable %s alternative",
		Problem:      "Instability in the existing solution costs users their work.",
		Solution:     "Build a competing product that puts stability and data backup first.",
		TargetMarket: "Professionals who cannot afford data loss",
		Difficulty:   domain.DifficultyHard,
		Potential:    7,
	},
	domain.CategoryService: {
		Title:        "%s community support platform",
		Problem:      "Poor customer support quality leaves users frustrated.",
		Solution:     "Community-driven support plus an AI chatbot for instant answers.",
		TargetMarket: "Anyone who needs fast support",
		Difficulty:   domain.DifficultyEasy,
		Potential:    6,
	},
	domain.CategoryOther: {
		Title:        "%s improvement solution",
		Problem:      "A mixed bag of complaints was found.",
		Solution:     "An all-in-one product addressing the main pain points.",
		TargetMarket: "General users",
		Difficulty:   domain.DifficultyMedium,
		Potential:    5,
	},
}
